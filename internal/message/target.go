package message

import (
	"strconv"

	"github.com/tidwall/gjson"
)

// Roles eligible for rewriting.
const (
	RoleUser   = "user"
	RoleSystem = "system"
)

// FindTarget scans messages from the most recent to the oldest and returns the index of
// the first eligible one: role "user", or role "system" unless ignoreSystem is set.
// It returns -1 when messages is not an array or nothing is eligible.
func FindTarget(messages gjson.Result, ignoreSystem bool) int {
	if !messages.IsArray() {
		return -1
	}
	items := messages.Array()
	for i := len(items) - 1; i >= 0; i-- {
		switch items[i].Get("role").String() {
		case RoleUser:
			return i
		case RoleSystem:
			if !ignoreSystem {
				return i
			}
		}
	}
	return -1
}

// ContentPath returns the sjson/gjson path of the content of message index.
func ContentPath(index int) string {
	return "messages." + strconv.Itoa(index) + ".content"
}
