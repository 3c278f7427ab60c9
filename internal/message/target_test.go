package message

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestFindTarget(t *testing.T) {
	cases := []struct {
		name         string
		messages     string
		ignoreSystem bool
		want         int
	}{
		{"last user", `[{"role":"system","content":"s"},{"role":"user","content":"u1"},{"role":"assistant","content":"a"},{"role":"user","content":"u2"}]`, false, 3},
		{"user before assistant tail", `[{"role":"user","content":"u"},{"role":"assistant","content":"a"}]`, false, 0},
		{"system eligible", `[{"role":"user","content":"u"},{"role":"system","content":"s"}]`, false, 1},
		{"system ignored", `[{"role":"user","content":"u"},{"role":"system","content":"s"}]`, true, 0},
		{"only system ignored", `[{"role":"system","content":"s"}]`, true, -1},
		{"no eligible role", `[{"role":"assistant","content":"a"},{"role":"tool","content":"t"}]`, false, -1},
		{"empty", `[]`, false, -1},
		{"not an array", `{"role":"user"}`, false, -1},
		{"role is case sensitive", `[{"role":"User","content":"u"}]`, false, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FindTarget(gjson.Parse(tc.messages), tc.ignoreSystem); got != tc.want {
				t.Fatalf("FindTarget() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestContentPath(t *testing.T) {
	if got := ContentPath(12); got != "messages.12.content" {
		t.Fatalf("ContentPath(12) = %q", got)
	}
}
