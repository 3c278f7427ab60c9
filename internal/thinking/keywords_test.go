package thinking

import "testing"

func TestNewKeywordSet_ExtendOrReplace(t *testing.T) {
	extended := NewKeywordSet([]string{" PONDER ", "count", ""}, false)
	if extended.Len() != len(DefaultKeywords())+1 {
		t.Fatalf("expected defaults plus one custom keyword, got %d", extended.Len())
	}
	kws := extended.Keywords()
	if kws[len(kws)-1] != "ponder" {
		t.Fatalf("expected custom keyword appended in lower case, got %q", kws[len(kws)-1])
	}

	replaced := NewKeywordSet([]string{"Ponder", "ponder"}, true)
	if replaced.Len() != 1 || replaced.Keywords()[0] != "ponder" {
		t.Fatalf("expected only [ponder], got %q", replaced.Keywords())
	}
	if _, ok := replaced.Match("how many letters"); ok {
		t.Fatal("expected built-in keywords to be gone after override")
	}

	empty := NewKeywordSet(nil, true)
	if empty.Len() != 0 {
		t.Fatalf("expected empty set, got %q", empty.Keywords())
	}
}

func TestKeywordSet_Match(t *testing.T) {
	set := NewKeywordSet(nil, false)

	kw, ok := set.Match("How Many letters in strawberry")
	if !ok || kw != "how many" {
		t.Fatalf("expected first match %q, got (%q, %v)", "how many", kw, ok)
	}

	if _, ok := set.Match("hi"); ok {
		t.Fatal("expected no match for plain greeting")
	}

	// Substring matching without word boundaries.
	kw, ok = set.Match("the accountant")
	if !ok || kw != "count" {
		t.Fatalf("expected substring match %q inside %q, got (%q, %v)", "count", "accountant", kw, ok)
	}

	var nilSet *KeywordSet
	if _, ok := nilSet.Match("count"); ok {
		t.Fatal("expected nil set to never match")
	}
}

func TestContainsTrigger(t *testing.T) {
	for _, text := range []string{"ultrathink", "please UltraThink this", "xultrathinkingx"} {
		if !ContainsTrigger(text) {
			t.Fatalf("expected trigger in %q", text)
		}
	}
	if ContainsTrigger("ultra think") {
		t.Fatal("expected split words not to trigger")
	}
}

func TestDefaultKeywords_ReturnsCopy(t *testing.T) {
	a := DefaultKeywords()
	a[0] = "mutated"
	if DefaultKeywords()[0] == "mutated" {
		t.Fatal("expected DefaultKeywords to return a copy")
	}
}
