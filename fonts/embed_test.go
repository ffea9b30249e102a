package fonts

import "testing"

func TestLoadAcceptsPrefixes(t *testing.T) {
	for _, name := range []string{"go-regular", "builtin:go-regular", "embed:go-regular.ttf", "Built-In:GO-REGULAR"} {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) error: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("Load(%q) returned empty font", name)
		}
	}
}

func TestLoadUnknownFont(t *testing.T) {
	if _, err := Load("builtin:comic-sans"); err == nil {
		t.Fatalf("expected error for unknown font")
	}
}

func TestNamesContainsDefault(t *testing.T) {
	found := false
	for _, n := range Names() {
		if n == Default {
			found = true
		}
	}
	if !found {
		t.Fatalf("default font %s missing from %v", Default, Names())
	}
}
