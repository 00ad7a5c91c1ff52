package ui

import "testing"

func TestGetTheme_UnknownFallsBackToDracula(t *testing.T) {
	got := GetTheme("NoSuchTheme")
	if got.Name != "Dracula" {
		t.Fatalf("GetTheme fallback = %q, want Dracula", got.Name)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	names := ThemeNames()
	if len(names) < 2 {
		t.Fatalf("expected at least two themes, got %d", len(names))
	}

	seen := map[string]bool{}
	current := names[0]
	for range names {
		seen[current] = true
		current = NextTheme(current)
	}
	if current != names[0] {
		t.Fatalf("cycle did not return to %q, ended at %q", names[0], current)
	}
	for _, name := range names {
		if !seen[name] {
			t.Fatalf("theme %q never reached in cycle", name)
		}
	}
}

func TestNextTheme_UnknownStartsAtFirst(t *testing.T) {
	if got := NextTheme("NoSuchTheme"); got != ThemeNames()[0] {
		t.Fatalf("NextTheme(unknown) = %q, want %q", got, ThemeNames()[0])
	}
}
