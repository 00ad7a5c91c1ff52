package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if p.Theme != "Dracula" {
		t.Fatalf("Theme = %q, want Dracula", p.Theme)
	}
	if p.PollSeconds != 3 {
		t.Fatalf("PollSeconds = %d, want 3", p.PollSeconds)
	}
	if !p.AutoUpdate {
		t.Fatal("AutoUpdate = false, want true by default")
	}
}

func TestLoad_InvalidPollFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = \"Slate\"\npoll_seconds = 42\n"), 0o644); err != nil {
		t.Fatalf("write prefs: %v", err)
	}

	p := Load(path)
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want Slate", p.Theme)
	}
	if p.PollSeconds != 3 {
		t.Fatalf("PollSeconds = %d, want fallback 3", p.PollSeconds)
	}
}

func TestLoad_MalformedFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = [broken"), 0o644); err != nil {
		t.Fatalf("write prefs: %v", err)
	}

	p := Load(path)
	if p.Theme != "Dracula" || p.PollSeconds != 3 {
		t.Fatalf("prefs = %+v, want defaults", p)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	want := Prefs{Theme: "Slate", PollSeconds: 5, AutoUpdate: false}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got := Load(path)
	if got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}
}
