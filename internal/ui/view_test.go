package ui

import (
	"strings"
	"testing"
	"time"

	"platewatch/internal/prefs"
	"platewatch/internal/registry"
)

func modelWithRows(t *testing.T, p prefs.Prefs, interval time.Duration, rows []registry.Row) Model {
	t.Helper()
	store := &registry.Store{}
	if len(rows) > 0 {
		if ok := store.ReplaceIfLarger(registry.Snapshot{Rows: rows, CapturedAt: time.Now()}); !ok {
			t.Fatal("seeding snapshot was dropped")
		}
	}
	return newModel(Options{
		Store:        store,
		Prefs:        p,
		PollInterval: interval,
	})
}

func TestRenderStats_ShowsCallSignCounts(t *testing.T) {
	m := modelWithRows(t,
		prefs.Prefs{Theme: "Dracula", PollSeconds: 3, AutoUpdate: true},
		3*time.Second,
		[]registry.Row{
			{ID: 1, PlateNumber: "AB123CD", CallSign: "falcon"},
			{ID: 2, PlateNumber: "XY987ZW", CallSign: "falcon"},
			{ID: 3, PlateNumber: "QQ555QQ", CallSign: "osprey"},
		})

	out := m.renderStats()
	for _, want := range []string{"Total Vehicles", "3", "Unique Call Signs", "falcon", "osprey"} {
		if !strings.Contains(out, want) {
			t.Fatalf("stats view missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "   2") {
		t.Fatalf("stats view missing falcon's plate count:\n%s", out)
	}
}

func TestIntervalLabels_FollowActiveInterval(t *testing.T) {
	// A -poll flag override makes the running interval differ from the
	// saved preference; labels must describe what is actually running.
	m := modelWithRows(t,
		prefs.Prefs{Theme: "Dracula", PollSeconds: 3, AutoUpdate: true},
		5*time.Second,
		nil)

	if got := m.intervalLabel(); got != "Every 5s" {
		t.Fatalf("intervalLabel = %q, want Every 5s", got)
	}
	if line := m.renderCountLine(); !strings.Contains(line, "every 5s") {
		t.Fatalf("count line = %q, want it to mention every 5s", line)
	}
	if settings := m.renderSettings(); !strings.Contains(settings, "every 5s") {
		t.Fatalf("settings view does not mention every 5s:\n%s", settings)
	}
}
