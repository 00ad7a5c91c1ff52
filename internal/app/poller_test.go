package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"platewatch/internal/registry"
)

// fakeGateway counts fetches and serves a canned snapshot.
type fakeGateway struct {
	calls atomic.Int64
	rows  atomic.Int64
	fail  atomic.Bool
}

func (f *fakeGateway) FetchRows(ctx context.Context) (registry.Snapshot, error) {
	f.calls.Add(1)
	if f.fail.Load() {
		return registry.Snapshot{}, errors.New("network down")
	}
	n := int(f.rows.Load())
	rows := make([]registry.Row, n)
	for i := range rows {
		rows[i] = registry.Row{ID: int64(i + 1)}
	}
	return registry.Snapshot{Rows: rows, CapturedAt: time.Now()}, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestPoller_DisabledDoesNotTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	gw := &fakeGateway{}
	store := &registry.Store{}
	StartPoller(ctx, store, gw, 10*time.Millisecond, false)

	time.Sleep(100 * time.Millisecond)
	if n := gw.calls.Load(); n != 0 {
		t.Fatalf("fetches while disabled = %d, want 0", n)
	}
}

func TestPoller_RefreshNowFetchesOnceWhileDisabled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	gw := &fakeGateway{}
	gw.rows.Store(3)
	store := &registry.Store{}
	p := StartPoller(ctx, store, gw, 10*time.Millisecond, false)

	p.RefreshNow()
	waitFor(t, func() bool { return gw.calls.Load() == 1 })

	time.Sleep(100 * time.Millisecond)
	if n := gw.calls.Load(); n != 1 {
		t.Fatalf("fetches after one manual refresh = %d, want exactly 1", n)
	}
	if got := len(store.State().Snapshot.Rows); got != 3 {
		t.Fatalf("snapshot rows = %d, want 3", got)
	}
}

func TestPoller_EnabledTicksAndDisableStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	gw := &fakeGateway{}
	store := &registry.Store{}
	p := StartPoller(ctx, store, gw, 10*time.Millisecond, true)

	waitFor(t, func() bool { return gw.calls.Load() >= 3 })

	p.SetEnabled(false)
	// Allow any in-flight tick to settle, then confirm the count holds.
	time.Sleep(50 * time.Millisecond)
	n := gw.calls.Load()
	time.Sleep(100 * time.Millisecond)
	if after := gw.calls.Load(); after != n {
		t.Fatalf("fetches continued after disable: %d -> %d", n, after)
	}
}

func TestPoller_ReEnableFiresImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	gw := &fakeGateway{}
	store := &registry.Store{}
	p := StartPoller(ctx, store, gw, time.Hour, false)

	p.SetEnabled(true)
	waitFor(t, func() bool { return gw.calls.Load() >= 1 })
}

func TestPoller_ErrorKeepsSnapshotAndRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	gw := &fakeGateway{}
	gw.rows.Store(5)
	store := &registry.Store{}
	p := StartPoller(ctx, store, gw, 10*time.Millisecond, false)

	p.RefreshNow()
	waitFor(t, func() bool { return len(store.State().Snapshot.Rows) == 5 })

	gw.fail.Store(true)
	p.SetEnabled(true)
	waitFor(t, func() bool { return store.State().LastError != nil })

	st := store.State()
	if len(st.Snapshot.Rows) != 5 {
		t.Fatalf("snapshot rows = %d after error, want 5 retained", len(st.Snapshot.Rows))
	}

	// No backoff: ticks keep coming while the gateway is down.
	n := gw.calls.Load()
	waitFor(t, func() bool { return gw.calls.Load() > n+2 })

	gw.fail.Store(false)
	waitFor(t, func() bool { return store.State().LastError == nil })
}

func TestPoller_SetIntervalSpeedsUpTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	gw := &fakeGateway{}
	store := &registry.Store{}
	p := StartPoller(ctx, store, gw, time.Hour, true)

	time.Sleep(30 * time.Millisecond)
	if n := gw.calls.Load(); n != 0 {
		t.Fatalf("fetches before interval change = %d, want 0", n)
	}

	p.SetInterval(10 * time.Millisecond)
	waitFor(t, func() bool { return gw.calls.Load() >= 2 })
}
