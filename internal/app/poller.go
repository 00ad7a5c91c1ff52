package app

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"platewatch/internal/alpha"
	"platewatch/internal/registry"
)

const defaultPollInterval = 3 * time.Second

// Poller drives the periodic fetch-compare-repaint cycle against the
// table gateway. One goroutine owns the loop, so fetches are strictly
// serial: a tick is never issued while the previous fetch is running.
// Controls never block the caller, so user input stays responsive even
// mid-fetch.
type Poller struct {
	store   *registry.Store
	gateway alpha.Fetcher

	enabled  atomic.Bool
	interval atomic.Int64 // nanoseconds

	kick    chan struct{} // manual refresh requests, coalesced
	changed chan struct{} // interval change notifications, coalesced
}

// StartPoller launches the background refresh loop and returns its
// control handle immediately.
func StartPoller(ctx context.Context, store *registry.Store, gateway alpha.Fetcher, interval time.Duration, enabled bool) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	p := &Poller{
		store:   store,
		gateway: gateway,
		kick:    make(chan struct{}, 1),
		changed: make(chan struct{}, 1),
	}
	p.enabled.Store(enabled)
	p.interval.Store(int64(interval))
	go p.run(ctx)
	return p
}

// SetEnabled turns auto-update on or off. Disabling takes effect before
// the next tick; a fetch already in flight completes and applies its
// result exactly once. Enabling fires a refresh immediately rather than
// waiting out the current interval.
func (p *Poller) SetEnabled(on bool) {
	was := p.enabled.Swap(on)
	if on && !was {
		p.RefreshNow()
	}
}

// SetInterval changes the tick cadence. Values outside the supported
// range are ignored.
func (p *Poller) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	p.interval.Store(int64(d))
	p.notify(p.changed)
}

// RefreshNow requests a single fetch, independent of the enabled flag.
// Back-to-back requests coalesce into one fetch.
func (p *Poller) RefreshNow() {
	p.notify(p.kick)
}

func (p *Poller) notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (p *Poller) run(ctx context.Context) {
	interval := time.Duration(p.interval.Load())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.changed:
			if d := time.Duration(p.interval.Load()); d != interval {
				interval = d
				ticker.Reset(interval)
			}
		case <-p.kick:
			refresh(ctx, p.store, p.gateway)
		case <-ticker.C:
			if p.enabled.Load() {
				refresh(ctx, p.store, p.gateway)
			}
		}
	}
}

// refresh performs one fetch-and-compare pass. Errors leave the prior
// snapshot in place; the next tick retries unconditionally.
func refresh(ctx context.Context, store *registry.Store, gateway alpha.Fetcher) {
	snap, err := gateway.FetchRows(ctx)
	if err != nil {
		store.RecordError(err)
		log.Printf("table poll failed: %v", err)
		return
	}
	store.ReplaceIfLarger(snap)
}
