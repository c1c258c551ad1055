// Package feed runs the tiered fallback chain over the source adapters.
// Tiers are tried in order and the first one producing events wins; the
// synthetic mock schedule is the implicit last tier, so a caller always
// gets a renderable schedule no matter how many upstreams are down.
package feed

import (
	"context"
	"log"
	"time"

	"github.com/goalfeed/goal-feed/internal/metrics"
	"github.com/goalfeed/goal-feed/internal/schedule"
	"github.com/goalfeed/goal-feed/internal/source"
)

// MockTier is the Result.Tier value when every configured source failed.
const MockTier = "mock"

// Aggregator owns the tier order. Sources are tried front to back.
type Aggregator struct {
	Sources []source.Source

	Now func() time.Time
}

func New(sources ...source.Source) *Aggregator {
	return &Aggregator{Sources: sources}
}

// Result is one fallback pass: the winning schedule, which tier produced
// it, and that tier's live window for downstream normalization.
type Result struct {
	Schedule schedule.Schedule
	Tier     string
	Window   time.Duration
}

// Fetch walks the tiers and returns the first non-empty schedule. A source
// that panics counts as a failed tier, not a crashed refresh; the mock tier
// never fails.
func (a *Aggregator) Fetch(ctx context.Context) Result {
	for _, src := range a.Sources {
		sched := a.try(ctx, src)
		if sched == nil || !sched.HasEvents() {
			metrics.TierResults.WithLabelValues(src.Name(), "empty").Inc()
			log.Printf("[feed] tier %s produced nothing, falling through", src.Name())
			continue
		}
		metrics.TierResults.WithLabelValues(src.Name(), "ok").Inc()
		return Result{Schedule: sched, Tier: src.Name(), Window: src.LiveWindow()}
	}

	metrics.TierResults.WithLabelValues(MockTier, "ok").Inc()
	log.Printf("[feed] all tiers empty, serving mock schedule")
	return Result{
		Schedule: schedule.MockSchedule(a.now()),
		Tier:     MockTier,
		Window:   schedule.DefaultLiveWindow,
	}
}

// try isolates one tier. Adapters should not panic, but a markup change in
// a hostile upstream is exactly where surprises come from.
func (a *Aggregator) try(ctx context.Context, src source.Source) (sched schedule.Schedule) {
	defer func() {
		if r := recover(); r != nil {
			metrics.TierResults.WithLabelValues(src.Name(), "panic").Inc()
			log.Printf("[feed] tier %s panicked: %v", src.Name(), r)
			sched = nil
		}
	}()
	return src.FetchSchedule(ctx)
}

// Matches runs a fallback pass and normalizes the winner into the sorted
// match list for category, using the winning tier's live window.
func (a *Aggregator) Matches(ctx context.Context, category string) []schedule.Match {
	res := a.Fetch(ctx)
	return schedule.Normalize(res.Schedule, category, a.now(), res.Window)
}

func (a *Aggregator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
