// Package source defines the contract every provider adapter implements and
// the ordering the fallback orchestrator consumes. One subpackage per
// provider; adapters share the fetch layer and the htmlscan helpers but own
// their extraction heuristics, because each upstream breaks independently.
package source

import (
	"context"
	"time"

	"github.com/goalfeed/goal-feed/internal/schedule"
)

// Source produces zero or more events from one external provider.
//
// FetchSchedule returns nil (not an empty schedule) when the fetch or
// extraction yields nothing usable; the orchestrator then advances to the
// next tier. Implementations must not panic outward and must be safe to call
// concurrently with themselves and with other sources: every call builds its
// own accumulator and touches no shared state.
type Source interface {
	Name() string
	FetchSchedule(ctx context.Context) schedule.Schedule

	// LiveWindow is how long after kickoff this provider's events count as
	// live. Providers with timezone-converted or rounded kickoff times
	// report a wider window.
	LiveWindow() time.Duration
}
