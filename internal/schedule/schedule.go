// Package schedule holds the common schedule model every source adapter
// normalizes into, plus the pure helpers (clock parsing, title splitting,
// match derivation) shared by the scrapers and the HTTP layer.
//
// Lifecycle: Event and Channel values are built once per scrape and never
// mutated; Match values are derived fresh on every normalization pass against
// a caller-supplied "now" and discarded after rendering. Nothing here touches
// the network or any persistent store.
package schedule

import "time"

// Channel is a single broadcast source for an event. ID is opaque to this
// package: its prefix encodes which provider can resolve it (see streamid).
type Channel struct {
	Name    string `json:"channel_name"`
	ID      string `json:"channel_id"`
	LogoURL string `json:"logo_url,omitempty"`
}

// Event is one scheduled occurrence as recovered from a provider.
// Time is a wall-clock "HH:MM" string for the day the event is bucketed
// under. Channels2 is a secondary channel list some providers carry; scrapers
// never synthesize it but it is preserved when upstream sends it.
type Event struct {
	Time      string    `json:"time"`
	Title     string    `json:"event"`
	Channels  []Channel `json:"channels"`
	Channels2 []Channel `json:"channels2,omitempty"`
}

// DaySchedule maps a provider-defined category label ("Soccer", "UEFA
// Champions League", ...) to that day's events. Category keys are free text,
// not an enum.
type DaySchedule map[string][]Event

// Schedule maps a day key to that day's categories. Day keys are ISO dates
// ("2006-01-02") internally; DayLabel formats them for display at the API
// boundary. Adapters merged across a midnight boundary therefore agree on
// the bucket.
type Schedule map[string]DaySchedule

// Match is the presentation-facing projection of an Event. IsLive and
// StartsIn are derived from Time against a reference "now" at normalization
// time; a Match is a snapshot, not a live-updating entity.
type Match struct {
	ID          string    `json:"id"`
	Time        string    `json:"time"`
	Title       string    `json:"title"`
	Competition string    `json:"competition"`
	Channels    []Channel `json:"channels"`
	IsLive      bool      `json:"isLive"`
	StartsIn    string    `json:"startsIn,omitempty"`
}

// Add appends ev under day/category, creating buckets as needed.
func (s Schedule) Add(day, category string, ev Event) {
	ds, ok := s[day]
	if !ok {
		ds = DaySchedule{}
		s[day] = ds
	}
	ds[category] = append(ds[category], ev)
}

// HasEvents reports whether any category of any day holds at least one event.
// The orchestrator treats a schedule without events as a tier failure, not as
// "zero matches today": the two are indistinguishable after a markup change.
func (s Schedule) HasEvents() bool {
	for _, ds := range s {
		for _, events := range ds {
			if len(events) > 0 {
				return true
			}
		}
	}
	return false
}

// DayKey returns the canonical schedule key for t's date.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// DayLabel formats an ISO day key for display ("Monday, 2 January 2006").
// Keys that don't parse as ISO dates (e.g. labels passed through verbatim
// from an upstream API) are returned unchanged.
func DayLabel(key string) string {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return key
	}
	return t.Format("Monday, 2 January 2006")
}

// ParseDayLabel is the inverse of DayLabel: it maps an upstream display label
// back to an ISO key where possible, so API-sourced schedules merge into the
// same buckets the scrapers use.
func ParseDayLabel(label string) (string, bool) {
	t, err := time.Parse("Monday, 2 January 2006", label)
	if err != nil {
		return "", false
	}
	return DayKey(t), true
}
