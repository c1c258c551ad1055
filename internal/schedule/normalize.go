package schedule

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Normalize flattens a schedule into the sorted Match list the presentation
// layer consumes. category filters DaySchedule keys by case-insensitive
// substring, with "football" and "soccer" always accepted as aliases of each
// other. window is the provider's live window (DefaultLiveWindow unless the
// source says otherwise).
//
// Events are deduplicated by (time, title) before sorting, first occurrence
// wins, and the final sort by time-of-day is stable, so equal-time entries
// keep their insertion order.
func Normalize(s Schedule, category string, now time.Time, window time.Duration) []Match {
	if window <= 0 {
		window = DefaultLiveWindow
	}
	var matches []Match
	seen := make(map[string]bool)
	for _, day := range sortedKeys(s) {
		ds := s[day]
		// Categories are walked in sorted order, not map order, so the
		// relative order of equal-time matches and the dedup winner are the
		// same on every call.
		for _, cat := range sortedKeys(ds) {
			if !categoryMatches(cat, category) {
				continue
			}
			for _, ev := range ds[cat] {
				key := ev.Time + "-" + ev.Title
				if seen[key] {
					continue
				}
				seen[key] = true
				matches = append(matches, eventToMatch(ev, cat, now, window))
			}
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		mi, _ := ParseClock(matches[i].Time)
		mj, _ := ParseClock(matches[j].Time)
		return mi < mj
	})
	return matches
}

// Deduplicate drops later (time, title) duplicates, keeping first occurrence
// order. Idempotent: applying it twice yields the same list as once.
func Deduplicate(events []Event) []Event {
	seen := make(map[string]bool, len(events))
	out := events[:0:0]
	for _, ev := range events {
		key := ev.Time + "-" + ev.Title
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ev)
	}
	return out
}

func categoryMatches(key, category string) bool {
	k := strings.ToLower(key)
	if category != "" && strings.Contains(k, strings.ToLower(category)) {
		return true
	}
	return strings.Contains(k, "football") || strings.Contains(k, "soccer")
}

func eventToMatch(ev Event, category string, now time.Time, window time.Duration) Match {
	m := Match{
		ID:          Slug(ev.Time + "-" + ev.Title),
		Time:        ev.Time,
		Title:       ev.Title,
		Competition: CleanCategory(category),
		Channels:    ev.Channels,
	}
	kickoff, ok := ClockToday(ev.Time, now)
	if !ok {
		return m
	}
	delta := kickoff.Sub(now)
	if delta <= 0 {
		m.IsLive = delta > -window
		return m
	}
	m.StartsIn = FormatStartsIn(int(math.Round(delta.Minutes())))
	return m
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
