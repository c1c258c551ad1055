package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Live windows: how long after kickoff an event still counts as live. Covers
// half-time, stoppage and overtime. The wide window is for feeds whose
// kickoff times come from timezone-converted strings and land a little off.
// Both are empirically chosen; override via config, don't assume optimal.
const (
	DefaultLiveWindow = 120 * time.Minute
	WideLiveWindow    = 150 * time.Minute
)

// ParseClock parses "HH:MM" (or "H:MM") into minutes since midnight.
// Returns ok=false for anything that isn't a plausible wall-clock time.
func ParseClock(s string) (int, bool) {
	h, m, ok := splitClock(s)
	if !ok {
		return 0, false
	}
	return h*60 + m, true
}

func splitClock(s string) (h, m int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err = strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// Clock formats t as "HH:MM".
func Clock(t time.Time) string {
	return t.Format("15:04")
}

// ClockToday anchors a "HH:MM" string to now's date in now's location.
// ok=false when the string isn't a clock time.
func ClockToday(clock string, now time.Time) (time.Time, bool) {
	h, m, ok := splitClock(clock)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location()), true
}

// FormatStartsIn renders a positive minute count as a human countdown:
// 45 → "45min", 90 → "1h 30min", 120 → "2h" (no minutes suffix at zero).
func FormatStartsIn(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dmin", h, m)
	}
	return fmt.Sprintf("%dh", h)
}
