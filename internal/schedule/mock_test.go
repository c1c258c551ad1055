package schedule_test

import (
	"testing"
	"time"

	"github.com/goalfeed/goal-feed/internal/schedule"
)

func TestMockScheduleShape(t *testing.T) {
	now := time.Date(2026, time.January, 31, 13, 0, 0, 0, time.UTC)
	s := schedule.MockSchedule(now)
	if !s.HasEvents() {
		t.Fatal("mock schedule has no events")
	}
	ds, ok := s[schedule.DayKey(now)]
	if !ok {
		t.Fatalf("mock schedule not keyed by today: keys %v", keysOf(s))
	}
	if len(ds["Soccer"]) == 0 || len(ds["UEFA Champions League"]) == 0 {
		t.Fatalf("mock categories missing: %v", ds)
	}

	matches := schedule.Normalize(s, "Soccer", now, schedule.DefaultLiveWindow)
	var live, upcoming int
	for _, m := range matches {
		if m.IsLive {
			live++
		}
		if m.StartsIn != "" {
			upcoming++
		}
	}
	if live == 0 {
		t.Error("mock schedule has no live match")
	}
	if upcoming == 0 {
		t.Error("mock schedule has no upcoming match")
	}
}

func TestMockChannels(t *testing.T) {
	chs := schedule.MockChannels()
	if len(chs) == 0 {
		t.Fatal("no mock channels")
	}
	for _, c := range chs {
		if c.ID == "" || c.Name == "" {
			t.Errorf("incomplete channel: %+v", c)
		}
	}
}

func keysOf(s schedule.Schedule) []string {
	var out []string
	for k := range s {
		out = append(out, k)
	}
	return out
}
