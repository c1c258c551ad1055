package sportswatcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goalfeed/goal-feed/internal/schedule"
	"github.com/goalfeed/goal-feed/internal/source/sportswatcher"
	"github.com/goalfeed/goal-feed/internal/streamid"
)

var refNow = time.Date(2026, time.January, 31, 14, 45, 0, 0, time.UTC)

const feed = `[
 {"MatchID":"m1","League":"Premier League","Team1":"Arsenal","Team2":"Chelsea",
  "Date":"January 31, 2026","Time":"10:00 AM",
  "IframeURL":"https://embed.selltvonline.shop/live/embed.php?ch=es46"},
 {"MatchID":"m2","League":"NBA Regular Season","Team1":"Lakers","Team2":"Celtics",
  "Date":"January 31, 2026","Time":"7:30 PM",
  "IframeURL":"https://embed.example/nba"},
 {"MatchID":"m3","League":"La Liga","Team1":"Girona","Team2":"Betis",
  "Date":"not a date","Time":"10:00 AM",
  "IframeURL":"https://embed.example/laliga"},
 {"MatchID":"m4","League":"Serie A","Team1":"","Team2":"Roma",
  "Date":"January 31, 2026","Time":"3:00 PM",
  "IframeURL":"https://embed.example/seriea"}
]`

func newScraper(srv *httptest.Server) *sportswatcher.Scraper {
	s := sportswatcher.New(srv.URL)
	s.Client = srv.Client()
	s.Now = func() time.Time { return refNow }
	s.Loc = time.UTC
	return s
}

func TestFetchScheduleFiltersAndConverts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(feed))
	}))
	defer srv.Close()

	sched := newScraper(srv).FetchSchedule(context.Background())
	if sched == nil {
		t.Fatal("FetchSchedule returned nil")
	}
	events := sched[schedule.DayKey(refNow)]["Football 2"]
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 (NBA, bad date, empty team dropped): %+v", len(events), events)
	}

	ev := events[0]
	if ev.Title != "Arsenal vs Chelsea" {
		t.Errorf("title = %q", ev.Title)
	}
	// 10:00 AM US-East is 15:00 UTC.
	if ev.Time != "15:00" {
		t.Errorf("time = %q, want 15:00", ev.Time)
	}
	if ev.Channels[0].Name != "Stream 1" {
		t.Errorf("channel name = %q", ev.Channels[0].Name)
	}

	ref := streamid.Parse(ev.Channels[0].ID)
	if ref.Kind != streamid.KindEncodedURL {
		t.Fatalf("channel id kind = %v, want encoded-url", ref.Kind)
	}
	if ref.URL != "https://embed.selltvonline.shop/live/embed.php?ch=es46" {
		t.Errorf("decoded URL = %q", ref.URL)
	}
}

func TestLiveWindowIsWide(t *testing.T) {
	s := sportswatcher.New("http://unused")
	if s.LiveWindow() != schedule.WideLiveWindow {
		t.Fatalf("LiveWindow = %v, want %v", s.LiveWindow(), schedule.WideLiveWindow)
	}
}

func TestFetchScheduleNilOnBadFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	if sched := newScraper(srv).FetchSchedule(context.Background()); sched != nil {
		t.Fatalf("want nil on undecodable feed, got %+v", sched)
	}
}

func TestFetchScheduleNilWhenAllFiltered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"League":"NHL","Team1":"A","Team2":"B","Date":"January 31, 2026","Time":"1:00 PM","IframeURL":"https://x.example/y"}]`))
	}))
	defer srv.Close()

	if sched := newScraper(srv).FetchSchedule(context.Background()); sched != nil {
		t.Fatalf("want nil when every row is filtered, got %+v", sched)
	}
}
