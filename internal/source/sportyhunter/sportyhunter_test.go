package sportyhunter_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goalfeed/goal-feed/internal/schedule"
	"github.com/goalfeed/goal-feed/internal/source/sportyhunter"
)

var refNow = time.Date(2026, time.January, 31, 14, 45, 0, 0, time.UTC)

func newScraper(srv *httptest.Server) *sportyhunter.Scraper {
	s := sportyhunter.New(srv.URL)
	s.Client = srv.Client()
	s.Now = func() time.Time { return refNow }
	s.Loc = time.UTC
	return s
}

func serve(t *testing.T, page string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
}

func nextDataPage(payload string) string {
	return `<html><body><div id="app"></div>` +
		`<script id="__NEXT_DATA__" type="application/json">` + payload + `</script>` +
		`</body></html>`
}

func TestFetchScheduleDirectMatches(t *testing.T) {
	kick := time.Date(2026, time.January, 31, 20, 30, 0, 0, time.UTC)
	payload := fmt.Sprintf(`{"props":{"pageProps":{"matches":[
		{"slug":"slg-Brighton-vs-Everton-3duPQw3Jex9","timestamp":%d,
		 "homeTeam":{"name":"Brighton"},"awayTeam":{"name":"Everton"}},
		{"id":9001,"timestamp":%d,"home_team":"Lille","away_team":"Nice"}
	]}}}`, kick.Unix(), kick.Add(time.Hour).Unix())

	srv := serve(t, nextDataPage(payload))
	defer srv.Close()

	sched := newScraper(srv).FetchSchedule(context.Background())
	if sched == nil {
		t.Fatal("FetchSchedule returned nil")
	}
	events := sched[schedule.DayKey(refNow)]["Soccer"]
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(events), events)
	}
	if events[0].Title != "Brighton vs Everton" || events[0].Time != "20:30" {
		t.Errorf("event[0] = %+v", events[0])
	}
	if got := events[0].Channels[0].ID; got != "sh-slg-Brighton-vs-Everton-3duPQw3Jex9" {
		t.Errorf("channel id = %q", got)
	}
	// Numeric id is usable when the match has no slug.
	if got := events[1].Channels[0].ID; got != "sh-9001" {
		t.Errorf("numeric-id channel = %q", got)
	}
	if events[1].Time != "21:30" {
		t.Errorf("event[1].Time = %q", events[1].Time)
	}
}

func TestFetchScheduleDehydratedState(t *testing.T) {
	kick := time.Date(2026, time.January, 31, 18, 0, 0, 0, time.UTC)
	payload := fmt.Sprintf(`{"props":{"pageProps":{"dehydratedState":{"queries":[
		{"state":{"data":{"matches":[
			{"slug":"slg-Ajax-vs-PSV-abc","timestamp":%d,
			 "homeTeam":{"name":"Ajax"},"awayTeam":{"name":"PSV"}}]}}},
		{"state":{"data":[
			{"slug":"slg-Porto-vs-Braga-def","timestamp":%d,
			 "homeTeam":{"name":"Porto"},"awayTeam":{"name":"Braga"}}]}}
	]}}}}`, kick.Unix(), kick.Add(30*time.Minute).Unix())

	srv := serve(t, nextDataPage(payload))
	defer srv.Close()

	events := newScraper(srv).FetchSchedule(context.Background())[schedule.DayKey(refNow)]["Soccer"]
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 (both query shapes): %+v", len(events), events)
	}
	if events[0].Title != "Ajax vs PSV" || events[1].Title != "Porto vs Braga" {
		t.Errorf("events = %+v", events)
	}
}

func TestFetchScheduleFallbackScan(t *testing.T) {
	page := `<html><body>
	<div class="match-row">
		<img src="/logos/bha.png"><img src="/logos/eve.png">
		<span>20:30</span>
		<a href="/match/slg-Brighton-and-Hove-Albion-vs-Everton-3duPQw3Jex9">watch</a>
	</div>
	<div class="no-img-row"><span>21:00</span><a href="/match/slg-X-vs-Y-z1">watch</a></div>
	</body></html>`

	srv := serve(t, page)
	defer srv.Close()

	events := newScraper(srv).FetchSchedule(context.Background())[schedule.DayKey(refNow)]["Soccer"]
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 (img-less row skipped): %+v", len(events), events)
	}
	ev := events[0]
	if ev.Title != "Brighton and Hove Albion vs Everton" {
		t.Errorf("title from slug = %q", ev.Title)
	}
	if ev.Time != "20:30" {
		t.Errorf("time = %q", ev.Time)
	}
	if ev.Channels[0].ID != "sh-slg-Brighton-and-Hove-Albion-vs-Everton-3duPQw3Jex9" {
		t.Errorf("channel id = %q", ev.Channels[0].ID)
	}
}

func TestFetchScheduleNilOnGarbage(t *testing.T) {
	srv := serve(t, nextDataPage(`{"props":{`))
	defer srv.Close()

	if sched := newScraper(srv).FetchSchedule(context.Background()); sched != nil {
		t.Fatalf("want nil for broken payload and empty page, got %+v", sched)
	}
}

func TestResolveStreamFirstIframe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/match/slg-Ajax-vs-PSV-abc" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<html><body>
			<iframe src="https://embed.example/player/42"></iframe>
			<iframe src="https://ads.example/banner"></iframe>
		</body></html>`))
	}))
	defer srv.Close()

	got := newScraper(srv).ResolveStream(context.Background(), "slg-Ajax-vs-PSV-abc")
	if got != "https://embed.example/player/42" {
		t.Fatalf("ResolveStream = %q", got)
	}
}

func TestResolveStreamEmptyWithoutIframe(t *testing.T) {
	srv := serve(t, `<html><body><p>no player</p></body></html>`)
	defer srv.Close()

	if got := newScraper(srv).ResolveStream(context.Background(), "x"); got != "" {
		t.Fatalf("ResolveStream = %q, want empty", got)
	}
}
