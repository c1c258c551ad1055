// Package sportswatcher consumes a published JSON feed of matches rather
// than scraping markup. The feed mixes sports, carries US-East kickoff
// times, and already includes the embed URL per match, which travels inside
// the channel id so resolution needs no second hop.
package sportswatcher

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/goalfeed/goal-feed/internal/fetch"
	"github.com/goalfeed/goal-feed/internal/schedule"
	"github.com/goalfeed/goal-feed/internal/streamid"
)

// excludedKeywords drops non-football entries by league name; the feed has
// no sport field.
var excludedKeywords = []string{
	"nba", "nfl", "nhl", "mlb", "ufc", "boxing", "wwe", "basketball",
	"formula 1", "moto gp", "cricket", "rugby", "tennis", "golf", "hockey", "aew",
}

// feedZone anchors the feed's 12-hour kickoff times. The feed labels them
// EST year-round.
var feedZone = time.FixedZone("EST", -5*60*60)

type apiMatch struct {
	MatchID   string `json:"MatchID"`
	League    string `json:"League"`
	Team1     string `json:"Team1"`
	Team1Logo string `json:"Team1Logo"`
	Team2     string `json:"Team2"`
	Team2Logo string `json:"Team2Logo"`
	Date      string `json:"Date"`
	Time      string `json:"Time"`
	IframeURL string `json:"IframeURL"`
}

// Scraper reads the sportswatcher feed.
type Scraper struct {
	FeedURL string
	Client  *http.Client

	Now func() time.Time
	// Loc is the zone kickoff times are rendered in; nil means local.
	Loc *time.Location
}

func New(feedURL string) *Scraper {
	return &Scraper{FeedURL: feedURL}
}

func (s *Scraper) Name() string { return "sportswatcher" }

// LiveWindow is wider than the default: the feed's kickoff times survive a
// zone conversion and minute rounding, so the usual cutoff clips matches
// still in stoppage time.
func (s *Scraper) LiveWindow() time.Duration { return schedule.WideLiveWindow }

// FetchSchedule pulls and filters the feed. Returns nil on fetch or decode
// failure and when no football rows survive the filter.
func (s *Scraper) FetchSchedule(ctx context.Context) schedule.Schedule {
	body, err := fetch.Page(ctx, s.FeedURL, fetch.Options{
		Client:   s.Client,
		Accept:   "application/json",
		MinLen:   -1,
		Provider: "sportswatcher",
	})
	if err != nil {
		log.Printf("[sportswatcher] feed fetch failed: %v", err)
		return nil
	}
	var rows []apiMatch
	if err := json.Unmarshal(body, &rows); err != nil {
		log.Printf("[sportswatcher] feed decode failed: %v", err)
		return nil
	}

	sched := schedule.Schedule{}
	day := schedule.DayKey(s.now())
	count := 0
	for _, row := range rows {
		if excluded(row.League) {
			continue
		}
		kickoff, ok := s.parseKickoff(row.Date, row.Time)
		if !ok {
			continue
		}
		if row.Team1 == "" || row.Team2 == "" || row.IframeURL == "" {
			continue
		}
		sched.Add(day, "Football 2", schedule.Event{
			Time:  schedule.Clock(kickoff),
			Title: row.Team1 + " vs " + row.Team2,
			Channels: []schedule.Channel{{
				Name:    "Stream 1",
				ID:      streamid.EncodeURL(row.IframeURL),
				LogoURL: "/placeholder-logo.png",
			}},
		})
		count++
	}
	log.Printf("[sportswatcher] found %d matches", count)
	if count == 0 {
		return nil
	}
	return sched
}

func excluded(league string) bool {
	l := strings.ToLower(league)
	for _, k := range excludedKeywords {
		if strings.Contains(l, k) {
			return true
		}
	}
	return false
}

// parseKickoff combines the feed's "January 31, 2026" date and "10:00 AM"
// time, anchors them in the feed zone and converts to the display zone.
func (s *Scraper) parseKickoff(date, clock string) (time.Time, bool) {
	t, err := time.ParseInLocation("January 2, 2006 3:04 PM", date+" "+clock, feedZone)
	if err != nil {
		return time.Time{}, false
	}
	return t.In(s.loc()), true
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Scraper) loc() *time.Location {
	if s.Loc != nil {
		return s.Loc
	}
	return time.Local
}
