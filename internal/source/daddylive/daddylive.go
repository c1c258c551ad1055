// Package daddylive scrapes the daddylive-style schedule pages. The sites
// rotate markup frequently, so extraction is heuristic: any small block
// element containing a kickoff time and a link is a candidate match row.
package daddylive

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/goalfeed/goal-feed/internal/fetch"
	"github.com/goalfeed/goal-feed/internal/schedule"
	"github.com/goalfeed/goal-feed/internal/source/htmlscan"
)

// MinTitleLength drops leftovers that are too short to be a fixture name
// after time and keyword stripping.
const MinTitleLength = 3

// endpoints is the ladder tried in order; the first one serving a usable
// body wins. The category listing is most specific, the root page the
// broadest net.
var endpoints = []string{
	"/index.php?cat=Soccer",
	"/24-hours-games.php",
	"/schedule.php",
	"/",
}

var (
	timeRe = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
	// Stream link shapes seen across mirrors.
	idRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)stream-(\d+)\.php`),
		regexp.MustCompile(`(?i)id=(\d+)`),
		regexp.MustCompile(`(?i)/(\d+)\.php`),
	}
	liveWordRe   = regexp.MustCompile(`(?i)live`)
	streamWordRe = regexp.MustCompile(`(?i)stream`)
	leadSepRe    = regexp.MustCompile(`^[-–: ]+`)
	trailSepRe   = regexp.MustCompile(`[-–: ]+$`)
)

// Scraper fetches and parses one daddylive mirror.
type Scraper struct {
	BaseURL string
	Client  *http.Client
	// MinLen overrides the default usefulness threshold for fetched pages.
	MinLen int

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

func New(baseURL string) *Scraper {
	return &Scraper{BaseURL: baseURL}
}

func (s *Scraper) Name() string { return "daddylive" }

func (s *Scraper) LiveWindow() time.Duration { return schedule.DefaultLiveWindow }

// FetchSchedule walks the endpoint ladder and extracts today's fixtures.
// Returns nil when no endpoint serves a usable page or extraction finds
// nothing; the caller falls through to the next tier.
func (s *Scraper) FetchSchedule(ctx context.Context) schedule.Schedule {
	body, ep, err := fetch.FirstUsable(ctx, s.BaseURL, endpoints, fetch.Options{
		Client:   s.Client,
		Referer:  s.BaseURL,
		MinLen:   s.MinLen,
		Provider: "daddylive",
	})
	if err != nil {
		log.Printf("[daddylive] no usable endpoint: %v", err)
		return nil
	}
	log.Printf("[daddylive] fetched %d bytes from %s", len(body), ep)

	sched := ParseSchedule(body, s.now())
	if !sched.HasEvents() {
		log.Printf("[daddylive] parsed page but found 0 matches")
		return nil
	}
	return sched
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ParseSchedule extracts match rows from a schedule page and buckets them
// under now's date in the "Soccer" category. Exported so fixtures saved from
// live mirrors can be replayed in tests and the fetch CLI.
func ParseSchedule(body []byte, now time.Time) schedule.Schedule {
	sched := schedule.Schedule{}
	root, err := htmlscan.Parse(body)
	if err != nil {
		return sched
	}

	var events []schedule.Event
	for _, el := range htmlscan.Elements(root, "div", "p", "li", "tr") {
		text := htmlscan.FlatText(el)
		// Long text is a container wrapping many rows, short text is noise.
		if len(text) > 200 || len(text) < 10 {
			continue
		}
		clock := timeRe.FindString(text)
		if clock == "" {
			continue
		}
		anchor := htmlscan.First(el, "a")
		if anchor == nil {
			continue
		}
		streamID := extractStreamID(htmlscan.Attr(anchor, "href"))

		title := cleanTitle(text, clock)
		if len(title) <= MinTitleLength ||
			strings.Contains(title, "24/7") || strings.Contains(title, "Channels") {
			continue
		}

		ev := schedule.Event{Time: clock, Title: title}
		if streamID != "" {
			ev.Channels = []schedule.Channel{{
				Name:    "Main Stream",
				ID:      streamID,
				LogoURL: "/placeholder-logo.png",
			}}
		}
		events = append(events, ev)
	}

	// Nested wrappers make the same row match twice; keep the first.
	events = schedule.Deduplicate(events)
	for _, ev := range events {
		sched.Add(schedule.DayKey(now), "Soccer", ev)
	}
	return sched
}

func extractStreamID(href string) string {
	if href == "" {
		return ""
	}
	for _, re := range idRes {
		if m := re.FindStringSubmatch(href); m != nil {
			return m[1]
		}
	}
	return ""
}

// cleanTitle strips the kickoff time, "Live"/"Stream" badges and the
// separators they leave behind.
func cleanTitle(text, clock string) string {
	title := strings.Replace(text, clock, "", 1)
	title = replaceFirst(liveWordRe, title)
	title = replaceFirst(streamWordRe, title)
	title = strings.TrimSpace(title)
	title = leadSepRe.ReplaceAllString(title, "")
	title = trailSepRe.ReplaceAllString(title, "")
	return schedule.CollapseSpace(title)
}

func replaceFirst(re *regexp.Regexp, s string) string {
	if loc := re.FindStringIndex(s); loc != nil {
		return s[:loc[0]] + s[loc[1]:]
	}
	return s
}
