// Package sportyhunter scrapes a Next.js sports site. The schedule ships
// inside the __NEXT_DATA__ bootstrap JSON, so the primary path is JSON
// extraction; a broad HTML scan covers builds where the payload moved.
package sportyhunter

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/goalfeed/goal-feed/internal/fetch"
	"github.com/goalfeed/goal-feed/internal/schedule"
	"github.com/goalfeed/goal-feed/internal/source/htmlscan"
	"github.com/goalfeed/goal-feed/internal/streamid"
)

var clockRe = regexp.MustCompile(`\d{2}:\d{2}`)

// Scraper fetches the sportyhunter listing and resolves its match slugs.
type Scraper struct {
	BaseURL string
	Client  *http.Client

	Now func() time.Time
	// Loc is the zone kickoff timestamps are rendered in; nil means local.
	Loc *time.Location
}

func New(baseURL string) *Scraper {
	return &Scraper{BaseURL: baseURL}
}

func (s *Scraper) Name() string { return "sportyhunter" }

func (s *Scraper) LiveWindow() time.Duration { return schedule.DefaultLiveWindow }

// FetchSchedule pulls the football listing and extracts matches from the
// __NEXT_DATA__ payload, falling back to an HTML scan when the payload is
// missing or malformed. Returns nil when neither path yields events.
func (s *Scraper) FetchSchedule(ctx context.Context) schedule.Schedule {
	body, err := fetch.Page(ctx, s.BaseURL+"/sport/football", fetch.Options{
		Client:   s.Client,
		MinLen:   -1,
		Provider: "sportyhunter",
	})
	if err != nil {
		log.Printf("[sportyhunter] fetch failed: %v", err)
		return nil
	}
	root, err := htmlscan.Parse(body)
	if err != nil {
		return nil
	}

	day := schedule.DayKey(s.now())
	var events []schedule.Event
	if payload := nextDataPayload(root); payload != "" {
		events = s.parseNextData(payload)
		if events == nil {
			log.Printf("[sportyhunter] __NEXT_DATA__ unusable, falling back to HTML scan")
		}
	} else {
		log.Printf("[sportyhunter] __NEXT_DATA__ not found, falling back to HTML scan")
	}
	if events == nil {
		events = fallbackScan(root)
		log.Printf("[sportyhunter] fallback scan parsed %d matches (%d bytes)", len(events), len(body))
	}
	if len(events) == 0 {
		return nil
	}

	sched := schedule.Schedule{}
	for _, ev := range schedule.Deduplicate(events) {
		sched.Add(day, "Soccer", ev)
	}
	return sched
}

func nextDataPayload(root *html.Node) string {
	script := htmlscan.ByID(root, "__NEXT_DATA__")
	if script == nil || script.Data != "script" {
		return ""
	}
	if c := script.FirstChild; c != nil && c.Type == html.TextNode {
		return c.Data
	}
	return ""
}

type nextData struct {
	Props struct {
		PageProps struct {
			Matches         []rawMatch `json:"matches"`
			DehydratedState struct {
				Queries []struct {
					State struct {
						Data json.RawMessage `json:"data"`
					} `json:"state"`
				} `json:"queries"`
			} `json:"dehydratedState"`
		} `json:"pageProps"`
	} `json:"props"`
}

type team struct {
	Name string `json:"name"`
}

type rawMatch struct {
	Slug      string          `json:"slug"`
	ID        json.RawMessage `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Date      string          `json:"date"`
	HomeTeam  *team           `json:"homeTeam"`
	AwayTeam  *team           `json:"awayTeam"`
	HomeName  string          `json:"home_team"`
	AwayName  string          `json:"away_team"`
}

func (m rawMatch) title() string {
	home, away := m.HomeName, m.AwayName
	if m.HomeTeam != nil && m.HomeTeam.Name != "" {
		home = m.HomeTeam.Name
	}
	if m.AwayTeam != nil && m.AwayTeam.Name != "" {
		away = m.AwayTeam.Name
	}
	if home == "" || away == "" {
		return ""
	}
	return home + " vs " + away
}

func (m rawMatch) matchID() string {
	if m.Slug != "" {
		return m.Slug
	}
	return strings.Trim(string(m.ID), `"`)
}

// parseNextData handles the two payload shapes seen in the wild: a direct
// pageProps.matches array, or react-query dehydrated state where each query's
// data either wraps a matches array or is one.
func (s *Scraper) parseNextData(payload string) []schedule.Event {
	var data nextData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		log.Printf("[sportyhunter] __NEXT_DATA__ parse: %v", err)
		return nil
	}

	matches := data.Props.PageProps.Matches
	if len(matches) == 0 {
		for _, q := range data.Props.PageProps.DehydratedState.Queries {
			var wrapped struct {
				Matches []rawMatch `json:"matches"`
			}
			if err := json.Unmarshal(q.State.Data, &wrapped); err == nil && len(wrapped.Matches) > 0 {
				matches = append(matches, wrapped.Matches...)
				continue
			}
			var direct []rawMatch
			if err := json.Unmarshal(q.State.Data, &direct); err == nil {
				matches = append(matches, direct...)
			}
		}
	}
	if len(matches) == 0 {
		log.Printf("[sportyhunter] no matches in __NEXT_DATA__")
		return nil
	}

	var events []schedule.Event
	for _, m := range matches {
		title := m.title()
		clock, ok := s.kickoffClock(m)
		if title == "" || !ok {
			continue
		}
		ev := schedule.Event{Time: clock, Title: title}
		if id := m.matchID(); id != "" {
			ev.Channels = []schedule.Channel{{
				Name:    "Main Stream",
				ID:      streamid.PrefixMatch + id,
				LogoURL: "/placeholder-logo.png",
			}}
		}
		events = append(events, ev)
	}
	return events
}

func (s *Scraper) kickoffClock(m rawMatch) (string, bool) {
	if m.Timestamp > 0 {
		return schedule.Clock(time.Unix(m.Timestamp, 0).In(s.loc())), true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04"} {
		if t, err := time.Parse(layout, m.Date); err == nil {
			return schedule.Clock(t.In(s.loc())), true
		}
	}
	return "", false
}

// fallbackScan is the broad net for builds without a usable JSON payload:
// any div carrying both a kickoff time and an image (team logos) is a row
// candidate, and the match link's slug doubles as the title source.
func fallbackScan(root *html.Node) []schedule.Event {
	var events []schedule.Event
	for _, el := range htmlscan.Elements(root, "div") {
		text := htmlscan.FlatText(el)
		clock := clockRe.FindString(text)
		if clock == "" || htmlscan.First(el, "img") == nil {
			continue
		}

		href := htmlscan.Attr(el, "href")
		if a := htmlscan.First(el, "a"); a != nil {
			href = htmlscan.Attr(a, "href")
		}
		if href == "" {
			continue
		}
		parts := strings.Split(href, "/")
		slug := parts[len(parts)-1]
		if slug == "" {
			continue
		}

		title := titleFromSlug(slug)
		if len(title) < 5 {
			title = strings.TrimSpace(strings.Replace(text, clock, "", 1))
		}
		if title == "" {
			continue
		}
		events = append(events, schedule.Event{
			Time:  clock,
			Title: title,
			Channels: []schedule.Channel{{
				Name:    "Main Stream",
				ID:      streamid.PrefixMatch + slug,
				LogoURL: "/placeholder-logo.png",
			}},
		})
	}
	return schedule.Deduplicate(events)
}

// titleFromSlug recovers "Brighton vs Everton" from
// "slg-Brighton-vs-Everton-3duPQw3Jex9": drop the slg marker and the
// trailing opaque id, join the rest.
func titleFromSlug(slug string) string {
	parts := strings.Split(slug, "-")
	if len(parts) <= 2 {
		return ""
	}
	if parts[0] == "slg" {
		parts = parts[1:]
	}
	parts = parts[:len(parts)-1]
	return strings.Join(parts, " ")
}

// ResolveStream fetches the match page for a slug and returns the first
// iframe's src, or "" when the page has none.
func (s *Scraper) ResolveStream(ctx context.Context, slug string) string {
	body, err := fetch.Page(ctx, s.BaseURL+"/match/"+slug, fetch.Options{
		Client:   s.Client,
		MinLen:   -1,
		Provider: "sportyhunter",
	})
	if err != nil {
		log.Printf("[sportyhunter] match page fetch failed: %v", err)
		return ""
	}
	root, err := htmlscan.Parse(body)
	if err != nil {
		return ""
	}
	if frame := htmlscan.First(root, "iframe"); frame != nil {
		return htmlscan.Attr(frame, "src")
	}
	return ""
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
