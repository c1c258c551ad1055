// Package sportwatch scrapes the sportwatch card listing and resolves its
// game slugs through the sportzone player pages. The listing paginates, so
// the first few pages are fetched concurrently; the listing itself carries no
// stream URLs, only slugs that need a second hop at watch time.
package sportwatch

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/goalfeed/goal-feed/internal/fetch"
	"github.com/goalfeed/goal-feed/internal/schedule"
	"github.com/goalfeed/goal-feed/internal/source/htmlscan"
	"github.com/goalfeed/goal-feed/internal/streamid"
)

// Pages is how many listing pages are scraped per refresh. Football rarely
// spills past page 3.
const Pages = 3

var (
	clockRe       = regexp.MustCompile(`\d{2}:\d{2}`)
	sportPrefixRe = regexp.MustCompile(`(?i)^(?:football|soccer)\s*`)
	// The card markup sometimes splits "Football" across spans, leaking an
	// "otball" fragment into the title span.
	otballRe    = regexp.MustCompile(`(?i)otball`)
	trailTimeRe = regexp.MustCompile(`\d{2}:\d{2}$`)
	trailLiveRe = regexp.MustCompile(`LIVE$`)
	playCallRe  = regexp.MustCompile(`playStream\(['"]([^'"]+)['"]`)
)

// Scraper fetches the sportwatch listing and serves as the second-hop
// resolver for its slugs.
type Scraper struct {
	BaseURL string
	ZoneURL string // player site the slugs map onto
	Client  *http.Client

	Now func() time.Time
}

func New(baseURL, zoneURL string) *Scraper {
	return &Scraper{BaseURL: baseURL, ZoneURL: zoneURL}
}

func (s *Scraper) Name() string { return "sportwatch" }

func (s *Scraper) LiveWindow() time.Duration { return schedule.DefaultLiveWindow }

// FetchSchedule scrapes the first Pages listing pages concurrently and merges
// their cards in page order. Cards sharing a slug (the same game pinned on
// several pages) collapse to the first occurrence.
func (s *Scraper) FetchSchedule(ctx context.Context) schedule.Schedule {
	perPage := make([][]schedule.Event, Pages)
	var wg sync.WaitGroup
	for i := 0; i < Pages; i++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			perPage[page-1] = s.scrapePage(ctx, page)
		}(i + 1)
	}
	wg.Wait()

	seen := make(map[string]bool)
	sched := schedule.Schedule{}
	day := schedule.DayKey(s.now())
	total := 0
	for _, events := range perPage {
		for _, ev := range events {
			id := ev.Channels[0].ID
			if seen[id] {
				continue
			}
			seen[id] = true
			sched.Add(day, "Soccer", ev)
			total++
		}
	}
	log.Printf("[sportwatch] found %d matches across %d pages", total, Pages)
	if total == 0 {
		return nil
	}
	return sched
}

func (s *Scraper) scrapePage(ctx context.Context, page int) []schedule.Event {
	url := s.BaseURL + "/sport/football"
	if page > 1 {
		url += "?page=" + strconv.Itoa(page)
	}
	// The listing pages are lean; no usefulness threshold here.
	body, err := fetch.Page(ctx, url, fetch.Options{
		Client:   s.Client,
		Referer:  s.BaseURL,
		MinLen:   -1,
		Provider: "sportwatch",
	})
	if err != nil {
		log.Printf("[sportwatch] page %d: %v", page, err)
		return nil
	}
	return s.parseCards(body)
}

func (s *Scraper) parseCards(body []byte) []schedule.Event {
	root, err := htmlscan.Parse(body)
	if err != nil {
		return nil
	}
	var events []schedule.Event
	for _, card := range htmlscan.WithClass(root, "card-link") {
		if card.Data != "a" {
			continue
		}
		href := htmlscan.Attr(card, "href")
		if href == "" {
			continue
		}

		sport, rawTitle := cardText(card)
		if !strings.EqualFold(sport, "football") {
			continue
		}

		clock := cardClock(card)
		if clock == "LIVE" || !clockRe.MatchString(clock) {
			// A game already in progress lists no kickoff; pin it to the
			// current minute so it sorts and flags as live.
			clock = schedule.Clock(s.now())
		}

		parts := strings.Split(href, "/")
		slug := parts[len(parts)-1]
		title := cleanTitle(rawTitle)
		if title == "" || slug == "" {
			continue
		}
		events = append(events, schedule.Event{
			Time:  clock,
			Title: title,
			Channels: []schedule.Channel{{
				Name:    "Main Stream",
				ID:      streamid.PrefixEncoded + slug,
				LogoURL: "/placeholder-logo.png",
			}},
		})
	}
	return events
}

// cardText recovers the sport and title from a card. The expected shape is
// span(sport) then span(title); degraded markup falls back to splitting the
// card's flattened text.
func cardText(card *html.Node) (sport, rawTitle string) {
	spans := htmlscan.Elements(card, "span")
	if len(spans) >= 2 {
		return htmlscan.FlatText(spans[0]), htmlscan.FlatText(spans[1])
	}
	full := htmlscan.FlatText(card)
	if strings.Contains(strings.ToLower(full), "football") {
		return "Football", strings.TrimSpace(sportPrefixRe.ReplaceAllString(full, ""))
	}
	return "", ""
}

// cardClock reads the kickoff span from the card's second div.
func cardClock(card *html.Node) string {
	divs := htmlscan.Elements(card, "div")
	if len(divs) < 2 {
		return ""
	}
	var parts []string
	for _, sp := range htmlscan.Elements(divs[1], "span") {
		parts = append(parts, htmlscan.FlatText(sp))
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}

func cleanTitle(raw string) string {
	t := sportPrefixRe.ReplaceAllString(raw, "")
	t = otballRe.ReplaceAllString(t, "")
	t = trailTimeRe.ReplaceAllString(t, "")
	t = trailLiveRe.ReplaceAllString(t, "")
	return strings.TrimSpace(t)
}

// ResolveStream maps a game slug to an embeddable stream URL by scraping the
// player page. The first server button's playStream onclick wins; a default
// iframe is the fallback. Returns "" when the page exposes neither.
func (s *Scraper) ResolveStream(ctx context.Context, slug string) string {
	target := s.ZoneURL + "/game/" + slug
	log.Printf("[sportwatch] resolving stream via %s", target)

	body, err := fetch.Page(ctx, target, fetch.Options{
		Client:   s.Client,
		Referer:  s.BaseURL + "/",
		MinLen:   -1,
		Provider: "sportzone",
	})
	if err != nil {
		log.Printf("[sportwatch] player page fetch failed: %v", err)
		return ""
	}
	root, err := htmlscan.Parse(body)
	if err != nil {
		return ""
	}

	var embed string
	if items := htmlscan.WithClass(root, "source-item"); len(items) > 0 {
		if m := playCallRe.FindStringSubmatch(htmlscan.Attr(items[0], "onclick")); m != nil {
			embed = m[1]
		}
	}
	if embed == "" {
		if frame := htmlscan.ByID(root, "live-player"); frame != nil && frame.Data == "iframe" {
			embed = htmlscan.Attr(frame, "src")
		}
	}
	if embed == "" {
		log.Printf("[sportwatch] no stream on player page (%d bytes)", len(body))
		return ""
	}
	if strings.HasPrefix(embed, "/") {
		return s.ZoneURL + embed
	}
	return embed
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
