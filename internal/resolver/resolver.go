// Package resolver turns an opaque channel id into an embeddable stream
// URL. Each id kind has its own strategy: encoded ids carry their URL,
// slug ids need a second-hop scrape of the owning provider's player page,
// and numeric ids expand into a ladder of mirror-folder candidates.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/goalfeed/goal-feed/internal/metrics"
	"github.com/goalfeed/goal-feed/internal/safeurl"
	"github.com/goalfeed/goal-feed/internal/streamid"
)

// ErrMalformedID means the id fits no known form; the HTTP layer maps it to
// a client error rather than a lookup miss.
var ErrMalformedID = errors.New("resolver: malformed stream id")

// ErrNotFound means the id was well-formed but no stream could be located
// behind it.
var ErrNotFound = errors.New("resolver: stream not found")

// Folders is the mirror-folder ladder for numeric ids. Mirrors rename the
// player path without renaming the id, so every known folder becomes a
// candidate; the first is the historical default.
var Folders = []string{"stream", "cast", "watch", "plus", "casting", "player"}

// SecondHop resolves a provider slug by scraping its player page.
// An empty string means no stream was found.
type SecondHop interface {
	ResolveStream(ctx context.Context, slug string) string
}

// Resolver routes parsed ids to their strategies.
type Resolver struct {
	// BaseURL is the mirror base numeric ids are templated onto.
	BaseURL string
	// Game handles sw- slug ids, Match handles sh- ids. A nil hop turns
	// that kind into ErrNotFound.
	Game  SecondHop
	Match SecondHop
}

// Resolution is a successful lookup. URL is the stream to play now;
// Candidates lists every URL worth trying, best first (for numeric ids the
// player cycles through them when one mirror folder 404s).
type Resolution struct {
	URL        string   `json:"url"`
	Candidates []string `json:"candidates"`
	Provider   string   `json:"provider"`
}

// Resolve maps a raw channel id to a Resolution. Malformed ids fail with
// ErrMalformedID, unresolvable ones with ErrNotFound; both are wrapped with
// the offending id.
func (r *Resolver) Resolve(ctx context.Context, raw string) (Resolution, error) {
	ref := streamid.Parse(raw)
	switch ref.Kind {
	case streamid.KindEncodedURL:
		// The feed shipped the embed URL inside the id; nothing to look up.
		metrics.Resolutions.WithLabelValues("sportswatcher", "ok").Inc()
		return Resolution{
			URL:        ref.URL,
			Candidates: []string{ref.URL},
			Provider:   "sportswatcher",
		}, nil

	case streamid.KindGameSlug:
		return r.secondHop(ctx, r.Game, "sportwatch", ref.Slug, raw)

	case streamid.KindMatchSlug:
		return r.secondHop(ctx, r.Match, "sportyhunter", ref.Slug, raw)

	case streamid.KindDirect:
		candidates := make([]string, len(Folders))
		for i, folder := range Folders {
			candidates[i] = fmt.Sprintf("%s/%s/stream-%s.php", r.BaseURL, folder, ref.ID)
		}
		metrics.Resolutions.WithLabelValues("daddylive", "ok").Inc()
		return Resolution{
			URL:        candidates[0],
			Candidates: candidates,
			Provider:   "daddylive",
		}, nil

	default:
		metrics.Resolutions.WithLabelValues("unknown", "malformed").Inc()
		return Resolution{}, fmt.Errorf("%w: %q", ErrMalformedID, raw)
	}
}

func (r *Resolver) secondHop(ctx context.Context, hop SecondHop, provider, slug, raw string) (Resolution, error) {
	if hop == nil {
		metrics.Resolutions.WithLabelValues(provider, "unconfigured").Inc()
		return Resolution{}, fmt.Errorf("%w: %q", ErrNotFound, raw)
	}
	url := hop.ResolveStream(ctx, slug)
	if url == "" {
		metrics.Resolutions.WithLabelValues(provider, "not_found").Inc()
		log.Printf("[resolver] %s found no stream for %q", provider, slug)
		return Resolution{}, fmt.Errorf("%w: %q", ErrNotFound, raw)
	}
	// The URL comes off an untrusted player page; anything that isn't plain
	// http(s) must not become a redirect target.
	if !safeurl.IsHTTPOrHTTPS(url) {
		metrics.Resolutions.WithLabelValues(provider, "not_found").Inc()
		log.Printf("[resolver] %s returned a non-http stream URL for %q", provider, slug)
		return Resolution{}, fmt.Errorf("%w: %q", ErrNotFound, raw)
	}
	metrics.Resolutions.WithLabelValues(provider, "ok").Inc()
	return Resolution{URL: url, Candidates: []string{url}, Provider: provider}, nil
}
