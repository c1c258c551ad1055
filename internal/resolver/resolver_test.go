package resolver_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goalfeed/goal-feed/internal/resolver"
	"github.com/goalfeed/goal-feed/internal/streamid"
)

type hopFunc func(ctx context.Context, slug string) string

func (f hopFunc) ResolveStream(ctx context.Context, slug string) string { return f(ctx, slug) }

func TestResolveEncodedURL(t *testing.T) {
	r := &resolver.Resolver{BaseURL: "https://mirror.example"}
	id := streamid.EncodeURL("https://embed.selltvonline.shop/live/embed.php?ch=es46")

	res, err := r.Resolve(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if res.URL != "https://embed.selltvonline.shop/live/embed.php?ch=es46" {
		t.Errorf("URL = %q", res.URL)
	}
	if res.Provider != "sportswatcher" {
		t.Errorf("provider = %q", res.Provider)
	}
}

func TestResolveDirectBuildsFolderLadder(t *testing.T) {
	r := &resolver.Resolver{BaseURL: "https://mirror.example"}

	res, err := r.Resolve(context.Background(), "302")
	if err != nil {
		t.Fatal(err)
	}
	if res.URL != "https://mirror.example/stream/stream-302.php" {
		t.Errorf("URL = %q", res.URL)
	}
	if len(res.Candidates) != len(resolver.Folders) {
		t.Fatalf("got %d candidates, want %d", len(res.Candidates), len(resolver.Folders))
	}
	if res.Candidates[1] != "https://mirror.example/cast/stream-302.php" {
		t.Errorf("candidate[1] = %q", res.Candidates[1])
	}
	for _, c := range res.Candidates {
		if !strings.HasSuffix(c, "/stream-302.php") {
			t.Errorf("candidate without id suffix: %q", c)
		}
	}
}

func TestResolveGameSlugSecondHop(t *testing.T) {
	var gotSlug string
	r := &resolver.Resolver{
		Game: hopFunc(func(_ context.Context, slug string) string {
			gotSlug = slug
			return "https://stream.example/embed?url=abc"
		}),
	}

	res, err := r.Resolve(context.Background(), "sw-arsenal-vs-chelsea-live")
	if err != nil {
		t.Fatal(err)
	}
	if gotSlug != "arsenal-vs-chelsea-live" {
		t.Errorf("hop got slug %q", gotSlug)
	}
	if res.URL != "https://stream.example/embed?url=abc" || res.Provider != "sportwatch" {
		t.Errorf("res = %+v", res)
	}
}

func TestResolveMatchSlugNotFound(t *testing.T) {
	r := &resolver.Resolver{
		Match: hopFunc(func(context.Context, string) string { return "" }),
	}
	_, err := r.Resolve(context.Background(), "sh-slg-A-vs-B-xyz")
	if !errors.Is(err, resolver.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveRejectsNonHTTPSecondHopURL(t *testing.T) {
	// A player page we scrape can be compromised; whatever it hands back must
	// never reach the redirect unless it is plain http(s).
	for _, bad := range []string{
		"javascript:alert(1)",
		"data:text/html,<script>alert(1)</script>",
		"file:///etc/passwd",
	} {
		r := &resolver.Resolver{
			Game: hopFunc(func(context.Context, string) string { return bad }),
		}
		_, err := r.Resolve(context.Background(), "sw-arsenal-vs-chelsea")
		if !errors.Is(err, resolver.ErrNotFound) {
			t.Errorf("hop URL %q: err = %v, want ErrNotFound", bad, err)
		}
	}
}

func TestResolveNilHopIsNotFound(t *testing.T) {
	r := &resolver.Resolver{}
	_, err := r.Resolve(context.Background(), "sw-some-game")
	if !errors.Is(err, resolver.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveMalformed(t *testing.T) {
	r := &resolver.Resolver{BaseURL: "https://mirror.example"}
	for _, id := range []string{"", "abc123", "sw-", "sh-"} {
		if _, err := r.Resolve(context.Background(), id); !errors.Is(err, resolver.ErrMalformedID) {
			t.Errorf("Resolve(%q) err = %v, want ErrMalformedID", id, err)
		}
	}
}
