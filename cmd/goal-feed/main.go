// Command goal-feed: live football schedule aggregator with stream
// resolution.
//
//	serve    Run the HTTP API (schedule, matches, channels, stream redirect)
//	fetch    One fallback pass: print the match list and which tier won
//	resolve  Resolve a channel id to its stream URL(s) and exit
//	probe    Probe the configured provider endpoints, report OK / blocked
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/goalfeed/goal-feed/internal/config"
	"github.com/goalfeed/goal-feed/internal/feed"
	"github.com/goalfeed/goal-feed/internal/fetch"
	"github.com/goalfeed/goal-feed/internal/resolver"
	"github.com/goalfeed/goal-feed/internal/schedule"
	"github.com/goalfeed/goal-feed/internal/server"
	"github.com/goalfeed/goal-feed/internal/source/daddylive"
	"github.com/goalfeed/goal-feed/internal/source/officialapi"
	"github.com/goalfeed/goal-feed/internal/source/sportswatcher"
	"github.com/goalfeed/goal-feed/internal/source/sportwatch"
	"github.com/goalfeed/goal-feed/internal/source/sportyhunter"
)

// stack is everything the subcommands share, built once from config.
type stack struct {
	cfg *config.Config
	agg *feed.Aggregator
	res *resolver.Resolver
	api *officialapi.Client
}

// buildStack wires the tier chain in fallback order: free scrape first,
// keyed API second, the alternative providers after, mock implicit last.
func buildStack(cfg *config.Config) *stack {
	client := fetch.WithTimeout(cfg.FetchTimeout)

	dl := daddylive.New(cfg.DaddyLiveURL)
	dl.Client = client
	dl.MinLen = cfg.MinContentLength

	api := officialapi.New(cfg.DaddyLiveURL, cfg.DaddyLiveAPIKey)
	api.HTTPClient = client

	sw := sportwatch.New(cfg.SportWatchURL, cfg.SportZoneURL)
	sw.Client = client

	sh := sportyhunter.New(cfg.SportyHunterURL)
	sh.Client = client

	ssw := sportswatcher.New(cfg.SportsWatcherFeedURL)
	ssw.Client = client

	return &stack{
		cfg: cfg,
		agg: feed.New(dl, api, sw, sh, ssw),
		res: &resolver.Resolver{BaseURL: cfg.DaddyLiveURL, Game: sw, Match: sh},
		api: api,
	}
}

func main() {
	log.SetFlags(log.LstdFlags)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[main] .env: %v", err)
	}

	serveCmd := flag.NewFlagSet("serve", flag.ExitOnError)
	serveAddr := serveCmd.String("addr", "", "listen address (overrides GOALFEED_LISTEN)")

	fetchCmd := flag.NewFlagSet("fetch", flag.ExitOnError)
	fetchCat := fetchCmd.String("cat", "", "category filter (default from config)")
	fetchJSON := fetchCmd.Bool("json", false, "print matches as JSON")

	resolveCmd := flag.NewFlagSet("resolve", flag.ExitOnError)

	probeCmd := flag.NewFlagSet("probe", flag.ExitOnError)

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <serve|fetch|resolve|probe> [flags]\n", os.Args[0])
		os.Exit(2)
	}

	cfg := config.Load()
	st := buildStack(cfg)

	switch os.Args[1] {
	case "serve":
		_ = serveCmd.Parse(os.Args[2:])
		addr := cfg.ListenAddr
		if *serveAddr != "" {
			addr = *serveAddr
		}
		runServe(st, addr)

	case "fetch":
		_ = fetchCmd.Parse(os.Args[2:])
		cat := cfg.Category
		if *fetchCat != "" {
			cat = *fetchCat
		}
		runFetch(st, cat, *fetchJSON)

	case "resolve":
		_ = resolveCmd.Parse(os.Args[2:])
		if resolveCmd.NArg() != 1 {
			fmt.Fprintf(os.Stderr, "Usage: %s resolve <channel-id>\n", os.Args[0])
			os.Exit(2)
		}
		runResolve(st, resolveCmd.Arg(0))

	case "probe":
		_ = probeCmd.Parse(os.Args[2:])
		runProbe(st)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		os.Exit(2)
	}
}

func runServe(st *stack, addr string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &server.Server{
		Agg:      st.agg,
		Resolver: st.res,
		Category: st.cfg.Category,
		Window:   st.cfg.LiveWindow,
	}
	if st.api.Enabled() {
		srv.Channels = func(ctx context.Context) []schedule.Channel {
			channels, err := st.api.Channels(ctx)
			if err != nil {
				log.Printf("[main] channel directory: %v", err)
				return nil
			}
			return channels
		}
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(st.cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutCtx)
	}()

	log.Printf("[main] listening on %s", addr)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[main] serve: %v", err)
	}
	log.Printf("[main] shut down")
}

func runFetch(st *stack, category string, asJSON bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res := st.agg.Fetch(ctx)
	matches := schedule.Normalize(res.Schedule, category, time.Now(), res.Window)
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(matches)
		return
	}
	fmt.Printf("tier: %s, %d matches\n", res.Tier, len(matches))
	for _, m := range matches {
		status := " "
		if m.IsLive {
			status = "LIVE"
		} else if m.StartsIn != "" {
			status = "in " + m.StartsIn
		}
		fmt.Printf("%s  %-45s %-8s %d channels\n", m.Time, m.Title, status, len(m.Channels))
	}
}

func runResolve(st *stack, id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := st.res.Resolve(ctx, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve %s: %v\n", id, err)
		os.Exit(1)
	}
	fmt.Printf("provider: %s\n", res.Provider)
	fmt.Printf("url:      %s\n", res.URL)
	for _, c := range res.Candidates[1:] {
		fmt.Printf("fallback: %s\n", c)
	}
}

func runProbe(st *stack) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	urls := []string{
		st.cfg.DaddyLiveURL,
		st.cfg.SportWatchURL + "/sport/football",
		st.cfg.SportZoneURL,
		st.cfg.SportyHunterURL + "/sport/football",
		st.cfg.SportsWatcherFeedURL,
	}
	for _, r := range fetch.ProbeAll(ctx, urls, nil) {
		fmt.Printf("%-8s %4d  %5dms  %6dB  %s\n", r.Status, r.StatusCode, r.LatencyMs, r.BodyBytes, r.URL)
	}
}
