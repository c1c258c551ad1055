// Package officialapi is the keyed JSON API client for the primary
// provider. It is a paid fallback behind the free scrape: the orchestrator
// only calls it when scraping came up empty and a key is configured.
package officialapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/goalfeed/goal-feed/internal/fetch"
	"github.com/goalfeed/goal-feed/internal/safeurl"
	"github.com/goalfeed/goal-feed/internal/schedule"
)

// Client talks to the provider's daddyapi endpoint.
type Client struct {
	BaseURL    string
	Key        string
	HTTPClient *http.Client
}

func New(baseURL, key string) *Client {
	return &Client{BaseURL: baseURL, Key: key}
}

// Enabled reports whether a key is configured. Without one the tier is
// skipped outright instead of burning a request on a guaranteed 401.
func (c *Client) Enabled() bool { return c.Key != "" }

func (c *Client) Name() string { return "official-api" }

func (c *Client) LiveWindow() time.Duration { return schedule.DefaultLiveWindow }

// envelope is the API's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// FetchSchedule pulls the schedule endpoint. The API keys days by display
// label; those are re-keyed to ISO dates so they merge with scraper buckets.
// Returns nil when disabled, on any transport or envelope failure, and when
// the payload holds no events.
func (c *Client) FetchSchedule(ctx context.Context) schedule.Schedule {
	if !c.Enabled() {
		return nil
	}
	var upstream schedule.Schedule
	if err := c.call(ctx, "schedule", &upstream); err != nil {
		log.Printf("[official-api] schedule: %v", err)
		return nil
	}

	sched := schedule.Schedule{}
	for day, cats := range upstream {
		key := day
		if iso, ok := schedule.ParseDayLabel(day); ok {
			key = iso
		}
		for cat, events := range cats {
			for _, ev := range events {
				sched.Add(key, cat, ev)
			}
		}
	}
	if !sched.HasEvents() {
		return nil
	}
	return sched
}

// Channels pulls the provider's channel directory.
func (c *Client) Channels(ctx context.Context) ([]schedule.Channel, error) {
	var channels []schedule.Channel
	if err := c.call(ctx, "channels", &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

func (c *Client) call(ctx context.Context, endpoint string, out any) error {
	q := url.Values{}
	q.Set("key", c.Key)
	q.Set("endpoint", endpoint)
	target := c.BaseURL + "/daddyapi.php?" + q.Encode()
	body, err := fetch.Page(ctx, target, fetch.Options{
		Client:   c.HTTPClient,
		Accept:   "application/json",
		MinLen:   -1,
		Provider: "official-api",
	})
	if err != nil {
		// Redact keeps the API key out of the log line.
		return fmt.Errorf("%s: %w", safeurl.Redact(target), err)
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}
	if !env.Success || len(env.Data) == 0 {
		return errNoData
	}
	return json.Unmarshal(env.Data, out)
}

var errNoData = errors.New("api returned success=false or empty data")
