package fetch

import (
	"context"
	"io"
	"net/http"
	"sort"
	"time"
)

// Result is the outcome of probing one provider endpoint. Used by the probe
// subcommand to report which upstreams are reachable and which are walled.
type Result struct {
	URL        string
	Status     Status
	StatusCode int
	LatencyMs  int64
	BodyBytes  int
}

// ProbeOne fetches url with a short timeout and classifies the result.
// Unlike Page it never errors: every outcome is a classification.
func ProbeOne(ctx context.Context, url string, client *http.Client) Result {
	if client == nil {
		client = WithTimeout(15 * time.Second)
	}
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{URL: url, Status: StatusBadStatus, LatencyMs: time.Since(start).Milliseconds()}
	}
	req.Header.Set("User-Agent", BrowserUA)
	resp, err := client.Do(req)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return Result{URL: url, Status: StatusBadStatus, LatencyMs: latency}
	}
	defer resp.Body.Close()
	preview := make([]byte, 2048)
	n, _ := io.ReadFull(resp.Body, preview)
	return Result{
		URL:        url,
		Status:     Classify(resp.StatusCode, resp.Header, preview[:n]),
		StatusCode: resp.StatusCode,
		LatencyMs:  latency,
		BodyBytes:  n,
	}
}

// ProbeAll probes each URL and returns results sorted OK-first by latency.
func ProbeAll(ctx context.Context, urls []string, client *http.Client) []Result {
	out := make([]Result, 0, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		out = append(out, ProbeOne(ctx, u, client))
	}
	sort.Slice(out, func(i, j int) bool {
		okI := out[i].Status == StatusOK
		okJ := out[j].Status == StatusOK
		if okI != okJ {
			return okI
		}
		if okI {
			return out[i].LatencyMs < out[j].LatencyMs
		}
		return out[i].URL < out[j].URL
	})
	return out
}
