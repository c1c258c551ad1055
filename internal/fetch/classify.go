package fetch

import (
	"net/http"
	"strings"
)

// Status classifies one upstream response for the ladder and the probe
// subcommand.
type Status string

const (
	StatusOK        Status = "ok"
	StatusBlocked   Status = "blocked"
	StatusBadStatus Status = "bad_status"
)

// Headers whose presence marks a CDN-proxied challenge response.
var blockHeaders = []string{
	"CF-RAY",
	"CF-Cache-Status",
	"CF-Worker",
}

// Definitive challenge/block body markers. Kept narrow: random error pages
// mention "cloudflare" without being challenges.
var blockBodyMarkers = []string{
	"checking your browser",
	"just a moment",
	"cf-bypass",
	"ray id",
	"attention required",
}

// Classify decides whether a response carries real content. Block detection
// only fires on definitive signals (challenge status codes plus a marker, or
// a cloudflare Server header on a non-200) so provider-specific error codes
// don't get misfiled.
func Classify(status int, header http.Header, body []byte) Status {
	server := strings.ToLower(strings.TrimSpace(header.Get("Server")))
	isCFServer := server == "cloudflare"

	preview := strings.ToLower(string(body[:min(len(body), 2048)]))
	hasChallenge := false
	for _, m := range blockBodyMarkers {
		if strings.Contains(preview, m) {
			hasChallenge = true
			break
		}
	}

	switch status {
	case 403, 503, 520, 521, 524:
		if hasChallenge || isCFServer || hasBlockHeader(header) {
			return StatusBlocked
		}
		return StatusBadStatus
	}
	if status < 200 || status > 299 {
		if isCFServer {
			return StatusBlocked
		}
		return StatusBadStatus
	}
	// 200 with a challenge body: interstitial masquerading as success.
	if hasChallenge && hasBlockHeader(header) {
		return StatusBlocked
	}
	return StatusOK
}

func hasBlockHeader(header http.Header) bool {
	for _, h := range blockHeaders {
		if header.Get(h) != "" {
			return true
		}
	}
	return false
}
