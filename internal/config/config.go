package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds server + provider settings. Load from env; use godotenv in
// main to pick up a .env file first.
type Config struct {
	// HTTP server
	ListenAddr  string   // e.g. :8080
	CORSOrigins []string // allowed origins for the JSON API; ["*"] = any

	// Primary provider (scrape + keyed API + mirror folders for numeric ids)
	DaddyLiveURL    string // e.g. https://dlhd.link
	DaddyLiveAPIKey string // empty = official API tier disabled

	// Secondary providers
	SportWatchURL        string
	SportZoneURL         string // player site sportwatch slugs resolve through
	SportyHunterURL      string
	SportsWatcherFeedURL string

	// Fetch behavior
	FetchTimeout     time.Duration
	MinContentLength int // usefulness threshold for scraped pages

	// Presentation
	Category   string        // default category filter for match lists
	LiveWindow time.Duration // 0 = per-source default
}

// Load reads config from environment with working defaults: a bare
// `goal-feed serve` talks to the public mirrors.
func Load() *Config {
	c := &Config{
		ListenAddr:           getEnv("GOALFEED_LISTEN", ":8080"),
		CORSOrigins:          getEnvList("GOALFEED_CORS_ORIGINS", []string{"*"}),
		DaddyLiveURL:         getEnv("GOALFEED_DADDYLIVE_URL", "https://dlhd.link"),
		DaddyLiveAPIKey:      os.Getenv("GOALFEED_DADDYLIVE_API_KEY"),
		SportWatchURL:        getEnv("GOALFEED_SPORTWATCH_URL", "https://sportwatch24.info"),
		SportZoneURL:         getEnv("GOALFEED_SPORTZONE_URL", "https://stream.sportzone.su"),
		SportyHunterURL:      getEnv("GOALFEED_SPORTYHUNTER_URL", "https://sportyhunter.com"),
		SportsWatcherFeedURL: getEnv("GOALFEED_SPORTSWATCHER_FEED_URL", "https://opensheet.elk.sh/1vpV6z-RlvUhtLVpzngiHiKavo19VNFPQHuhy1ndJsHI/1"),
		FetchTimeout:         getEnvDuration("GOALFEED_FETCH_TIMEOUT", 8*time.Second),
		MinContentLength:     getEnvInt("GOALFEED_MIN_CONTENT_LENGTH", 5000),
		Category:             getEnv("GOALFEED_CATEGORY", "Soccer"),
		LiveWindow:           getEnvDuration("GOALFEED_LIVE_WINDOW", 0),
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 8 * time.Second
	}
	if c.MinContentLength < 0 {
		c.MinContentLength = 0
	}
	for _, base := range []*string{
		&c.DaddyLiveURL, &c.SportWatchURL, &c.SportZoneURL, &c.SportyHunterURL,
	} {
		*base = strings.TrimSuffix(*base, "/")
	}
	return c
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return defaultVal
}

// getEnvDuration accepts Go duration syntax ("90s", "2h") or bare seconds.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return defaultVal
}

// getEnvList splits a comma-separated value, dropping empty entries.
func getEnvList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
