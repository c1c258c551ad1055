// Package safeurl validates and sanitizes URLs that arrive from untrusted
// places: decoded stream ids, scraped iframe attributes, provider config.
package safeurl

import "net/url"

// IsHTTPOrHTTPS returns true if u is a valid URL with scheme http or https.
// Used to reject file://, ftp://, and other schemes that could lead to SSRF
// or local file access when a decoded id is used as a redirect target.
func IsHTTPOrHTTPS(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	s := parsed.Scheme
	return s == "http" || s == "https"
}

// IsAbsoluteHTTP reports whether u is an absolute http(s) URL with a host.
// The id codec uses this to decide whether a base64 body decoded to a
// playable URL or to a provider slug that merely looks base64ish.
func IsAbsoluteHTTP(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// Redact strips query values from u for logging, keeping the keys so log
// lines stay diagnosable without leaking API keys or credentials.
func Redact(u string) string {
	parsed, err := url.Parse(u)
	if err != nil {
		return u
	}
	q := parsed.Query()
	if len(q) == 0 {
		return u
	}
	for k := range q {
		q.Set(k, "…")
	}
	parsed.RawQuery = q.Encode()
	return parsed.String()
}
