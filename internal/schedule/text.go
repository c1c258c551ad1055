package schedule

import (
	"regexp"
	"strings"
)

var (
	digitsRe     = regexp.MustCompile(`\d+`)
	nonWordRe    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Flexible team separator: "vs", "vs.", "v", en dash, hyphen.
	versusRe = regexp.MustCompile(`(?i)(.+?)\s+(?:vs\.?|v|–|-)\s+(.+)`)
)

// CleanCategory strips provider numbering and stray punctuation from a
// category label so "Football 2" and "Football" render the same competition.
func CleanCategory(category string) string {
	c := digitsRe.ReplaceAllString(category, "")
	c = nonWordRe.ReplaceAllString(c, "")
	return strings.TrimSpace(c)
}

// SplitTeams splits a match title into its two team names. ok=false when the
// title doesn't look like a two-team fixture (e.g. "Formula 1 Qualifying").
func SplitTeams(title string) (team1, team2 string, ok bool) {
	if m := versusRe.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
	}
	// The regex can miss when a team name itself ends in a separator token;
	// a plain " vs " split still recovers those.
	lower := strings.ToLower(title)
	if i := strings.Index(lower, " vs "); i >= 0 {
		return strings.TrimSpace(title[:i]), strings.TrimSpace(title[i+4:]), true
	}
	return "", "", false
}

// CollapseSpace flattens runs of whitespace to single spaces and trims.
// Scrapers use it to normalize the text of nested markup before matching.
func CollapseSpace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// Slug lowercases s and joins whitespace runs with hyphens. Used for the
// composite time+title match identity.
func Slug(s string) string {
	return strings.ToLower(whitespaceRe.ReplaceAllString(strings.TrimSpace(s), "-"))
}
