package fetch

import (
	"strings"

	"github.com/PuerkitoBio/purell"
)

const normalizeFlags = purell.FlagsSafe | purell.FlagRemoveDotSegments | purell.FlagRemoveFragment

// NormalizeURL strips the fragment and surrounding whitespace and applies
// safe normalizations (lowercase host, default port removal). A link to a
// section of an article fetches the article itself.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	normalized, err := purell.NormalizeURLString(rawURL, normalizeFlags)
	if err != nil {
		return rawURL
	}
	return normalized
}
