package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxAncestorLevels bounds the outward walk from a statistics link when
// deciding which match card it belongs to.
const maxAncestorLevels = 6

var (
	statsTokenPattern        = regexp.MustCompile(`(?i)/estadistiques/([a-f0-9]{24,})`)
	statsTokenNumbersPattern = regexp.MustCompile(`(?i)/estadistiques/\d+/([a-f0-9]{24,})`)
)

// ExtractMatchToken pulls the hexadecimal match identifier out of a
// statistics link. The site uses two address shapes: the token directly
// after the statistics segment, or after an intervening numeric segment.
func ExtractMatchToken(href string) string {
	if m := statsTokenNumbersPattern.FindStringSubmatch(href); m != nil {
		return strings.ToLower(m[1])
	}
	if m := statsTokenPattern.FindStringSubmatch(href); m != nil {
		return strings.ToLower(m[1])
	}
	return ""
}

// ContainsAnyKeyword reports whether the case-folded text mentions any of
// the attribution keywords. Used both for the page-wide pre-check and for
// ancestor text tests.
func ContainsAnyKeyword(text string, keywords []string) bool {
	folded := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(folded, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// AttributeLink walks the ancestors of a statistics link outward, up to
// maxAncestorLevels, and returns the first level whose full text content
// mentions an attribution keyword. The closest matching ancestor wins: the
// smallest enclosing block that mentions the club is assumed to be the
// match card for that club, not an unrelated card further up the page.
// Level 1 is the link's immediate parent. Returns (0, false) when no
// ancestor matches.
func AttributeLink(link *goquery.Selection, keywords []string) (int, bool) {
	parents := link.Parents()
	for level := 1; level <= maxAncestorLevels; level++ {
		ancestor := parents.Eq(level - 1)
		if ancestor.Length() == 0 {
			break
		}
		if ContainsAnyKeyword(ancestor.Text(), keywords) {
			return level, true
		}
	}
	return 0, false
}
