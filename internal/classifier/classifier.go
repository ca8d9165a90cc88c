package classifier

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Profile describes how a classified team is displayed and which keywords
// attribute its matches.
type Profile struct {
	Icon     string
	Keywords []string
}

// rule maps a pair of category/gender tokens to a stable team key. Rules
// are checked in order: more specific category+tier combinations must come
// before generic ones, because a name can satisfy several of the looser
// substring tests at once.
type rule struct {
	key    string
	tokens []string
}

var rules = []rule{
	{"senior-a-masc", []string{"SENIOR A", "MASCUL"}},
	{"senior-fem", []string{"SENIOR", "FEMEN"}},
	{"senior-b-masc", []string{"SENIOR B", "MASCUL"}},
	{"senior-c-masc", []string{"SENIOR C", "MASCUL"}},
	{"u20-masc", []string{"U20", "MASCUL"}},
	{"u20-fem", []string{"U20", "FEMEN"}},
	{"junior-masc", []string{"JUNIOR", "MASCUL"}},
	{"junior-fem", []string{"JUNIOR", "FEMEN"}},
	{"cadet-a-masc", []string{"CADET A", "MASCUL"}},
	{"cadet-b-masc", []string{"CADET B", "MASCUL"}},
	{"cadet-fem", []string{"CADET", "FEMEN"}},
	{"infantil-a-masc", []string{"INFANTIL A", "MASCUL"}},
	{"infantil-a-fem", []string{"INFANTIL A", "FEMEN"}},
	{"infantil-b-masc", []string{"INFANTIL B", "MASCUL"}},
	{"infantil-b-fem", []string{"INFANTIL B", "FEMEN"}},
	{"alevin-masc", []string{"ALEVIN", "MASCUL"}},
	{"alevin-fem", []string{"ALEVIN", "FEMEN"}},
	{"preinfantil-masc", []string{"PREINFANTIL", "MASCUL"}},
	{"preinfantil-fem", []string{"PREINFANTIL", "FEMEN"}},
}

const teamIcon = "🏀"

var knownKeys = func() map[string]struct{} {
	m := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		m[r.key] = struct{}{}
	}
	return m
}()

const maxSlugLength = 30

var slugStripPattern = regexp.MustCompile(`[^a-z0-9\s-]`)
var whitespacePattern = regexp.MustCompile(`\s+`)

// Classify maps a raw team display name to a stable key and its display
// profile. The key must be identical across runs for the same team
// identity, regardless of casing or diacritics in the source markup.
// Attribution keywords come from the caller's configuration: teams in the
// known tier table carry the full club keyword set, fallback keys only the
// primary keyword.
func Classify(rawName string, clubKeywords []string) (string, Profile) {
	normalized := Normalize(rawName)
	full := Profile{Icon: teamIcon, Keywords: clubKeywords}

	for _, r := range rules {
		if matchesAll(normalized, r.tokens) {
			return r.key, full
		}
	}

	key := slugify(normalized)
	if _, ok := knownKeys[key]; ok {
		return key, full
	}
	return key, Profile{Icon: teamIcon, Keywords: primaryKeyword(clubKeywords)}
}

// primaryKeyword reduces the configured keyword set to the club's main
// name, used for teams outside the known tiers.
func primaryKeyword(keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	return keywords[:1]
}

// Normalize upcases the name and strips diacritics so substring rules see
// a canonical form ("Sènior" and "SENIOR" match the same rule).
func Normalize(name string) string {
	folded, _, err := transform.String(transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	), name)
	if err != nil {
		folded = name
	}
	return strings.ToUpper(strings.TrimSpace(folded))
}

func matchesAll(name string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(name, tok) {
			return false
		}
	}
	return true
}

// slugify derives a fallback key for names outside the known tier table.
func slugify(normalized string) string {
	slug := strings.ToLower(normalized)
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = whitespacePattern.ReplaceAllString(strings.TrimSpace(slug), "-")
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
	}
	return slug
}
