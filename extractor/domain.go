package extractor

import (
	nurl "net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/use-agent/orgname/models"
)

// domainPrefixes and domainSuffixes are marketing decorations commonly
// bolted onto the registrable label that are not part of the company name.
var (
	domainPrefixRe = regexp.MustCompile(`^(?i:the|my|get|app|shop|digital|online|we|our|your|go|new|try|use|demo|api|portal)-`)
	domainSuffixRe = regexp.MustCompile(`-(?i:app|shop|tech|health|care|ai|de|gmbh|ag|com|net|org|io|co|eu|uk|us|online|digital|solutions|group|holding|ventures|capital|partners|studio|labs|inc|llc)$`)

	// secondLevel are labels that act as TLD extensions (co.uk, com.au).
	secondLevel = map[string]bool{
		"co": true, "com": true, "net": true, "org": true,
		"ac": true, "gov": true, "edu": true,
	}

	wordRe = regexp.MustCompile(`\p{Lu}?\p{Ll}+|\p{Lu}{2,}|\p{N}+`)
)

// DomainFallback derives a last-resort candidate from the registrable
// domain label. It always produces exactly one candidate for a parseable
// URL, so the engine never returns zero candidates for a reachable page.
type DomainFallback struct{}

func (DomainFallback) Source() models.Source { return models.SourceDomainFallback }

func (DomainFallback) Extract(d *Document) []models.Candidate {
	if c, ok := FromURL(d.URL); ok {
		return []models.Candidate{c}
	}
	return nil
}

// FromURL builds the domain-fallback candidate from the raw URL alone; it
// needs no fetched page.
func FromURL(rawURL string) (models.Candidate, bool) {
	label := registrableLabel(rawURL)
	if label == "" {
		return models.Candidate{}, false
	}

	name := labelToName(label)
	if name == "" {
		// The decorations stripped everything; fall back to the raw label
		// so a candidate is still produced.
		name = capitalize(label)
	}

	return models.Candidate{
		Text:       name,
		Source:     models.SourceDomainFallback,
		RawContext: "domain " + label,
	}, true
}

// registrableLabel extracts the registrable part of the host: the label
// immediately before the TLD, skipping second-level extensions like co.uk.
func registrableLabel(rawURL string) string {
	u, err := nurl.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return ""
	}

	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return labels[0]
	}
	idx := len(labels) - 2
	if idx > 0 && secondLevel[labels[idx]] && len(labels[len(labels)-1]) == 2 {
		idx--
	}
	return labels[idx]
}

// labelToName turns a domain label into a display name: strips marketing
// prefixes/suffixes, splits hyphen/underscore/camelCase parts, drops pure
// digits and fragments of two characters or fewer, and title-cases the rest.
func labelToName(label string) string {
	label = domainPrefixRe.ReplaceAllString(label, "")
	label = domainSuffixRe.ReplaceAllString(label, "")
	if label == "" {
		return ""
	}

	var parts []string
	for _, chunk := range strings.FieldsFunc(label, func(r rune) bool {
		return r == '-' || r == '_'
	}) {
		for _, w := range wordRe.FindAllString(chunk, -1) {
			if len(w) <= 2 || isDigits(w) {
				continue
			}
			parts = append(parts, capitalize(w))
		}
	}
	return strings.Join(parts, " ")
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
