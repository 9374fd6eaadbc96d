package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/use-agent/orgname/models"
)

// footerSels match the elements where company names are customarily
// printed: semantic footers plus the class/id conventions for them.
var footerSels = mustSelectors("footer", "[class*=footer]", "[id*=footer]")

func mustSelectors(exprs ...string) []cascadia.Sel {
	out := make([]cascadia.Sel, len(exprs))
	for i, expr := range exprs {
		sel, err := cascadia.Parse(expr)
		if err != nil {
			panic(err)
		}
		out[i] = sel
	}
	return out
}

var (
	copyrightRe = regexp.MustCompile(`(?i)(?:©|\(c\)|copyright)\s*(?:\d{4}(?:\s*[-–]\s*\d{4})?)?\s*(?:by\s+)?`)
	rightsRe    = regexp.MustCompile(`(?i)\b(?:all rights reserved|alle rechte vorbehalten)\b.*$`)

	leadJunkRe    = regexp.MustCompile(`^[^\p{L}\p{N}]+`)
	leadArticleRe = regexp.MustCompile(`^(?:Die|Der|Das|Den|Dem|The|Ein|Eine)\s+`)
	trailJunkRe   = regexp.MustCompile(`[^\p{L}\p{N}.]+$`)
)

// Pattern extracts candidates from visible text: sequences of capitalized
// words ending in a recognized legal-entity suffix, prominent headings, and
// the text following copyright markers. Footer content is scanned twice so
// footer-proximate matches carry their context.
type Pattern struct {
	nameRe *regexp.Regexp
}

// NewPattern compiles the name pattern from the configured legal-suffix
// list. Dots within suffixes are optional ("e.V." also matches "eV") and
// matching is Unicode-aware for diacritics in the name words.
func NewPattern(suffixes []string) Pattern {
	return Pattern{nameRe: compileNameRe(suffixes)}
}

func compileNameRe(suffixes []string) *regexp.Regexp {
	parts := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		esc := regexp.QuoteMeta(s)
		esc = strings.ReplaceAll(esc, `\.`, `\.?`)
		esc = strings.ReplaceAll(esc, ` `, `\s+`)
		parts = append(parts, esc)
	}
	// A capitalized word, up to six more capitalized words or standalone
	// ampersands, then a legal suffix as its own token.
	return regexp.MustCompile(
		`\p{Lu}[\p{L}\p{N}&.\-]*\s+(?:(?:\p{Lu}[\p{L}\p{N}&.\-]*|&)\s+){0,6}(?i:` + strings.Join(parts, "|") + `)\b`,
	)
}

func (Pattern) Source() models.Source { return models.SourcePatternMatch }

func (p Pattern) Extract(d *Document) []models.Candidate {
	var out []models.Candidate

	// Prominent headings carry the brand on most landing pages.
	d.Query().Find("h1, h2").Each(func(_ int, s *goquery.Selection) {
		text := collapseSpace(s.Text())
		if len(text) >= 4 && len(text) <= 100 {
			out = append(out, models.Candidate{
				Text:       text,
				Source:     models.SourcePatternMatch,
				RawContext: "heading " + goquery.NodeName(s),
			})
		}
	})

	body := d.VisibleText()
	out = append(out, p.matchNames(body, "")...)
	out = append(out, p.copyrightLines(body)...)

	// Footer elements get a dedicated pass so their matches carry footer
	// context even when the body-wide scan missed them. An element matching
	// more than one footer selector is scanned once.
	if root := d.Query().Get(0); root != nil {
		seen := make(map[*html.Node]bool)
		for _, sel := range footerSels {
			for _, node := range cascadia.QueryAll(root, sel) {
				if seen[node] {
					continue
				}
				seen[node] = true
				text := nodeText(node)
				if text == "" {
					continue
				}
				out = append(out, p.matchNames(text, "footer: ")...)
				out = append(out, p.copyrightLines(text)...)
			}
		}
	}

	return out
}

// matchNames runs the legal-suffix pattern over text. ctxPrefix tags the
// candidate context with its origin region.
func (p Pattern) matchNames(text, ctxPrefix string) []models.Candidate {
	var out []models.Candidate
	for _, loc := range p.nameRe.FindAllStringIndex(text, -1) {
		name := cleanCandidate(text[loc[0]:loc[1]])
		if len(name) < 4 || len(name) > 100 {
			continue
		}
		out = append(out, models.Candidate{
			Text:       name,
			Source:     models.SourcePatternMatch,
			RawContext: ctxPrefix + snippet(text, loc[0], loc[1], 40),
		})
	}
	return out
}

// copyrightLines extracts the text trailing a copyright marker, which on
// most sites is exactly the legal entity name.
func (p Pattern) copyrightLines(text string) []models.Candidate {
	var out []models.Candidate
	for _, loc := range copyrightRe.FindAllStringIndex(text, -1) {
		rest := text[loc[1]:]
		if cut := strings.IndexAny(rest, "|•·—"); cut >= 0 {
			rest = rest[:cut]
		}
		if len(rest) > 80 {
			rest = snippet(rest, 0, 80, 0)
		}
		rest = rightsRe.ReplaceAllString(rest, "")
		name := cleanCandidate(rest)
		if len(name) < 4 || len(name) > 100 {
			continue
		}
		out = append(out, models.Candidate{
			Text:       name,
			Source:     models.SourcePatternMatch,
			RawContext: snippet(text, loc[0], loc[1], 40),
		})
	}
	return out
}

// cleanCandidate strips junk characters from the edges of a raw match and
// a leading article the greedy name pattern may have swallowed.
func cleanCandidate(s string) string {
	s = collapseSpace(s)
	s = leadJunkRe.ReplaceAllString(s, "")
	s = leadArticleRe.ReplaceAllString(s, "")
	s = trailJunkRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
