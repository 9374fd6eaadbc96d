// Package scorer assigns each raw candidate a confidence score in [0, 1]
// from structural and semantic heuristics. Scoring is deterministic: the
// same text, source, and context always produce the same score.
package scorer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/use-agent/orgname/config"
	"github.com/use-agent/orgname/models"
)

// Scoring weights. Source-tier bases were chosen so that the worked cases
// hold: a structured-markup name lands at >= 0.9, a boilerplate-penalized
// meta title falls below the 0.5 threshold, and a bare domain label sits
// at 0.3.
const (
	baseSchemaOrg      = 0.93
	baseMetaTag        = 0.65
	basePatternMatch   = 0.55
	baseDomainFallback = 0.30

	suffixBonus      = 0.15
	copyrightBonus   = 0.10
	footerBonus      = 0.05
	boilerplateMalus = 0.40
	personalMalus    = 0.30
	lengthMalus      = 0.25
	ctaMalus         = 0.15
)

var (
	// personalTitleRe flags "title + given + family name" shapes, the most
	// common false positive from team and imprint pages.
	personalTitleRe = regexp.MustCompile(`^(?:Dr|Prof|Dipl|Mag|Herr|Frau|Mr|Mrs|Ms)\.?\s+\p{Lu}[\p{Ll}\-]+\s+\p{Lu}[\p{Ll}\-]+$`)

	// ctaRe flags call-to-action verbs and generic nouns that open
	// marketing copy but never open a company name.
	ctaRe = regexp.MustCompile(`(?i)^(?:discover|explore|join|start|book|buy|order|download|entdecke|entdecken|jetzt|erlebe|teste)\b`)

	copyrightMarkRe = regexp.MustCompile(`(?i)©|\(c\)|copyright|all rights reserved|alle rechte`)
)

// Scorer scores candidate strings. Denylist and suffix configuration are
// explicit so pipelines stay independently testable.
type Scorer struct {
	suffixRe *regexp.Regexp
	denylist []string
}

// New creates a Scorer from the extraction configuration.
func New(cfg config.ExtractConfig) *Scorer {
	return &Scorer{
		suffixRe: compileSuffixRe(cfg.LegalSuffixes),
		denylist: lowerAll(cfg.Denylist),
	}
}

func compileSuffixRe(suffixes []string) *regexp.Regexp {
	parts := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		esc := regexp.QuoteMeta(s)
		esc = strings.ReplaceAll(esc, `\.`, `\.?`)
		esc = strings.ReplaceAll(esc, ` `, `\s+`)
		parts = append(parts, esc)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(parts, "|") + `)\b`)
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

// Score computes the confidence for one candidate. context is the raw
// snippet the text was found in; it contributes the copyright/footer
// proximity signals.
func (s *Scorer) Score(text string, source models.Source, context string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	score := baseFor(source)

	hasSuffix := s.suffixRe.MatchString(text)
	if hasSuffix {
		score += suffixBonus
	}

	if source == models.SourcePatternMatch {
		if copyrightMarkRe.MatchString(context) {
			score += copyrightBonus
		}
		if strings.HasPrefix(context, "footer:") {
			score += footerBonus
		}
	}

	if s.matchesDenylist(text) {
		score -= boilerplateMalus
	}
	if !hasSuffix && personalTitleRe.MatchString(text) {
		score -= personalMalus
	}
	if ctaRe.MatchString(text) {
		score -= ctaMalus
	}

	// Implausible lengths. Domain labels are legitimately single tokens,
	// so the short-side penalty does not apply to the fallback source.
	tokens := len(strings.Fields(text))
	runes := len([]rune(text))
	tooShort := (tokens < 2 && source != models.SourceDomainFallback) || runes < 4
	if tooShort || tokens > 8 || runes > 80 {
		score -= lengthMalus
	}

	return clamp(score)
}

// Threshold-independent helper: the resolver applies the acceptance
// threshold, not the scorer.
func baseFor(source models.Source) float64 {
	switch source {
	case models.SourceSchemaOrg:
		return baseSchemaOrg
	case models.SourceMetaTag:
		return baseMetaTag
	case models.SourcePatternMatch:
		return basePatternMatch
	case models.SourceDomainFallback:
		return baseDomainFallback
	default:
		return 0
	}
}

// matchesDenylist checks multi-word phrases as substrings and single words
// against whole tokens, so "home" flags "Home" but not "Homecare GmbH".
func (s *Scorer) matchesDenylist(text string) bool {
	lower := strings.ToLower(text)
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		words[w] = true
	}
	for _, phrase := range s.denylist {
		if strings.ContainsRune(phrase, ' ') {
			if strings.Contains(lower, phrase) {
				return true
			}
		} else if words[phrase] {
			return true
		}
	}
	return false
}

func clamp(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
