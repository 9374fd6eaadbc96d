package extractor

import (
	"fmt"
	nurl "net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document wraps one fetched page for the evidence extractors. The goquery
// tree and the visible text are built once and shared by all extractors.
type Document struct {
	// URL is the normalized request URL.
	URL string

	// FinalURL is the post-redirect URL.
	FinalURL string

	doc     *goquery.Document
	visible string
}

// NewDocument parses the fetched HTML into a Document.
func NewDocument(rawURL, finalURL, rawHTML string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("extractor: parse html: %w", err)
	}
	if finalURL == "" {
		finalURL = rawURL
	}
	return &Document{
		URL:      rawURL,
		FinalURL: finalURL,
		doc:      doc,
		visible:  collapseSpace(visibleText(rawHTML)),
	}, nil
}

// Query exposes the parsed goquery tree.
func (d *Document) Query() *goquery.Document {
	return d.doc
}

// VisibleText returns the page's visible body text with tags, scripts, and
// styles stripped and whitespace collapsed.
func (d *Document) VisibleText() string {
	return d.visible
}

// BaseURL returns the parsed final URL, or nil when it does not parse.
func (d *Document) BaseURL() *nurl.URL {
	u, err := nurl.Parse(d.FinalURL)
	if err != nil {
		return nil
	}
	return u
}

// visibleText extracts the visible text from within <body>, stripping all
// tags and <script>/<style>/<noscript> content.
func visibleText(rawHTML string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(rawHTML))
	var buf strings.Builder
	inBody := false
	skipDepth := 0

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return buf.String()
		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			tag := string(tn)
			if tag == "body" {
				inBody = true
			}
			if tag == "script" || tag == "style" || tag == "noscript" {
				skipDepth++
			}
		case html.EndTagToken:
			tn, _ := tokenizer.TagName()
			tag := string(tn)
			if tag == "script" || tag == "style" || tag == "noscript" {
				if skipDepth > 0 {
					skipDepth--
				}
			}
		case html.TextToken:
			if inBody && skipDepth == 0 {
				text := strings.TrimSpace(string(tokenizer.Text()))
				if text != "" {
					buf.WriteString(text)
					buf.WriteByte(' ')
				}
			}
		}
	}
}

// nodeText returns the visible text inside a single parsed node.
func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return collapseSpace(buf.String())
}

var spaceRe = regexp.MustCompile(`[\s\x{00a0}\x{2000}-\x{200f}\x{202f}\x{205f}\x{3000}\x{feff}]+`)

// collapseSpace normalizes all whitespace (including non-breaking and
// zero-width variants) to single spaces.
func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// snippet returns up to width characters of context around [start, end).
func snippet(text string, start, end, width int) string {
	lo := start - width
	if lo < 0 {
		lo = 0
	}
	hi := end + width
	if hi > len(text) {
		hi = len(text)
	}
	// Avoid splitting UTF-8 sequences at the window edges.
	for lo > 0 && lo < len(text) && !isASCIIOrRuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !isASCIIOrRuneStart(text[hi]) {
		hi++
	}
	return strings.TrimSpace(text[lo:hi])
}

func isASCIIOrRuneStart(b byte) bool {
	return b < 0x80 || b >= 0xC0
}
