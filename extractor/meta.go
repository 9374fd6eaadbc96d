package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/use-agent/orgname/models"
)

// metaProps are the <meta> properties conventionally used for site or
// organization identity, in descending order of usefulness.
var metaProps = []string{
	"og:site_name",
	"og:title",
	"twitter:site",
	"application-name",
	"apple-mobile-web-app-title",
	"company",
	"organization",
	"author",
}

// MetaTag extracts candidates from identity meta tags and the document
// title, cross-checked against the site name recovered by the Readability
// metadata parser.
type MetaTag struct{}

func (MetaTag) Source() models.Source { return models.SourceMetaTag }

func (MetaTag) Extract(d *Document) []models.Candidate {
	var out []models.Candidate
	doc := d.Query()

	for _, prop := range metaProps {
		sel := `meta[property="` + prop + `"], meta[name="` + prop + `"]`
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			content, _ := s.Attr("content")
			content = collapseSpace(content)
			if len(content) < 4 {
				return
			}
			out = append(out, models.Candidate{
				Text:       content,
				Source:     models.SourceMetaTag,
				RawContext: "meta " + prop,
			})
		})
	}

	if title := collapseSpace(doc.Find("title").First().Text()); len(title) >= 4 {
		out = append(out, models.Candidate{
			Text:       title,
			Source:     models.SourceMetaTag,
			RawContext: "document title",
		})
	}

	if siteName := readabilitySiteName(d); len(siteName) >= 4 {
		out = append(out, models.Candidate{
			Text:       siteName,
			Source:     models.SourceMetaTag,
			RawContext: "readability site_name",
		})
	}

	return out
}

// readabilitySiteName runs the Readability metadata pass and returns its
// SiteName, which aggregates several meta conventions goquery lookups can
// miss. Returns "" when readability fails.
func readabilitySiteName(d *Document) string {
	base := d.BaseURL()
	if base == nil {
		return ""
	}
	htmlStr, err := d.Query().Html()
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(strings.NewReader(htmlStr), base)
	if err != nil {
		return ""
	}
	return collapseSpace(article.SiteName)
}
