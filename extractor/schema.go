package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ysmood/gson"

	"github.com/use-agent/orgname/models"
)

// orgTypes are the schema.org @type values whose name field identifies the
// organization behind the site.
var orgTypes = map[string]bool{
	"Organization":        true,
	"Corporation":         true,
	"LegalEntity":         true,
	"LocalBusiness":       true,
	"MedicalOrganization": true,
}

// SchemaOrg extracts organization names from JSON-LD structured data
// blocks. This is the highest-trust evidence source: site operators declare
// these names deliberately for machine consumption.
type SchemaOrg struct{}

func (SchemaOrg) Source() models.Source { return models.SourceSchemaOrg }

// Extract scans every <script type="application/ld+json"> block, tolerating
// top-level arrays, @graph containers, and nested publisher objects.
// Malformed JSON blocks are skipped.
func (SchemaOrg) Extract(d *Document) []models.Candidate {
	var out []models.Candidate

	d.Query().Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}
		walkSchema(gson.NewFrom(raw).Val(), &out)
	})

	return out
}

// walkSchema recursively collects organization names from decoded JSON-LD.
func walkSchema(v interface{}, out *[]models.Candidate) {
	switch node := v.(type) {
	case []interface{}:
		for _, item := range node {
			walkSchema(item, out)
		}
	case map[string]interface{}:
		if typ, ok := schemaType(node["@type"]); ok {
			for _, field := range []string{"name", "legalName"} {
				if name, ok := node[field].(string); ok && strings.TrimSpace(name) != "" {
					*out = append(*out, models.Candidate{
						Text:       collapseSpace(name),
						Source:     models.SourceSchemaOrg,
						RawContext: "ld+json @type=" + typ + " " + field,
					})
				}
			}
		}
		// Publisher names identify the site's organization even when the
		// top-level entity is an Article or WebSite.
		if pub, ok := node["publisher"].(map[string]interface{}); ok {
			if name, ok := pub["name"].(string); ok && strings.TrimSpace(name) != "" {
				*out = append(*out, models.Candidate{
					Text:       collapseSpace(name),
					Source:     models.SourceSchemaOrg,
					RawContext: "ld+json publisher.name",
				})
			}
		}
		if graph, ok := node["@graph"]; ok {
			walkSchema(graph, out)
		}
	}
}

// schemaType reports whether @type (a string or a list of strings) names an
// organization entity, returning the matched type.
func schemaType(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		if orgTypes[t] {
			return t, true
		}
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && orgTypes[s] {
				return s, true
			}
		}
	}
	return "", false
}
