package extractor

import (
	"testing"

	"github.com/use-agent/orgname/models"
)

func mustDocument(t *testing.T, html string) *Document {
	t.Helper()
	d, err := NewDocument("https://www.example.com/", "", html)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return d
}

func candidateTexts(cs []models.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Text
	}
	return out
}

func containsText(cs []models.Candidate, text string) bool {
	for _, c := range cs {
		if c.Text == text {
			return true
		}
	}
	return false
}

func TestSchemaOrg_OrganizationName(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">
		{"@context": "https://schema.org", "@type": "Organization", "name": "Climedo Health GmbH", "url": "https://www.climedo.de"}
		</script>
	</head><body></body></html>`

	got := SchemaOrg{}.Extract(mustDocument(t, html))

	if !containsText(got, "Climedo Health GmbH") {
		t.Fatalf("missing organization name, got %v", candidateTexts(got))
	}
	if got[0].Source != models.SourceSchemaOrg {
		t.Errorf("Source = %q, want schema_org", got[0].Source)
	}
}

func TestSchemaOrg_TypeList(t *testing.T) {
	html := `<html><head><script type="application/ld+json">
		{"@type": ["LocalBusiness", "MedicalClinic"], "name": "Empident Zahnklinik"}
	</script></head><body></body></html>`

	got := SchemaOrg{}.Extract(mustDocument(t, html))
	if !containsText(got, "Empident Zahnklinik") {
		t.Errorf("type lists should be accepted, got %v", candidateTexts(got))
	}
}

func TestSchemaOrg_GraphAndPublisher(t *testing.T) {
	html := `<html><head><script type="application/ld+json">
		{"@graph": [
			{"@type": "WebSite", "publisher": {"@type": "Organization", "name": "Apheris AI"}},
			{"@type": "Organization", "legalName": "Apheris AI GmbH"}
		]}
	</script></head><body></body></html>`

	got := SchemaOrg{}.Extract(mustDocument(t, html))

	if !containsText(got, "Apheris AI GmbH") {
		t.Errorf("legalName inside @graph not found, got %v", candidateTexts(got))
	}
	if !containsText(got, "Apheris AI") {
		t.Errorf("publisher.name not found, got %v", candidateTexts(got))
	}
}

func TestSchemaOrg_IgnoresNonOrgTypes(t *testing.T) {
	html := `<html><head><script type="application/ld+json">
		{"@type": "Article", "name": "Ten tips for better sleep"}
	</script></head><body></body></html>`

	got := SchemaOrg{}.Extract(mustDocument(t, html))
	if len(got) != 0 {
		t.Errorf("Article name must not be a candidate, got %v", candidateTexts(got))
	}
}

func TestSchemaOrg_MalformedJSONSkipped(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">{not json at all</script>
		<script type="application/ld+json">{"@type": "Organization", "name": "Valid GmbH"}</script>
	</head><body></body></html>`

	got := SchemaOrg{}.Extract(mustDocument(t, html))
	if !containsText(got, "Valid GmbH") {
		t.Errorf("valid block after malformed one should still parse, got %v", candidateTexts(got))
	}
}

func TestSchemaOrg_EmptyNameSkipped(t *testing.T) {
	html := `<html><head><script type="application/ld+json">
		{"@type": "Organization", "name": "   "}
	</script></head><body></body></html>`

	got := SchemaOrg{}.Extract(mustDocument(t, html))
	if len(got) != 0 {
		t.Errorf("blank names must be skipped, got %v", candidateTexts(got))
	}
}
