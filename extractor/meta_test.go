package extractor

import (
	"testing"

	"github.com/use-agent/orgname/models"
)

func TestMetaTag_SiteName(t *testing.T) {
	html := `<html><head>
		<meta property="og:site_name" content="Getnutrio">
		<title>Getnutrio | Personalisierte Ernährung</title>
	</head><body></body></html>`

	got := MetaTag{}.Extract(mustDocument(t, html))

	if !containsText(got, "Getnutrio") {
		t.Fatalf("og:site_name missing, got %v", candidateTexts(got))
	}
	if got[0].Text != "Getnutrio" {
		t.Errorf("og:site_name should come before the title, got %q first", got[0].Text)
	}
	for _, c := range got {
		if c.Source != models.SourceMetaTag {
			t.Errorf("Source = %q, want meta_tag", c.Source)
		}
	}
}

func TestMetaTag_NameAttributeFallback(t *testing.T) {
	html := `<html><head>
		<meta name="application-name" content="Becure Global">
	</head><body></body></html>`

	got := MetaTag{}.Extract(mustDocument(t, html))
	if !containsText(got, "Becure Global") {
		t.Errorf("meta name= attribute not picked up, got %v", candidateTexts(got))
	}
}

func TestMetaTag_ShortContentSkipped(t *testing.T) {
	html := `<html><head>
		<meta property="og:site_name" content="ab">
		<title>xy</title>
	</head><body></body></html>`

	got := MetaTag{}.Extract(mustDocument(t, html))
	for _, c := range got {
		if c.Text == "ab" || c.Text == "xy" {
			t.Errorf("content shorter than 4 chars must be skipped, got %v", candidateTexts(got))
		}
	}
}

func TestMetaTag_TitleCandidate(t *testing.T) {
	html := `<html><head><title>Redirecting...</title></head><body></body></html>`

	got := MetaTag{}.Extract(mustDocument(t, html))
	// The extractor stays permissive here; the scorer is responsible for
	// rejecting boilerplate like this.
	if !containsText(got, "Redirecting...") {
		t.Errorf("title should still surface as a candidate, got %v", candidateTexts(got))
	}
}

func TestMetaTag_CollapsesWhitespace(t *testing.T) {
	html := `<html><head>
		<meta property="og:site_name" content="  Climedo   Health	GmbH ">
	</head><body></body></html>`

	got := MetaTag{}.Extract(mustDocument(t, html))
	if !containsText(got, "Climedo Health GmbH") {
		t.Errorf("whitespace not collapsed, got %v", candidateTexts(got))
	}
}
