package extractor

import (
	"testing"

	"github.com/use-agent/orgname/models"
)

func TestFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.avayl.tech/", "Avayl"},
		{"https://shop.getnutrio.com/", "Getnutrio"},
		{"https://de.becureglobal.com/", "Becureglobal"},
		{"https://www.climedo.de/", "Climedo"},
		{"https://example.co.uk/", "Example"},
		{"https://my-health-app.de/", "Health"},
		{"https://nordic-care.com/about", "Nordic"},
		{"https://data4life.care/", "Data Life"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			c, ok := FromURL(tt.url)
			if !ok {
				t.Fatalf("FromURL(%q) produced no candidate", tt.url)
			}
			if c.Text != tt.want {
				t.Errorf("FromURL(%q) = %q, want %q", tt.url, c.Text, tt.want)
			}
			if c.Source != models.SourceDomainFallback {
				t.Errorf("Source = %q, want domain_fallback", c.Source)
			}
		})
	}
}

func TestFromURL_StrippedToNothingFallsBack(t *testing.T) {
	// "go" survives as the label after prefix stripping fails to apply
	// (no hyphen), and two-char fragments are dropped, so the raw label
	// is capitalized instead.
	c, ok := FromURL("https://go.dev/")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if c.Text != "Go" {
		t.Errorf("got %q, want raw-label fallback \"Go\"", c.Text)
	}
}

func TestFromURL_Unparseable(t *testing.T) {
	if _, ok := FromURL("://not a url"); ok {
		t.Error("unparseable URL must not produce a candidate")
	}
}

func TestRegistrableLabel(t *testing.T) {
	tests := []struct{ url, want string }{
		{"https://www.avayl.tech/", "avayl"},
		{"https://shop.getnutrio.com/", "getnutrio"},
		{"https://example.co.uk/", "example"},
		{"https://sub.example.com.au/", "example"},
		{"https://localhost/", "localhost"},
	}
	for _, tt := range tests {
		if got := registrableLabel(tt.url); got != tt.want {
			t.Errorf("registrableLabel(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestLabelToName(t *testing.T) {
	tests := []struct{ label, want string }{
		{"climedo", "Climedo"},
		{"get-nutrio", "Nutrio"},
		{"becure-global", "Becure Global"},
		{"camelCaseName", "Camel Case Name"},
		{"shop-24", ""},
		{"acme-gmbh", "Acme"},
	}
	for _, tt := range tests {
		if got := labelToName(tt.label); got != tt.want {
			t.Errorf("labelToName(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestDomainFallback_AlwaysOneCandidate(t *testing.T) {
	d := mustDocument(t, "<html><body></body></html>")
	got := DomainFallback{}.Extract(d)
	if len(got) != 1 {
		t.Fatalf("want exactly one candidate, got %d", len(got))
	}
	if got[0].Text != "Example" {
		t.Errorf("got %q, want \"Example\"", got[0].Text)
	}
}
