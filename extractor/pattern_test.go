package extractor

import (
	"strings"
	"testing"

	"github.com/use-agent/orgname/config"
	"github.com/use-agent/orgname/models"
)

func testPattern() Pattern {
	return NewPattern(config.Load().Extract.LegalSuffixes)
}

func TestPattern_LegalSuffixInBody(t *testing.T) {
	html := `<html><body>
		<p>Die Climedo Health GmbH entwickelt digitale Lösungen für klinische Studien.</p>
	</body></html>`

	got := testPattern().Extract(mustDocument(t, html))
	if !containsText(got, "Climedo Health GmbH") {
		t.Fatalf("suffix match missing, got %v", candidateTexts(got))
	}
	for _, c := range got {
		if c.Source != models.SourcePatternMatch {
			t.Errorf("Source = %q, want pattern_match", c.Source)
		}
	}
}

func TestPattern_SuffixVariants(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"Betrieben von der Muster UG und Partnern.", "Muster UG"},
		{"Der Förderverein Beispiel e.V. freut sich über Spenden.", "Beispiel e.V"},
		{"Powered by Acme Inc for developers.", "Acme Inc"},
		{"Contact Nordic Health AB for details.", "Nordic Health AB"},
		{"Ein Angebot der Müller & Söhne KG aus Hamburg.", "Müller & Söhne KG"},
	}
	p := testPattern()
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := p.Extract(mustDocument(t, "<html><body><p>"+tt.body+"</p></body></html>"))
			found := false
			for _, c := range got {
				if strings.Contains(c.Text, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("want candidate containing %q, got %v", tt.want, candidateTexts(got))
			}
		})
	}
}

func TestPattern_CopyrightLine(t *testing.T) {
	html := `<html><body>
		<div>© 2024 Climedo Health GmbH | Impressum | Datenschutz</div>
	</body></html>`

	got := testPattern().Extract(mustDocument(t, html))

	found := false
	for _, c := range got {
		if c.Text == "Climedo Health GmbH" && strings.Contains(c.RawContext, "©") {
			found = true
		}
	}
	if !found {
		t.Errorf("copyright line candidate missing, got %v", candidateTexts(got))
	}
}

func TestPattern_FooterContextTagged(t *testing.T) {
	html := `<html><body>
		<main><p>Welcome to our shop.</p></main>
		<footer>Betrieben von Nutrio Labs GmbH</footer>
	</body></html>`

	got := testPattern().Extract(mustDocument(t, html))

	found := false
	for _, c := range got {
		if strings.Contains(c.Text, "Nutrio Labs GmbH") && strings.HasPrefix(c.RawContext, "footer: ") {
			found = true
		}
	}
	if !found {
		t.Errorf("footer match should carry footer context, got %+v", got)
	}
}

func TestPattern_FooterClassAttribute(t *testing.T) {
	html := `<html><body>
		<div class="site-footer">© Avayl Technologies Ltd</div>
	</body></html>`

	got := testPattern().Extract(mustDocument(t, html))

	found := false
	for _, c := range got {
		if strings.Contains(c.Text, "Avayl Technologies Ltd") && strings.HasPrefix(c.RawContext, "footer: ") {
			found = true
		}
	}
	if !found {
		t.Errorf("class*=footer element not scanned, got %+v", got)
	}
}

func TestPattern_FooterMatchedOncePerElement(t *testing.T) {
	// One element matching the tag, class, and id selectors at once must be
	// scanned a single time.
	html := `<html><body>
		<footer class="footer" id="footer">Betrieben von Acme Holding GmbH</footer>
	</body></html>`

	got := testPattern().Extract(mustDocument(t, html))

	count := 0
	for _, c := range got {
		if strings.Contains(c.Text, "Acme Holding GmbH") && strings.HasPrefix(c.RawContext, "footer: ") {
			count++
		}
	}
	if count != 1 {
		t.Errorf("footer candidate produced %d times, want 1", count)
	}
}

func TestPattern_LeadingArticleStripped(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"Die Climedo Health GmbH entwickelt Software.", "Climedo Health GmbH"},
		{"The Example Trading Ltd ships worldwide.", "Example Trading Ltd"},
	}
	p := testPattern()
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := p.Extract(mustDocument(t, "<html><body><p>"+tt.body+"</p></body></html>"))
			if !containsText(got, tt.want) {
				t.Errorf("want %q without leading article, got %v", tt.want, candidateTexts(got))
			}
		})
	}
}

func TestPattern_AmpersandJoinedName(t *testing.T) {
	html := `<html><body><p>Ein Angebot der Müller & Söhne KG aus Hamburg.</p></body></html>`

	got := testPattern().Extract(mustDocument(t, html))
	if !containsText(got, "Müller & Söhne KG") {
		t.Errorf("ampersand-joined name missing, got %v", candidateTexts(got))
	}
}

func TestPattern_Headings(t *testing.T) {
	html := `<html><body>
		<h1>Becure Global</h1>
		<h2>Digitale Therapien für neurologische Erkrankungen</h2>
	</body></html>`

	got := testPattern().Extract(mustDocument(t, html))
	if !containsText(got, "Becure Global") {
		t.Errorf("h1 heading missing, got %v", candidateTexts(got))
	}
}

func TestPattern_HeadingLengthBounds(t *testing.T) {
	long := strings.Repeat("Wort ", 30)
	html := `<html><body><h1>ab</h1><h2>` + long + `</h2></body></html>`

	got := testPattern().Extract(mustDocument(t, html))
	for _, c := range got {
		if c.Text == "ab" || len(c.Text) > 100 {
			t.Errorf("heading outside 4..100 chars surfaced: %q", c.Text)
		}
	}
}

func TestPattern_LowercaseWordsNotMatched(t *testing.T) {
	html := `<html><body><p>die kleine firma gmbh bietet services an</p></body></html>`

	got := testPattern().Extract(mustDocument(t, html))
	for _, c := range got {
		if strings.Contains(strings.ToLower(c.Text), "firma gmbh") {
			t.Errorf("lowercase run must not match the name pattern: %q", c.Text)
		}
	}
}

func TestCleanCandidate(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  — Climedo Health GmbH, ", "Climedo Health GmbH"},
		{"| Acme Inc.", "Acme Inc."},
		{"Beispiel   e.V.", "Beispiel e.V."},
		{"Die Muster GmbH", "Muster GmbH"},
	}
	for _, tt := range tests {
		if got := cleanCandidate(tt.in); got != tt.want {
			t.Errorf("cleanCandidate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
