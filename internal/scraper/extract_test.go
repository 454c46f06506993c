package scraper

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const samplePage = `<html><body>
<h1>Welcome to DeKUT</h1>
<p>General information about the university campus and its history goes here.</p>
<h2>Admission Requirements</h2>
<p>Applicants must have a KCSE mean grade of C+ or an equivalent qualification.</p>
<p>Application forms are available on the admissions portal.</p>
<h2>Campus Gallery</h2>
<p>Photos of the campus grounds.</p>
<h3>Application Deadline</h3>
<p>Applications close on 31st August every year.</p>
<h2>Short Section on Applications</h2>
<p>Too short.</p>
</body></html>`

func TestExtractFAQs(t *testing.T) {
	keywords := []string{"admission", "application", "apply"}

	faqs, err := ExtractFAQs(samplePage, keywords, "/admissions")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if len(faqs) != 2 {
		t.Fatalf("got %d FAQs, want 2: %+v", len(faqs), faqs)
	}

	first := faqs[0]
	if first.Question != "Admission Requirements" {
		t.Fatalf("question=%q, want Admission Requirements", first.Question)
	}
	if !strings.Contains(first.Answer, "KCSE mean grade") {
		t.Fatalf("answer missing first paragraph: %q", first.Answer)
	}
	if !strings.Contains(first.Answer, "admissions portal") {
		t.Fatalf("answer missing second paragraph: %q", first.Answer)
	}
	if first.Source != "/admissions" {
		t.Fatalf("source=%q, want /admissions", first.Source)
	}

	if faqs[1].Question != "Application Deadline" {
		t.Fatalf("question=%q, want Application Deadline", faqs[1].Question)
	}
}

func TestExtractStopsAtNextHeading(t *testing.T) {
	faqs, err := ExtractFAQs(samplePage, []string{"admission"}, "/admissions")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(faqs) != 1 {
		t.Fatalf("got %d FAQs, want 1", len(faqs))
	}
	if strings.Contains(faqs[0].Answer, "Photos of the campus") {
		t.Fatalf("answer leaked past the next heading: %q", faqs[0].Answer)
	}
}

func TestExtractKeywordFilter(t *testing.T) {
	faqs, err := ExtractFAQs(samplePage, []string{"fee", "tuition"}, "/admissions")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(faqs) != 0 {
		t.Fatalf("got %d FAQs for unmatched keywords, want 0", len(faqs))
	}
}

func TestExtractTruncatesLongAnswers(t *testing.T) {
	long := "<html><body><h2>Fees Structure</h2><p>" + strings.Repeat("word ", 200) + "</p></body></html>"

	faqs, err := ExtractFAQs(long, []string{"fees"}, "/fees-structure")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(faqs) != 1 {
		t.Fatalf("got %d FAQs, want 1", len(faqs))
	}
	if len(faqs[0].Answer) > 300 {
		t.Fatalf("answer length=%d, want <= 300", len(faqs[0].Answer))
	}
}

func TestExtractTruncatesOnRuneBoundary(t *testing.T) {
	long := "<html><body><h2>Fees Structure</h2><p>" + strings.Repeat("Karibu chuo kikuu chetu é ", 30) + "</p></body></html>"

	faqs, err := ExtractFAQs(long, []string{"fees"}, "/fees-structure")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(faqs) != 1 {
		t.Fatalf("got %d FAQs, want 1", len(faqs))
	}
	answer := faqs[0].Answer
	if got := len([]rune(answer)); got > 300 {
		t.Fatalf("answer runes=%d, want <= 300", got)
	}
	if !utf8.ValidString(answer) {
		t.Fatalf("truncation split a multi-byte character: %q", answer)
	}
}

func TestBuildIntent(t *testing.T) {
	faqs := []FAQ{
		{Question: "Admission Requirements?", Answer: "A KCSE mean grade of C+.", Source: "/admissions"},
		{Question: "Fees Structure", Answer: "Posted on the fees page.", Source: "/fees-structure"},
	}

	intent := BuildIntent(faqs)
	if intent.Tag != ScrapedIntentTag {
		t.Fatalf("tag=%q, want %q", intent.Tag, ScrapedIntentTag)
	}
	if len(intent.Responses) != 2 {
		t.Fatalf("responses=%d, want 2", len(intent.Responses))
	}

	wantPatterns := []string{
		"Admission Requirements?",
		"admission requirements?",
		"what is admission requirements",
		"tell me about fees structure",
	}
	got := make(map[string]struct{}, len(intent.Patterns))
	for _, p := range intent.Patterns {
		got[p] = struct{}{}
	}
	for _, want := range wantPatterns {
		if _, ok := got[want]; !ok {
			t.Fatalf("pattern %q missing from %v", want, intent.Patterns)
		}
	}

	// Deduplicated: each pattern appears once.
	if len(got) != len(intent.Patterns) {
		t.Fatalf("duplicate patterns in %v", intent.Patterns)
	}
}
