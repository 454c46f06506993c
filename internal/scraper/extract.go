package scraper

import (
	"strings"

	"golang.org/x/net/html"
)

// FAQ is one heading/answer block extracted from a page.
type FAQ struct {
	Question string `json:"question" db:"question"`
	Answer   string `json:"answer" db:"answer"`
	Source   string `json:"source" db:"source"`
}

const (
	// maxAnswerLen truncates answers so one scraped section cannot flood a
	// chat response.
	maxAnswerLen = 300
	// minAnswerLen drops sections whose paragraphs carry no real content.
	minAnswerLen = 20
)

var headingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// ExtractFAQs parses an HTML document and returns the heading/paragraph
// blocks whose heading matches one of the keywords. For each matching
// heading h1-h6, the text of the following <p> siblings up to the next
// heading becomes the answer.
func ExtractFAQs(doc string, keywords []string, source string) ([]FAQ, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}

	var faqs []FAQ
	walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode || !headingTags[n.Data] {
			return
		}

		question := strings.TrimSpace(nodeText(n))
		if !matchesKeyword(question, keywords) {
			return
		}

		answer := collectAnswer(n)
		if len(answer) < minAnswerLen {
			return
		}
		// Truncate by runes, not bytes, so a multi-byte character is never
		// split mid-sequence.
		if runes := []rune(answer); len(runes) > maxAnswerLen {
			answer = string(runes[:maxAnswerLen])
		}

		faqs = append(faqs, FAQ{
			Question: question,
			Answer:   strings.TrimSpace(answer),
			Source:   source,
		})
	})
	return faqs, nil
}

func matchesKeyword(heading string, keywords []string) bool {
	lowered := strings.ToLower(heading)
	for _, kw := range keywords {
		if strings.Contains(lowered, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// collectAnswer gathers paragraph text following a heading until the next
// heading at the same level of the tree.
func collectAnswer(heading *html.Node) string {
	var parts []string
	for sib := heading.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type != html.ElementNode {
			continue
		}
		if headingTags[sib.Data] {
			break
		}
		if sib.Data == "p" {
			if text := strings.TrimSpace(nodeText(sib)); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}

// nodeText concatenates all text nodes under n.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return strings.Join(strings.Fields(sb.String()), " ")
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}
