package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// classMatcher matches elements carrying every configured class token.
// A token ending in "*" matches any class with that prefix.
type classMatcher struct {
	tokens []string
}

func newClassMatcher(classes string) classMatcher {
	return classMatcher{tokens: strings.Fields(classes)}
}

func (m classMatcher) match(s *goquery.Selection) bool {
	attr, ok := s.Attr("class")
	if !ok {
		return len(m.tokens) == 0
	}
	classes := strings.Fields(attr)
	for _, tok := range m.tokens {
		if !hasClass(classes, tok) {
			return false
		}
	}
	return true
}

func hasClass(classes []string, token string) bool {
	prefix, wildcard := strings.CutSuffix(token, "*")
	for _, c := range classes {
		if wildcard && strings.HasPrefix(c, prefix) {
			return true
		}
		if !wildcard && c == token {
			return true
		}
	}
	return false
}

// findClass returns the elements named tag below s that match m.
func findClass(s *goquery.Selection, tag string, m classMatcher) *goquery.Selection {
	return s.Find(tag).FilterFunction(func(_ int, el *goquery.Selection) bool {
		return m.match(el)
	})
}

// cleanText trims and NFC-normalizes text.
func cleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// strippedText returns the text of every text node below the selection,
// each trimmed, empty pieces dropped, joined without separator.
func strippedText(s *goquery.Selection) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return norm.NFC.String(b.String())
}
