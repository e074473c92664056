package crawler

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nao1215/ycscrape/internal/config"
	"github.com/nao1215/ycscrape/internal/model"
)

// DetailParser extracts the company fields from a detail page.
type DetailParser struct {
	founderImage  classMatcher
	linkedInTitle string
	foundedLabel  string
	teamSizeLabel string
	locationLabel string
}

// NewDetailParser creates a parser for the given markup description.
func NewDetailParser(sel config.Selectors) *DetailParser {
	sel = sel.WithDefaults()
	return &DetailParser{
		founderImage:  newClassMatcher(sel.FounderImage),
		linkedInTitle: sel.LinkedInTitle,
		foundedLabel:  sel.FoundedLabel,
		teamSizeLabel: sel.TeamSizeLabel,
		locationLabel: sel.LocationLabel,
	}
}

// ParseDetail reads founders, LinkedIn links and the labelled fields.
// Labels that are not on the page leave their field absent.
func (p *DetailParser) ParseDetail(r io.Reader) (model.Details, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return model.Details{}, fmt.Errorf("failed to parse detail page: %w", err)
	}

	return model.Details{
		Founders:     p.founders(doc),
		LinkedInURLs: p.linkedIn(doc),
		Founded:      p.labelValue(doc, p.foundedLabel),
		TeamSize:     p.labelValue(doc, p.teamSizeLabel),
		Location:     p.labelValue(doc, p.locationLabel),
	}, nil
}

func (p *DetailParser) founders(doc *goquery.Document) []string {
	var names []string
	findClass(doc.Selection, "img", p.founderImage).Each(func(_ int, img *goquery.Selection) {
		if alt, ok := img.Attr("alt"); ok {
			names = append(names, cleanText(alt))
		}
	})
	return names
}

func (p *DetailParser) linkedIn(doc *goquery.Document) []string {
	var links []string
	doc.Find("a[title]").Each(func(_ int, a *goquery.Selection) {
		if title, _ := a.Attr("title"); title != p.linkedInTitle {
			return
		}
		if href, ok := a.Attr("href"); ok {
			links = append(links, href)
		}
	})
	return links
}

// labelValue finds the first span whose text is label and returns the
// text of the next span sibling.
func (p *DetailParser) labelValue(doc *goquery.Document, label string) model.OptionalText {
	want := strings.TrimSpace(label)
	var value model.OptionalText
	doc.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
		if strings.TrimSpace(span.Text()) != want {
			return true
		}
		next := span.NextAllFiltered("span").First()
		if next.Length() > 0 {
			value = model.Some(strippedText(next))
		}
		return false
	})
	return value
}
