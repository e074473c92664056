package crawler

import (
	"fmt"
	"io"
	"os"

	"github.com/PuerkitoBio/goquery"

	"github.com/nao1215/ycscrape/internal/config"
	"github.com/nao1215/ycscrape/internal/model"
)

// ListingParser extracts company anchors from a saved listing page.
type ListingParser struct {
	anchor classMatcher
	name   classMatcher
	blurb  classMatcher
}

// NewListingParser creates a parser for the given markup description.
func NewListingParser(sel config.Selectors) *ListingParser {
	sel = sel.WithDefaults()
	return &ListingParser{
		anchor: newClassMatcher(sel.CompanyAnchor),
		name:   newClassMatcher(sel.CompanyName),
		blurb:  newClassMatcher(sel.CompanyBlurb),
	}
}

// ParseFile opens a listing snapshot and parses it.
func (p *ListingParser) ParseFile(path string) ([]model.Entry, error) {
	f, err := os.Open(path) //nolint:gosec // snapshot path comes from the user
	if err != nil {
		return nil, fmt.Errorf("failed to open listing snapshot: %w", err)
	}
	defer f.Close()

	return p.ParseListing(f)
}

// ParseListing returns one entry per company anchor, in document order.
// An anchor without href, name or blurb fails the whole parse, since a
// partially read listing would silently drop companies.
func (p *ListingParser) ParseListing(r io.Reader) ([]model.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing: %w", err)
	}

	anchors := findClass(doc.Selection, "a", p.anchor)
	entries := make([]model.Entry, 0, anchors.Length())

	var parseErr error
	anchors.EachWithBreak(func(i int, a *goquery.Selection) bool {
		entry, err := p.parseAnchor(i, a)
		if err != nil {
			parseErr = err
			return false
		}
		entries = append(entries, entry)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return entries, nil
}

func (p *ListingParser) parseAnchor(position int, a *goquery.Selection) (model.Entry, error) {
	href, ok := a.Attr("href")
	if !ok {
		return model.Entry{}, fmt.Errorf("%w: anchor %d has no href", ErrMalformedEntry, position)
	}

	name := findClass(a, "span", p.name).First()
	if name.Length() == 0 {
		return model.Entry{}, fmt.Errorf("%w: anchor %d (%s) has no name", ErrMalformedEntry, position, href)
	}

	blurb := findClass(a, "span", p.blurb).First()
	if blurb.Length() == 0 {
		return model.Entry{}, fmt.Errorf("%w: anchor %d (%s) has no blurb", ErrMalformedEntry, position, href)
	}

	return model.Entry{
		Position: position,
		Name:     cleanText(name.Text()),
		Blurb:    cleanText(blurb.Text()),
		Href:     href,
	}, nil
}
