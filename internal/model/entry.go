package model

// Entry is one company anchor found in the listing snapshot.
type Entry struct {
	// Position is the zero-based index of the anchor in document order.
	Position int `json:"position"`

	// Name is the company name text.
	Name string `json:"name"`

	// Blurb is the one-line company description.
	Blurb string `json:"blurb"`

	// Href is the anchor's href exactly as written in the markup,
	// normally a site-relative path such as "/companies/acme".
	Href string `json:"href"`
}

// DetailURL returns the link to the entry's detail page.
// It is the plain concatenation of origin and href; no URL resolution
// takes place, so "/companies/acme" under "https://www.ycombinator.com"
// becomes "https://www.ycombinator.com/companies/acme".
func (e Entry) DetailURL(origin string) string {
	return origin + e.Href
}
