package model

import "encoding/json"

// Details holds the fields extracted from one company detail page.
type Details struct {
	// Founders are the founder names in the order their portraits appear.
	Founders []string `json:"founders"`

	// LinkedInURLs are the founder profile links in document order.
	LinkedInURLs []string `json:"linkedin_urls"`

	Founded  OptionalText `json:"founded"`
	TeamSize OptionalText `json:"team_size"`
	Location OptionalText `json:"location"`
}

// Empty reports whether none of the labelled fields were found.
func (d Details) Empty() bool {
	return !d.Founded.Valid && !d.TeamSize.Valid && !d.Location.Valid
}

// Company is one extracted record.
// Fields are unexported and slices are copied on the way in and out, so a
// Company cannot change after NewCompany returns it.
type Company struct {
	name      string
	blurb     string
	detailURL string
	founders  []string
	linkedIn  []string
	founded   OptionalText
	teamSize  OptionalText
	location  OptionalText
}

// NewCompany assembles a record from a listing entry, the detail page URL
// built for it, and the fields parsed from that page.
func NewCompany(entry Entry, detailURL string, d Details) Company {
	return Company{
		name:      entry.Name,
		blurb:     entry.Blurb,
		detailURL: detailURL,
		founders:  cloneStrings(d.Founders),
		linkedIn:  cloneStrings(d.LinkedInURLs),
		founded:   d.Founded,
		teamSize:  d.TeamSize,
		location:  d.Location,
	}
}

// Name returns the company name.
func (c Company) Name() string { return c.name }

// Blurb returns the one-line description.
func (c Company) Blurb() string { return c.blurb }

// DetailURL returns the absolute link to the company detail page.
func (c Company) DetailURL() string { return c.detailURL }

// Founders returns a copy of the founder names.
func (c Company) Founders() []string { return cloneStrings(c.founders) }

// LinkedInURLs returns a copy of the founder LinkedIn links.
func (c Company) LinkedInURLs() []string { return cloneStrings(c.linkedIn) }

// Founded returns the founding year text.
func (c Company) Founded() OptionalText { return c.founded }

// TeamSize returns the team size text.
func (c Company) TeamSize() OptionalText { return c.teamSize }

// Location returns the location text.
func (c Company) Location() OptionalText { return c.location }

// Details returns the detail page fields of the record.
func (c Company) Details() Details {
	return Details{
		Founders:     c.Founders(),
		LinkedInURLs: c.LinkedInURLs(),
		Founded:      c.founded,
		TeamSize:     c.teamSize,
		Location:     c.location,
	}
}

type companyJSON struct {
	Name         string       `json:"name"`
	Blurb        string       `json:"blurb"`
	DetailURL    string       `json:"detail_url"`
	Founders     []string     `json:"founders"`
	LinkedInURLs []string     `json:"linkedin_urls"`
	Founded      OptionalText `json:"founded"`
	TeamSize     OptionalText `json:"team_size"`
	Location     OptionalText `json:"location"`
}

// MarshalJSON encodes the record with empty sequences as [] rather than null.
func (c Company) MarshalJSON() ([]byte, error) {
	founders := c.Founders()
	if founders == nil {
		founders = []string{}
	}
	linkedIn := c.LinkedInURLs()
	if linkedIn == nil {
		linkedIn = []string{}
	}
	return json.Marshal(companyJSON{
		Name:         c.name,
		Blurb:        c.blurb,
		DetailURL:    c.detailURL,
		Founders:     founders,
		LinkedInURLs: linkedIn,
		Founded:      c.founded,
		TeamSize:     c.teamSize,
		Location:     c.location,
	})
}

// UnmarshalJSON decodes a record written by MarshalJSON.
func (c *Company) UnmarshalJSON(data []byte) error {
	var v companyJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = NewCompany(
		Entry{Name: v.Name, Blurb: v.Blurb},
		v.DetailURL,
		Details{
			Founders:     v.Founders,
			LinkedInURLs: v.LinkedInURLs,
			Founded:      v.Founded,
			TeamSize:     v.TeamSize,
			Location:     v.Location,
		},
	)
	return nil
}

func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
