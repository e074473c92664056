package config

import "time"

// Built-in markup description of the company directory.
// The class names are generated by the site's CSS build and change over
// time, which is why they can be overridden from the config file.
const (
	DefaultCompanyAnchorClass = "_company_99gj3_339"
	DefaultCompanyNameClass   = "_coName_99gj3_454"
	DefaultCompanyBlurbClass  = "_coDescription_99gj3_479"
	DefaultFounderImageClass  = "h-[75px] w-[75px] object-cover"
	DefaultLinkedInTitle      = "LinkedIn profile"
	DefaultFoundedLabel       = "Founded:"
	DefaultTeamSizeLabel      = "Team Size:"
	DefaultLocationLabel      = "Location:"
)

// Selectors describes where each field lives in the listing and detail
// markup. Class fields hold space separated class tokens; an element
// matches when it carries every token. A token ending in "*" matches any
// class with that prefix.
type Selectors struct {
	// CompanyAnchor is the class of the <a> wrapping one listing entry.
	CompanyAnchor string `yaml:"companyAnchor,omitempty"`

	// CompanyName is the class of the <span> holding the company name.
	CompanyName string `yaml:"companyName,omitempty"`

	// CompanyBlurb is the class of the <span> holding the one-line pitch.
	CompanyBlurb string `yaml:"companyBlurb,omitempty"`

	// FounderImage is the class of founder portraits; the alt text is the
	// founder name.
	FounderImage string `yaml:"founderImage,omitempty"`

	// LinkedInTitle is the title attribute of founder LinkedIn anchors.
	LinkedInTitle string `yaml:"linkedinTitle,omitempty"`

	// FoundedLabel, TeamSizeLabel and LocationLabel are the texts of the
	// label spans whose next sibling span holds the value.
	FoundedLabel  string `yaml:"foundedLabel,omitempty"`
	TeamSizeLabel string `yaml:"teamSizeLabel,omitempty"`
	LocationLabel string `yaml:"locationLabel,omitempty"`
}

// DefaultSelectors returns the built-in markup description.
func DefaultSelectors() Selectors {
	return Selectors{
		CompanyAnchor: DefaultCompanyAnchorClass,
		CompanyName:   DefaultCompanyNameClass,
		CompanyBlurb:  DefaultCompanyBlurbClass,
		FounderImage:  DefaultFounderImageClass,
		LinkedInTitle: DefaultLinkedInTitle,
		FoundedLabel:  DefaultFoundedLabel,
		TeamSizeLabel: DefaultTeamSizeLabel,
		LocationLabel: DefaultLocationLabel,
	}
}

// WithDefaults returns a copy of s where every empty field is replaced by
// its built-in value.
func (s Selectors) WithDefaults() Selectors {
	d := DefaultSelectors()
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return Selectors{
		CompanyAnchor: pick(s.CompanyAnchor, d.CompanyAnchor),
		CompanyName:   pick(s.CompanyName, d.CompanyName),
		CompanyBlurb:  pick(s.CompanyBlurb, d.CompanyBlurb),
		FounderImage:  pick(s.FounderImage, d.FounderImage),
		LinkedInTitle: pick(s.LinkedInTitle, d.LinkedInTitle),
		FoundedLabel:  pick(s.FoundedLabel, d.FoundedLabel),
		TeamSizeLabel: pick(s.TeamSizeLabel, d.TeamSizeLabel),
		LocationLabel: pick(s.LocationLabel, d.LocationLabel),
	}
}

// File represents the structure of the .ycscrape configuration file.
type File struct {
	// BaseURL overrides the origin prepended to listing hrefs.
	BaseURL string `yaml:"baseURL,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Proxy is a socks5:// URL used for detail page requests.
	Proxy string `yaml:"proxy,omitempty"`

	// Timeout overrides the per-request timeout, e.g. "45s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Cookie is an HTTP cookie sent with every detail page request.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are custom HTTP headers sent with every detail page request.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Selectors describes the listing and detail markup.
	Selectors Selectors `yaml:"selectors,omitempty"`
}
