package domain

import "context"

// DefaultAccessCodeTemplate is used when no access code template is configured.
const DefaultAccessCodeTemplate = "{sponsor_name}-{level_name}-{sponsor_id}"

// SponsorLevel is a sponsorship tier such as Gold or Silver.
type SponsorLevel struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// Sponsor is a company sponsoring the conference.
type Sponsor struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Level        SponsorLevel `json:"level"`
	ContactName  string       `json:"contact_name"`
	ContactEmail string       `json:"contact_email"`
	Active       bool         `json:"active"`
	// WebLogo is the storage path of the web logo, empty when none.
	WebLogo     string `json:"web_logo"`
	ListingText string `json:"listing_text"`
}

// SponsorLevelGroup is a level with its active sponsors, used by the sponsor listing page.
type SponsorLevelGroup struct {
	Level    SponsorLevel
	Sponsors []*Sponsor
}

// SponsorOrder selects how active sponsors are sorted.
type SponsorOrder int

const (
	// SponsorOrderByLevel sorts by level order, then level name.
	SponsorOrderByLevel SponsorOrder = iota
	// SponsorOrderByLevelAndName sorts by level order, then sponsor name.
	SponsorOrderByLevelAndName
)

// SponsorRepository reads sponsors.
type SponsorRepository interface {
	ListActive(ctx context.Context, order SponsorOrder) ([]*Sponsor, error)
}
