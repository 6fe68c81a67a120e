package domain

import "time"

// CampaignStatus enumerates campaign lifecycle states.
type CampaignStatus string

const (
	CampaignStatusActive CampaignStatus = "active"
	CampaignStatusFunded CampaignStatus = "funded"
	CampaignStatusClosed CampaignStatus = "closed"
)

// Valid reports whether the status is a known lifecycle state.
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusActive, CampaignStatusFunded, CampaignStatusClosed:
		return true
	}
	return false
}

// CampaignCategory enumerates supported campaign categories.
type CampaignCategory string

const (
	CategoryEducation CampaignCategory = "education"
	CategoryMedical   CampaignCategory = "medical"
	CategoryResearch  CampaignCategory = "research"
	CategoryArts      CampaignCategory = "arts"
	CategoryOther     CampaignCategory = "other"
)

// Valid reports whether the category belongs to the closed enumeration.
func (c CampaignCategory) Valid() bool {
	switch c {
	case CategoryEducation, CategoryMedical, CategoryResearch, CategoryArts, CategoryOther:
		return true
	}
	return false
}

// Campaign is a fundraising request tied to a monetary goal and an
// append-only donation ledger. RaisedCents always equals the sum of the
// ledger amounts; only the donation path mutates it. Version backs the
// optimistic-concurrency checks in the repositories.
type Campaign struct {
	ID            string
	Title         string
	Story         string
	Category      CampaignCategory
	GoalCents     int64
	RaisedCents   int64
	Donations     []Donation
	IsOfficial    bool
	Status        CampaignStatus
	BeneficiaryID *string
	CourseName    string
	InstituteName string
	Version       int64
	CreatedAt     time.Time
}

// IsActive reports whether the campaign still accepts donations.
func (c Campaign) IsActive() bool {
	return c.Status == CampaignStatusActive
}

// ProgressPercent returns the display progress capped at 100. The stored
// raised amount itself is never clamped; overfunded campaigns keep their
// full total.
func (c Campaign) ProgressPercent() int {
	if c.GoalCents <= 0 {
		return 0
	}
	pct := (c.RaisedCents*100 + c.GoalCents/2) / c.GoalCents
	if pct > 100 {
		return 100
	}
	return int(pct)
}
