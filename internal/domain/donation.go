package domain

import "time"

// AnonymousDonorName replaces the donor name in outward-facing views when
// the donation is flagged anonymous. The stored record keeps the real name
// for audit retrieval.
const AnonymousDonorName = "Anonymous"

// Donation represents a single supporter contribution applied to exactly
// one campaign. Records are append-only: once committed they are never
// mutated or removed.
type Donation struct {
	ID          string
	Name        string
	Email       string
	AmountCents int64
	Message     string
	IsAnonymous bool
	Country     string
	CreatedAt   time.Time
}

// DisplayName returns the outward-facing donor name, honoring anonymity.
func (d Donation) DisplayName() string {
	if d.IsAnonymous {
		return AnonymousDonorName
	}
	return d.Name
}
