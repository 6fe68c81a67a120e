package domain

import "context"

// CampaignRepository handles campaign persistence. ApplyDonation and
// UpdateStatus are versioned writes: the caller passes the Version it
// observed, and a stale version yields ErrConflict without any mutation.
// Implementations must commit the ledger append, the raised-total increment,
// and the status write as one atomic unit per campaign.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *Campaign) error
	GetByID(ctx context.Context, id string) (*Campaign, error)
	ListByStatus(ctx context.Context, status CampaignStatus) ([]Campaign, error)
	ListAll(ctx context.Context) ([]Campaign, error)
	ApplyDonation(ctx context.Context, id string, version int64, donation Donation, status CampaignStatus) (*Campaign, error)
	UpdateStatus(ctx context.Context, id string, version int64, status CampaignStatus) (*Campaign, error)
}
