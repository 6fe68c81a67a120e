package repo

import (
	"context"
	"fmt"
	"sync"

	"server/internal/domain"
)

// CampaignMemoryRepository implements CampaignRepository in process memory.
// Each campaign carries its own lock and version counter, so writers against
// different campaigns never contend; writers against the same campaign
// serialize on the record lock and the version check.
type CampaignMemoryRepository struct {
	mu        sync.RWMutex
	campaigns map[string]*memoryCampaign
	order     []string
}

type memoryCampaign struct {
	mu       sync.Mutex
	campaign domain.Campaign
}

// NewCampaignMemoryRepository creates an empty in-memory store.
func NewCampaignMemoryRepository() *CampaignMemoryRepository {
	return &CampaignMemoryRepository{campaigns: make(map[string]*memoryCampaign)}
}

// Create stores a new campaign. IDs must be unique.
func (r *CampaignMemoryRepository) Create(_ context.Context, campaign *domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.campaigns[campaign.ID]; ok {
		return fmt.Errorf("campaign %s: %w", campaign.ID, domain.ErrConflict)
	}
	r.campaigns[campaign.ID] = &memoryCampaign{campaign: cloneCampaign(*campaign)}
	r.order = append(r.order, campaign.ID)
	return nil
}

// GetByID returns a copy of the campaign or ErrNotFound.
func (r *CampaignMemoryRepository) GetByID(_ context.Context, id string) (*domain.Campaign, error) {
	rec, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	c := cloneCampaign(rec.campaign)
	return &c, nil
}

// ListByStatus returns campaigns in creation order, oldest first.
func (r *CampaignMemoryRepository) ListByStatus(_ context.Context, status domain.CampaignStatus) ([]domain.Campaign, error) {
	return r.snapshot(func(c domain.Campaign) bool { return c.Status == status }), nil
}

// ListAll returns every campaign in creation order.
func (r *CampaignMemoryRepository) ListAll(_ context.Context) ([]domain.Campaign, error) {
	return r.snapshot(func(domain.Campaign) bool { return true }), nil
}

// ApplyDonation appends the donation, increments the raised total, and sets
// the status as one unit. A stale version yields ErrConflict and no change.
func (r *CampaignMemoryRepository) ApplyDonation(_ context.Context, id string, version int64, donation domain.Donation, status domain.CampaignStatus) (*domain.Campaign, error) {
	rec, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.campaign.Version != version {
		return nil, domain.ErrConflict
	}
	rec.campaign.Donations = append(rec.campaign.Donations, donation)
	rec.campaign.RaisedCents += donation.AmountCents
	rec.campaign.Status = status
	rec.campaign.Version++
	c := cloneCampaign(rec.campaign)
	return &c, nil
}

// UpdateStatus sets the status under the same version check as donations.
func (r *CampaignMemoryRepository) UpdateStatus(_ context.Context, id string, version int64, status domain.CampaignStatus) (*domain.Campaign, error) {
	rec, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.campaign.Version != version {
		return nil, domain.ErrConflict
	}
	rec.campaign.Status = status
	rec.campaign.Version++
	c := cloneCampaign(rec.campaign)
	return &c, nil
}

func (r *CampaignMemoryRepository) lookup(id string) (*memoryCampaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}
	return rec, nil
}

func (r *CampaignMemoryRepository) snapshot(keep func(domain.Campaign) bool) []domain.Campaign {
	r.mu.RLock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	recs := make([]*memoryCampaign, 0, len(ids))
	for _, id := range ids {
		recs = append(recs, r.campaigns[id])
	}
	r.mu.RUnlock()

	items := make([]domain.Campaign, 0, len(recs))
	for _, rec := range recs {
		rec.mu.Lock()
		c := cloneCampaign(rec.campaign)
		rec.mu.Unlock()
		if keep(c) {
			items = append(items, c)
		}
	}
	return items
}

// cloneCampaign copies the campaign including its ledger so callers can
// never mutate stored state through a returned value.
func cloneCampaign(c domain.Campaign) domain.Campaign {
	if c.Donations != nil {
		donations := make([]domain.Donation, len(c.Donations))
		copy(donations, c.Donations)
		c.Donations = donations
	}
	if c.BeneficiaryID != nil {
		id := *c.BeneficiaryID
		c.BeneficiaryID = &id
	}
	return c
}

var _ domain.CampaignRepository = (*CampaignMemoryRepository)(nil)
