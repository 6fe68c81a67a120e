package crowdfund

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"server/internal/domain"
)

const (
	// MaxMessageLen caps the free-text message attached to a donation.
	MaxMessageLen = 500

	// DefaultMaxDonationCents is the sane upper bound applied when no
	// explicit cap is configured.
	DefaultMaxDonationCents = int64(100_000_000)

	maxConflictRetries = 3
)

// Service coordinates campaign creation and the donation ledger. It is the
// sole writer of money into a campaign: every donation passes through
// Donate, which validates before any mutation and applies the ledger
// append, total increment, and status transition as one versioned write.
type Service struct {
	repo             domain.CampaignRepository
	logger           zerolog.Logger
	maxDonationCents int64
	now              func() time.Time
}

// NewService constructs the crowdfunding service. A non-positive
// maxDonationCents falls back to DefaultMaxDonationCents.
func NewService(repo domain.CampaignRepository, logger zerolog.Logger, maxDonationCents int64) *Service {
	if maxDonationCents <= 0 {
		maxDonationCents = DefaultMaxDonationCents
	}
	return &Service{
		repo:             repo,
		logger:           logger,
		maxDonationCents: maxDonationCents,
		now:              time.Now,
	}
}

// CampaignInput carries campaign-creation fields.
type CampaignInput struct {
	Title         string
	Story         string
	Category      domain.CampaignCategory
	GoalCents     int64
	CourseName    string
	InstituteName string
	BeneficiaryID *string
	IsOfficial    bool
}

// CreateCampaign validates the input and stores a new active campaign with
// an empty ledger. Nothing is persisted when validation fails.
func (s *Service) CreateCampaign(ctx context.Context, in CampaignInput) (*domain.Campaign, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(in.Story) == "" {
		return nil, &domain.ValidationError{Field: "story", Reason: "must not be empty"}
	}
	if in.GoalCents <= 0 {
		return nil, &domain.ValidationError{Field: "goal_amount", Reason: "must be positive"}
	}
	if !in.Category.Valid() {
		return nil, &domain.ValidationError{Field: "category", Reason: "unknown category"}
	}

	campaign := &domain.Campaign{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(in.Title),
		Story:         strings.TrimSpace(in.Story),
		Category:      in.Category,
		GoalCents:     in.GoalCents,
		IsOfficial:    in.IsOfficial,
		Status:        domain.CampaignStatusActive,
		BeneficiaryID: in.BeneficiaryID,
		CourseName:    strings.TrimSpace(in.CourseName),
		InstituteName: strings.TrimSpace(in.InstituteName),
		Version:       1,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("campaign_id", campaign.ID).
		Str("category", string(campaign.Category)).
		Int64("goal_cents", campaign.GoalCents).
		Bool("official", campaign.IsOfficial).
		Msg("campaign created")
	return campaign, nil
}

// DonationInput carries the fields of a donation request.
type DonationInput struct {
	Name        string
	Email       string
	AmountCents int64
	Message     string
	IsAnonymous bool
	Country     string
}

// Donate applies a donation to an active campaign. Validation happens before
// any mutation: a non-positive or oversized amount, a missing campaign, or a
// non-active status leave the store untouched. Version conflicts between
// concurrent donors are retried transparently up to a bounded count.
func (s *Service) Donate(ctx context.Context, campaignID string, in DonationInput) (*domain.Campaign, *domain.Donation, error) {
	if in.AmountCents <= 0 || in.AmountCents > s.maxDonationCents {
		return nil, nil, domain.ErrInvalidAmount
	}
	if len(in.Message) > MaxMessageLen {
		return nil, nil, &domain.ValidationError{Field: "message", Reason: "too long"}
	}

	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		campaign, err := s.repo.GetByID(ctx, campaignID)
		if err != nil {
			return nil, nil, err
		}
		if !campaign.IsActive() {
			return nil, nil, domain.ErrCampaignClosed
		}

		donation := domain.Donation{
			ID:          uuid.NewString(),
			Name:        strings.TrimSpace(in.Name),
			Email:       strings.TrimSpace(in.Email),
			AmountCents: in.AmountCents,
			Message:     in.Message,
			IsAnonymous: in.IsAnonymous,
			Country:     in.Country,
			CreatedAt:   s.now().UTC(),
		}
		next := NextStatus(campaign.Status, campaign.RaisedCents+in.AmountCents, campaign.GoalCents)

		updated, err := s.repo.ApplyDonation(ctx, campaignID, campaign.Version, donation, next)
		if errors.Is(err, domain.ErrConflict) {
			s.logger.Debug().
				Str("campaign_id", campaignID).
				Int("attempt", attempt+1).
				Msg("donation retried after concurrent write")
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		if next == domain.CampaignStatusFunded {
			s.logger.Info().
				Str("campaign_id", campaignID).
				Int64("raised_cents", updated.RaisedCents).
				Int64("goal_cents", updated.GoalCents).
				Msg("campaign funded")
		}
		return updated, &donation, nil
	}
	return nil, nil, fmt.Errorf("donation not applied after %d attempts: %w", maxConflictRetries, domain.ErrConflict)
}

// CloseCampaign applies the administrative closed override to an active
// campaign. It rides the same versioned write path as donations, so a close
// racing a donation serializes on the campaign version.
func (s *Service) CloseCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		campaign, err := s.repo.GetByID(ctx, campaignID)
		if err != nil {
			return nil, err
		}
		if !campaign.IsActive() {
			return nil, domain.ErrCampaignClosed
		}
		updated, err := s.repo.UpdateStatus(ctx, campaignID, campaign.Version, domain.CampaignStatusClosed)
		if errors.Is(err, domain.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		s.logger.Info().Str("campaign_id", campaignID).Msg("campaign closed")
		return updated, nil
	}
	return nil, fmt.Errorf("close not applied after %d attempts: %w", maxConflictRetries, domain.ErrConflict)
}

// GetCampaign fetches a single campaign.
func (s *Service) GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	return s.repo.GetByID(ctx, campaignID)
}

// ListCampaigns returns campaigns filtered by status in creation order,
// oldest first.
func (s *Service) ListCampaigns(ctx context.Context, status domain.CampaignStatus) ([]domain.Campaign, error) {
	if !status.Valid() {
		return nil, &domain.ValidationError{Field: "status", Reason: "unknown status"}
	}
	return s.repo.ListByStatus(ctx, status)
}

// CampaignDonors returns the unredacted ledger for audit use. Anonymous
// entries keep their real name here; redaction is a view concern.
func (s *Service) CampaignDonors(ctx context.Context, campaignID string) ([]domain.Donation, error) {
	campaign, err := s.repo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	return campaign.Donations, nil
}
