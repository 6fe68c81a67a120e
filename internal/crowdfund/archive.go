package crowdfund

import (
	"context"
	"sort"
	"time"

	"server/internal/domain"
)

// DefaultTopDonors is the donor-summary cutoff used when the caller does
// not ask for a specific count.
const DefaultTopDonors = 5

// DonorSummary is the outward-facing view of a ledger entry. Anonymous
// entries carry the placeholder name and never the email.
type DonorSummary struct {
	Name        string
	AmountCents int64
	Message     string
	CreatedAt   time.Time
}

// ArchiveEntry pairs a funded campaign with its leading donors in ledger
// order.
type ArchiveEntry struct {
	Campaign  domain.Campaign
	TopDonors []DonorSummary
}

// FundedArchive lists campaigns in the terminal funded state, newest first,
// each with up to topN donor summaries taken in ledger order.
func (s *Service) FundedArchive(ctx context.Context, topN int) ([]ArchiveEntry, error) {
	if topN <= 0 {
		topN = DefaultTopDonors
	}
	campaigns, err := s.repo.ListByStatus(ctx, domain.CampaignStatusFunded)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(campaigns, func(i, j int) bool {
		return campaigns[i].CreatedAt.After(campaigns[j].CreatedAt)
	})

	entries := make([]ArchiveEntry, 0, len(campaigns))
	for _, c := range campaigns {
		donors := c.Donations
		if len(donors) > topN {
			donors = donors[:topN]
		}
		summaries := make([]DonorSummary, 0, len(donors))
		for _, d := range donors {
			summaries = append(summaries, DonorSummary{
				Name:        d.DisplayName(),
				AmountCents: d.AmountCents,
				Message:     d.Message,
				CreatedAt:   d.CreatedAt,
			})
		}
		entries = append(entries, ArchiveEntry{Campaign: c, TopDonors: summaries})
	}
	return entries, nil
}
