package crowdfund

import (
	"context"

	"server/internal/domain"
)

// GlobalStats is a read-only snapshot across all campaigns for dashboard
// display. TotalRaisedCents spans every status, so funded campaigns stay
// counted. TotalDonors counts ledger entries, not distinct people; a donor
// giving twice counts twice.
type GlobalStats struct {
	TotalActive      int
	TotalRaisedCents int64
	TotalDonors      int
}

// GlobalStats computes the snapshot fresh from the store on each call.
func (s *Service) GlobalStats(ctx context.Context) (GlobalStats, error) {
	campaigns, err := s.repo.ListAll(ctx)
	if err != nil {
		return GlobalStats{}, err
	}
	var stats GlobalStats
	for _, c := range campaigns {
		if c.Status == domain.CampaignStatusActive {
			stats.TotalActive++
		}
		stats.TotalRaisedCents += c.RaisedCents
		stats.TotalDonors += len(c.Donations)
	}
	return stats, nil
}
