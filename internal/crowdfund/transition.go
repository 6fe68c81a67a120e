package crowdfund

import "server/internal/domain"

// NextStatus decides the post-donation status for a campaign. An active
// campaign becomes funded the first time the raised total meets or exceeds
// the goal; funded and closed are terminal and never revert. Overfunding is
// permitted, the rule only requires "at least".
func NextStatus(current domain.CampaignStatus, raisedCents, goalCents int64) domain.CampaignStatus {
	if current == domain.CampaignStatusActive && raisedCents >= goalCents {
		return domain.CampaignStatusFunded
	}
	return current
}
