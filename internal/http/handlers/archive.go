package handlers

import "net/http"

// CampaignsFunded serves the success-stories view: campaigns that reached
// their goal, newest first, with redacted donor summaries.
func (a *App) CampaignsFunded(w http.ResponseWriter, r *http.Request) {
	entries, err := a.Crowdfund.FundedArchive(r.Context(), a.ArchiveTopDonors)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		dto := toCampaignDTO(entry.Campaign, false)
		items = append(items, map[string]any{
			"campaign":   dto,
			"top_donors": toDonorSummaries(entry.TopDonors),
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
