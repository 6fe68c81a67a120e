package handlers

import "net/http"

func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Crowdfund.GlobalStats(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"total_active": stats.TotalActive,
		"total_raised": stats.TotalRaisedCents,
		"total_donors": stats.TotalDonors,
	})
}
