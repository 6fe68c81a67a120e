package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"server/internal/crowdfund"
	"server/internal/domain"
	"server/internal/middleware"
)

type campaignCreateRequest struct {
	Title         string `json:"title"`
	Story         string `json:"story"`
	Category      string `json:"category"`
	GoalAmount    int64  `json:"goal_amount"`
	CourseName    string `json:"course_name"`
	InstituteName string `json:"institute_name"`
	BeneficiaryID string `json:"beneficiary_id"`
	IsOfficial    bool   `json:"is_official"`
}

func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	var req campaignCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	// Only administrators may mark a campaign as officially sponsored.
	isOfficial := req.IsOfficial && middleware.RoleFromContext(r.Context()) == middleware.RoleAdmin

	input := crowdfund.CampaignInput{
		Title:         req.Title,
		Story:         req.Story,
		Category:      domain.CampaignCategory(req.Category),
		GoalCents:     req.GoalAmount,
		CourseName:    req.CourseName,
		InstituteName: req.InstituteName,
		IsOfficial:    isOfficial,
	}
	if req.BeneficiaryID != "" {
		input.BeneficiaryID = &req.BeneficiaryID
	}

	campaign, err := a.Crowdfund.CreateCampaign(r.Context(), input)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.Logger.Info().
		Str("campaign_id", campaign.ID).
		Str("user_id", a.currentUserID(r)).
		Msg("campaign create accepted")
	a.json(w, http.StatusCreated, toCampaignDTO(*campaign, false))
}

func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	status := domain.CampaignStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.CampaignStatusActive
	}
	campaigns, err := a.Crowdfund.ListCampaigns(r.Context(), status)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]campaignDTO, 0, len(campaigns))
	for _, c := range campaigns {
		items = append(items, toCampaignDTO(c, false))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) CampaignsGet(w http.ResponseWriter, r *http.Request) {
	campaign, err := a.Crowdfund.GetCampaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toCampaignDTO(*campaign, true))
}

func (a *App) CampaignsClose(w http.ResponseWriter, r *http.Request) {
	campaign, err := a.Crowdfund.CloseCampaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.Logger.Info().
		Str("campaign_id", campaign.ID).
		Str("user_id", a.currentUserID(r)).
		Msg("campaign closed by administrator")
	a.json(w, http.StatusOK, toCampaignDTO(*campaign, false))
}

// CampaignsDonors is the audit path: it returns the ledger unredacted,
// including the real name behind anonymous entries.
func (a *App) CampaignsDonors(w http.ResponseWriter, r *http.Request) {
	donations, err := a.Crowdfund.CampaignDonors(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]map[string]any, 0, len(donations))
	for _, d := range donations {
		items = append(items, map[string]any{
			"id":           d.ID,
			"name":         d.Name,
			"email":        d.Email,
			"amount":       d.AmountCents,
			"message":      d.Message,
			"is_anonymous": d.IsAnonymous,
			"country":      d.Country,
			"created_at":   d.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
