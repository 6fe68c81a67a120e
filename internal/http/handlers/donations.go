package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"server/internal/crowdfund"
	"server/internal/middleware"
)

type donationRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	Message     string `json:"message"`
	IsAnonymous bool   `json:"is_anonymous"`
}

func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	campaignID := chi.URLParam(r, "id")
	input := crowdfund.DonationInput{
		Name:        req.Name,
		Email:       req.Email,
		AmountCents: req.Amount,
		Message:     req.Message,
		IsAnonymous: req.IsAnonymous,
		Country:     middleware.CountryFromContext(r.Context()),
	}

	campaign, donation, err := a.Crowdfund.Donate(r.Context(), campaignID, input)
	if err != nil {
		a.domainError(w, err)
		return
	}

	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusCreated, map[string]any{
		"donation_id":   donation.ID,
		"message":       confirmationMessage(locale, donation.AmountCents, campaign.Title),
		"raised_amount": campaign.RaisedCents,
		"goal_amount":   campaign.GoalCents,
		"progress":      campaign.ProgressPercent(),
		"status":        string(campaign.Status),
	})
}
