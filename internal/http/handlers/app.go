package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"server/internal/crowdfund"
	"server/internal/domain"
	"server/internal/middleware"
)

// App bundles the dependencies shared by the HTTP handlers.
type App struct {
	Crowdfund        *crowdfund.Service
	Logger           zerolog.Logger
	ArchiveTopDonors int
}

// NewApp creates the handler container. A non-positive archiveTopDonors
// falls back to the crowdfund default.
func NewApp(svc *crowdfund.Service, logger zerolog.Logger, archiveTopDonors int) *App {
	if archiveTopDonors <= 0 {
		archiveTopDonors = crowdfund.DefaultTopDonors
	}
	return &App{Crowdfund: svc, Logger: logger, ArchiveTopDonors: archiveTopDonors}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, msg string) {
	a.json(w, code, map[string]any{"error": map[string]string{"code": kind, "message": msg}})
}

// domainError maps core errors to stable error kinds at the API boundary.
func (a *App) domainError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		a.error(w, http.StatusBadRequest, "validation_error", vErr.Error())
	case errors.Is(err, domain.ErrInvalidAmount):
		a.error(w, http.StatusBadRequest, "invalid_amount", "amount must be positive and within the allowed limit")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "campaign not found")
	case errors.Is(err, domain.ErrCampaignClosed):
		a.error(w, http.StatusConflict, "campaign_closed", "campaign is no longer accepting funds")
	case errors.Is(err, domain.ErrConflict):
		a.error(w, http.StatusServiceUnavailable, "conflict", "temporary contention, please retry")
	default:
		a.Logger.Error().Err(err).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}
