package handlers

import (
	"time"

	"server/internal/crowdfund"
	"server/internal/domain"
)

type campaignDTO struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Story         string     `json:"story"`
	Category      string     `json:"category"`
	GoalAmount    int64      `json:"goal_amount"`
	RaisedAmount  int64      `json:"raised_amount"`
	Progress      int        `json:"progress"`
	Status        string     `json:"status"`
	IsOfficial    bool       `json:"is_official"`
	CourseName    string     `json:"course_name,omitempty"`
	InstituteName string     `json:"institute_name,omitempty"`
	DonorCount    int        `json:"donor_count"`
	Donors        []donorDTO `json:"donors,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type donorDTO struct {
	Name      string    `json:"name"`
	Amount    int64     `json:"amount"`
	Message   string    `json:"message,omitempty"`
	Country   string    `json:"country,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// toCampaignDTO builds the outward-facing representation. Donor names are
// redacted per entry; emails never leave the store through this path.
func toCampaignDTO(c domain.Campaign, includeDonors bool) campaignDTO {
	dto := campaignDTO{
		ID:            c.ID,
		Title:         c.Title,
		Story:         c.Story,
		Category:      string(c.Category),
		GoalAmount:    c.GoalCents,
		RaisedAmount:  c.RaisedCents,
		Progress:      c.ProgressPercent(),
		Status:        string(c.Status),
		IsOfficial:    c.IsOfficial,
		CourseName:    c.CourseName,
		InstituteName: c.InstituteName,
		DonorCount:    len(c.Donations),
		CreatedAt:     c.CreatedAt,
	}
	if includeDonors {
		dto.Donors = make([]donorDTO, 0, len(c.Donations))
		for _, d := range c.Donations {
			dto.Donors = append(dto.Donors, donorDTO{
				Name:      d.DisplayName(),
				Amount:    d.AmountCents,
				Message:   d.Message,
				Country:   d.Country,
				CreatedAt: d.CreatedAt,
			})
		}
	}
	return dto
}

func toDonorSummaries(summaries []crowdfund.DonorSummary) []donorDTO {
	out := make([]donorDTO, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, donorDTO{
			Name:      s.Name,
			Amount:    s.AmountCents,
			Message:   s.Message,
			CreatedAt: s.CreatedAt,
		})
	}
	return out
}
