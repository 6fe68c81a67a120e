package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// CampaignRepositoryPG implements CampaignRepository using PostgreSQL. The
// donation path runs the campaign update and the ledger insert in one
// transaction guarded by the campaign version column, so a concurrent
// writer surfaces as ErrConflict instead of a lost update.
type CampaignRepositoryPG struct {
	runner *infra.SQLRunner
}

// NewCampaignRepository creates a new campaign repo over the SQL runner.
func NewCampaignRepository(runner *infra.SQLRunner) *CampaignRepositoryPG {
	return &CampaignRepositoryPG{runner: runner}
}

// Create inserts a new campaign record.
func (r *CampaignRepositoryPG) Create(ctx context.Context, campaign *domain.Campaign) error {
	_, err := r.runner.Exec(ctx, sqlinline.QInsertCampaign,
		campaign.ID,
		campaign.Title,
		campaign.Story,
		string(campaign.Category),
		campaign.GoalCents,
		campaign.IsOfficial,
		string(campaign.Status),
		campaign.BeneficiaryID,
		campaign.CourseName,
		campaign.InstituteName,
		campaign.CreatedAt,
	)
	return err
}

// GetByID returns the campaign including its ledger, or ErrNotFound.
func (r *CampaignRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	row := r.runner.QueryRow(ctx, sqlinline.QGetCampaign, id)
	campaign, err := scanCampaign(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	donations, err := r.listDonations(ctx, id)
	if err != nil {
		return nil, err
	}
	campaign.Donations = donations
	return campaign, nil
}

// ListByStatus returns campaigns with the given status in creation order.
func (r *CampaignRepositoryPG) ListByStatus(ctx context.Context, status domain.CampaignStatus) ([]domain.Campaign, error) {
	rows, err := r.runner.Query(ctx, sqlinline.QListCampaignsByStatus, string(status))
	if err != nil {
		return nil, err
	}
	return r.collectCampaigns(ctx, rows)
}

// ListAll returns every campaign in creation order.
func (r *CampaignRepositoryPG) ListAll(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.runner.Query(ctx, sqlinline.QListCampaigns)
	if err != nil {
		return nil, err
	}
	return r.collectCampaigns(ctx, rows)
}

// ApplyDonation commits the ledger insert, the raised-total increment, and
// the status write in one transaction. A stale version yields ErrConflict.
func (r *CampaignRepositoryPG) ApplyDonation(ctx context.Context, id string, version int64, donation domain.Donation, status domain.CampaignStatus) (*domain.Campaign, error) {
	tx, err := r.runner.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, sqlinline.QApplyDonationToCampaign,
		donation.AmountCents, string(status), id, version)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, r.staleWriteError(ctx, tx, id)
	}

	if _, err := tx.Exec(ctx, sqlinline.QInsertDonation,
		donation.ID,
		id,
		donation.Name,
		donation.Email,
		donation.AmountCents,
		donation.Message,
		donation.IsAnonymous,
		donation.Country,
		donation.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// UpdateStatus sets the status under the same version check as donations.
func (r *CampaignRepositoryPG) UpdateStatus(ctx context.Context, id string, version int64, status domain.CampaignStatus) (*domain.Campaign, error) {
	tag, err := r.runner.Exec(ctx, sqlinline.QUpdateCampaignStatus, string(status), id, version)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrConflict
	}
	return r.GetByID(ctx, id)
}

// staleWriteError distinguishes a missing campaign from a lost version race
// while the transaction is still open.
func (r *CampaignRepositoryPG) staleWriteError(ctx context.Context, tx pgx.Tx, id string) error {
	row := tx.QueryRow(ctx, sqlinline.QGetCampaign, id)
	if _, err := scanCampaign(row.Scan); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
		}
		return err
	}
	return domain.ErrConflict
}

func (r *CampaignRepositoryPG) collectCampaigns(ctx context.Context, rows pgx.Rows) ([]domain.Campaign, error) {
	defer rows.Close()

	var items []domain.Campaign
	index := make(map[string]int)
	for rows.Next() {
		campaign, err := scanCampaign(rows.Scan)
		if err != nil {
			return nil, err
		}
		index[campaign.ID] = len(items)
		items = append(items, *campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	donationRows, err := r.runner.Query(ctx, sqlinline.QListAllDonations)
	if err != nil {
		return nil, err
	}
	defer donationRows.Close()
	for donationRows.Next() {
		var campaignID string
		donation, err := scanDonation(&campaignID, donationRows.Scan)
		if err != nil {
			return nil, err
		}
		if i, ok := index[campaignID]; ok {
			items[i].Donations = append(items[i].Donations, donation)
		}
	}
	if err := donationRows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CampaignRepositoryPG) listDonations(ctx context.Context, campaignID string) ([]domain.Donation, error) {
	rows, err := r.runner.Query(ctx, sqlinline.QListCampaignDonations, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		var d domain.Donation
		var email, message, country sql.NullString
		if err := rows.Scan(&d.ID, &d.Name, &email, &d.AmountCents, &message, &d.IsAnonymous, &country, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.Email = email.String
		d.Message = message.String
		d.Country = country.String
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanCampaign(scan func(dest ...any) error) (*domain.Campaign, error) {
	var c domain.Campaign
	var category, status string
	var beneficiary, courseName, instituteName sql.NullString
	if err := scan(
		&c.ID,
		&c.Title,
		&c.Story,
		&category,
		&c.GoalCents,
		&c.RaisedCents,
		&c.IsOfficial,
		&status,
		&beneficiary,
		&courseName,
		&instituteName,
		&c.Version,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	c.Category = domain.CampaignCategory(category)
	c.Status = domain.CampaignStatus(status)
	if beneficiary.Valid {
		id := beneficiary.String
		c.BeneficiaryID = &id
	}
	c.CourseName = courseName.String
	c.InstituteName = instituteName.String
	return &c, nil
}

func scanDonation(campaignID *string, scan func(dest ...any) error) (domain.Donation, error) {
	var d domain.Donation
	var email, message, country sql.NullString
	if err := scan(campaignID, &d.ID, &d.Name, &email, &d.AmountCents, &message, &d.IsAnonymous, &country, &d.CreatedAt); err != nil {
		return domain.Donation{}, err
	}
	d.Email = email.String
	d.Message = message.String
	d.Country = country.String
	return d, nil
}

var _ domain.CampaignRepository = (*CampaignRepositoryPG)(nil)
