package crowdfund

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"server/internal/adapter/repo"
	"server/internal/domain"
)

func TestFundedArchiveNewestFirst(t *testing.T) {
	store := repo.NewCampaignMemoryRepository()
	svc := NewService(store, zerolog.Nop(), 0)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	seedCampaign(t, store, "old", domain.CampaignStatusFunded, base,
		domain.Donation{ID: "d1", Name: "Ana", AmountCents: 1000_00},
	)
	seedCampaign(t, store, "new", domain.CampaignStatusFunded, base.Add(48*time.Hour),
		domain.Donation{ID: "d2", Name: "Ben", AmountCents: 1200_00},
	)
	seedCampaign(t, store, "active", domain.CampaignStatusActive, base.Add(24*time.Hour))

	entries, err := svc.FundedArchive(context.Background(), 0)
	if err != nil {
		t.Fatalf("FundedArchive: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2 (active campaigns excluded)", len(entries))
	}
	if entries[0].Campaign.ID != "new" || entries[1].Campaign.ID != "old" {
		t.Fatalf("order = [%s %s], want newest first", entries[0].Campaign.ID, entries[1].Campaign.ID)
	}
}

func TestFundedArchiveTopDonorsCutoff(t *testing.T) {
	store := repo.NewCampaignMemoryRepository()
	svc := NewService(store, zerolog.Nop(), 0)

	donations := []domain.Donation{
		{ID: "d1", Name: "First", AmountCents: 400_00},
		{ID: "d2", Name: "Second", AmountCents: 300_00},
		{ID: "d3", Name: "Third", AmountCents: 300_00},
	}
	seedCampaign(t, store, "a", domain.CampaignStatusFunded, time.Now().UTC(), donations...)

	entries, err := svc.FundedArchive(context.Background(), 2)
	if err != nil {
		t.Fatalf("FundedArchive: %v", err)
	}
	if len(entries[0].TopDonors) != 2 {
		t.Fatalf("top donors = %d, want 2", len(entries[0].TopDonors))
	}
	// Ledger order, not amount order.
	if entries[0].TopDonors[0].Name != "First" || entries[0].TopDonors[1].Name != "Second" {
		t.Fatalf("unexpected donor order: %+v", entries[0].TopDonors)
	}
}

func TestFundedArchiveRedactsAnonymousDonors(t *testing.T) {
	store := repo.NewCampaignMemoryRepository()
	svc := NewService(store, zerolog.Nop(), 0)

	seedCampaign(t, store, "a", domain.CampaignStatusFunded, time.Now().UTC(),
		domain.Donation{ID: "d1", Name: "Ana Siregar", Email: "ana@example.com", AmountCents: 600_00, IsAnonymous: true},
		domain.Donation{ID: "d2", Name: "Ben", AmountCents: 500_00},
	)

	entries, err := svc.FundedArchive(context.Background(), 0)
	if err != nil {
		t.Fatalf("FundedArchive: %v", err)
	}
	donors := entries[0].TopDonors
	if donors[0].Name != domain.AnonymousDonorName {
		t.Fatalf("anonymous donor exposed as %q", donors[0].Name)
	}
	if donors[1].Name != "Ben" {
		t.Fatalf("named donor = %q, want Ben", donors[1].Name)
	}

	// The audit path still returns the retained identity.
	ledger, err := svc.CampaignDonors(context.Background(), "a")
	if err != nil {
		t.Fatalf("CampaignDonors: %v", err)
	}
	if ledger[0].Name != "Ana Siregar" {
		t.Fatalf("audit path lost identity: %q", ledger[0].Name)
	}
}
