package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"server/internal/adapter/repo"
	"server/internal/crowdfund"
	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := repo.NewCampaignMemoryRepository()
	svc := crowdfund.NewService(store, zerolog.Nop(), 0)
	app := handlers.NewApp(svc, zerolog.Nop(), 5)
	cfg := &infra.Config{
		JWTSecret:       testSecret,
		AllowedOrigins:  []string{"http://localhost:3000"},
		DefaultLocale:   "en",
		RateLimitPerMin: 10_000,
	}
	return NewRouter(app, cfg, zerolog.Nop(), nil)
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	token, err := middleware.SignToken(testSecret, "user-1", role, "en", time.Hour)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, router http.Handler, method, path, auth string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

func createTestCampaign(t *testing.T, router http.Handler, goal int64) string {
	t.Helper()
	rr := doJSON(t, router, http.MethodPost, "/v1/campaigns", bearer(t, "student"), map[string]any{
		"title":       "Tuition support",
		"story":       "One semester away from graduating.",
		"category":    "education",
		"goal_amount": goal,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create campaign: status %d body %s", rr.Code, rr.Body.String())
	}
	id, _ := decode(t, rr)["id"].(string)
	if id == "" {
		t.Fatal("create campaign: missing id")
	}
	return id
}

func TestCampaignCreateRequiresAuth(t *testing.T) {
	router := newTestRouter(t)
	rr := doJSON(t, router, http.MethodPost, "/v1/campaigns", "", map[string]any{
		"title": "x", "story": "y", "category": "education", "goal_amount": 100,
	})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestCampaignCreateValidation(t *testing.T) {
	router := newTestRouter(t)
	rr := doJSON(t, router, http.MethodPost, "/v1/campaigns", bearer(t, "student"), map[string]any{
		"title": "", "story": "y", "category": "education", "goal_amount": 100,
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	payload := decode(t, rr)
	errObj, _ := payload["error"].(map[string]any)
	if errObj["code"] != "validation_error" {
		t.Fatalf("error code = %v, want validation_error", errObj["code"])
	}
}

func TestOfficialFlagRequiresAdmin(t *testing.T) {
	router := newTestRouter(t)

	body := map[string]any{
		"title": "Official research fund", "story": "Department sponsored.",
		"category": "research", "goal_amount": 5000_00, "is_official": true,
	}

	rr := doJSON(t, router, http.MethodPost, "/v1/campaigns", bearer(t, "student"), body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("student create: status %d", rr.Code)
	}
	if official, _ := decode(t, rr)["is_official"].(bool); official {
		t.Fatal("student campaign must not be official")
	}

	rr = doJSON(t, router, http.MethodPost, "/v1/campaigns", bearer(t, "admin"), body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("admin create: status %d", rr.Code)
	}
	if official, _ := decode(t, rr)["is_official"].(bool); !official {
		t.Fatal("admin campaign should honor is_official")
	}
}

func TestDonationFlow(t *testing.T) {
	router := newTestRouter(t)
	id := createTestCampaign(t, router, 1000_00)

	rr := doJSON(t, router, http.MethodPost, "/v1/campaigns/"+id+"/donations", "", map[string]any{
		"name": "Ana", "amount": 0,
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("zero amount: status %d, want 400", rr.Code)
	}

	rr = doJSON(t, router, http.MethodPost, "/v1/campaigns/"+id+"/donations", "", map[string]any{
		"name": "Ana", "amount": 900_00, "message": "good luck",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("donation: status %d body %s", rr.Code, rr.Body.String())
	}
	payload := decode(t, rr)
	if payload["raised_amount"].(float64) != 900_00 {
		t.Fatalf("raised_amount = %v", payload["raised_amount"])
	}
	if payload["status"] != "active" {
		t.Fatalf("status = %v, want active", payload["status"])
	}
	if msg, _ := payload["message"].(string); msg == "" {
		t.Fatal("expected confirmation message")
	}

	rr = doJSON(t, router, http.MethodPost, "/v1/campaigns/"+id+"/donations", "", map[string]any{
		"name": "Ben", "amount": 150_00,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("funding donation: status %d", rr.Code)
	}
	payload = decode(t, rr)
	if payload["status"] != "funded" {
		t.Fatalf("status = %v, want funded", payload["status"])
	}
	if payload["raised_amount"].(float64) != 1050_00 {
		t.Fatalf("raised_amount = %v, want 105000", payload["raised_amount"])
	}
	if payload["progress"].(float64) != 100 {
		t.Fatalf("progress = %v, want capped at 100", payload["progress"])
	}

	rr = doJSON(t, router, http.MethodPost, "/v1/campaigns/"+id+"/donations", "", map[string]any{
		"name": "Cara", "amount": 10_00,
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("donation to funded: status %d, want 409", rr.Code)
	}
	errObj, _ := decode(t, rr)["error"].(map[string]any)
	if errObj["code"] != "campaign_closed" {
		t.Fatalf("error code = %v, want campaign_closed", errObj["code"])
	}
}

func TestDonationToUnknownCampaign(t *testing.T) {
	router := newTestRouter(t)
	rr := doJSON(t, router, http.MethodPost, "/v1/campaigns/00000000-0000-0000-0000-000000000000/donations", "", map[string]any{
		"name": "Ana", "amount": 100,
	})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestCampaignGetRedactsAnonymousDonors(t *testing.T) {
	router := newTestRouter(t)
	id := createTestCampaign(t, router, 1000_00)

	rr := doJSON(t, router, http.MethodPost, "/v1/campaigns/"+id+"/donations", "", map[string]any{
		"name": "Ana Siregar", "email": "ana@example.com", "amount": 100_00, "is_anonymous": true,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("donation: status %d", rr.Code)
	}

	rr = doJSON(t, router, http.MethodGet, "/v1/campaigns/"+id, "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get campaign: status %d", rr.Code)
	}
	payload := decode(t, rr)
	donors, _ := payload["donors"].([]any)
	if len(donors) != 1 {
		t.Fatalf("donors = %d, want 1", len(donors))
	}
	donor := donors[0].(map[string]any)
	if donor["name"] != "Anonymous" {
		t.Fatalf("donor name = %v, want Anonymous", donor["name"])
	}
	if _, ok := donor["email"]; ok {
		t.Fatal("donor email must never appear in the public view")
	}
}

func TestAdminDonorsAuditPath(t *testing.T) {
	router := newTestRouter(t)
	id := createTestCampaign(t, router, 1000_00)

	rr := doJSON(t, router, http.MethodPost, "/v1/campaigns/"+id+"/donations", "", map[string]any{
		"name": "Ana Siregar", "amount": 100_00, "is_anonymous": true,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("donation: status %d", rr.Code)
	}

	rr = doJSON(t, router, http.MethodGet, "/v1/campaigns/"+id+"/donors", bearer(t, "student"), nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("student audit access: status %d, want 403", rr.Code)
	}

	rr = doJSON(t, router, http.MethodGet, "/v1/campaigns/"+id+"/donors", bearer(t, "admin"), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("admin audit access: status %d", rr.Code)
	}
	items, _ := decode(t, rr)["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	entry := items[0].(map[string]any)
	if entry["name"] != "Ana Siregar" {
		t.Fatalf("audit name = %v, want retained identity", entry["name"])
	}
}

func TestAdminCloseCampaign(t *testing.T) {
	router := newTestRouter(t)
	id := createTestCampaign(t, router, 1000_00)

	rr := doJSON(t, router, http.MethodPost, "/v1/campaigns/"+id+"/close", bearer(t, "student"), nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("student close: status %d, want 403", rr.Code)
	}

	rr = doJSON(t, router, http.MethodPost, "/v1/campaigns/"+id+"/close", bearer(t, "admin"), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("admin close: status %d", rr.Code)
	}
	if status, _ := decode(t, rr)["status"].(string); status != "closed" {
		t.Fatalf("status = %q, want closed", status)
	}

	rr = doJSON(t, router, http.MethodPost, "/v1/campaigns/"+id+"/donations", "", map[string]any{
		"name": "Ana", "amount": 100,
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("donation to closed: status %d, want 409", rr.Code)
	}
}

func TestStatsAndFundedArchive(t *testing.T) {
	router := newTestRouter(t)
	first := createTestCampaign(t, router, 500_00)
	second := createTestCampaign(t, router, 1000_00)

	rr := doJSON(t, router, http.MethodPost, "/v1/campaigns/"+first+"/donations", "", map[string]any{
		"name": "Ana", "amount": 600_00,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("donation: status %d", rr.Code)
	}

	rr = doJSON(t, router, http.MethodGet, "/v1/stats", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("stats: status %d", rr.Code)
	}
	stats := decode(t, rr)
	if stats["total_active"].(float64) != 1 {
		t.Fatalf("total_active = %v, want 1", stats["total_active"])
	}
	if stats["total_raised"].(float64) != 600_00 {
		t.Fatalf("total_raised = %v, want 60000 (funded campaigns stay counted)", stats["total_raised"])
	}
	if stats["total_donors"].(float64) != 1 {
		t.Fatalf("total_donors = %v, want 1", stats["total_donors"])
	}

	rr = doJSON(t, router, http.MethodGet, "/v1/campaigns/funded", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("funded archive: status %d", rr.Code)
	}
	items, _ := decode(t, rr)["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("archive items = %d, want 1", len(items))
	}
	entry := items[0].(map[string]any)
	campaign := entry["campaign"].(map[string]any)
	if campaign["id"] != first {
		t.Fatalf("archive campaign = %v, want %s", campaign["id"], first)
	}
	if campaign["raised_amount"].(float64) != 600_00 {
		t.Fatalf("archived raised_amount = %v, want uncapped 60000", campaign["raised_amount"])
	}
	_ = second
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	rr := doJSON(t, router, http.MethodGet, "/v1/healthz", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("healthz: status %d", rr.Code)
	}
}
