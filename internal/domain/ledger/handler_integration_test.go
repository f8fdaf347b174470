package ledger_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wasteworks/wasteworks-api/internal/domain/ledger"
	"github.com/wasteworks/wasteworks-api/internal/middleware"
	"github.com/wasteworks/wasteworks-api/internal/pkg/metrics"
	"github.com/wasteworks/wasteworks-api/internal/pkg/token"
)

type ledgerAPIResponse struct {
	Success bool `json:"success"`
	Data    struct {
		PointsAwarded  int `json:"points_awarded"`
		PointsRedeemed int `json:"points_redeemed"`
		NewBalance     int `json:"new_balance"`
	} `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func TestLedgerEndpointsIntegration(t *testing.T) {
	repo := ledger.NewMemoryRepository()
	accountID := uuid.New()
	repo.SeedAccount(accountID, 0)

	svc := ledger.NewService(repo, metrics.NewForTest())
	h := ledger.NewHandler(svc)

	tokens := token.NewService("ledger-integration-secret", time.Hour)
	collectorToken, err := tokens.Generate(uuid.New(), "collector")
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	r := chi.NewRouter()
	r.Mount("/api/v1/ledger", h.Routes(middleware.Auth(tokens)))

	t.Run("POST /award", func(t *testing.T) {
		resp := performLedgerRequest(t, r, collectorToken, http.MethodPost, "/api/v1/ledger/award", map[string]interface{}{
			"account_id":        accountID.String(),
			"quantity_kg":       100.0,
			"quality_grade":     "A",
			"segregation_score": 100,
			"reason":            "weekly pickup",
		})
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
		}
		body := decodeLedgerResponse(t, resp)
		if !body.Success || body.Data.PointsAwarded != 20 || body.Data.NewBalance != 20 {
			t.Fatalf("expected 20 points awarded, balance 20; got %+v", body.Data)
		}
	})

	t.Run("POST /redeem", func(t *testing.T) {
		resp := performLedgerRequest(t, r, collectorToken, http.MethodPost, "/api/v1/ledger/redeem", map[string]interface{}{
			"account_id":   accountID.String(),
			"points":       15,
			"reward_type":  "voucher",
			"reward_value": "150.00",
			"description":  "store voucher",
		})
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
		}
		body := decodeLedgerResponse(t, resp)
		if !body.Success || body.Data.NewBalance != 5 {
			t.Fatalf("expected balance 5, got %+v", body.Data)
		}
	})

	t.Run("POST /redeem insufficient points", func(t *testing.T) {
		resp := performLedgerRequest(t, r, collectorToken, http.MethodPost, "/api/v1/ledger/redeem", map[string]interface{}{
			"account_id":   accountID.String(),
			"points":       25,
			"reward_type":  "voucher",
			"reward_value": "250.00",
			"description":  "too expensive",
		})
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
		}
		body := decodeLedgerResponse(t, resp)
		if body.Error == nil || body.Error.Code != "INSUFFICIENT_POINTS" {
			t.Fatalf("expected INSUFFICIENT_POINTS error, got %+v", body.Error)
		}
		if body.Error.Details["available"] != "5" || body.Error.Details["requested"] != "25" {
			t.Fatalf("expected details available=5 requested=25, got %v", body.Error.Details)
		}
	})

	t.Run("POST /award invalid grade", func(t *testing.T) {
		resp := performLedgerRequest(t, r, collectorToken, http.MethodPost, "/api/v1/ledger/award", map[string]interface{}{
			"account_id":        accountID.String(),
			"quantity_kg":       10.0,
			"quality_grade":     "E",
			"segregation_score": 50,
		})
		if resp.Code != http.StatusUnprocessableEntity && resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 4xx for invalid grade, got %d: %s", resp.Code, resp.Body.String())
		}
	})

	t.Run("POST /award unknown account", func(t *testing.T) {
		resp := performLedgerRequest(t, r, collectorToken, http.MethodPost, "/api/v1/ledger/award", map[string]interface{}{
			"account_id":        uuid.New().String(),
			"quantity_kg":       10.0,
			"quality_grade":     "A",
			"segregation_score": 50,
		})
		if resp.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
		}
	})

	t.Run("JWT required", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/ledger/award", bytes.NewBufferString("{}"))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 without jwt, got %d", rec.Code)
		}
	})

	t.Run("staff role required", func(t *testing.T) {
		otherToken, err := tokens.Generate(uuid.New(), "citizen")
		if err != nil {
			t.Fatalf("generate token failed: %v", err)
		}
		resp := performLedgerRequest(t, r, otherToken, http.MethodPost, "/api/v1/ledger/award", map[string]interface{}{
			"account_id":        accountID.String(),
			"quantity_kg":       10.0,
			"quality_grade":     "A",
			"segregation_score": 50,
		})
		if resp.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for non-staff role, got %d", resp.Code)
		}
	})
}

func performLedgerRequest(t *testing.T, handler http.Handler, token, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload failed: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeLedgerResponse(t *testing.T, rec *httptest.ResponseRecorder) ledgerAPIResponse {
	t.Helper()
	var out ledgerAPIResponse
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response failed: %v; body=%s", err, rec.Body.String())
	}
	return out
}
