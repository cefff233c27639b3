package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/globalpay/internal/config"
	"github.com/example/globalpay/internal/models"
	"github.com/example/globalpay/internal/routes"
	"github.com/example/globalpay/internal/storage"
	"github.com/example/globalpay/pkg/logger"
)

func newTestApp() *fiber.App {
	cfg := &config.Config{
		AppPort:      "8080",
		StoreDriver:  "memory",
		JWTSecret:    "test-secret",
		TokenExpires: time.Hour,
		SettleDelay:  0,
	}

	app := fiber.New()
	routes.Register(app, cfg, storage.NewMemory(), logger.NewNop())
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s %s response: %v", method, path, err)
		}
	}
	return resp
}

type intentResponse struct {
	Success bool                 `json:"success"`
	Data    models.PaymentIntent `json:"data"`
}

type transactionResponse struct {
	Success bool               `json:"success"`
	Data    models.Transaction `json:"data"`
}

type transactionListResponse struct {
	Success bool                 `json:"success"`
	Data    []models.Transaction `json:"data"`
}

func TestScanCreateConfirmFlow(t *testing.T) {
	app := newTestApp()

	var scanned intentResponse
	resp := doJSON(t, app, http.MethodPost, "/api/scan",
		fiber.Map{"qrData": "upi://pay?pa=shop@bank&pn=Shop&am=250"}, &scanned)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("scan status = %d", resp.StatusCode)
	}
	if scanned.Data.MerchantName != "Shop" || scanned.Data.Amount != 250 {
		t.Fatalf("scanned intent = %+v", scanned.Data)
	}

	var created transactionResponse
	resp = doJSON(t, app, http.MethodPost, "/api/transactions",
		fiber.Map{"paymentData": scanned.Data}, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	if created.Data.Status != models.StatusPending {
		t.Fatalf("created status = %q, want pending", created.Data.Status)
	}
	if created.Data.ToAccount != "shop@bank" {
		t.Fatalf("ToAccount = %q, want shop@bank", created.Data.ToAccount)
	}

	var confirmed transactionResponse
	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/transactions/%s/confirm", created.Data.ID), nil, &confirmed)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("confirm status = %d", resp.StatusCode)
	}
	if confirmed.Data.Status != models.StatusCompleted {
		t.Fatalf("confirmed status = %q, want completed", confirmed.Data.Status)
	}
	if confirmed.Data.CompletedAt == nil {
		t.Fatal("CompletedAt is nil after confirm")
	}

	var fetched transactionResponse
	resp = doJSON(t, app, http.MethodGet,
		"/api/transactions/"+created.Data.ID, nil, &fetched)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}
	if fetched.Data.Status != models.StatusCompleted {
		t.Fatalf("fetched status = %q, want completed", fetched.Data.Status)
	}

	// Settling twice is rejected.
	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/transactions/%s/confirm", created.Data.ID), nil, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second confirm status = %d, want 409", resp.StatusCode)
	}
}

func TestTransactionHistoryOrder(t *testing.T) {
	app := newTestApp()

	var ids []string
	for i := 0; i < 3; i++ {
		var created transactionResponse
		doJSON(t, app, http.MethodPost, "/api/transactions", fiber.Map{
			"paymentData": models.PaymentIntent{MerchantName: "Shop", Amount: float64(i), Currency: "INR"},
		}, &created)
		ids = append(ids, created.Data.ID)
	}

	var list transactionListResponse
	resp := doJSON(t, app, http.MethodGet, "/api/transactions", nil, &list)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	if len(list.Data) != 3 {
		t.Fatalf("list has %d records, want 3", len(list.Data))
	}
	for i := range list.Data {
		want := ids[len(ids)-1-i]
		if list.Data[i].ID != want {
			t.Errorf("list[%d].ID = %q, want %q", i, list.Data[i].ID, want)
		}
	}
}

func TestGetUnknownTransaction(t *testing.T) {
	app := newTestApp()

	resp := doJSON(t, app, http.MethodGet, "/api/transactions/missing", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestStatusAnnotationEndpoint(t *testing.T) {
	app := newTestApp()

	var created transactionResponse
	doJSON(t, app, http.MethodPost, "/api/transactions", fiber.Map{
		"paymentData": models.PaymentIntent{MerchantName: "Shop", Currency: "INR"},
	}, &created)

	var updated transactionResponse
	resp := doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/transactions/%s/status", created.Data.ID),
		fiber.Map{"status": "processing"}, &updated)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch status = %d", resp.StatusCode)
	}
	if updated.Data.Status != models.StatusProcessing {
		t.Fatalf("status = %q, want processing", updated.Data.Status)
	}

	// Terminal statuses belong to settlement.
	resp = doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/transactions/%s/status", created.Data.ID),
		fiber.Map{"status": "completed"}, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("terminal patch status = %d, want 409", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/transactions/%s/status", created.Data.ID),
		fiber.Map{"status": "nonsense"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid patch status = %d, want 400", resp.StatusCode)
	}
}

func TestUnrecognizedScanStillResolves(t *testing.T) {
	app := newTestApp()

	var scanned intentResponse
	resp := doJSON(t, app, http.MethodPost, "/api/scan", fiber.Map{"qrData": "hello world"}, &scanned)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("scan status = %d", resp.StatusCode)
	}
	if scanned.Data.MerchantName != "Demo Merchant" {
		t.Fatalf("placeholder merchant = %q", scanned.Data.MerchantName)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/scan", fiber.Map{"qrData": `{"amount": }`}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed structured scan status = %d, want 400", resp.StatusCode)
	}
}

func TestProfileRequiresSession(t *testing.T) {
	app := newTestApp()

	resp := doJSON(t, app, http.MethodGet, "/api/profile", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated profile status = %d, want 401", resp.StatusCode)
	}

	var session struct {
		Success bool `json:"success"`
		Data    struct {
			Token string             `json:"token"`
			User  models.UserProfile `json:"user"`
		} `json:"data"`
	}
	resp = doJSON(t, app, http.MethodPost, "/api/session", nil, &session)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("session status = %d", resp.StatusCode)
	}
	if session.Data.Token == "" {
		t.Fatal("session token is empty")
	}
	if session.Data.User.Balance != 10000 {
		t.Fatalf("profile balance = %v, want 10000", session.Data.User.Balance)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+session.Data.Token)
	authed, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("authenticated profile request failed: %v", err)
	}
	if authed.StatusCode != http.StatusOK {
		t.Fatalf("authenticated profile status = %d", authed.StatusCode)
	}

	var profile struct {
		Success bool               `json:"success"`
		Data    models.UserProfile `json:"data"`
	}
	if err := json.NewDecoder(authed.Body).Decode(&profile); err != nil {
		t.Fatalf("decoding profile: %v", err)
	}
	if profile.Data.ID != "user123" || profile.Data.UpiID != "user@globalpay" {
		t.Fatalf("profile = %+v", profile.Data)
	}
}
