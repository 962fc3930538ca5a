package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/api-sage/retail-bank-ledger/internal/adapter/http/controller"
	"github.com/api-sage/retail-bank-ledger/internal/adapter/http/middleware"
	"github.com/api-sage/retail-bank-ledger/internal/adapter/http/router"
	"github.com/api-sage/retail-bank-ledger/internal/auth"
	"github.com/api-sage/retail-bank-ledger/internal/ledger"
	"github.com/api-sage/retail-bank-ledger/internal/usecase/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	registry := ledger.NewRegistry(auth.BcryptVerifier{Cost: bcrypt.MinCost})
	engine := ledger.NewEngine(registry)

	mux := router.New(
		controller.NewCustomerController(services.NewCustomerService(registry)),
		controller.NewAccountController(services.NewAccountService(engine, nil)),
		controller.NewTransferController(services.NewTransferService(engine, nil)),
		middleware.BasicAuth("LedgerApp", "LedgerKey001"),
	)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, srv *httptest.Server, path string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, srv.URL+path, bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("LedgerApp", "LedgerKey001")

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, body
}

func TestAccountFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv, "/customers", map[string]any{
		"name":     "Alice",
		"email":    "a@x.com",
		"phone":    "111",
		"password": "pw",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%v)", resp.StatusCode, body)
	}
	customerID := body["data"].(map[string]any)["customerId"].(float64)

	resp, body = postJSON(t, srv, "/accounts", map[string]any{
		"customerId":     customerID,
		"accountType":    "savings",
		"initialBalance": "500",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("open account: expected 201, got %d (%v)", resp.StatusCode, body)
	}
	accountNumber := body["data"].(map[string]any)["accountNumber"].(float64)

	resp, body = postJSON(t, srv, "/accounts/deposit", map[string]any{
		"customerId":    customerID,
		"accountNumber": accountNumber,
		"amount":        "200",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("deposit: expected 200, got %d (%v)", resp.StatusCode, body)
	}
	if balance := body["data"].(map[string]any)["balance"]; balance != "700.00" {
		t.Fatalf("deposit: expected balance 700.00, got %v", balance)
	}

	// denied withdrawal maps to 409 and leaves balance unchanged
	resp, body = postJSON(t, srv, "/accounts/withdraw", map[string]any{
		"customerId":    customerID,
		"accountNumber": accountNumber,
		"amount":        "1000",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("withdraw: expected 409, got %d (%v)", resp.StatusCode, body)
	}

	balanceURL := fmt.Sprintf("%s/accounts/balance?customerId=%.0f&accountNumber=%.0f", srv.URL, customerID, accountNumber)
	req, _ := http.NewRequest(http.MethodGet, balanceURL, nil)
	req.SetBasicAuth("LedgerApp", "LedgerKey001")
	getResp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	defer getResp.Body.Close()
	var balanceBody map[string]any
	if err := json.NewDecoder(getResp.Body).Decode(&balanceBody); err != nil {
		t.Fatalf("decode balance: %v", err)
	}
	if balance := balanceBody["data"].(map[string]any)["balance"]; balance != "700.00" {
		t.Fatalf("balance: expected 700.00, got %v", balance)
	}
}

func TestHTTPRequiresChannelCredentials(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Post(srv.URL+"/customers", "application/json", bytes.NewReader([]byte("{}")))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without channel credentials, got %d", resp.StatusCode)
	}
}
