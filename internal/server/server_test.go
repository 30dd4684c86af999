package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/planio-app/planio/internal/auth"
	"github.com/planio-app/planio/internal/service"
	"github.com/planio-app/planio/internal/settlement"
	"github.com/planio-app/planio/internal/storage/sqlite"
)

// setupTestServer builds the full HTTP stack over a temp database.
func setupTestServer(t *testing.T) (*httptest.Server, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "planio-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-secret-key-at-least-32-chars!", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	srv := New(
		service.NewAuthService(authenticator, jwtManager, store, slog.Default()),
		service.NewWalletService(store),
		service.NewTransactionService(store),
		service.NewExpenseService(store, settlement.Options{}),
		service.NewHabitService(store),
		service.NewDebtService(store),
		service.NewPlannerService(store),
		jwtManager,
	)

	ts := httptest.NewServer(srv.Handler())
	cleanup := func() {
		ts.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}
	return ts, cleanup
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func register(t *testing.T, ts *httptest.Server) string {
	t.Helper()

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{
		"email":    "maya@example.com",
		"name":     "Maya",
		"password": "s3cure-pass",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}
	var body authResponse
	decodeBody(t, resp, &body)
	if body.Token == "" {
		t.Fatal("register: expected token")
	}
	return body.Token
}

func TestAuthFlow(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	token := register(t, ts)

	// Registration bootstraps the default wallets.
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/wallets", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list wallets: expected 200, got %d", resp.StatusCode)
	}
	var wallets walletListResponse
	decodeBody(t, resp, &wallets)
	if len(wallets.Wallets) != 4 {
		t.Errorf("expected 4 default wallets, got %d", len(wallets.Wallets))
	}

	// Duplicate email conflicts.
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{
		"email":    "maya@example.com",
		"name":     "Maya Again",
		"password": "s3cure-pass",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate register: expected 409, got %d", resp.StatusCode)
	}

	// Wrong password is unauthorized.
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
		"email":    "maya@example.com",
		"password": "wrong-password",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad login: expected 401, got %d", resp.StatusCode)
	}

	// Correct login returns a fresh token.
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
		"email":    "maya@example.com",
		"password": "s3cure-pass",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	var login authResponse
	decodeBody(t, resp, &login)
	if login.User.Email != "maya@example.com" {
		t.Errorf("login user email: got %s", login.User.Email)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	for _, path := range []string{"/api/wallets", "/api/habits", "/api/expenses/settlement"} {
		resp := doJSON(t, http.MethodGet, ts.URL+path, "", nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s without token: expected 401, got %d", path, resp.StatusCode)
		}
	}
}

func TestTransferEndpoint(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	token := register(t, ts)

	var wallets walletListResponse
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/wallets", token, nil)
	decodeBody(t, resp, &wallets)
	cash, bank := wallets.Wallets[0], wallets.Wallets[1]

	// Fund the cash wallet.
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/transactions", token, map[string]any{
		"title":     "Allowance",
		"type":      "income",
		"amount":    "100",
		"wallet_id": cash.ID,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("record income: expected 201, got %d", resp.StatusCode)
	}

	// Move part of it to the bank.
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/transactions/transfer", token, map[string]any{
		"title":          "To savings",
		"amount":         "30",
		"from_wallet_id": cash.ID,
		"to_wallet_id":   bank.ID,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("transfer: expected 201, got %d", resp.StatusCode)
	}

	// Same-wallet transfer is rejected before any balance change.
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/transactions/transfer", token, map[string]any{
		"title":          "Oops",
		"amount":         "10",
		"from_wallet_id": cash.ID,
		"to_wallet_id":   cash.ID,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("same-wallet transfer: expected 400, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/wallets", token, nil)
	decodeBody(t, resp, &wallets)
	if wallets.Total.String() != "100" {
		t.Errorf("total: expected 100, got %s", wallets.Total)
	}
	for _, w := range wallets.Wallets {
		switch w.ID {
		case cash.ID:
			if w.Balance.String() != "70" {
				t.Errorf("cash: expected 70, got %s", w.Balance)
			}
		case bank.ID:
			if w.Balance.String() != "30" {
				t.Errorf("bank: expected 30, got %s", w.Balance)
			}
		}
	}
}

func TestSettlementEndpoint(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	token := register(t, ts)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/expenses", token, map[string]any{
		"description": "Pizza night",
		"total":       "90",
		"payer_id":    "alice",
		"shares": []map[string]any{
			{"participant_id": "alice", "display_name": "Alice"},
			{"participant_id": "bob", "display_name": "Bob"},
			{"participant_id": "carol", "display_name": "Carol"},
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create expense: expected 201, got %d", resp.StatusCode)
	}
	var expense expenseResponse
	decodeBody(t, resp, &expense)
	if len(expense.Shares) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(expense.Shares))
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/expenses/settlement", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("settlement: expected 200, got %d", resp.StatusCode)
	}
	var plan settlementPlanResponse
	decodeBody(t, resp, &plan)
	if len(plan.Transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %d", len(plan.Transfers))
	}
	for _, tr := range plan.Transfers {
		if tr.ToName != "Alice" {
			t.Errorf("transfer destination: expected Alice, got %s", tr.ToName)
		}
		if tr.Amount.String() != "30" {
			t.Errorf("transfer amount: expected 30, got %s", tr.Amount)
		}
	}

	// Settle the expense; the plan empties.
	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/expenses/%s/settle", ts.URL, expense.ID), token, map[string]any{"settled": true})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("settle: expected 204, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/expenses/settlement", token, nil)
	decodeBody(t, resp, &plan)
	if len(plan.Transfers) != 0 {
		t.Errorf("after settling: expected 0 transfers, got %d", len(plan.Transfers))
	}
}

func TestHabitToggleEndpoint(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	token := register(t, ts)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/habits", token, map[string]string{
		"name":     "Morning run",
		"category": "health",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create habit: expected 201, got %d", resp.StatusCode)
	}
	var habit habitResponse
	decodeBody(t, resp, &habit)

	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/habits/%s/toggle", ts.URL, habit.ID), token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle: expected 200, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &habit)
	if !habit.DoneToday || habit.Streak != 1 {
		t.Errorf("after first toggle: done=%v streak=%d, want done=true streak=1", habit.DoneToday, habit.Streak)
	}

	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/habits/%s/toggle", ts.URL, habit.ID), token, nil)
	decodeBody(t, resp, &habit)
	if habit.DoneToday || habit.Streak != 0 {
		t.Errorf("after second toggle: done=%v streak=%d, want done=false streak=0", habit.DoneToday, habit.Streak)
	}
}

func TestDebtEndpoints(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	token := register(t, ts)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/debts", token, map[string]any{
		"direction":    "lent",
		"counterparty": "Bob",
		"principal":    "100",
		"loan_date":    time.Now().Unix(),
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create debt: expected 201, got %d", resp.StatusCode)
	}
	var debt debtResponse
	decodeBody(t, resp, &debt)
	if debt.Status != "pending" {
		t.Errorf("status: expected pending, got %s", debt.Status)
	}

	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/debts/%s/payments", ts.URL, debt.ID), token, map[string]any{"amount": "100"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("payment: expected 200, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &debt)
	if debt.Status != "paid" {
		t.Errorf("status after payment: expected paid, got %s", debt.Status)
	}
	if debt.Remaining.String() != "0" {
		t.Errorf("remaining: expected 0, got %s", debt.Remaining)
	}
}

func TestSemesterEndpoint(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	token := register(t, ts)

	// No config yet.
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/semester", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("empty semester: expected 404, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPut, ts.URL+"/api/semester", token, map[string]string{
		"name":       "Fall 2026",
		"start_date": "2026-08-24",
		"end_date":   "2026-12-18",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set semester: expected 200, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/semester", token, nil)
	var cfg semesterResponse
	decodeBody(t, resp, &cfg)
	if cfg.Name != "Fall 2026" {
		t.Errorf("name: expected Fall 2026, got %s", cfg.Name)
	}
}

func TestEventEndpoints(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	token := register(t, ts)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/events", token, map[string]any{
		"title":    "Career fair",
		"date":     1767225600,
		"location": "Main hall",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create event: expected 201, got %d", resp.StatusCode)
	}
	var ev eventResponse
	decodeBody(t, resp, &ev)

	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/events/%s", ts.URL, ev.ID), token, map[string]any{
		"title": "Career fair",
		"date":  1767312000,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update event: expected 200, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &ev)
	if ev.Date != 1767312000 {
		t.Errorf("date after update: expected 1767312000, got %d", ev.Date)
	}

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/semester/events", token, map[string]string{
		"title": "Spring break",
		"date":  "2026-03-09",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create semester event: expected 201, got %d", resp.StatusCode)
	}
	var sev semesterEventResponse
	decodeBody(t, resp, &sev)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/semester/events", token, nil)
	var sevs []semesterEventResponse
	decodeBody(t, resp, &sevs)
	if len(sevs) != 1 || sevs[0].Date != "2026-03-09" {
		t.Errorf("expected one semester event on 2026-03-09, got %+v", sevs)
	}

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/semester/events/%s", ts.URL, sev.ID), token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete semester event: expected 204, got %d", resp.StatusCode)
	}
}

func TestExpensePayerOutsideSharesEndpoint(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	token := register(t, ts)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/expenses", token, map[string]any{
		"description": "Concert tickets",
		"total":       "90",
		"payer_id":    "alice",
		"payer_name":  "Alice",
		"shares": []map[string]any{
			{"participant_id": "bob", "display_name": "Bob"},
			{"participant_id": "carol", "display_name": "Carol"},
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create expense: expected 201, got %d", resp.StatusCode)
	}
	var expense expenseResponse
	decodeBody(t, resp, &expense)
	if expense.PayerName != "Alice" {
		t.Errorf("payer name: expected Alice, got %s", expense.PayerName)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/expenses/settlement", token, nil)
	var plan settlementPlanResponse
	decodeBody(t, resp, &plan)
	if len(plan.Transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %d", len(plan.Transfers))
	}
	for _, tr := range plan.Transfers {
		if tr.ToName != "Alice" || tr.Amount.String() != "45" {
			t.Errorf("expected 45 to Alice, got %s to %s", tr.Amount, tr.ToName)
		}
	}
}
