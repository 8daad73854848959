package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clickbuy/shop-services/internal/shopsvc/models"
)

func TestListCardsFiltersInStock(t *testing.T) {
	cards := newFakeCardStore()
	cards.addCard("base1-4", "Charizard", 120.50, 3)
	cards.addCard("base1-58", "Pikachu", 9.99, 0)
	r := newTestRouter(cards, newFakeTxStore(cards), nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/cards?inStock=true", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Data []models.Card `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "base1-4" {
		t.Fatalf("expected only the in-stock card, got %+v", resp.Data)
	}
}

func TestListCardsEmptyCatalogReturnsArray(t *testing.T) {
	cards := newFakeCardStore()
	r := newTestRouter(cards, newFakeTxStore(cards), nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/cards", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Errorf("expected empty array data, got %s", w.Body.String())
	}
}

func TestGetCardReturnsAttacks(t *testing.T) {
	cards := newFakeCardStore()
	cards.addCard("base1-4", "Charizard", 120.50, 3)
	cards.attacks["base1-4"] = []models.Attack{
		{Name: "Fire Spin", Damage: "100"},
		{Name: "Slash", Damage: "30"},
	}
	r := newTestRouter(cards, newFakeTxStore(cards), nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/cards/base1-4", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Data models.Card `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data.Attacks) != 2 {
		t.Fatalf("expected 2 attacks, got %d", len(resp.Data.Attacks))
	}
	got := map[string]bool{}
	for _, a := range resp.Data.Attacks {
		got[a.Name] = true
	}
	if !got["Fire Spin"] || !got["Slash"] {
		t.Errorf("attack list does not match inserted attacks: %+v", resp.Data.Attacks)
	}
}

func TestGetCardNotFound(t *testing.T) {
	cards := newFakeCardStore()
	r := newTestRouter(cards, newFakeTxStore(cards), nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/cards/unknown-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestCheckStockReportsMissingIds(t *testing.T) {
	cards := newFakeCardStore()
	cards.addCard("base1-58", "Pikachu", 9.99, 2)
	r := newTestRouter(cards, newFakeTxStore(cards), nil)

	body := strings.NewReader(`{"cardIds":["base1-58","missing-123"]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/cards/check-stock", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Data []models.StockStatus `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected status for both ids, got %d", len(resp.Data))
	}
	if !resp.Data[0].Available || resp.Data[0].Stock != 2 {
		t.Errorf("expected Pikachu available with stock 2, got %+v", resp.Data[0])
	}
	if resp.Data[1].ID != "missing-123" || resp.Data[1].Available {
		t.Errorf("expected missing id reported unavailable, got %+v", resp.Data[1])
	}
}

func TestCheckStockRequiresIds(t *testing.T) {
	cards := newFakeCardStore()
	r := newTestRouter(cards, newFakeTxStore(cards), nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/cards/check-stock", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}
