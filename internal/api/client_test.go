package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/techstore/storefront/pkg/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func TestSearchProductsQuerySerialization(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/filter" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode([]models.Product{{ID: 1, Name: "Pulse X2"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	products, err := client.SearchProducts(context.Background(), ProductFilter{
		Search:      "pulse",
		CategoryID:  2,
		MinPrice:    10.5,
		MaxPrice:    800,
		InStockOnly: true,
		SortBy:      SortPriceAsc,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Pulse X2" {
		t.Errorf("unexpected products: %+v", products)
	}

	want := map[string]string{
		"search":        "pulse",
		"category_id":   "2",
		"min_price":     "10.5",
		"max_price":     "800",
		"in_stock_only": "true",
		"sort_by":       "price_asc",
	}
	for key, value := range want {
		if got := gotQuery[key]; len(got) != 1 || got[0] != value {
			t.Errorf("query %s = %v, want %q", key, got, value)
		}
	}
}

func TestSearchProductsOmitsZeroValues(t *testing.T) {
	var gotRawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]models.Product{})
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	if _, err := client.SearchProducts(context.Background(), ProductFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotRawQuery != "" {
		t.Errorf("expected empty query for the zero filter, got %q", gotRawQuery)
	}
}

func TestErrorCarriesServerDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Bill not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	_, err := client.CreateOrder(context.Background(), models.OrderCreate{})

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", apiErr.StatusCode)
	}
	if apiErr.Detail != "Bill not found" {
		t.Errorf("detail = %q, want server-provided message", apiErr.Detail)
	}
}

func TestErrorFallsBackWhenBodyUnparseable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>oops</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	_, err := client.Products(context.Background())

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Detail != "Failed to fetch products" {
		t.Errorf("detail = %q, want generic fallback", apiErr.Detail)
	}
}

func TestLoginPostsCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/clients/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email != "ana@example.com" || creds.Password != "secret" {
			t.Errorf("unexpected credentials: %+v", creds)
		}
		json.NewEncoder(w).Encode(models.Client{ID: 7, Email: creds.Email, Name: "Ana"})
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	got, err := client.Login(context.Background(), "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 7 || got.Name != "Ana" {
		t.Errorf("unexpected client: %+v", got)
	}
}

func TestProfileFindsClientInList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Client{
			{ID: 1, Name: "Admin"},
			{ID: 7, Name: "Ana"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())

	got, err := client.Profile(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Ana" {
		t.Errorf("unexpected client: %+v", got)
	}

	if _, err := client.Profile(context.Background(), 99); err == nil {
		t.Error("expected an error for an unknown client id")
	}
}

func TestOrdersByClientFiltersLocally(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Order{
			{ID: 1, ClientID: 7},
			{ID: 2, ClientID: 8},
			{ID: 3, ClientID: 7},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	orders, err := client.OrdersByClient(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders for client 7, got %d", len(orders))
	}
	for _, o := range orders {
		if o.ClientID != 7 {
			t.Errorf("order %d belongs to client %d", o.ID, o.ClientID)
		}
	}
}
