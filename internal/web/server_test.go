package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techstore/storefront/internal/api"
	"github.com/techstore/storefront/internal/notify"
	"github.com/techstore/storefront/pkg/models"
)

// fakeBackend is a minimal remote store API: a seeded catalog, one known
// user, and counters for the write endpoints the checkout hits.
type fakeBackend struct {
	mu       sync.Mutex
	products []models.Product
	bills    int
	orders   int
	details  int
}

func (b *fakeBackend) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		// also serves /products/id/{id}
		if rest, ok := strings.CutPrefix(r.URL.Path, "/products/id/"); ok {
			id, _ := strconv.Atoi(rest)
			for _, p := range b.products {
				if p.ID == id {
					json.NewEncoder(w).Encode(p)
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Product not found"})
			return
		}
		json.NewEncoder(w).Encode(b.products)
	})

	mux.HandleFunc("/api/v1/clients/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&creds)
		switch creds.Email {
		case "ana@example.com":
			json.NewEncoder(w).Encode(models.Client{ID: 7, Email: creds.Email, Name: "Ana"})
		case "admin@techstore.com":
			// deliberately not flagged admin server-side
			json.NewEncoder(w).Encode(models.Client{ID: 1, Email: creds.Email, Name: "Admin"})
		default:
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
		}
	})

	mux.HandleFunc("/bills/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.bills++
		b.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Bill{ID: 101})
	})
	mux.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.orders++
		b.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Order{ID: 202})
	})
	mux.HandleFunc("/order_details/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.details++
		b.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.OrderDetail{ID: 303})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func (b *fakeBackend) writeCounts() (bills, orders, details int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bills, b.orders, b.details
}

// newTestClient spins up the storefront over the fake backend and returns an
// HTTP client with a cookie jar, so identity and cart cookies persist across
// calls like they would in a browser.
func newTestClient(t *testing.T, backend *fakeBackend) (*http.Client, string) {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	hub := notify.NewHub(logger)
	go hub.Run()

	apiClient := api.NewClient(backend.server(t).URL, logger)
	server := NewServer(apiClient, hub, nil, logger)

	front := httptest.NewServer(server.Router())
	t.Cleanup(front.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}, front.URL
}

func postJSON(t *testing.T, client *http.Client, url string, payload interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func seededBackend() *fakeBackend {
	return &fakeBackend{products: []models.Product{
		{ID: 1, Name: "Keyboard", Price: 20, Stock: 5},
		{ID: 2, Name: "Mouse", Price: 15, Stock: 5},
	}}
}

func login(t *testing.T, client *http.Client, base, email string) {
	t.Helper()
	resp := postJSON(t, client, base+"/login", map[string]string{"email": email, "password": "pw"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestCartFlowAcrossRequests(t *testing.T) {
	client, base := newTestClient(t, seededBackend())

	// add the same product twice, expect one merged line
	for i := 0; i < 2; i++ {
		resp := postJSON(t, client, base+"/cart/items", map[string]int{"product_id": 1})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp, err := client.Get(base + "/cart")
	require.NoError(t, err)
	var view struct {
		Items []struct {
			ID       int `json:"id_key"`
			Quantity int `json:"quantity"`
		} `json:"items"`
		Subtotal float64 `json:"subtotal"`
	}
	decodeBody(t, resp, &view)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 40.0, view.Subtotal)
}

func TestCheckoutEmptyCart(t *testing.T) {
	backend := seededBackend()
	client, base := newTestClient(t, backend)
	login(t, client, base, "ana@example.com")

	resp := postJSON(t, client, base+"/checkout", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	bills, orders, details := backend.writeCounts()
	assert.Zero(t, bills+orders+details, "empty-cart checkout must not hit the store API")
}

func TestCheckoutRequiresLogin(t *testing.T) {
	backend := seededBackend()
	client, base := newTestClient(t, backend)

	resp := postJSON(t, client, base+"/cart/items", map[string]int{"product_id": 1})
	resp.Body.Close()

	resp = postJSON(t, client, base+"/checkout", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	bills, orders, details := backend.writeCounts()
	assert.Zero(t, bills+orders+details)
}

func TestCheckoutHappyPath(t *testing.T) {
	backend := seededBackend()
	client, base := newTestClient(t, backend)
	login(t, client, base, "ana@example.com")

	for _, id := range []int{1, 1, 2} {
		resp := postJSON(t, client, base+"/cart/items", map[string]int{"product_id": id})
		resp.Body.Close()
	}

	resp := postJSON(t, client, base+"/checkout", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var receipt struct {
		OrderID  int     `json:"order_id"`
		Subtotal float64 `json:"subtotal"`
		Shipping float64 `json:"shipping"`
		Total    float64 `json:"total"`
	}
	decodeBody(t, resp, &receipt)
	assert.Equal(t, 202, receipt.OrderID)
	assert.Equal(t, 55.0, receipt.Subtotal)
	assert.Equal(t, 10.0, receipt.Shipping)
	assert.Equal(t, 65.0, receipt.Total)

	bills, orders, details := backend.writeCounts()
	assert.Equal(t, 1, bills)
	assert.Equal(t, 1, orders)
	assert.Equal(t, 2, details)

	// the cart is gone afterwards
	cartResp, err := client.Get(base + "/cart")
	require.NoError(t, err)
	var view struct {
		Items []json.RawMessage `json:"items"`
	}
	decodeBody(t, cartResp, &view)
	assert.Empty(t, view.Items)
}

func TestCheckoutStockConflict(t *testing.T) {
	backend := seededBackend()
	client, base := newTestClient(t, backend)
	login(t, client, base, "ana@example.com")

	resp := postJSON(t, client, base+"/cart/items", map[string]int{"product_id": 1})
	resp.Body.Close()

	// push the line past the backend's stock of 5
	req, err := http.NewRequest(http.MethodPut, base+"/cart/items/1", bytes.NewReader([]byte(`{"quantity":9}`)))
	require.NoError(t, err)
	putResp, err := client.Do(req)
	require.NoError(t, err)
	putResp.Body.Close()

	resp = postJSON(t, client, base+"/checkout", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &body)
	assert.Contains(t, body.Message, "Keyboard")

	bills, orders, details := backend.writeCounts()
	assert.Zero(t, bills+orders+details, "stock violations must abort before any write")
}

func TestAdminGating(t *testing.T) {
	client, base := newTestClient(t, seededBackend())

	// anonymous
	resp := postJSON(t, client, base+"/admin/categories", map[string]string{"name": "Wearables"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// regular user
	login(t, client, base, "ana@example.com")
	resp = postJSON(t, client, base+"/admin/categories", map[string]string{"name": "Wearables"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminEmailBypassGrantsAccess(t *testing.T) {
	client, base := newTestClient(t, seededBackend())

	// the backend returns is_admin=false for this account; the bypass makes
	// it an admin anyway
	login(t, client, base, "admin@techstore.com")

	resp, err := client.Get(base + "/me")
	require.NoError(t, err)
	var identity struct {
		IsAdmin bool `json:"isAdmin"`
	}
	decodeBody(t, resp, &identity)
	assert.True(t, identity.IsAdmin)

	// destructive delete still demands the confirmation parameter
	req, err := http.NewRequest(http.MethodDelete, base+"/admin/products/1", nil)
	require.NoError(t, err)
	delResp, err := client.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, delResp.StatusCode)
}

func TestLogoutClearsIdentity(t *testing.T) {
	client, base := newTestClient(t, seededBackend())
	login(t, client, base, "ana@example.com")

	resp := postJSON(t, client, base+"/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	meResp, err := client.Get(base + "/me")
	require.NoError(t, err)
	defer meResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, meResp.StatusCode)
}
