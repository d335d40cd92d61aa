// Package web is the storefront's HTTP surface: catalog, cart, checkout,
// auth, profile and admin handlers. Handlers hold no state of their own —
// identity lives in the session cookie and carts in the per-session
// registry; everything else is a round trip to the store API.
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/techstore/storefront/internal/api"
	"github.com/techstore/storefront/internal/cart"
	"github.com/techstore/storefront/internal/events"
	"github.com/techstore/storefront/internal/notify"
	"github.com/techstore/storefront/internal/session"
)

// cartCookie keys the in-memory cart registry. Carts die with the process;
// only the identity cookie survives a restart.
const cartCookie = "techstore_session"

type Server struct {
	api      *api.Client
	checkout *cart.Checkout
	hub      *notify.Hub
	producer *events.Producer
	logger   *logrus.Logger

	mu    sync.Mutex
	carts map[string]*cart.Cart
}

func NewServer(apiClient *api.Client, hub *notify.Hub, producer *events.Producer, logger *logrus.Logger) *Server {
	return &Server{
		api:      apiClient,
		checkout: cart.NewCheckout(apiClient, logger),
		hub:      hub,
		producer: producer,
		logger:   logger,
		carts:    make(map[string]*cart.Cart),
	}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth).Methods("GET", "OPTIONS")
	router.HandleFunc("/ws", s.hub.HandleWebSocket)

	router.HandleFunc("/catalog", s.handleCatalog).Methods("GET", "OPTIONS")
	router.HandleFunc("/catalog/categories", s.handleCategories).Methods("GET", "OPTIONS")
	router.HandleFunc("/catalog/{id:[0-9]+}", s.handleProduct).Methods("GET", "OPTIONS")

	router.HandleFunc("/cart", s.handleCartView).Methods("GET", "OPTIONS")
	router.HandleFunc("/cart/items", s.handleCartAdd).Methods("POST", "OPTIONS")
	router.HandleFunc("/cart/items/{id:[0-9]+}", s.handleCartUpdate).Methods("PUT", "OPTIONS")
	router.HandleFunc("/cart/items/{id:[0-9]+}", s.handleCartRemove).Methods("DELETE", "OPTIONS")
	router.HandleFunc("/checkout", s.handleCheckout).Methods("POST", "OPTIONS")

	router.HandleFunc("/login", s.handleLogin).Methods("POST", "OPTIONS")
	router.HandleFunc("/logout", s.handleLogout).Methods("POST", "OPTIONS")
	router.HandleFunc("/register", s.handleRegister).Methods("POST", "OPTIONS")
	router.HandleFunc("/me", s.handleMe).Methods("GET", "OPTIONS")

	router.HandleFunc("/profile", s.handleProfile).Methods("GET", "OPTIONS")
	router.HandleFunc("/profile/addresses", s.handleAddressCreate).Methods("POST", "OPTIONS")
	router.HandleFunc("/profile/addresses/{id:[0-9]+}", s.handleAddressUpdate).Methods("PUT", "OPTIONS")
	router.HandleFunc("/profile/addresses/{id:[0-9]+}", s.handleAddressDelete).Methods("DELETE", "OPTIONS")
	router.HandleFunc("/reviews", s.handleReviewCreate).Methods("POST", "OPTIONS")
	router.HandleFunc("/reviews/{id:[0-9]+}", s.handleReviewUpdate).Methods("PUT", "OPTIONS")
	router.HandleFunc("/reviews/{id:[0-9]+}", s.handleReviewDelete).Methods("DELETE", "OPTIONS")

	admin := router.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/products", s.requireAdmin(s.handleAdminProductCreate)).Methods("POST", "OPTIONS")
	admin.HandleFunc("/products/{id:[0-9]+}", s.requireAdmin(s.handleAdminProductUpdate)).Methods("PUT", "OPTIONS")
	admin.HandleFunc("/products/{id:[0-9]+}", s.requireAdmin(s.handleAdminProductDelete)).Methods("DELETE", "OPTIONS")
	admin.HandleFunc("/categories", s.requireAdmin(s.handleAdminCategoryCreate)).Methods("POST", "OPTIONS")
	admin.HandleFunc("/categories/{id:[0-9]+}", s.requireAdmin(s.handleAdminCategoryUpdate)).Methods("PUT", "OPTIONS")
	admin.HandleFunc("/categories/{id:[0-9]+}", s.requireAdmin(s.handleAdminCategoryDelete)).Methods("DELETE", "OPTIONS")

	router.Use(corsMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(s.logger))

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "storefront",
	})
}

// sessionFor builds the per-request session manager backed by the identity
// cookie.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) *session.Manager {
	return session.NewManager(s.api, session.NewCookieStore(w, r), s.logger)
}

// cartFor returns the cart for the browser session, creating the session
// cookie and an empty cart on first contact.
func (s *Server) cartFor(w http.ResponseWriter, r *http.Request) *cart.Cart {
	var key string
	if cookie, err := r.Cookie(cartCookie); err == nil && cookie.Value != "" {
		key = cookie.Value
	} else {
		key = uuid.New().String()
		http.SetCookie(w, &http.Cookie{
			Name:     cartCookie,
			Value:    key,
			Path:     "/",
			HttpOnly: true,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[key]
	if !ok {
		c = cart.New()
		s.carts[key] = c
	}
	return c
}

func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessionFor(w, r)
		identity := sess.Current()
		if identity == nil {
			s.respondWithError(w, http.StatusUnauthorized, "Login required")
			return
		}
		if !identity.IsAdmin {
			s.respondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r)
	}
}

// confirmed gates destructive admin actions behind an explicit
// confirm=true query parameter, the API analog of the old browser confirm
// prompt.
func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// respondWithAPIError maps a store API failure onto the response, passing
// the server's detail and status through when there is one.
func (s *Server) respondWithAPIError(w http.ResponseWriter, err error, fallback string) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		s.respondWithError(w, apiErr.StatusCode, apiErr.Detail)
		return
	}
	s.respondWithError(w, http.StatusBadGateway, fallback)
}

func loggingMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			logger.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"remote":     r.RemoteAddr,
				"request_id": r.Header.Get("X-Request-ID"),
				"duration":   time.Since(start).Milliseconds(),
			}).Info("Request completed")
		})
	}
}

func requestIDMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Request-ID") == "" {
				r.Header.Set("X-Request-ID", uuid.New().String())
			}
			w.Header().Set("X-Request-ID", r.Header.Get("X-Request-ID"))
			next.ServeHTTP(w, r)
		})
	}
}

func corsMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
