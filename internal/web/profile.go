package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/techstore/storefront/internal/session"
	"github.com/techstore/storefront/pkg/models"
)

func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) *session.Identity {
	identity := s.sessionFor(w, r).Current()
	if identity == nil {
		s.respondWithError(w, http.StatusUnauthorized, "Login required")
		return nil
	}
	return identity
}

// handleProfile aggregates everything the profile page shows: the client
// record, addresses, bills and orders with their line items. Each collection
// is one store API round trip.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	identity := s.requireUser(w, r)
	if identity == nil {
		return
	}
	ctx := r.Context()

	client, err := s.api.Profile(ctx, identity.ID)
	if err != nil {
		s.respondWithAPIError(w, err, "Failed to fetch profile")
		return
	}

	addresses, err := s.api.AddressesByClient(ctx, identity.ID)
	if err != nil {
		s.respondWithAPIError(w, err, "Failed to fetch addresses")
		return
	}

	bills, err := s.api.BillsByClient(ctx, identity.ID)
	if err != nil {
		s.respondWithAPIError(w, err, "Failed to fetch bills")
		return
	}

	orders, err := s.api.OrdersByClient(ctx, identity.ID)
	if err != nil {
		s.respondWithAPIError(w, err, "Failed to fetch orders")
		return
	}
	for i := range orders {
		details, err := s.api.OrderDetailsByOrder(ctx, orders[i].ID)
		if err != nil {
			s.respondWithAPIError(w, err, "Failed to fetch order details")
			return
		}
		orders[i].OrderDetails = details
	}

	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"client":    client,
		"addresses": addresses,
		"bills":     bills,
		"orders":    orders,
	})
}

type addressRequest struct {
	Street string `json:"street"`
	Number string `json:"number"`
	City   string `json:"city"`
}

func (req addressRequest) validate() string {
	var missing []string
	if strings.TrimSpace(req.Street) == "" {
		missing = append(missing, "street")
	}
	if strings.TrimSpace(req.Number) == "" {
		missing = append(missing, "number")
	}
	if strings.TrimSpace(req.City) == "" {
		missing = append(missing, "city")
	}
	if len(missing) > 0 {
		return "Missing required fields: " + strings.Join(missing, ", ")
	}
	return ""
}

func (s *Server) handleAddressCreate(w http.ResponseWriter, r *http.Request) {
	identity := s.requireUser(w, r)
	if identity == nil {
		return
	}

	var req addressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		s.respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	address, err := s.api.CreateAddress(r.Context(), models.AddressCreate{
		Street:   req.Street,
		Number:   req.Number,
		City:     req.City,
		ClientID: identity.ID,
	})
	if err != nil {
		s.respondWithAPIError(w, err, "Failed to create address")
		return
	}
	s.respondWithJSON(w, http.StatusCreated, address)
}

func (s *Server) handleAddressUpdate(w http.ResponseWriter, r *http.Request) {
	identity := s.requireUser(w, r)
	if identity == nil {
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req addressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		s.respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	address, err := s.api.UpdateAddress(r.Context(), id, models.AddressCreate{
		Street:   req.Street,
		Number:   req.Number,
		City:     req.City,
		ClientID: identity.ID,
	})
	if err != nil {
		s.respondWithAPIError(w, err, "Failed to update address")
		return
	}
	s.respondWithJSON(w, http.StatusOK, address)
}

func (s *Server) handleAddressDelete(w http.ResponseWriter, r *http.Request) {
	if s.requireUser(w, r) == nil {
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := s.api.DeleteAddress(r.Context(), id); err != nil {
		s.respondWithAPIError(w, err, "Failed to delete address")
		return
	}
	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

type reviewRequest struct {
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	ProductID int    `json:"product_id"`
}

func (req reviewRequest) validate() string {
	if req.Rating < 1 || req.Rating > 5 {
		return "Rating must be between 1 and 5"
	}
	return ""
}

func (s *Server) handleReviewCreate(w http.ResponseWriter, r *http.Request) {
	if s.requireUser(w, r) == nil {
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == 0 {
		s.respondWithError(w, http.StatusBadRequest, "product_id is required")
		return
	}
	if msg := req.validate(); msg != "" {
		s.respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	review, err := s.api.CreateReview(r.Context(), models.ReviewCreate{
		Rating:    req.Rating,
		Comment:   req.Comment,
		ProductID: req.ProductID,
	})
	if err != nil {
		s.respondWithAPIError(w, err, "Failed to create review")
		return
	}
	s.respondWithJSON(w, http.StatusCreated, review)
}

func (s *Server) handleReviewUpdate(w http.ResponseWriter, r *http.Request) {
	if s.requireUser(w, r) == nil {
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		s.respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	review, err := s.api.UpdateReview(r.Context(), id, models.ReviewCreate{
		Rating:    req.Rating,
		Comment:   req.Comment,
		ProductID: req.ProductID,
	})
	if err != nil {
		s.respondWithAPIError(w, err, "Failed to update review")
		return
	}
	s.respondWithJSON(w, http.StatusOK, review)
}

func (s *Server) handleReviewDelete(w http.ResponseWriter, r *http.Request) {
	if s.requireUser(w, r) == nil {
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := s.api.DeleteReview(r.Context(), id); err != nil {
		s.respondWithAPIError(w, err, "Failed to delete review")
		return
	}
	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
