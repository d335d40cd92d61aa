package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/techstore/storefront/internal/cart"
	"github.com/techstore/storefront/internal/events"
	"github.com/techstore/storefront/internal/notify"
)

func (s *Server) handleCartView(w http.ResponseWriter, r *http.Request) {
	c := s.cartFor(w, r)
	subtotal, shipping, total := c.Totals()
	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"items":    c.Items(),
		"subtotal": subtotal,
		"shipping": shipping,
		"total":    total,
	})
}

type cartAddRequest struct {
	ProductID int `json:"product_id"`
}

// handleCartAdd snapshots the product from the store API and merges it into
// the cart.
func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	var req cartAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == 0 {
		s.respondWithError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	product, err := s.api.Product(r.Context(), req.ProductID)
	if err != nil {
		s.respondWithAPIError(w, err, "Failed to fetch product")
		return
	}

	c := s.cartFor(w, r)
	c.Add(*product)
	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{"items": c.Items()})
}

type cartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req cartUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c := s.cartFor(w, r)
	c.SetQuantity(id, req.Quantity)
	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{"items": c.Items()})
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	c := s.cartFor(w, r)
	c.Remove(id)
	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{"items": c.Items()})
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	c := s.cartFor(w, r)

	receipt, err := s.checkout.Process(r.Context(), sess.Current(), c)
	if err != nil {
		var stockErr *cart.StockError
		switch {
		case errors.Is(err, cart.ErrNotAuthenticated):
			s.respondWithError(w, http.StatusUnauthorized, "You must be logged in to check out")
		case errors.Is(err, cart.ErrEmptyCart):
			s.respondWithError(w, http.StatusBadRequest, "Your cart is empty")
		case errors.As(err, &stockErr):
			s.respondWithError(w, http.StatusConflict, stockErr.Error())
		default:
			s.logger.WithError(err).Error("Checkout failed")
			s.respondWithError(w, http.StatusInternalServerError, "Failed to process your purchase. Please try again.")
		}
		return
	}

	s.hub.Broadcast(notify.KindCheckoutCompleted, receipt)
	if err := s.producer.PublishCheckoutCompleted(events.CheckoutCompletedEvent{
		OrderID:  receipt.OrderID,
		BillID:   receipt.BillID,
		ClientID: sess.Current().ID,
		Total:    receipt.Total,
		Lines:    receipt.Lines,
	}); err != nil {
		// Event publishing never fails a completed purchase.
		s.logger.WithError(err).Warn("Failed to publish checkout event")
	}

	s.respondWithJSON(w, http.StatusCreated, receipt)
}
