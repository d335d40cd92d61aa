package web

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/techstore/storefront/internal/api"
)

// handleCatalog passes the filter state straight through to the store API's
// filter endpoint; no filtering or sorting happens here.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := api.ProductFilter{
		Search:      query.Get("search"),
		SortBy:      query.Get("sort_by"),
		InStockOnly: query.Get("in_stock_only") == "true",
	}
	if v := query.Get("category_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			filter.CategoryID = id
		}
	}
	if v := query.Get("min_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = price
		}
	}
	if v := query.Get("max_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = price
		}
	}

	products, err := s.api.SearchProducts(r.Context(), filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to search products")
		s.respondWithAPIError(w, err, "Failed to search products")
		return
	}

	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(products),
		"products": products,
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.api.Categories(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("Failed to fetch categories")
		s.respondWithAPIError(w, err, "Failed to fetch categories")
		return
	}
	s.respondWithJSON(w, http.StatusOK, categories)
}

// handleProduct returns one product together with its reviews.
func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	product, err := s.api.Product(r.Context(), id)
	if err != nil {
		s.respondWithAPIError(w, err, "Failed to fetch product")
		return
	}

	reviews, err := s.api.ReviewsByProduct(r.Context(), id)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", id).Warn("Failed to fetch reviews")
		reviews = nil
	}

	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"product": product,
		"reviews": reviews,
	})
}
