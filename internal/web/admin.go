package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/techstore/storefront/internal/notify"
	"github.com/techstore/storefront/pkg/models"
)

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  int     `json:"category_id"`
	Brand       string  `json:"brand"`
	ImageURL    string  `json:"image_url"`
}

func (req productRequest) validate() string {
	var missing []string
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if req.Price <= 0 {
		missing = append(missing, "price")
	}
	if req.CategoryID == 0 {
		missing = append(missing, "category_id")
	}
	if len(missing) > 0 {
		return "Missing or invalid fields: " + strings.Join(missing, ", ")
	}
	return ""
}

func (req productRequest) toCreate() models.ProductCreate {
	return models.ProductCreate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		Brand:       req.Brand,
		ImageURL:    req.ImageURL,
	}
}

func (s *Server) handleAdminProductCreate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		s.respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	product, err := s.api.CreateProduct(r.Context(), req.toCreate())
	if err != nil {
		s.respondWithAPIError(w, err, "Failed to create product")
		return
	}
	s.hub.Broadcast(notify.KindCatalogChanged, map[string]interface{}{"action": "product_created", "product": product})
	s.respondWithJSON(w, http.StatusCreated, product)
}

func (s *Server) handleAdminProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		s.respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	product, err := s.api.UpdateProduct(r.Context(), id, req.toCreate())
	if err != nil {
		s.respondWithAPIError(w, err, "Failed to update product")
		return
	}
	s.hub.Broadcast(notify.KindCatalogChanged, map[string]interface{}{"action": "product_updated", "product": product})
	s.respondWithJSON(w, http.StatusOK, product)
}

func (s *Server) handleAdminProductDelete(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		s.respondWithError(w, http.StatusBadRequest, "Deleting a product requires confirm=true")
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := s.api.DeleteProduct(r.Context(), id); err != nil {
		s.respondWithAPIError(w, err, "Failed to delete product")
		return
	}
	s.hub.Broadcast(notify.KindCatalogChanged, map[string]interface{}{"action": "product_deleted", "product_id": id})
	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleAdminCategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		s.respondWithError(w, http.StatusBadRequest, "name is required")
		return
	}

	category, err := s.api.CreateCategory(r.Context(), models.CategoryCreate{Name: req.Name})
	if err != nil {
		s.respondWithAPIError(w, err, "Failed to create category")
		return
	}
	s.respondWithJSON(w, http.StatusCreated, category)
}

func (s *Server) handleAdminCategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		s.respondWithError(w, http.StatusBadRequest, "name is required")
		return
	}

	category, err := s.api.UpdateCategory(r.Context(), id, models.CategoryCreate{Name: req.Name})
	if err != nil {
		s.respondWithAPIError(w, err, "Failed to update category")
		return
	}
	s.respondWithJSON(w, http.StatusOK, category)
}

func (s *Server) handleAdminCategoryDelete(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		s.respondWithError(w, http.StatusBadRequest, "Deleting a category requires confirm=true")
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := s.api.DeleteCategory(r.Context(), id); err != nil {
		s.respondWithAPIError(w, err, "Failed to delete category")
		return
	}
	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
