package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/techstore/storefront/pkg/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req loginRequest) validate() string {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return "Email and password are required"
	}
	return ""
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		s.respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	sess := s.sessionFor(w, r)
	identity := sess.Login(r.Context(), req.Email, req.Password)
	if identity == nil {
		s.respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	s.respondWithJSON(w, http.StatusOK, identity)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Logout()
	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

type registerRequest struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req registerRequest) validate() string {
	var missing []string
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(req.Lastname) == "" {
		missing = append(missing, "lastname")
	}
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return "Missing required fields: " + strings.Join(missing, ", ")
	}
	return ""
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		s.respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	client, err := s.api.CreateClient(r.Context(), models.ClientCreate{
		Name:     req.Name,
		Lastname: req.Lastname,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to register client")
		s.respondWithAPIError(w, err, "Failed to register")
		return
	}
	s.respondWithJSON(w, http.StatusCreated, client)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	identity := sess.Current()
	if identity == nil {
		s.respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	s.respondWithJSON(w, http.StatusOK, identity)
}
