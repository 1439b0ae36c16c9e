package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tablero-app/tablero-client/internal/dto"
	"github.com/tablero-app/tablero-client/internal/errs"
	"github.com/tablero-app/tablero-client/internal/response"
)

type SessionService interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, email, password string) (string, error)
	Logout() error
	Active() bool
}

type sessionHandlers struct {
	ResponseHandler response.ResponseHandler
	SessionSvc      SessionService
}

func NewSessionHandlers(deps *Deps) *sessionHandlers {
	return &sessionHandlers{
		ResponseHandler: deps.ResponseHandler,
		SessionSvc:      deps.SessionSvc,
	}
}

func (h *sessionHandlers) SessionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	r.Post("/register", h.Register)
	r.Post("/logout", h.Logout)
	r.Get("/status", h.Status)
	return r
}

func (h *sessionHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	if err := h.SessionSvc.Login(r.Context(), req.Email, req.Password); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]bool{"active": true})
}

func (h *sessionHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	msg, err := h.SessionSvc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, map[string]string{"message": msg})
}

func (h *sessionHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionSvc.Logout(); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *sessionHandlers) Status(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]bool{
		"active": h.SessionSvc.Active(),
	})
}
