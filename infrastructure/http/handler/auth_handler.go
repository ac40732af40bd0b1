package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sweetshop/sweetshop/application/port/inbound"
	"github.com/sweetshop/sweetshop/infrastructure/http/middleware"
	"github.com/sweetshop/sweetshop/infrastructure/http/response"
	"github.com/sweetshop/sweetshop/infrastructure/http/validator"
)

type AuthHandler struct {
	authUseCase inbound.AuthUseCase
	rateLimit   *middleware.RateLimitMiddleware
}

func NewAuthHandler(authUseCase inbound.AuthUseCase, rateLimit *middleware.RateLimitMiddleware) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		rateLimit:   rateLimit,
	}
}

func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.Handle("/api/auth/register", h.rateLimit.RateLimit(http.HandlerFunc(h.Register))).Methods("POST")
	router.Handle("/api/auth/login", h.rateLimit.RateLimit(http.HandlerFunc(h.Login))).Methods("POST")
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req inbound.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if !validator.ValidateEmail(req.Email) {
		response.UnprocessableEntity(w, "Invalid email format")
		return
	}
	if !validator.ValidateRequired(req.Password) {
		response.UnprocessableEntity(w, "Password is required")
		return
	}

	res, err := h.authUseCase.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, inbound.ErrDuplicateAccount):
			response.Conflict(w, "Account already registered")
		case errors.Is(err, inbound.ErrInvalidRole):
			response.UnprocessableEntity(w, "Invalid role")
		default:
			response.InternalServerError(w, "Internal server error")
		}
		return
	}

	response.JSON(w, http.StatusCreated, res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req inbound.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if !validator.ValidateRequired(req.Email) || !validator.ValidateRequired(req.Password) {
		response.UnprocessableEntity(w, "Email and password are required")
		return
	}

	res, err := h.authUseCase.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, inbound.ErrInvalidCredentials) {
			// Same message for unknown email and wrong password.
			response.Unauthorized(w, "Invalid credentials")
			return
		}
		response.InternalServerError(w, "Internal server error")
		return
	}

	response.JSON(w, http.StatusOK, res)
}
