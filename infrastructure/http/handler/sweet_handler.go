package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sweetshop/sweetshop/application/port/inbound"
	"github.com/sweetshop/sweetshop/application/port/outbound"
	"github.com/sweetshop/sweetshop/domain/entity"
	"github.com/sweetshop/sweetshop/infrastructure/http/middleware"
	"github.com/sweetshop/sweetshop/infrastructure/http/response"
)

const (
	defaultPurchaseQty = 1
	defaultRestockQty  = 10
)

type SweetHandler struct {
	sweetUseCase inbound.SweetUseCase
	auth         *middleware.AuthMiddleware
}

func NewSweetHandler(sweetUseCase inbound.SweetUseCase, auth *middleware.AuthMiddleware) *SweetHandler {
	return &SweetHandler{
		sweetUseCase: sweetUseCase,
		auth:         auth,
	}
}

func (h *SweetHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/sweets/search", h.auth.RequireAuth(h.Search)).Methods("GET")
	router.HandleFunc("/api/sweets", h.auth.RequireAuth(h.List)).Methods("GET")
	router.HandleFunc("/api/sweets", h.auth.RequireAdmin(h.Create)).Methods("POST")
	router.HandleFunc("/api/sweets/{id}", h.auth.RequireAdmin(h.Update)).Methods("PUT")
	router.HandleFunc("/api/sweets/{id}", h.auth.RequireAdmin(h.Delete)).Methods("DELETE")
	router.HandleFunc("/api/sweets/{id}/purchase", h.auth.RequireAuth(h.Purchase)).Methods("POST")
	router.HandleFunc("/api/sweets/{id}/restock", h.auth.RequireAdmin(h.Restock)).Methods("POST")
}

func (h *SweetHandler) List(w http.ResponseWriter, r *http.Request) {
	sweets, err := h.sweetUseCase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Internal server error")
		return
	}

	response.JSON(w, http.StatusOK, nonNil(sweets))
}

func (h *SweetHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSweetFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	sweets, err := h.sweetUseCase.Search(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Internal server error")
		return
	}

	response.JSON(w, http.StatusOK, nonNil(sweets))
}

func (h *SweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateSweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	sweet, err := h.sweetUseCase.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, inbound.ErrInvalidSweet) {
			response.UnprocessableEntity(w, "Name is required, price and quantity must not be negative")
			return
		}
		response.InternalServerError(w, "Internal server error")
		return
	}

	response.JSON(w, http.StatusCreated, sweet)
}

func (h *SweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch outbound.SweetPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	sweet, err := h.sweetUseCase.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, outbound.ErrSweetNotFound):
			response.NotFound(w, "Sweet not found")
		case errors.Is(err, inbound.ErrInvalidSweet):
			response.UnprocessableEntity(w, "Name must not be empty, price and quantity must not be negative")
		default:
			response.InternalServerError(w, "Internal server error")
		}
		return
	}

	response.JSON(w, http.StatusOK, sweet)
}

func (h *SweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.sweetUseCase.Delete(r.Context(), id); err != nil {
		if errors.Is(err, outbound.ErrSweetNotFound) {
			response.NotFound(w, "Sweet not found")
			return
		}
		response.InternalServerError(w, "Internal server error")
		return
	}

	response.NoContent(w)
}

type quantityRequest struct {
	Qty *int `json:"qty"`
}

func (h *SweetHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	qty, ok := decodeQty(w, r, defaultPurchaseQty)
	if !ok {
		return
	}

	sweet, err := h.sweetUseCase.Purchase(r.Context(), id, qty)
	if err != nil {
		switch {
		case errors.Is(err, outbound.ErrSweetNotFound):
			response.NotFound(w, "Sweet not found")
		case errors.Is(err, outbound.ErrInsufficientStock):
			response.BadRequest(w, "Not enough stock")
		case errors.Is(err, inbound.ErrInvalidQuantity):
			response.BadRequest(w, "Quantity must be a positive integer")
		default:
			response.InternalServerError(w, "Internal server error")
		}
		return
	}

	response.JSON(w, http.StatusOK, sweet)
}

func (h *SweetHandler) Restock(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	qty, ok := decodeQty(w, r, defaultRestockQty)
	if !ok {
		return
	}

	sweet, err := h.sweetUseCase.Restock(r.Context(), id, qty)
	if err != nil {
		switch {
		case errors.Is(err, outbound.ErrSweetNotFound):
			response.NotFound(w, "Sweet not found")
		case errors.Is(err, inbound.ErrInvalidQuantity):
			response.BadRequest(w, "Quantity must be a positive integer")
		default:
			response.InternalServerError(w, "Internal server error")
		}
		return
	}

	response.JSON(w, http.StatusOK, sweet)
}

// decodeQty reads an optional {"qty": n} body. An empty body or omitted
// field falls back to the endpoint default.
func decodeQty(w http.ResponseWriter, r *http.Request, defaultQty int) (int, bool) {
	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body")
		return 0, false
	}
	if req.Qty == nil {
		return defaultQty, true
	}
	return *req.Qty, true
}

func nonNil(sweets []*entity.Sweet) []*entity.Sweet {
	if sweets == nil {
		return []*entity.Sweet{}
	}
	return sweets
}
