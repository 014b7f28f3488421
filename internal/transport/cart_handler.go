package transport

import (
	"encoding/json"
	"net/http"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/cart"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/utils"
)

type CartHandler struct {
	svc cart.Service
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, err := cartOwner(w, r)
	if err != nil {
		respondError(w, err)
		return
	}

	items, err := h.svc.GetCart(r.Context(), owner, callerClass(r))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, map[string]any{"items": items}, http.StatusOK)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	owner, err := cartOwner(w, r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.svc.AddToCart(r.Context(), owner, req.ProductID, req.Quantity, callerClass(r))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, item, http.StatusCreated)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	owner, err := cartOwner(w, r)
	if err != nil {
		respondError(w, err)
		return
	}

	productID, err := idParam(r, "productID")
	if err != nil {
		utils.WriteJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateQuantity(r.Context(), owner, productID, req.Quantity, callerClass(r)); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	owner, err := cartOwner(w, r)
	if err != nil {
		respondError(w, err)
		return
	}

	productID, err := idParam(r, "productID")
	if err != nil {
		utils.WriteJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if err := h.svc.RemoveFromCart(r.Context(), owner, productID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	owner, err := cartOwner(w, r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.svc.ClearCart(r.Context(), owner); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
