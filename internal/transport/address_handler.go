package transport

import (
	"encoding/json"
	"net/http"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/address"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AddressHandler struct {
	svc address.Service
}

func NewAddressHandler(svc address.Service) *AddressHandler {
	return &AddressHandler{svc: svc}
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.svc.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, addresses, http.StatusOK)
}

func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string  `json:"name"`
		Phone        string  `json:"phone"`
		Line1        string  `json:"line1"`
		Line2        *string `json:"line2,omitempty"`
		City         string  `json:"city"`
		PostalCode   string  `json:"postal_code"`
		Country      string  `json:"country"`
		SetAsDefault bool    `json:"set_as_default"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	a, err := h.svc.Create(r.Context(), address.CreateAddressInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Line1:        req.Line1,
		Line2:        req.Line2,
		City:         req.City,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		SetAsDefault: req.SetAsDefault,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, a, http.StatusCreated)
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid address id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AddressHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid address id", http.StatusBadRequest)
		return
	}

	if err := h.svc.SetDefaultAddress(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
