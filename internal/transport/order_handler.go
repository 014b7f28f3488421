package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/address"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/cart"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/logger"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/order"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/payment"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	svc        order.Service
	cartSvc    cart.Service
	addressSvc address.Service
}

func NewOrderHandler(svc order.Service, cartSvc cart.Service, addressSvc address.Service) *OrderHandler {
	return &OrderHandler{svc: svc, cartSvc: cartSvc, addressSvc: addressSvc}
}

type createOrderRequest struct {
	Items []struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	} `json:"items"`
	Guest             *order.GuestInfo `json:"guest,omitempty"`
	ShippingAddress   *order.Address   `json:"shipping_address,omitempty"`
	ShippingAddressID *string          `json:"shipping_address_id,omitempty"`
	BillingAddress    *order.Address   `json:"billing_address,omitempty"`
	PaymentMethod     string           `json:"payment_method"`
	PaymentReference  *string          `json:"payment_reference,omitempty"`
	Notes             *string          `json:"notes,omitempty"`
}

type createOrderResponse struct {
	Order               *order.Order `json:"order"`
	PaymentInstructions []string     `json:"payment_instructions,omitempty"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	lines := make([]order.CartLineInput, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, order.CartLineInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	shipping, err := h.resolveShippingAddress(r, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	o, err := h.svc.CreateOrder(r.Context(), order.CreateOrderInput{
		Lines:            lines,
		Guest:            req.Guest,
		ShippingAddress:  shipping,
		BillingAddress:   req.BillingAddress,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		Notes:            req.Notes,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	// The submitted cart is consumed by a successful checkout. Failure to
	// clear is logged and swallowed; the order already exists.
	if _, ok := utils.GetUserIDFromContext(r.Context()); ok || r.Header.Get("X-Cart-Session") != "" {
		h.clearCart(w, r, o.ID)
	}

	respondJSON(w, createOrderResponse{
		Order:               o,
		PaymentInstructions: payment.Instructions(o.PaymentMethod, o.Total),
	}, http.StatusCreated)
}

func (h *OrderHandler) clearCart(w http.ResponseWriter, r *http.Request, orderID uint) {
	owner, err := cartOwner(w, r)
	if err != nil {
		return
	}
	if err := h.cartSvc.ClearCart(r.Context(), owner); err != nil {
		logger.FromCtx(r.Context()).Warn("failed to clear cart after checkout",
			zap.Uint("order_id", orderID),
			zap.Error(err),
		)
	}
}

// resolveShippingAddress takes either an inline address or a saved
// address-book id (registered users only).
func (h *OrderHandler) resolveShippingAddress(r *http.Request, req *createOrderRequest) (order.Address, error) {
	if req.ShippingAddressID != nil {
		id, err := uuid.Parse(*req.ShippingAddressID)
		if err != nil {
			return order.Address{}, address.ErrAddressNotFound
		}

		saved, err := h.addressSvc.Get(r.Context(), id)
		if err != nil {
			return order.Address{}, err
		}

		return order.Address{
			Name:       saved.Name,
			Phone:      saved.Phone,
			Line1:      saved.Line1,
			Line2:      saved.Line2,
			City:       saved.City,
			PostalCode: saved.PostalCode,
			Country:    saved.Country,
		}, nil
	}

	if req.ShippingAddress != nil {
		return *req.ShippingAddress, nil
	}
	return order.Address{}, nil
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter order.FilterInput
	if s := q.Get("search"); s != "" {
		filter.Search = &s
	}
	if s := q.Get("status"); s != "" {
		status := order.Status(s)
		filter.Status = &status
	}
	if s := q.Get("payment_status"); s != "" {
		ps := order.PaymentStatus(s)
		filter.PaymentStatus = &ps
	}
	if s := q.Get("from"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			filter.DateFrom = &t
		}
	}
	if s := q.Get("to"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			filter.DateTo = &t
		}
	}

	var sortInput *order.SortInput
	if f := q.Get("sort"); f != "" {
		sortInput = &order.SortInput{Field: order.SortField(f), Direction: order.SortDesc}
		if q.Get("dir") == "ASC" {
			sortInput.Direction = order.SortAsc
		}
	}

	limit, offset := paginationParams(r)
	page := offset/limit + 1

	orders, total, err := h.svc.GetOrders(r.Context(), &filter, sortInput, &limit, &page)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, map[string]any{
		"orders": orders,
		"total":  total,
	}, http.StatusOK)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	o, err := h.svc.GetOrderDetail(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, o, http.StatusOK)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req struct {
		Status order.Status `json:"status"`
		Reason *string      `json:"reason,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	o, err := h.svc.UpdateStatus(r.Context(), id, req.Status, req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, o, http.StatusOK)
}

func (h *OrderHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req struct {
		Outcome order.PaymentStatus `json:"outcome"`
		Note    *string             `json:"note,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	o, err := h.svc.VerifyPayment(r.Context(), id, req.Outcome, req.Note)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, o, http.StatusOK)
}

func (h *OrderHandler) UpdateItems(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req struct {
		Items []struct {
			ProductID uint    `json:"product_id"`
			Quantity  int     `json:"quantity"`
			UnitPrice float64 `json:"unit_price"`
		} `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	edits := make([]order.ItemEdit, 0, len(req.Items))
	for _, it := range req.Items {
		edits = append(edits, order.ItemEdit{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	o, err := h.svc.UpdateItems(r.Context(), id, edits)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, o, http.StatusOK)
}
