package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/pricing"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/product"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/stock"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/utils"
)

type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// productView is the storefront projection: stock status derived for
// display, and the unit price resolved for the caller's customer class at
// the class quantity floor.
type productView struct {
	product.Product
	StockStatus  stock.Status `json:"stock_status"`
	YourPrice    float64      `json:"your_price"`
	MinimumOrder int          `json:"minimum_order"`
}

func newProductView(p product.Product, class pricing.CustomerClass) productView {
	view := productView{
		Product:      p,
		StockStatus:  stock.StatusFor(p.StockQuantity, p.MinOrderQuantity),
		YourPrice:    p.Price,
		MinimumOrder: 1,
	}

	if quote, err := pricing.Resolve(&p, 1, class); err == nil {
		view.YourPrice = quote.UnitPrice
		view.MinimumOrder = quote.EffectiveQuantity
	}

	return view
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := product.ListOptions{
		Search:      q.Get("search"),
		InStockOnly: q.Get("in_stock") == "true",
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		opts.Limit = int32(v)
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		opts.Page = int32(v)
	}

	products, total, err := h.svc.GetList(r.Context(), opts)
	if err != nil {
		respondError(w, err)
		return
	}

	class := callerClass(r)
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p, class))
	}

	respondJSON(w, map[string]any{
		"products": views,
		"total":    total,
	}, http.StatusOK)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		utils.WriteJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.GetByID(r.Context(), id, true)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, newProductView(*p, callerClass(r)), http.StatusOK)
}

type productRequest struct {
	Name             string                  `json:"name"`
	Description      *string                 `json:"description,omitempty"`
	Price            float64                 `json:"price"`
	WholesalePrice   float64                 `json:"wholesale_price"`
	MinOrderQuantity int                     `json:"min_order_quantity"`
	StockQuantity    int                     `json:"stock_quantity"`
	IsActive         bool                    `json:"is_active"`
	BulkPricing      []product.BulkPriceTier `json:"bulk_pricing,omitempty"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Create(r.Context(), product.CreateProductInput{
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		WholesalePrice:   req.WholesalePrice,
		MinOrderQuantity: req.MinOrderQuantity,
		StockQuantity:    req.StockQuantity,
		IsActive:         req.IsActive,
		BulkPricing:      req.BulkPricing,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, p, http.StatusCreated)
}

type productUpdateRequest struct {
	Name             *string                 `json:"name,omitempty"`
	Description      *string                 `json:"description,omitempty"`
	Price            *float64                `json:"price,omitempty"`
	WholesalePrice   *float64                `json:"wholesale_price,omitempty"`
	MinOrderQuantity *int                    `json:"min_order_quantity,omitempty"`
	IsActive         *bool                   `json:"is_active,omitempty"`
	BulkPricing      []product.BulkPriceTier `json:"bulk_pricing,omitempty"`
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		utils.WriteJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var req productUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Update(r.Context(), id, product.UpdateProductInput{
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		WholesalePrice:   req.WholesalePrice,
		MinOrderQuantity: req.MinOrderQuantity,
		IsActive:         req.IsActive,
		BulkPricing:      req.BulkPricing,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, p, http.StatusOK)
}

func (h *ProductHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		utils.WriteJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var req struct {
		StockQuantity int `json:"stock_quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.svc.SetStock(r.Context(), id, req.StockQuantity); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, map[string]any{"product_id": id, "stock_quantity": req.StockQuantity}, http.StatusOK)
}

// LowStock is the admin report of products at or below their reorder point.
func (h *ProductHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.LowStockReport(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	type row struct {
		product.Product
		StockStatus  stock.Status `json:"stock_status"`
		ReorderPoint int          `json:"reorder_point"`
	}

	rows := make([]row, 0, len(products))
	for _, p := range products {
		rows = append(rows, row{
			Product:      p,
			StockStatus:  stock.StatusFor(p.StockQuantity, p.MinOrderQuantity),
			ReorderPoint: stock.ReorderPoint(p.MinOrderQuantity),
		})
	}

	respondJSON(w, map[string]any{"products": rows}, http.StatusOK)
}
