package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/apperror"
	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

// orderRequest mirrors services.OrderInput, but items may arrive either as
// the JSON text of the cart or as the cart array itself.
type orderRequest struct {
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Comment string          `json:"comment"`
	Items   json.RawMessage `json:"items"`
}

type OrderController struct {
	orders  *services.OrderService
	reports *services.ReportService
}

func NewOrderController(orders *services.OrderService, reports *services.ReportService) *OrderController {
	return &OrderController{orders: orders, reports: reports}
}

// Store handles POST /order.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := bind.JSON(w, r, &req); err != nil {
		response.Fail(w, err)
		return
	}

	items, err := itemsText(req.Items)
	if err != nil {
		response.Fail(w, err)
		return
	}

	placed, err := c.orders.PlaceOrder(r.Context(), services.OrderInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Comment: req.Comment,
		Items:   items,
	})
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"success":   true,
		"message":   placed.Message,
		"orderId":   placed.ID,
		"createdAt": placed.CreatedAt,
	})
}

// Index handles GET /orders.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Fail(w, apperror.NewValidation("The limit must be an integer."))
			return
		}
		limit = n
	}

	orders, err := c.reports.ListRecentOrders(r.Context(), limit)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"success": true,
		"orders":  orders,
		"count":   len(orders),
	})
}

// Count handles GET /orders/count.
func (c *OrderController) Count(w http.ResponseWriter, r *http.Request) {
	n, err := c.reports.CountOrders(r.Context())
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"success": true,
		"count":   n,
	})
}

// itemsText returns the cart as text. A JSON string is unwrapped, an array
// is kept as its compact JSON text, and null or absent means "".
func itemsText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", apperror.NewValidation("The items must be a JSON string or array.")
		}
		return s, nil
	case '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return "", apperror.NewValidation("The items must be a JSON string or array.")
		}
		return buf.String(), nil
	}
	return "", apperror.NewValidation("The items must be a JSON string or array.")
}
