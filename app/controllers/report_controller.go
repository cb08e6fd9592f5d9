package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

type ReportController struct {
	reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

// OrdersStructure handles GET /debug/orders-structure.
func (c *ReportController) OrdersStructure(w http.ResponseWriter, r *http.Request) {
	columns, err := c.reports.DescribeOrdersSchema(r.Context())
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"success": true,
		"table":   "orders",
		"columns": columns,
	})
}

// Health handles GET /health.
func (c *ReportController) Health(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, c.reports.Health())
}
