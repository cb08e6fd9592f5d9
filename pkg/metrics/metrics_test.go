package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Get("/orders/count", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "/orders/count", "418"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/count", nil))
	after := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "/orders/count", "418"))

	assert.Equal(t, before+1, after)
}

func TestHandlerExposesStoreMetrics(t *testing.T) {
	metrics.ObserveDBQuery("orders.count", time.Now())
	metrics.OrdersPlaced.WithLabelValues("ok").Inc()

	rec := httptest.NewRecorder()
	metrics.Handler()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_db_query_duration_seconds")
	assert.Contains(t, rec.Body.String(), "storefront_orders_placed_total")
}
