package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func tagged(tag string) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Chain", tag)
			next.ServeHTTP(w, r)
		})
	}
}

func TestRoutesSortedAndNamed(t *testing.T) {
	r := router.New()
	r.Post("/order", "orders.place", ok)
	r.Get("/orders/count", "orders.count", ok)
	r.Get("/orders", "orders.list", ok)
	r.Get("/unnamed", "", ok)

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, router.RouteInfo{Method: "POST", Path: "/order", Name: "orders.place"}, routes[0])
	assert.Equal(t, "/orders", routes[1].Path)
	assert.Equal(t, "/orders/count", routes[2].Path)
}

func TestGroupPrefixAndMiddlewareOrder(t *testing.T) {
	r := router.New()
	g := r.Group("/debug", tagged("group"))
	g.Get("orders-structure", "debug.orders", ok, tagged("route"))

	path, found := r.Path("debug.orders")
	require.True(t, found)
	assert.Equal(t, "/debug/orders-structure", path)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/orders-structure", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"group", "route"}, rec.Header().Values("X-Chain"))
}

func TestURL(t *testing.T) {
	r := router.New()
	r.Get("/orders/{id}", "orders.show", ok)

	u, err := r.URL("orders.show", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/orders/7", u)

	_, err = r.URL("orders.show", nil)
	assert.Error(t, err)
	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}

func TestCustomNotFound(t *testing.T) {
	r := router.New()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusGone) })

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusGone, rec.Code)
}
