package app

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/reqid"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"gorm.io/gorm"
)

// Handler builds the HTTP handler: global middleware, /metrics, every
// registered route and, last, the optional static file server.
func (a *Application) Handler(db *gorm.DB, limiter middleware.Limiter) http.Handler {
	return a.router(db, limiter).Handler()
}

func (a *Application) router(db *gorm.DB, limiter middleware.Limiter) *router.Router {
	r := router.New()

	// Global middleware stack, outermost first. Metrics wraps everything so
	// latency includes recovery; the request id must exist before the logger
	// runs; the timeout bounds every store call of the request.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(config.CORSOrigins())))
	if limiter != nil {
		r.Use(middleware.RateLimit(limiter))
	}
	r.Use(middleware.Timeout(config.RequestTimeout()))

	r.NotFound(response.NotFound)
	r.MethodNotAllowed(response.MethodNotAllowed)

	r.Get("/metrics", "metrics", metrics.Handler())

	for _, fn := range a.routesFns {
		fn(r, db)
	}

	if a.staticDir != "" {
		r.Static(a.staticDir)
	}

	return r
}
