// Package app assembles the storefront process: it opens the store, builds
// the HTTP handler and hands it to internal/server.
//
//	app.New().
//	    Routes(routes.RegisterAPI).
//	    Static(config.StaticDir()).
//	    Serve(ctx)
//
// The cobra commands in cmd/storefront are thin wrappers over the methods
// here.
package app

import (
	"github.com/shashiranjanraj/storefront/pkg/router"
	"gorm.io/gorm"
)

// RouteFunc mounts routes backed by db. db is nil when routes are only
// being listed.
type RouteFunc func(r *router.Router, db *gorm.DB)

// Application is the central configuration object. Build one with New(),
// attach routes, then call Serve or one of the maintenance commands.
type Application struct {
	routesFns []RouteFunc
	staticDir string
}

func New() *Application {
	return &Application{}
}

// Routes registers a route-registration callback. Callbacks run in order.
func (a *Application) Routes(fn RouteFunc) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// Static serves dir at / for paths no route claims. An empty dir disables it.
func (a *Application) Static(dir string) *Application {
	a.staticDir = dir
	return a
}
