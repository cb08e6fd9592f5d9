package routes

import (
	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"gorm.io/gorm"
)

// RegisterAPI mounts the storefront endpoints on r, all backed by db.
func RegisterAPI(r *router.Router, db *gorm.DB) {
	users := repositories.NewUserRepository(db)
	orders := repositories.NewOrderRepository(db)

	reports := services.NewReportService(orders, config.AppName())

	authController := controllers.NewAuthController(services.NewAccountService(users))
	orderController := controllers.NewOrderController(services.NewOrderService(orders), reports)
	reportController := controllers.NewReportController(reports)

	r.Post("/register", "auth.register", authController.Register)
	r.Post("/login", "auth.login", authController.Login)

	r.Post("/order", "orders.store", orderController.Store)
	r.Get("/orders", "orders.index", orderController.Index)
	r.Get("/orders/count", "orders.count", orderController.Count)

	r.Get("/debug/orders-structure", "debug.orders_structure", reportController.OrdersStructure)
	r.Get("/health", "health", reportController.Health)
}
