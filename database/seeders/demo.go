package seeders

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
	"gorm.io/gorm"
)

const (
	DemoEmail    = "demo@storefront.local"
	DemoPassword = "demo12345"
)

func init() {
	Register("demo_account", seedDemoAccount)
	Register("demo_orders", seedDemoOrders)
}

func seedDemoAccount(ctx context.Context, db *gorm.DB) error {
	users := repositories.NewUserRepository(db)
	if _, err := users.FindByEmail(ctx, DemoEmail); !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	_, err := services.NewAccountService(users).Register(ctx, services.RegisterInput{
		Name:     "Demo Customer",
		Email:    DemoEmail,
		Password: DemoPassword,
	})
	return err
}

func seedDemoOrders(ctx context.Context, db *gorm.DB) error {
	orders := repositories.NewOrderRepository(db)
	n, err := orders.Count(ctx)
	if err != nil || n > 0 {
		return err
	}

	svc := services.NewOrderService(orders)
	for _, in := range []services.OrderInput{
		{Name: "Demo Customer", Phone: "+1 555 0100", Items: `[{"id":1,"name":"Ceramic mug","price":12}]`},
		{Name: "Demo Customer", Phone: "+1 555 0100", Comment: "Gift wrap, please"},
	} {
		if _, err := svc.PlaceOrder(ctx, in); err != nil {
			return err
		}
	}
	return nil
}
