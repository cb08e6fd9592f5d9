package services

import (
	"context"
	"strings"
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/apperror"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

const (
	MsgOrderPlaced          = "Order placed."
	MsgOrderPlacedNoComment = "Order placed, but the comment could not be stored."
	msgOrderFailed          = "could not save order"
)

// OrderInput is a checkout submission. Items is the cart as JSON text and is
// never parsed.
type OrderInput struct {
	Name    string `json:"name"    validate:"required"`
	Phone   string `json:"phone"   validate:"required,min=5"`
	Comment string `json:"comment"`
	Items   string `json:"items"`
}

// PlacedOrder is returned by PlaceOrder.
type PlacedOrder struct {
	ID        uint
	CreatedAt time.Time
	Message   string
}

type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService(orders *repositories.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// PlaceOrder validates in and stores it as one row. Nothing is written when
// validation fails.
func (s *OrderService) PlaceOrder(ctx context.Context, in OrderInput) (PlacedOrder, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)

	if msg := validate.First(in); msg != "" {
		metrics.OrdersPlaced.WithLabelValues("invalid").Inc()
		return PlacedOrder{}, apperror.NewValidation(msg)
	}

	items := in.Items
	if strings.TrimSpace(items) == "" {
		items = models.EmptyItems
	}

	order := models.Order{
		Name:    in.Name,
		Phone:   in.Phone,
		Comment: in.Comment,
		Items:   items,
	}

	commentStored, err := s.orders.Insert(ctx, &order)
	if err != nil {
		metrics.OrdersPlaced.WithLabelValues("error").Inc()
		logger.WithCtx(ctx).Error("order insert failed", "error", err)
		return PlacedOrder{}, apperror.NewInternal(msgOrderFailed, err)
	}

	placed := PlacedOrder{ID: order.ID, CreatedAt: order.CreatedAt, Message: MsgOrderPlaced}
	if !commentStored {
		placed.Message = MsgOrderPlacedNoComment
		metrics.OrdersPlaced.WithLabelValues("ok_without_comment").Inc()
	} else {
		metrics.OrdersPlaced.WithLabelValues("ok").Inc()
	}

	logger.WithCtx(ctx).Info("order placed", "order_id", order.ID, "comment_stored", commentStored)
	return placed, nil
}
