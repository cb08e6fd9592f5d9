package services

import (
	"context"
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/database/migrations"
	"github.com/shashiranjanraj/storefront/pkg/apperror"
)

const (
	DefaultOrderLimit = 50
	MaxOrderLimit     = 500
)

// HealthReport is the body of GET /health.
type HealthReport struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Tables    []string  `json:"tables"`
}

// ReportService answers read-only and diagnostic queries.
type ReportService struct {
	orders  *repositories.OrderRepository
	service string
	now     func() time.Time
}

func NewReportService(orders *repositories.OrderRepository, serviceName string) *ReportService {
	return &ReportService{orders: orders, service: serviceName, now: time.Now}
}

// ClampLimit maps a requested page size onto 1..MaxOrderLimit; zero or
// negative means DefaultOrderLimit.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultOrderLimit
	case limit > MaxOrderLimit:
		return MaxOrderLimit
	}
	return limit
}

func (s *ReportService) ListRecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	orders, err := s.orders.ListRecent(ctx, ClampLimit(limit))
	if err != nil {
		return nil, apperror.NewInternal("could not list orders", err)
	}
	return orders, nil
}

func (s *ReportService) CountOrders(ctx context.Context) (int64, error) {
	n, err := s.orders.Count(ctx)
	if err != nil {
		return 0, apperror.NewInternal("could not count orders", err)
	}
	return n, nil
}

// DescribeOrdersSchema returns the live columns of orders.
func (s *ReportService) DescribeOrdersSchema(ctx context.Context) ([]models.Column, error) {
	columns, err := s.orders.Columns(ctx)
	if err != nil {
		return nil, apperror.NewInternal("could not read orders structure", err)
	}
	return columns, nil
}

// Health never touches the store.
func (s *ReportService) Health() HealthReport {
	return HealthReport{
		Status:    "OK",
		Timestamp: s.now().UTC(),
		Service:   s.service,
		Tables:    append([]string(nil), migrations.Tables...),
	}
}
