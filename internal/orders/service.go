package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/AhmedKettaf/inilapstore/pkg/enums"
	pkgerrors "github.com/AhmedKettaf/inilapstore/pkg/errors"
	"github.com/AhmedKettaf/inilapstore/pkg/pagination"
)

// Service exposes order management for the admin console.
type Service interface {
	List(ctx context.Context, statusFilter string, params pagination.Params) (*PageDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, next string) (*OrderDTO, error)
	Stats(ctx context.Context) (*StatsDTO, error)
}

type service struct {
	repo *Repository
}

// NewService constructs an order service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, statusFilter string, params pagination.Params) (*PageDTO, error) {
	var status *enums.OrderStatus
	if strings.TrimSpace(statusFilter) != "" {
		parsed, err := enums.ParseOrderStatus(statusFilter)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
				WithDetails(map[string]any{"status": statusFilter})
		}
		status = &parsed
	}

	rows, next, hasMore, err := s.repo.List(ctx, status, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	page := &PageDTO{
		Orders:     make([]OrderDTO, 0, len(rows)),
		NextCursor: next,
		HasMore:    hasMore,
	}
	for i := range rows {
		page.Orders = append(page.Orders, NewOrderDTO(&rows[i]))
	}
	return page, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	dto := NewOrderDTO(order)
	return &dto, nil
}

// UpdateStatus moves an order along its lifecycle. Illegal jumps and writes
// to terminal orders are rejected.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, next string) (*OrderDTO, error) {
	target, err := enums.ParseOrderStatus(next)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"status": next})
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "illegal order status transition").
			WithDetails(map[string]any{
				"from": current.Status.String(),
				"to":   target.String(),
			})
	}

	updated, err := s.repo.UpdateStatus(ctx, id, target)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	dto := NewOrderDTO(updated)
	return &dto, nil
}

func (s *service) Stats(ctx context.Context) (*StatsDTO, error) {
	var errs error
	pending, err := s.repo.CountByStatus(ctx, enums.OrderStatusPending)
	errs = multierr.Append(errs, err)
	delivered, err := s.repo.CountByStatus(ctx, enums.OrderStatusDelivered)
	errs = multierr.Append(errs, err)
	revenue, err := s.repo.DeliveredRevenue(ctx)
	errs = multierr.Append(errs, err)
	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "aggregate order stats")
	}
	return &StatsDTO{
		PendingCount:   pending,
		DeliveredCount: delivered,
		TotalRevenue:   revenue,
	}, nil
}
