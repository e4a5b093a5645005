package orders

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AhmedKettaf/inilapstore/pkg/db/models"
	"github.com/AhmedKettaf/inilapstore/pkg/enums"
	pkgerrors "github.com/AhmedKettaf/inilapstore/pkg/errors"
	"github.com/AhmedKettaf/inilapstore/pkg/pagination"
	"github.com/AhmedKettaf/inilapstore/pkg/types"
)

func newOrderFixture(t *testing.T) (Service, *Repository) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Order{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := NewRepository(conn)
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func seedOrder(t *testing.T, repo *Repository, status enums.OrderStatus, total int64, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:          uuid.New(),
		FullName:    "Amine Boudiaf",
		PhoneNumber: "0550123456",
		Wilaya:      "Algiers",
		Items: types.OrderItems{{
			ItemID:     1,
			Collection: enums.CollectionProducts,
			Name:       "Lenovo IdeaPad 3",
			UnitPrice:  decimal.NewFromInt(total),
			Quantity:   1,
			LineTotal:  decimal.NewFromInt(total),
		}},
		TotalPrice: decimal.NewFromInt(total),
		Status:     status,
		CreatedAt:  createdAt,
	}
	created, err := repo.Create(context.Background(), order)
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return created
}

func TestListPaginatesNewestFirst(t *testing.T) {
	svc, repo := newOrderFixture(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedOrder(t, repo, enums.OrderStatusPending, int64(1000*(i+1)), base.Add(time.Duration(i)*time.Hour))
	}

	page, err := svc.List(ctx, "", pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Orders) != 2 || !page.HasMore {
		t.Fatalf("unexpected first page: %d orders, hasMore=%v", len(page.Orders), page.HasMore)
	}
	if !page.Orders[0].CreatedAt.After(page.Orders[1].CreatedAt) {
		t.Fatalf("orders should be newest first: %v then %v", page.Orders[0].CreatedAt, page.Orders[1].CreatedAt)
	}

	seen := map[uuid.UUID]bool{page.Orders[0].ID: true, page.Orders[1].ID: true}
	cursor := page.NextCursor
	total := 2
	for cursor != "" {
		page, err = svc.List(ctx, "", pagination.Params{Limit: 2, Cursor: cursor})
		if err != nil {
			t.Fatalf("list page: %v", err)
		}
		for _, order := range page.Orders {
			if seen[order.ID] {
				t.Fatalf("order %s returned twice", order.ID)
			}
			seen[order.ID] = true
			total++
		}
		cursor = page.NextCursor
	}
	if total != 5 {
		t.Fatalf("expected 5 orders across pages, got %d", total)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	svc, repo := newOrderFixture(t)
	ctx := context.Background()

	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	seedOrder(t, repo, enums.OrderStatusPending, 1000, now)
	seedOrder(t, repo, enums.OrderStatusDelivered, 2000, now.Add(time.Hour))

	page, err := svc.List(ctx, "delivered", pagination.Params{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Orders) != 1 || page.Orders[0].Status != enums.OrderStatusDelivered {
		t.Fatalf("unexpected filtered page %+v", page.Orders)
	}

	// legacy label maps to pending
	page, err = svc.List(ctx, "New", pagination.Params{})
	if err != nil {
		t.Fatalf("list legacy: %v", err)
	}
	if len(page.Orders) != 1 || page.Orders[0].Status != enums.OrderStatusPending {
		t.Fatalf("legacy filter should map to pending, got %+v", page.Orders)
	}

	_, err = svc.List(ctx, "shipped", pagination.Params{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusEnforcesTransitions(t *testing.T) {
	svc, repo := newOrderFixture(t)
	ctx := context.Background()

	order := seedOrder(t, repo, enums.OrderStatusPending, 1000, time.Now().UTC())

	updated, err := svc.UpdateStatus(ctx, order.ID, "processing")
	if err != nil {
		t.Fatalf("pending -> processing: %v", err)
	}
	if updated.Status != enums.OrderStatusProcessing {
		t.Fatalf("unexpected status %s", updated.Status)
	}

	_, err = svc.UpdateStatus(ctx, order.ID, "pending")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, order.ID, "delivered"); err != nil {
		t.Fatalf("processing -> delivered: %v", err)
	}
	_, err = svc.UpdateStatus(ctx, order.ID, "canceled")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("terminal order must reject writes, got %v", err)
	}

	_, err = svc.UpdateStatus(ctx, uuid.New(), "processing")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStats(t *testing.T) {
	svc, repo := newOrderFixture(t)
	ctx := context.Background()

	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	seedOrder(t, repo, enums.OrderStatusPending, 1000, now)
	seedOrder(t, repo, enums.OrderStatusPending, 3000, now.Add(time.Minute))
	seedOrder(t, repo, enums.OrderStatusDelivered, 2500, now.Add(2*time.Minute))
	seedOrder(t, repo, enums.OrderStatusDelivered, 4500, now.Add(3*time.Minute))
	seedOrder(t, repo, enums.OrderStatusCanceled, 9000, now.Add(4*time.Minute))

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.PendingCount != 2 || stats.DeliveredCount != 2 {
		t.Fatalf("unexpected counters %+v", stats)
	}
	if !stats.TotalRevenue.Equal(decimal.NewFromInt(7000)) {
		t.Fatalf("expected revenue 7000, got %s", stats.TotalRevenue)
	}
}
