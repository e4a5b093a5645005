package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AhmedKettaf/inilapstore/internal/cart"
	"github.com/AhmedKettaf/inilapstore/internal/catalog"
	"github.com/AhmedKettaf/inilapstore/internal/orders"
	"github.com/AhmedKettaf/inilapstore/pkg/db/models"
	"github.com/AhmedKettaf/inilapstore/pkg/enums"
	pkgerrors "github.com/AhmedKettaf/inilapstore/pkg/errors"
	"github.com/AhmedKettaf/inilapstore/pkg/logger"
	"github.com/AhmedKettaf/inilapstore/pkg/metrics"
	"github.com/AhmedKettaf/inilapstore/pkg/types"
)

const idempotencyScope = "checkout"

// CartReader is the slice of the cart the checkout flow needs.
type CartReader interface {
	Get(ctx context.Context, token string) (*cart.CartDTO, error)
	Clear(ctx context.Context, token string) error
}

// IdempotencyStore reserves submission keys so a double-clicked checkout
// creates one order.
type IdempotencyStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	IdempotencyKey(scope, id string) string
	Del(ctx context.Context, keys ...string) error
}

type transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service turns a cart snapshot into an order. A submission moves through
// submitting to succeeded or failed; the cart is only cleared on success.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*ResultDTO, error)
}

type service struct {
	tx          transactor
	catalogRepo *catalog.Repository
	orderRepo   *orders.Repository
	carts       CartReader
	idempotency IdempotencyStore
	ttl         time.Duration
	metrics     *metrics.CheckoutMetrics
	logg        *logger.Logger
}

// Options bundles the checkout service dependencies.
type Options struct {
	Transactor     transactor
	CatalogRepo    *catalog.Repository
	OrderRepo      *orders.Repository
	Carts          CartReader
	Idempotency    IdempotencyStore
	IdempotencyTTL time.Duration
	Metrics        *metrics.CheckoutMetrics
	Logger         *logger.Logger
}

// NewService constructs a checkout service instance. Metrics and logger are
// optional; everything else is required.
func NewService(opts Options) (Service, error) {
	if opts.Transactor == nil {
		return nil, fmt.Errorf("transactor required")
	}
	if opts.CatalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if opts.OrderRepo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if opts.Carts == nil {
		return nil, fmt.Errorf("cart reader required")
	}
	if opts.Idempotency == nil {
		return nil, fmt.Errorf("idempotency store required")
	}
	ttl := opts.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &service{
		tx:          opts.Transactor,
		catalogRepo: opts.CatalogRepo,
		orderRepo:   opts.OrderRepo,
		carts:       opts.Carts,
		idempotency: opts.Idempotency,
		ttl:         ttl,
		metrics:     opts.Metrics,
		logg:        opts.Logger,
	}, nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*ResultDTO, error) {
	started := time.Now()
	result, err := s.submit(ctx, input)
	outcome := enums.CheckoutStateSucceeded.String()
	if err != nil {
		outcome = enums.CheckoutStateFailed.String()
	}
	s.metrics.IncSubmission(outcome)
	s.metrics.ObserveDuration(outcome, time.Since(started))
	if err == nil {
		total, _ := result.TotalPrice.Float64()
		s.metrics.ObserveOrderValue(total)
	}
	return result, err
}

func (s *service) submit(ctx context.Context, input SubmitInput) (*ResultDTO, error) {
	if err := validateSubmitInput(input); err != nil {
		return nil, err
	}

	reservedKey, err := s.reserveIdempotencyKey(ctx, input.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.carts.Get(ctx, input.CartToken)
	if err != nil {
		s.releaseIdempotencyKey(ctx, reservedKey)
		return nil, err
	}
	if len(snapshot.Lines) == 0 {
		s.releaseIdempotencyKey(ctx, reservedKey)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	var created *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		catalogTx := s.catalogRepo.WithTx(tx)
		items, total, reserveErr := s.reserveStock(ctx, catalogTx, snapshot.Lines)
		if reserveErr != nil {
			return reserveErr
		}

		token := input.CartToken
		order := &models.Order{
			FullName:    strings.TrimSpace(input.FullName),
			PhoneNumber: strings.TrimSpace(input.PhoneNumber),
			Wilaya:      strings.TrimSpace(input.Wilaya),
			Address:     input.Address,
			Items:       items,
			TotalPrice:  total,
			Status:      enums.OrderStatusPending,
			CartToken:   &token,
		}
		inserted, insertErr := s.orderRepo.WithTx(tx).Create(ctx, order)
		if insertErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, insertErr, "persist order")
		}
		created = inserted
		return nil
	})
	if err != nil {
		s.releaseIdempotencyKey(ctx, reservedKey)
		return nil, err
	}

	// the order exists at this point; a failed cart cleanup is logged, not
	// surfaced
	if clearErr := s.carts.Clear(ctx, input.CartToken); clearErr != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("clear cart after checkout: %v", clearErr))
	}
	if s.logg != nil {
		s.logg.Info(ctx, fmt.Sprintf("order %s placed, total %s", created.ID, created.TotalPrice))
	}
	return &ResultDTO{
		OrderID:    created.ID,
		Status:     created.Status,
		State:      enums.CheckoutStateSucceeded,
		Items:      created.Items,
		TotalPrice: created.TotalPrice,
	}, nil
}

// reserveStock re-reads every line against the live catalog, decrements
// stock conditionally, and freezes the item snapshot for the order.
func (s *service) reserveStock(ctx context.Context, repo *catalog.Repository, lines []cart.LineDTO) (types.OrderItems, decimal.Decimal, error) {
	items := make(types.OrderItems, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		item, err := s.loadItem(ctx, repo, line)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if item.Stock < line.Quantity {
			return nil, decimal.Zero, stockError(line.ItemID, item.Stock, line.Quantity)
		}

		var decremented bool
		switch line.Collection {
		case enums.CollectionProducts:
			decremented, err = repo.DecrementProductStock(ctx, line.ItemID, line.Quantity)
		case enums.CollectionPCParts:
			decremented, err = repo.DecrementPartStock(ctx, line.ItemID, line.Quantity)
		default:
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "unknown collection")
		}
		if err != nil {
			return nil, decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
		}
		if !decremented {
			return nil, decimal.Zero, stockError(line.ItemID, item.Stock, line.Quantity)
		}

		lineTotal := item.EffectivePrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, types.OrderItem{
			ItemID:     item.ID,
			Collection: item.Collection,
			Name:       item.Name,
			UnitPrice:  item.EffectivePrice,
			Quantity:   line.Quantity,
			LineTotal:  lineTotal,
		})
		total = total.Add(lineTotal)
	}
	return items, total, nil
}

func (s *service) loadItem(ctx context.Context, repo *catalog.Repository, line cart.LineDTO) (*catalog.ItemDTO, error) {
	switch line.Collection {
	case enums.CollectionProducts:
		product, err := repo.FindProductByID(ctx, line.ItemID)
		if err != nil {
			return nil, itemUnavailable(line.ItemID, err)
		}
		dto := catalog.NewItemDTOFromProduct(product)
		return &dto, nil
	case enums.CollectionPCParts:
		part, err := repo.FindPartByID(ctx, line.ItemID)
		if err != nil {
			return nil, itemUnavailable(line.ItemID, err)
		}
		dto := catalog.NewItemDTOFromPart(part)
		return &dto, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown collection")
	}
}

func (s *service) reserveIdempotencyKey(ctx context.Context, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", nil
	}
	fullKey := s.idempotency.IdempotencyKey(idempotencyScope, key)
	ok, err := s.idempotency.SetNX(ctx, fullKey, "in_flight", s.ttl)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve idempotency key")
	}
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeIdempotency, "checkout already submitted").
			WithDetails(map[string]any{"idempotency_key": key})
	}
	return fullKey, nil
}

// releaseIdempotencyKey frees the reservation after a failed submission so
// the client can retry with the same key.
func (s *service) releaseIdempotencyKey(ctx context.Context, fullKey string) {
	if fullKey == "" {
		return
	}
	if err := s.idempotency.Del(ctx, fullKey); err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("release idempotency key: %v", err))
	}
}

func validateSubmitInput(input SubmitInput) error {
	missing := []string{}
	if strings.TrimSpace(input.CartToken) == "" {
		missing = append(missing, "cart_token")
	}
	if strings.TrimSpace(input.FullName) == "" {
		missing = append(missing, "full_name")
	}
	if strings.TrimSpace(input.PhoneNumber) == "" {
		missing = append(missing, "phone_number")
	}
	if strings.TrimSpace(input.Wilaya) == "" {
		missing = append(missing, "wilaya")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required checkout fields").
			WithDetails(map[string]any{"fields": missing})
	}
	return nil
}

func stockError(itemID int64, available, requested int) error {
	if available <= 0 {
		return pkgerrors.New(pkgerrors.CodeOutOfStock, "item is out of stock").
			WithDetails(map[string]any{"item_id": itemID})
	}
	return pkgerrors.New(pkgerrors.CodeCeilingExceeded, "requested quantity exceeds available stock").
		WithDetails(map[string]any{"item_id": itemID, "available": available, "requested": requested})
}

func itemUnavailable(itemID int64, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item no longer exists").
			WithDetails(map[string]any{"item_id": itemID})
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
}
