package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/AhmedKettaf/inilapstore/internal/catalog"
	"github.com/AhmedKettaf/inilapstore/pkg/enums"
	pkgerrors "github.com/AhmedKettaf/inilapstore/pkg/errors"
)

// ItemSource is the slice of the catalog the cart needs: live stock and
// pricing for a single item.
type ItemSource interface {
	GetItem(ctx context.Context, collection enums.Collection, id int64) (*catalog.ItemDTO, error)
}

// Service mutates per-token cart snapshots with stock ceilings enforced
// against the live catalog.
type Service interface {
	Get(ctx context.Context, token string) (*CartDTO, error)
	Add(ctx context.Context, token string, collection enums.Collection, itemID int64, quantity int) (*CartDTO, error)
	SetQuantity(ctx context.Context, token string, collection enums.Collection, itemID int64, quantity int) (*CartDTO, error)
	Remove(ctx context.Context, token string, collection enums.Collection, itemID int64) (*CartDTO, error)
	Clear(ctx context.Context, token string) error
}

type service struct {
	store *Store
	items ItemSource
}

// NewService constructs a cart service instance.
func NewService(store *Store, items ItemSource) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if items == nil {
		return nil, fmt.Errorf("catalog item source required")
	}
	return &service{store: store, items: items}, nil
}

func (s *service) Get(ctx context.Context, token string) (*CartDTO, error) {
	snapshot, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	return NewCartDTO(snapshot), nil
}

// Add merges an item into the cart. Adding an item that is already present
// increments its quantity; the combined quantity is still capped by stock.
func (s *service) Add(ctx context.Context, token string, collection enums.Collection, itemID int64, quantity int) (*CartDTO, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	snapshot, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}

	requested := quantity
	if idx := snapshot.findLine(collection, itemID); idx >= 0 {
		requested += snapshot.Lines[idx].Quantity
	}
	item, err := s.reserveCheck(ctx, collection, itemID, requested)
	if err != nil {
		return nil, err
	}

	if idx := snapshot.findLine(collection, itemID); idx >= 0 {
		snapshot.Lines[idx].Quantity = requested
		snapshot.Lines[idx].UnitPrice = item.EffectivePrice
		snapshot.Lines[idx].Name = item.Name
	} else {
		snapshot.Lines = append(snapshot.Lines, Line{
			ItemID:     item.ID,
			Collection: item.Collection,
			Name:       item.Name,
			UnitPrice:  item.EffectivePrice,
			Quantity:   quantity,
			ImageURL:   item.ImageURL,
		})
	}
	if err := s.store.Save(ctx, snapshot); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return NewCartDTO(snapshot), nil
}

// SetQuantity replaces a line's quantity. Zero removes the line.
func (s *service) SetQuantity(ctx context.Context, token string, collection enums.Collection, itemID int64, quantity int) (*CartDTO, error) {
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be non-negative")
	}
	if quantity == 0 {
		return s.Remove(ctx, token, collection, itemID)
	}

	snapshot, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	idx := snapshot.findLine(collection, itemID)
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item is not in the cart")
	}
	item, err := s.reserveCheck(ctx, collection, itemID, quantity)
	if err != nil {
		return nil, err
	}

	snapshot.Lines[idx].Quantity = quantity
	snapshot.Lines[idx].UnitPrice = item.EffectivePrice
	snapshot.Lines[idx].Name = item.Name
	if err := s.store.Save(ctx, snapshot); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return NewCartDTO(snapshot), nil
}

func (s *service) Remove(ctx context.Context, token string, collection enums.Collection, itemID int64) (*CartDTO, error) {
	snapshot, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	idx := snapshot.findLine(collection, itemID)
	if idx < 0 {
		return NewCartDTO(snapshot), nil
	}
	snapshot.Lines = append(snapshot.Lines[:idx], snapshot.Lines[idx+1:]...)
	if err := s.store.Save(ctx, snapshot); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return NewCartDTO(snapshot), nil
}

func (s *service) Clear(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	if err := s.store.Delete(ctx, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) load(ctx context.Context, token string) (*Snapshot, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	snapshot, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return snapshot, nil
}

// reserveCheck verifies the requested quantity fits inside the item's live
// stock and returns the item for repricing.
func (s *service) reserveCheck(ctx context.Context, collection enums.Collection, itemID int64, requested int) (*catalog.ItemDTO, error) {
	item, err := s.items.GetItem(ctx, collection, itemID)
	if err != nil {
		return nil, err
	}
	if item.Stock <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeOutOfStock, "item is out of stock").
			WithDetails(map[string]any{"item_id": itemID})
	}
	if requested > item.Stock {
		return nil, pkgerrors.New(pkgerrors.CodeCeilingExceeded, "requested quantity exceeds available stock").
			WithDetails(map[string]any{"item_id": itemID, "available": item.Stock, "requested": requested})
	}
	return item, nil
}
