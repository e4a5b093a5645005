package build

import (
	"context"
	"fmt"
	"strings"

	"github.com/AhmedKettaf/inilapstore/internal/cart"
	"github.com/AhmedKettaf/inilapstore/internal/catalog"
	"github.com/AhmedKettaf/inilapstore/pkg/enums"
	pkgerrors "github.com/AhmedKettaf/inilapstore/pkg/errors"
)

// PartSource resolves a chosen part against the live pc_parts catalog.
type PartSource interface {
	GetItem(ctx context.Context, collection enums.Collection, id int64) (*catalog.ItemDTO, error)
}

// CartAdder is the slice of the cart the configurator needs to hand a
// finished build over.
type CartAdder interface {
	Add(ctx context.Context, token string, collection enums.Collection, itemID int64, quantity int) (*cart.CartDTO, error)
}

// Service manages per-token PC build snapshots: one part per slot, required
// slots enforced before the build can move to the cart.
type Service interface {
	Get(ctx context.Context, token string) (*BuildDTO, error)
	SetSlot(ctx context.Context, token string, slot enums.PartType, itemID int64) (*BuildDTO, error)
	RemoveSlot(ctx context.Context, token string, slot enums.PartType) (*BuildDTO, error)
	Clear(ctx context.Context, token string) error
	AddToCart(ctx context.Context, token string) (*cart.CartDTO, error)
}

type service struct {
	store *Store
	parts PartSource
	carts CartAdder
}

// NewService constructs a build-configurator service instance.
func NewService(store *Store, parts PartSource, carts CartAdder) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("build store required")
	}
	if parts == nil {
		return nil, fmt.Errorf("part source required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart adder required")
	}
	return &service{store: store, parts: parts, carts: carts}, nil
}

func (s *service) Get(ctx context.Context, token string) (*BuildDTO, error) {
	snapshot, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	return NewBuildDTO(snapshot), nil
}

// SetSlot picks a part for a slot, replacing any previous selection. The part
// must belong to the slot it is assigned to and must be in stock.
func (s *service) SetSlot(ctx context.Context, token string, slot enums.PartType, itemID int64) (*BuildDTO, error) {
	if !slot.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown build slot").
			WithDetails(map[string]any{"slot": slot.String()})
	}
	snapshot, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}

	item, err := s.parts.GetItem(ctx, enums.CollectionPCParts, itemID)
	if err != nil {
		return nil, err
	}
	if item.Tag != slot.String() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "part does not fit this slot").
			WithDetails(map[string]any{"slot": slot.String(), "part_type": item.Tag})
	}
	if item.Stock <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeOutOfStock, "item is out of stock").
			WithDetails(map[string]any{"item_id": itemID})
	}

	snapshot.Slots[slot] = SlotSelection{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.EffectivePrice,
		ImageURL:  item.ImageURL,
	}
	if err := s.store.Save(ctx, snapshot); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist build")
	}
	return NewBuildDTO(snapshot), nil
}

func (s *service) RemoveSlot(ctx context.Context, token string, slot enums.PartType) (*BuildDTO, error) {
	snapshot, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	if _, ok := snapshot.Slots[slot]; !ok {
		return NewBuildDTO(snapshot), nil
	}
	delete(snapshot.Slots, slot)
	if err := s.store.Save(ctx, snapshot); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist build")
	}
	return NewBuildDTO(snapshot), nil
}

func (s *service) Clear(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "build token is required")
	}
	if err := s.store.Delete(ctx, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear build")
	}
	return nil
}

// AddToCart transfers a complete build into the cart, one unit per slot, and
// clears the build snapshot. An incomplete build is rejected with the list of
// missing required slots. The transfer is not atomic: when a slot fails
// mid-way (stock ran out since the slot was picked) the lines already moved
// stay in the cart and the snapshot is kept so the shopper can swap the
// failing part and retry.
func (s *service) AddToCart(ctx context.Context, token string) (*cart.CartDTO, error) {
	snapshot, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	view := NewBuildDTO(snapshot)
	if !view.Complete {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "build is missing required slots").
			WithDetails(map[string]any{"missing_slots": view.MissingSlots})
	}

	var result *cart.CartDTO
	for _, slot := range enums.AllPartTypes() {
		selection, ok := snapshot.Slots[slot]
		if !ok {
			continue
		}
		result, err = s.carts.Add(ctx, token, enums.CollectionPCParts, selection.ItemID, 1)
		if err != nil {
			return nil, err
		}
	}
	if err := s.store.Delete(ctx, token); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear build after transfer")
	}
	return result, nil
}

func (s *service) load(ctx context.Context, token string) (*Snapshot, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "build token is required")
	}
	snapshot, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load build")
	}
	return snapshot, nil
}
