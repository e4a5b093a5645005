package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/AhmedKettaf/inilapstore/pkg/db"
	"github.com/AhmedKettaf/inilapstore/pkg/db/models"
	"github.com/AhmedKettaf/inilapstore/pkg/enums"
	pkgerrors "github.com/AhmedKettaf/inilapstore/pkg/errors"
)

// Service exposes catalog reads for the storefront and item management for
// the admin console.
type Service interface {
	Storefront(ctx context.Context) (*StorefrontDTO, error)
	ListByTag(ctx context.Context, tag string) ([]ItemDTO, error)
	GetItem(ctx context.Context, collection enums.Collection, id int64) (*ItemDTO, error)
	ListOffers(ctx context.Context) ([]ItemDTO, error)
	ListPartsBySlot(ctx context.Context, slot enums.PartType) ([]ItemDTO, error)
	SearchProducts(ctx context.Context, query string) ([]ItemDTO, error)

	CreateItem(ctx context.Context, input CreateItemInput) (*ItemDTO, error)
	UpdateItem(ctx context.Context, collection enums.Collection, id int64, input UpdateItemInput) (*ItemDTO, error)
	DeleteItem(ctx context.Context, collection enums.Collection, id int64) error
	GroupedItems(ctx context.Context) ([]TagGroupDTO, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// Storefront loads the catalog and offers. Both collection reads run
// concurrently so a slow one does not serialize the other.
func (s *service) Storefront(ctx context.Context) (*StorefrontDTO, error) {
	products, parts, err := s.fetchCollections(ctx)
	if err != nil {
		return nil, err
	}
	view := &StorefrontDTO{
		Products: products,
		PCParts:  parts,
	}
	view.Offers = append(FilterOffers(view.Products), FilterOffers(view.PCParts)...)
	return view, nil
}

// fetchCollections loads both collections concurrently as display items.
func (s *service) fetchCollections(ctx context.Context) ([]ItemDTO, []ItemDTO, error) {
	var (
		products []models.Product
		parts    []models.PCPart
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		rows, err := s.repo.ListProducts(groupCtx, nil)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
		}
		products = rows
		return nil
	})
	group.Go(func() error {
		rows, err := s.repo.ListParts(groupCtx, nil)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pc parts")
		}
		parts = rows
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	productItems := make([]ItemDTO, 0, len(products))
	for i := range products {
		productItems = append(productItems, NewItemDTOFromProduct(&products[i]))
	}
	partItems := make([]ItemDTO, 0, len(parts))
	for i := range parts {
		partItems = append(partItems, NewItemDTOFromPart(&parts[i]))
	}
	return productItems, partItems, nil
}

// ListByTag routes the tag to its backing collection: TagAll spans both,
// part-type tags hit pc_parts, category tags hit products.
func (s *service) ListByTag(ctx context.Context, tag string) ([]ItemDTO, error) {
	tag = strings.TrimSpace(tag)
	if tag == TagAll {
		products, parts, err := s.fetchCollections(ctx)
		if err != nil {
			return nil, err
		}
		return FilterByTag(append(products, parts...), TagAll), nil
	}
	if partType, err := enums.ParsePartType(tag); err == nil {
		return s.ListPartsBySlot(ctx, partType)
	}

	category, err := enums.ParseProductCategory(tag)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown catalog tag").
			WithDetails(map[string]any{"tag": tag})
	}

	rows, err := s.repo.ListProducts(ctx, &category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products by category")
	}
	items := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		items = append(items, NewItemDTOFromProduct(&rows[i]))
	}
	return items, nil
}

// GetItem loads a single item by collection and ID.
func (s *service) GetItem(ctx context.Context, collection enums.Collection, id int64) (*ItemDTO, error) {
	switch collection {
	case enums.CollectionProducts:
		product, err := s.repo.FindProductByID(ctx, id)
		if err != nil {
			return nil, itemLoadError(err)
		}
		dto := NewItemDTOFromProduct(product)
		return &dto, nil
	case enums.CollectionPCParts:
		part, err := s.repo.FindPartByID(ctx, id)
		if err != nil {
			return nil, itemLoadError(err)
		}
		dto := NewItemDTOFromPart(part)
		return &dto, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown collection").
			WithDetails(map[string]any{"collection": collection.String()})
	}
}

// ListOffers returns all items with a valid offer across both collections.
func (s *service) ListOffers(ctx context.Context) ([]ItemDTO, error) {
	var (
		products []models.Product
		parts    []models.PCPart
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		rows, err := s.repo.ListOfferProducts(groupCtx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list offer products")
		}
		products = rows
		return nil
	})
	group.Go(func() error {
		rows, err := s.repo.ListOfferParts(groupCtx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list offer parts")
		}
		parts = rows
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	items := make([]ItemDTO, 0, len(products)+len(parts))
	for i := range products {
		items = append(items, NewItemDTOFromProduct(&products[i]))
	}
	for i := range parts {
		items = append(items, NewItemDTOFromPart(&parts[i]))
	}
	return FilterOffers(items), nil
}

// ListPartsBySlot returns the candidates for one build slot, cheapest first.
func (s *service) ListPartsBySlot(ctx context.Context, slot enums.PartType) ([]ItemDTO, error) {
	if !slot.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown part type").
			WithDetails(map[string]any{"part_type": slot.String()})
	}
	rows, err := s.repo.ListParts(ctx, &slot)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list parts by slot")
	}
	items := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		items = append(items, NewItemDTOFromPart(&rows[i]))
	}
	SortByEffectivePriceAsc(items)
	return items, nil
}

// SearchProducts filters products by name.
func (s *service) SearchProducts(ctx context.Context, query string) ([]ItemDTO, error) {
	if strings.TrimSpace(query) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	rows, err := s.repo.SearchProducts(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}
	items := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		items = append(items, NewItemDTOFromProduct(&rows[i]))
	}
	return items, nil
}

// CreateItem inserts a new item. The tag decides the target collection.
func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*ItemDTO, error) {
	if err := validateItemPricing(input.Price.IsPositive(), input.IsOffer, input.OfferPrice != nil); err != nil {
		return nil, err
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
	}

	tag := strings.TrimSpace(input.Tag)
	if partType, err := enums.ParsePartType(tag); err == nil {
		part := &models.PCPart{
			Name:        strings.TrimSpace(input.Name),
			Description: input.Description,
			PartType:    partType,
			Price:       input.Price,
			IsOffer:     input.IsOffer,
			Stock:       input.Stock,
			ImageURL:    input.ImageURL,
		}
		if input.OfferPrice != nil {
			part.OfferPrice.Decimal = *input.OfferPrice
			part.OfferPrice.Valid = true
		}
		created, err := s.repo.CreatePart(ctx, part)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert pc part")
		}
		dto := NewItemDTOFromPart(created)
		return &dto, nil
	}

	category, err := enums.ParseProductCategory(tag)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown catalog tag").
			WithDetails(map[string]any{"tag": tag})
	}
	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Category:    category,
		Price:       input.Price,
		IsOffer:     input.IsOffer,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
	}
	if input.OfferPrice != nil {
		product.OfferPrice.Decimal = *input.OfferPrice
		product.OfferPrice.Valid = true
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	dto := NewItemDTOFromProduct(created)
	return &dto, nil
}

// UpdateItem applies a partial update. Changing the tag within the same
// collection is allowed; moving an item across collections is not.
func (s *service) UpdateItem(ctx context.Context, collection enums.Collection, id int64, input UpdateItemInput) (*ItemDTO, error) {
	if input.Stock != nil && *input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
	}
	if input.Price != nil && !input.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}

	switch collection {
	case enums.CollectionProducts:
		product, err := s.repo.FindProductByID(ctx, id)
		if err != nil {
			return nil, itemLoadError(err)
		}
		if err := applyUpdateToProduct(product, input); err != nil {
			return nil, err
		}
		updated, err := s.repo.UpdateProduct(ctx, product)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}
		dto := NewItemDTOFromProduct(updated)
		return &dto, nil
	case enums.CollectionPCParts:
		part, err := s.repo.FindPartByID(ctx, id)
		if err != nil {
			return nil, itemLoadError(err)
		}
		if err := applyUpdateToPart(part, input); err != nil {
			return nil, err
		}
		updated, err := s.repo.UpdatePart(ctx, part)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update pc part")
		}
		dto := NewItemDTOFromPart(updated)
		return &dto, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown collection")
	}
}

// DeleteItem removes an item from its collection.
func (s *service) DeleteItem(ctx context.Context, collection enums.Collection, id int64) error {
	if _, err := s.GetItem(ctx, collection, id); err != nil {
		return err
	}
	switch collection {
	case enums.CollectionProducts:
		if err := s.repo.DeleteProduct(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
		}
	case enums.CollectionPCParts:
		if err := s.repo.DeletePart(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete pc part")
		}
	}
	return nil
}

// GroupedItems returns the admin console view: every item bucketed by tag
// with per-bucket stock health counts.
func (s *service) GroupedItems(ctx context.Context) ([]TagGroupDTO, error) {
	view, err := s.Storefront(ctx)
	if err != nil {
		return nil, err
	}
	all := make([]ItemDTO, 0, len(view.Products)+len(view.PCParts))
	all = append(all, view.Products...)
	all = append(all, view.PCParts...)
	return GroupByTag(all), nil
}

func itemLoadError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
}

func validateItemPricing(pricePositive, isOffer, hasOfferPrice bool) error {
	if !pricePositive {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if isOffer && !hasOfferPrice {
		return pkgerrors.New(pkgerrors.CodeValidation, "offer_price is required when is_offer is set")
	}
	return nil
}

func applyUpdateToProduct(product *models.Product, input UpdateItemInput) error {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Tag != nil {
		category, err := enums.ParseProductCategory(strings.TrimSpace(*input.Tag))
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "tag must stay a product category")
		}
		product.Category = category
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.IsOffer != nil {
		product.IsOffer = *input.IsOffer
	}
	if input.OfferPrice != nil {
		product.OfferPrice.Decimal = *input.OfferPrice
		product.OfferPrice.Valid = true
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}
	return nil
}

func applyUpdateToPart(part *models.PCPart, input UpdateItemInput) error {
	if input.Name != nil {
		part.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		part.Description = input.Description
	}
	if input.Tag != nil {
		partType, err := enums.ParsePartType(strings.TrimSpace(*input.Tag))
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "tag must stay a part type")
		}
		part.PartType = partType
	}
	if input.Price != nil {
		part.Price = *input.Price
	}
	if input.IsOffer != nil {
		part.IsOffer = *input.IsOffer
	}
	if input.OfferPrice != nil {
		part.OfferPrice.Decimal = *input.OfferPrice
		part.OfferPrice.Valid = true
	}
	if input.Stock != nil {
		part.Stock = *input.Stock
	}
	if input.ImageURL != nil {
		part.ImageURL = input.ImageURL
	}
	return nil
}
