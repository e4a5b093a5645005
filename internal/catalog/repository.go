package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/AhmedKettaf/inilapstore/pkg/db/models"
	"github.com/AhmedKettaf/inilapstore/pkg/enums"
)

// Repository wires together catalog persistence for both collections.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindProductByID loads a product row.
func (r *Repository) FindProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindPartByID loads a pc_parts row.
func (r *Repository) FindPartByID(ctx context.Context, id int64) (*models.PCPart, error) {
	var part models.PCPart
	if err := r.db.WithContext(ctx).First(&part, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

// ListProducts returns products, optionally narrowed to a category.
func (r *Repository) ListProducts(ctx context.Context, category *enums.ProductCategory) ([]models.Product, error) {
	qb := r.db.WithContext(ctx).Model(&models.Product{})
	if category != nil {
		qb = qb.Where("category = ?", *category)
	}
	var rows []models.Product
	err := qb.Order("created_at DESC").Order("id DESC").Find(&rows).Error
	return rows, err
}

// ListParts returns pc parts, optionally narrowed to a slot.
func (r *Repository) ListParts(ctx context.Context, partType *enums.PartType) ([]models.PCPart, error) {
	qb := r.db.WithContext(ctx).Model(&models.PCPart{})
	if partType != nil {
		qb = qb.Where("part_type = ?", *partType)
	}
	var rows []models.PCPart
	err := qb.Order("created_at DESC").Order("id DESC").Find(&rows).Error
	return rows, err
}

// SearchProducts filters products by a case-insensitive name match.
func (r *Repository) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", pattern).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListOfferProducts returns products flagged as offers.
func (r *Repository) ListOfferProducts(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("is_offer = ?", true).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListOfferParts returns pc parts flagged as offers.
func (r *Repository) ListOfferParts(ctx context.Context) ([]models.PCPart, error) {
	var rows []models.PCPart
	err := r.db.WithContext(ctx).
		Where("is_offer = ?", true).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct saves an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by ID.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// CreatePart inserts a new pc_parts row.
func (r *Repository) CreatePart(ctx context.Context, part *models.PCPart) (*models.PCPart, error) {
	if err := r.db.WithContext(ctx).Create(part).Error; err != nil {
		return nil, err
	}
	return part, nil
}

// UpdatePart saves an existing pc_parts row.
func (r *Repository) UpdatePart(ctx context.Context, part *models.PCPart) (*models.PCPart, error) {
	if err := r.db.WithContext(ctx).Save(part).Error; err != nil {
		return nil, err
	}
	return part, nil
}

// DeletePart removes a pc_parts row by ID.
func (r *Repository) DeletePart(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PCPart{}).Error
}

// DecrementProductStock conditionally subtracts stock, refusing to go
// negative. Returns gorm.ErrRecordNotFound semantics via RowsAffected == 0.
func (r *Repository) DecrementProductStock(ctx context.Context, id int64, quantity int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DecrementPartStock conditionally subtracts stock for a pc part.
func (r *Repository) DecrementPartStock(ctx context.Context, id int64, quantity int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.PCPart{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
