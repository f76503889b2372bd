package products

import (
	"context"
	"fmt"

	"github.com/ayakevin/shopledger-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sort names the supported product list orderings.
type Sort string

const (
	// SortName orders alphabetically, the default catalog view.
	SortName Sort = "name"
	// SortNewest matches the original storefront ordering (latest first).
	SortNewest Sort = "newest"
	// SortCategory orders by category display order, then product name.
	SortCategory Sort = "category"
)

// ParseSort converts raw query input into a Sort, defaulting to name order.
func ParseSort(value string) (Sort, error) {
	switch Sort(value) {
	case "":
		return SortName, nil
	case SortName, SortNewest, SortCategory:
		return Sort(value), nil
	default:
		return "", fmt.Errorf("invalid sort %q", value)
	}
}

// Repository wires together product persistence helpers.
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

// FindByID loads the product scoped to its owner.
func (r *Repository) FindByID(ctx context.Context, owner string, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		First(&product, "id = ? AND owner = ?", id, owner).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Save updates an existing product row.
func (r *Repository) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product by ID. Sale records survive via their snapshotted
// name; the FK sets product_id to NULL.
func (r *Repository) Delete(ctx context.Context, owner string, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner = ?", id, owner).
		Delete(&models.Product{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListByOwner lists a tenant's products in the requested order.
func (r *Repository) ListByOwner(ctx context.Context, owner string, sort Sort) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Where("products.owner = ?", owner)

	switch sort {
	case SortNewest:
		query = query.Order("products.created_at DESC")
	case SortCategory:
		query = query.
			Joins("LEFT JOIN categories ON categories.id = products.category_id").
			Order("categories.display_order ASC NULLS LAST").
			Order("products.name ASC")
	default:
		query = query.Order("products.name ASC")
	}

	var rows []models.Product
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
