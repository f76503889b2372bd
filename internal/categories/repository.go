package categories

import (
	"context"

	"github.com/ayakevin/shopledger-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages category persistence.
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

// FindByID loads the category scoped to its owner.
func (r *Repository) FindByID(ctx context.Context, owner string, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).
		First(&category, "id = ? AND owner = ?", id, owner).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Create inserts a new category row.
func (r *Repository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// ListByOwner lists categories by display order, then name.
func (r *Repository) ListByOwner(ctx context.Context, owner string) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("display_order ASC").
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListWithProducts lists categories with their products preloaded. Products
// sort by name ascending; the ordering is part of the API contract.
func (r *Repository) ListWithProducts(ctx context.Context, owner string) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Where("owner = ?", owner).
		Order("display_order ASC").
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
