package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/ayakevin/shopledger-backend/pkg/db"
	"github.com/ayakevin/shopledger-backend/pkg/db/models"
	pkgerrors "github.com/ayakevin/shopledger-backend/pkg/errors"
)

// Service exposes category management for a tenant.
type Service interface {
	CreateCategory(ctx context.Context, owner string, input CreateCategoryInput) (*CategoryDTO, error)
	ListCategories(ctx context.Context, owner string) ([]CategoryDTO, error)
	ListCategoriesWithProducts(ctx context.Context, owner string) ([]CategoryDTO, error)
}

// CreateCategoryInput holds the validated payload to create a category.
type CreateCategoryInput struct {
	Name         string
	DisplayOrder int
}

type service struct {
	repo *Repository
}

// NewService constructs a category service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateCategory(ctx context.Context, owner string, input CreateCategoryInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if owner == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner is required")
	}
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	category := &models.Category{
		Owner:        owner,
		Name:         name,
		DisplayOrder: input.DisplayOrder,
	}

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_categories_owner_name") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}

	dto := toCategoryDTO(*created, false)
	return &dto, nil
}

func (s *service) ListCategories(ctx context.Context, owner string) ([]CategoryDTO, error) {
	if owner == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner is required")
	}

	rows, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	return toCategoryDTOs(rows, false), nil
}

func (s *service) ListCategoriesWithProducts(ctx context.Context, owner string) ([]CategoryDTO, error) {
	if owner == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner is required")
	}

	rows, err := s.repo.ListWithProducts(ctx, owner)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories with products")
	}
	return toCategoryDTOs(rows, true), nil
}
