package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ayakevin/shopledger-backend/pkg/db/models"
	pkgerrors "github.com/ayakevin/shopledger-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes catalog management for a tenant's products.
type Service interface {
	CreateProduct(ctx context.Context, owner string, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, owner string, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, owner string, productID uuid.UUID) error
	ListProducts(ctx context.Context, owner string, sort Sort) ([]ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	Stock       int
	CategoryID  *uuid.UUID
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	Stock         *int
	CategoryID    *uuid.UUID
	ClearCategory bool
}

type categoryLoader interface {
	FindByID(ctx context.Context, owner string, id uuid.UUID) (*models.Category, error)
}

type service struct {
	repo         *Repository
	categoryRepo categoryLoader
}

// NewService constructs a product service instance.
func NewService(repo *Repository, categoryRepo categoryLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if categoryRepo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo, categoryRepo: categoryRepo}, nil
}

func (s *service) CreateProduct(ctx context.Context, owner string, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if owner == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner is required")
	}
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	if input.CategoryID != nil {
		if err := s.ensureCategory(ctx, owner, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	product := &models.Product{
		Owner:       owner,
		CategoryID:  input.CategoryID,
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}

	dto := toProductDTO(*created)
	return &dto, nil
}

func (s *service) UpdateProduct(ctx context.Context, owner string, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if owner == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner is required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.repo.FindByID(ctx, owner, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
		}
		product.Stock = *input.Stock
	}
	if input.ClearCategory {
		product.CategoryID = nil
	} else if input.CategoryID != nil {
		if err := s.ensureCategory(ctx, owner, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = input.CategoryID
	}

	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}

	dto := toProductDTO(*saved)
	return &dto, nil
}

func (s *service) DeleteProduct(ctx context.Context, owner string, productID uuid.UUID) error {
	if owner == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "owner is required")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	deleted, err := s.repo.Delete(ctx, owner, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *service) ListProducts(ctx context.Context, owner string, sort Sort) ([]ProductDTO, error) {
	if owner == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner is required")
	}

	rows, err := s.repo.ListByOwner(ctx, owner, sort)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}

	dtos := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, toProductDTO(row))
	}
	return dtos, nil
}

func (s *service) ensureCategory(ctx context.Context, owner string, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, owner, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	return nil
}
