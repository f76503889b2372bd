package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ayakevin/shopledger-backend/api/middleware"
	"github.com/ayakevin/shopledger-backend/api/responses"
	"github.com/ayakevin/shopledger-backend/api/validators"
	"github.com/ayakevin/shopledger-backend/internal/products"
	pkgerrors "github.com/ayakevin/shopledger-backend/pkg/errors"
	"github.com/ayakevin/shopledger-backend/pkg/logger"
)

// ListProducts returns the owner's catalog in the requested order.
func ListProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := requireOwner(w, r, logg)
		if !ok {
			return
		}

		sort, err := products.ParseSort(r.URL.Query().Get("sort"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort"))
			return
		}

		list, err := svc.ListProducts(r.Context(), owner, sort)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// CreateProduct handles the "add product" form submission.
func CreateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := requireOwner(w, r, logg)
		if !ok {
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), owner, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// UpdateProduct applies a partial edit to a product.
func UpdateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := requireOwner(w, r, logg)
		if !ok {
			return
		}

		productID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), owner, productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct removes a product; its ledger entries survive untouched.
func DeleteProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := requireOwner(w, r, logg)
		if !ok {
			return
		}

		productID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), owner, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

type createProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"min=0"`
	CategoryID  *string         `json:"category_id,omitempty"`
}

func (r createProductRequest) toCreateInput() (products.CreateProductInput, error) {
	categoryID, err := parseOptionalUUID(r.CategoryID, "category_id")
	if err != nil {
		return products.CreateProductInput{}, err
	}
	return products.CreateProductInput{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		CategoryID:  categoryID,
	}, nil
}

type updateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Stock         *int             `json:"stock,omitempty" validate:"omitempty,min=0"`
	CategoryID    *string          `json:"category_id,omitempty"`
	ClearCategory bool             `json:"clear_category,omitempty"`
}

func (r updateProductRequest) toUpdateInput() (products.UpdateProductInput, error) {
	categoryID, err := parseOptionalUUID(r.CategoryID, "category_id")
	if err != nil {
		return products.UpdateProductInput{}, err
	}
	return products.UpdateProductInput{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		Stock:         r.Stock,
		CategoryID:    categoryID,
		ClearCategory: r.ClearCategory,
	}, nil
}

func parseOptionalUUID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	parsed, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+field)
	}
	return &parsed, nil
}

func parseProductID(r *http.Request) (uuid.UUID, error) {
	productID, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	return productID, nil
}

func requireOwner(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (string, bool) {
	owner := middleware.OwnerFromContext(r.Context())
	if owner == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "unknown owner"))
		return "", false
	}
	return owner, true
}
