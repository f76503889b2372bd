package controllers

import (
	"net/http"
	"strings"

	"github.com/ayakevin/shopledger-backend/api/responses"
	"github.com/ayakevin/shopledger-backend/api/validators"
	"github.com/ayakevin/shopledger-backend/internal/categories"
	pkgerrors "github.com/ayakevin/shopledger-backend/pkg/errors"
	"github.com/ayakevin/shopledger-backend/pkg/logger"
)

// ListCategories returns the owner's categories by display order. With
// ?include=products, each category carries its nested products.
func ListCategories(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := requireOwner(w, r, logg)
		if !ok {
			return
		}

		var (
			list []categories.CategoryDTO
			err  error
		)
		switch include := r.URL.Query().Get("include"); include {
		case "":
			list, err = svc.ListCategories(r.Context(), owner)
		case "products":
			list, err = svc.ListCategoriesWithProducts(r.Context(), owner)
		default:
			err = pkgerrors.New(pkgerrors.CodeValidation, "invalid include value")
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// CreateCategory handles the "add category" form submission.
func CreateCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := requireOwner(w, r, logg)
		if !ok {
			return
		}

		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.CreateCategory(r.Context(), owner, categories.CreateCategoryInput{
			Name:         strings.TrimSpace(payload.Name),
			DisplayOrder: payload.DisplayOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

type createCategoryRequest struct {
	Name         string `json:"name" validate:"required"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
}
