package categories

import (
	"time"

	"github.com/ayakevin/shopledger-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryDTO is the category representation the API returns. Products are
// populated only on the with-products listing.
type CategoryDTO struct {
	ID           uuid.UUID            `json:"id"`
	Owner        string               `json:"owner"`
	Name         string               `json:"name"`
	DisplayOrder int                  `json:"display_order"`
	Products     []CategoryProductDTO `json:"products,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// CategoryProductDTO is the nested product projection inside a category.
type CategoryProductDTO struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

func toCategoryDTO(category models.Category, withProducts bool) CategoryDTO {
	dto := CategoryDTO{
		ID:           category.ID,
		Owner:        category.Owner,
		Name:         category.Name,
		DisplayOrder: category.DisplayOrder,
		CreatedAt:    category.CreatedAt,
		UpdatedAt:    category.UpdatedAt,
	}
	if withProducts {
		dto.Products = make([]CategoryProductDTO, 0, len(category.Products))
		for _, product := range category.Products {
			dto.Products = append(dto.Products, CategoryProductDTO{
				ID:    product.ID,
				Name:  product.Name,
				Price: product.Price,
				Stock: product.Stock,
			})
		}
	}
	return dto
}

func toCategoryDTOs(rows []models.Category, withProducts bool) []CategoryDTO {
	dtos := make([]CategoryDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, toCategoryDTO(row, withProducts))
	}
	return dtos
}
