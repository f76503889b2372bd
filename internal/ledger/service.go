package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ayakevin/shopledger-backend/pkg/db/models"
	"github.com/ayakevin/shopledger-backend/pkg/enums"
	pkgerrors "github.com/ayakevin/shopledger-backend/pkg/errors"
	"github.com/ayakevin/shopledger-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes the stock-adjustment ledger. Every write pairs an immutable
// sale record with the matching stock mutation inside one transaction.
type Service interface {
	RecordSale(ctx context.Context, owner string, input RecordEntryInput) (*models.SaleRecord, error)
	RecordUnsale(ctx context.Context, owner string, input RecordEntryInput) (*models.SaleRecord, error)
	ListSalesLog(ctx context.Context, owner string, params pagination.Params) (*SalesLogPage, error)
	AggregateSalesByProduct(ctx context.Context, owner string) ([]ProductSalesSummary, error)
}

// SalesLogPage is one slice of the ledger plus the cursor for the next slice.
// An empty NextCursor means the log is exhausted.
type SalesLogPage struct {
	Records    []models.SaleRecord `json:"records"`
	NextCursor string              `json:"next_cursor,omitempty"`
}

// RecordEntryInput captures the data one ledger entry requires. A nil
// UnitPrice means "snapshot the product's current price".
type RecordEntryInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice *decimal.Decimal
}

// ProductSalesSummary reports net units sold per product. NetSold carries the
// raw value (can be negative after excess restocks); DisplaySold clamps at
// zero for presentation.
type ProductSalesSummary struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	NetSold     int       `json:"net_sold"`
	DisplaySold int       `json:"display_sold"`
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo     Repository
	dbClient txRunner
}

// NewService wires a ledger service with the provided repository and
// transaction runner.
func NewService(repo Repository, dbClient txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) RecordSale(ctx context.Context, owner string, input RecordEntryInput) (*models.SaleRecord, error) {
	return s.record(ctx, owner, enums.SaleTypeSale, input)
}

func (s *service) RecordUnsale(ctx context.Context, owner string, input RecordEntryInput) (*models.SaleRecord, error) {
	return s.record(ctx, owner, enums.SaleTypeUnsale, input)
}

func (s *service) record(ctx context.Context, owner string, saleType enums.SaleType, input RecordEntryInput) (*models.SaleRecord, error) {
	if err := validateEntry(owner, input); err != nil {
		return nil, err
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}

	var record *models.SaleRecord
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := txRepo.FindProduct(ctx, owner, input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}

		switch saleType {
		case enums.SaleTypeSale:
			ok, err := txRepo.DecrementStock(ctx, owner, input.ProductID, quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: decrement stock")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
					WithDetails(map[string]any{"stock": product.Stock, "requested": quantity})
			}
		case enums.SaleTypeUnsale:
			ok, err := txRepo.IncrementStock(ctx, owner, input.ProductID, quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: increment stock")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
		default:
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid sale type %q", saleType))
		}

		unitPrice := product.Price
		if input.UnitPrice != nil {
			unitPrice = *input.UnitPrice
		}

		productID := input.ProductID
		record = &models.SaleRecord{
			ProductID:   &productID,
			ProductName: product.Name,
			Owner:       owner,
			Type:        saleType,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
		}
		if err := txRepo.CreateRecord(ctx, record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert sale record")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListSalesLog returns the ledger newest first. Without a limit or cursor the
// whole log comes back in one page, matching the storefront's log view.
func (s *service) ListSalesLog(ctx context.Context, owner string, params pagination.Params) (*SalesLogPage, error) {
	if owner == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner is required")
	}
	if params.Limit < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "limit cannot be negative")
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	if params.Limit == 0 && cursor == nil {
		records, err := s.repo.ListByOwner(ctx, owner, 0, nil)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list sale records")
		}
		return &SalesLogPage{Records: records}, nil
	}

	limit := pagination.NormalizeLimit(params.Limit)
	records, err := s.repo.ListByOwner(ctx, owner, limit+1, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list sale records")
	}

	page := &SalesLogPage{Records: records}
	if len(records) > limit {
		page.Records = records[:limit]
		last := page.Records[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page, nil
}

func (s *service) AggregateSalesByProduct(ctx context.Context, owner string) ([]ProductSalesSummary, error) {
	if owner == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner is required")
	}

	rows, err := s.repo.NetSoldByProduct(ctx, owner)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: aggregate sale records")
	}

	summaries := make([]ProductSalesSummary, 0, len(rows))
	for _, row := range rows {
		display := row.NetSold
		if display < 0 {
			display = 0
		}
		summaries = append(summaries, ProductSalesSummary{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			NetSold:     row.NetSold,
			DisplaySold: display,
		})
	}
	return summaries, nil
}

func validateEntry(owner string, input RecordEntryInput) error {
	if owner == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "owner is required")
	}
	if input.ProductID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.UnitPrice != nil && input.UnitPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
	}
	return nil
}
