package controllers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ayakevin/shopledger-backend/api/responses"
	"github.com/ayakevin/shopledger-backend/api/validators"
	"github.com/ayakevin/shopledger-backend/internal/ledger"
	"github.com/ayakevin/shopledger-backend/pkg/db/models"
	"github.com/ayakevin/shopledger-backend/pkg/logger"
	"github.com/ayakevin/shopledger-backend/pkg/pagination"
)

// RecordSale appends a sale ledger entry and decrements stock atomically.
func RecordSale(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return recordEntry(svc.RecordSale, logg)
}

// RecordUnsale appends an unsale (restock) entry and increments stock.
func RecordUnsale(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return recordEntry(svc.RecordUnsale, logg)
}

// ListSalesLog returns the owner's ledger, newest first. Without ?limit or
// ?cursor the whole log comes back; with either, responses are cursor pages.
func ListSalesLog(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := requireOwner(w, r, logg)
		if !ok {
			return
		}

		limit, err := validators.QueryInt(r, "limit", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListSalesLog(r.Context(), owner, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// SalesSummary reports net units sold per product.
func SalesSummary(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := requireOwner(w, r, logg)
		if !ok {
			return
		}

		summaries, err := svc.AggregateSalesByProduct(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summaries)
	}
}

type saleRequest struct {
	Quantity  *int             `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

func recordEntry(record func(ctx context.Context, owner string, input ledger.RecordEntryInput) (*models.SaleRecord, error), logg *logger.Logger) http.HandlerFunc {
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

		// The sale/unsale buttons post without a body; everything is optional.
		var payload saleRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		quantity := 1
		if payload.Quantity != nil {
			quantity = *payload.Quantity
		}

		entry, err := record(r.Context(), owner, ledger.RecordEntryInput{
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: payload.UnitPrice,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}
