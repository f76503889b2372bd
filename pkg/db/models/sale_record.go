package models

import (
	"time"

	"github.com/ayakevin/shopledger-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRecord is an immutable ledger entry for one stock-changing event.
// Entries are never edited or deleted; corrections append an offsetting
// entry. ProductName and UnitPrice are snapshots taken when the entry is
// written, so the ledger stays readable after product renames or deletions.
type SaleRecord struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID   *uuid.UUID      `gorm:"column:product_id;type:uuid;index" json:"product_id,omitempty"`
	ProductName string          `gorm:"column:product_name;not null" json:"product_name"`
	Owner       string          `gorm:"column:owner;not null;index" json:"owner"`
	Type        enums.SaleType  `gorm:"column:type;not null" json:"type"`
	Quantity    int             `gorm:"column:quantity;not null;default:1" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unit_price"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
