package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item owned by a single tenant. Stock is only mutated
// through the ledger's paired writes and can never go below zero.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Owner       string          `gorm:"column:owner;not null;index" json:"owner"`
	CategoryID  *uuid.UUID      `gorm:"column:category_id;type:uuid" json:"category_id,omitempty"`
	Category    *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	Description *string         `gorm:"column:description" json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Stock       int             `gorm:"column:stock;not null;default:0" json:"stock"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
