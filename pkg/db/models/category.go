package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups a tenant's products under an explicit display order.
type Category struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Owner        string    `gorm:"column:owner;not null;index" json:"owner"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0" json:"display_order"`
	Products     []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
