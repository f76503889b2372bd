package ledger

import (
	"context"

	"github.com/ayakevin/shopledger-backend/pkg/db/models"
	"github.com/ayakevin/shopledger-backend/pkg/enums"
	"github.com/ayakevin/shopledger-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages persistence for sale records and the paired stock writes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindProduct(ctx context.Context, owner string, productID uuid.UUID) (*models.Product, error)
	DecrementStock(ctx context.Context, owner string, productID uuid.UUID, quantity int) (bool, error)
	IncrementStock(ctx context.Context, owner string, productID uuid.UUID, quantity int) (bool, error)
	CreateRecord(ctx context.Context, record *models.SaleRecord) error
	ListByOwner(ctx context.Context, owner string, limit int, cursor *pagination.Cursor) ([]models.SaleRecord, error)
	NetSoldByProduct(ctx context.Context, owner string) ([]NetSoldRow, error)
}

// NetSoldRow is one aggregation result: cumulative sales minus unsales.
type NetSoldRow struct {
	ProductID   uuid.UUID `gorm:"column:product_id"`
	ProductName string    `gorm:"column:product_name"`
	NetSold     int       `gorm:"column:net_sold"`
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindProduct(ctx context.Context, owner string, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		First(&product, "id = ? AND owner = ?", productID, owner).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// DecrementStock performs the conditional read-modify-write that keeps stock
// non-negative under concurrent sales. A false return with a nil error means
// the row exists but holds fewer units than requested.
func (r *repository) DecrementStock(ctx context.Context, owner string, productID uuid.UUID, quantity int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND owner = ? AND stock >= ?", productID, owner, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) IncrementStock(ctx context.Context, owner string, productID uuid.UUID, quantity int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND owner = ?", productID, owner).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) CreateRecord(ctx context.Context, record *models.SaleRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListByOwner returns ledger entries newest first. A cursor resumes after the
// entry it names; id breaks created_at ties.
func (r *repository) ListByOwner(ctx context.Context, owner string, limit int, cursor *pagination.Cursor) ([]models.SaleRecord, error) {
	query := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at DESC").
		Order("id DESC")
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.SaleRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) NetSoldByProduct(ctx context.Context, owner string) ([]NetSoldRow, error) {
	var rows []NetSoldRow
	err := r.db.WithContext(ctx).
		Model(&models.SaleRecord{}).
		Select(
			"product_id, MAX(product_name) AS product_name, SUM(CASE WHEN type = ? THEN quantity ELSE -quantity END) AS net_sold",
			string(enums.SaleTypeSale),
		).
		Where("owner = ? AND product_id IS NOT NULL", owner).
		Group("product_id").
		Order("net_sold DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
