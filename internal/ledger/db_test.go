package ledger

import (
	"fmt"
	"os"
	"testing"

	"github.com/ayakevin/shopledger-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("SHOPLEDGER_DB_DSN")
	if dsn == "" {
		t.Skip("SHOPLEDGER_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}

// testOwner gives each test a private tenant so runs do not collide.
func testOwner(t *testing.T) string {
	t.Helper()
	return fmt.Sprintf("t_%s", uuid.NewString()[:8])
}

func mustCreateLedgerProduct(t *testing.T, tx *gorm.DB, owner string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:    uuid.New(),
		Owner: owner,
		Name:  "espresso",
		Price: decimal.RequireFromString("4.50"),
		Stock: stock,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
