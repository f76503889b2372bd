package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/ayakevin/shopledger-backend/pkg/db/models"
	"github.com/ayakevin/shopledger-backend/pkg/enums"
	pkgerrors "github.com/ayakevin/shopledger-backend/pkg/errors"
	"github.com/ayakevin/shopledger-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeRepository struct {
	product     *models.Product
	findErr     error
	decrementOK bool
	decrementFn func(quantity int) (bool, error)
	incrementOK bool
	created     []*models.SaleRecord
	createErr   error
	listRecords []models.SaleRecord
	listLimit   int
	listCursor  *pagination.Cursor
	netRows     []NetSoldRow
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepository) FindProduct(ctx context.Context, owner string, productID uuid.UUID) (*models.Product, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.product, nil
}

func (f *fakeRepository) DecrementStock(ctx context.Context, owner string, productID uuid.UUID, quantity int) (bool, error) {
	if f.decrementFn != nil {
		return f.decrementFn(quantity)
	}
	return f.decrementOK, nil
}

func (f *fakeRepository) IncrementStock(ctx context.Context, owner string, productID uuid.UUID, quantity int) (bool, error) {
	return f.incrementOK, nil
}

func (f *fakeRepository) CreateRecord(ctx context.Context, record *models.SaleRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, record)
	return nil
}

func (f *fakeRepository) ListByOwner(ctx context.Context, owner string, limit int, cursor *pagination.Cursor) ([]models.SaleRecord, error) {
	f.listLimit = limit
	f.listCursor = cursor
	if limit > 0 && len(f.listRecords) > limit {
		return f.listRecords[:limit], nil
	}
	return f.listRecords, nil
}

func (f *fakeRepository) NetSoldByProduct(ctx context.Context, owner string) ([]NetSoldRow, error) {
	return f.netRows, nil
}

// fakeTxRunner mimics db.Client.WithTx: fn errors mean the transaction rolled
// back and nothing committed.
type fakeTxRunner struct {
	rolledBack bool
}

func (f *fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if err := fn(nil); err != nil {
		f.rolledBack = true
		return err
	}
	return nil
}

func newTestService(t *testing.T, repo Repository) (Service, *fakeTxRunner) {
	t.Helper()
	runner := &fakeTxRunner{}
	svc, err := NewService(repo, runner)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc, runner
}

func testProduct(stock int) *models.Product {
	return &models.Product{
		ID:    uuid.New(),
		Owner: "kevin",
		Name:  "americano",
		Price: decimal.RequireFromString("10.00"),
		Stock: stock,
	}
}

func TestService_RecordSale(t *testing.T) {
	repo := &fakeRepository{product: testProduct(5), decrementOK: true}
	svc, _ := newTestService(t, repo)

	entry, err := svc.RecordSale(context.Background(), "kevin", RecordEntryInput{
		ProductID: repo.product.ID,
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("RecordSale error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected exactly one ledger entry, got %d", len(repo.created))
	}
	if entry.Type != enums.SaleTypeSale {
		t.Fatalf("expected sale entry, got %s", entry.Type)
	}
	if entry.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", entry.Quantity)
	}
	if entry.ProductName != "americano" {
		t.Fatalf("expected snapshotted product name, got %q", entry.ProductName)
	}
	if !entry.UnitPrice.Equal(repo.product.Price) {
		t.Fatalf("expected unit price to default to product price, got %s", entry.UnitPrice)
	}
	if entry.ProductID == nil || *entry.ProductID != repo.product.ID {
		t.Fatalf("entry should reference the product")
	}
}

func TestService_RecordSaleDefaultsQuantityToOne(t *testing.T) {
	repo := &fakeRepository{product: testProduct(5)}
	repo.decrementFn = func(quantity int) (bool, error) {
		if quantity != 1 {
			t.Fatalf("expected default quantity 1, got %d", quantity)
		}
		return true, nil
	}
	svc, _ := newTestService(t, repo)

	if _, err := svc.RecordSale(context.Background(), "kevin", RecordEntryInput{ProductID: repo.product.ID}); err != nil {
		t.Fatalf("RecordSale error: %v", err)
	}
}

func TestService_RecordSaleInsufficientStock(t *testing.T) {
	repo := &fakeRepository{product: testProduct(1), decrementOK: false}
	svc, runner := newTestService(t, repo)

	_, err := svc.RecordSale(context.Background(), "kevin", RecordEntryInput{
		ProductID: repo.product.ID,
		Quantity:  3,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("no ledger entry may exist after a rejected sale")
	}
	if !runner.rolledBack {
		t.Fatalf("expected the transaction to roll back")
	}
}

func TestService_RecordSaleProductMissing(t *testing.T) {
	repo := &fakeRepository{findErr: gorm.ErrRecordNotFound}
	svc, _ := newTestService(t, repo)

	_, err := svc.RecordSale(context.Background(), "kevin", RecordEntryInput{ProductID: uuid.New()})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestService_RecordSaleRollsBackWhenInsertFails(t *testing.T) {
	repo := &fakeRepository{
		product:     testProduct(5),
		decrementOK: true,
		createErr:   errors.New("insert failed"),
	}
	svc, runner := newTestService(t, repo)

	_, err := svc.RecordSale(context.Background(), "kevin", RecordEntryInput{ProductID: repo.product.ID})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if !runner.rolledBack {
		t.Fatalf("stock decrement must not survive a failed ledger insert")
	}
}

func TestService_RecordUnsale(t *testing.T) {
	repo := &fakeRepository{product: testProduct(0), incrementOK: true}
	svc, _ := newTestService(t, repo)

	price := decimal.RequireFromString("12.50")
	entry, err := svc.RecordUnsale(context.Background(), "aya", RecordEntryInput{
		ProductID: repo.product.ID,
		Quantity:  4,
		UnitPrice: &price,
	})
	if err != nil {
		t.Fatalf("RecordUnsale error: %v", err)
	}
	if entry.Type != enums.SaleTypeUnsale {
		t.Fatalf("expected unsale entry, got %s", entry.Type)
	}
	if !entry.UnitPrice.Equal(price) {
		t.Fatalf("expected explicit unit price, got %s", entry.UnitPrice)
	}
}

func TestService_RecordValidation(t *testing.T) {
	repo := &fakeRepository{product: testProduct(5), decrementOK: true}
	svc, _ := newTestService(t, repo)
	negative := decimal.RequireFromString("-1")

	tests := []struct {
		name  string
		owner string
		input RecordEntryInput
	}{
		{name: "missing owner", owner: "", input: RecordEntryInput{ProductID: uuid.New()}},
		{name: "missing product id", owner: "kevin", input: RecordEntryInput{}},
		{name: "negative quantity", owner: "kevin", input: RecordEntryInput{ProductID: uuid.New(), Quantity: -1}},
		{name: "negative unit price", owner: "kevin", input: RecordEntryInput{ProductID: uuid.New(), UnitPrice: &negative}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RecordSale(context.Background(), tc.owner, tc.input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error for %s, got %v", tc.name, err)
			}
		})
	}
	if len(repo.created) != 0 {
		t.Fatalf("validation failures must not reach the store")
	}
}

func TestService_AggregateSalesByProductClampsDisplay(t *testing.T) {
	productID := uuid.New()
	repo := &fakeRepository{netRows: []NetSoldRow{
		{ProductID: productID, ProductName: "americano", NetSold: 2},
		{ProductID: uuid.New(), ProductName: "latte", NetSold: -3},
	}}
	svc, _ := newTestService(t, repo)

	summaries, err := svc.AggregateSalesByProduct(context.Background(), "kevin")
	if err != nil {
		t.Fatalf("AggregateSalesByProduct error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].NetSold != 2 || summaries[0].DisplaySold != 2 {
		t.Fatalf("unexpected first summary: %+v", summaries[0])
	}
	if summaries[1].NetSold != -3 {
		t.Fatalf("raw net must be preserved, got %d", summaries[1].NetSold)
	}
	if summaries[1].DisplaySold != 0 {
		t.Fatalf("display value must clamp at zero, got %d", summaries[1].DisplaySold)
	}
}

func TestService_ListSalesLogFullLog(t *testing.T) {
	repo := &fakeRepository{listRecords: make([]models.SaleRecord, 3)}
	svc, _ := newTestService(t, repo)

	page, err := svc.ListSalesLog(context.Background(), "kevin", pagination.Params{})
	if err != nil {
		t.Fatalf("ListSalesLog error: %v", err)
	}
	if len(page.Records) != 3 {
		t.Fatalf("expected the full log, got %d records", len(page.Records))
	}
	if page.NextCursor != "" {
		t.Fatalf("full log must not page, got cursor %q", page.NextCursor)
	}
	if repo.listLimit != 0 {
		t.Fatalf("expected unbounded fetch, got limit %d", repo.listLimit)
	}
}

func TestService_ListSalesLogPaged(t *testing.T) {
	records := make([]models.SaleRecord, 3)
	for i := range records {
		records[i].ID = uuid.New()
	}
	repo := &fakeRepository{listRecords: records}
	svc, _ := newTestService(t, repo)

	page, err := svc.ListSalesLog(context.Background(), "kevin", pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("ListSalesLog error: %v", err)
	}
	if repo.listLimit != 3 {
		t.Fatalf("expected limit+1 fetch, got %d", repo.listLimit)
	}
	if len(page.Records) != 2 {
		t.Fatalf("expected 2 records on the page, got %d", len(page.Records))
	}
	if page.NextCursor == "" {
		t.Fatal("expected a next cursor when more entries exist")
	}

	cursor, err := pagination.ParseCursor(page.NextCursor)
	if err != nil {
		t.Fatalf("next cursor must round-trip: %v", err)
	}
	if cursor.ID != records[1].ID {
		t.Fatalf("cursor must point at the last returned entry")
	}
}

func TestService_ListSalesLogValidation(t *testing.T) {
	repo := &fakeRepository{}
	svc, _ := newTestService(t, repo)

	_, err := svc.ListSalesLog(context.Background(), "kevin", pagination.Params{Limit: -1})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.ListSalesLog(context.Background(), "kevin", pagination.Params{Cursor: "%%%"})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad cursor, got %v", err)
	}
}
