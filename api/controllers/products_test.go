package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ayakevin/shopledger-backend/internal/products"
	pkgerrors "github.com/ayakevin/shopledger-backend/pkg/errors"
)

type stubProductService struct {
	createFn func(ctx context.Context, owner string, input products.CreateProductInput) (*products.ProductDTO, error)
	updateFn func(ctx context.Context, owner string, productID uuid.UUID, input products.UpdateProductInput) (*products.ProductDTO, error)
	deleteFn func(ctx context.Context, owner string, productID uuid.UUID) error
	listFn   func(ctx context.Context, owner string, sort products.Sort) ([]products.ProductDTO, error)
}

func (s *stubProductService) CreateProduct(ctx context.Context, owner string, input products.CreateProductInput) (*products.ProductDTO, error) {
	return s.createFn(ctx, owner, input)
}

func (s *stubProductService) UpdateProduct(ctx context.Context, owner string, productID uuid.UUID, input products.UpdateProductInput) (*products.ProductDTO, error) {
	return s.updateFn(ctx, owner, productID, input)
}

func (s *stubProductService) DeleteProduct(ctx context.Context, owner string, productID uuid.UUID) error {
	return s.deleteFn(ctx, owner, productID)
}

func (s *stubProductService) ListProducts(ctx context.Context, owner string, sort products.Sort) ([]products.ProductDTO, error) {
	return s.listFn(ctx, owner, sort)
}

func TestCreateProductController(t *testing.T) {
	svc := &stubProductService{
		createFn: func(ctx context.Context, owner string, input products.CreateProductInput) (*products.ProductDTO, error) {
			if input.Name != "americano" {
				t.Fatalf("unexpected name %q", input.Name)
			}
			if !input.Price.Equal(decimal.RequireFromString("4.50")) {
				t.Fatalf("unexpected price %s", input.Price)
			}
			return &products.ProductDTO{
				ID:    uuid.New(),
				Owner: owner,
				Name:  input.Name,
				Price: input.Price,
				Stock: input.Stock,
			}, nil
		},
	}

	body := `{"name":"americano","price":"4.50","stock":10}`
	req := newOwnerRequest(t, http.MethodPost, "/products", "kevin", body, nil)
	rec := httptest.NewRecorder()

	CreateProduct(svc, testLogger())(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data products.ProductDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Data.Name != "americano" {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestCreateProductControllerValidation(t *testing.T) {
	svc := &stubProductService{
		createFn: func(ctx context.Context, owner string, input products.CreateProductInput) (*products.ProductDTO, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	tests := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"price":"1.00"}`},
		{name: "negative stock", body: `{"name":"americano","stock":-1}`},
		{name: "unknown field", body: `{"name":"americano","sku":"X1"}`},
		{name: "bad category id", body: `{"name":"americano","category_id":"nope"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := newOwnerRequest(t, http.MethodPost, "/products", "kevin", tc.body, nil)
			rec := httptest.NewRecorder()

			CreateProduct(svc, testLogger())(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUpdateProductController(t *testing.T) {
	productID := uuid.New()
	svc := &stubProductService{
		updateFn: func(ctx context.Context, owner string, id uuid.UUID, input products.UpdateProductInput) (*products.ProductDTO, error) {
			if id != productID {
				t.Fatalf("unexpected product id %s", id)
			}
			if input.Name == nil || *input.Name != "latte" {
				t.Fatalf("expected name update, got %+v", input)
			}
			if !input.ClearCategory {
				t.Fatal("expected clear_category to pass through")
			}
			return &products.ProductDTO{ID: id, Owner: owner, Name: *input.Name}, nil
		},
	}

	body := `{"name":"latte","clear_category":true}`
	req := newOwnerRequest(t, http.MethodPatch, "/products/"+productID.String(), "aya", body, map[string]string{"productId": productID.String()})
	rec := httptest.NewRecorder()

	UpdateProduct(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteProductController(t *testing.T) {
	productID := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := &stubProductService{
			deleteFn: func(ctx context.Context, owner string, id uuid.UUID) error {
				return nil
			},
		}

		req := newOwnerRequest(t, http.MethodDelete, "/products/"+productID.String(), "kevin", "", map[string]string{"productId": productID.String()})
		rec := httptest.NewRecorder()

		DeleteProduct(svc, testLogger())(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc := &stubProductService{
			deleteFn: func(ctx context.Context, owner string, id uuid.UUID) error {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			},
		}

		req := newOwnerRequest(t, http.MethodDelete, "/products/"+productID.String(), "kevin", "", map[string]string{"productId": productID.String()})
		rec := httptest.NewRecorder()

		DeleteProduct(svc, testLogger())(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		apiErr := decodeError(t, rec.Body)
		if apiErr.Code != string(pkgerrors.CodeNotFound) {
			t.Fatalf("unexpected error code %q", apiErr.Code)
		}
	})
}

func TestListProductsController(t *testing.T) {
	svc := &stubProductService{
		listFn: func(ctx context.Context, owner string, sort products.Sort) ([]products.ProductDTO, error) {
			if sort != products.SortCategory {
				t.Fatalf("expected category sort, got %q", sort)
			}
			return []products.ProductDTO{{ID: uuid.New(), Owner: owner, Name: "americano"}}, nil
		},
	}

	req := newOwnerRequest(t, http.MethodGet, "/products?sort=category", "kevin", "", nil)
	rec := httptest.NewRecorder()

	ListProducts(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListProductsControllerBadSort(t *testing.T) {
	svc := &stubProductService{
		listFn: func(ctx context.Context, owner string, sort products.Sort) ([]products.ProductDTO, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	req := newOwnerRequest(t, http.MethodGet, "/products?sort=price", "kevin", "", nil)
	rec := httptest.NewRecorder()

	ListProducts(svc, testLogger())(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
