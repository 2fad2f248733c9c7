package controllers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	productsvc "github.com/marioskal/eshop-backend/internal/products"
	"github.com/marioskal/eshop-backend/pkg/pagination"
)

type stubProductService struct {
	created    *productsvc.CreateProductInput
	attachedTo string
	upload     *productsvc.PhotoUpload
	listFilter *productsvc.ListFilter
}

func (s *stubProductService) CreateProduct(ctx context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	s.created = &input
	return &productsvc.ProductDTO{UUID: "p-1", Name: input.Name, SKU: input.SKU}, nil
}

func (s *stubProductService) GetByID(ctx context.Context, id int64) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: id}, nil
}

func (s *stubProductService) GetByUUID(ctx context.Context, productUUID string) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{UUID: productUUID}, nil
}

func (s *stubProductService) GetBySKU(ctx context.Context, sku string) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{SKU: sku}, nil
}

func (s *stubProductService) ListProducts(ctx context.Context, filter productsvc.ListFilter, req pagination.Request) (*pagination.Page[productsvc.ProductDTO], error) {
	s.listFilter = &filter
	return &pagination.Page[productsvc.ProductDTO]{Content: []productsvc.ProductDTO{}}, nil
}

func (s *stubProductService) ListAllProducts(ctx context.Context, filter productsvc.ListFilter) ([]productsvc.ProductDTO, error) {
	s.listFilter = &filter
	return []productsvc.ProductDTO{}, nil
}

func (s *stubProductService) UpdateProduct(ctx context.Context, productUUID string, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	panic("unimplemented")
}

func (s *stubProductService) DeleteProduct(ctx context.Context, productUUID string) error {
	panic("unimplemented")
}

func (s *stubProductService) AttachPhoto(ctx context.Context, productUUID string, upload productsvc.PhotoUpload) (*productsvc.ProductDTO, error) {
	s.attachedTo = productUUID
	s.upload = &upload
	return &productsvc.ProductDTO{UUID: productUUID}, nil
}

func buildProductForm(t *testing.T, fields map[string]string, photoName string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("writing field %s: %v", key, err)
		}
	}
	if photoName != "" {
		part, err := writer.CreateFormFile("photo", photoName)
		if err != nil {
			t.Fatalf("creating form file: %v", err)
		}
		if _, err := io.WriteString(part, "fake image bytes"); err != nil {
			t.Fatalf("writing form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestProductCreate(t *testing.T) {
	logg := testLogger()

	t.Run("with photo", func(t *testing.T) {
		stub := &stubProductService{}
		body, contentType := buildProductForm(t, map[string]string{
			"name":     "ThinkPad X1",
			"sku":      "TP-X1",
			"price":    "1499.99",
			"quantity": "5",
			"brand":    "Acme",
			"category": "Laptops",
		}, "x1.jpg")
		req := httptest.NewRequest(http.MethodPost, "/admin/v1/products", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		ProductCreate(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.created == nil {
			t.Fatal("expected CreateProduct to be invoked")
		}
		if stub.created.Price.String() != "1499.99" {
			t.Fatalf("expected decimal price, got %s", stub.created.Price)
		}
		if stub.created.Quantity != 5 {
			t.Fatalf("expected quantity 5, got %d", stub.created.Quantity)
		}
		if stub.upload == nil || stub.upload.Filename != "x1.jpg" {
			t.Fatal("expected photo to be attached")
		}
		if stub.attachedTo != "p-1" {
			t.Fatalf("expected photo attached to created product, got %q", stub.attachedTo)
		}
	})

	t.Run("without photo", func(t *testing.T) {
		stub := &stubProductService{}
		body, contentType := buildProductForm(t, map[string]string{
			"name":     "ThinkPad T14",
			"sku":      "TP-T14",
			"price":    "999.00",
			"quantity": "0",
			"brand":    "Acme",
			"category": "Laptops",
		}, "")
		req := httptest.NewRequest(http.MethodPost, "/admin/v1/products", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		ProductCreate(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.upload != nil {
			t.Fatal("expected no photo attachment")
		}
	})

	t.Run("invalid price", func(t *testing.T) {
		stub := &stubProductService{}
		body, contentType := buildProductForm(t, map[string]string{
			"name":     "ThinkPad X1",
			"sku":      "TP-X1",
			"price":    "lots",
			"quantity": "5",
			"brand":    "Acme",
			"category": "Laptops",
		}, "")
		req := httptest.NewRequest(http.MethodPost, "/admin/v1/products", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		ProductCreate(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if stub.created != nil {
			t.Fatal("expected CreateProduct not to be invoked")
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		body, contentType := buildProductForm(t, map[string]string{
			"name":     "ThinkPad X1",
			"price":    "1499.99",
			"quantity": "5",
			"brand":    "Acme",
			"category": "Laptops",
		}, "")
		req := httptest.NewRequest(http.MethodPost, "/admin/v1/products", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		ProductCreate(&stubProductService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestProductListFilterParsing(t *testing.T) {
	logg := testLogger()

	t.Run("filters forwarded", func(t *testing.T) {
		stub := &stubProductService{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?name=think&brand=Acme&in_stock=true", nil)
		rec := httptest.NewRecorder()

		ProductList(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.listFilter == nil {
			t.Fatal("expected ListProducts to be invoked")
		}
		if stub.listFilter.Name == nil || *stub.listFilter.Name != "think" {
			t.Fatal("expected name filter to be forwarded")
		}
		if stub.listFilter.InStock == nil || !*stub.listFilter.InStock {
			t.Fatal("expected in_stock filter to be forwarded")
		}
	})

	t.Run("bad boolean rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?is_active=maybe", nil)
		rec := httptest.NewRecorder()

		ProductList(&stubProductService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
