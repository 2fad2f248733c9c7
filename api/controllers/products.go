package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/marioskal/eshop-backend/api/responses"
	"github.com/marioskal/eshop-backend/api/validators"
	productsvc "github.com/marioskal/eshop-backend/internal/products"
	pkgerrors "github.com/marioskal/eshop-backend/pkg/errors"
	"github.com/marioskal/eshop-backend/pkg/logger"
)

const maxMultipartMemory = 32 << 20

type createProductForm struct {
	Name        string `validate:"required"`
	SKU         string `validate:"required"`
	Price       string `validate:"required"`
	Quantity    string `validate:"required"`
	Description string
	Brand       string `validate:"required"`
	Category    string `validate:"required"`
	IsActive    string
}

// ProductCreate inserts a listing from a multipart form so the photo can
// ride along with the fields.
func ProductCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		form := createProductForm{
			Name:        strings.TrimSpace(r.FormValue("name")),
			SKU:         strings.TrimSpace(r.FormValue("sku")),
			Price:       strings.TrimSpace(r.FormValue("price")),
			Quantity:    strings.TrimSpace(r.FormValue("quantity")),
			Description: strings.TrimSpace(r.FormValue("description")),
			Brand:       strings.TrimSpace(r.FormValue("brand")),
			Category:    strings.TrimSpace(r.FormValue("category")),
			IsActive:    strings.TrimSpace(r.FormValue("is_active")),
		}
		if err := validators.ValidateStruct(form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := form.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if file, header, ferr := r.FormFile("photo"); ferr == nil {
			defer file.Close()
			product, err = svc.AttachPhoto(r.Context(), product.UUID, productsvc.PhotoUpload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Content:     file,
			})
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func (f createProductForm) toInput() (productsvc.CreateProductInput, error) {
	price, err := decimal.NewFromString(f.Price)
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}
	quantity, err := strconv.Atoi(f.Quantity)
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid quantity")
	}

	input := productsvc.CreateProductInput{
		Name:        f.Name,
		SKU:         f.SKU,
		Price:       price,
		Quantity:    quantity,
		Description: f.Description,
		Brand:       f.Brand,
		Category:    f.Category,
	}
	if f.IsActive != "" {
		active, err := strconv.ParseBool(f.IsActive)
		if err != nil {
			return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid is_active")
		}
		input.IsActive = &active
	}
	return input, nil
}

// ProductList returns a filtered page of listings.
func ProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		req, err := validators.ParsePageRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter, err := productFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListProducts(r.Context(), filter, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// ProductListAll returns every listing matching the filter, unpaginated.
func ProductListAll(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		filter, err := productFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListAllProducts(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

func productFilter(r *http.Request) (productsvc.ListFilter, error) {
	isActive, err := validators.ParseQueryBool(r, "is_active")
	if err != nil {
		return productsvc.ListFilter{}, err
	}
	inStock, err := validators.ParseQueryBool(r, "in_stock")
	if err != nil {
		return productsvc.ListFilter{}, err
	}
	return productsvc.ListFilter{
		Name:     validators.QueryString(r, "name"),
		Brand:    validators.QueryString(r, "brand"),
		Category: validators.QueryString(r, "category"),
		IsActive: isActive,
		InStock:  inStock,
	}, nil
}

// ProductDetail returns a single listing by numeric ID or public identifier.
func ProductDetail(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		key := chi.URLParam(r, "productId")
		var err error
		var product *productsvc.ProductDTO
		if id, convErr := strconv.ParseInt(key, 10, 64); convErr == nil {
			product, err = svc.GetByID(r.Context(), id)
		} else {
			product, err = svc.GetByUUID(r.Context(), key)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductBySKU returns a single listing by natural key.
func ProductBySKU(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		product, err := svc.GetBySKU(r.Context(), chi.URLParam(r, "sku"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

type updateProductRequest struct {
	Name        *string `json:"name,omitempty"`
	SKU         *string `json:"sku,omitempty"`
	Price       *string `json:"price,omitempty"`
	Quantity    *int    `json:"quantity,omitempty" validate:"omitempty,min=0"`
	Description *string `json:"description,omitempty"`
	Brand       *string `json:"brand,omitempty"`
	Category    *string `json:"category,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// ProductUpdate mutates a listing.
func ProductUpdate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := productsvc.UpdateProductInput{
			Name:        payload.Name,
			SKU:         payload.SKU,
			Quantity:    payload.Quantity,
			Description: payload.Description,
			Brand:       payload.Brand,
			Category:    payload.Category,
			IsActive:    payload.IsActive,
		}
		if payload.Price != nil {
			price, err := decimal.NewFromString(*payload.Price)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
				return
			}
			input.Price = &price
		}

		product, err := svc.UpdateProduct(r.Context(), chi.URLParam(r, "productUuid"), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductDelete removes a listing and its stored photo.
func ProductDelete(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		if err := svc.DeleteProduct(r.Context(), chi.URLParam(r, "productUuid")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ProductPhotoUpload stores a new photo for an existing listing.
func ProductPhotoUpload(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		file, header, err := r.FormFile("photo")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "photo file is required"))
			return
		}
		defer file.Close()

		product, err := svc.AttachPhoto(r.Context(), chi.URLParam(r, "productUuid"), productsvc.PhotoUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     file,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
