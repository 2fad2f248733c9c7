package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marioskal/eshop-backend/api/middleware"
	"github.com/marioskal/eshop-backend/api/responses"
	"github.com/marioskal/eshop-backend/api/validators"
	customersvc "github.com/marioskal/eshop-backend/internal/customers"
	pkgerrors "github.com/marioskal/eshop-backend/pkg/errors"
	"github.com/marioskal/eshop-backend/pkg/logger"
)

type customerInfoRequest struct {
	PhoneNumber  string `json:"phone_number" validate:"required"`
	Country      string `json:"country" validate:"required"`
	Region       string `json:"region" validate:"required"`
	City         string `json:"city" validate:"required"`
	Street       string `json:"street" validate:"required"`
	StreetNumber string `json:"street_number" validate:"required"`
	ZipCode      string `json:"zip_code" validate:"required,len=5,numeric"`
}

func (p customerInfoRequest) toInput() customersvc.InfoInput {
	return customersvc.InfoInput{
		PhoneNumber:  p.PhoneNumber,
		Country:      p.Country,
		Region:       p.Region,
		City:         p.City,
		Street:       p.Street,
		StreetNumber: p.StreetNumber,
		ZipCode:      p.ZipCode,
	}
}

// ownCustomerUUID resolves the authenticated user's customer profile and
// checks it against the customerUuid path parameter. Shipping and card
// records can only be touched by the customer that owns them.
func ownCustomerUUID(r *http.Request, svc customersvc.Service) (string, error) {
	own, err := svc.GetByUserUUID(r.Context(), middleware.UserUUIDFromContext(r.Context()))
	if err != nil {
		return "", err
	}
	target := chi.URLParam(r, "customerUuid")
	if own.UUID != target {
		return "", pkgerrors.New(pkgerrors.CodeForbidden, "customer record does not belong to the authenticated user")
	}
	return target, nil
}

// CustomerInfoCreate attaches a shipping address to a customer.
func CustomerInfoCreate(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		customerUUID, err := ownCustomerUUID(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload customerInfoRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		info, err := svc.CreateInfo(r.Context(), customerUUID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, info)
	}
}

// CustomerInfoDetail returns the shipping address attached to a customer.
func CustomerInfoDetail(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		customerUUID, err := ownCustomerUUID(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		info, err := svc.GetInfo(r.Context(), customerUUID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, info)
	}
}

// CustomerInfoUpdate replaces the shipping address fields.
func CustomerInfoUpdate(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		customerUUID, err := ownCustomerUUID(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload customerInfoRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		info, err := svc.UpdateInfo(r.Context(), customerUUID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, info)
	}
}

// CustomerInfoDelete removes the shipping address from a customer.
func CustomerInfoDelete(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		customerUUID, err := ownCustomerUUID(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteInfo(r.Context(), customerUUID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type paymentInfoRequest struct {
	Card           string `json:"card" validate:"required,len=16,numeric"`
	CardName       string `json:"card_name" validate:"required"`
	ExpiredDate    string `json:"expired_date" validate:"required"`
	CardValidation string `json:"card_validation" validate:"required,len=3,numeric"`
}

func (p paymentInfoRequest) toInput() customersvc.PaymentInfoInput {
	return customersvc.PaymentInfoInput{
		Card:           p.Card,
		CardName:       p.CardName,
		ExpiredDate:    p.ExpiredDate,
		CardValidation: p.CardValidation,
	}
}

// PaymentInfoCreate attaches card details to a customer.
func PaymentInfoCreate(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		customerUUID, err := ownCustomerUUID(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload paymentInfoRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.CreatePaymentInfo(r.Context(), customerUUID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

// PaymentInfoDetail returns the card details attached to a customer.
func PaymentInfoDetail(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		customerUUID, err := ownCustomerUUID(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.GetPaymentInfo(r.Context(), customerUUID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, payment)
	}
}

// PaymentInfoUpdate replaces the stored card details.
func PaymentInfoUpdate(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		customerUUID, err := ownCustomerUUID(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload paymentInfoRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.UpdatePaymentInfo(r.Context(), customerUUID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, payment)
	}
}

// PaymentInfoDelete removes the card details from a customer.
func PaymentInfoDelete(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		customerUUID, err := ownCustomerUUID(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeletePaymentInfo(r.Context(), customerUUID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
