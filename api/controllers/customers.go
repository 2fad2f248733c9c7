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

type createCustomerRequest struct {
	UserUUID  string `json:"user_uuid" validate:"required"`
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname" validate:"required"`
}

// CustomerCreate attaches a customer profile to an existing user.
func CustomerCreate(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		var payload createCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.CreateCustomer(r.Context(), customersvc.CreateCustomerInput{
			UserUUID:  payload.UserUUID,
			Firstname: payload.Firstname,
			Lastname:  payload.Lastname,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}

// CustomerList returns a filtered page of profiles for back-office screens.
func CustomerList(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		req, err := validators.ParsePageRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := customersvc.ListFilter{
			Firstname: validators.QueryString(r, "firstname"),
			Lastname:  validators.QueryString(r, "lastname"),
			Username:  validators.QueryString(r, "username"),
		}

		page, err := svc.ListCustomers(r.Context(), filter, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// CustomerDetail returns a single profile by public identifier.
func CustomerDetail(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		customer, err := svc.GetByUUID(r.Context(), chi.URLParam(r, "customerUuid"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, customer)
	}
}

// CustomerProfile returns the profile owned by the authenticated user.
func CustomerProfile(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		userUUID := middleware.UserUUIDFromContext(r.Context())
		if userUUID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		customer, err := svc.GetByUserUUID(r.Context(), userUUID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, customer)
	}
}

type updateCustomerRequest struct {
	Firstname *string `json:"firstname,omitempty"`
	Lastname  *string `json:"lastname,omitempty"`
}

// CustomerUpdate mutates the names on a profile.
func CustomerUpdate(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		var payload updateCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.UpdateCustomer(r.Context(), chi.URLParam(r, "customerUuid"), customersvc.UpdateCustomerInput{
			Firstname: payload.Firstname,
			Lastname:  payload.Lastname,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, customer)
	}
}

// CustomerDelete removes a profile and its contact records.
func CustomerDelete(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		if err := svc.DeleteCustomer(r.Context(), chi.URLParam(r, "customerUuid")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
