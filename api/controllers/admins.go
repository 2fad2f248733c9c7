package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marioskal/eshop-backend/api/middleware"
	"github.com/marioskal/eshop-backend/api/responses"
	"github.com/marioskal/eshop-backend/api/validators"
	adminsvc "github.com/marioskal/eshop-backend/internal/admins"
	pkgerrors "github.com/marioskal/eshop-backend/pkg/errors"
	"github.com/marioskal/eshop-backend/pkg/logger"
)

type createAdminRequest struct {
	UserUUID  string `json:"user_uuid" validate:"required,uuid4"`
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname" validate:"required"`
}

// AdminCreate attaches an admin profile to an existing admin user.
func AdminCreate(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		var payload createAdminRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		admin, err := svc.CreateProfile(r.Context(), adminsvc.CreateProfileInput{
			UserUUID:  payload.UserUUID,
			Firstname: payload.Firstname,
			Lastname:  payload.Lastname,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, admin)
	}
}

// AdminProfile returns the profile of the authenticated admin.
func AdminProfile(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		admin, err := svc.GetByUserUUID(r.Context(), middleware.UserUUIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, admin)
	}
}

type updateAdminRequest struct {
	Firstname *string `json:"firstname,omitempty"`
	Lastname  *string `json:"lastname,omitempty"`
}

// AdminUpdate mutates an admin profile.
func AdminUpdate(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		var payload updateAdminRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		admin, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "adminUuid"), adminsvc.UpdateProfileInput{
			Firstname: payload.Firstname,
			Lastname:  payload.Lastname,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, admin)
	}
}
