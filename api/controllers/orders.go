package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/marioskal/eshop-backend/api/middleware"
	"github.com/marioskal/eshop-backend/api/responses"
	"github.com/marioskal/eshop-backend/api/validators"
	customersvc "github.com/marioskal/eshop-backend/internal/customers"
	ordersvc "github.com/marioskal/eshop-backend/internal/orders"
	pkgerrors "github.com/marioskal/eshop-backend/pkg/errors"
	"github.com/marioskal/eshop-backend/pkg/logger"
)

type orderItemRequest struct {
	SKU      string `json:"sku" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type createOrderRequest struct {
	Status string             `json:"status,omitempty"`
	Items  []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderCreate places an order for the authenticated customer. The customer
// is always derived from the access token, never from the payload.
func OrderCreate(orders ordersvc.Service, customers customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if orders == nil || customers == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := customers.GetByUserUUID(r.Context(), middleware.UserUUIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ordersvc.PlaceOrderInput{
			CustomerUUID: customer.UUID,
			Status:       payload.Status,
			Items:        make([]ordersvc.ItemInput, 0, len(payload.Items)),
		}
		for _, item := range payload.Items {
			input.Items = append(input.Items, ordersvc.ItemInput{SKU: item.SKU, Quantity: item.Quantity})
		}

		order, err := orders.PlaceOrder(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrderList returns the authenticated customer's orders, newest first.
func OrderList(orders ordersvc.Service, customers customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if orders == nil || customers == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		customer, err := customers.GetByUserUUID(r.Context(), middleware.UserUUIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := orders.ListByCustomerUUID(r.Context(), customer.UUID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

// OrderDetail returns a single order by numeric ID or public identifier.
// Orders are only visible to the customer that placed them.
func OrderDetail(orders ordersvc.Service, customers customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if orders == nil || customers == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		key := chi.URLParam(r, "orderId")
		var err error
		var order *ordersvc.OrderDTO
		if id, convErr := strconv.ParseInt(key, 10, 64); convErr == nil {
			order, err = orders.GetByID(r.Context(), id)
		} else {
			order, err = orders.GetByUUID(r.Context(), key)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := customers.GetByUserUUID(r.Context(), middleware.UserUUIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if order.CustomerUUID != customer.UUID {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to the authenticated customer"))
			return
		}

		responses.WriteSuccess(w, order)
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderStatusUpdate moves an order to a new lifecycle stage.
func OrderStatusUpdate(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "orderUuid"), payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}
