package handler

import (
	"log/slog"

	"warranty/internal/delivery/api/response"
	"warranty/internal/domain/entity"
	"warranty/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CustomerHandlerParams holds dependencies for CustomerHandler, injected by Fx.
type CustomerHandlerParams struct {
	fx.In

	CustomerUC usecase.CustomerUsecase
	Logger     *slog.Logger
}

// CustomerHandler serves the store's customers.
type CustomerHandler struct {
	customerUC usecase.CustomerUsecase
	logger     *slog.Logger
}

// NewCustomerHandler is the constructor for CustomerHandler
func NewCustomerHandler(params CustomerHandlerParams) *CustomerHandler {
	return &CustomerHandler{
		customerUC: params.CustomerUC,
		logger:     params.Logger,
	}
}

// CustomerRequest carries customer fields.
type CustomerRequest struct {
	CustomerName string `json:"customer_name" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	Address      string `json:"address"`
	GSTNumber    string `json:"gst_number"`
}

func (r *CustomerRequest) input() *usecase.CustomerInput {
	return &usecase.CustomerInput{
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Email:        r.Email,
		Address:      r.Address,
		GSTNumber:    r.GSTNumber,
	}
}

// CreateCustomer adds a customer to the current store
func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req CustomerRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	customer, err := h.customerUC.Create(c.Request().Context(), principal, req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, customer)
}

// ListCustomers returns a page of customers
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.customerUC.List(c.Request().Context(), principal, pageRequest(c, entity.DefaultPageLimit))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, page)
}

// GetCustomer returns one customer
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	customerID, err := pathID(c, "customer")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	customer, err := h.customerUC.Get(c.Request().Context(), principal, customerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, customer)
}

// UpdateCustomer edits a customer
func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	customerID, err := pathID(c, "customer")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req CustomerRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	customer, err := h.customerUC.Update(c.Request().Context(), principal, customerID, req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, customer)
}
