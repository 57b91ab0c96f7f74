package handler

import (
	"log/slog"

	"warranty/internal/delivery/api/response"
	"warranty/internal/domain/entity"
	"warranty/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PartnerHandlerParams holds dependencies for PartnerHandler, injected by Fx.
type PartnerHandlerParams struct {
	fx.In

	PartnerUC usecase.PartnerUsecase
	Logger    *slog.Logger
}

// PartnerHandler serves the API-key authenticated integration endpoints.
// Every operation is scoped to the store of the presented key.
type PartnerHandler struct {
	partnerUC usecase.PartnerUsecase
	logger    *slog.Logger
}

// NewPartnerHandler is the constructor for PartnerHandler
func NewPartnerHandler(params PartnerHandlerParams) *PartnerHandler {
	return &PartnerHandler{
		partnerUC: params.PartnerUC,
		logger:    params.Logger,
	}
}

// PartnerWarrantyRequest registers a warranty for a serial.
type PartnerWarrantyRequest struct {
	ProductSerialNumber string `json:"product_serial_number" validate:"required"`
	CustomerName        string `json:"customer_name" validate:"required"`
	CustomerPhone       string `json:"customer_phone"`
	CustomerEmail       string `json:"customer_email" validate:"omitempty,email"`
	CustomerAddress     string `json:"customer_address"`
}

// PartnerClaimRequest files a claim for a serial's warranty.
type PartnerClaimRequest struct {
	ProductSerialNumber string           `json:"product_serial_number" validate:"required"`
	CustomerPhone       string           `json:"customer_phone"`
	CustomerEmail       string           `json:"customer_email" validate:"omitempty,email"`
	ClaimType           entity.ClaimType `json:"claim_type" validate:"required,oneof=repair replacement refund"`
	Description         string           `json:"description" validate:"required"`
	Attachments         []string         `json:"attachments"`
}

// ListProducts returns a page of the key store's product items
func (h *PartnerHandler) ListProducts(c echo.Context) error {
	key, err := currentStoreKey(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.partnerUC.ListProducts(c.Request().Context(), key.StoreID, c.QueryParam("serial_number"), pageRequest(c, entity.DefaultPageLimit))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, page)
}

// GetProduct returns one product item by serial
func (h *PartnerHandler) GetProduct(c echo.Context) error {
	key, err := currentStoreKey(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	item, err := h.partnerUC.GetProduct(c.Request().Context(), key.StoreID, c.Param("serial"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, item)
}

// RegisterWarranty registers a warranty, creating the customer when needed
func (h *PartnerHandler) RegisterWarranty(c echo.Context) error {
	key, err := currentStoreKey(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req PartnerWarrantyRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	warranty, err := h.partnerUC.RegisterWarranty(c.Request().Context(), key.StoreID, &usecase.PartnerWarrantyInput{
		ProductSerialNumber: req.ProductSerialNumber,
		CustomerName:        req.CustomerName,
		CustomerPhone:       req.CustomerPhone,
		CustomerEmail:       req.CustomerEmail,
		CustomerAddress:     req.CustomerAddress,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, warranty)
}

// FileClaim files a claim against the customer's warranty
func (h *PartnerHandler) FileClaim(c echo.Context) error {
	key, err := currentStoreKey(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req PartnerClaimRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	claim, err := h.partnerUC.FileClaim(c.Request().Context(), key.StoreID, &usecase.PartnerClaimInput{
		ProductSerialNumber: req.ProductSerialNumber,
		CustomerPhone:       req.CustomerPhone,
		CustomerEmail:       req.CustomerEmail,
		ClaimType:           req.ClaimType,
		Description:         req.Description,
		Attachments:         req.Attachments,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, claim)
}

// ListClaims returns the claims filed for a serial, narrowed by customer contact
func (h *PartnerHandler) ListClaims(c echo.Context) error {
	key, err := currentStoreKey(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	claims, err := h.partnerUC.ListClaims(c.Request().Context(), key.StoreID, &usecase.PartnerClaimQuery{
		ProductSerialNumber: c.Param("serial"),
		CustomerPhone:       c.QueryParam("customer_phone"),
		CustomerEmail:       c.QueryParam("customer_email"),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, claims)
}
