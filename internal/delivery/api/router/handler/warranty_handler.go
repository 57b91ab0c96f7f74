package handler

import (
	"log/slog"

	"warranty/internal/delivery/api/response"
	"warranty/internal/domain/entity"
	"warranty/internal/domain/repository"
	"warranty/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// WarrantyHandlerParams holds dependencies for WarrantyHandler, injected by Fx.
type WarrantyHandlerParams struct {
	fx.In

	WarrantyUC usecase.WarrantyUsecase
	Logger     *slog.Logger
}

// WarrantyHandler serves warranty issuance and lookup.
type WarrantyHandler struct {
	warrantyUC usecase.WarrantyUsecase
	logger     *slog.Logger
}

// NewWarrantyHandler is the constructor for WarrantyHandler
func NewWarrantyHandler(params WarrantyHandlerParams) *WarrantyHandler {
	return &WarrantyHandler{
		warrantyUC: params.WarrantyUC,
		logger:     params.Logger,
	}
}

// IssueWarrantyRequest binds a product item to a customer.
type IssueWarrantyRequest struct {
	ProductItemID string `json:"product_id" validate:"required,uuid"`
	CustomerID    string `json:"customer_id" validate:"required,uuid"`
	WarrantyStart Date   `json:"warranty_start"`
}

// UpdateWarrantyRequest changes the status and/or the start date.
type UpdateWarrantyRequest struct {
	Status        *entity.WarrantyStatus `json:"status" validate:"omitempty,oneof=active expired claimed void"`
	WarrantyStart *Date                  `json:"warranty_start"`
}

// IssueWarranty creates a warranty with its QR code and certificate
func (h *WarrantyHandler) IssueWarranty(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req IssueWarrantyRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	warranty, err := h.warrantyUC.Issue(c.Request().Context(), principal, &usecase.IssueWarrantyInput{
		ProductItemID: uuid.MustParse(req.ProductItemID),
		CustomerID:    uuid.MustParse(req.CustomerID),
		WarrantyStart: req.WarrantyStart.Time,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, warranty)
}

// ListWarranties returns a page of warranties, optionally filtered by status
func (h *WarrantyHandler) ListWarranties(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	filter := repository.WarrantyFilter{Status: entity.WarrantyStatus(c.QueryParam("status"))}
	page, err := h.warrantyUC.List(c.Request().Context(), principal, filter, pageRequest(c, entity.DefaultPageLimit))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, page)
}

// GetWarranty returns one warranty
func (h *WarrantyHandler) GetWarranty(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	warrantyID, err := pathID(c, "warranty")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	warranty, err := h.warrantyUC.Get(c.Request().Context(), principal, warrantyID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, warranty)
}

// GetWarrantiesBySerial returns the warranties of a product serial
func (h *WarrantyHandler) GetWarrantiesBySerial(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	warranties, err := h.warrantyUC.GetBySerial(c.Request().Context(), principal, c.Param("serial"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, warranties)
}

// VerifyWarranty is the public lookup behind the certificate QR code
func (h *WarrantyHandler) VerifyWarranty(c echo.Context) error {
	verification, err := h.warrantyUC.Verify(c.Request().Context(), c.Param("serial"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, verification)
}

// UpdateWarranty changes a warranty's status or start date
func (h *WarrantyHandler) UpdateWarranty(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	warrantyID, err := pathID(c, "warranty")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateWarrantyRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	warranty, err := h.warrantyUC.Update(c.Request().Context(), principal, warrantyID, &usecase.UpdateWarrantyInput{
		Status:        req.Status,
		WarrantyStart: req.WarrantyStart.Ptr(),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, warranty)
}
