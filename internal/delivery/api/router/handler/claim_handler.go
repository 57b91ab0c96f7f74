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

// ClaimHandlerParams holds dependencies for ClaimHandler, injected by Fx.
type ClaimHandlerParams struct {
	fx.In

	ClaimUC usecase.ClaimUsecase
	Logger  *slog.Logger
}

// ClaimHandler serves the claim workflow.
type ClaimHandler struct {
	claimUC usecase.ClaimUsecase
	logger  *slog.Logger
}

// NewClaimHandler is the constructor for ClaimHandler
func NewClaimHandler(params ClaimHandlerParams) *ClaimHandler {
	return &ClaimHandler{
		claimUC: params.ClaimUC,
		logger:  params.Logger,
	}
}

// FileClaimRequest opens a claim against a warranty.
type FileClaimRequest struct {
	WarrantyID  string           `json:"warranty_id" validate:"required,uuid"`
	ClaimType   entity.ClaimType `json:"claim_type" validate:"required,oneof=repair replacement refund"`
	Description string           `json:"description" validate:"required"`
	Attachments []string         `json:"attachments"`
}

// ClaimStatusRequest moves a claim through its workflow.
type ClaimStatusRequest struct {
	Status entity.ClaimStatus `json:"status" validate:"required,oneof=pending approved rejected completed"`
	Notes  string             `json:"notes"`
}

// TimelineNoteRequest appends a free-form event.
type TimelineNoteRequest struct {
	Action string `json:"action" validate:"required"`
	Notes  string `json:"notes"`
}

// FileClaim opens a claim
func (h *ClaimHandler) FileClaim(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req FileClaimRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	claim, err := h.claimUC.File(c.Request().Context(), principal, &usecase.FileClaimInput{
		WarrantyID:  uuid.MustParse(req.WarrantyID),
		ClaimType:   req.ClaimType,
		Description: req.Description,
		Attachments: req.Attachments,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, claim)
}

// ListClaims returns a page of claims, optionally filtered by status or warranty
func (h *ClaimHandler) ListClaims(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	warrantyID, err := queryID(c, "warranty_id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	filter := repository.ClaimFilter{
		Status:     entity.ClaimStatus(c.QueryParam("status")),
		WarrantyID: warrantyID,
	}
	page, err := h.claimUC.List(c.Request().Context(), principal, filter, pageRequest(c, entity.DefaultPageLimit))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, page)
}

// GetClaim returns one claim with its timeline
func (h *ClaimHandler) GetClaim(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	claimID, err := pathID(c, "claim")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	claim, err := h.claimUC.Get(c.Request().Context(), principal, claimID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, claim)
}

// UpdateClaimStatus applies a workflow transition
func (h *ClaimHandler) UpdateClaimStatus(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	claimID, err := pathID(c, "claim")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req ClaimStatusRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	claim, err := h.claimUC.UpdateStatus(c.Request().Context(), principal, claimID, &usecase.UpdateClaimStatusInput{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, claim)
}

// AppendTimelineNote records a note on the claim timeline
func (h *ClaimHandler) AppendTimelineNote(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	claimID, err := pathID(c, "claim")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req TimelineNoteRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	claim, err := h.claimUC.AppendTimelineNote(c.Request().Context(), principal, claimID, &usecase.TimelineNoteInput{
		Action: req.Action,
		Notes:  req.Notes,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, claim)
}
