package handler

import (
	"log/slog"

	"warranty/internal/delivery/api/response"
	"warranty/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuditHandlerParams holds dependencies for AuditHandler, injected by Fx.
type AuditHandlerParams struct {
	fx.In

	AuditUC usecase.AuditUsecase
	Logger  *slog.Logger
}

// AuditHandler serves the audit trail.
type AuditHandler struct {
	auditUC usecase.AuditUsecase
	logger  *slog.Logger
}

// NewAuditHandler is the constructor for AuditHandler
func NewAuditHandler(params AuditHandlerParams) *AuditHandler {
	return &AuditHandler{
		auditUC: params.AuditUC,
		logger:  params.Logger,
	}
}

// ListAuditLogs returns a page of audit entries of the current store
func (h *AuditHandler) ListAuditLogs(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	actorID, err := queryID(c, "user_id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	query := &usecase.AuditQuery{
		Entity:   c.QueryParam("entity"),
		EntityID: c.QueryParam("entity_id"),
		ActorID:  actorID,
	}
	page, err := h.auditUC.List(c.Request().Context(), principal, query, pageRequest(c, usecase.DefaultAuditPageLimit))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, page)
}
