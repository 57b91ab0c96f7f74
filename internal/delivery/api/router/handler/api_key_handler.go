package handler

import (
	"log/slog"

	"warranty/internal/delivery/api/response"
	"warranty/internal/domain/entity"
	"warranty/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// APIKeyHandlerParams holds dependencies for APIKeyHandler, injected by Fx.
type APIKeyHandlerParams struct {
	fx.In

	APIKeyUC usecase.APIKeyUsecase
	Logger   *slog.Logger
}

// APIKeyHandler manages partner API keys of the current store.
type APIKeyHandler struct {
	apiKeyUC usecase.APIKeyUsecase
	logger   *slog.Logger
}

// NewAPIKeyHandler is the constructor for APIKeyHandler
func NewAPIKeyHandler(params APIKeyHandlerParams) *APIKeyHandler {
	return &APIKeyHandler{
		apiKeyUC: params.APIKeyUC,
		logger:   params.Logger,
	}
}

// APIKeyRequest carries API key fields. An empty expired_at clears the expiry.
type APIKeyRequest struct {
	Name      *string              `json:"name" validate:"omitempty,min=1"`
	Status    *entity.APIKeyStatus `json:"status" validate:"omitempty,oneof=Enabled Disabled"`
	ExpiredAt *Date                `json:"expired_at"`
}

func (r *APIKeyRequest) input() *usecase.APIKeyInput {
	return &usecase.APIKeyInput{Name: r.Name, Status: r.Status, ExpiredAt: r.ExpiredAt.Ptr()}
}

// CreateAPIKeyRequest requires a name.
type CreateAPIKeyRequest struct {
	Name      string `json:"name" validate:"required"`
	ExpiredAt *Date  `json:"expired_at"`
}

// CreateAPIKey issues a key for the current store
func (h *APIKeyHandler) CreateAPIKey(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req CreateAPIKeyRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	input := &usecase.APIKeyInput{Name: &req.Name}
	if req.ExpiredAt != nil && !req.ExpiredAt.IsZero() {
		expiry := req.ExpiredAt.Time
		input.ExpiredAt = &expiry
	}

	key, err := h.apiKeyUC.Create(c.Request().Context(), principal, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, key)
}

// ListAPIKeys returns the keys of the current store
func (h *APIKeyHandler) ListAPIKeys(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	keys, err := h.apiKeyUC.List(c.Request().Context(), principal)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, keys)
}

// GetAPIKey returns one key
func (h *APIKeyHandler) GetAPIKey(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	keyID, err := pathID(c, "API key")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	key, err := h.apiKeyUC.Get(c.Request().Context(), principal, keyID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, key)
}

// UpdateAPIKey renames, toggles or re-dates a key
func (h *APIKeyHandler) UpdateAPIKey(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	keyID, err := pathID(c, "API key")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req APIKeyRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	key, err := h.apiKeyUC.Update(c.Request().Context(), principal, keyID, req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, key)
}

// DeleteAPIKey revokes a key
func (h *APIKeyHandler) DeleteAPIKey(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	keyID, err := pathID(c, "API key")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.apiKeyUC.Delete(c.Request().Context(), principal, keyID); err != nil {
		return response.HandleAppError(c, err)
	}

	return message(c, "API key deleted successfully")
}
