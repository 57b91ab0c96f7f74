package handler

import (
	"log/slog"

	"warranty/internal/delivery/api/response"
	"warranty/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves signup, login and the current principal.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// SignupRequest opens an owner account with its first store.
type SignupRequest struct {
	FullName         string `json:"full_name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"required"`
	Password         string `json:"password" validate:"required,min=6"`
	BusinessName     string `json:"business_name"`
	BusinessWhatsApp string `json:"business_whatsapp"`
	StoreName        string `json:"store_name" validate:"required"`
	StoreAddress     string `json:"store_address"`
}

// LoginRequest carries credentials of an owner or a store member.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	StoreID  string `json:"store_id" validate:"omitempty,uuid"`
}

// Signup handles owner registration
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.authUC.Signup(c.Request().Context(), &usecase.SignupInput{
		Email:            req.Email,
		Password:         req.Password,
		FullName:         req.FullName,
		Phone:            req.Phone,
		BusinessName:     req.BusinessName,
		BusinessWhatsApp: req.BusinessWhatsApp,
		StoreName:        req.StoreName,
		StoreAddress:     req.StoreAddress,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, out)
}

// Login handles credential checks for both account kinds
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	input := &usecase.LoginInput{Email: req.Email, Password: req.Password}
	if req.StoreID != "" {
		input.StoreID = uuid.MustParse(req.StoreID)
	}

	out, err := h.authUC.Login(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, out)
}

// Me describes the authenticated principal
func (h *AuthHandler) Me(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.authUC.Me(c.Request().Context(), principal)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, out)
}
