package handler

import (
	"log/slog"

	"warranty/internal/delivery/api/response"
	"warranty/internal/domain/entity"
	"warranty/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// StoreHandlerParams holds dependencies for StoreHandler, injected by Fx.
type StoreHandlerParams struct {
	fx.In

	StoreUC  usecase.StoreUsecase
	MemberUC usecase.StoreMemberUsecase
	Logger   *slog.Logger
}

// StoreHandler serves store settings and store members.
type StoreHandler struct {
	storeUC  usecase.StoreUsecase
	memberUC usecase.StoreMemberUsecase
	logger   *slog.Logger
}

// NewStoreHandler is the constructor for StoreHandler
func NewStoreHandler(params StoreHandlerParams) *StoreHandler {
	return &StoreHandler{
		storeUC:  params.StoreUC,
		memberUC: params.MemberUC,
		logger:   params.Logger,
	}
}

// StoreRequest carries editable store settings. Omitted fields are unchanged.
type StoreRequest struct {
	StoreName       *string `json:"store_name" validate:"omitempty,min=1"`
	Address         *string `json:"address"`
	ContactPhone    *string `json:"contact_phone"`
	SerialPrefix    *string `json:"serial_prefix" validate:"omitempty,max=16"`
	SerialSuffix    *string `json:"serial_suffix" validate:"omitempty,max=16"`
	WhatsAppEnabled *bool   `json:"whatsapp_enabled"`
	WhatsAppNumber  *string `json:"whatsapp_number"`
	StoreLogo       *string `json:"store_logo"`
}

func (r *StoreRequest) input() *usecase.StoreInput {
	return &usecase.StoreInput{
		StoreName:       r.StoreName,
		Address:         r.Address,
		ContactPhone:    r.ContactPhone,
		SerialPrefix:    r.SerialPrefix,
		SerialSuffix:    r.SerialSuffix,
		WhatsAppEnabled: r.WhatsAppEnabled,
		WhatsAppNumber:  r.WhatsAppNumber,
		StoreLogo:       r.StoreLogo,
	}
}

// StoreMemberRequest carries store member fields. Omitted fields are unchanged.
type StoreMemberRequest struct {
	FullName    *string      `json:"full_name" validate:"omitempty,min=1"`
	Email       *string      `json:"email" validate:"omitempty,email"`
	Phone       *string      `json:"phone"`
	Password    *string      `json:"password" validate:"omitempty,min=6"`
	Role        *entity.Role `json:"role" validate:"omitempty,oneof=admin manager staff"`
	Permissions []string     `json:"permissions"`
}

func (r *StoreMemberRequest) input() *usecase.StoreMemberInput {
	return &usecase.StoreMemberInput{
		FullName:    r.FullName,
		Email:       r.Email,
		Phone:       r.Phone,
		Password:    r.Password,
		Role:        r.Role,
		Permissions: r.Permissions,
	}
}

// ListStores returns the stores visible to the caller
func (h *StoreHandler) ListStores(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	stores, err := h.storeUC.List(c.Request().Context(), principal)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, stores)
}

// CreateStore opens another store for the calling owner
func (h *StoreHandler) CreateStore(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req StoreRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	store, err := h.storeUC.Create(c.Request().Context(), principal, req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, store)
}

// GetStore returns one store
func (h *StoreHandler) GetStore(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	storeID, err := pathID(c, "store")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	store, err := h.storeUC.Get(c.Request().Context(), principal, storeID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, store)
}

// UpdateStore changes store settings
func (h *StoreHandler) UpdateStore(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	storeID, err := pathID(c, "store")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req StoreRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	store, err := h.storeUC.Update(c.Request().Context(), principal, storeID, req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, store)
}

// DeleteStore removes a store owned by the caller
func (h *StoreHandler) DeleteStore(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	storeID, err := pathID(c, "store")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.storeUC.Delete(c.Request().Context(), principal, storeID); err != nil {
		return response.HandleAppError(c, err)
	}

	return message(c, "Store deleted successfully")
}

// ListMembers returns the employees of the current store
func (h *StoreHandler) ListMembers(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	members, err := h.memberUC.List(c.Request().Context(), principal)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, members)
}

// CreateMember adds an employee to the current store
func (h *StoreHandler) CreateMember(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req StoreMemberRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	member, err := h.memberUC.Create(c.Request().Context(), principal, req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, member)
}

// UpdateMember changes an employee
func (h *StoreHandler) UpdateMember(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	memberID, err := pathID(c, "store user")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req StoreMemberRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	member, err := h.memberUC.Update(c.Request().Context(), principal, memberID, req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, member)
}

// DeleteMember removes an employee
func (h *StoreHandler) DeleteMember(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	memberID, err := pathID(c, "store user")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.memberUC.Delete(c.Request().Context(), principal, memberID); err != nil {
		return response.HandleAppError(c, err)
	}

	return message(c, "Store user deleted successfully")
}
