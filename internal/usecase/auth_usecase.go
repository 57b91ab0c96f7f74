package usecase

import (
	"context"

	"warranty/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required to open an account and its first store.
type SignupInput struct {
	Email            string
	Password         string
	FullName         string
	Phone            string
	BusinessName     string
	BusinessWhatsApp string
	StoreName        string
	StoreAddress     string
}

// LoginInput defines the credentials of either account kind. StoreID narrows
// a store member lookup when the same email works in several stores.
type LoginInput struct {
	Email    string
	Password string
	StoreID  uuid.UUID
}

// --- Output DTOs ---

// AuthOutput is returned by signup and login.
type AuthOutput struct {
	Token       string               `json:"token"`
	ExpiresIn   int64                `json:"expires_in"`
	AccountKind entity.AccountKind   `json:"account_kind"`
	Account     *entity.OwnerAccount `json:"account,omitempty"`
	Member      *entity.StoreMember  `json:"store_user,omitempty"`
	Store       *entity.Store        `json:"store,omitempty"`
	// NeedsStore is set for an owner with no store to act in yet.
	NeedsStore bool `json:"needs_store"`
}

// MeOutput describes the authenticated principal.
type MeOutput struct {
	AccountKind entity.AccountKind   `json:"account_kind"`
	Account     *entity.OwnerAccount `json:"account,omitempty"`
	Member      *entity.StoreMember  `json:"store_user,omitempty"`
	Store       *entity.Store        `json:"store,omitempty"`
	Permissions entity.Permissions   `json:"permissions"`
}

// AuthUsecase defines the account sign-up and login operations.
type AuthUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	Me(ctx context.Context, principal entity.Principal) (*MeOutput, error)
}
