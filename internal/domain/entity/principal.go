package entity

import (
	"github.com/google/uuid"
)

// AccountKind distinguishes the two identity types sharing one token space.
type AccountKind string

const (
	AccountKindOwner  AccountKind = "owner_account"
	AccountKindMember AccountKind = "store_member"
)

// Principal is the authenticated caller. It is a closed set: only
// *OwnerPrincipal and *MemberPrincipal implement it.
type Principal interface {
	// ActorID is the id recorded in audit entries and claim timelines.
	ActorID() uuid.UUID
	AccountKind() AccountKind
	// StoreScope returns the resolved store, false when none could be resolved.
	StoreScope() (uuid.UUID, bool)
	HasPermission(p Permission) bool

	isPrincipal()
}

// OwnerPrincipal is a store-owning account. Member is the StoreMember row
// linked to the account inside the resolved store, if any.
type OwnerPrincipal struct {
	Account *OwnerAccount
	Member  *StoreMember
	// StoreID is the resolved store, uuid.Nil when the account has none.
	StoreID uuid.UUID
	// OwnsStore is set when the account owns StoreID directly.
	OwnsStore bool
}

func (p *OwnerPrincipal) ActorID() uuid.UUID {
	return p.Account.ID
}

func (p *OwnerPrincipal) AccountKind() AccountKind {
	return AccountKindOwner
}

func (p *OwnerPrincipal) StoreScope() (uuid.UUID, bool) {
	return p.StoreID, p.StoreID != uuid.Nil
}

// HasPermission defers to the linked member row. An owner acting on a store
// it owns without a member row is treated as that store's admin.
func (p *OwnerPrincipal) HasPermission(perm Permission) bool {
	if p.Member != nil {
		return p.Member.HasPermission(perm)
	}

	return p.OwnsStore
}

func (*OwnerPrincipal) isPrincipal() {}

// MemberPrincipal is an employee scoped to exactly one store.
type MemberPrincipal struct {
	Member *StoreMember
}

func (p *MemberPrincipal) ActorID() uuid.UUID {
	return p.Member.ID
}

func (p *MemberPrincipal) AccountKind() AccountKind {
	return AccountKindMember
}

func (p *MemberPrincipal) StoreScope() (uuid.UUID, bool) {
	return p.Member.StoreID, true
}

func (p *MemberPrincipal) HasPermission(perm Permission) bool {
	return p.Member.HasPermission(perm)
}

func (*MemberPrincipal) isPrincipal() {}
