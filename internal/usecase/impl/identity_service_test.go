package impl

import (
	"context"
	"testing"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownerToken(id uuid.UUID) string {
	return "token:" + service.TokenSubject{Kind: entity.AccountKindOwner, ID: id}.String()
}

func memberToken(id uuid.UUID) string {
	return "token:" + service.TokenSubject{Kind: entity.AccountKindMember, ID: id}.String()
}

func TestIdentityService_ResolveIdentity(t *testing.T) {
	f := newFixture(t)
	a := f.newTenant(t, "a@example.com")
	b := f.newTenant(t, "b@example.com")
	staff := f.addMember(t, a, "staff@example.com", entity.RoleStaff)

	// An owner with a second store but no member row there.
	second := &entity.Store{StoreName: "Second", OwnerAccountID: a.owner.ID, SerialPrefix: "PRD"}
	require.NoError(t, f.db.CreateStore(context.Background(), second))

	tests := []struct {
		name      string
		token     string
		hint      uuid.UUID
		wantKind  entity.AccountKind
		wantStore uuid.UUID
		wantErr   error
	}{
		{name: "missing token", token: "", wantErr: domainerrors.ErrUnauthenticated},
		{name: "invalid token", token: "garbage", wantErr: domainerrors.ErrInvalidToken},
		{name: "unknown member", token: memberToken(uuid.New()), wantErr: domainerrors.ErrUnauthenticated},
		{name: "unknown owner", token: ownerToken(uuid.New()), wantErr: domainerrors.ErrUnauthenticated},
		{name: "member ignores hint", token: memberToken(staff.Member.ID), hint: b.store.ID, wantKind: entity.AccountKindMember, wantStore: a.store.ID},
		{name: "owner without hint uses member row", token: ownerToken(a.owner.ID), wantKind: entity.AccountKindOwner, wantStore: a.store.ID},
		{name: "owner hint to owned store", token: ownerToken(a.owner.ID), hint: second.ID, wantKind: entity.AccountKindOwner, wantStore: second.ID},
		{name: "owner hint to foreign store", token: ownerToken(a.owner.ID), hint: b.store.ID, wantErr: domainerrors.ErrNoStoreAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := f.identity().ResolveIdentity(context.Background(), tt.token, tt.hint)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, principal.AccountKind())
			storeID, ok := principal.StoreScope()
			assert.True(t, ok)
			assert.Equal(t, tt.wantStore, storeID)
		})
	}
}

func TestIdentityService_OwnerWithoutMemberRowFallsBackToOwnedStore(t *testing.T) {
	f := newFixture(t)
	tn := f.newTenant(t, "owner@example.com")
	require.NoError(t, f.db.DeleteMember(context.Background(), tn.admin.ID))

	principal, err := f.identity().ResolveIdentity(context.Background(), ownerToken(tn.owner.ID), uuid.Nil)

	require.NoError(t, err)
	owner := principal.(*entity.OwnerPrincipal)
	assert.Nil(t, owner.Member)
	assert.True(t, owner.OwnsStore)
	assert.Equal(t, tn.store.ID, owner.StoreID)
	assert.True(t, owner.HasPermission(entity.PermissionProducts))
}

func TestIdentityService_OwnerWithoutStores(t *testing.T) {
	f := newFixture(t)
	account := &entity.OwnerAccount{Email: "lonely@example.com"}
	require.NoError(t, f.db.CreateAccount(context.Background(), account))

	principal, err := f.identity().ResolveIdentity(context.Background(), ownerToken(account.ID), uuid.Nil)

	require.NoError(t, err)
	_, ok := principal.StoreScope()
	assert.False(t, ok)
}

func TestIdentityService_AuthorizeStoreAdmin(t *testing.T) {
	f := newFixture(t)
	a := f.newTenant(t, "a@example.com")
	b := f.newTenant(t, "b@example.com")
	admin := f.addMember(t, a, "admin@example.com", entity.RoleAdmin)
	manager := f.addMember(t, a, "manager@example.com", entity.RoleManager, entity.PermissionAll.String())

	tests := []struct {
		name      string
		principal entity.Principal
		storeID   uuid.UUID
		wantErr   error
	}{
		{name: "owner of store", principal: a.ownerPrincipal(), storeID: a.store.ID},
		{name: "owner of another store", principal: b.ownerPrincipal(), storeID: a.store.ID, wantErr: domainerrors.ErrNotStoreAdmin},
		{name: "admin member", principal: admin, storeID: a.store.ID},
		{name: "admin member elsewhere", principal: admin, storeID: b.store.ID, wantErr: domainerrors.ErrNotStoreAdmin},
		{name: "manager with all permissions", principal: manager, storeID: a.store.ID, wantErr: domainerrors.ErrNotStoreAdmin},
		{name: "no principal", principal: nil, storeID: a.store.ID, wantErr: domainerrors.ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.identity().AuthorizeStoreAdmin(context.Background(), tt.principal, tt.storeID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestIdentityService_AuthorizeStoreAccess(t *testing.T) {
	f := newFixture(t)
	a := f.newTenant(t, "a@example.com")
	b := f.newTenant(t, "b@example.com")
	staff := f.addMember(t, a, "staff@example.com", entity.RoleStaff)

	assert.NoError(t, f.identity().AuthorizeStoreAccess(context.Background(), staff, a.store.ID))
	assert.ErrorIs(t, f.identity().AuthorizeStoreAccess(context.Background(), staff, b.store.ID), domainerrors.ErrForbidden)
	assert.ErrorIs(t, f.identity().AuthorizeStoreAccess(context.Background(), b.ownerPrincipal(), a.store.ID), domainerrors.ErrForbidden)
}
