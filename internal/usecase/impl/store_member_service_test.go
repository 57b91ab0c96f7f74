package impl

import (
	"context"
	"testing"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/usecase"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memberInput(email string, perms ...string) *usecase.StoreMemberInput {
	return &usecase.StoreMemberInput{
		FullName:    lo.ToPtr("Ravi Kumar"),
		Email:       lo.ToPtr(email),
		Password:    lo.ToPtr("password1"),
		Permissions: perms,
	}
}

func TestStoreMemberService_Create(t *testing.T) {
	f := newFixture(t)
	tn := f.newTenant(t, "owner@example.com")

	member, err := f.members().Create(context.Background(), tn.ownerPrincipal(), memberInput(" Ravi@Example.com", "claims.write", "claims.write"))

	require.NoError(t, err)
	assert.Equal(t, tn.store.ID, member.StoreID)
	assert.Equal(t, "ravi@example.com", member.Email)
	assert.Equal(t, entity.RoleStaff, member.Role)
	assert.Equal(t, entity.Permissions{"claims.write"}, member.Permissions)
	assert.Equal(t, "hashed:password1", member.PasswordHash)
	assert.Nil(t, member.OwnerAccountID)

	entries := f.audit.find(entity.AuditEntityStoreMember, entity.AuditActionCreate)
	require.Len(t, entries, 1)
	assert.NotContains(t, string(entries[0].NewValue), "hashed:password1")
}

func TestStoreMemberService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	tn := f.newTenant(t, "owner@example.com")
	staff := f.addMember(t, tn, "staff@example.com", entity.RoleStaff, entity.PermissionAll.String())
	_, err := f.members().Create(context.Background(), tn.ownerPrincipal(), memberInput("ravi@example.com"))
	require.NoError(t, err)

	tests := []struct {
		name      string
		principal entity.Principal
		input     *usecase.StoreMemberInput
		wantErr   error
	}{
		{name: "duplicate email in store", principal: tn.ownerPrincipal(), input: memberInput("RAVI@example.com"), wantErr: domainerrors.ErrDuplicateMemberEmail},
		{name: "unknown permission", principal: tn.ownerPrincipal(), input: memberInput("new@example.com", "root"), wantErr: domainerrors.ErrValidation},
		{name: "invalid role", principal: tn.ownerPrincipal(), input: &usecase.StoreMemberInput{FullName: lo.ToPtr("X"), Email: lo.ToPtr("x@example.com"), Password: lo.ToPtr("password1"), Role: lo.ToPtr(entity.Role("boss"))}, wantErr: domainerrors.ErrValidation},
		{name: "short password", principal: tn.ownerPrincipal(), input: &usecase.StoreMemberInput{FullName: lo.ToPtr("X"), Email: lo.ToPtr("x@example.com"), Password: lo.ToPtr("short")}, wantErr: domainerrors.ErrValidation},
		{name: "missing fields", principal: tn.ownerPrincipal(), input: &usecase.StoreMemberInput{Email: lo.ToPtr("x@example.com")}, wantErr: domainerrors.ErrValidation},
		{name: "staff is not admin", principal: staff, input: memberInput("new@example.com"), wantErr: domainerrors.ErrNotStoreAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.members().Create(context.Background(), tt.principal, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStoreMemberService_SameEmailAcrossStores(t *testing.T) {
	f := newFixture(t)
	a := f.newTenant(t, "a@example.com")
	b := f.newTenant(t, "b@example.com")

	_, err := f.members().Create(context.Background(), a.ownerPrincipal(), memberInput("shared@example.com"))
	require.NoError(t, err)
	_, err = f.members().Create(context.Background(), b.ownerPrincipal(), memberInput("shared@example.com"))
	assert.NoError(t, err)
}

func TestStoreMemberService_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	a := f.newTenant(t, "a@example.com")
	b := f.newTenant(t, "b@example.com")
	member, err := f.members().Create(context.Background(), a.ownerPrincipal(), memberInput("ravi@example.com"))
	require.NoError(t, err)

	updated, err := f.members().Update(context.Background(), a.ownerPrincipal(), member.ID, &usecase.StoreMemberInput{
		Role:        lo.ToPtr(entity.RoleManager),
		Permissions: []string{"products.write", "warranties.write"},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, updated.Role)
	assert.True(t, updated.HasPermission(entity.PermissionWarranties))
	assert.False(t, updated.HasPermission(entity.PermissionClaims))

	_, err = f.members().Update(context.Background(), b.ownerPrincipal(), member.ID, &usecase.StoreMemberInput{Role: lo.ToPtr(entity.RoleAdmin)})
	assert.ErrorIs(t, err, domainerrors.ErrStoreMemberNotFound)

	err = f.members().Delete(context.Background(), b.ownerPrincipal(), member.ID)
	assert.ErrorIs(t, err, domainerrors.ErrStoreMemberNotFound)

	require.NoError(t, f.members().Delete(context.Background(), a.ownerPrincipal(), member.ID))
	members, err := f.members().List(context.Background(), a.ownerPrincipal())
	require.NoError(t, err)
	assert.Len(t, members, 1)
}
