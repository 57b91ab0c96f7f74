package impl

import (
	"context"
	"testing"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signup(t *testing.T, f *fixture, email string) *usecase.AuthOutput {
	t.Helper()
	out, err := f.auth().Signup(context.Background(), &usecase.SignupInput{
		Email:        email,
		Password:     "secret123",
		FullName:     "Asha Rao",
		Phone:        "9876543210",
		BusinessName: "Rao Appliances",
	})
	require.NoError(t, err)

	return out
}

func TestAuthService_Signup(t *testing.T) {
	f := newFixture(t)

	out := signup(t, f, " Asha@Example.com ")

	assert.Equal(t, entity.AccountKindOwner, out.AccountKind)
	assert.Equal(t, "asha@example.com", out.Account.Email)
	assert.Equal(t, "Rao Appliances", out.Store.StoreName)
	assert.Equal(t, entity.DefaultSerialPrefix, out.Store.SerialPrefix)
	assert.Empty(t, out.Store.SerialSuffix)
	require.NotNil(t, out.Member)
	assert.True(t, out.Member.IsAdmin())
	assert.Equal(t, entity.Permissions{"all"}, out.Member.Permissions)
	assert.True(t, out.Member.IsLinkedTo(out.Account.ID))
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, int64(3600), out.ExpiresIn)
	assert.False(t, out.NeedsStore)

	assert.Len(t, f.db.accounts, 1)
	assert.Len(t, f.db.stores, 1)
	assert.Len(t, f.db.members, 1)
}

func TestAuthService_SignupValidation(t *testing.T) {
	f := newFixture(t)
	signup(t, f, "asha@example.com")

	_, err := f.auth().Signup(context.Background(), &usecase.SignupInput{Email: "ASHA@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domainerrors.ErrEmailExists)

	_, err = f.auth().Signup(context.Background(), &usecase.SignupInput{Email: "new@example.com", Password: "short"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)
	owner := signup(t, f, "owner@example.com")
	tn := &tenant{owner: owner.Account, store: owner.Store, admin: owner.Member}
	staff := f.addMember(t, tn, "staff@example.com", entity.RoleStaff)

	tests := []struct {
		name     string
		input    usecase.LoginInput
		wantKind entity.AccountKind
		wantErr  error
	}{
		{name: "owner", input: usecase.LoginInput{Email: "OWNER@example.com", Password: "secret123"}, wantKind: entity.AccountKindOwner},
		{name: "member", input: usecase.LoginInput{Email: "staff@example.com", Password: "secret123"}, wantKind: entity.AccountKindMember},
		{name: "member with store", input: usecase.LoginInput{Email: "staff@example.com", Password: "secret123", StoreID: tn.store.ID}, wantKind: entity.AccountKindMember},
		{name: "member with other store", input: usecase.LoginInput{Email: "staff@example.com", Password: "secret123", StoreID: uuid.New()}, wantErr: domainerrors.ErrInvalidCredentials},
		{name: "wrong password", input: usecase.LoginInput{Email: "owner@example.com", Password: "nope"}, wantErr: domainerrors.ErrInvalidCredentials},
		{name: "unknown email", input: usecase.LoginInput{Email: "ghost@example.com", Password: "secret123"}, wantErr: domainerrors.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := f.auth().Login(context.Background(), &tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, out.AccountKind)
			assert.Equal(t, tn.store.ID, out.Store.ID)
			assert.NotEmpty(t, out.Token)
		})
	}

	out, err := f.auth().Login(context.Background(), &usecase.LoginInput{Email: "staff@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, memberToken(staff.Member.ID), out.Token)
}

func TestAuthService_LoginOwnerWithoutMemberRowNeedsStore(t *testing.T) {
	f := newFixture(t)
	out := signup(t, f, "owner@example.com")
	require.NoError(t, f.db.DeleteMember(context.Background(), out.Member.ID))

	login, err := f.auth().Login(context.Background(), &usecase.LoginInput{Email: "owner@example.com", Password: "secret123"})

	require.NoError(t, err)
	assert.True(t, login.NeedsStore)
	assert.Nil(t, login.Member)
}

func TestAuthService_Me(t *testing.T) {
	f := newFixture(t)
	tn := f.newTenant(t, "owner@example.com")
	staff := f.addMember(t, tn, "staff@example.com", entity.RoleStaff, entity.PermissionClaims.String())

	me, err := f.auth().Me(context.Background(), staff)
	require.NoError(t, err)
	assert.Equal(t, entity.AccountKindMember, me.AccountKind)
	assert.Equal(t, entity.Permissions{"claims.write"}, me.Permissions)
	assert.Equal(t, tn.store.ID, me.Store.ID)

	me, err = f.auth().Me(context.Background(), tn.ownerPrincipal())
	require.NoError(t, err)
	assert.Equal(t, tn.owner.ID, me.Account.ID)
	assert.Equal(t, entity.Permissions{"all"}, me.Permissions)
}
