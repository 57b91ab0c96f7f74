package impl

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pngDataURI(payload string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(payload))
}

func TestStoreService_CreateUploadsLogo(t *testing.T) {
	f := newFixture(t)
	tn := f.newTenant(t, "owner@example.com")
	f.storage.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "logos/store-logo-") && strings.HasSuffix(key, ".png")
	}), []byte("logo-bytes"), "image/png").
		Return(func(key string) string { return "https://cdn.test/" + key }, nil).
		Once()

	store, err := f.stores().Create(context.Background(), tn.ownerPrincipal(), &usecase.StoreInput{
		StoreName:    lo.ToPtr("  Branch Two "),
		SerialPrefix: lo.ToPtr("brx"),
		StoreLogo:    lo.ToPtr(pngDataURI("logo-bytes")),
	})

	require.NoError(t, err)
	f.storage.AssertExpectations(t)
	assert.Equal(t, "Branch Two", store.StoreName)
	assert.Equal(t, "BRX", store.SerialPrefix)
	assert.Equal(t, "https://cdn.test/logos/store-logo-"+store.ID.String()+".png", store.StoreLogo)
	assert.Equal(t, tn.owner.ID, store.OwnerAccountID)

	saved, err := f.db.FindStoreByID(context.Background(), store.ID)
	require.NoError(t, err)
	assert.Equal(t, store.StoreLogo, saved.StoreLogo)

	admin, err := f.db.FindMemberByAccount(context.Background(), tn.owner.ID, store.ID)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
	assert.Len(t, f.audit.find(entity.AuditEntityStore, entity.AuditActionCreate), 1)
}

func TestStoreService_CreateRejections(t *testing.T) {
	f := newFixture(t)
	tn := f.newTenant(t, "owner@example.com")
	staff := f.addMember(t, tn, "staff@example.com", entity.RoleAdmin)

	_, err := f.stores().Create(context.Background(), staff, &usecase.StoreInput{StoreName: lo.ToPtr("Mine")})
	assert.ErrorIs(t, err, domainerrors.ErrOwnerOnly)

	_, err = f.stores().Create(context.Background(), tn.ownerPrincipal(), &usecase.StoreInput{StoreName: lo.ToPtr("  ")})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestStoreService_UpdateLogo(t *testing.T) {
	tests := []struct {
		name      string
		logo      string
		putErr    error
		wantLogo  string
		wantErr   error
		expectPut bool
	}{
		{name: "plain url kept", logo: "https://example.com/logo.png", wantLogo: "https://example.com/logo.png"},
		{name: "data uri uploaded", logo: pngDataURI("x"), expectPut: true},
		{name: "unsupported type", logo: "data:text/plain;base64,eA==", wantErr: domainerrors.ErrValidation},
		{name: "not base64", logo: "data:image/png,raw", wantErr: domainerrors.ErrValidation},
		{name: "upload failure", logo: pngDataURI("x"), putErr: errors.New("bucket down"), expectPut: true, wantErr: domainerrors.ErrArtifactUploadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tn := f.newTenant(t, "owner@example.com")
			if tt.expectPut {
				f.storage.On("Put", mock.Anything, "logos/store-logo-"+tn.store.ID.String()+".png", []byte("x"), "image/png").
					Return(func(key string) string { return "https://cdn.test/" + key }, tt.putErr).
					Once()
			}

			store, err := f.stores().Update(context.Background(), tn.ownerPrincipal(), tn.store.ID, &usecase.StoreInput{StoreLogo: lo.ToPtr(tt.logo)})

			f.storage.AssertExpectations(t)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			want := tt.wantLogo
			if want == "" {
				want = "https://cdn.test/logos/store-logo-" + tn.store.ID.String() + ".png"
			}
			assert.Equal(t, want, store.StoreLogo)
		})
	}
}

func TestStoreService_UpdateRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	tn := f.newTenant(t, "owner@example.com")
	manager := f.addMember(t, tn, "manager@example.com", entity.RoleManager, entity.PermissionAll.String())

	_, err := f.stores().Update(context.Background(), manager, tn.store.ID, &usecase.StoreInput{StoreName: lo.ToPtr("Renamed")})

	assert.ErrorIs(t, err, domainerrors.ErrNotStoreAdmin)
}

func TestStoreService_GetHidesForeignStores(t *testing.T) {
	f := newFixture(t)
	a := f.newTenant(t, "a@example.com")
	b := f.newTenant(t, "b@example.com")

	store, err := f.stores().Get(context.Background(), a.ownerPrincipal(), a.store.ID)
	require.NoError(t, err)
	assert.Equal(t, a.store.ID, store.ID)

	_, err = f.stores().Get(context.Background(), a.ownerPrincipal(), b.store.ID)
	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)

	_, err = f.stores().Get(context.Background(), a.ownerPrincipal(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}

func TestStoreService_List(t *testing.T) {
	f := newFixture(t)
	tn := f.newTenant(t, "owner@example.com")
	staff := f.addMember(t, tn, "staff@example.com", entity.RoleStaff)
	_, err := f.stores().Create(context.Background(), tn.ownerPrincipal(), &usecase.StoreInput{StoreName: lo.ToPtr("Second")})
	require.NoError(t, err)

	owned, err := f.stores().List(context.Background(), tn.ownerPrincipal())
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	mine, err := f.stores().List(context.Background(), staff)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, tn.store.ID, mine[0].ID)
}

func TestStoreService_Delete(t *testing.T) {
	f := newFixture(t)
	tn := f.newTenant(t, "owner@example.com")
	other := f.newTenant(t, "other@example.com")
	f.addMember(t, tn, "staff@example.com", entity.RoleStaff)

	tn.store.StoreLogo = "https://cdn.test/logos/store-logo-" + tn.store.ID.String() + ".png"
	require.NoError(t, f.db.UpdateStore(context.Background(), tn.store))
	f.storage.On("Delete", mock.Anything, "logos/store-logo-"+tn.store.ID.String()+".png").Return(nil).Once()

	err := f.stores().Delete(context.Background(), other.ownerPrincipal(), tn.store.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOwnerOnly)

	require.NoError(t, f.stores().Delete(context.Background(), tn.ownerPrincipal(), tn.store.ID))

	f.storage.AssertExpectations(t)
	members, err := f.db.FindMembersByStore(context.Background(), tn.store.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
	_, err = f.stores().Get(context.Background(), tn.ownerPrincipal(), tn.store.ID)
	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}
