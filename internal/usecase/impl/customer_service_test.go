package impl

import (
	"context"
	"testing"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerService_Create(t *testing.T) {
	f := newFixture(t)
	tn := f.newTenant(t, "owner@example.com")
	clerk := f.addMember(t, tn, "clerk@example.com", entity.RoleStaff, entity.PermissionCustomers.String())

	customer, err := f.customers().Create(context.Background(), clerk, &usecase.CustomerInput{
		CustomerName: "  Meera Iyer ",
		Phone:        " 9876543210 ",
		Email:        " Meera@Example.COM",
		GSTNumber:    "29abcde1234f1z5",
	})

	require.NoError(t, err)
	assert.Equal(t, "Meera Iyer", customer.CustomerName)
	assert.Equal(t, "9876543210", customer.Phone)
	assert.Equal(t, "meera@example.com", customer.Email)
	assert.Equal(t, "29ABCDE1234F1Z5", customer.GSTNumber)
	assert.Equal(t, tn.store.ID, customer.StoreID)
	assert.Equal(t, clerk.Member.ID, customer.CreatedBy)
	assert.Len(t, f.audit.find(entity.AuditEntityCustomer, entity.AuditActionCreate), 1)
}

func TestCustomerService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	tn := f.newTenant(t, "owner@example.com")
	viewer := f.addMember(t, tn, "viewer@example.com", entity.RoleStaff)

	tests := []struct {
		name      string
		principal entity.Principal
		input     usecase.CustomerInput
		wantErr   error
	}{
		{name: "missing name", principal: tn.ownerPrincipal(), input: usecase.CustomerInput{Phone: "9876543210"}, wantErr: domainerrors.ErrValidation},
		{name: "short phone", principal: tn.ownerPrincipal(), input: usecase.CustomerInput{CustomerName: "Meera", Phone: "98765"}, wantErr: domainerrors.ErrValidation},
		{name: "missing permission", principal: viewer, input: usecase.CustomerInput{CustomerName: "Meera", Phone: "9876543210"}, wantErr: domainerrors.ErrPermissionDenied},
		{name: "no store", principal: &entity.OwnerPrincipal{Account: tn.owner}, input: usecase.CustomerInput{CustomerName: "Meera", Phone: "9876543210"}, wantErr: domainerrors.ErrNoStoreAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.customers().Create(context.Background(), tt.principal, &tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCustomerService_ScopedToStore(t *testing.T) {
	f := newFixture(t)
	a := f.newTenant(t, "a@example.com")
	b := f.newTenant(t, "b@example.com")
	customer, err := f.customers().Create(context.Background(), a.ownerPrincipal(), &usecase.CustomerInput{CustomerName: "Meera", Phone: "9876543210"})
	require.NoError(t, err)

	_, err = f.customers().Get(context.Background(), b.ownerPrincipal(), customer.ID)
	assert.ErrorIs(t, err, domainerrors.ErrCustomerNotFound)

	_, err = f.customers().Update(context.Background(), b.ownerPrincipal(), customer.ID, &usecase.CustomerInput{CustomerName: "Hijack", Phone: "9876543210"})
	assert.ErrorIs(t, err, domainerrors.ErrCustomerNotFound)

	updated, err := f.customers().Update(context.Background(), a.ownerPrincipal(), customer.ID, &usecase.CustomerInput{CustomerName: "Meera Iyer", Phone: "9876543210", Address: "12 MG Road"})
	require.NoError(t, err)
	assert.Equal(t, "12 MG Road", updated.Address)

	page, err := f.customers().List(context.Background(), b.ownerPrincipal(), entity.NewPageRequest(1, 10, 10))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestCustomerService_ListPages(t *testing.T) {
	f := newFixture(t)
	tn := f.newTenant(t, "owner@example.com")
	for _, name := range []string{"One", "Two", "Three"} {
		_, err := f.customers().Create(context.Background(), tn.ownerPrincipal(), &usecase.CustomerInput{CustomerName: name, Phone: "9876543210"})
		require.NoError(t, err)
	}

	page, err := f.customers().List(context.Background(), tn.ownerPrincipal(), entity.NewPageRequest(2, 2, 20))

	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Pages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "One", page.Items[0].CustomerName)
}
