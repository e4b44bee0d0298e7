package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andressep95/leadcapture/internal/domain"
)

func TestTenantService_Resolve(t *testing.T) {
	store := seededStore(t)
	svc := NewTenantService(store.Tenants(), quietLogger())
	ctx := context.Background()

	tenant, err := svc.Resolve(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, int64(1), tenant.ID)
	assert.Equal(t, "acme", tenant.Subdomain)
}

func TestTenantService_ResolveIsCaseInsensitive(t *testing.T) {
	svc := NewTenantService(seededStore(t).Tenants(), quietLogger())
	ctx := context.Background()

	upper, err := svc.Resolve(ctx, "ACME")
	require.NoError(t, err)
	mixed, err := svc.Resolve(ctx, " Acme ")
	require.NoError(t, err)
	lower, err := svc.Resolve(ctx, "acme")
	require.NoError(t, err)

	assert.Equal(t, lower, upper)
	assert.Equal(t, lower, mixed)
}

func TestTenantService_ResolveNotFound(t *testing.T) {
	svc := NewTenantService(seededStore(t).Tenants(), quietLogger())

	for _, sub := range []string{"ghost", "dormant", "gone"} {
		_, err := svc.Resolve(context.Background(), sub)
		assert.ErrorIs(t, err, domain.ErrTenantNotFound, sub)
	}
}

func TestTenantService_ResolveEmpty(t *testing.T) {
	svc := NewTenantService(seededStore(t).Tenants(), quietLogger())

	_, err := svc.Resolve(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestTenantService_ResolveStorageFailure(t *testing.T) {
	store := seededStore(t)
	store.Err = errors.New("connection reset")
	svc := NewTenantService(store.Tenants(), quietLogger())

	_, err := svc.Resolve(context.Background(), "acme")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestTenantService_ResolveContext(t *testing.T) {
	store := seededStore(t)
	svc := NewTenantService(store.Tenants(), quietLogger())
	ctx := context.Background()

	tc := svc.ResolveContext(ctx, "ACME")
	assert.True(t, tc.IsResolved())
	assert.Equal(t, "acme", tc.Subdomain())
	assert.Equal(t, "#ff0000", tc.Branding().PrimaryColor)

	ghost := svc.ResolveContext(ctx, "ghost")
	assert.True(t, ghost.IsResolved())
	assert.Nil(t, ghost.Tenant())
	assert.Equal(t, domain.DefaultBranding, ghost.Branding())

	store.Err = errors.New("timeout")
	failed := svc.ResolveContext(ctx, "acme")
	assert.Nil(t, failed.Tenant())
	assert.Equal(t, "acme", failed.Subdomain())
}
