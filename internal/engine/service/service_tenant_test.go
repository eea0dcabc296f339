package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTenantFixture() (*fakeStore, *TenantService) {
	store := newFakeStore()
	return store, NewTenantService(&fakeCompanyRepo{store: store})
}

func seedCompany(store *fakeStore, code, domain string, enabled int, expireTime *time.Time) *model.Company {
	company := &model.Company{Code: code, Name: code, Domain: domain, Enabled: enabled, ExpireTime: expireTime}
	company.ID = store.id()
	store.companies[company.ID] = company
	return company
}

func TestResolvePrincipalWins(t *testing.T) {
	store, svc := newTenantFixture()
	byDomain := seedCompany(store, "acme", "acme.example.com", model.StatusEnabled, nil)
	principal := byDomain.ID + 100

	// 令牌载荷的租户优先于域名，即使域名也能解析出别的租户
	companyId, err := svc.Resolve(context.Background(), &principal, "acme.example.com", "")
	require.NoError(t, err)
	require.NotNil(t, companyId)
	assert.Equal(t, principal, *companyId)
}

func TestResolveByDomain(t *testing.T) {
	store, svc := newTenantFixture()
	company := seedCompany(store, "acme", "acme.example.com", model.StatusEnabled, nil)
	other := seedCompany(store, "other", "", model.StatusEnabled, nil)

	companyId, err := svc.Resolve(context.Background(), nil, "acme.example.com", other.Code)
	require.NoError(t, err)
	require.NotNil(t, companyId)
	assert.Equal(t, company.ID, *companyId)
}

func TestResolveByCodeFallback(t *testing.T) {
	store, svc := newTenantFixture()
	company := seedCompany(store, "acme", "acme.example.com", model.StatusEnabled, nil)

	companyId, err := svc.Resolve(context.Background(), nil, "unbound.example.com", company.Code)
	require.NoError(t, err)
	require.NotNil(t, companyId)
	assert.Equal(t, company.ID, *companyId)
}

func TestResolveUnresolved(t *testing.T) {
	_, svc := newTenantFixture()

	companyId, err := svc.Resolve(context.Background(), nil, "unbound.example.com", "missing")
	require.NoError(t, err)
	assert.Nil(t, companyId)
}

func TestResolveSkipsDisabledCompany(t *testing.T) {
	store, svc := newTenantFixture()
	seedCompany(store, "acme", "acme.example.com", model.StatusDisabled, nil)

	companyId, err := svc.Resolve(context.Background(), nil, "acme.example.com", "")
	require.NoError(t, err)
	assert.Nil(t, companyId)
}

func TestResolveSkipsExpiredCompany(t *testing.T) {
	store, svc := newTenantFixture()
	yesterday := time.Now().Add(-24 * time.Hour)
	seedCompany(store, "acme", "acme.example.com", model.StatusEnabled, &yesterday)

	companyId, err := svc.Resolve(context.Background(), nil, "", "acme")
	require.NoError(t, err)
	assert.Nil(t, companyId)
}
