package middleware

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-atrium/atrium/pkg/http"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureResolver struct {
	host      string
	code      string
	companyId *uint64
}

func (r *captureResolver) Resolve(_ context.Context, _ *uint64, host, companyCode string) (*uint64, error) {
	r.host = host
	r.code = companyCode
	return r.companyId, nil
}

func newTenantApp(resolver *captureResolver, tenantConfig http.Tenant) *fiber.App {
	app := fiber.New()
	app.Use(TenantMiddleware(resolver, tenantConfig))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

// 显式租户参数名固定为 company
func TestTenantMiddlewareReadsCompanyQueryParam(t *testing.T) {
	companyId := uint64(7)
	resolver := &captureResolver{companyId: &companyId}
	app := newTenantApp(resolver, http.Tenant{})

	req := httptest.NewRequest(nethttp.MethodGet, "/ping?company=acme", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "acme", resolver.code)
}

func TestTenantMiddlewareRejectsUnresolved(t *testing.T) {
	resolver := &captureResolver{}
	app := newTenantApp(resolver, http.Tenant{AllowUnresolved: false})

	req := httptest.NewRequest(nethttp.MethodGet, "/ping", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	var body http.ResponseErr
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.TenantUnresolved.Code, body.ErrCode)
}

func TestTenantMiddlewareAllowsUnresolvedWhenConfigured(t *testing.T) {
	resolver := &captureResolver{}
	app := newTenantApp(resolver, http.Tenant{AllowUnresolved: true})

	req := httptest.NewRequest(nethttp.MethodGet, "/ping", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}
