package middleware

import (
	"context"

	"github.com/go-atrium/atrium/internal/engine/consts"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/log"
	"github.com/go-atrium/atrium/pkg/metrics"
	"github.com/go-atrium/atrium/pkg/tenant"
	"github.com/gofiber/fiber/v2"
)

/**
 * @file: tenant.go
 * @description: 租户解析中间件
 */

// TenantResolver 按固定优先级解析租户：
// 令牌中的 companyId > 请求域名 > companyCode 参数 > 未解析(nil)
type TenantResolver interface {
	Resolve(ctx context.Context, principalCompanyId *uint64, host, companyCode string) (*uint64, error)
}

// TenantMiddleware 租户中间件
// 解析成功后写入 goroutine 本地槽位与 fiber locals，请求结束无条件清理，
// 避免 fasthttp 复用 goroutine 时把上一个请求的租户带给下一个请求。
// This function is used as the middleware of fiber.
func TenantMiddleware(resolver TenantResolver, tenantConfig http.Tenant) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var principal *uint64
		var platformAdmin bool
		if claims, ok := ClaimsFromCtx(c); ok {
			principal = claims.CompanyId
			for _, authority := range claims.AuthorityList() {
				if authority == consts.AdminAuthority {
					platformAdmin = true
					break
				}
			}
		}

		companyId, err := resolver.Resolve(c.Context(), principal, c.Hostname(), c.Query(consts.TenantQueryParam))
		if err != nil {
			log.Errorf("resolve tenant failed: %v", err)
			return http.WithRepErrMsg(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
		}

		if companyId == nil {
			// 平台管理员（companyId 为空的 admin 账号）不归属任何租户，放行
			if !tenantConfig.AllowUnresolved && !platformAdmin {
				metrics.TenantUnresolvedTotal.Inc()
				return http.WithRepErrMsg(c, http.TenantUnresolved.Code, http.TenantUnresolved.Msg, c.Path())
			}
			return c.Next()
		}

		tenant.Set(*companyId)
		defer tenant.Clear()

		c.Locals(consts.CompanyIdKey, *companyId)
		c.SetUserContext(tenant.WithTenant(c.UserContext(), *companyId))

		return c.Next()
	}
}

// CompanyIdFromCtx 从 fiber context 读取当前租户
func CompanyIdFromCtx(c *fiber.Ctx) (uint64, bool) {
	companyId, ok := c.Locals(consts.CompanyIdKey).(uint64)
	return companyId, ok
}
