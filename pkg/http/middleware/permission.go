package middleware

import (
	"context"
	"fmt"

	"github.com/go-atrium/atrium/internal/engine/consts"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/log"
	"github.com/go-atrium/atrium/pkg/metrics"
	"github.com/gofiber/fiber/v2"
)

/**
 * @file: permission.go
 * @description: 权限校验中间件
 */

// AuthorityProvider 查询用户有效权限集
// 返回值包含 ROLE_ 前缀的角色码、权限码，以及管理员标记 admin。
type AuthorityProvider interface {
	EffectiveAuthorities(ctx context.Context, userId uint64, companyId *uint64) ([]string, error)
	HasAuthority(authorities []string, required []string, requireAll bool) bool
}

// RequireAnyPermission 中间件 - 要求用户拥有任意一个指定权限
func RequireAnyPermission(provider AuthorityProvider, permissions ...string) fiber.Handler {
	return requirePermission(provider, permissions, false)
}

// RequireAllPermissions 中间件 - 要求用户拥有所有指定权限
func RequireAllPermissions(provider AuthorityProvider, permissions ...string) fiber.Handler {
	return requirePermission(provider, permissions, true)
}

func requirePermission(provider AuthorityProvider, permissions []string, requireAll bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromCtx(c)
		if !ok {
			return http.WithRepErrMsg(c, http.Unauthorized.Code, "user not authenticated", c.Path())
		}

		var companyId *uint64
		if id, ok := CompanyIdFromCtx(c); ok {
			companyId = &id
		} else {
			companyId = claims.CompanyId
		}

		authorities, err := provider.EffectiveAuthorities(c.Context(), claims.UserId, companyId)
		if err != nil {
			log.Errorf("load authorities for user %d failed: %v", claims.UserId, err)
			return http.WithRepErrMsg(c, http.InternalError.Code, "failed to check permissions", c.Path())
		}

		if !provider.HasAuthority(authorities, permissions, requireAll) {
			metrics.PermissionDeniedTotal.Inc()
			return http.WithRepErrMsg(c, http.PermissionDenied.Code,
				"insufficient permissions: require "+requireWord(requireAll)+" of "+fmt.Sprint(permissions), c.Path())
		}

		c.Locals(consts.AuthoritiesKey, authorities)
		return c.Next()
	}
}

func requireWord(requireAll bool) string {
	if requireAll {
		return "all"
	}
	return "any"
}

// AuthoritiesFromCtx 从 fiber context 读取鉴权中间件缓存的权限集
func AuthoritiesFromCtx(c *fiber.Ctx) ([]string, bool) {
	authorities, ok := c.Locals(consts.AuthoritiesKey).([]string)
	return authorities, ok
}
