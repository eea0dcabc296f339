package consts

/**
 * @file: const_locals.go
 * @description: fiber context locals 键
 */

const (
	// ClaimsKey 认证中间件写入的令牌载荷
	ClaimsKey = "claims"

	// CompanyIdKey 租户中间件写入的当前租户
	CompanyIdKey = "companyId"

	// AuthoritiesKey 鉴权中间件写入的有效权限集
	AuthoritiesKey = "authorities"
)

const (
	// TenantQueryParam 显式指定租户的查询参数 / 表单字段
	TenantQueryParam = "company"

	// AdminAuthority 管理员标记，权限集中出现即拥有全部权限
	AdminAuthority = "admin"
)
