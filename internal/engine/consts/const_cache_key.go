package consts

import "time"

/**
 * @file: const_cache_key.go
 * @description: redis 缓存键前缀
 */

const (
	// UserTokenKey 登录令牌，key = UserTokenKey + userId
	UserTokenKey = "atrium:user:token:"

	// UserInfoKey 登录用户信息，key = UserInfoKey + userId
	UserInfoKey = "atrium:user:info:"

	// UserAuthorityKey 用户有效权限快照，key = UserAuthorityKey + companyId + ":" + epoch + ":" + userId
	UserAuthorityKey = "atrium:user:authority:"

	// AuthorityEpochKey 租户级失效代数，key = AuthorityEpochKey + companyId。
	// 递增后整租户的旧快照全部不可达，随 TTL 过期。
	AuthorityEpochKey = "atrium:user:authority:epoch:"

	// CompanyDomainKey 域名到租户的映射，key = CompanyDomainKey + domain
	CompanyDomainKey = "atrium:company:domain:"
)

const (
	// UserAuthorityTTL 权限快照缓存时长，角色/权限变更时显式失效
	UserAuthorityTTL = 30 * time.Minute

	// CompanyDomainTTL 域名解析缓存时长
	CompanyDomainTTL = 10 * time.Minute
)
