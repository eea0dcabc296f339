// Copyright 2025 Atrium Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"sort"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/go-atrium/atrium/internal/engine/consts"
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/internal/engine/repo"
	"github.com/go-atrium/atrium/pkg/cache"
	"github.com/go-atrium/atrium/pkg/log"
)

// AdminAuthority 管理员标记，出现在权限集中即绕过权限点校验。
// 仅当用户持有 admin 角色码（不区分大小写）时追加，不带 ROLE_ 前缀。
const AdminAuthority = consts.AdminAuthority

// PermissionService 鉴权引擎
// 权限集 = ROLE_ 前缀的角色码 + 角色可达的权限码 + 可能的 admin 标记
type PermissionService struct {
	cache          cache.ICache
	userRepo       repo.IUserRepository
	roleRepo       repo.IRoleRepository
	permissionRepo repo.IPermissionRepository
}

func NewPermissionService(cache cache.ICache, userRepo repo.IUserRepository,
	roleRepo repo.IRoleRepository, permissionRepo repo.IPermissionRepository) *PermissionService {
	return &PermissionService{
		cache:          cache,
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
	}
}

// EffectiveAuthorities 计算用户在当前租户下的有效权限集。
// 结果排序去重后缓存，角色或绑定变更时显式失效。
func (s *PermissionService) EffectiveAuthorities(ctx context.Context, userId uint64, companyId *uint64) ([]string, error) {
	key := s.authorityCacheKey(ctx, userId, companyId)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Result()
		if err == nil && cached != "" {
			var authorities []string
			if err := sonic.UnmarshalString(cached, &authorities); err == nil {
				return authorities, nil
			}
			log.Warnw("failed to unmarshal cached authorities", "userId", userId, "error", err)
		}
	}

	authorities, err := s.computeAuthorities(userId)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := sonic.MarshalString(authorities); err == nil {
			if err := s.cache.Set(ctx, key, payload, consts.UserAuthorityTTL).Err(); err != nil {
				log.Errorw("failed to cache authorities", "userId", userId, "error", err)
			}
		}
	}

	return authorities, nil
}

func (s *PermissionService) computeAuthorities(userId uint64) ([]string, error) {
	roles, err := s.userRepo.GetUserRoles(userId)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	authorities := make([]string, 0, len(roles)*4)
	add := func(a string) {
		if _, ok := seen[a]; !ok {
			seen[a] = struct{}{}
			authorities = append(authorities, a)
		}
	}

	isAdmin := false
	roleIds := make([]uint64, 0, len(roles))
	for _, role := range roles {
		add(model.RolePrefix + role.Code)
		if model.IsAdminRole(role.Code) {
			isAdmin = true
		}
		roleIds = append(roleIds, role.ID)
	}
	if isAdmin {
		add(AdminAuthority)
	}

	permissions, err := s.roleRepo.GetPermissionsOfRoles(roleIds)
	if err != nil {
		return nil, err
	}
	for _, permission := range permissions {
		add(permission.Code)
	}

	sort.Strings(authorities)
	return authorities, nil
}

// HasAuthority 纯函数判定。
// admin 标记直接放行；required 为空时，要求全部视为真空真，要求任一视为假。
func (s *PermissionService) HasAuthority(authorities []string, required []string, requireAll bool) bool {
	return HasAuthority(authorities, required, requireAll)
}

// HasAuthority 判断权限集是否满足要求
func HasAuthority(authorities []string, required []string, requireAll bool) bool {
	held := make(map[string]struct{}, len(authorities))
	for _, a := range authorities {
		held[a] = struct{}{}
	}

	if _, ok := held[AdminAuthority]; ok {
		return true
	}

	if len(required) == 0 {
		return requireAll
	}

	if requireAll {
		for _, r := range required {
			if _, ok := held[r]; !ok {
				return false
			}
		}
		return true
	}

	for _, r := range required {
		if _, ok := held[r]; ok {
			return true
		}
	}
	return false
}

// InvalidateUser 清除单个用户的权限快照
func (s *PermissionService) InvalidateUser(ctx context.Context, userId uint64, companyId *uint64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.authorityCacheKey(ctx, userId, companyId)).Err(); err != nil {
		log.Errorw("failed to invalidate authority cache", "userId", userId, "error", err)
	}
}

// InvalidateCompany 整租户失效：递增代数键让旧快照全部不可达，随 TTL 过期。
// 租户被禁用或过期下线时调用。
func (s *PermissionService) InvalidateCompany(ctx context.Context, companyId *uint64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, epochCacheKey(companyId)).Err(); err != nil {
		log.Errorw("failed to bump authority epoch", "error", err)
	}
}

// InvalidateUsersOfRole 角色或其绑定变更后，清除持有者的权限快照
func (s *PermissionService) InvalidateUsersOfRole(ctx context.Context, roleId uint64, companyId *uint64) {
	userIds, err := s.roleRepo.GetUserIdsOfRole(roleId)
	if err != nil {
		log.Errorw("failed to list users of role", "roleId", roleId, "error", err)
		return
	}
	for _, userId := range userIds {
		s.InvalidateUser(ctx, userId, companyId)
	}
}

func (s *PermissionService) authorityCacheKey(ctx context.Context, userId uint64, companyId *uint64) string {
	epoch := "0"
	if s.cache != nil {
		if v, err := s.cache.Get(ctx, epochCacheKey(companyId)).Result(); err == nil && v != "" {
			epoch = v
		}
	}
	return consts.UserAuthorityKey + tenantScopeName(companyId) + ":" + epoch + ":" + strconv.FormatUint(userId, 10)
}

func epochCacheKey(companyId *uint64) string {
	return consts.AuthorityEpochKey + tenantScopeName(companyId)
}

func tenantScopeName(companyId *uint64) string {
	if companyId == nil {
		return "global"
	}
	return strconv.FormatUint(*companyId, 10)
}
