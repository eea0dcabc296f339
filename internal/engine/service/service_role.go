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
	"errors"

	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/internal/engine/repo"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/id"
	"gorm.io/gorm"
)

var (
	ErrAdminRoleProtected = errors.New(http.AdminRoleProtected.Msg)
	ErrRoleCodeExists     = errors.New(http.RoleCodeExists.Msg)
	ErrRoleStillAssigned  = errors.New(http.RoleStillAssigned.Msg)
)

// RoleService 角色服务
// admin 角色码（不区分大小写）受保护：禁止删除、禁止禁用。
type RoleService struct {
	roleRepo          repo.IRoleRepository
	userRepo          repo.IUserRepository
	permissionService *PermissionService
}

func NewRoleService(roleRepo repo.IRoleRepository, userRepo repo.IUserRepository, permissionService *PermissionService) *RoleService {
	return &RoleService{
		roleRepo:          roleRepo,
		userRepo:          userRepo,
		permissionService: permissionService,
	}
}

// CreateRole 新建角色，角色码在租户内唯一
func (s *RoleService) CreateRole(req *model.CreateRoleReq, companyId *uint64) (*model.Role, error) {
	if _, err := s.roleRepo.GetRoleByCode(req.Code); err == nil {
		return nil, ErrRoleCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := &model.Role{
		Uid:       id.GetUlid(),
		Code:      req.Code,
		Name:      req.Name,
		Sort:      req.Sort,
		Status:    model.StatusEnabled,
		DataScope: model.DataScopeAll,
		CompanyId: companyId,
		Remark:    req.Remark,
	}
	if req.Status != nil {
		role.Status = *req.Status
	}
	if req.DataScope != nil {
		role.DataScope = *req.DataScope
	}

	if err := s.roleRepo.AddRole(role); err != nil {
		return nil, err
	}
	return role, nil
}

// UpdateRole 更新角色，admin 角色禁止禁用
func (s *RoleService) UpdateRole(ctx context.Context, roleId uint64, req *model.UpdateRoleReq) error {
	role, err := s.roleRepo.GetRole(roleId)
	if err != nil {
		return err
	}

	if model.IsAdminRole(role.Code) && req.Status != nil && *req.Status == model.StatusDisabled {
		return ErrAdminRoleProtected
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Sort != nil {
		updates["sort"] = *req.Sort
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.DataScope != nil {
		updates["data_scope"] = *req.DataScope
	}
	if req.Remark != nil {
		updates["remark"] = *req.Remark
	}

	if err := s.roleRepo.UpdateRole(roleId, updates); err != nil {
		return err
	}

	// 启停影响权限集，清掉持有者的快照
	if req.Status != nil {
		s.permissionService.InvalidateUsersOfRole(ctx, roleId, role.CompanyId)
	}
	return nil
}

// DeleteRole 删除角色。
// admin 角色禁止删除；仍被用户持有的角色禁止删除。
func (s *RoleService) DeleteRole(ctx context.Context, roleId uint64) error {
	role, err := s.roleRepo.GetRole(roleId)
	if err != nil {
		return err
	}

	if model.IsAdminRole(role.Code) {
		return ErrAdminRoleProtected
	}

	count, err := s.userRepo.CountUsersOfRole(roleId)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrRoleStillAssigned
	}

	return s.roleRepo.DeleteRole(roleId)
}

func (s *RoleService) GetRole(roleId uint64) (*model.Role, error) {
	return s.roleRepo.GetRole(roleId)
}

func (s *RoleService) GetRoleList(page *model.PageReq) ([]model.Role, int64, error) {
	page.Normalize()
	return s.roleRepo.GetRoleList(page.Offset(), page.PageSize)
}

// AssignMenus 全量替换角色可见的菜单集合
func (s *RoleService) AssignMenus(ctx context.Context, roleId uint64, menuIds []uint64) error {
	role, err := s.roleRepo.GetRole(roleId)
	if err != nil {
		return err
	}
	if err := s.roleRepo.ReplaceRoleMenus(roleId, menuIds); err != nil {
		return err
	}
	s.permissionService.InvalidateUsersOfRole(ctx, roleId, role.CompanyId)
	return nil
}

// AssignPermissions 全量替换角色的权限点集合
func (s *RoleService) AssignPermissions(ctx context.Context, roleId uint64, permissionIds []uint64) error {
	role, err := s.roleRepo.GetRole(roleId)
	if err != nil {
		return err
	}
	if err := s.roleRepo.ReplaceRolePermissions(roleId, permissionIds); err != nil {
		return err
	}
	s.permissionService.InvalidateUsersOfRole(ctx, roleId, role.CompanyId)
	return nil
}

func (s *RoleService) GetRoleMenuIds(roleId uint64) ([]uint64, error) {
	if _, err := s.roleRepo.GetRole(roleId); err != nil {
		return nil, err
	}
	return s.roleRepo.GetRoleMenuIds(roleId)
}

func (s *RoleService) GetRolePermissionIds(roleId uint64) ([]uint64, error) {
	if _, err := s.roleRepo.GetRole(roleId); err != nil {
		return nil, err
	}
	return s.roleRepo.GetRolePermissionIds(roleId)
}
