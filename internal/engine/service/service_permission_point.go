package service

import (
	"context"
	"errors"

	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/id"
	"github.com/go-atrium/atrium/pkg/log"
	"gorm.io/gorm"
)

/**
 * @file: service_permission_point.go
 * @description: 权限点管理
 */

var (
	ErrPermCodeExists  = errors.New(http.PermCodeExists.Msg)
	ErrPermissionInUse = errors.New(http.PermissionInUse.Msg)
)

// CreatePermission 新建权限点，权限码在租户内唯一
func (s *PermissionService) CreatePermission(req *model.CreatePermissionReq, companyId *uint64) (*model.Permission, error) {
	if _, err := s.permissionRepo.GetPermissionByCode(req.Code); err == nil {
		return nil, ErrPermCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	permission := &model.Permission{
		Uid:       id.GetUlid(),
		Code:      req.Code,
		Name:      req.Name,
		Type:      model.PermTypeApi,
		Status:    model.StatusEnabled,
		CompanyId: companyId,
		Remark:    req.Remark,
	}
	if req.Type != "" {
		permission.Type = req.Type
	}
	if req.Status != nil {
		permission.Status = *req.Status
	}

	if err := s.permissionRepo.AddPermission(permission); err != nil {
		return nil, err
	}
	return permission, nil
}

// UpdatePermission 更新权限点，启停变更会影响持有者的权限集
func (s *PermissionService) UpdatePermission(ctx context.Context, permissionId uint64, req *model.UpdatePermissionReq) error {
	current, err := s.permissionRepo.GetPermission(permissionId)
	if err != nil {
		return err
	}
	previousStatus := current.Status

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Remark != nil {
		updates["remark"] = *req.Remark
	}

	if err := s.permissionRepo.UpdatePermission(permissionId, updates); err != nil {
		return err
	}

	if req.Status != nil && *req.Status != previousStatus {
		s.invalidateHolders(ctx, permissionId, current.CompanyId)
	}
	return nil
}

// invalidateHolders 权限点启停后，清除所有经由角色持有它的用户的权限快照
func (s *PermissionService) invalidateHolders(ctx context.Context, permissionId uint64, companyId *uint64) {
	roleIds, err := s.permissionRepo.GetRoleIdsOfPermission(permissionId)
	if err != nil {
		log.Errorw("failed to list roles of permission", "permissionId", permissionId, "error", err)
		return
	}
	for _, roleId := range roleIds {
		s.InvalidateUsersOfRole(ctx, roleId, companyId)
	}
}

// DeletePermission 删除权限点，仍绑定在角色上时拒绝
func (s *PermissionService) DeletePermission(permissionId uint64) error {
	if _, err := s.permissionRepo.GetPermission(permissionId); err != nil {
		return err
	}

	count, err := s.permissionRepo.CountRolesOfPermission(permissionId)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrPermissionInUse
	}

	return s.permissionRepo.DeletePermission(permissionId)
}

func (s *PermissionService) GetPermission(permissionId uint64) (*model.Permission, error) {
	return s.permissionRepo.GetPermission(permissionId)
}

func (s *PermissionService) GetPermissionList(page *model.PageReq) ([]model.Permission, int64, error) {
	page.Normalize()
	return s.permissionRepo.GetPermissionList(page.Offset(), page.PageSize)
}
