package repo

import (
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/pkg/database"
	"gorm.io/gorm"
)

type IPermissionRepository interface {
	AddPermission(permission *model.Permission) error
	UpdatePermission(permissionId uint64, updates map[string]any) error
	DeletePermission(permissionId uint64) error
	GetPermission(permissionId uint64) (*model.Permission, error)
	GetPermissionByCode(code string) (*model.Permission, error)
	GetPermissionList(offset, pageSize int) ([]model.Permission, int64, error)
	GetPermissionsByIds(permissionIds []uint64) ([]model.Permission, error)
	CountRolesOfPermission(permissionId uint64) (int64, error)
	GetRoleIdsOfPermission(permissionId uint64) ([]uint64, error)
}

type PermissionRepo struct {
	db              database.IDatabase
	permissionModel *model.Permission
}

func NewPermissionRepo(db database.IDatabase) IPermissionRepository {
	return &PermissionRepo{
		db:              db,
		permissionModel: &model.Permission{},
	}
}

func (pr *PermissionRepo) AddPermission(permission *model.Permission) error {
	return pr.db.Database().Create(permission).Error
}

// UpdatePermission 按列更新，零值状态也要落库
func (pr *PermissionRepo) UpdatePermission(permissionId uint64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return pr.db.Database().Table(pr.permissionModel.TableName()).
		Scopes(tenantScope).
		Where("id = ?", permissionId).
		Updates(updates).Error
}

// DeletePermission 软删除，同时清理角色绑定
func (pr *PermissionRepo) DeletePermission(permissionId uint64) error {
	return pr.db.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(pr.permissionModel.TableName()).
			Scopes(tenantScope).
			Where("id = ?", permissionId).
			Update("deleted", model.Deleted).Error; err != nil {
			return err
		}
		return tx.Where("permission_id = ?", permissionId).Delete(&model.RolePermission{}).Error
	})
}

func (pr *PermissionRepo) GetPermission(permissionId uint64) (*model.Permission, error) {
	var p = &model.Permission{}
	err := pr.db.Database().Table(pr.permissionModel.TableName()).
		Scopes(tenantScope, notDeleted).
		Where("id = ?", permissionId).First(p).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (pr *PermissionRepo) GetPermissionByCode(code string) (*model.Permission, error) {
	var p = &model.Permission{}
	err := pr.db.Database().Table(pr.permissionModel.TableName()).
		Scopes(tenantScope, notDeleted).
		Where("code = ?", code).First(p).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (pr *PermissionRepo) GetPermissionList(offset, pageSize int) ([]model.Permission, int64, error) {
	var permissions []model.Permission
	var count int64

	scope := func(db *gorm.DB) *gorm.DB {
		return db.Table(pr.permissionModel.TableName()).Scopes(tenantScope, notDeleted)
	}

	if err := pr.db.Database().Scopes(scope).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := pr.db.Database().Scopes(scope).
		Order("code").Offset(offset).Limit(pageSize).Find(&permissions).Error
	return permissions, count, err
}

func (pr *PermissionRepo) GetPermissionsByIds(permissionIds []uint64) ([]model.Permission, error) {
	var permissions []model.Permission
	if len(permissionIds) == 0 {
		return permissions, nil
	}
	err := pr.db.Database().Table(pr.permissionModel.TableName()).
		Scopes(tenantScope, notDeleted).
		Where("id IN ?", permissionIds).Find(&permissions).Error
	return permissions, err
}

func (pr *PermissionRepo) CountRolesOfPermission(permissionId uint64) (int64, error) {
	var count int64
	err := pr.db.Database().Model(&model.RolePermission{}).
		Where("permission_id = ?", permissionId).Count(&count).Error
	return count, err
}

func (pr *PermissionRepo) GetRoleIdsOfPermission(permissionId uint64) ([]uint64, error) {
	var roleIds []uint64
	err := pr.db.Database().Model(&model.RolePermission{}).
		Where("permission_id = ?", permissionId).
		Pluck("role_id", &roleIds).Error
	return roleIds, err
}
