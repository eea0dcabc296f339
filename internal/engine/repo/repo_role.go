package repo

import (
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/pkg/database"
	"gorm.io/gorm"
)

type IRoleRepository interface {
	AddRole(role *model.Role) error
	UpdateRole(roleId uint64, updates map[string]any) error
	DeleteRole(roleId uint64) error
	GetRole(roleId uint64) (*model.Role, error)
	GetRoleByCode(code string) (*model.Role, error)
	GetRoleList(offset, pageSize int) ([]model.Role, int64, error)
	GetRolesByIds(roleIds []uint64) ([]model.Role, error)
	ReplaceRoleMenus(roleId uint64, menuIds []uint64) error
	ReplaceRolePermissions(roleId uint64, permissionIds []uint64) error
	GetRoleMenuIds(roleId uint64) ([]uint64, error)
	GetRolePermissionIds(roleId uint64) ([]uint64, error)
	GetPermissionsOfRoles(roleIds []uint64) ([]model.Permission, error)
	GetMenusOfRoles(roleIds []uint64) ([]model.Menu, error)
	GetUserIdsOfRole(roleId uint64) ([]uint64, error)
}

type RoleRepo struct {
	db        database.IDatabase
	roleModel *model.Role
}

func NewRoleRepo(db database.IDatabase) IRoleRepository {
	return &RoleRepo{
		db:        db,
		roleModel: &model.Role{},
	}
}

func (rr *RoleRepo) AddRole(role *model.Role) error {
	return rr.db.Database().Create(role).Error
}

// UpdateRole 按列更新。禁用等零值也必须落库，结构体 Updates 会跳过零值，
// 所以这里只接受列名到值的映射。
func (rr *RoleRepo) UpdateRole(roleId uint64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return rr.db.Database().Table(rr.roleModel.TableName()).
		Scopes(tenantScope).
		Where("id = ?", roleId).
		Updates(updates).Error
}

// DeleteRole 软删除，同时清理绑定关系
func (rr *RoleRepo) DeleteRole(roleId uint64) error {
	return rr.db.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(rr.roleModel.TableName()).
			Scopes(tenantScope).
			Where("id = ?", roleId).
			Update("deleted", model.Deleted).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", roleId).Delete(&model.UserRole{}).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", roleId).Delete(&model.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Where("role_id = ?", roleId).Delete(&model.RoleMenu{}).Error
	})
}

func (rr *RoleRepo) GetRole(roleId uint64) (*model.Role, error) {
	var r = &model.Role{}
	err := rr.db.Database().Table(rr.roleModel.TableName()).
		Scopes(tenantScope, notDeleted).
		Where("id = ?", roleId).First(r).Error
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (rr *RoleRepo) GetRoleByCode(code string) (*model.Role, error) {
	var r = &model.Role{}
	err := rr.db.Database().Table(rr.roleModel.TableName()).
		Scopes(tenantScope, notDeleted).
		Where("code = ?", code).First(r).Error
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (rr *RoleRepo) GetRoleList(offset, pageSize int) ([]model.Role, int64, error) {
	var roles []model.Role
	var count int64

	scope := func(db *gorm.DB) *gorm.DB {
		return db.Table(rr.roleModel.TableName()).Scopes(tenantScope, notDeleted)
	}

	if err := rr.db.Database().Scopes(scope).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := rr.db.Database().Scopes(scope).
		Order("sort = 0, sort, id").Offset(offset).Limit(pageSize).Find(&roles).Error
	return roles, count, err
}

func (rr *RoleRepo) GetRolesByIds(roleIds []uint64) ([]model.Role, error) {
	var roles []model.Role
	if len(roleIds) == 0 {
		return roles, nil
	}
	err := rr.db.Database().Table(rr.roleModel.TableName()).
		Scopes(tenantScope, notDeleted).
		Where("id IN ?", roleIds).Find(&roles).Error
	return roles, err
}

// ReplaceRoleMenus 全量替换角色可见的菜单集合
func (rr *RoleRepo) ReplaceRoleMenus(roleId uint64, menuIds []uint64) error {
	return rr.db.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleId).Delete(&model.RoleMenu{}).Error; err != nil {
			return err
		}
		if len(menuIds) == 0 {
			return nil
		}
		bindings := make([]model.RoleMenu, 0, len(menuIds))
		for _, menuId := range menuIds {
			bindings = append(bindings, model.RoleMenu{RoleId: roleId, MenuId: menuId})
		}
		return tx.Create(&bindings).Error
	})
}

// ReplaceRolePermissions 全量替换角色的权限点集合
func (rr *RoleRepo) ReplaceRolePermissions(roleId uint64, permissionIds []uint64) error {
	return rr.db.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleId).Delete(&model.RolePermission{}).Error; err != nil {
			return err
		}
		if len(permissionIds) == 0 {
			return nil
		}
		bindings := make([]model.RolePermission, 0, len(permissionIds))
		for _, permissionId := range permissionIds {
			bindings = append(bindings, model.RolePermission{RoleId: roleId, PermissionId: permissionId})
		}
		return tx.Create(&bindings).Error
	})
}

func (rr *RoleRepo) GetRoleMenuIds(roleId uint64) ([]uint64, error) {
	var menuIds []uint64
	err := rr.db.Database().Model(&model.RoleMenu{}).
		Where("role_id = ?", roleId).Pluck("menu_id", &menuIds).Error
	return menuIds, err
}

func (rr *RoleRepo) GetRolePermissionIds(roleId uint64) ([]uint64, error) {
	var permissionIds []uint64
	err := rr.db.Database().Model(&model.RolePermission{}).
		Where("role_id = ?", roleId).Pluck("permission_id", &permissionIds).Error
	return permissionIds, err
}

// GetPermissionsOfRoles 角色集合可达的全部已启用权限点
func (rr *RoleRepo) GetPermissionsOfRoles(roleIds []uint64) ([]model.Permission, error) {
	var permissions []model.Permission
	if len(roleIds) == 0 {
		return permissions, nil
	}
	err := rr.db.Database().Table("t_permission").
		Distinct("t_permission.*").
		Joins("JOIN t_role_permission ON t_role_permission.permission_id = t_permission.id").
		Where("t_role_permission.role_id IN ?", roleIds).
		Where("t_permission.status = ?", model.StatusEnabled).
		Where("t_permission.deleted = ?", model.NotDeleted).
		Find(&permissions).Error
	return permissions, err
}

// GetMenusOfRoles 角色集合可见的全部菜单
func (rr *RoleRepo) GetMenusOfRoles(roleIds []uint64) ([]model.Menu, error) {
	var menus []model.Menu
	if len(roleIds) == 0 {
		return menus, nil
	}
	err := rr.db.Database().Table("t_menu").
		Distinct("t_menu.*").
		Joins("JOIN t_role_menu ON t_role_menu.menu_id = t_menu.id").
		Where("t_role_menu.role_id IN ?", roleIds).
		Where("t_menu.deleted = ?", model.NotDeleted).
		Find(&menus).Error
	return menus, err
}

// GetUserIdsOfRole 持有该角色的用户，权限缓存失效时使用
func (rr *RoleRepo) GetUserIdsOfRole(roleId uint64) ([]uint64, error) {
	var userIds []uint64
	err := rr.db.Database().Model(&model.UserRole{}).
		Where("role_id = ?", roleId).Pluck("user_id", &userIds).Error
	return userIds, err
}
