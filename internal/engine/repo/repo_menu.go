package repo

import (
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/pkg/database"
	"gorm.io/gorm"
)

type IMenuRepository interface {
	AddMenu(menu *model.Menu) error
	UpdateMenu(menuId uint64, updates map[string]any) error
	UpdateMenuParent(menuId uint64, parentId *uint64) error
	UpdateMenuStatus(menuIds []uint64, status int) error
	DeleteMenu(menuId uint64) error
	GetMenu(menuId uint64) (*model.Menu, error)
	GetMenuList() ([]model.Menu, error)
	GetMenusByIds(menuIds []uint64) ([]model.Menu, error)
	CountChildren(menuId uint64) (int64, error)
}

type MenuRepo struct {
	db        database.IDatabase
	menuModel *model.Menu
}

func NewMenuRepo(db database.IDatabase) IMenuRepository {
	return &MenuRepo{
		db:        db,
		menuModel: &model.Menu{},
	}
}

func (mr *MenuRepo) AddMenu(menu *model.Menu) error {
	return mr.db.Database().Create(menu).Error
}

// UpdateMenu 按列更新属性（父节点走 UpdateMenuParent）。
// visible=0 之类的零值必须真正写库，所以用 map 而不是结构体。
func (mr *MenuRepo) UpdateMenu(menuId uint64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return mr.db.Database().Table(mr.menuModel.TableName()).
		Scopes(tenantScope).
		Where("id = ?", menuId).
		Updates(updates).Error
}

// UpdateMenuParent 调整父节点，环检测由上层完成
func (mr *MenuRepo) UpdateMenuParent(menuId uint64, parentId *uint64) error {
	return mr.db.Database().Table(mr.menuModel.TableName()).
		Scopes(tenantScope).
		Where("id = ?", menuId).
		Update("parent_id", parentId).Error
}

// UpdateMenuStatus 批量启停，级联禁用时使用
func (mr *MenuRepo) UpdateMenuStatus(menuIds []uint64, status int) error {
	if len(menuIds) == 0 {
		return nil
	}
	return mr.db.Database().Table(mr.menuModel.TableName()).
		Scopes(tenantScope).
		Where("id IN ?", menuIds).
		Update("status", status).Error
}

// DeleteMenu 软删除，同时清理角色绑定
func (mr *MenuRepo) DeleteMenu(menuId uint64) error {
	return mr.db.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(mr.menuModel.TableName()).
			Scopes(tenantScope).
			Where("id = ?", menuId).
			Update("deleted", model.Deleted).Error; err != nil {
			return err
		}
		return tx.Where("menu_id = ?", menuId).Delete(&model.RoleMenu{}).Error
	})
}

func (mr *MenuRepo) GetMenu(menuId uint64) (*model.Menu, error) {
	var m = &model.Menu{}
	err := mr.db.Database().Table(mr.menuModel.TableName()).
		Scopes(tenantScope, notDeleted).
		Where("id = ?", menuId).First(m).Error
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetMenuList 当前租户的全部菜单，树构建在上层完成
func (mr *MenuRepo) GetMenuList() ([]model.Menu, error) {
	var menus []model.Menu
	err := mr.db.Database().Table(mr.menuModel.TableName()).
		Scopes(tenantScope, notDeleted).
		Order("sort = 0, sort, id").Find(&menus).Error
	return menus, err
}

func (mr *MenuRepo) GetMenusByIds(menuIds []uint64) ([]model.Menu, error) {
	var menus []model.Menu
	if len(menuIds) == 0 {
		return menus, nil
	}
	err := mr.db.Database().Table(mr.menuModel.TableName()).
		Scopes(tenantScope, notDeleted).
		Where("id IN ?", menuIds).Find(&menus).Error
	return menus, err
}

func (mr *MenuRepo) CountChildren(menuId uint64) (int64, error) {
	var count int64
	err := mr.db.Database().Table(mr.menuModel.TableName()).
		Scopes(tenantScope, notDeleted).
		Where("parent_id = ?", menuId).Count(&count).Error
	return count, err
}
