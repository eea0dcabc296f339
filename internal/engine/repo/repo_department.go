package repo

import (
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/pkg/database"
)

type IDepartmentRepository interface {
	AddDepartment(department *model.Department) error
	UpdateDepartment(departmentId uint64, updates map[string]any) error
	DeleteDepartment(departmentId uint64) error
	GetDepartment(departmentId uint64) (*model.Department, error)
	GetDepartmentList() ([]model.Department, error)
	CountChildren(departmentId uint64) (int64, error)
	CountUsers(departmentId uint64) (int64, error)
}

type DepartmentRepo struct {
	db              database.IDatabase
	departmentModel *model.Department
}

func NewDepartmentRepo(db database.IDatabase) IDepartmentRepository {
	return &DepartmentRepo{
		db:              db,
		departmentModel: &model.Department{},
	}
}

func (dr *DepartmentRepo) AddDepartment(department *model.Department) error {
	return dr.db.Database().Create(department).Error
}

// UpdateDepartment 按列更新，零值状态也要落库
func (dr *DepartmentRepo) UpdateDepartment(departmentId uint64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return dr.db.Database().Table(dr.departmentModel.TableName()).
		Scopes(tenantScope).
		Where("id = ?", departmentId).
		Updates(updates).Error
}

func (dr *DepartmentRepo) DeleteDepartment(departmentId uint64) error {
	return dr.db.Database().Table(dr.departmentModel.TableName()).
		Scopes(tenantScope).
		Where("id = ?", departmentId).
		Update("deleted", model.Deleted).Error
}

func (dr *DepartmentRepo) GetDepartment(departmentId uint64) (*model.Department, error) {
	var d = &model.Department{}
	err := dr.db.Database().Table(dr.departmentModel.TableName()).
		Scopes(tenantScope, notDeleted).
		Where("id = ?", departmentId).First(d).Error
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (dr *DepartmentRepo) GetDepartmentList() ([]model.Department, error) {
	var departments []model.Department
	err := dr.db.Database().Table(dr.departmentModel.TableName()).
		Scopes(tenantScope, notDeleted).
		Order("sort = 0, sort, id").Find(&departments).Error
	return departments, err
}

func (dr *DepartmentRepo) CountChildren(departmentId uint64) (int64, error) {
	var count int64
	err := dr.db.Database().Table(dr.departmentModel.TableName()).
		Scopes(tenantScope, notDeleted).
		Where("parent_id = ?", departmentId).Count(&count).Error
	return count, err
}

func (dr *DepartmentRepo) CountUsers(departmentId uint64) (int64, error) {
	var count int64
	err := dr.db.Database().Table("t_user").
		Scopes(tenantScope, notDeleted).
		Where("department_id = ?", departmentId).Count(&count).Error
	return count, err
}
