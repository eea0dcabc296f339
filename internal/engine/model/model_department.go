package model

// Department 部门表，按租户隔离
type Department struct {
	BaseModel
	Code      string  `gorm:"column:code;not null;uniqueIndex" json:"code"` // 部门编码，缺省自动生成
	ParentId  *uint64 `gorm:"column:parent_id;index" json:"parentId"`
	Name      string  `gorm:"column:name;not null" json:"name"`
	Sort      int     `gorm:"column:sort;default:0" json:"sort"`
	Status    int     `gorm:"column:status;not null;default:1" json:"status"`
	CompanyId *uint64 `gorm:"column:company_id;index" json:"companyId"`
	IsDeleted int     `gorm:"column:deleted;not null;default:0" json:"-"`
}

func (Department) TableName() string {
	return "t_department"
}

// DepartmentNode 部门树节点
type DepartmentNode struct {
	Department
	Children []*DepartmentNode `json:"children"`
}

// CreateDepartmentReq request for creating department
type CreateDepartmentReq struct {
	Code     string  `json:"code"` // 为空时自动生成
	ParentId *uint64 `json:"parentId"`
	Name     string  `json:"name" validate:"required"`
	Sort     int     `json:"sort"`
	Status   *int    `json:"status"`
}

// UpdateDepartmentReq request for updating department
type UpdateDepartmentReq struct {
	ParentId *uint64 `json:"parentId,omitempty"`
	Name     *string `json:"name,omitempty"`
	Sort     *int    `json:"sort,omitempty"`
	Status   *int    `json:"status,omitempty"`
}
