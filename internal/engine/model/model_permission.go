package model

// Permission 权限点表，按租户隔离
type Permission struct {
	BaseModel
	Uid       string  `gorm:"column:uid;not null;uniqueIndex" json:"uid"` // 对外标识，ulid
	Code      string  `gorm:"column:code;not null;index" json:"code"`     // 权限码，如 system:user:list
	Name      string  `gorm:"column:name;not null" json:"name"`
	Type      string  `gorm:"column:type;not null;default:API" json:"type"` // MENU/BUTTON/API/DATA
	Status    int     `gorm:"column:status;not null;default:1" json:"status"`
	CompanyId *uint64 `gorm:"column:company_id;index" json:"companyId"`
	IsDeleted int     `gorm:"column:deleted;not null;default:0" json:"-"`
	Remark    string  `gorm:"column:remark" json:"remark"`
}

func (Permission) TableName() string {
	return "t_permission"
}

// 权限点类型
const (
	PermTypeMenu   = "MENU"
	PermTypeButton = "BUTTON"
	PermTypeApi    = "API"
	PermTypeData   = "DATA"
)

// CreatePermissionReq request for creating permission
type CreatePermissionReq struct {
	Code   string `json:"code" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Type   string `json:"type"`
	Status *int   `json:"status"`
	Remark string `json:"remark"`
}

// UpdatePermissionReq request for updating permission
type UpdatePermissionReq struct {
	Name   *string `json:"name,omitempty"`
	Type   *string `json:"type,omitempty"`
	Status *int    `json:"status,omitempty"`
	Remark *string `json:"remark,omitempty"`
}
