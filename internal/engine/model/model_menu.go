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

package model

import "github.com/go-atrium/atrium/pkg/datatype"

// Menu 菜单表，按租户隔离
// ParentId 为空表示顶级菜单
type Menu struct {
	BaseModel
	Uid            string  `gorm:"column:uid;not null;uniqueIndex" json:"uid"` // 对外标识，ulid
	ParentId       *uint64 `gorm:"column:parent_id;index" json:"parentId"`
	Name           string  `gorm:"column:name;not null" json:"name"`          // 菜单名称
	Path           string  `gorm:"column:path" json:"path"`                   // 路由路径
	Component      string  `gorm:"column:component" json:"component"`         // 前端组件
	Icon           string  `gorm:"column:icon" json:"icon"`
	Sort           int     `gorm:"column:sort;default:0" json:"sort"`         // 排序（数值越小越靠前）
	PermissionCode string  `gorm:"column:permission_code" json:"permissionCode"` // 关联权限码，为空表示无权限要求
	Visible        int     `gorm:"column:visible;default:1" json:"visible"`   // 0-隐藏，1-显示
	Status         int     `gorm:"column:status;not null;default:1" json:"status"`
	CompanyId      *uint64 `gorm:"column:company_id;index" json:"companyId"`
	IsDeleted      int     `gorm:"column:deleted;not null;default:0" json:"-"`

	// Meta 前端自由使用的扩展元数据
	Meta datatype.JSON `gorm:"column:meta;type:json" json:"meta,omitempty"`
}

func (Menu) TableName() string {
	return "t_menu"
}

// 菜单可见性常量
const (
	MenuVisible   = 1
	MenuInvisible = 0
)

// MenuNode 菜单树节点
type MenuNode struct {
	Menu
	Children []*MenuNode `json:"children"`
}

// CreateMenuReq request for creating menu
type CreateMenuReq struct {
	ParentId       *uint64 `json:"parentId"`
	Name           string  `json:"name" validate:"required"`
	Path           string  `json:"path"`
	Component      string  `json:"component"`
	Icon           string  `json:"icon"`
	Sort           int     `json:"sort"`
	PermissionCode string  `json:"permissionCode"`
	Visible        *int    `json:"visible"`
	Status         *int    `json:"status"`

	Meta datatype.JSON `json:"meta,omitempty"`
}

// UpdateMenuReq request for updating menu
// 调整父节点走 MoveMenuReq，这里不接受 parentId
type UpdateMenuReq struct {
	Name           *string `json:"name,omitempty"`
	Path           *string `json:"path,omitempty"`
	Component      *string `json:"component,omitempty"`
	Icon           *string `json:"icon,omitempty"`
	Sort           *int    `json:"sort,omitempty"`
	PermissionCode *string `json:"permissionCode,omitempty"`
	Visible        *int    `json:"visible,omitempty"`
	Status         *int    `json:"status,omitempty"`

	Meta datatype.JSON `json:"meta,omitempty"`
}

// MoveMenuReq 调整父节点请求
// NewParentId 为 nil 表示移动到顶级
type MoveMenuReq struct {
	NewParentId *uint64 `json:"newParentId"`
}
