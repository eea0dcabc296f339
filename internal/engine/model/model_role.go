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

import "strings"

// Role 角色表，按租户隔离
type Role struct {
	BaseModel
	Uid       string  `gorm:"column:uid;not null;uniqueIndex" json:"uid"`       // 对外标识，ulid
	Code      string  `gorm:"column:code;not null;index" json:"code"`           // 角色码，EffectiveAuthorities 中以 ROLE_ 前缀出现
	Name      string  `gorm:"column:name;not null" json:"name"`                 // 角色名称
	Sort      int     `gorm:"column:sort;default:0" json:"sort"`                // 排序（数值越小越靠前）
	Status    int     `gorm:"column:status;not null;default:1" json:"status"`   // 0: disabled, 1: enabled
	DataScope int     `gorm:"column:data_scope;default:1" json:"dataScope"`     // 数据范围
	CompanyId *uint64 `gorm:"column:company_id;index" json:"companyId"`
	IsDeleted int     `gorm:"column:deleted;not null;default:0" json:"-"`
	Remark    string  `gorm:"column:remark" json:"remark"`
}

func (Role) TableName() string {
	return "t_role"
}

// AdminRoleCode 管理员角色码，匹配不区分大小写。
// 持有该角色的用户绕过权限点校验，角色本身禁止删除与禁用。
const AdminRoleCode = "admin"

// IsAdminRole 判断角色码是否为受保护的管理员角色
func IsAdminRole(code string) bool {
	return strings.EqualFold(code, AdminRoleCode)
}

// RolePrefix 角色码在权限集中的前缀
const RolePrefix = "ROLE_"

// 数据范围
const (
	DataScopeAll        = 1 // 全部数据
	DataScopeCustom     = 2 // 自定义部门
	DataScopeDept       = 3 // 本部门
	DataScopeDeptAndSub = 4 // 本部门及以下
	DataScopeSelf       = 5 // 仅本人
)

// CreateRoleReq request for creating role
type CreateRoleReq struct {
	Code      string `json:"code" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Sort      int    `json:"sort"`
	Status    *int   `json:"status"`
	DataScope *int   `json:"dataScope"`
	Remark    string `json:"remark"`
}

// UpdateRoleReq request for updating role
type UpdateRoleReq struct {
	Name      *string `json:"name,omitempty"`
	Sort      *int    `json:"sort,omitempty"`
	Status    *int    `json:"status,omitempty"`
	DataScope *int    `json:"dataScope,omitempty"`
	Remark    *string `json:"remark,omitempty"`
}

// AssignRoleMenusReq 菜单分配请求，全量替换该角色可见的菜单集合
type AssignRoleMenusReq struct {
	MenuIds []uint64 `json:"menuIds"`
}

// AssignRolePermissionsReq 权限点分配请求，全量替换
type AssignRolePermissionsReq struct {
	PermissionIds []uint64 `json:"permissionIds"`
}
