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

import "time"

// UserRole 用户-角色绑定表
type UserRole struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserId    uint64    `gorm:"column:user_id;not null;index" json:"userId"`
	RoleId    uint64    `gorm:"column:role_id;not null;index" json:"roleId"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (UserRole) TableName() string {
	return "t_user_role"
}

// RolePermission 角色-权限点绑定表
type RolePermission struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RoleId       uint64    `gorm:"column:role_id;not null;index" json:"roleId"`
	PermissionId uint64    `gorm:"column:permission_id;not null;index" json:"permissionId"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (RolePermission) TableName() string {
	return "t_role_permission"
}

// RoleMenu 角色-菜单绑定表
type RoleMenu struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RoleId    uint64    `gorm:"column:role_id;not null;index" json:"roleId"`
	MenuId    uint64    `gorm:"column:menu_id;not null;index" json:"menuId"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (RoleMenu) TableName() string {
	return "t_role_menu"
}
