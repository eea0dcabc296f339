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

// User 用户表
// CompanyId 为空表示平台级账号，不归属任何租户
type User struct {
	BaseModel
	Uid          string  `gorm:"column:uid;not null;uniqueIndex" json:"uid"`           // 对外标识，uuid
	Username     string  `gorm:"column:username;not null;uniqueIndex" json:"username"` // 登录名
	Nickname     string  `gorm:"column:nickname" json:"nickname"`                      // 显示名
	Password     string  `gorm:"column:password;not null" json:"-"`                    // bcrypt hash
	Email        string  `gorm:"column:email" json:"email"`
	Phone        string  `gorm:"column:phone" json:"phone"`
	Avatar       string  `gorm:"column:avatar" json:"avatar"`
	CompanyId    *uint64 `gorm:"column:company_id;index" json:"companyId"`
	DepartmentId *uint64 `gorm:"column:department_id;index" json:"departmentId"`
	Status       int     `gorm:"column:status;not null;default:1" json:"status"`   // 0: disabled, 1: enabled
	IsDeleted    int     `gorm:"column:deleted;not null;default:0" json:"-"`       // 软删除标记
	Remark       string  `gorm:"column:remark" json:"remark"`
}

func (User) TableName() string {
	return "t_user"
}

// LoginReq 登录请求
type LoginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenInfo 登录成功后下发的令牌对
type TokenInfo struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"` // 毫秒
}

// LoginResp 登录响应
type LoginResp struct {
	UserInfo  UserInfo  `json:"userInfo"`
	TokenInfo TokenInfo `json:"tokenInfo"`
}

// UserInfo 脱敏后的用户信息
type UserInfo struct {
	UserId      uint64   `json:"userId"`
	Username    string   `json:"username"`
	Nickname    string   `json:"nickname"`
	Email       string   `json:"email"`
	Avatar      string   `json:"avatar"`
	CompanyId   *uint64  `json:"companyId"`
	Authorities []string `json:"authorities"`
}

// RefreshTokenReq 续签请求
type RefreshTokenReq struct {
	UserId       uint64 `json:"userId" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// CreateUserReq 创建用户请求
type CreateUserReq struct {
	Username     string  `json:"username" validate:"required"`
	Nickname     string  `json:"nickname"`
	Password     string  `json:"password" validate:"required"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	DepartmentId *uint64 `json:"departmentId"`
	Status       *int    `json:"status"`
	Remark       string  `json:"remark"`
}

// UpdateUserReq 更新用户请求
type UpdateUserReq struct {
	Nickname     *string `json:"nickname,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Avatar       *string `json:"avatar,omitempty"`
	DepartmentId *uint64 `json:"departmentId,omitempty"`
	Status       *int    `json:"status,omitempty"`
	Remark       *string `json:"remark,omitempty"`
}

// AssignUserRolesReq 角色分配请求，全量替换该用户的角色集合
type AssignUserRolesReq struct {
	RoleIds []uint64 `json:"roleIds"`
}

// ChangePasswordReq 修改密码请求
type ChangePasswordReq struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// ResetPasswordReq 管理员重置密码请求，不校验旧密码
type ResetPasswordReq struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// TransferUserReq 租户调动请求
type TransferUserReq struct {
	CompanyId uint64 `json:"companyId" validate:"required"`
}
