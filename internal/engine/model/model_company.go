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

// Company 租户表（全局表，不带 company_id 隔离）
type Company struct {
	BaseModel
	Uid        string     `gorm:"column:uid;not null;uniqueIndex" json:"uid"`     // 对外标识，ulid
	Code       string     `gorm:"column:code;not null;uniqueIndex" json:"code"`   // 租户编码
	Name       string     `gorm:"column:name;not null" json:"name"`
	Domain     string     `gorm:"column:domain;uniqueIndex" json:"domain"`        // 绑定域名，用于按 Host 解析租户
	Enabled    int        `gorm:"column:enabled;not null;default:1" json:"enabled"`
	ExpireTime *time.Time `gorm:"column:expire_time" json:"expireTime"`           // 为空表示永不过期
	IsDeleted  int        `gorm:"column:deleted;not null;default:0" json:"-"`
	Remark     string     `gorm:"column:remark" json:"remark"`
}

func (Company) TableName() string {
	return "t_company"
}

// Expired 判断租户是否已过期
func (c *Company) Expired(now time.Time) bool {
	return c.ExpireTime != nil && c.ExpireTime.Before(now)
}

// Active 租户可用：启用且未过期
func (c *Company) Active(now time.Time) bool {
	return c.Enabled == StatusEnabled && !c.Expired(now)
}

// CreateCompanyReq request for creating company
type CreateCompanyReq struct {
	Code       string     `json:"code" validate:"required"`
	Name       string     `json:"name" validate:"required"`
	Domain     string     `json:"domain"`
	Enabled    *int       `json:"enabled"`
	ExpireTime *time.Time `json:"expireTime"`
	Remark     string     `json:"remark"`
}

// UpdateCompanyReq request for updating company
type UpdateCompanyReq struct {
	Name       *string    `json:"name,omitempty"`
	Domain     *string    `json:"domain,omitempty"`
	Enabled    *int       `json:"enabled,omitempty"`
	ExpireTime *time.Time `json:"expireTime,omitempty"`
	Remark     *string    `json:"remark,omitempty"`
}
