package model

import "time"

/**
 * @file: model.go
 * @description: base model
 */

type BaseModel struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// 软删除标记
const (
	NotDeleted = 0
	Deleted    = 1
)

// 通用启用状态
const (
	StatusDisabled = 0
	StatusEnabled  = 1
)

// PageReq 分页请求
type PageReq struct {
	PageNum  int `query:"pageNum" json:"pageNum"`
	PageSize int `query:"pageSize" json:"pageSize"`
}

func (p *PageReq) Normalize() {
	if p.PageNum <= 0 {
		p.PageNum = 1
	}
	if p.PageSize <= 0 || p.PageSize > 200 {
		p.PageSize = 20
	}
}

func (p *PageReq) Offset() int {
	return (p.PageNum - 1) * p.PageSize
}

// PageResp 分页响应
type PageResp struct {
	Total int64 `json:"total"`
	List  any   `json:"list"`
}
