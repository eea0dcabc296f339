package repo

import (
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/pkg/tenant"
	"gorm.io/gorm"
)

/**
 * @file: repo.go
 * @description: 租户与软删除查询范围
 */

// tenantScope 追加当前租户的隔离条件。
// 未解析出租户时不加条件，平台级账号可以跨租户查询。
func tenantScope(db *gorm.DB) *gorm.DB {
	if companyId, ok := tenant.Get(); ok {
		return db.Where("company_id = ?", companyId)
	}
	return db
}

// notDeleted 过滤软删除记录
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted = ?", model.NotDeleted)
}
