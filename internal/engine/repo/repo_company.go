package repo

import (
	"context"
	"strconv"
	"time"

	"github.com/go-atrium/atrium/internal/engine/consts"
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/pkg/cache"
	"github.com/go-atrium/atrium/pkg/database"
	"github.com/go-atrium/atrium/pkg/log"
)

type ICompanyRepository interface {
	AddCompany(company *model.Company) error
	UpdateCompany(companyId uint64, updates map[string]any) error
	DeleteCompany(companyId uint64) error
	GetCompany(companyId uint64) (*model.Company, error)
	GetCompanyByCode(code string) (*model.Company, error)
	GetCompanyByDomain(domain string) (*model.Company, error)
	GetCompanyList(offset, pageSize int) ([]model.Company, int64, error)
	GetExpiredCompanies(now time.Time) ([]model.Company, error)
	DisableCompanies(companyIds []uint64) error
}

type CompanyRepo struct {
	db           database.IDatabase
	cache        cache.ICache
	companyModel *model.Company
}

func NewCompanyRepo(db database.IDatabase, cache cache.ICache) ICompanyRepository {
	return &CompanyRepo{
		db:           db,
		cache:        cache,
		companyModel: &model.Company{},
	}
}

func (cr *CompanyRepo) AddCompany(company *model.Company) error {
	return cr.db.Database().Create(company).Error
}

// UpdateCompany 按列更新，enabled=0 的禁用也必须落库
func (cr *CompanyRepo) UpdateCompany(companyId uint64, updates map[string]any) error {
	old, err := cr.GetCompany(companyId)
	if err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}
	if err := cr.db.Database().Table(cr.companyModel.TableName()).
		Where("id = ?", companyId).
		Updates(updates).Error; err != nil {
		return err
	}
	// 域名映射可能变化，清掉缓存
	cr.invalidateDomain(old.Domain)
	if domain, ok := updates["domain"].(string); ok && domain != old.Domain {
		cr.invalidateDomain(domain)
	}
	return nil
}

func (cr *CompanyRepo) DeleteCompany(companyId uint64) error {
	old, err := cr.GetCompany(companyId)
	if err != nil {
		return err
	}
	if err := cr.db.Database().Table(cr.companyModel.TableName()).
		Where("id = ?", companyId).
		Update("deleted", model.Deleted).Error; err != nil {
		return err
	}
	cr.invalidateDomain(old.Domain)
	return nil
}

func (cr *CompanyRepo) GetCompany(companyId uint64) (*model.Company, error) {
	var c = &model.Company{}
	err := cr.db.Database().Table(cr.companyModel.TableName()).
		Scopes(notDeleted).
		Where("id = ?", companyId).First(c).Error
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (cr *CompanyRepo) GetCompanyByCode(code string) (*model.Company, error) {
	var c = &model.Company{}
	err := cr.db.Database().Table(cr.companyModel.TableName()).
		Scopes(notDeleted).
		Where("code = ?", code).First(c).Error
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetCompanyByDomain 按绑定域名查找租户，命中结果缓存一段时间
func (cr *CompanyRepo) GetCompanyByDomain(domain string) (*model.Company, error) {
	ctx := context.Background()
	key := consts.CompanyDomainKey + domain

	if cr.cache != nil {
		idStr, err := cr.cache.Get(ctx, key).Result()
		if err == nil && idStr != "" {
			if companyId, perr := strconv.ParseUint(idStr, 10, 64); perr == nil {
				return cr.GetCompany(companyId)
			}
		}
	}

	var c = &model.Company{}
	err := cr.db.Database().Table(cr.companyModel.TableName()).
		Scopes(notDeleted).
		Where("domain = ?", domain).First(c).Error
	if err != nil {
		return nil, err
	}

	if cr.cache != nil {
		if err := cr.cache.Set(ctx, key, strconv.FormatUint(c.ID, 10), consts.CompanyDomainTTL).Err(); err != nil {
			log.Errorw("failed to cache company domain", "domain", domain, "error", err)
		}
	}

	return c, nil
}

func (cr *CompanyRepo) GetCompanyList(offset, pageSize int) ([]model.Company, int64, error) {
	var companies []model.Company
	var count int64

	if err := cr.db.Database().Table(cr.companyModel.TableName()).
		Scopes(notDeleted).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := cr.db.Database().Table(cr.companyModel.TableName()).
		Scopes(notDeleted).
		Order("id").Offset(offset).Limit(pageSize).Find(&companies).Error
	return companies, count, err
}

// GetExpiredCompanies 已到期但仍处于启用状态的租户
func (cr *CompanyRepo) GetExpiredCompanies(now time.Time) ([]model.Company, error) {
	var companies []model.Company
	err := cr.db.Database().Table(cr.companyModel.TableName()).
		Scopes(notDeleted).
		Where("enabled = ?", model.StatusEnabled).
		Where("expire_time IS NOT NULL AND expire_time < ?", now).
		Find(&companies).Error
	return companies, err
}

func (cr *CompanyRepo) DisableCompanies(companyIds []uint64) error {
	if len(companyIds) == 0 {
		return nil
	}
	return cr.db.Database().Table(cr.companyModel.TableName()).
		Where("id IN ?", companyIds).
		Update("enabled", model.StatusDisabled).Error
}

func (cr *CompanyRepo) invalidateDomain(domain string) {
	if cr.cache == nil || domain == "" {
		return
	}
	if err := cr.cache.Del(context.Background(), consts.CompanyDomainKey+domain).Err(); err != nil {
		log.Errorw("failed to invalidate company domain cache", "domain", domain, "error", err)
	}
}
