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

package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/internal/engine/repo"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/id"
	"github.com/go-atrium/atrium/pkg/log"
	"github.com/go-atrium/atrium/pkg/safe"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

var ErrCompanyCodeExists = errors.New(http.CompanyCodeExists.Msg)

// CompanyService 租户管理，平台级接口
type CompanyService struct {
	companyRepo       repo.ICompanyRepository
	permissionService *PermissionService
	cron              *cron.Cron
}

func NewCompanyService(companyRepo repo.ICompanyRepository, permissionService *PermissionService) *CompanyService {
	return &CompanyService{
		companyRepo:       companyRepo,
		permissionService: permissionService,
		cron:              cron.New(),
	}
}

func (s *CompanyService) CreateCompany(req *model.CreateCompanyReq) (*model.Company, error) {
	if _, err := s.companyRepo.GetCompanyByCode(req.Code); err == nil {
		return nil, ErrCompanyCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	company := &model.Company{
		Uid:        id.GetUlid(),
		Code:       req.Code,
		Name:       req.Name,
		Domain:     req.Domain,
		Enabled:    model.StatusEnabled,
		ExpireTime: req.ExpireTime,
		Remark:     req.Remark,
	}
	if req.Enabled != nil {
		company.Enabled = *req.Enabled
	}

	if err := s.companyRepo.AddCompany(company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) UpdateCompany(companyId uint64, req *model.UpdateCompanyReq) error {
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Domain != nil {
		updates["domain"] = *req.Domain
	}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}
	if req.ExpireTime != nil {
		updates["expire_time"] = *req.ExpireTime
	}
	if req.Remark != nil {
		updates["remark"] = *req.Remark
	}

	if err := s.companyRepo.UpdateCompany(companyId, updates); err != nil {
		return err
	}

	// 租户被禁用后整租户的权限快照立即失效
	if req.Enabled != nil && *req.Enabled == model.StatusDisabled {
		s.permissionService.InvalidateCompany(context.Background(), &companyId)
	}
	return nil
}

func (s *CompanyService) DeleteCompany(companyId uint64) error {
	if err := s.companyRepo.DeleteCompany(companyId); err != nil {
		return err
	}
	s.permissionService.InvalidateCompany(context.Background(), &companyId)
	return nil
}

func (s *CompanyService) GetCompany(companyId uint64) (*model.Company, error) {
	return s.companyRepo.GetCompany(companyId)
}

func (s *CompanyService) GetCompanyList(page *model.PageReq) ([]model.Company, int64, error) {
	page.Normalize()
	return s.companyRepo.GetCompanyList(page.Offset(), page.PageSize)
}

// StartExpireSweeper 定期把已到期的租户置为禁用。
// 到期租户的用户下次解析租户时即被拒绝。
func (s *CompanyService) StartExpireSweeper() error {
	_, err := s.cron.AddFunc("@hourly", func() {
		safe.Do(s.sweepExpired)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// StopExpireSweeper 停止到期扫描
func (s *CompanyService) StopExpireSweeper() {
	s.cron.Stop()
}

func (s *CompanyService) sweepExpired() {
	companies, err := s.companyRepo.GetExpiredCompanies(time.Now())
	if err != nil {
		log.Errorw("failed to list expired companies", "error", err)
		return
	}
	if len(companies) == 0 {
		return
	}

	companyIds := make([]uint64, 0, len(companies))
	for _, company := range companies {
		companyIds = append(companyIds, company.ID)
	}
	if err := s.companyRepo.DisableCompanies(companyIds); err != nil {
		log.Errorw("failed to disable expired companies", "error", err)
		return
	}
	for _, companyId := range companyIds {
		s.permissionService.InvalidateCompany(context.Background(), &companyId)
	}
	log.Infow("disabled expired companies", "count", len(companyIds))
}
