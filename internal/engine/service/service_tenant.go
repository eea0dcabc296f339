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
	"github.com/go-atrium/atrium/pkg/log"
	"gorm.io/gorm"
)

// TenantService 租户解析
// 解析优先级严格固定：令牌载荷 > 请求域名 > companyCode 参数。
// 高优先级来源一旦给出结果即采纳，不再看后续来源。
type TenantService struct {
	companyRepo repo.ICompanyRepository
}

func NewTenantService(companyRepo repo.ICompanyRepository) *TenantService {
	return &TenantService{
		companyRepo: companyRepo,
	}
}

// Resolve 解析当前请求归属的租户，全部来源落空时返回 nil
func (s *TenantService) Resolve(ctx context.Context, principalCompanyId *uint64, host, companyCode string) (*uint64, error) {
	// 1. 认证主体自带租户
	if principalCompanyId != nil {
		return principalCompanyId, nil
	}

	now := time.Now()

	// 2. 请求域名绑定的租户
	if host != "" {
		company, err := s.companyRepo.GetCompanyByDomain(host)
		switch {
		case err == nil:
			if company.Active(now) {
				return &company.ID, nil
			}
			log.Warnw("company resolved by domain is not active", "domain", host, "companyId", company.ID)
		case errors.Is(err, gorm.ErrRecordNotFound):
			// 域名未绑定租户，继续看下一来源
		default:
			return nil, err
		}
	}

	// 3. 显式指定的租户编码
	if companyCode != "" {
		company, err := s.companyRepo.GetCompanyByCode(companyCode)
		switch {
		case err == nil:
			if company.Active(now) {
				return &company.ID, nil
			}
			log.Warnw("company resolved by code is not active", "code", companyCode, "companyId", company.ID)
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return nil, err
		}
	}

	return nil, nil
}

// ResolveCompany 解析并返回完整租户记录，登录响应等场景使用
func (s *TenantService) ResolveCompany(ctx context.Context, companyId uint64) (*model.Company, error) {
	return s.companyRepo.GetCompany(companyId)
}
