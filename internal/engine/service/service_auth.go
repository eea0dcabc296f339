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
	"github.com/go-atrium/atrium/pkg/http/jwt"
	"github.com/go-atrium/atrium/pkg/log"
	"github.com/go-atrium/atrium/pkg/metrics"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrIncorrectPassword = errors.New(http.UserIncorrectPassword.Msg)
	ErrUserDisabled      = errors.New(http.UserDisabled.Msg)
	ErrCompanyNotActive  = errors.New(http.CompanyNotActive.Msg)
	ErrSessionRevoked    = errors.New(http.TokenExpired.Msg)
)

// AuthService 认证服务
type AuthService struct {
	userRepo          repo.IUserRepository
	companyRepo       repo.ICompanyRepository
	permissionService *PermissionService
}

func NewAuthService(userRepo repo.IUserRepository, companyRepo repo.ICompanyRepository,
	permissionService *PermissionService) *AuthService {
	return &AuthService{
		userRepo:          userRepo,
		companyRepo:       companyRepo,
		permissionService: permissionService,
	}
}

// Login 用户名密码登录。
// 权限集在签发时冻结进令牌，同时在服务端记录会话供登出失效。
func (s *AuthService) Login(ctx context.Context, login *model.LoginReq, auth http.Auth) (*model.LoginResp, error) {
	user, err := s.userRepo.GetUserByUsername(login.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncorrectPassword
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(login.Password)); err != nil {
		log.Warnw("login with incorrect password", "username", login.Username)
		metrics.LoginTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, ErrIncorrectPassword
	}

	if user.Status != model.StatusEnabled {
		metrics.LoginTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, ErrUserDisabled
	}

	// 归属租户必须可用
	if user.CompanyId != nil {
		company, err := s.companyRepo.GetCompany(*user.CompanyId)
		if err != nil {
			return nil, err
		}
		if !company.Active(time.Now()) {
			metrics.LoginTotal.WithLabelValues(metrics.ResultFailure).Inc()
			return nil, ErrCompanyNotActive
		}
	}

	authorities, err := s.permissionService.EffectiveAuthorities(ctx, user.ID, user.CompanyId)
	if err != nil {
		return nil, err
	}

	aToken, rToken, expiresIn, err := jwt.GenToken(user.Username, user.ID, user.CompanyId, authorities,
		[]byte(auth.SecretKey), auth.AccessExpire, auth.RefreshExpire)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetToken(user.ID, aToken, auth.AccessExpire); err != nil {
		return nil, err
	}

	userInfo := model.UserInfo{
		UserId:      user.ID,
		Username:    user.Username,
		Nickname:    user.Nickname,
		Email:       user.Email,
		Avatar:      user.Avatar,
		CompanyId:   user.CompanyId,
		Authorities: authorities,
	}
	if err := s.userRepo.SetUserInfo(&userInfo, auth.AccessExpire); err != nil {
		log.Errorw("failed to cache user info", "userId", user.ID, "error", err)
	}

	metrics.LoginTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	return &model.LoginResp{
		UserInfo: userInfo,
		TokenInfo: model.TokenInfo{
			AccessToken:  aToken,
			RefreshToken: rToken,
			ExpiresIn:    expiresIn,
		},
	}, nil
}

// Logout 删除服务端会话，令牌随之失效
func (s *AuthService) Logout(ctx context.Context, userId uint64) error {
	if err := s.userRepo.DelToken(userId); err != nil {
		return err
	}
	if err := s.userRepo.DelUserInfo(userId); err != nil {
		log.Errorw("failed to delete cached user info", "userId", userId, "error", err)
	}
	return nil
}

// RefreshToken 用 refresh_token 换发新令牌对，权限集重新计算
func (s *AuthService) RefreshToken(ctx context.Context, userId uint64, rToken string, auth http.Auth) (*model.TokenInfo, error) {
	user, err := s.userRepo.GetUser(userId)
	if err != nil {
		return nil, err
	}
	if user.Status != model.StatusEnabled {
		return nil, ErrUserDisabled
	}

	// 登出或被强制下线后，refresh_token 也不能换发
	if _, err := s.userRepo.GetToken(user.ID); err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.TokenRefreshTotal.WithLabelValues(metrics.ResultFailure).Inc()
			return nil, ErrSessionRevoked
		}
		return nil, err
	}

	authorities, err := s.permissionService.EffectiveAuthorities(ctx, user.ID, user.CompanyId)
	if err != nil {
		return nil, err
	}

	aToken, newRToken, expiresIn, err := jwt.RefreshToken(rToken, user.Username, user.ID, user.CompanyId,
		authorities, auth.SecretKey, auth.AccessExpire, auth.RefreshExpire)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, err
	}

	if err := s.userRepo.SetToken(user.ID, aToken, auth.AccessExpire); err != nil {
		return nil, err
	}

	metrics.TokenRefreshTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	return &model.TokenInfo{
		AccessToken:  aToken,
		RefreshToken: newRToken,
		ExpiresIn:    expiresIn,
	}, nil
}
