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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrUserAlreadyExist = errors.New(http.UserAlreadyExist.Msg)

// UserService 用户服务
type UserService struct {
	userRepo          repo.IUserRepository
	roleRepo          repo.IRoleRepository
	companyRepo       repo.ICompanyRepository
	permissionService *PermissionService
}

func NewUserService(userRepo repo.IUserRepository, roleRepo repo.IRoleRepository,
	companyRepo repo.ICompanyRepository, permissionService *PermissionService) *UserService {
	return &UserService{
		userRepo:          userRepo,
		roleRepo:          roleRepo,
		companyRepo:       companyRepo,
		permissionService: permissionService,
	}
}

// CreateUser 新建用户，归属当前租户
func (s *UserService) CreateUser(req *model.CreateUserReq, companyId *uint64) (*model.User, error) {
	if _, err := s.userRepo.GetUserByUsername(req.Username); err == nil {
		return nil, ErrUserAlreadyExist
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Uid:          id.GetUUID(),
		Username:     req.Username,
		Nickname:     req.Nickname,
		Password:     string(hash),
		Email:        req.Email,
		Phone:        req.Phone,
		CompanyId:    companyId,
		DepartmentId: req.DepartmentId,
		Status:       model.StatusEnabled,
		Remark:       req.Remark,
	}
	if req.Status != nil {
		user.Status = *req.Status
	}

	if err := s.userRepo.AddUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(userId uint64, req *model.UpdateUserReq) error {
	if _, err := s.userRepo.GetUser(userId); err != nil {
		return err
	}

	updates := map[string]any{}
	if req.Nickname != nil {
		updates["nickname"] = *req.Nickname
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.DepartmentId != nil {
		updates["department_id"] = *req.DepartmentId
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Remark != nil {
		updates["remark"] = *req.Remark
	}

	return s.userRepo.UpdateUser(userId, updates)
}

// DeleteUser 软删除用户并回收会话
func (s *UserService) DeleteUser(ctx context.Context, userId uint64) error {
	user, err := s.userRepo.GetUser(userId)
	if err != nil {
		return err
	}

	if err := s.userRepo.DeleteUser(userId); err != nil {
		return err
	}

	_ = s.userRepo.DelToken(userId)
	_ = s.userRepo.DelUserInfo(userId)
	s.permissionService.InvalidateUser(ctx, userId, user.CompanyId)
	return nil
}

func (s *UserService) GetUser(userId uint64) (*model.User, error) {
	return s.userRepo.GetUser(userId)
}

func (s *UserService) GetUserList(page *model.PageReq) ([]model.User, int64, error) {
	page.Normalize()
	return s.userRepo.GetUserList(page.Offset(), page.PageSize)
}

// AssignRoles 全量替换用户的角色集合。
// 传入的角色必须全部存在于当前租户，替换后权限快照立即失效。
func (s *UserService) AssignRoles(ctx context.Context, userId uint64, roleIds []uint64) error {
	user, err := s.userRepo.GetUser(userId)
	if err != nil {
		return err
	}

	roles, err := s.roleRepo.GetRolesByIds(roleIds)
	if err != nil {
		return err
	}
	if len(roles) != len(roleIds) {
		return errors.New(http.RoleNotExist.Msg)
	}

	if err := s.userRepo.ReplaceUserRoles(userId, roleIds); err != nil {
		return err
	}

	s.permissionService.InvalidateUser(ctx, userId, user.CompanyId)
	return nil
}

func (s *UserService) GetUserRoles(userId uint64) ([]model.Role, error) {
	if _, err := s.userRepo.GetUser(userId); err != nil {
		return nil, err
	}
	return s.userRepo.GetUserRoles(userId)
}

// ChangePassword 修改密码，校验旧密码后更新并回收会话
func (s *UserService) ChangePassword(userId uint64, req *model.ChangePasswordReq) error {
	user, err := s.userRepo.GetUser(userId)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return ErrIncorrectPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.ResetPassword(userId, string(hash)); err != nil {
		return err
	}

	// 改密后强制重新登录
	_ = s.userRepo.DelToken(userId)
	return nil
}

// ResetPassword 管理员重置密码，不校验旧密码，重置后强制重新登录
func (s *UserService) ResetPassword(userId uint64, req *model.ResetPasswordReq) error {
	if _, err := s.userRepo.GetUser(userId); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.ResetPassword(userId, string(hash)); err != nil {
		return err
	}

	_ = s.userRepo.DelToken(userId)
	return nil
}

// TransferCompany 租户调动。目标租户必须可用；角色按租户隔离，
// 调动后原租户的角色绑定全部清空，会话与权限快照立即回收。
func (s *UserService) TransferCompany(ctx context.Context, userId uint64, targetCompanyId uint64) error {
	user, err := s.userRepo.GetUser(userId)
	if err != nil {
		return err
	}
	if user.CompanyId != nil && *user.CompanyId == targetCompanyId {
		return nil
	}

	company, err := s.companyRepo.GetCompany(targetCompanyId)
	if err != nil {
		return err
	}
	if !company.Active(time.Now()) {
		return ErrCompanyNotActive
	}

	if err := s.userRepo.UpdateUserCompany(userId, &targetCompanyId); err != nil {
		return err
	}
	if err := s.userRepo.ReplaceUserRoles(userId, nil); err != nil {
		return err
	}

	_ = s.userRepo.DelToken(userId)
	_ = s.userRepo.DelUserInfo(userId)
	s.permissionService.InvalidateUser(ctx, userId, user.CompanyId)
	return nil
}
