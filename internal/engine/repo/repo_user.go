package repo

import (
	"context"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-atrium/atrium/internal/engine/consts"
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/pkg/cache"
	"github.com/go-atrium/atrium/pkg/database"
	"github.com/go-atrium/atrium/pkg/log"
	"gorm.io/gorm"
)

type IUserRepository interface {
	AddUser(user *model.User) error
	UpdateUser(userId uint64, updates map[string]any) error
	DeleteUser(userId uint64) error
	GetUser(userId uint64) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	GetUserList(offset, pageSize int) ([]model.User, int64, error)
	GetUserRoles(userId uint64) ([]model.Role, error)
	ReplaceUserRoles(userId uint64, roleIds []uint64) error
	CountUsersOfRole(roleId uint64) (int64, error)
	ResetPassword(userId uint64, newPasswordHash string) error
	UpdateUserCompany(userId uint64, companyId *uint64) error
	SetToken(userId uint64, aToken string, accessExpire time.Duration) error
	GetToken(userId uint64) (string, error)
	DelToken(userId uint64) error
	SetUserInfo(userInfo *model.UserInfo, expire time.Duration) error
	DelUserInfo(userId uint64) error
}

type UserRepo struct {
	db        database.IDatabase
	cache     cache.ICache
	userModel *model.User
}

func NewUserRepo(db database.IDatabase, cache cache.ICache) IUserRepository {
	return &UserRepo{
		db:        db,
		cache:     cache,
		userModel: &model.User{},
	}
}

func (ur *UserRepo) AddUser(user *model.User) error {
	return ur.db.Database().Create(user).Error
}

// UpdateUser 按列更新（username/password/company_id 走专用方法）。
// 用 map 而不是结构体，status=0 这类零值禁用才能真正写进去。
func (ur *UserRepo) UpdateUser(userId uint64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return ur.db.Database().Table(ur.userModel.TableName()).
		Scopes(tenantScope).
		Where("id = ?", userId).
		Updates(updates).Error
}

// DeleteUser 软删除
func (ur *UserRepo) DeleteUser(userId uint64) error {
	return ur.db.Database().Table(ur.userModel.TableName()).
		Scopes(tenantScope).
		Where("id = ?", userId).
		Update("deleted", model.Deleted).Error
}

func (ur *UserRepo) GetUser(userId uint64) (*model.User, error) {
	var u = &model.User{}
	err := ur.db.Database().Table(ur.userModel.TableName()).
		Scopes(tenantScope, notDeleted).
		Where("id = ?", userId).First(u).Error
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByUsername 登录入口，按用户名全局查找，不加租户条件
func (ur *UserRepo) GetUserByUsername(username string) (*model.User, error) {
	var u = &model.User{}
	err := ur.db.Database().Table(ur.userModel.TableName()).
		Scopes(notDeleted).
		Where("username = ?", username).First(u).Error
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (ur *UserRepo) GetUserList(offset, pageSize int) ([]model.User, int64, error) {
	var users []model.User
	var count int64

	scope := func(db *gorm.DB) *gorm.DB {
		return db.Table(ur.userModel.TableName()).Scopes(tenantScope, notDeleted)
	}

	if err := ur.db.Database().Scopes(scope).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := ur.db.Database().Scopes(scope).
		Select("id, username, nickname, email, phone, avatar, company_id, department_id, status, remark, created_at, updated_at").
		Order("id").Offset(offset).Limit(pageSize).Find(&users).Error
	return users, count, err
}

// GetUserRoles 用户已启用且未删除的角色
func (ur *UserRepo) GetUserRoles(userId uint64) ([]model.Role, error) {
	var roles []model.Role
	err := ur.db.Database().Table("t_role").
		Joins("JOIN t_user_role ON t_user_role.role_id = t_role.id").
		Where("t_user_role.user_id = ?", userId).
		Where("t_role.status = ?", model.StatusEnabled).
		Where("t_role.deleted = ?", model.NotDeleted).
		Find(&roles).Error
	return roles, err
}

// ReplaceUserRoles 全量替换用户的角色集合
func (ur *UserRepo) ReplaceUserRoles(userId uint64, roleIds []uint64) error {
	return ur.db.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userId).Delete(&model.UserRole{}).Error; err != nil {
			return err
		}
		if len(roleIds) == 0 {
			return nil
		}
		bindings := make([]model.UserRole, 0, len(roleIds))
		for _, roleId := range roleIds {
			bindings = append(bindings, model.UserRole{UserId: userId, RoleId: roleId})
		}
		return tx.Create(&bindings).Error
	})
}

func (ur *UserRepo) CountUsersOfRole(roleId uint64) (int64, error) {
	var count int64
	err := ur.db.Database().Model(&model.UserRole{}).
		Where("role_id = ?", roleId).Count(&count).Error
	return count, err
}

func (ur *UserRepo) ResetPassword(userId uint64, newPasswordHash string) error {
	return ur.db.Database().Table(ur.userModel.TableName()).
		Where("id = ?", userId).
		Update("password", newPasswordHash).Error
}

// UpdateUserCompany 租户调动，平台级操作，不加租户条件
func (ur *UserRepo) UpdateUserCompany(userId uint64, companyId *uint64) error {
	return ur.db.Database().Table(ur.userModel.TableName()).
		Where("id = ?", userId).
		Update("company_id", companyId).Error
}

// SetToken 服务端会话，登出或强制下线时删除
func (ur *UserRepo) SetToken(userId uint64, aToken string, accessExpire time.Duration) error {
	key := consts.UserTokenKey + strconv.FormatUint(userId, 10)
	return ur.cache.Set(context.Background(), key, aToken, accessExpire*time.Minute).Err()
}

func (ur *UserRepo) GetToken(userId uint64) (string, error) {
	key := consts.UserTokenKey + strconv.FormatUint(userId, 10)
	return ur.cache.Get(context.Background(), key).Result()
}

func (ur *UserRepo) DelToken(userId uint64) error {
	key := consts.UserTokenKey + strconv.FormatUint(userId, 10)
	return ur.cache.Del(context.Background(), key).Err()
}

func (ur *UserRepo) SetUserInfo(userInfo *model.UserInfo, expire time.Duration) error {
	key := consts.UserInfoKey + strconv.FormatUint(userInfo.UserId, 10)
	userInfoJson, err := sonic.MarshalString(userInfo)
	if err != nil {
		log.Errorw("failed to marshal user info", "userId", userInfo.UserId, "error", err)
		return err
	}
	return ur.cache.Set(context.Background(), key, userInfoJson, expire*time.Minute).Err()
}

func (ur *UserRepo) DelUserInfo(userId uint64) error {
	key := consts.UserInfoKey + strconv.FormatUint(userId, 10)
	return ur.cache.Del(context.Background(), key).Err()
}
