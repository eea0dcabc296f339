package service

import (
	"context"
	"testing"

	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserFixture() (*fakeStore, *UserService) {
	store := newFakeStore()
	userRepo := &fakeUserRepo{store: store}
	roleRepo := &fakeRoleRepo{store: store}
	companyRepo := &fakeCompanyRepo{store: store}
	permissionService := NewPermissionService(nil, userRepo, roleRepo, &fakePermissionRepo{store: store})
	return store, NewUserService(userRepo, roleRepo, companyRepo, permissionService)
}

func TestCreateUserHashesPassword(t *testing.T) {
	_, svc := newUserFixture()

	user, err := svc.CreateUser(&model.CreateUserReq{Username: "alice", Password: "secret"}, nil)
	require.NoError(t, err)
	assert.NotEqual(t, "secret", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret")))
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	_, svc := newUserFixture()

	_, err := svc.CreateUser(&model.CreateUserReq{Username: "alice", Password: "secret"}, nil)
	require.NoError(t, err)

	_, err = svc.CreateUser(&model.CreateUserReq{Username: "alice", Password: "other"}, nil)
	assert.ErrorIs(t, err, ErrUserAlreadyExist)
}

func TestAssignRolesReplacesAll(t *testing.T) {
	store, svc := newUserFixture()
	user, err := svc.CreateUser(&model.CreateUserReq{Username: "alice", Password: "secret"}, nil)
	require.NoError(t, err)

	ops := seedRole(store, "ops")
	dev := seedRole(store, "dev")

	require.NoError(t, svc.AssignRoles(context.Background(), user.ID, []uint64{ops.ID, dev.ID}))
	assert.Equal(t, []uint64{ops.ID, dev.ID}, store.userRoles[user.ID])

	// 全量替换
	require.NoError(t, svc.AssignRoles(context.Background(), user.ID, []uint64{dev.ID}))
	assert.Equal(t, []uint64{dev.ID}, store.userRoles[user.ID])

	// 空集合摘掉所有角色
	require.NoError(t, svc.AssignRoles(context.Background(), user.ID, nil))
	assert.Empty(t, store.userRoles[user.ID])
}

func TestAssignRolesUnknownRoleRejected(t *testing.T) {
	store, svc := newUserFixture()
	user, err := svc.CreateUser(&model.CreateUserReq{Username: "alice", Password: "secret"}, nil)
	require.NoError(t, err)

	err = svc.AssignRoles(context.Background(), user.ID, []uint64{12345})
	assert.Error(t, err)
	assert.Empty(t, store.userRoles[user.ID])
}

func TestChangePasswordRevokesSession(t *testing.T) {
	store, svc := newUserFixture()
	user, err := svc.CreateUser(&model.CreateUserReq{Username: "alice", Password: "oldpass"}, nil)
	require.NoError(t, err)
	store.tokens[user.ID] = "live-session"

	err = svc.ChangePassword(user.ID, &model.ChangePasswordReq{OldPassword: "wrong", NewPassword: "newpass123"})
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	require.NoError(t, svc.ChangePassword(user.ID, &model.ChangePasswordReq{OldPassword: "oldpass", NewPassword: "newpass123"}))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.users[user.ID].Password), []byte("newpass123")))
	assert.NotContains(t, store.tokens, user.ID)
}

// 停用用户是零值写入，不能被更新路径悄悄丢掉
func TestDisableUserPersists(t *testing.T) {
	store, svc := newUserFixture()
	user, err := svc.CreateUser(&model.CreateUserReq{Username: "alice", Password: "secret"}, nil)
	require.NoError(t, err)

	disabled := model.StatusDisabled
	require.NoError(t, svc.UpdateUser(user.ID, &model.UpdateUserReq{Status: &disabled}))
	assert.Equal(t, model.StatusDisabled, store.users[user.ID].Status)
}

func TestResetPasswordSkipsOldPasswordCheck(t *testing.T) {
	store, svc := newUserFixture()
	user, err := svc.CreateUser(&model.CreateUserReq{Username: "alice", Password: "forgotten"}, nil)
	require.NoError(t, err)
	store.tokens[user.ID] = "live-session"

	require.NoError(t, svc.ResetPassword(user.ID, &model.ResetPasswordReq{NewPassword: "newpass123"}))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.users[user.ID].Password), []byte("newpass123")))
	assert.NotContains(t, store.tokens, user.ID)
}

func TestTransferCompanyClearsRolesAndSession(t *testing.T) {
	store, svc := newUserFixture()
	user, err := svc.CreateUser(&model.CreateUserReq{Username: "alice", Password: "secret"}, nil)
	require.NoError(t, err)

	ops := seedRole(store, "ops")
	require.NoError(t, svc.AssignRoles(context.Background(), user.ID, []uint64{ops.ID}))
	store.tokens[user.ID] = "live-session"

	target := seedCompany(store, "acme", "acme.example.com", model.StatusEnabled, nil)

	require.NoError(t, svc.TransferCompany(context.Background(), user.ID, target.ID))
	require.NotNil(t, store.users[user.ID].CompanyId)
	assert.Equal(t, target.ID, *store.users[user.ID].CompanyId)
	assert.Empty(t, store.userRoles[user.ID])
	assert.NotContains(t, store.tokens, user.ID)
}

func TestTransferCompanyRejectsInactiveTarget(t *testing.T) {
	store, svc := newUserFixture()
	user, err := svc.CreateUser(&model.CreateUserReq{Username: "alice", Password: "secret"}, nil)
	require.NoError(t, err)

	target := seedCompany(store, "acme", "acme.example.com", model.StatusDisabled, nil)

	err = svc.TransferCompany(context.Background(), user.ID, target.ID)
	assert.ErrorIs(t, err, ErrCompanyNotActive)
	assert.Nil(t, store.users[user.ID].CompanyId)
}

func TestDeleteUserRevokesSession(t *testing.T) {
	store, svc := newUserFixture()
	user, err := svc.CreateUser(&model.CreateUserReq{Username: "alice", Password: "secret"}, nil)
	require.NoError(t, err)
	store.tokens[user.ID] = "live-session"

	require.NoError(t, svc.DeleteUser(context.Background(), user.ID))
	assert.Equal(t, model.Deleted, store.users[user.ID].IsDeleted)
	assert.NotContains(t, store.tokens, user.ID)

	_, err = svc.GetUser(user.ID)
	assert.Error(t, err)
}
