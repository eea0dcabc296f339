package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/http/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testAuth = http.Auth{
	SecretKey:     "unit-test-secret",
	AccessExpire:  30,
	RefreshExpire: 60 * 24,
}

func newAuthFixture() (*fakeStore, *AuthService) {
	store := newFakeStore()
	userRepo := &fakeUserRepo{store: store}
	permissionService := NewPermissionService(nil, userRepo, &fakeRoleRepo{store: store}, &fakePermissionRepo{store: store})
	return store, NewAuthService(userRepo, &fakeCompanyRepo{store: store}, permissionService)
}

func seedLoginUser(store *fakeStore, username, password string, companyId *uint64) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &model.User{Username: username, Password: string(hash), Status: model.StatusEnabled, CompanyId: companyId}
	user.ID = store.id()
	store.users[user.ID] = user
	return user
}

func TestLoginIssuesTokenWithAuthorities(t *testing.T) {
	store, svc := newAuthFixture()
	user := seedLoginUser(store, "alice", "secret", nil)

	role := &model.Role{Code: "ops", Name: "ops", Status: model.StatusEnabled}
	role.ID = store.id()
	store.roles[role.ID] = role
	store.userRoles[user.ID] = []uint64{role.ID}

	resp, err := svc.Login(context.Background(), &model.LoginReq{Username: "alice", Password: "secret"}, testAuth)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.UserInfo.UserId)
	assert.Contains(t, resp.UserInfo.Authorities, "ROLE_ops")
	assert.NotEmpty(t, resp.TokenInfo.AccessToken)
	assert.Greater(t, resp.TokenInfo.ExpiresIn, int64(0))

	// 权限集冻结进令牌
	claims, err := jwt.ParseToken(resp.TokenInfo.AccessToken, testAuth.SecretKey)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Contains(t, claims.AuthorityList(), "ROLE_ops")

	// 服务端会话已记录
	assert.Equal(t, resp.TokenInfo.AccessToken, store.tokens[user.ID])
}

func TestLoginWrongPassword(t *testing.T) {
	store, svc := newAuthFixture()
	seedLoginUser(store, "alice", "secret", nil)

	_, err := svc.Login(context.Background(), &model.LoginReq{Username: "alice", Password: "wrong"}, testAuth)
	assert.ErrorIs(t, err, ErrIncorrectPassword)
}

func TestLoginUnknownUser(t *testing.T) {
	_, svc := newAuthFixture()

	// 用户不存在与密码错误返回同一个错误，不泄露用户是否存在
	_, err := svc.Login(context.Background(), &model.LoginReq{Username: "ghost", Password: "x"}, testAuth)
	assert.ErrorIs(t, err, ErrIncorrectPassword)
}

func TestLoginDisabledUser(t *testing.T) {
	store, svc := newAuthFixture()
	user := seedLoginUser(store, "alice", "secret", nil)
	user.Status = model.StatusDisabled

	_, err := svc.Login(context.Background(), &model.LoginReq{Username: "alice", Password: "secret"}, testAuth)
	assert.ErrorIs(t, err, ErrUserDisabled)
}

func TestLoginExpiredCompany(t *testing.T) {
	store, svc := newAuthFixture()
	yesterday := time.Now().Add(-24 * time.Hour)
	company := seedCompany(store, "acme", "", model.StatusEnabled, &yesterday)
	seedLoginUser(store, "alice", "secret", &company.ID)

	_, err := svc.Login(context.Background(), &model.LoginReq{Username: "alice", Password: "secret"}, testAuth)
	assert.ErrorIs(t, err, ErrCompanyNotActive)
}

func TestLogoutRevokesSession(t *testing.T) {
	store, svc := newAuthFixture()
	user := seedLoginUser(store, "alice", "secret", nil)

	_, err := svc.Login(context.Background(), &model.LoginReq{Username: "alice", Password: "secret"}, testAuth)
	require.NoError(t, err)
	require.Contains(t, store.tokens, user.ID)

	require.NoError(t, svc.Logout(context.Background(), user.ID))
	assert.NotContains(t, store.tokens, user.ID)
}

func TestRefreshTokenRotates(t *testing.T) {
	store, svc := newAuthFixture()
	user := seedLoginUser(store, "alice", "secret", nil)

	resp, err := svc.Login(context.Background(), &model.LoginReq{Username: "alice", Password: "secret"}, testAuth)
	require.NoError(t, err)

	tokenInfo, err := svc.RefreshToken(context.Background(), user.ID, resp.TokenInfo.RefreshToken, testAuth)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenInfo.AccessToken)
	assert.Equal(t, tokenInfo.AccessToken, store.tokens[user.ID])

	_, err = svc.RefreshToken(context.Background(), user.ID, "not.a.token", testAuth)
	assert.Error(t, err)
}

// 登出后服务端会话已删除，refresh_token 也不能换发
func TestRefreshTokenRejectedAfterLogout(t *testing.T) {
	store, svc := newAuthFixture()
	user := seedLoginUser(store, "alice", "secret", nil)

	resp, err := svc.Login(context.Background(), &model.LoginReq{Username: "alice", Password: "secret"}, testAuth)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), user.ID))

	_, err = svc.RefreshToken(context.Background(), user.ID, resp.TokenInfo.RefreshToken, testAuth)
	assert.ErrorIs(t, err, ErrSessionRevoked)
}
