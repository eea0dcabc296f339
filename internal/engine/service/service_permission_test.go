package service

import (
	"context"
	"testing"

	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPermissionFixture() (*fakeStore, *PermissionService) {
	store := newFakeStore()
	svc := NewPermissionService(nil,
		&fakeUserRepo{store: store},
		&fakeRoleRepo{store: store},
		&fakePermissionRepo{store: store})
	return store, svc
}

func seedUserWithRoles(store *fakeStore, roleCodes []string, permCodes map[string][]string) uint64 {
	user := &model.User{Username: "u", Status: model.StatusEnabled}
	user.ID = store.id()
	store.users[user.ID] = user

	for _, code := range roleCodes {
		role := &model.Role{Code: code, Name: code, Status: model.StatusEnabled}
		role.ID = store.id()
		store.roles[role.ID] = role
		store.userRoles[user.ID] = append(store.userRoles[user.ID], role.ID)

		for _, permCode := range permCodes[code] {
			perm := &model.Permission{Code: permCode, Name: permCode, Status: model.StatusEnabled}
			perm.ID = store.id()
			store.perms[perm.ID] = perm
			store.rolePerms[role.ID] = append(store.rolePerms[role.ID], perm.ID)
		}
	}
	return user.ID
}

// 停用权限点是零值写入，不能被更新路径悄悄丢掉
func TestDisablePermissionPersists(t *testing.T) {
	store, svc := newPermissionFixture()
	perm, err := svc.CreatePermission(&model.CreatePermissionReq{Code: "system:user:list", Name: "用户列表"}, nil)
	require.NoError(t, err)

	disabled := model.StatusDisabled
	require.NoError(t, svc.UpdatePermission(context.Background(), perm.ID, &model.UpdatePermissionReq{Status: &disabled}))
	assert.Equal(t, model.StatusDisabled, store.perms[perm.ID].Status)
}

func TestEffectiveAuthoritiesClosure(t *testing.T) {
	store, svc := newPermissionFixture()
	userId := seedUserWithRoles(store, []string{"ops", "dev"}, map[string][]string{
		"ops": {"system:user:list", "system:user:add"},
		"dev": {"system:user:list"}, // 两个角色共享的权限码只出现一次
	})

	authorities, err := svc.EffectiveAuthorities(context.Background(), userId, nil)
	require.NoError(t, err)

	assert.Contains(t, authorities, "ROLE_ops")
	assert.Contains(t, authorities, "ROLE_dev")
	assert.Contains(t, authorities, "system:user:list")
	assert.Contains(t, authorities, "system:user:add")
	assert.NotContains(t, authorities, AdminAuthority)

	counts := map[string]int{}
	for _, a := range authorities {
		counts[a]++
	}
	assert.Equal(t, 1, counts["system:user:list"])
}

func TestEffectiveAuthoritiesAdminFlag(t *testing.T) {
	tests := []struct {
		name     string
		roleCode string
		isAdmin  bool
	}{
		{"lowercase admin", "admin", true},
		{"uppercase admin", "ADMIN", true},
		{"mixed case admin", "AdMiN", true},
		{"admin prefix is not admin", "administrator", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, svc := newPermissionFixture()
			userId := seedUserWithRoles(store, []string{tt.roleCode}, nil)

			authorities, err := svc.EffectiveAuthorities(context.Background(), userId, nil)
			require.NoError(t, err)

			if tt.isAdmin {
				assert.Contains(t, authorities, AdminAuthority)
			} else {
				assert.NotContains(t, authorities, AdminAuthority)
			}
		})
	}
}

func TestEffectiveAuthoritiesSkipsDisabledRole(t *testing.T) {
	store, svc := newPermissionFixture()
	userId := seedUserWithRoles(store, []string{"ops"}, map[string][]string{
		"ops": {"system:user:list"},
	})

	// 禁用角色后其角色码和权限码都消失
	for _, role := range store.roles {
		role.Status = model.StatusDisabled
	}

	authorities, err := svc.EffectiveAuthorities(context.Background(), userId, nil)
	require.NoError(t, err)
	assert.Empty(t, authorities)
}

func TestEffectiveAuthoritiesSkipsDisabledPermission(t *testing.T) {
	store, svc := newPermissionFixture()
	userId := seedUserWithRoles(store, []string{"ops"}, map[string][]string{
		"ops": {"system:user:list"},
	})

	for _, perm := range store.perms {
		perm.Status = model.StatusDisabled
	}

	authorities, err := svc.EffectiveAuthorities(context.Background(), userId, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_ops"}, authorities)
}

func TestEffectiveAuthoritiesNoRoles(t *testing.T) {
	store, svc := newPermissionFixture()
	userId := seedUserWithRoles(store, nil, nil)

	authorities, err := svc.EffectiveAuthorities(context.Background(), userId, nil)
	require.NoError(t, err)
	assert.Empty(t, authorities)
}

func TestHasAuthority(t *testing.T) {
	tests := []struct {
		name        string
		authorities []string
		required    []string
		requireAll  bool
		want        bool
	}{
		{"admin bypasses everything", []string{AdminAuthority}, []string{"a", "b"}, true, true},
		{"empty required with requireAll is vacuously true", []string{"x"}, nil, true, true},
		{"empty required with any is false", []string{"x"}, nil, false, false},
		{"any hit", []string{"a"}, []string{"a", "b"}, false, true},
		{"any miss", []string{"c"}, []string{"a", "b"}, false, false},
		{"all hit", []string{"a", "b"}, []string{"a", "b"}, true, true},
		{"all partial miss", []string{"a"}, []string{"a", "b"}, true, false},
		{"empty authorities any", nil, []string{"a"}, false, false},
		{"empty authorities all", nil, []string{"a"}, true, false},
		{"role authority matches", []string{"ROLE_ops"}, []string{"ROLE_ops"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasAuthority(tt.authorities, tt.required, tt.requireAll))
		})
	}
}
