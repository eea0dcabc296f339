package service

import (
	"time"

	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/pkg/datatype"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// 内存实现的仓储，服务层测试使用

type fakeStore struct {
	nextId    uint64
	users     map[uint64]*model.User
	roles     map[uint64]*model.Role
	perms     map[uint64]*model.Permission
	menus     map[uint64]*model.Menu
	companies map[uint64]*model.Company
	userRoles map[uint64][]uint64 // userId -> roleIds
	rolePerms map[uint64][]uint64 // roleId -> permissionIds
	roleMenus map[uint64][]uint64 // roleId -> menuIds
	tokens    map[uint64]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[uint64]*model.User),
		roles:     make(map[uint64]*model.Role),
		perms:     make(map[uint64]*model.Permission),
		menus:     make(map[uint64]*model.Menu),
		companies: make(map[uint64]*model.Company),
		userRoles: make(map[uint64][]uint64),
		rolePerms: make(map[uint64][]uint64),
		roleMenus: make(map[uint64][]uint64),
		tokens:    make(map[uint64]string),
	}
}

func (fs *fakeStore) id() uint64 {
	fs.nextId++
	return fs.nextId
}

// --- 用户 ---

type fakeUserRepo struct{ store *fakeStore }

func (f *fakeUserRepo) AddUser(user *model.User) error {
	user.ID = f.store.id()
	f.store.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateUser(userId uint64, updates map[string]any) error {
	existing, ok := f.store.users[userId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "nickname":
			existing.Nickname = value.(string)
		case "email":
			existing.Email = value.(string)
		case "phone":
			existing.Phone = value.(string)
		case "avatar":
			existing.Avatar = value.(string)
		case "department_id":
			departmentId := value.(uint64)
			existing.DepartmentId = &departmentId
		case "status":
			existing.Status = value.(int)
		case "remark":
			existing.Remark = value.(string)
		}
	}
	return nil
}

func (f *fakeUserRepo) DeleteUser(userId uint64) error {
	if u, ok := f.store.users[userId]; ok {
		u.IsDeleted = model.Deleted
	}
	return nil
}

func (f *fakeUserRepo) GetUser(userId uint64) (*model.User, error) {
	u, ok := f.store.users[userId]
	if !ok || u.IsDeleted == model.Deleted {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByUsername(username string) (*model.User, error) {
	for _, u := range f.store.users {
		if u.Username == username && u.IsDeleted == model.NotDeleted {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserList(offset, pageSize int) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range f.store.users {
		if u.IsDeleted == model.NotDeleted {
			out = append(out, *u)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) GetUserRoles(userId uint64) ([]model.Role, error) {
	var roles []model.Role
	for _, roleId := range f.store.userRoles[userId] {
		role, ok := f.store.roles[roleId]
		if ok && role.Status == model.StatusEnabled && role.IsDeleted == model.NotDeleted {
			roles = append(roles, *role)
		}
	}
	return roles, nil
}

func (f *fakeUserRepo) ReplaceUserRoles(userId uint64, roleIds []uint64) error {
	f.store.userRoles[userId] = append([]uint64(nil), roleIds...)
	return nil
}

func (f *fakeUserRepo) CountUsersOfRole(roleId uint64) (int64, error) {
	var count int64
	for _, roleIds := range f.store.userRoles {
		for _, id := range roleIds {
			if id == roleId {
				count++
			}
		}
	}
	return count, nil
}

func (f *fakeUserRepo) ResetPassword(userId uint64, newPasswordHash string) error {
	if u, ok := f.store.users[userId]; ok {
		u.Password = newPasswordHash
	}
	return nil
}

func (f *fakeUserRepo) UpdateUserCompany(userId uint64, companyId *uint64) error {
	if u, ok := f.store.users[userId]; ok {
		u.CompanyId = companyId
	}
	return nil
}

func (f *fakeUserRepo) SetToken(userId uint64, aToken string, accessExpire time.Duration) error {
	f.store.tokens[userId] = aToken
	return nil
}

func (f *fakeUserRepo) GetToken(userId uint64) (string, error) {
	token, ok := f.store.tokens[userId]
	if !ok {
		// 与 redis 缓存保持一致的未命中错误
		return "", redis.Nil
	}
	return token, nil
}

func (f *fakeUserRepo) DelToken(userId uint64) error {
	delete(f.store.tokens, userId)
	return nil
}

func (f *fakeUserRepo) SetUserInfo(userInfo *model.UserInfo, expire time.Duration) error {
	return nil
}

func (f *fakeUserRepo) DelUserInfo(userId uint64) error {
	return nil
}

// --- 角色 ---

type fakeRoleRepo struct{ store *fakeStore }

func (f *fakeRoleRepo) AddRole(role *model.Role) error {
	role.ID = f.store.id()
	f.store.roles[role.ID] = role
	return nil
}

func (f *fakeRoleRepo) UpdateRole(roleId uint64, updates map[string]any) error {
	existing, ok := f.store.roles[roleId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "name":
			existing.Name = value.(string)
		case "sort":
			existing.Sort = value.(int)
		case "status":
			existing.Status = value.(int)
		case "data_scope":
			existing.DataScope = value.(int)
		case "remark":
			existing.Remark = value.(string)
		}
	}
	return nil
}

func (f *fakeRoleRepo) DeleteRole(roleId uint64) error {
	if r, ok := f.store.roles[roleId]; ok {
		r.IsDeleted = model.Deleted
	}
	delete(f.store.rolePerms, roleId)
	delete(f.store.roleMenus, roleId)
	return nil
}

func (f *fakeRoleRepo) GetRole(roleId uint64) (*model.Role, error) {
	r, ok := f.store.roles[roleId]
	if !ok || r.IsDeleted == model.Deleted {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeRoleRepo) GetRoleByCode(code string) (*model.Role, error) {
	for _, r := range f.store.roles {
		if r.Code == code && r.IsDeleted == model.NotDeleted {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRoleRepo) GetRoleList(offset, pageSize int) ([]model.Role, int64, error) {
	var out []model.Role
	for _, r := range f.store.roles {
		if r.IsDeleted == model.NotDeleted {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRoleRepo) GetRolesByIds(roleIds []uint64) ([]model.Role, error) {
	var out []model.Role
	for _, id := range roleIds {
		if r, ok := f.store.roles[id]; ok && r.IsDeleted == model.NotDeleted {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRoleRepo) ReplaceRoleMenus(roleId uint64, menuIds []uint64) error {
	f.store.roleMenus[roleId] = append([]uint64(nil), menuIds...)
	return nil
}

func (f *fakeRoleRepo) ReplaceRolePermissions(roleId uint64, permissionIds []uint64) error {
	f.store.rolePerms[roleId] = append([]uint64(nil), permissionIds...)
	return nil
}

func (f *fakeRoleRepo) GetRoleMenuIds(roleId uint64) ([]uint64, error) {
	return f.store.roleMenus[roleId], nil
}

func (f *fakeRoleRepo) GetRolePermissionIds(roleId uint64) ([]uint64, error) {
	return f.store.rolePerms[roleId], nil
}

func (f *fakeRoleRepo) GetPermissionsOfRoles(roleIds []uint64) ([]model.Permission, error) {
	seen := make(map[uint64]struct{})
	var out []model.Permission
	for _, roleId := range roleIds {
		for _, permissionId := range f.store.rolePerms[roleId] {
			if _, dup := seen[permissionId]; dup {
				continue
			}
			seen[permissionId] = struct{}{}
			p, ok := f.store.perms[permissionId]
			if ok && p.Status == model.StatusEnabled && p.IsDeleted == model.NotDeleted {
				out = append(out, *p)
			}
		}
	}
	return out, nil
}

func (f *fakeRoleRepo) GetMenusOfRoles(roleIds []uint64) ([]model.Menu, error) {
	seen := make(map[uint64]struct{})
	var out []model.Menu
	for _, roleId := range roleIds {
		for _, menuId := range f.store.roleMenus[roleId] {
			if _, dup := seen[menuId]; dup {
				continue
			}
			seen[menuId] = struct{}{}
			if m, ok := f.store.menus[menuId]; ok && m.IsDeleted == model.NotDeleted {
				out = append(out, *m)
			}
		}
	}
	return out, nil
}

func (f *fakeRoleRepo) GetUserIdsOfRole(roleId uint64) ([]uint64, error) {
	var out []uint64
	for userId, roleIds := range f.store.userRoles {
		for _, id := range roleIds {
			if id == roleId {
				out = append(out, userId)
			}
		}
	}
	return out, nil
}

// --- 权限点 ---

type fakePermissionRepo struct{ store *fakeStore }

func (f *fakePermissionRepo) AddPermission(permission *model.Permission) error {
	permission.ID = f.store.id()
	f.store.perms[permission.ID] = permission
	return nil
}

func (f *fakePermissionRepo) UpdatePermission(permissionId uint64, updates map[string]any) error {
	existing, ok := f.store.perms[permissionId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "name":
			existing.Name = value.(string)
		case "type":
			existing.Type = value.(string)
		case "status":
			existing.Status = value.(int)
		case "remark":
			existing.Remark = value.(string)
		}
	}
	return nil
}

func (f *fakePermissionRepo) DeletePermission(permissionId uint64) error {
	if p, ok := f.store.perms[permissionId]; ok {
		p.IsDeleted = model.Deleted
	}
	return nil
}

func (f *fakePermissionRepo) GetPermission(permissionId uint64) (*model.Permission, error) {
	p, ok := f.store.perms[permissionId]
	if !ok || p.IsDeleted == model.Deleted {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakePermissionRepo) GetPermissionByCode(code string) (*model.Permission, error) {
	for _, p := range f.store.perms {
		if p.Code == code && p.IsDeleted == model.NotDeleted {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePermissionRepo) GetPermissionList(offset, pageSize int) ([]model.Permission, int64, error) {
	var out []model.Permission
	for _, p := range f.store.perms {
		if p.IsDeleted == model.NotDeleted {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePermissionRepo) GetPermissionsByIds(permissionIds []uint64) ([]model.Permission, error) {
	var out []model.Permission
	for _, id := range permissionIds {
		if p, ok := f.store.perms[id]; ok && p.IsDeleted == model.NotDeleted {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePermissionRepo) CountRolesOfPermission(permissionId uint64) (int64, error) {
	var count int64
	for _, permissionIds := range f.store.rolePerms {
		for _, id := range permissionIds {
			if id == permissionId {
				count++
			}
		}
	}
	return count, nil
}

func (f *fakePermissionRepo) GetRoleIdsOfPermission(permissionId uint64) ([]uint64, error) {
	var roleIds []uint64
	for roleId, permissionIds := range f.store.rolePerms {
		for _, id := range permissionIds {
			if id == permissionId {
				roleIds = append(roleIds, roleId)
				break
			}
		}
	}
	return roleIds, nil
}

// --- 菜单 ---

type fakeMenuRepo struct{ store *fakeStore }

func (f *fakeMenuRepo) AddMenu(menu *model.Menu) error {
	menu.ID = f.store.id()
	f.store.menus[menu.ID] = menu
	return nil
}

func (f *fakeMenuRepo) UpdateMenu(menuId uint64, updates map[string]any) error {
	existing, ok := f.store.menus[menuId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "name":
			existing.Name = value.(string)
		case "path":
			existing.Path = value.(string)
		case "component":
			existing.Component = value.(string)
		case "icon":
			existing.Icon = value.(string)
		case "sort":
			existing.Sort = value.(int)
		case "permission_code":
			existing.PermissionCode = value.(string)
		case "visible":
			existing.Visible = value.(int)
		case "meta":
			existing.Meta = value.(datatype.JSON)
		}
	}
	return nil
}

func (f *fakeMenuRepo) UpdateMenuParent(menuId uint64, parentId *uint64) error {
	m, ok := f.store.menus[menuId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.ParentId = parentId
	return nil
}

func (f *fakeMenuRepo) UpdateMenuStatus(menuIds []uint64, status int) error {
	for _, id := range menuIds {
		if m, ok := f.store.menus[id]; ok {
			m.Status = status
		}
	}
	return nil
}

func (f *fakeMenuRepo) DeleteMenu(menuId uint64) error {
	if m, ok := f.store.menus[menuId]; ok {
		m.IsDeleted = model.Deleted
	}
	return nil
}

func (f *fakeMenuRepo) GetMenu(menuId uint64) (*model.Menu, error) {
	m, ok := f.store.menus[menuId]
	if !ok || m.IsDeleted == model.Deleted {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeMenuRepo) GetMenuList() ([]model.Menu, error) {
	var out []model.Menu
	for _, m := range f.store.menus {
		if m.IsDeleted == model.NotDeleted {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMenuRepo) GetMenusByIds(menuIds []uint64) ([]model.Menu, error) {
	var out []model.Menu
	for _, id := range menuIds {
		if m, ok := f.store.menus[id]; ok && m.IsDeleted == model.NotDeleted {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMenuRepo) CountChildren(menuId uint64) (int64, error) {
	var count int64
	for _, m := range f.store.menus {
		if m.ParentId != nil && *m.ParentId == menuId && m.IsDeleted == model.NotDeleted {
			count++
		}
	}
	return count, nil
}

// --- 租户 ---

type fakeCompanyRepo struct{ store *fakeStore }

func (f *fakeCompanyRepo) AddCompany(company *model.Company) error {
	company.ID = f.store.id()
	f.store.companies[company.ID] = company
	return nil
}

func (f *fakeCompanyRepo) UpdateCompany(companyId uint64, updates map[string]any) error {
	existing, ok := f.store.companies[companyId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "name":
			existing.Name = value.(string)
		case "domain":
			existing.Domain = value.(string)
		case "enabled":
			existing.Enabled = value.(int)
		case "expire_time":
			expireTime := value.(time.Time)
			existing.ExpireTime = &expireTime
		case "remark":
			existing.Remark = value.(string)
		}
	}
	return nil
}

func (f *fakeCompanyRepo) DeleteCompany(companyId uint64) error {
	if c, ok := f.store.companies[companyId]; ok {
		c.IsDeleted = model.Deleted
	}
	return nil
}

func (f *fakeCompanyRepo) GetCompany(companyId uint64) (*model.Company, error) {
	c, ok := f.store.companies[companyId]
	if !ok || c.IsDeleted == model.Deleted {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeCompanyRepo) GetCompanyByCode(code string) (*model.Company, error) {
	for _, c := range f.store.companies {
		if c.Code == code && c.IsDeleted == model.NotDeleted {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepo) GetCompanyByDomain(domain string) (*model.Company, error) {
	for _, c := range f.store.companies {
		if c.Domain == domain && c.IsDeleted == model.NotDeleted {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepo) GetCompanyList(offset, pageSize int) ([]model.Company, int64, error) {
	var out []model.Company
	for _, c := range f.store.companies {
		if c.IsDeleted == model.NotDeleted {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCompanyRepo) GetExpiredCompanies(now time.Time) ([]model.Company, error) {
	var out []model.Company
	for _, c := range f.store.companies {
		if c.IsDeleted == model.NotDeleted && c.Enabled == model.StatusEnabled && c.Expired(now) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCompanyRepo) DisableCompanies(companyIds []uint64) error {
	for _, id := range companyIds {
		if c, ok := f.store.companies[id]; ok {
			c.Enabled = model.StatusDisabled
		}
	}
	return nil
}
