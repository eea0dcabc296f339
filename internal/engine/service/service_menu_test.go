package service

import (
	"testing"

	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMenuFixture() (*fakeStore, *MenuService) {
	store := newFakeStore()
	return store, NewMenuService(&fakeMenuRepo{store: store})
}

func seedMenu(store *fakeStore, name string, parentId *uint64, sortNo int) *model.Menu {
	menu := &model.Menu{Name: name, ParentId: parentId, Sort: sortNo,
		Status: model.StatusEnabled, Visible: model.MenuVisible}
	menu.ID = store.id()
	store.menus[menu.ID] = menu
	return menu
}

func TestBuildMenuTreeSortsSiblings(t *testing.T) {
	menus := []model.Menu{
		{BaseModel: model.BaseModel{ID: 1}, Name: "b", Sort: 2},
		{BaseModel: model.BaseModel{ID: 2}, Name: "a", Sort: 1},
		{BaseModel: model.BaseModel{ID: 3}, Name: "c", Sort: 2}, // 与 b 同 sort，按 id 稳定排序
	}

	roots := BuildMenuTree(menus)
	require.Len(t, roots, 3)
	assert.Equal(t, "a", roots[0].Name)
	assert.Equal(t, "b", roots[1].Name)
	assert.Equal(t, "c", roots[2].Name)
}

// sort=0 视为未设置，排在所有非零 sort 之后
func TestBuildMenuTreeUnsetSortOrdersLast(t *testing.T) {
	menus := []model.Menu{
		{BaseModel: model.BaseModel{ID: 1}, Name: "unset"},
		{BaseModel: model.BaseModel{ID: 2}, Name: "sorted", Sort: 1},
		{BaseModel: model.BaseModel{ID: 3}, Name: "unset2"},
	}

	roots := BuildMenuTree(menus)
	require.Len(t, roots, 3)
	assert.Equal(t, "sorted", roots[0].Name)
	assert.Equal(t, "unset", roots[1].Name)
	assert.Equal(t, "unset2", roots[2].Name)
}

func TestBuildMenuTreeNesting(t *testing.T) {
	parentId := uint64(1)
	menus := []model.Menu{
		{BaseModel: model.BaseModel{ID: 1}, Name: "root"},
		{BaseModel: model.BaseModel{ID: 2}, Name: "child", ParentId: &parentId, Sort: 2},
		{BaseModel: model.BaseModel{ID: 3}, Name: "first", ParentId: &parentId, Sort: 1},
	}

	roots := BuildMenuTree(menus)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "first", roots[0].Children[0].Name)
	assert.Equal(t, "child", roots[0].Children[1].Name)
}

func TestBuildMenuTreePromotesOrphans(t *testing.T) {
	missing := uint64(99)
	menus := []model.Menu{
		{BaseModel: model.BaseModel{ID: 1}, Name: "root"},
		{BaseModel: model.BaseModel{ID: 2}, Name: "orphan", ParentId: &missing},
	}

	roots := BuildMenuTree(menus)
	require.Len(t, roots, 2)
}

func TestMoveMenuRejectsSelfParent(t *testing.T) {
	store, svc := newMenuFixture()
	menu := seedMenu(store, "a", nil, 0)

	err := svc.MoveMenu(menu.ID, &menu.ID)
	assert.ErrorIs(t, err, ErrMenuCycle)
}

func TestMoveMenuRejectsDescendantParent(t *testing.T) {
	store, svc := newMenuFixture()
	root := seedMenu(store, "root", nil, 0)
	child := seedMenu(store, "child", &root.ID, 0)
	grandchild := seedMenu(store, "grandchild", &child.ID, 0)

	// root 不能挂到自己的孙子下面
	err := svc.MoveMenu(root.ID, &grandchild.ID)
	assert.ErrorIs(t, err, ErrMenuCycle)

	// 平移合法
	err = svc.MoveMenu(grandchild.ID, &root.ID)
	require.NoError(t, err)
	assert.Equal(t, root.ID, *store.menus[grandchild.ID].ParentId)
}

func TestMoveMenuToTopLevel(t *testing.T) {
	store, svc := newMenuFixture()
	root := seedMenu(store, "root", nil, 0)
	child := seedMenu(store, "child", &root.ID, 0)

	require.NoError(t, svc.MoveMenu(child.ID, nil))
	assert.Nil(t, store.menus[child.ID].ParentId)
}

// 隐藏菜单是零值写入，不能被更新路径悄悄丢掉
func TestHideMenuPersists(t *testing.T) {
	store, svc := newMenuFixture()
	menu := seedMenu(store, "dashboard", nil, 1)

	hidden := model.MenuInvisible
	require.NoError(t, svc.UpdateMenu(menu.ID, &model.UpdateMenuReq{Visible: &hidden}))
	assert.Equal(t, model.MenuInvisible, store.menus[menu.ID].Visible)
}

func TestDisableMenuCascades(t *testing.T) {
	store, svc := newMenuFixture()
	root := seedMenu(store, "root", nil, 0)
	child := seedMenu(store, "child", &root.ID, 0)
	grandchild := seedMenu(store, "grandchild", &child.ID, 0)
	sibling := seedMenu(store, "sibling", nil, 0)

	require.NoError(t, svc.DisableMenu(root.ID))

	assert.Equal(t, model.StatusDisabled, store.menus[root.ID].Status)
	assert.Equal(t, model.StatusDisabled, store.menus[child.ID].Status)
	assert.Equal(t, model.StatusDisabled, store.menus[grandchild.ID].Status)
	assert.Equal(t, model.StatusEnabled, store.menus[sibling.ID].Status)
}

func TestEnableMenuRequiresEnabledParent(t *testing.T) {
	store, svc := newMenuFixture()
	root := seedMenu(store, "root", nil, 0)
	child := seedMenu(store, "child", &root.ID, 0)

	require.NoError(t, svc.DisableMenu(root.ID))

	// 父节点未启用时不能单独启用子节点
	err := svc.EnableMenu(child.ID)
	assert.ErrorIs(t, err, ErrMenuParentState)

	// 先启用父节点，子节点不级联恢复
	require.NoError(t, svc.EnableMenu(root.ID))
	assert.Equal(t, model.StatusDisabled, store.menus[child.ID].Status)

	require.NoError(t, svc.EnableMenu(child.ID))
	assert.Equal(t, model.StatusEnabled, store.menus[child.ID].Status)
}

func TestDeleteMenuWithChildrenRejected(t *testing.T) {
	store, svc := newMenuFixture()
	root := seedMenu(store, "root", nil, 0)
	child := seedMenu(store, "child", &root.ID, 0)

	err := svc.DeleteMenu(root.ID)
	assert.ErrorIs(t, err, ErrMenuHasChildren)

	require.NoError(t, svc.DeleteMenu(child.ID))
	require.NoError(t, svc.DeleteMenu(root.ID))
	assert.Equal(t, model.Deleted, store.menus[root.ID].IsDeleted)
}

func TestGetUserMenuTreeFiltersByAuthority(t *testing.T) {
	store, svc := newMenuFixture()
	open := seedMenu(store, "open", nil, 1)
	guarded := seedMenu(store, "guarded", nil, 2)
	guarded.PermissionCode = "system:menu:view"
	hidden := seedMenu(store, "hidden", nil, 3)
	hidden.Visible = model.MenuInvisible
	disabled := seedMenu(store, "disabled", nil, 4)
	disabled.Status = model.StatusDisabled

	// 无权限：只看到 open
	tree, err := svc.GetUserMenuTree(nil)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, open.Name, tree[0].Name)

	// 持有权限码：看到 guarded
	tree, err = svc.GetUserMenuTree([]string{"system:menu:view"})
	require.NoError(t, err)
	require.Len(t, tree, 2)

	// admin 标记跳过权限码过滤，但隐藏/禁用的仍然不可见
	tree, err = svc.GetUserMenuTree([]string{AdminAuthority})
	require.NoError(t, err)
	require.Len(t, tree, 2)
}
