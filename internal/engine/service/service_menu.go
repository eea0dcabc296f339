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
	"errors"
	"sort"

	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/internal/engine/repo"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/id"
)

var (
	ErrMenuCycle       = errors.New(http.MenuCycleRejected.Msg)
	ErrMenuHasChildren = errors.New(http.MenuHasChildren.Msg)
	ErrMenuParentState = errors.New(http.MenuParentDisabled.Msg)
)

// MenuService 菜单服务
type MenuService struct {
	menuRepo repo.IMenuRepository
}

func NewMenuService(menuRepo repo.IMenuRepository) *MenuService {
	return &MenuService{
		menuRepo: menuRepo,
	}
}

// BuildMenuTree 把平铺的菜单列表组装为树。
// 兄弟节点按 sort 升序，sort=0 视为未设置排在最后，再按 id 升序；
// 父节点缺失的节点提升为顶级，不丢弃。
func BuildMenuTree(menus []model.Menu) []*model.MenuNode {
	nodeMap := make(map[uint64]*model.MenuNode, len(menus))
	for i := range menus {
		nodeMap[menus[i].ID] = &model.MenuNode{Menu: menus[i], Children: []*model.MenuNode{}}
	}

	var roots []*model.MenuNode
	for _, node := range nodeMap {
		if node.ParentId != nil {
			if parent, ok := nodeMap[*node.ParentId]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	var sortSiblings func(nodes []*model.MenuNode)
	sortSiblings = func(nodes []*model.MenuNode) {
		sort.Slice(nodes, func(i, j int) bool {
			if less, decided := sortKeyLess(nodes[i].Sort, nodes[j].Sort); decided {
				return less
			}
			return nodes[i].ID < nodes[j].ID
		})
		for _, node := range nodes {
			sortSiblings(node.Children)
		}
	}
	sortSiblings(roots)

	return roots
}

// sortKeyLess 比较两个 sort 键，0 视为未设置排在所有非零键之后。
// 两键相等时返回 decided=false，由调用方用 id 决胜。
func sortKeyLess(a, b int) (less, decided bool) {
	if a == b {
		return false, false
	}
	if a == 0 || b == 0 {
		return b == 0, true
	}
	return a < b, true
}

// GetMenuTree 当前租户的完整菜单树，管理端使用
func (s *MenuService) GetMenuTree() ([]*model.MenuNode, error) {
	menus, err := s.menuRepo.GetMenuList()
	if err != nil {
		return nil, err
	}
	return BuildMenuTree(menus), nil
}

// GetUserMenuTree 过滤后的菜单树：仅启用、可见，且权限码在用户权限集内（或无权限要求）。
// admin 标记直接跳过权限码过滤。
func (s *MenuService) GetUserMenuTree(authorities []string) ([]*model.MenuNode, error) {
	menus, err := s.menuRepo.GetMenuList()
	if err != nil {
		return nil, err
	}

	held := make(map[string]struct{}, len(authorities))
	for _, a := range authorities {
		held[a] = struct{}{}
	}
	_, isAdmin := held[AdminAuthority]

	visible := make([]model.Menu, 0, len(menus))
	for _, menu := range menus {
		if menu.Status != model.StatusEnabled || menu.Visible != model.MenuVisible {
			continue
		}
		if !isAdmin && menu.PermissionCode != "" {
			if _, ok := held[menu.PermissionCode]; !ok {
				continue
			}
		}
		visible = append(visible, menu)
	}

	return BuildMenuTree(visible), nil
}

// CreateMenu 新建菜单，父节点必须存在于当前租户
func (s *MenuService) CreateMenu(req *model.CreateMenuReq, companyId *uint64) (*model.Menu, error) {
	if req.ParentId != nil {
		if _, err := s.menuRepo.GetMenu(*req.ParentId); err != nil {
			return nil, err
		}
	}

	menu := &model.Menu{
		Uid:            id.GetUlid(),
		ParentId:       req.ParentId,
		Name:           req.Name,
		Path:           req.Path,
		Component:      req.Component,
		Icon:           req.Icon,
		Sort:           req.Sort,
		PermissionCode: req.PermissionCode,
		Visible:        model.MenuVisible,
		Status:         model.StatusEnabled,
		CompanyId:      companyId,
		Meta:           req.Meta,
	}
	if req.Visible != nil {
		menu.Visible = *req.Visible
	}
	if req.Status != nil {
		menu.Status = *req.Status
	}

	if err := s.menuRepo.AddMenu(menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// UpdateMenu 更新菜单属性，父节点调整走 MoveMenu
func (s *MenuService) UpdateMenu(menuId uint64, req *model.UpdateMenuReq) error {
	if _, err := s.menuRepo.GetMenu(menuId); err != nil {
		return err
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Path != nil {
		updates["path"] = *req.Path
	}
	if req.Component != nil {
		updates["component"] = *req.Component
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if req.Sort != nil {
		updates["sort"] = *req.Sort
	}
	if req.PermissionCode != nil {
		updates["permission_code"] = *req.PermissionCode
	}
	if req.Visible != nil {
		updates["visible"] = *req.Visible
	}
	if !req.Meta.IsNull() {
		updates["meta"] = req.Meta
	}

	if err := s.menuRepo.UpdateMenu(menuId, updates); err != nil {
		return err
	}

	// 启停有级联语义，走专用路径
	if req.Status != nil {
		if *req.Status == model.StatusEnabled {
			return s.EnableMenu(menuId)
		}
		return s.DisableMenu(menuId)
	}
	return nil
}

// MoveMenu 调整父节点。
// 目标父节点不能是自身，也不能是自身的后代，否则会在持久化的树里制造环。
func (s *MenuService) MoveMenu(menuId uint64, newParentId *uint64) error {
	if _, err := s.menuRepo.GetMenu(menuId); err != nil {
		return err
	}

	if newParentId != nil {
		if *newParentId == menuId {
			return ErrMenuCycle
		}
		if _, err := s.menuRepo.GetMenu(*newParentId); err != nil {
			return err
		}

		menus, err := s.menuRepo.GetMenuList()
		if err != nil {
			return err
		}
		if isDescendant(menus, menuId, *newParentId) {
			return ErrMenuCycle
		}
	}

	return s.menuRepo.UpdateMenuParent(menuId, newParentId)
}

// isDescendant 判断 candidate 是否在 rootId 的子树内，依据持久化的父指针走
func isDescendant(menus []model.Menu, rootId, candidate uint64) bool {
	children := make(map[uint64][]uint64, len(menus))
	for _, menu := range menus {
		if menu.ParentId != nil {
			children[*menu.ParentId] = append(children[*menu.ParentId], menu.ID)
		}
	}

	stack := []uint64{rootId}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, childId := range children[current] {
			if childId == candidate {
				return true
			}
			stack = append(stack, childId)
		}
	}
	return false
}

// DisableMenu 禁用菜单并级联禁用整棵子树
func (s *MenuService) DisableMenu(menuId uint64) error {
	if _, err := s.menuRepo.GetMenu(menuId); err != nil {
		return err
	}

	menus, err := s.menuRepo.GetMenuList()
	if err != nil {
		return err
	}

	targets := []uint64{menuId}
	targets = append(targets, descendantIds(menus, menuId)...)

	return s.menuRepo.UpdateMenuStatus(targets, model.StatusDisabled)
}

// EnableMenu 启用菜单，父节点必须已启用，不向下级联
func (s *MenuService) EnableMenu(menuId uint64) error {
	menu, err := s.menuRepo.GetMenu(menuId)
	if err != nil {
		return err
	}

	if menu.ParentId != nil {
		parent, err := s.menuRepo.GetMenu(*menu.ParentId)
		if err != nil {
			return err
		}
		if parent.Status != model.StatusEnabled {
			return ErrMenuParentState
		}
	}

	return s.menuRepo.UpdateMenuStatus([]uint64{menuId}, model.StatusEnabled)
}

// DeleteMenu 删除菜单，存在子节点时拒绝
func (s *MenuService) DeleteMenu(menuId uint64) error {
	if _, err := s.menuRepo.GetMenu(menuId); err != nil {
		return err
	}

	count, err := s.menuRepo.CountChildren(menuId)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrMenuHasChildren
	}

	return s.menuRepo.DeleteMenu(menuId)
}

// descendantIds 收集整棵子树的节点 id，不含根
func descendantIds(menus []model.Menu, rootId uint64) []uint64 {
	children := make(map[uint64][]uint64, len(menus))
	for _, menu := range menus {
		if menu.ParentId != nil {
			children[*menu.ParentId] = append(children[*menu.ParentId], menu.ID)
		}
	}

	var out []uint64
	stack := []uint64{rootId}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, childId := range children[current] {
			out = append(out, childId)
			stack = append(stack, childId)
		}
	}
	return out
}
