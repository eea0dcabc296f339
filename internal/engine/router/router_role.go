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

package router

import (
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) roleRoutes(api fiber.Router) {
	role := api.Group("/role")

	role.Get("/list", middleware.RequireAnyPermission(rt.permissionService, "system:role:list"), rt.getRoleList)
	role.Get("/:id", middleware.RequireAnyPermission(rt.permissionService, "system:role:query"), rt.getRole)
	role.Post("/add", middleware.RequireAnyPermission(rt.permissionService, "system:role:add"), rt.addRole)
	role.Put("/:id", middleware.RequireAnyPermission(rt.permissionService, "system:role:edit"), rt.updateRole)
	role.Delete("/:id", middleware.RequireAnyPermission(rt.permissionService, "system:role:remove"), rt.deleteRole)
	role.Get("/:id/menus", middleware.RequireAnyPermission(rt.permissionService, "system:role:query"), rt.getRoleMenus)
	role.Put("/:id/menus", middleware.RequireAnyPermission(rt.permissionService, "system:role:assign"), rt.assignRoleMenus)
	role.Get("/:id/permissions", middleware.RequireAnyPermission(rt.permissionService, "system:role:query"), rt.getRolePermissions)
	role.Put("/:id/permissions", middleware.RequireAnyPermission(rt.permissionService, "system:role:assign"), rt.assignRolePermissions)
}

func (rt *Router) getRoleList(c *fiber.Ctx) error {
	var page model.PageReq
	if err := c.QueryParser(&page); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	roles, total, err := rt.roleService.GetRoleList(&page)
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, model.PageResp{Total: total, List: roles})
}

func (rt *Router) getRole(c *fiber.Ctx) error {
	roleId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	role, err := rt.roleService.GetRole(roleId)
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, role)
}

func (rt *Router) addRole(c *fiber.Ctx) error {
	var req model.CreateRoleReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	role, err := rt.roleService.CreateRole(&req, currentCompanyId(c))
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, role)
}

func (rt *Router) updateRole(c *fiber.Ctx) error {
	roleId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	var req model.UpdateRoleReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.roleService.UpdateRole(c.Context(), roleId, &req); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}

func (rt *Router) deleteRole(c *fiber.Ctx) error {
	roleId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.roleService.DeleteRole(c.Context(), roleId); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}

func (rt *Router) getRoleMenus(c *fiber.Ctx) error {
	roleId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	menuIds, err := rt.roleService.GetRoleMenuIds(roleId)
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"menuIds": menuIds})
}

// assignRoleMenus 全量替换角色可见的菜单集合
func (rt *Router) assignRoleMenus(c *fiber.Ctx) error {
	roleId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	var req model.AssignRoleMenusReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.roleService.AssignMenus(c.Context(), roleId, req.MenuIds); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}

func (rt *Router) getRolePermissions(c *fiber.Ctx) error {
	roleId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	permissionIds, err := rt.roleService.GetRolePermissionIds(roleId)
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"permissionIds": permissionIds})
}

// assignRolePermissions 全量替换角色的权限点集合
func (rt *Router) assignRolePermissions(c *fiber.Ctx) error {
	roleId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	var req model.AssignRolePermissionsReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.roleService.AssignPermissions(c.Context(), roleId, req.PermissionIds); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}
