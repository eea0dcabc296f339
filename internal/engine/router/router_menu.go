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

func (rt *Router) menuRoutes(api fiber.Router) {
	menu := api.Group("/menu")

	menu.Get("/tree", middleware.RequireAnyPermission(rt.permissionService, "system:menu:list"), rt.getMenuTree)
	menu.Post("/add", middleware.RequireAnyPermission(rt.permissionService, "system:menu:add"), rt.addMenu)
	menu.Put("/:id", middleware.RequireAnyPermission(rt.permissionService, "system:menu:edit"), rt.updateMenu)
	menu.Put("/:id/parent", middleware.RequireAnyPermission(rt.permissionService, "system:menu:edit"), rt.moveMenu)
	menu.Put("/:id/enable", middleware.RequireAnyPermission(rt.permissionService, "system:menu:edit"), rt.enableMenu)
	menu.Put("/:id/disable", middleware.RequireAnyPermission(rt.permissionService, "system:menu:edit"), rt.disableMenu)
	menu.Delete("/:id", middleware.RequireAnyPermission(rt.permissionService, "system:menu:remove"), rt.deleteMenu)
}

func (rt *Router) getMenuTree(c *fiber.Ctx) error {
	tree, err := rt.menuService.GetMenuTree()
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, tree)
}

func (rt *Router) addMenu(c *fiber.Ctx) error {
	var req model.CreateMenuReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	menu, err := rt.menuService.CreateMenu(&req, currentCompanyId(c))
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, menu)
}

func (rt *Router) updateMenu(c *fiber.Ctx) error {
	menuId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	var req model.UpdateMenuReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.menuService.UpdateMenu(menuId, &req); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}

// moveMenu 调整菜单挂载点, 目标为空表示移动到顶层
func (rt *Router) moveMenu(c *fiber.Ctx) error {
	menuId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	var req model.MoveMenuReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.menuService.MoveMenu(menuId, req.NewParentId); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}

func (rt *Router) enableMenu(c *fiber.Ctx) error {
	menuId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.menuService.EnableMenu(menuId); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}

func (rt *Router) disableMenu(c *fiber.Ctx) error {
	menuId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.menuService.DisableMenu(menuId); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}

func (rt *Router) deleteMenu(c *fiber.Ctx) error {
	menuId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.menuService.DeleteMenu(menuId); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}
