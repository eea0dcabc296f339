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

func (rt *Router) permissionRoutes(api fiber.Router) {
	perm := api.Group("/permission")

	perm.Get("/list", middleware.RequireAnyPermission(rt.permissionService, "system:perm:list"), rt.getPermissionList)
	perm.Get("/:id", middleware.RequireAnyPermission(rt.permissionService, "system:perm:query"), rt.getPermission)
	perm.Post("/add", middleware.RequireAnyPermission(rt.permissionService, "system:perm:add"), rt.addPermission)
	perm.Put("/:id", middleware.RequireAnyPermission(rt.permissionService, "system:perm:edit"), rt.updatePermission)
	perm.Delete("/:id", middleware.RequireAnyPermission(rt.permissionService, "system:perm:remove"), rt.deletePermission)
}

func (rt *Router) getPermissionList(c *fiber.Ctx) error {
	var page model.PageReq
	if err := c.QueryParser(&page); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	permissions, total, err := rt.permissionService.GetPermissionList(&page)
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, model.PageResp{Total: total, List: permissions})
}

func (rt *Router) getPermission(c *fiber.Ctx) error {
	permissionId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	permission, err := rt.permissionService.GetPermission(permissionId)
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, permission)
}

func (rt *Router) addPermission(c *fiber.Ctx) error {
	var req model.CreatePermissionReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	permission, err := rt.permissionService.CreatePermission(&req, currentCompanyId(c))
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, permission)
}

func (rt *Router) updatePermission(c *fiber.Ctx) error {
	permissionId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	var req model.UpdatePermissionReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.permissionService.UpdatePermission(c.Context(), permissionId, &req); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}

func (rt *Router) deletePermission(c *fiber.Ctx) error {
	permissionId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.permissionService.DeletePermission(permissionId); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}
