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

func (rt *Router) userRoutes(api fiber.Router) {
	user := api.Group("/user")

	user.Get("/list", middleware.RequireAnyPermission(rt.permissionService, "system:user:list"), rt.getUserList)
	user.Get("/:id", middleware.RequireAnyPermission(rt.permissionService, "system:user:query"), rt.getUser)
	user.Post("/add", middleware.RequireAnyPermission(rt.permissionService, "system:user:add"), rt.addUser)
	user.Put("/:id", middleware.RequireAnyPermission(rt.permissionService, "system:user:edit"), rt.updateUser)
	user.Delete("/:id", middleware.RequireAnyPermission(rt.permissionService, "system:user:remove"), rt.deleteUser)
	user.Get("/:id/roles", middleware.RequireAnyPermission(rt.permissionService, "system:user:query"), rt.getUserRoles)
	user.Put("/:id/roles", middleware.RequireAnyPermission(rt.permissionService, "system:user:assign"), rt.assignUserRoles)
	user.Put("/:id/password", middleware.RequireAnyPermission(rt.permissionService, "system:user:reset"), rt.resetUserPassword)
	user.Put("/:id/company", middleware.RequireAnyPermission(rt.permissionService, "system:user:transfer"), rt.transferUserCompany)
}

func (rt *Router) getUserList(c *fiber.Ctx) error {
	var page model.PageReq
	if err := c.QueryParser(&page); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	users, total, err := rt.userService.GetUserList(&page)
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, model.PageResp{Total: total, List: users})
}

func (rt *Router) getUser(c *fiber.Ctx) error {
	userId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	user, err := rt.userService.GetUser(userId)
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, user)
}

func (rt *Router) addUser(c *fiber.Ctx) error {
	var req model.CreateUserReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	user, err := rt.userService.CreateUser(&req, currentCompanyId(c))
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, user)
}

func (rt *Router) updateUser(c *fiber.Ctx) error {
	userId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	var req model.UpdateUserReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.userService.UpdateUser(userId, &req); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}

func (rt *Router) deleteUser(c *fiber.Ctx) error {
	userId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.userService.DeleteUser(c.Context(), userId); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}

func (rt *Router) getUserRoles(c *fiber.Ctx) error {
	userId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	roles, err := rt.userService.GetUserRoles(userId)
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, roles)
}

// assignUserRoles 全量替换用户的角色集合
func (rt *Router) assignUserRoles(c *fiber.Ctx) error {
	userId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	var req model.AssignUserRolesReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.userService.AssignRoles(c.Context(), userId, req.RoleIds); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}

// resetUserPassword 管理员重置密码，目标用户被强制下线
func (rt *Router) resetUserPassword(c *fiber.Ctx) error {
	userId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	var req model.ResetPasswordReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.userService.ResetPassword(userId, &req); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}

// transferUserCompany 租户调动，平台级操作
func (rt *Router) transferUserCompany(c *fiber.Ctx) error {
	userId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	var req model.TransferUserReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.userService.TransferCompany(c.Context(), userId, req.CompanyId); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}
