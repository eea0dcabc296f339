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

func (rt *Router) departmentRoutes(api fiber.Router) {
	dept := api.Group("/department")

	dept.Get("/tree", middleware.RequireAnyPermission(rt.permissionService, "system:dept:list"), rt.getDepartmentTree)
	dept.Post("/add", middleware.RequireAnyPermission(rt.permissionService, "system:dept:add"), rt.addDepartment)
	dept.Put("/:id", middleware.RequireAnyPermission(rt.permissionService, "system:dept:edit"), rt.updateDepartment)
	dept.Delete("/:id", middleware.RequireAnyPermission(rt.permissionService, "system:dept:remove"), rt.deleteDepartment)
}

func (rt *Router) getDepartmentTree(c *fiber.Ctx) error {
	tree, err := rt.departmentService.GetDepartmentTree()
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, tree)
}

func (rt *Router) addDepartment(c *fiber.Ctx) error {
	var req model.CreateDepartmentReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	department, err := rt.departmentService.CreateDepartment(&req, currentCompanyId(c))
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, department)
}

func (rt *Router) updateDepartment(c *fiber.Ctx) error {
	departmentId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	var req model.UpdateDepartmentReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.departmentService.UpdateDepartment(departmentId, &req); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}

func (rt *Router) deleteDepartment(c *fiber.Ctx) error {
	departmentId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.departmentService.DeleteDepartment(departmentId); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}
