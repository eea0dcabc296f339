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

// 公司管理属于平台级操作, 仅持有 admin 权限的账号可达
func (rt *Router) companyRoutes(api fiber.Router) {
	company := api.Group("/company")

	company.Get("/list", middleware.RequireAnyPermission(rt.permissionService, "system:company:list"), rt.getCompanyList)
	company.Get("/:id", middleware.RequireAnyPermission(rt.permissionService, "system:company:query"), rt.getCompany)
	company.Post("/add", middleware.RequireAnyPermission(rt.permissionService, "system:company:add"), rt.addCompany)
	company.Put("/:id", middleware.RequireAnyPermission(rt.permissionService, "system:company:edit"), rt.updateCompany)
	company.Delete("/:id", middleware.RequireAnyPermission(rt.permissionService, "system:company:remove"), rt.deleteCompany)
}

func (rt *Router) getCompanyList(c *fiber.Ctx) error {
	var page model.PageReq
	if err := c.QueryParser(&page); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	companies, total, err := rt.companyService.GetCompanyList(&page)
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, model.PageResp{Total: total, List: companies})
}

func (rt *Router) getCompany(c *fiber.Ctx) error {
	companyId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	company, err := rt.companyService.GetCompany(companyId)
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, company)
}

func (rt *Router) addCompany(c *fiber.Ctx) error {
	var req model.CreateCompanyReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	company, err := rt.companyService.CreateCompany(&req)
	if err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepJSON(c, company)
}

func (rt *Router) updateCompany(c *fiber.Ctx) error {
	companyId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	var req model.UpdateCompanyReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.companyService.UpdateCompany(companyId, &req); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}

func (rt *Router) deleteCompany(c *fiber.Ctx) error {
	companyId, ok := pathId(c, "id")
	if !ok {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.companyService.DeleteCompany(companyId); err != nil {
		return repServiceErr(c, err)
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}
