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
	"time"

	"github.com/go-atrium/atrium/internal/engine/service"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/http/middleware"
	"github.com/go-atrium/atrium/pkg/version"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

/**
 * @file: router.go
 * @description: setup router
 */

type Router struct {
	Http *http.Http

	redis redis.UniversalClient

	authService       *service.AuthService
	userService       *service.UserService
	roleService       *service.RoleService
	menuService       *service.MenuService
	permissionService *service.PermissionService
	tenantService     *service.TenantService
	companyService    *service.CompanyService
	departmentService *service.DepartmentService
}

func NewRouter(
	httpConf *http.Http,
	redisClient redis.UniversalClient,
	authService *service.AuthService,
	userService *service.UserService,
	roleService *service.RoleService,
	menuService *service.MenuService,
	permissionService *service.PermissionService,
	tenantService *service.TenantService,
	companyService *service.CompanyService,
	departmentService *service.DepartmentService,
) *Router {
	return &Router{
		Http:              httpConf,
		redis:             redisClient,
		authService:       authService,
		userService:       userService,
		roleService:       roleService,
		menuService:       menuService,
		permissionService: permissionService,
		tenantService:     tenantService,
		companyService:    companyService,
		departmentService: departmentService,
	}
}

func (rt *Router) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Atrium",
		ReadTimeout:  time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(rt.Http.IdleTimeout) * time.Second,
	})

	app.Use(
		middleware.ExceptionMiddleware,
		middleware.CorsMiddleware(),
		middleware.RealIPMiddleware(),
	)
	app.Use(middleware.AccessLogMiddleware(rt.Http))

	if rt.Http.PProf {
		app.Use(pprof.New())
	}

	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// 健康检查
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// 版本信息
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	rt.routerGroup(app)

	// 找不到路径时的处理 - 必须在所有路由注册之后
	app.Use(func(c *fiber.Ctx) error {
		return http.WithRepErrMsg(c, fiber.StatusNotFound, "request path not found", c.Path())
	})

	return app
}

func (rt *Router) routerGroup(app *fiber.App) {
	contextPath := rt.Http.ContextPath
	if contextPath == "" {
		contextPath = "/api/v1"
	}
	api := app.Group(contextPath)

	auth := middleware.AuthorizationMiddleware(rt.Http.Auth, rt.redis)
	tenant := middleware.TenantMiddleware(rt.tenantService, rt.Http.Tenant)

	// 认证入口，无需令牌。已登录的客户端带令牌重新登录时，
	// 可选认证先注入 claims，租户解析才能拿到令牌里的 companyId。
	api.Post("/auth/login",
		middleware.OptionalAuthorizationMiddleware(rt.Http.Auth),
		middleware.TenantMiddleware(rt.tenantService, http.Tenant{AllowUnresolved: true}),
		rt.login)
	api.Post("/auth/refresh", rt.refreshToken)

	// 以下全部要求认证并解析租户
	authed := api.Group("", auth, tenant)

	authed.Post("/auth/logout", rt.logout)
	authed.Get("/auth/profile", rt.profile)
	authed.Get("/auth/authorities", rt.authorities)
	authed.Get("/auth/menus", rt.userMenus)
	authed.Post("/auth/password", rt.changePassword)

	rt.userRoutes(authed)
	rt.roleRoutes(authed)
	rt.menuRoutes(authed)
	rt.permissionRoutes(authed)
	rt.companyRoutes(authed)
	rt.departmentRoutes(authed)
}
