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

// login 用户名密码登录
func (rt *Router) login(c *fiber.Ctx) error {
	var req model.LoginReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}
	if req.Username == "" || req.Password == "" {
		return http.WithRepErrMsg(c, http.UsernameArePasswordIsRequired.Code, http.UsernameArePasswordIsRequired.Msg, c.Path())
	}

	resp, err := rt.authService.Login(c.Context(), &req, rt.Http.Auth)
	if err != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, err.Error(), c.Path())
	}

	return http.WithRepJSON(c, resp)
}

// logout 登出，回收服务端会话
func (rt *Router) logout(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	if err := rt.authService.Logout(c.Context(), claims.UserId); err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}

// refreshToken 换发令牌对
func (rt *Router) refreshToken(c *fiber.Ctx) error {
	var req model.RefreshTokenReq
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" || req.UserId == 0 {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	tokenInfo, err := rt.authService.RefreshToken(c.Context(), req.UserId, req.RefreshToken, rt.Http.Auth)
	if err != nil {
		return http.WithRepErrMsg(c, http.InvalidToken.Code, err.Error(), c.Path())
	}
	return http.WithRepJSON(c, tokenInfo)
}

// profile 当前用户信息
func (rt *Router) profile(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	user, err := rt.userService.GetUser(claims.UserId)
	if err != nil {
		return http.WithRepErrMsg(c, http.UserNotExist.Code, http.UserNotExist.Msg, c.Path())
	}

	authorities, err := rt.permissionService.EffectiveAuthorities(c.Context(), claims.UserId, claims.CompanyId)
	if err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	return http.WithRepJSON(c, model.UserInfo{
		UserId:      user.ID,
		Username:    user.Username,
		Nickname:    user.Nickname,
		Email:       user.Email,
		Avatar:      user.Avatar,
		CompanyId:   user.CompanyId,
		Authorities: authorities,
	})
}

// authorities 当前用户的有效权限集，前端按钮级控制使用
func (rt *Router) authorities(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	authorities, err := rt.permissionService.EffectiveAuthorities(c.Context(), claims.UserId, claims.CompanyId)
	if err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}
	return http.WithRepJSON(c, fiber.Map{"authorities": authorities})
}

// userMenus 当前用户可见的菜单树
func (rt *Router) userMenus(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	authorities, err := rt.permissionService.EffectiveAuthorities(c.Context(), claims.UserId, claims.CompanyId)
	if err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	tree, err := rt.menuService.GetUserMenuTree(authorities)
	if err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}
	return http.WithRepJSON(c, tree)
}

// changePassword 修改自己的密码
func (rt *Router) changePassword(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	var req model.ChangePasswordReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.userService.ChangePassword(claims.UserId, &req); err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}
	return http.WithRepMsg(c, http.Success.Code, http.Success.Msg)
}
