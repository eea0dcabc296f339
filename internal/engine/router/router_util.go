package router

import (
	"errors"
	"strconv"

	"github.com/go-atrium/atrium/internal/engine/service"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// pathId 解析路径中的数字主键
func pathId(c *fiber.Ctx, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	return id, err == nil && id > 0
}

// currentCompanyId 当前请求归属的租户，未解析时为 nil
func currentCompanyId(c *fiber.Ctx) *uint64 {
	if companyId, ok := middleware.CompanyIdFromCtx(c); ok {
		return &companyId
	}
	return nil
}

// repServiceErr 把服务层错误映射到响应码
func repServiceErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.WithRepErrMsg(c, http.NotFound.Code, http.NotFound.Msg, c.Path())
	case errors.Is(err, service.ErrAdminRoleProtected):
		return http.WithRepErrMsg(c, http.AdminRoleProtected.Code, err.Error(), c.Path())
	case errors.Is(err, service.ErrMenuCycle):
		return http.WithRepErrMsg(c, http.MenuCycleRejected.Code, err.Error(), c.Path())
	case errors.Is(err, service.ErrMenuHasChildren):
		return http.WithRepErrMsg(c, http.MenuHasChildren.Code, err.Error(), c.Path())
	case errors.Is(err, service.ErrMenuParentState):
		return http.WithRepErrMsg(c, http.MenuParentDisabled.Code, err.Error(), c.Path())
	case errors.Is(err, service.ErrRoleCodeExists):
		return http.WithRepErrMsg(c, http.RoleCodeExists.Code, err.Error(), c.Path())
	case errors.Is(err, service.ErrRoleStillAssigned):
		return http.WithRepErrMsg(c, http.RoleStillAssigned.Code, err.Error(), c.Path())
	case errors.Is(err, service.ErrPermCodeExists):
		return http.WithRepErrMsg(c, http.PermCodeExists.Code, err.Error(), c.Path())
	case errors.Is(err, service.ErrUserAlreadyExist):
		return http.WithRepErrMsg(c, http.UserAlreadyExist.Code, err.Error(), c.Path())
	case errors.Is(err, service.ErrCompanyCodeExists):
		return http.WithRepErrMsg(c, http.CompanyCodeExists.Code, err.Error(), c.Path())
	case errors.Is(err, service.ErrDepartmentNotEmpty):
		return http.WithRepErrMsg(c, http.DepartmentNotEmpty.Code, err.Error(), c.Path())
	case errors.Is(err, service.ErrDepartmentCycle):
		return http.WithRepErrMsg(c, http.DepartmentCycleRejected.Code, err.Error(), c.Path())
	case errors.Is(err, service.ErrPermissionInUse):
		return http.WithRepErrMsg(c, http.PermissionInUse.Code, err.Error(), c.Path())
	case errors.Is(err, service.ErrIncorrectPassword):
		return http.WithRepErrMsg(c, http.UserIncorrectPassword.Code, err.Error(), c.Path())
	case errors.Is(err, service.ErrUserDisabled):
		return http.WithRepErrMsg(c, http.UserDisabled.Code, err.Error(), c.Path())
	case errors.Is(err, service.ErrCompanyNotActive):
		return http.WithRepErrMsg(c, http.CompanyNotActive.Code, err.Error(), c.Path())
	default:
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}
}
