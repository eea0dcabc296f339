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

package http

var (
	Failed                        = failed(500, "Request failed")
	RequestParameterParsingFailed = failed(5001, "Request parameter parsing failed")

	// Unauthorized 401 认证失败（“你是谁”）
	Unauthorized         = failed(4401, "Unauthorized")
	AuthenticationFailed = failed(4402, "Authentication failed")
	AuthorizationEmpty   = failed(4404, "Authorization is empty")
	InvalidToken         = failed(4405, "Invalid token")
	TokenBeEmpty         = failed(4406, "Token cannot be empty")
	TokenExpired         = failed(4407, "Token is expired")
	TokenFormatIncorrect = failed(4408, "Token format is incorrect")

	// BadRequest 400
	BadRequest = failed(4000, "Bad request")
	NotFound   = failed(4004, "Not found")

	// Forbidden 403 授权失败（“你不能做这件事”），与认证失败区分
	Forbidden        = failed(4030, "Forbidden")
	PermissionDenied = failed(4031, "Permission denied")

	// Tenant / RBAC 校验失败
	TenantUnresolved   = failed(4460, "Tenant could not be resolved")
	MenuCycleRejected  = failed(4461, "Menu parent would create a cycle")
	AdminRoleProtected = failed(4462, "Builtin admin role is protected")

	InternalError = failed(5000, "Internal error, please contact the administrator")

	UserNotExist                  = failed(4041, "User does not exist")
	UserAlreadyExist              = failed(4042, "User already exists")
	UserIncorrectPassword         = failed(4043, "User incorrect password")
	UserDisabled                  = failed(4044, "User is disabled")
	UsernameArePasswordIsRequired = failed(4045, "Username and password are required")

	RoleNotExist       = failed(4051, "Role does not exist")
	RoleCodeExists     = failed(4052, "Role code already exists")
	MenuNotExist       = failed(4053, "Menu does not exist")
	MenuHasChildren    = failed(4054, "Menu still has children")
	PermissionNotExist = failed(4055, "Permission does not exist")
	PermCodeExists     = failed(4056, "Permission code already exists")
	CompanyNotExist    = failed(4057, "Company does not exist")
	CompanyCodeExists  = failed(4058, "Company code already exists")
	CompanyNotActive   = failed(4059, "Company is disabled or expired")

	MenuParentDisabled      = failed(4061, "Parent menu is disabled")
	RoleStillAssigned       = failed(4062, "Role is still assigned to users")
	DepartmentNotExist      = failed(4063, "Department does not exist")
	DepartmentNotEmpty      = failed(4064, "Department still has children or users")
	DepartmentCycleRejected = failed(4065, "Department parent would create a cycle")
	PermissionInUse         = failed(4066, "Permission is still bound to roles")
)

var (
	Success = success(200, "Request Success")
)

// failed 构造函数
func failed(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}

// success 构造函数
func success(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}
