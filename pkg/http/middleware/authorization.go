package middleware

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-atrium/atrium/internal/engine/consts"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/http/jwt"
	"github.com/go-atrium/atrium/pkg/log"
	"github.com/gofiber/fiber/v2"
	goJwt "github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// AuthorizationMiddleware 认证中间件
// auth: 令牌头与密钥配置
// client: Redis 客户端，校验服务端会话是否仍然有效
// This function is used as the middleware of fiber.
func AuthorizationMiddleware(auth http.Auth, client redis.UniversalClient) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(auth.HeaderName())
		if raw == "" {
			return http.WithRepErrMsg(c, http.TokenBeEmpty.Code, http.TokenBeEmpty.Msg, c.Path())
		}

		token, ok := stripScheme(raw, auth.SchemePrefix())
		if !ok {
			return http.WithRepErrMsg(c, http.TokenFormatIncorrect.Code, http.TokenFormatIncorrect.Msg, c.Path())
		}

		claims, err := jwt.ParseToken(token, auth.SecretKey)
		if err != nil {
			// 检查是否是令牌过期错误
			if errors.Is(err, goJwt.ErrTokenExpired) {
				return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
			}
			log.Errorf("parse token failed: %v", err)
			return http.WithRepErrMsg(c, http.InvalidToken.Code, http.InvalidToken.Msg, c.Path())
		}

		// 服务端会话校验：登出或强制下线后，签名合法的令牌也要拒绝
		tokenKey := consts.UserTokenKey + strconv.FormatUint(claims.UserId, 10)
		exists, err := client.Exists(c.Context(), tokenKey).Result()
		if err != nil {
			log.Errorf("redis check token exists failed: %v", err)
			return http.WithRepErrMsg(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
		}
		if exists == 0 {
			return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
		}

		c.Locals(consts.ClaimsKey, claims)
		return c.Next()
	}
}

// OptionalAuthorizationMiddleware 可选认证中间件
// 匿名请求直接放行，携带合法令牌时注入 claims；格式损坏的令牌仍然拒绝。
func OptionalAuthorizationMiddleware(auth http.Auth) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(auth.HeaderName())
		if raw == "" {
			return c.Next()
		}

		token, ok := stripScheme(raw, auth.SchemePrefix())
		if !ok {
			return http.WithRepErrMsg(c, http.TokenFormatIncorrect.Code, http.TokenFormatIncorrect.Msg, c.Path())
		}

		claims, err := jwt.ParseToken(token, auth.SecretKey)
		if err != nil {
			if errors.Is(err, goJwt.ErrTokenExpired) {
				return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
			}
			return http.WithRepErrMsg(c, http.InvalidToken.Code, http.InvalidToken.Msg, c.Path())
		}

		c.Locals(consts.ClaimsKey, claims)
		return c.Next()
	}
}

// stripScheme 去掉认证方案前缀，大小写不敏感
func stripScheme(raw, prefix string) (string, bool) {
	if len(raw) < len(prefix) || !strings.EqualFold(raw[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(raw[len(prefix):])
	if token == "" {
		return "", false
	}
	return token, true
}

// ClaimsFromCtx 从 fiber context 读取认证载荷
func ClaimsFromCtx(c *fiber.Ctx) (*jwt.AuthClaims, bool) {
	claims, ok := c.Locals(consts.ClaimsKey).(*jwt.AuthClaims)
	return claims, ok && claims != nil
}
