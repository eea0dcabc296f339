package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

/**
 * @file: jwt.go
 * @description: stateless token codec
 */

// AuthClaims 令牌载荷：身份、租户与权限快照。
// Authorities 为逗号拼接的权限集（ROLE_ 前缀的角色码、权限码、admin 标记），
// 在签发时冻结，角色/权限变更要等下一次签发或显式失效后才生效。
type AuthClaims struct {
	UserId      uint64  `json:"userId"`
	CompanyId   *uint64 `json:"companyId,omitempty"`
	Authorities string  `json:"authorities"`
	jwt.RegisteredClaims
}

var issuer = "atrium"

// AuthorityList 把逗号拼接的权限串还原为列表
func (a *AuthClaims) AuthorityList() []string {
	if a.Authorities == "" {
		return nil
	}
	parts := strings.Split(a.Authorities, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GenToken 生成 access_token 和 refresh_token。
// expiresIn 为签发时刻重新计算的 expiry − now（毫秒），给客户端一个新鲜的倒计时。
func GenToken(username string, userId uint64, companyId *uint64, authorities []string,
	secretKey []byte, accessExpired, refreshExpired time.Duration) (aToken, rToken string, expiresIn int64, err error) {

	now := time.Now()
	expiry := now.Add(accessExpired * time.Minute)

	// aToken
	aClaims := &AuthClaims{
		UserId:      userId,
		CompanyId:   companyId,
		Authorities: strings.Join(authorities, ","),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    issuer, // 签发人
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}
	aToken, aErr := jwt.NewWithClaims(jwt.SigningMethodHS256, aClaims).SignedString(secretKey)
	if aErr != nil {
		return "", "", 0, aErr
	}

	// rToken
	rClaims := jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(refreshExpired * time.Minute)),
	}
	rToken, rErr := jwt.NewWithClaims(jwt.SigningMethodHS256, rClaims).SignedString(secretKey)
	if rErr != nil {
		return "", "", 0, rErr
	}

	expiresIn = time.Until(expiry).Milliseconds()

	return aToken, rToken, expiresIn, nil
}

// ParseToken 校验 access_token。
// 过期返回 jwt.ErrTokenExpired，结构或签名损坏返回包装后的错误。
func ParseToken(aToken, secretKey string) (claims *AuthClaims, err error) {
	claims = new(AuthClaims)
	token, err := jwt.ParseWithClaims(aToken, claims, func(token *jwt.Token) (any, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, jwt.ErrTokenExpired
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// RefreshToken 用合法的 refresh_token 换发新令牌对
func RefreshToken(rToken string, username string, userId uint64, companyId *uint64, authorities []string,
	secretKey string, accessExpired, refreshExpired time.Duration) (newAToken, newRToken string, expiresIn int64, err error) {

	var refreshClaims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(rToken, &refreshClaims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil || !token.Valid {
		return "", "", 0, errors.New("invalid refresh token")
	}

	return GenToken(username, userId, companyId, authorities, []byte(secretKey), accessExpired, refreshExpired)
}
