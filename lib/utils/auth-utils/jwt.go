package authutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"vms-console/lib/session"
)

// GetToken токен консоли для сессии. sub = идентификатор сессии,
// токен сервиса вакансий наружу не отдается
func GetToken(sess *session.Session, secret string, maxTTL time.Duration) (tokenString string, err error) {
	now := time.Now()
	exp := now.Add(maxTTL)
	if !sess.ExpiresAt.IsZero() && sess.ExpiresAt.Before(exp) {
		exp = sess.ExpiresAt
	}
	claims := jwt.MapClaims{
		"name": sess.Username,
		"sub":  sess.ID,
		"role": string(sess.Role),
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	if sess.VendorID != "" {
		claims["vendor"] = sess.VendorID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}
