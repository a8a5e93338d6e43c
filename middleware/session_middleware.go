package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"vms-console/lib/session"
	authutils "vms-console/lib/utils/auth-utils"
	"vms-console/models"
	apimodels "vms-console/models/api"
)

const sessionLocal = "session"

// SessionRequired загружает сессию по sub токена консоли
func SessionRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sessionID := GetSessionID(ctx)
		if sessionID == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("Session expired, please sign in again"))
		}
		sess, err := session.Instance.Get(ctx.UserContext(), sessionID)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				log.WithError(err).WithField("session_id", sessionID).Error("ошибка загрузки сессии")
			}
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("Session expired, please sign in again"))
		}
		ctx.Locals(sessionLocal, sess)
		return ctx.Next()
	}
}

func AdminRequired() fiber.Handler {
	return roleRequired(models.AdminRole)
}

func VendorRequired() fiber.Handler {
	return roleRequired(models.VendorRole)
}

func roleRequired(role models.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sess := GetSession(ctx)
		if sess == nil || sess.Role != role {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}

func GetSessionID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}

func GetSession(ctx *fiber.Ctx) *session.Session {
	sess, _ := ctx.Locals(sessionLocal).(*session.Session)
	return sess
}
