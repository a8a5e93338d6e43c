package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"vms-console/models"
)

// Session контекст вошедшего пользователя. Заменяет хранение токена в браузере:
// создается при входе, удаляется при выходе или по истечении срока
type Session struct {
	ID        string          `json:"id"`
	Role      models.UserRole `json:"role"`
	Username  string          `json:"username"`
	VendorID  string          `json:"vendor_id,omitempty"`
	Token     string          `json:"token"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

func New(role models.UserRole, username, token string, defaultTTL time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		Role:      role,
		Username:  username,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: TokenExpiry(token, now.Add(defaultTTL)),
	}
}

func (s *Session) SessionID() string {
	return s.ID
}

func (s *Session) AccessToken() string {
	return s.Token
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// TokenExpiry срок из claim exp токена сервиса вакансий. Подпись не проверяется,
// токен для консоли непрозрачный. Если exp нет, возвращается fallback
func TokenExpiry(token string, fallback time.Time) time.Time {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return fallback
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	if exp.Time.Before(fallback) {
		return exp.Time
	}
	return fallback
}
