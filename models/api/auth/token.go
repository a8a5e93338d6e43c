package authapimodels

import (
	"time"

	"vms-console/models"
)

type JWTResponse struct {
	Token     string          `json:"token"`      // токен консоли
	ExpiresAt time.Time       `json:"expires_at"` // срок сессии
	Role      models.UserRole `json:"role"`
	Username  string          `json:"username"`
	Redirect  Redirect        `json:"redirect"` // куда перейти после входа
}

// Redirect подсказка навигации для клиента
type Redirect struct {
	Path    string `json:"path"`
	DelayMs int64  `json:"delay_ms"`
}

func NewRedirect(path string, delay time.Duration) Redirect {
	return Redirect{
		Path:    path,
		DelayMs: delay.Milliseconds(),
	}
}

type PasswordResetFlow struct {
	FlowID      string    `json:"flow_id"`
	Step        int       `json:"step"`
	Email       string    `json:"email,omitempty"`
	CanResend   bool      `json:"can_resend"`
	SecondsLeft int       `json:"seconds_left"`
	Countdown   string    `json:"countdown"` // m:ss
	Redirect    *Redirect `json:"redirect,omitempty"`
}
