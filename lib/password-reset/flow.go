package passwordreset

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"vms-console/lib/utils/countdown"
	authapimodels "vms-console/models/api/auth"
)

type Step int

const (
	StepRequestOtp Step = 1
	StepVerifyOtp  Step = 2
	StepDone       Step = 3
)

var (
	ErrFlowNotFound   = errors.New("Password reset session not found")
	ErrWrongStep      = errors.New("Action is not available at this step")
	ErrResendNotReady = errors.New("Please wait before requesting a new OTP")
)

// Flow шаги восстановления пароля. Переходы только вперед
type Flow struct {
	mu        sync.Mutex
	id        string
	email     string
	step      Step
	countdown *countdown.Countdown
	// touchedAt под блокировкой реестра потоков
	touchedAt time.Time
}

func (f *Flow) ID() string {
	return f.id
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// expect вызывается под f.mu до обращения к сервису
func (f *Flow) expect(step Step) error {
	if f.step != step {
		return ErrWrongStep
	}
	return nil
}

// advance вызывается под f.mu. Назад шаг не переводится
func (f *Flow) advance(to Step) {
	if to > f.step {
		f.step = to
	}
}

func (f *Flow) view() authapimodels.PasswordResetFlow {
	f.mu.Lock()
	defer f.mu.Unlock()
	remaining := f.countdown.Remaining()
	return authapimodels.PasswordResetFlow{
		FlowID:      f.id,
		Step:        int(f.step),
		Email:       f.email,
		CanResend:   f.step == StepVerifyOtp && remaining == 0,
		SecondsLeft: remaining,
		Countdown:   countdown.FormatTime(remaining),
	}
}
