package passwordreset

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"vms-console/lib/utils/countdown"
	"vms-console/lib/vmsclient"
	"vms-console/models"
	authapimodels "vms-console/models/api/auth"
	vmsapimodels "vms-console/models/api/vms"
	wsmodels "vms-console/models/ws"
)

const (
	SignInPath    = "/auth/sign-in"
	SignInDelay   = 3 * time.Second
	NotifyPrefix  = "reset:"
	defaultOtpSec = 600
)

type Provider interface {
	Start() authapimodels.PasswordResetFlow
	Get(flowID string) (authapimodels.PasswordResetFlow, error)
	// RequestOtp шаг 1 -> 2, запускает отсчет до повторной отправки
	RequestOtp(ctx context.Context, flowID string, request authapimodels.SendOtpRequest) (authapimodels.PasswordResetFlow, error)
	// Resend повторная отправка, только когда отсчет дошел до 0
	Resend(ctx context.Context, flowID string) (authapimodels.PasswordResetFlow, error)
	// Verify шаг 2 -> 3
	Verify(ctx context.Context, flowID string, request authapimodels.VerifyOtpRequest) (authapimodels.PasswordResetFlow, error)
	Cancel(flowID string)
	Exists(flowID string) bool
	// SweepAbandoned отменяет потоки без обращений дольше ttl
	SweepAbandoned(now time.Time, ttl time.Duration) []string
}

var Instance Provider

type Options struct {
	NewClient    func(sess vmsclient.SessionContext) vmsclient.Provider
	CountdownSec int
	Tick         time.Duration
	// Notifier канал тостов потока, ключ NotifyPrefix + flowID
	Notifier func(key string) wsmodels.Notify
}

func NewHandler(options Options) {
	Instance = NewProvider(options)
}

func NewProvider(options Options) Provider {
	if options.NewClient == nil {
		options.NewClient = vmsclient.New
	}
	if options.CountdownSec <= 0 {
		options.CountdownSec = defaultOtpSec
	}
	if options.Tick <= 0 {
		options.Tick = time.Second
	}
	return &impl{
		options: options,
		flows:   map[string]*Flow{},
	}
}

type impl struct {
	mu      sync.Mutex
	options Options
	flows   map[string]*Flow
}

func (i *impl) notifier(flowID string) wsmodels.Notify {
	if i.options.Notifier == nil {
		return wsmodels.NopNotify
	}
	return i.options.Notifier(NotifyPrefix + flowID)
}

func (i *impl) Start() authapimodels.PasswordResetFlow {
	id := uuid.New().String()
	notify := i.notifier(id)
	flow := &Flow{
		id:        id,
		step:      StepRequestOtp,
		touchedAt: time.Now(),
	}
	flow.countdown = countdown.New(i.options.CountdownSec, i.options.Tick, func() {
		notify(models.ToastCodeOtpResendReady, "You can request a new OTP now")
	})
	i.mu.Lock()
	i.flows[id] = flow
	i.mu.Unlock()
	return flow.view()
}

func (i *impl) flow(flowID string) (*Flow, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	flow, ok := i.flows[flowID]
	if !ok {
		return nil, ErrFlowNotFound
	}
	flow.touchedAt = time.Now()
	return flow, nil
}

func (i *impl) Get(flowID string) (authapimodels.PasswordResetFlow, error) {
	flow, err := i.flow(flowID)
	if err != nil {
		return authapimodels.PasswordResetFlow{}, err
	}
	return flow.view(), nil
}

func (i *impl) Exists(flowID string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	_, ok := i.flows[flowID]
	return ok
}

func (i *impl) RequestOtp(ctx context.Context, flowID string, request authapimodels.SendOtpRequest) (authapimodels.PasswordResetFlow, error) {
	flow, err := i.flow(flowID)
	if err != nil {
		return authapimodels.PasswordResetFlow{}, err
	}
	if err = request.Validate(); err != nil {
		return authapimodels.PasswordResetFlow{}, err
	}
	flow.mu.Lock()
	if err = flow.expect(StepRequestOtp); err != nil {
		flow.mu.Unlock()
		return authapimodels.PasswordResetFlow{}, err
	}
	err = i.sendOtp(ctx, flowID, request.Email)
	if err == nil {
		flow.email = request.Email
		flow.advance(StepVerifyOtp)
		flow.countdown.Start()
	}
	flow.mu.Unlock()
	if err != nil {
		return authapimodels.PasswordResetFlow{}, err
	}
	return flow.view(), nil
}

func (i *impl) Resend(ctx context.Context, flowID string) (authapimodels.PasswordResetFlow, error) {
	flow, err := i.flow(flowID)
	if err != nil {
		return authapimodels.PasswordResetFlow{}, err
	}
	flow.mu.Lock()
	if err = flow.expect(StepVerifyOtp); err != nil {
		flow.mu.Unlock()
		return authapimodels.PasswordResetFlow{}, err
	}
	if !flow.countdown.CanResend() {
		flow.mu.Unlock()
		return authapimodels.PasswordResetFlow{}, ErrResendNotReady
	}
	err = i.sendOtp(ctx, flowID, flow.email)
	if err == nil {
		flow.countdown.Start()
	}
	flow.mu.Unlock()
	if err != nil {
		return authapimodels.PasswordResetFlow{}, err
	}
	return flow.view(), nil
}

// sendOtp вызывается под flow.mu. Ошибка оставляет шаг и поднимает тост
func (i *impl) sendOtp(ctx context.Context, flowID, email string) error {
	err := i.options.NewClient(vmsclient.Anonymous).SendOtp(ctx, email)
	if err != nil {
		log.
			WithField("flow_id", flowID).
			WithError(err).
			Warn("ошибка отправки OTP")
		i.notifier(flowID)(models.ToastCodeRemoteFailed, vmsclient.UserMessage(err, "Error sending OTP"))
		return errors.Wrap(err, "ошибка отправки OTP")
	}
	return nil
}

func (i *impl) Verify(ctx context.Context, flowID string, request authapimodels.VerifyOtpRequest) (authapimodels.PasswordResetFlow, error) {
	flow, err := i.flow(flowID)
	if err != nil {
		return authapimodels.PasswordResetFlow{}, err
	}
	if err = request.Validate(); err != nil {
		return authapimodels.PasswordResetFlow{}, err
	}
	flow.mu.Lock()
	if err = flow.expect(StepVerifyOtp); err != nil {
		flow.mu.Unlock()
		return authapimodels.PasswordResetFlow{}, err
	}
	err = i.options.NewClient(vmsclient.Anonymous).VerifyOtp(ctx, vmsapimodels.VerifyOtpRequest{
		Email:       flow.email,
		Otp:         request.Otp,
		NewPassword: request.NewPassword,
	})
	if err == nil {
		flow.advance(StepDone)
		flow.countdown.Cancel()
	}
	flow.mu.Unlock()
	if err != nil {
		log.
			WithField("flow_id", flowID).
			WithError(err).
			Warn("ошибка подтверждения OTP")
		i.notifier(flowID)(models.ToastCodeRemoteFailed, vmsclient.UserMessage(err, "Error resetting password"))
		return authapimodels.PasswordResetFlow{}, errors.Wrap(err, "ошибка подтверждения OTP")
	}
	i.notifier(flowID)(models.ToastCodeOperationDone, "Password reset successfully")
	view := flow.view()
	redirect := authapimodels.NewRedirect(SignInPath, SignInDelay)
	view.Redirect = &redirect
	return view, nil
}

func (i *impl) Cancel(flowID string) {
	i.mu.Lock()
	flow, ok := i.flows[flowID]
	delete(i.flows, flowID)
	i.mu.Unlock()
	if ok {
		flow.countdown.Cancel()
	}
}

func (i *impl) SweepAbandoned(now time.Time, ttl time.Duration) []string {
	i.mu.Lock()
	abandoned := []*Flow{}
	for id, flow := range i.flows {
		if now.Sub(flow.touchedAt) > ttl {
			delete(i.flows, id)
			abandoned = append(abandoned, flow)
		}
	}
	i.mu.Unlock()
	ids := make([]string, 0, len(abandoned))
	for _, flow := range abandoned {
		flow.countdown.Cancel()
		ids = append(ids, flow.id)
	}
	return ids
}
