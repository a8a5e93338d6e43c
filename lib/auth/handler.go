package authhandler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"vms-console/lib/session"
	authutils "vms-console/lib/utils/auth-utils"
	"vms-console/lib/vmsclient"
	"vms-console/lib/workspace"
	"vms-console/models"
	authapimodels "vms-console/models/api/auth"
	vmsapimodels "vms-console/models/api/vms"
)

const (
	AdminLanding  = "/dashboard/profile"
	VendorLanding = "/vendor/dashboard"
	LandingDelay  = time.Second
)

// ErrLoginFailed причина отказа не раскрывается пользователю
var ErrLoginFailed = errors.New("Error logging in")

type Provider interface {
	Login(ctx context.Context, request authapimodels.LoginRequest) (authapimodels.JWTResponse, error)
	VendorLogin(ctx context.Context, request authapimodels.LoginRequest) (authapimodels.JWTResponse, error)
	Logout(ctx context.Context, sessionID string) error
}

var Instance Provider

// Forgetter освобождает ресурсы сессии вне хранилища (например, очередь уведомлений)
type Forgetter interface {
	Forget(sessionID string)
}

type Options struct {
	Store      session.Store
	Workspaces workspace.Provider
	Hub        Forgetter
	NewClient  func(sess vmsclient.SessionContext) vmsclient.Provider
	Secret     string
	TTL        time.Duration
}

func NewHandler(options Options) {
	Instance = NewProvider(options)
}

func NewProvider(options Options) Provider {
	if options.NewClient == nil {
		options.NewClient = vmsclient.New
	}
	if options.TTL <= 0 {
		options.TTL = 24 * time.Hour
	}
	return impl{
		options: options,
	}
}

type impl struct {
	options Options
}

func (i impl) Login(ctx context.Context, request authapimodels.LoginRequest) (authapimodels.JWTResponse, error) {
	if err := request.Validate(); err != nil {
		return authapimodels.JWTResponse{}, err
	}
	logger := log.WithField("username", request.Username)
	resp, err := i.options.NewClient(vmsclient.Anonymous).Login(ctx, remoteLogin(request))
	if err != nil {
		logger.WithError(err).Warn("ошибка входа администратора")
		return authapimodels.JWTResponse{}, ErrLoginFailed
	}
	sess := session.New(models.AdminRole, request.Username, resp.Token, i.options.TTL)
	return i.start(ctx, logger, sess, AdminLanding)
}

func (i impl) VendorLogin(ctx context.Context, request authapimodels.LoginRequest) (authapimodels.JWTResponse, error) {
	if err := request.Validate(); err != nil {
		return authapimodels.JWTResponse{}, err
	}
	logger := log.WithField("username", request.Username)
	resp, err := i.options.NewClient(vmsclient.Anonymous).VendorLogin(ctx, remoteLogin(request))
	if err != nil {
		logger.WithError(err).Warn("ошибка входа вендора")
		return authapimodels.JWTResponse{}, ErrLoginFailed
	}
	sess := session.New(models.VendorRole, request.Username, resp.Token, i.options.TTL)
	sess.VendorID = resp.VendorID
	return i.start(ctx, logger, sess, VendorLanding)
}

func (i impl) start(ctx context.Context, logger *log.Entry, sess *session.Session, landing string) (authapimodels.JWTResponse, error) {
	if err := i.options.Store.Save(ctx, sess); err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "ошибка сохранения сессии")
	}
	token, err := authutils.GetToken(sess, i.options.Secret, i.options.TTL)
	if err != nil {
		i.options.Store.Delete(ctx, sess.ID)
		return authapimodels.JWTResponse{}, errors.Wrap(err, "ошибка выпуска токена консоли")
	}
	logger.
		WithField("session_id", sess.ID).
		WithField("role", sess.Role).
		Info("вход выполнен")
	return authapimodels.JWTResponse{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		Role:      sess.Role,
		Username:  sess.Username,
		Redirect:  authapimodels.NewRedirect(landing, LandingDelay),
	}, nil
}

func (i impl) Logout(ctx context.Context, sessionID string) error {
	if err := i.options.Store.Delete(ctx, sessionID); err != nil {
		return errors.Wrap(err, "ошибка удаления сессии")
	}
	if i.options.Workspaces != nil {
		i.options.Workspaces.Drop(sessionID)
	}
	if i.options.Hub != nil {
		i.options.Hub.Forget(sessionID)
	}
	log.WithField("session_id", sessionID).Info("выход выполнен")
	return nil
}

func remoteLogin(request authapimodels.LoginRequest) vmsapimodels.LoginRequest {
	return vmsapimodels.LoginRequest{
		Username:       request.Username,
		Password:       request.Password,
		RecaptchaToken: request.RecaptchaToken,
	}
}
