package vmsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	apiauditstore "vms-console/lib/api-audit-store"
	"vms-console/lib/metrics"
	vmsapimodels "vms-console/models/api/vms"
	dbmodels "vms-console/models/db"
)

type Provider interface {
	ListJobs(ctx context.Context, page, limit int) ([]vmsapimodels.JobDescription, error)
	GetJob(ctx context.Context, id string) (*vmsapimodels.JobDescription, error)
	CreateJob(ctx context.Context, request vmsapimodels.JobCreateRequest) error
	UpdateJob(ctx context.Context, id string, request vmsapimodels.JobUpdateRequest) error
	DeleteJob(ctx context.Context, id string) error
	UpdateJobStatus(ctx context.Context, id string, verified bool) error
	AssignVendor(ctx context.Context, jobID, vendorID string) error
	UnassignVendor(ctx context.Context, jobID, vendorID string) error
	SendEmail(ctx context.Context, request vmsapimodels.SendEmailRequest) error

	ListVendors(ctx context.Context, page, limit int) (*vmsapimodels.VendorListResponse, error)
	GetVendor(ctx context.Context, id string) (*vmsapimodels.Vendor, error)
	UpdateVendorVerified(ctx context.Context, id string, verified bool) error
	CreateVendor(ctx context.Context, request vmsapimodels.VendorCreateRequest) error

	Login(ctx context.Context, request vmsapimodels.LoginRequest) (*vmsapimodels.LoginResponse, error)
	VendorLogin(ctx context.Context, request vmsapimodels.LoginRequest) (*vmsapimodels.VendorLoginResponse, error)
	SendOtp(ctx context.Context, email string) error
	VerifyOtp(ctx context.Context, request vmsapimodels.VerifyOtpRequest) error

	GetProfile(ctx context.Context) (*vmsapimodels.AdminProfile, error)
	UpdateProfile(ctx context.Context, request vmsapimodels.ProfileUpdateRequest) (*vmsapimodels.AdminProfile, error)
}

type Options struct {
	Host       string
	Timeout    time.Duration
	AuditStore apiauditstore.Provider
	HttpClient *http.Client
}

var defaultOptions = Options{
	Host:    "http://localhost:3000",
	Timeout: 15 * time.Second,
}

// Configure задает параметры для клиентов, создаваемых через New
func Configure(options Options) {
	defaultOptions = options
}

func New(session SessionContext) Provider {
	return NewWithOptions(defaultOptions, session)
}

func NewWithOptions(options Options, session SessionContext) Provider {
	if session == nil {
		session = Anonymous
	}
	client := options.HttpClient
	if client == nil {
		client = &http.Client{Timeout: options.Timeout}
	}
	return &impl{
		host:       strings.TrimRight(options.Host, "/"),
		client:     client,
		session:    session,
		auditStore: options.AuditStore,
	}
}

type impl struct {
	host       string
	client     *http.Client
	session    SessionContext
	auditStore apiauditstore.Provider
}

const (
	jobListPath        string = "/api/admin/job-descriptions?page=%v&limit=%v"
	jobDetailPath      string = "/api/admin/job-description/%v"
	jobUpdatePath      string = "/api/admin/update/%v"
	jobDeletePath      string = "/api/admin/delete/%v"
	jobStatusPath      string = "/api/admin/%v/update-status"
	assignPath         string = "/api/admin/assign-vendor"
	unassignPath       string = "/api/admin/unassign-vendor"
	sendEmailPath      string = "/api/admin/send-email"
	createPath         string = "/api/admin/create"
	vendorListPath     string = "/api/vendor/vendors?page=%v&limit=%v"
	vendorDetailPath   string = "/api/vendor/%v"
	vendorVerifiedPath string = "/api/vendor/%v/update-verified"
	loginPath          string = "/api/admin/login"
	vendorLoginPath    string = "/api/vendor/login"
	sendOtpPath        string = "/api/admin/send-otp"
	verifyOtpPath      string = "/api/admin/verify-otp"
	profilePath        string = "/api/admin/profile"
)

type call struct {
	operation   string
	method      string
	uri         string
	body        []byte
	contentType string
}

func (i impl) newCall(operation, method, path string, request interface{}) (call, error) {
	c := call{
		operation: operation,
		method:    method,
		uri:       i.host + path,
	}
	if request != nil {
		body, err := json.Marshal(request)
		if err != nil {
			return c, errors.Wrap(err, "ошибка сериализации запроса")
		}
		c.body = body
		c.contentType = "application/json"
	}
	return c, nil
}

func (i impl) do(ctx context.Context, operation, method, path string, request, resp interface{}) error {
	c, err := i.newCall(operation, method, path, request)
	if err != nil {
		return err
	}
	return i.sendRequest(ctx, c, resp)
}

func (i impl) sendRequest(ctx context.Context, c call, resp interface{}) error {
	started := time.Now()
	logger := log.
		WithField("external_request", c.uri).
		WithField("method", c.method).
		WithField("operation", c.operation)
	if c.body != nil && c.contentType == "application/json" {
		logger = logger.WithField("request_body", string(c.body))
	}
	var reader io.Reader
	if c.body != nil {
		reader = bytes.NewReader(c.body)
	}
	r, err := http.NewRequestWithContext(ctx, c.method, c.uri, reader)
	if err != nil {
		return errors.Wrap(err, "ошибка формирования запроса")
	}
	if c.contentType != "" {
		r.Header.Add("Content-Type", c.contentType)
	}
	r.Header.Add("Accept", "application/json")
	if token := i.session.AccessToken(); token != "" {
		r.Header.Add("Authorization", fmt.Sprintf("Bearer %v", token))
	}
	response, err := i.client.Do(r)
	if err != nil {
		metrics.ObserveRemote(c.operation, metrics.ResultNetworkError, started)
		logger.WithError(err).Error("ошибка отправки запроса в сервис вакансий")
		i.auditError(c, "", 0, err)
		return &NetworkFailure{Operation: c.operation, Err: err}
	}
	defer response.Body.Close()
	// читаем Body только 1 раз
	responseBody, logger := getResponseBody(logger, response)
	logger = logger.WithField("response_status_code", response.StatusCode)
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		if resp != nil && len(bytes.TrimSpace(responseBody)) != 0 {
			err = json.Unmarshal(responseBody, resp)
			if err != nil {
				metrics.ObserveRemote(c.operation, metrics.ResultDecodeError, started)
				logger.WithError(err).Error("ошибка десериализации ответа")
				return errors.Wrap(err, "ошибка десериализации ответа")
			}
		}
		metrics.ObserveRemote(c.operation, metrics.ResultOK, started)
		return nil
	}
	metrics.ObserveRemote(c.operation, metrics.ResultHttpError, started)
	logger.Error("Некорректный запрос в сервис вакансий")
	httpErr := &HttpError{
		Operation: c.operation,
		Status:    response.StatusCode,
		Body:      string(responseBody),
	}
	errorResp := vmsapimodels.ErrorData{}
	if len(responseBody) != 0 && json.Unmarshal(responseBody, &errorResp) == nil {
		httpErr.Message = errorResp.Text()
	}
	i.auditError(c, httpErr.Body, httpErr.Status, httpErr)
	return httpErr
}

func getResponseBody(logger *log.Entry, response *http.Response) ([]byte, *log.Entry) {
	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		logger.WithError(err).Warn("ошибка чтения ответа")
	}
	return responseBody, logger.WithField("response_body", string(responseBody))
}

func (i impl) auditError(c call, response string, status int, callErr error) {
	if i.auditStore == nil {
		return
	}
	rec := dbmodels.ApiAudit{
		SessionID: i.session.SessionID(),
		Operation: c.operation,
		Method:    c.method,
		Uri:       c.uri,
		Response:  response,
		Status:    status,
		Error:     callErr.Error(),
	}
	if c.contentType == "application/json" {
		rec.Request = string(c.body)
	}
	_, err := i.auditStore.Create(rec)
	if err != nil {
		log.WithError(err).Warn("ошибка сохранения аудита запроса")
	}
}
