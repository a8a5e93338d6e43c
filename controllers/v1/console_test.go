package apiv1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"vms-console/config"
	authhandler "vms-console/lib/auth"
	jobhandler "vms-console/lib/job"
	"vms-console/lib/session"
	authutils "vms-console/lib/utils/auth-utils"
	vendorhandler "vms-console/lib/vendor"
	"vms-console/lib/vmsclient"
	"vms-console/lib/vmsclient/vmstest"
	"vms-console/lib/workspace"
	"vms-console/models"
	vmsapimodels "vms-console/models/api/vms"
)

const testSecret = "test-secret"

// newConsoleApp консоль поверх фейкового сервиса вакансий: J1 назначена vendor1, J2 подтверждена
func newConsoleApp(t *testing.T) (*fiber.App, *vmstest.Server) {
	conf := &config.Configuration{}
	conf.Auth.JWTSecret = testSecret
	config.Conf = conf

	server := vmstest.New(t)
	vendor1 := vmsapimodels.Vendor{ID: "V1", Username: vmstest.VendorUsername, Email: "vendor1@vms.com"}
	acme := vmsapimodels.Vendor{ID: "V2", Username: "acme", Email: "sales@acme.com"}
	server.SetVendors(vendor1, acme)
	server.SetJobs(
		vmsapimodels.JobDescription{ID: "J1", Title: "Go Developer", Description: "backend", AssignedVendors: []vmsapimodels.Vendor{vendor1}},
		vmsapimodels.JobDescription{ID: "J2", Title: "QA Engineer", Description: "tests", Verified: true},
	)
	session.Instance = session.NewMemoryStore()
	workspace.Instance = workspace.NewProvider(workspace.Options{
		FetchLimit:     100,
		ConfirmTimeout: time.Second,
		Rollback:       true,
		NewClient: func(sess vmsclient.SessionContext) vmsclient.Provider {
			return server.Client(sess)
		},
	})
	authhandler.NewHandler(authhandler.Options{
		Store:      session.Instance,
		Workspaces: workspace.Instance,
		NewClient:  server.Client,
		Secret:     testSecret,
		TTL:        time.Hour,
	})
	jobhandler.NewHandler(5)
	vendorhandler.NewHandler(5)
	t.Cleanup(workspace.Instance.WaitAll)

	app := fiber.New()
	InitAuthApiRouters(app)
	InitJobsApiRouters(app)
	InitVendorsApiRouters(app)
	InitAssignmentApiRouters(app)
	InitPortalApiRouters(app)
	return app, server
}

func tokenFor(t *testing.T, role models.UserRole) string {
	sess := session.New(role, "user", "remote-token", time.Hour)
	require.NoError(t, session.Instance.Save(context.Background(), sess))
	token, err := authutils.GetToken(sess, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, out interface{}) int {
	return doBody(t, app, method, path, token, nil, out)
}

func doBody(t *testing.T, app *fiber.App, method, path, token string, body, out interface{}) int {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}
