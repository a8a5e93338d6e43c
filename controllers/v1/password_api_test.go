package apiv1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	passwordreset "vms-console/lib/password-reset"
	"vms-console/lib/vmsclient"
	"vms-console/lib/vmsclient/vmstest"
	apimodels "vms-console/models/api"
	authapimodels "vms-console/models/api/auth"
)

type flowResponse struct {
	apimodels.Response
	Data authapimodels.PasswordResetFlow `json:"data"`
}

func newPasswordApp(t *testing.T) *fiber.App {
	server := vmstest.New(t)
	passwordreset.NewHandler(passwordreset.Options{
		NewClient: func(sess vmsclient.SessionContext) vmsclient.Provider {
			return server.Client(sess)
		},
		CountdownSec: 600,
		Tick:         time.Hour,
	})
	app := fiber.New()
	InitPasswordApiRouters(app)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, flowResponse) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out flowResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestPasswordApi(t *testing.T) {
	t.Run("steps cannot be skipped", func(t *testing.T) {
		app := newPasswordApp(t)
		status, started := call(t, app, http.MethodPost, "/password", "")
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, int(passwordreset.StepRequestOtp), started.Data.Step)
		flowPath := "/password/" + started.Data.FlowID

		status, resp := call(t, app, http.MethodPost, flowPath+"/verify", `{"otp":"123456","newPassword":"Secret#1"}`)
		require.Equal(t, http.StatusConflict, status)
		require.Equal(t, "fail", resp.Status)

		status, resp = call(t, app, http.MethodPost, flowPath+"/send-otp", `{"email":"admin@example.com"}`)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, int(passwordreset.StepVerifyOtp), resp.Data.Step)
		require.False(t, resp.Data.CanResend)
		require.Equal(t, "10:00", resp.Data.Countdown)

		status, _ = call(t, app, http.MethodPost, flowPath+"/resend", "")
		require.Equal(t, http.StatusConflict, status)
	})

	t.Run("invalid email is reported per field", func(t *testing.T) {
		app := newPasswordApp(t)
		_, started := call(t, app, http.MethodPost, "/password", "")
		status, resp := call(t, app, http.MethodPost, "/password/"+started.Data.FlowID+"/send-otp", `{"email":"nope"}`)
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "Invalid email address", resp.Errors["email"])
	})

	t.Run("unknown flow", func(t *testing.T) {
		app := newPasswordApp(t)
		status, _ := call(t, app, http.MethodGet, "/password/missing", "")
		require.Equal(t, http.StatusNotFound, status)
	})

	t.Run("cancel removes the flow", func(t *testing.T) {
		app := newPasswordApp(t)
		_, started := call(t, app, http.MethodPost, "/password", "")
		status, _ := call(t, app, http.MethodDelete, "/password/"+started.Data.FlowID, "")
		require.Equal(t, http.StatusOK, status)
		require.False(t, passwordreset.Instance.Exists(started.Data.FlowID))
	})
}
