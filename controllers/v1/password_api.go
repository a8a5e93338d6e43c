package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"vms-console/controllers"
	passwordreset "vms-console/lib/password-reset"
	apimodels "vms-console/models/api"
	authapimodels "vms-console/models/api/auth"
)

type passwordApiController struct {
	controllers.BaseAPIController
}

func InitPasswordApiRouters(app fiber.Router) {
	controller := passwordApiController{}
	app.Route("password", func(router fiber.Router) {
		router.Post("", controller.start)
		router.Route(":flowId", func(flowRoute fiber.Router) {
			flowRoute.Get("", controller.get)
			flowRoute.Delete("", controller.cancel)
			flowRoute.Post("send-otp", controller.sendOtp)
			flowRoute.Post("resend", controller.resend)
			flowRoute.Post("verify", controller.verify)
		})
	})
}

// @Summary Начать восстановление пароля
// @Tags Восстановление пароля
// @Description Создает поток восстановления на шаге ввода почты
// @Success 200 {object} apimodels.Response{data=authapimodels.PasswordResetFlow}
// @router /api/v1/password [post]
func (c *passwordApiController) start(ctx *fiber.Ctx) error {
	return c.SendOK(ctx, passwordreset.Instance.Start())
}

// @Summary Состояние восстановления пароля
// @Tags Восстановление пароля
// @Description Шаг, отсчет до повторной отправки OTP
// @Param   flowId          		path    string  				    	true         "flow ID"
// @Success 200 {object} apimodels.Response{data=authapimodels.PasswordResetFlow}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/password/{flowId} [get]
func (c *passwordApiController) get(ctx *fiber.Ctx) error {
	resp, err := passwordreset.Instance.Get(ctx.Params("flowId"))
	if err != nil {
		return c.sendFlowError(ctx, err, "Error loading password reset")
	}
	return c.SendOK(ctx, resp)
}

// @Summary Отменить восстановление пароля
// @Tags Восстановление пароля
// @Description Останавливает отсчет и удаляет поток
// @Param   flowId          		path    string  				    	true         "flow ID"
// @Success 200 {object} apimodels.Response
// @router /api/v1/password/{flowId} [delete]
func (c *passwordApiController) cancel(ctx *fiber.Ctx) error {
	passwordreset.Instance.Cancel(ctx.Params("flowId"))
	return c.SendOK(ctx, nil)
}

// @Summary Отправить OTP
// @Tags Восстановление пароля
// @Description Шаг 1 -> 2
// @Param   flowId          		path    string  				    	true         "flow ID"
// @Param	body				body		authapimodels.SendOtpRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.PasswordResetFlow}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/password/{flowId}/send-otp [post]
func (c *passwordApiController) sendOtp(ctx *fiber.Ctx) error {
	var payload authapimodels.SendOtpRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	resp, err := passwordreset.Instance.RequestOtp(ctx.UserContext(), ctx.Params("flowId"), payload)
	if err != nil {
		return c.sendFlowError(ctx, err, "Error sending OTP")
	}
	return c.SendOK(ctx, resp)
}

// @Summary Повторно отправить OTP
// @Tags Восстановление пароля
// @Description Доступно, когда отсчет дошел до 0
// @Param   flowId          		path    string  				    	true         "flow ID"
// @Success 200 {object} apimodels.Response{data=authapimodels.PasswordResetFlow}
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/password/{flowId}/resend [post]
func (c *passwordApiController) resend(ctx *fiber.Ctx) error {
	resp, err := passwordreset.Instance.Resend(ctx.UserContext(), ctx.Params("flowId"))
	if err != nil {
		return c.sendFlowError(ctx, err, "Error sending OTP")
	}
	return c.SendOK(ctx, resp)
}

// @Summary Подтвердить OTP и задать пароль
// @Tags Восстановление пароля
// @Description Шаг 2 -> 3, после успеха переход на вход через 3 секунды
// @Param   flowId          		path    string  				    	true         "flow ID"
// @Param	body				body		authapimodels.VerifyOtpRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.PasswordResetFlow}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/password/{flowId}/verify [post]
func (c *passwordApiController) verify(ctx *fiber.Ctx) error {
	var payload authapimodels.VerifyOtpRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	resp, err := passwordreset.Instance.Verify(ctx.UserContext(), ctx.Params("flowId"), payload)
	if err != nil {
		return c.sendFlowError(ctx, err, "Error resetting password")
	}
	return c.SendOK(ctx, resp)
}

func (c *passwordApiController) sendFlowError(ctx *fiber.Ctx, err error, userMessage string) error {
	switch {
	case errors.Is(err, passwordreset.ErrFlowNotFound):
		return c.SendNotFound(ctx, err.Error())
	case errors.Is(err, passwordreset.ErrWrongStep), errors.Is(err, passwordreset.ErrResendNotReady):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	}
	return c.SendError(ctx, c.GetLogger(ctx), err, userMessage)
}
