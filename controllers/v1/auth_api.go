package apiv1

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"vms-console/controllers"
	authhandler "vms-console/lib/auth"
	"vms-console/middleware"
	apimodels "vms-console/models/api"
	authapimodels "vms-console/models/api/auth"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app fiber.Router) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		router.Post("login", controller.login)
		router.Post("vendor-login", controller.vendorLogin)
		router.Use(middleware.AuthorizationRequired(), middleware.SessionRequired())
		router.Post("logout", controller.logout)
		router.Get("me", controller.me)
	})
}

// @Summary Вход администратора
// @Tags Аутентификация
// @Description Вход администратора. Токен сервиса вакансий остается в сессии консоли
// @Param	body				body		authapimodels.LoginRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.JWTResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/login [post]
func (c *authApiController) login(ctx *fiber.Ctx) error {
	var payload authapimodels.LoginRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	resp, err := authhandler.Instance.Login(ctx.UserContext(), payload)
	if err != nil {
		return c.sendLoginError(ctx, err)
	}
	return c.SendOK(ctx, resp)
}

// @Summary Вход вендора
// @Tags Аутентификация
// @Description Вход вендора в кабинет
// @Param	body				body		authapimodels.LoginRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.JWTResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/vendor-login [post]
func (c *authApiController) vendorLogin(ctx *fiber.Ctx) error {
	var payload authapimodels.LoginRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	resp, err := authhandler.Instance.VendorLogin(ctx.UserContext(), payload)
	if err != nil {
		return c.sendLoginError(ctx, err)
	}
	return c.SendOK(ctx, resp)
}

func (c *authApiController) sendLoginError(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, authhandler.ErrLoginFailed) {
		return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError(authhandler.ErrLoginFailed.Error()))
	}
	return c.SendError(ctx, c.GetLogger(ctx), err, "Error logging in")
}

// @Summary Выход
// @Tags Аутентификация
// @Description Удаляет сессию консоли
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/logout [post]
func (c *authApiController) logout(ctx *fiber.Ctx) error {
	sess := c.GetSession(ctx)
	if err := authhandler.Instance.Logout(ctx.UserContext(), sess.ID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error logging out")
	}
	return c.SendOK(ctx, nil)
}

type meView struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	VendorID  string    `json:"vendor_id,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// @Summary Текущая сессия
// @Tags Аутентификация
// @Description Пользователь текущей сессии
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=meView}
// @Failure 401 {object} apimodels.Response
// @router /api/v1/auth/me [get]
func (c *authApiController) me(ctx *fiber.Ctx) error {
	sess := c.GetSession(ctx)
	return c.SendOK(ctx, meView{
		Username:  sess.Username,
		Role:      string(sess.Role),
		VendorID:  sess.VendorID,
		ExpiresAt: sess.ExpiresAt,
	})
}
