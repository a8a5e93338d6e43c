package apiv1

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"vms-console/controllers"
	profilehandler "vms-console/lib/profile"
	"vms-console/middleware"
	profileapimodels "vms-console/models/api/profile"
)

type profileApiController struct {
	controllers.BaseAPIController
}

func InitProfileApiRouters(app fiber.Router) {
	controller := profileApiController{}
	app.Route("profile", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.SessionRequired(), middleware.AdminRequired())
		router.Get("", controller.get)
		router.Put("", controller.update)
	})
}

// @Summary Профиль администратора
// @Tags Профиль
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=profileapimodels.ProfileView}
// @Failure 401 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/profile [get]
func (c *profileApiController) get(ctx *fiber.Ctx) error {
	profile, err := profilehandler.Instance.Get(ctx.UserContext(), c.GetWorkspace(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error fetching profile")
	}
	return c.SendOK(ctx, profile)
}

// @Summary Изменение профиля
// @Tags Профиль
// @Description multipart форма, изображение необязательно
// @Accept  multipart/form-data
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   username		formData		string	true	"имя (только латиница)"
// @Param   email		formData		string	true	"почта"
// @Param   mobile		formData		string	true	"телефон, 10 цифр"
// @Param   location		formData		string	true	"город"
// @Param   image		formData		file	false	"изображение jpeg/png/gif"
// @Success 200 {object} apimodels.Response{data=profileapimodels.ProfileView}
// @Failure 400 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/profile [put]
func (c *profileApiController) update(ctx *fiber.Ctx) error {
	var payload profileapimodels.ProfileUpdate
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	image, err := c.formImage(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	profile, err := profilehandler.Instance.Update(ctx.UserContext(), c.GetWorkspace(ctx), payload, image)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error updating profile")
	}
	return c.SendOK(ctx, profile)
}

func (c *profileApiController) formImage(ctx *fiber.Ctx) (*profilehandler.Image, error) {
	header, err := ctx.FormFile("image")
	if err != nil {
		// изображение не передано
		return nil, nil
	}
	file, err := header.Open()
	if err != nil {
		c.GetLogger(ctx).WithError(err).Error("ошибка чтения изображения профиля")
		return nil, errors.New("не удалось прочитать изображение")
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.GetLogger(ctx).WithError(err).Error("ошибка чтения изображения профиля")
		return nil, errors.New("не удалось прочитать изображение")
	}
	return &profilehandler.Image{Name: header.Filename, Data: data}, nil
}
