package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"vms-console/controllers"
	exporthandler "vms-console/lib/export"
	"vms-console/middleware"
)

type exportApiController struct {
	controllers.BaseAPIController
}

type exportQuery struct {
	Format string `query:"format"`
	Search string `query:"search"`
}

func InitExportApiRouters(app fiber.Router) {
	controller := exportApiController{}
	app.Route("export", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.SessionRequired(), middleware.AdminRequired())
		router.Get("jobs", controller.jobs)
		router.Get("vendors", controller.vendors)
	})
}

// @Summary Выгрузка вакансий
// @Tags Выгрузка
// @Description Выгружает отфильтрованный список целиком. Если включено хранилище, возвращается ссылка
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   format		query		string	true	"xlsx | pdf"
// @Param   search		query		string	false	"подстрока названия"
// @Success 200 {object} apimodels.Response{data=exporthandler.File}
// @Failure 400 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/export/jobs [get]
func (c *exportApiController) jobs(ctx *fiber.Ctx) error {
	var query exportQuery
	if err := ctx.QueryParser(&query); err != nil {
		return c.SendBadRequest(ctx, "некорректные параметры запроса")
	}
	file, err := exporthandler.Instance.Jobs(ctx.UserContext(), c.GetWorkspace(ctx), exporthandler.Format(query.Format), query.Search)
	return c.send(ctx, file, err)
}

// @Summary Выгрузка вендоров
// @Tags Выгрузка
// @Description Выгружает отфильтрованный список целиком. Если включено хранилище, возвращается ссылка
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   format		query		string	true	"xlsx | pdf"
// @Param   search		query		string	false	"подстрока имени или почты"
// @Success 200 {object} apimodels.Response{data=exporthandler.File}
// @Failure 400 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/export/vendors [get]
func (c *exportApiController) vendors(ctx *fiber.Ctx) error {
	var query exportQuery
	if err := ctx.QueryParser(&query); err != nil {
		return c.SendBadRequest(ctx, "некорректные параметры запроса")
	}
	file, err := exporthandler.Instance.Vendors(ctx.UserContext(), c.GetWorkspace(ctx), exporthandler.Format(query.Format), query.Search)
	return c.send(ctx, file, err)
}

func (c *exportApiController) send(ctx *fiber.Ctx, file exporthandler.File, err error) error {
	if err != nil {
		if errors.Is(err, exporthandler.ErrUnknownFormat) {
			return c.SendBadRequest(ctx, err.Error())
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error exporting data")
	}
	if file.Link != "" {
		return c.SendOK(ctx, file)
	}
	ctx.Set(fiber.HeaderContentType, file.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name))
	return ctx.Status(fiber.StatusOK).Send(file.Data)
}
