package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"vms-console/controllers"
	jobhandler "vms-console/lib/job"
	"vms-console/lib/table"
	"vms-console/middleware"
	apimodels "vms-console/models/api"
	jobapimodels "vms-console/models/api/job"
)

type jobsApiController struct {
	controllers.BaseAPIController
}

func InitJobsApiRouters(app fiber.Router) {
	controller := jobsApiController{}
	app.Route("jobs", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.SessionRequired(), middleware.AdminRequired())
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Put("verified", controller.toggleVerified)
		})
	})
}

// @Summary Список вакансий
// @Tags Вакансии
// @Description Поиск по названию и пагинация на стороне консоли
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   search		query		string	false	"подстрока названия"
// @Param   refresh		query		bool	false	"перезагрузить список"
// @Param   page		query		int	false	"страница"
// @Param   limit		query		int	false	"записей на странице"
// @Success 200 {object} apimodels.ScrollerResponse{data=jobapimodels.JobPage}
// @Failure 401 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/jobs [get]
func (c *jobsApiController) list(ctx *fiber.Ctx) error {
	var filter jobapimodels.JobFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return c.SendBadRequest(ctx, "некорректные параметры запроса")
	}
	page, err := jobhandler.Instance.List(ctx.UserContext(), c.GetWorkspace(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error fetching job descriptions")
	}
	rendered, err := table.Render(table.JobColumns, page.Items)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error fetching job descriptions")
	}
	data := jobapimodels.JobPage{
		Items: jobapimodels.ConvertList(page.Items),
		Table: rendered,
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(data, int64(page.Total), page.Page, page.PageCount))
}

// @Summary Вакансия
// @Tags Вакансии
// @Description Вакансия с назначенными вендорами
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 404 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/jobs/{id} [get]
func (c *jobsApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	job, err := jobhandler.Instance.Get(ctx.UserContext(), c.GetWorkspace(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error fetching job description")
	}
	return c.SendOK(ctx, jobapimodels.Convert(job))
}

// @Summary Создание вакансии
// @Tags Вакансии
// @Description Создание, после него список перезагружается
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.JobData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/jobs [post]
func (c *jobsApiController) create(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := jobhandler.Instance.Create(ctx.UserContext(), c.GetWorkspace(ctx), payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error creating job description")
	}
	return c.SendOK(ctx, nil)
}

// @Summary Изменение вакансии
// @Tags Вакансии
// @Description Изменение названия, описания и статуса. Назначенные вендоры сохраняются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "job ID"
// @Param	body body	 jobapimodels.JobUpdate	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/jobs/{id} [put]
func (c *jobsApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	var payload jobapimodels.JobUpdate
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err = jobhandler.Instance.Update(ctx.UserContext(), c.GetWorkspace(ctx), id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error updating job description")
	}
	return c.SendOK(ctx, nil)
}

// @Summary Удаление вакансии
// @Tags Вакансии
// @Description Удаление, после него список перезагружается
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/jobs/{id} [delete]
func (c *jobsApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err = jobhandler.Instance.Delete(ctx.UserContext(), c.GetWorkspace(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error deleting job description")
	}
	return c.SendOK(ctx, nil)
}

// @Summary Переключить статус вакансии
// @Tags Вакансии
// @Description Значение меняется сразу, подтверждение уходит в фоне. Ошибка подтверждения приходит тостом
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 404 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/jobs/{id}/verified [put]
func (c *jobsApiController) toggleVerified(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	job, err := jobhandler.Instance.ToggleVerified(ctx.UserContext(), c.GetWorkspace(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error updating job status")
	}
	return c.SendOK(ctx, jobapimodels.Convert(job))
}
