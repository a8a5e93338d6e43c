package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"vms-console/controllers"
	"vms-console/lib/table"
	vendorhandler "vms-console/lib/vendor"
	"vms-console/middleware"
	vendorapimodels "vms-console/models/api/vendor"
)

type portalApiController struct {
	controllers.BaseAPIController
}

func InitPortalApiRouters(app fiber.Router) {
	controller := portalApiController{}
	app.Route("portal", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.SessionRequired(), middleware.VendorRequired())
		router.Get("jobs", controller.jobs)
	})
}

// @Summary Вакансии вендора
// @Tags Кабинет вендора
// @Description Вакансии, назначенные вошедшему вендору, с фильтром по названию
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   search		query		string	false	"подстрока названия"
// @Success 200 {object} apimodels.Response{data=vendorapimodels.AssignedJobsView}
// @Failure 403 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/portal/jobs [get]
func (c *portalApiController) jobs(ctx *fiber.Ctx) error {
	sess := c.GetSession(ctx)
	jobs, err := vendorhandler.Instance.AssignedJobs(ctx.UserContext(), c.GetWorkspace(ctx), sess.VendorID, ctx.Query("search"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error fetching assigned jobs")
	}
	rendered, err := table.Render(table.AssignedJobColumns, jobs)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error fetching assigned jobs")
	}
	return c.SendOK(ctx, vendorapimodels.AssignedJobsView{Items: jobs, Table: rendered})
}
