package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"vms-console/controllers"
	"vms-console/lib/assignment"
	"vms-console/middleware"
	assignmentapimodels "vms-console/models/api/assignment"
)

type assignmentApiController struct {
	controllers.BaseAPIController
}

func InitAssignmentApiRouters(app fiber.Router) {
	controller := assignmentApiController{}
	app.Route("assignment", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.SessionRequired(), middleware.AdminRequired())
		router.Route(":jobId", func(jobRoute fiber.Router) {
			jobRoute.Post("open", controller.open)
			jobRoute.Get("", controller.get)
			jobRoute.Delete("", controller.close)
			jobRoute.Put("assign/:vendorId", controller.assign)
			jobRoute.Put("unassign/:vendorId", controller.unassign)
			jobRoute.Post("send-email/:vendorId", controller.sendEmail)
		})
	})
}

func (c *assignmentApiController) jobID(ctx *fiber.Ctx) string {
	return ctx.Params("jobId")
}

func (c *assignmentApiController) session(ctx *fiber.Ctx) (*assignment.Session, bool) {
	return c.GetWorkspace(ctx).FindAssignment(c.jobID(ctx))
}

// @Summary Открыть назначение
// @Tags Назначение вендоров
// @Description Загружает вакансию и всех вендоров и делит их на назначенных и остальных
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   jobId          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response{data=assignmentapimodels.AssignmentView}
// @Failure 409 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/assignment/{jobId}/open [post]
func (c *assignmentApiController) open(ctx *fiber.Ctx) error {
	ws := c.GetWorkspace(ctx)
	sess := ws.Assignment(c.jobID(ctx))
	snapshot, err := sess.Open(ctx.UserContext(), c.jobID(ctx))
	if err != nil {
		// закрытая после ошибки сессия не должна считаться открытой
		if !errors.Is(err, assignment.ErrSuperseded) {
			ws.CloseAssignment(c.jobID(ctx))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error fetching job or vendors")
	}
	return c.SendOK(ctx, assignmentapimodels.Convert(snapshot))
}

// @Summary Текущее назначение
// @Tags Назначение вендоров
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   jobId          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response{data=assignmentapimodels.AssignmentView}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/assignment/{jobId} [get]
func (c *assignmentApiController) get(ctx *fiber.Ctx) error {
	sess, ok := c.session(ctx)
	if !ok {
		return c.SendNotFound(ctx, "Assignment is not open")
	}
	return c.SendOK(ctx, assignmentapimodels.Convert(sess.Snapshot()))
}

// @Summary Закрыть назначение
// @Tags Назначение вендоров
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   jobId          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response
// @router /api/v1/assignment/{jobId} [delete]
func (c *assignmentApiController) close(ctx *fiber.Ctx) error {
	c.GetWorkspace(ctx).CloseAssignment(c.jobID(ctx))
	return c.SendOK(ctx, nil)
}

// @Summary Назначить вендора
// @Tags Назначение вендоров
// @Description Перенос выполняется сразу, подтверждение уходит в фоне. Ошибка подтверждения приходит тостом
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   jobId          		path    string  				    	true         "job ID"
// @Param   vendorId          		path    string  				    	true         "vendor ID"
// @Success 200 {object} apimodels.Response{data=assignmentapimodels.AssignmentView}
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/assignment/{jobId}/assign/{vendorId} [put]
func (c *assignmentApiController) assign(ctx *fiber.Ctx) error {
	return c.move(ctx, true)
}

// @Summary Снять вендора
// @Tags Назначение вендоров
// @Description Перенос выполняется сразу, подтверждение уходит в фоне. Ошибка подтверждения приходит тостом
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   jobId          		path    string  				    	true         "job ID"
// @Param   vendorId          		path    string  				    	true         "vendor ID"
// @Success 200 {object} apimodels.Response{data=assignmentapimodels.AssignmentView}
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/assignment/{jobId}/unassign/{vendorId} [put]
func (c *assignmentApiController) unassign(ctx *fiber.Ctx) error {
	return c.move(ctx, false)
}

func (c *assignmentApiController) move(ctx *fiber.Ctx, toAssigned bool) error {
	sess, ok := c.session(ctx)
	if !ok {
		return c.SendNotFound(ctx, "Assignment is not open")
	}
	vendorID := ctx.Params("vendorId")
	var (
		snapshot assignment.Snapshot
		changed  bool
		err      error
	)
	if toAssigned {
		snapshot, changed, err = sess.Assign(vendorID)
	} else {
		snapshot, changed, err = sess.Unassign(vendorID)
	}
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Assignment is not ready")
	}
	return c.SendOK(ctx, assignmentapimodels.ConvertMove(snapshot, changed))
}

// @Summary Письмо вендору
// @Tags Назначение вендоров
// @Description Уведомляет вендора о вакансии открытого назначения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   jobId          		path    string  				    	true         "job ID"
// @Param   vendorId          		path    string  				    	true         "vendor ID"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/assignment/{jobId}/send-email/{vendorId} [post]
func (c *assignmentApiController) sendEmail(ctx *fiber.Ctx) error {
	sess, ok := c.session(ctx)
	if !ok {
		return c.SendNotFound(ctx, "Assignment is not open")
	}
	if err := sess.SendEmail(ctx.UserContext(), ctx.Params("vendorId")); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error sending email")
	}
	return c.SendOK(ctx, nil)
}
