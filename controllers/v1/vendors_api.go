package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"vms-console/controllers"
	"vms-console/lib/table"
	vendorhandler "vms-console/lib/vendor"
	"vms-console/middleware"
	apimodels "vms-console/models/api"
	vendorapimodels "vms-console/models/api/vendor"
)

type vendorsApiController struct {
	controllers.BaseAPIController
}

func InitVendorsApiRouters(app fiber.Router) {
	controller := vendorsApiController{}
	app.Route("vendors", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.SessionRequired(), middleware.AdminRequired())
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("verified", controller.toggleVerified)
		})
	})
}

// @Summary Список вендоров
// @Tags Вендоры
// @Description Поиск по имени и почте, пагинация на стороне консоли
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   search		query		string	false	"подстрока имени или почты"
// @Param   refresh		query		bool	false	"перезагрузить список"
// @Param   page		query		int	false	"страница"
// @Param   limit		query		int	false	"записей на странице"
// @Success 200 {object} apimodels.ScrollerResponse{data=vendorapimodels.VendorPage}
// @Failure 401 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/vendors [get]
func (c *vendorsApiController) list(ctx *fiber.Ctx) error {
	var filter vendorapimodels.VendorFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return c.SendBadRequest(ctx, "некорректные параметры запроса")
	}
	page, err := vendorhandler.Instance.List(ctx.UserContext(), c.GetWorkspace(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error fetching vendors")
	}
	rendered, err := table.Render(table.VendorColumns, page.Items)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error fetching vendors")
	}
	data := vendorapimodels.VendorPage{
		Items: vendorapimodels.ConvertList(page.Items),
		Table: rendered,
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(data, int64(page.Total), page.Page, page.PageCount))
}

// @Summary Вендор
// @Tags Вендоры
// @Description Карточка вендора с названиями назначенных вакансий
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "vendor ID"
// @Success 200 {object} apimodels.Response{data=vendorapimodels.VendorDetail}
// @Failure 404 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/vendors/{id} [get]
func (c *vendorsApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	vendor, err := vendorhandler.Instance.Get(ctx.UserContext(), c.GetWorkspace(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Vendor not found")
	}
	return c.SendOK(ctx, vendorapimodels.ConvertDetail(vendor))
}

// @Summary Создание вендора
// @Tags Вендоры
// @Description Пароль генерируется консолью и возвращается один раз
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 vendorapimodels.VendorCreate	true	"request body"
// @Success 200 {object} apimodels.Response{data=vendorapimodels.VendorCreated}
// @Failure 400 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/vendors [post]
func (c *vendorsApiController) create(ctx *fiber.Ctx) error {
	var payload vendorapimodels.VendorCreate
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	created, err := vendorhandler.Instance.Create(ctx.UserContext(), c.GetWorkspace(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error creating vendor")
	}
	return c.SendOK(ctx, created)
}

// @Summary Переключить статус вендора
// @Tags Вендоры
// @Description Значение меняется сразу, подтверждение уходит в фоне. Результат приходит тостом
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "vendor ID"
// @Success 200 {object} apimodels.Response{data=vendorapimodels.VendorView}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/vendors/{id}/verified [put]
func (c *vendorsApiController) toggleVerified(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	vendor, err := vendorhandler.Instance.ToggleVerified(ctx.UserContext(), c.GetWorkspace(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error toggling verified status")
	}
	return c.SendOK(ctx, vendorapimodels.Convert(vendor))
}
