package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"vms-console/lib/assignment"
	"vms-console/lib/entitylist"
	"vms-console/lib/session"
	"vms-console/lib/utils/validation"
	"vms-console/lib/vmsclient"
	"vms-console/lib/workspace"
	"vms-console/middleware"
	apimodels "vms-console/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", errors.New("не указан идентификатор")
	}
	return id, nil
}

func (c *BaseAPIController) GetSession(ctx *fiber.Ctx) *session.Session {
	return middleware.GetSession(ctx)
}

// GetWorkspace рабочее пространство текущей сессии
func (c *BaseAPIController) GetWorkspace(ctx *fiber.Ctx) *workspace.Workspace {
	return workspace.Instance.Get(middleware.GetSession(ctx))
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	logger := log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
	if sess := middleware.GetSession(ctx); sess != nil {
		logger = logger.
			WithField("session_id", sess.ID).
			WithField("username", sess.Username)
	}
	return logger
}

// SendError выбирает статус по типу ошибки. 4xx сервиса вакансий пробрасывается,
// остальные ошибки сервиса дают 502
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, userMessage string) error {
	if vErr, ok := validation.IsValidationError(err); ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewValidationError(userMessage, vErr.Fields))
	}
	if httpErr, ok := vmsclient.AsHttpError(err); ok {
		logger.WithError(err).Warn(userMessage)
		status := fiber.StatusBadGateway
		if httpErr.Status >= 400 && httpErr.Status < 500 {
			status = httpErr.Status
		}
		return ctx.Status(status).JSON(apimodels.NewError(vmsclient.UserMessage(err, userMessage)))
	}
	if vmsclient.IsNetworkFailure(err) {
		logger.WithError(err).Warn(userMessage)
		return ctx.Status(fiber.StatusBadGateway).JSON(apimodels.NewError(userMessage))
	}
	if errors.Is(err, entitylist.ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(userMessage))
	}
	if errors.Is(err, assignment.ErrNotReady) || errors.Is(err, assignment.ErrSuperseded) || errors.Is(err, assignment.ErrUnknownUser) {
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(userMessage))
	}
	logger.WithError(err).Error(userMessage)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(userMessage))
}

func (c *BaseAPIController) SendBadRequest(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(message))
}

func (c *BaseAPIController) SendNotFound(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(message))
}

func (c *BaseAPIController) SendOK(ctx *fiber.Ctx, data interface{}) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(data))
}
