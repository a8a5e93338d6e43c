package ws

import (
	"fmt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	passwordreset "vms-console/lib/password-reset"
	connectionhub "vms-console/lib/ws/hub/connection-hub"
	"vms-console/middleware"
)

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

func InitWs(router fiber.Router) {
	router.Use("", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		ctx.Locals("sessionID", middleware.GetSessionID(ctx))
		return ctx.Next()
	})
	router.Get("/", websocket.New(toastHandler))
}

// InitPasswordWs тосты сброса пароля до входа, подписка по идентификатору процесса
func InitPasswordWs(router fiber.Router) {
	upgrade := func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		flowID := ctx.Params("flowId")
		if !passwordreset.Instance.Exists(flowID) {
			return fiber.ErrNotFound
		}
		ctx.Locals("sessionID", passwordreset.NotifyPrefix+flowID)
		return ctx.Next()
	}
	router.Get(":flowId", upgrade, websocket.New(toastHandler))
}

// @Summary Тосты консоли
// @Tags Websocket
// @Description Уведомления об ошибках подтверждения, истечении сессии и готовности повторной отправки OTP
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 400
// @Failure 401
// @Failure 426
// @router /ws [get]
func toastHandler(c *websocket.Conn) {
	sessionID, _ := c.Locals("sessionID").(string)
	if sessionID == "" {
		return
	}
	connectionhub.Instance.AddClient(sessionID, c)
	defer func() {
		connectionhub.Instance.DeleteClient(sessionID, c)
	}()
	dispatch(c, sessionID)
}

// dispatch читает входящие сообщения до закрытия соединения
func dispatch(c *websocket.Conn, sessionID string) {
	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				log.WithError(err).WithField("session_id", sessionID).Error("ошибка получения сообщения")
			}
			return
		}
		log.WithField("ws_message", fmt.Sprintf("%s", data)).Debug("ws-msg")
	}
}
