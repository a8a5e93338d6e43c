package wsmodels

import (
	"time"

	"vms-console/models"
)

type ServerMessage struct {
	ToSessionID string            `json:"-"`
	Time        string            `json:"time"`  // время события
	Code        models.ToastCode  `json:"code"`  // код события
	Level       models.ToastLevel `json:"level"` // success / error / warning / info
	Msg         string            `json:"msg"`   // текст события
}

func NewToast(sessionID string, code models.ToastCode, msg string) ServerMessage {
	return ServerMessage{
		ToSessionID: sessionID,
		Time:        time.Now().Format("02.01.2006 15:04:05"),
		Code:        code,
		Level:       code.Level(),
		Msg:         msg,
	}
}

// Notify отправка тоста в рамках одной сессии
type Notify func(code models.ToastCode, msg string)

func NopNotify(code models.ToastCode, msg string) {}
