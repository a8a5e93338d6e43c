package vmsclient

import (
	"fmt"

	"github.com/pkg/errors"
)

// NetworkFailure запрос не дошел до сервиса (dial, таймаут, отмена контекста)
type NetworkFailure struct {
	Operation string
	Err       error
}

func (e *NetworkFailure) Error() string {
	return fmt.Sprintf("сервис вакансий недоступен (%v): %v", e.Operation, e.Err)
}

func (e *NetworkFailure) Unwrap() error {
	return e.Err
}

// HttpError сервис ответил статусом вне 2xx
type HttpError struct {
	Operation string
	Status    int
	Body      string
	Message   string
}

func (e *HttpError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("сервис вакансий вернул %v (%v): %v", e.Status, e.Operation, e.Message)
	}
	return fmt.Sprintf("сервис вакансий вернул %v (%v)", e.Status, e.Operation)
}

func IsNetworkFailure(err error) bool {
	var target *NetworkFailure
	return errors.As(err, &target)
}

func AsHttpError(err error) (*HttpError, bool) {
	var target *HttpError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// IsRemote ошибка получена при обращении к сервису вакансий
func IsRemote(err error) bool {
	if IsNetworkFailure(err) {
		return true
	}
	_, ok := AsHttpError(err)
	return ok
}

// UserMessage текст для тоста
func UserMessage(err error, fallback string) string {
	if httpErr, ok := AsHttpError(err); ok && httpErr.Message != "" {
		return httpErr.Message
	}
	return fallback
}
