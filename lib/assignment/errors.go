package assignment

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNotReady    = errors.New("назначение не открыто")
	ErrSuperseded  = errors.New("назначение закрыто или открыто заново")
	ErrUnknownUser = errors.New("вендор не найден в назначении")
)

// StateInconsistency локальное состояние разошлось с сервисом после неуспешного подтверждения
type StateInconsistency struct {
	Operation   string
	JobID       string
	VendorID    string
	Compensated bool
	Err         error
}

func (e *StateInconsistency) Error() string {
	return fmt.Sprintf("%v вендора %v для вакансии %v не подтверждено: %v", e.Operation, e.VendorID, e.JobID, e.Err)
}

func (e *StateInconsistency) Unwrap() error {
	return e.Err
}
