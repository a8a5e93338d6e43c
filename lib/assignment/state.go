// Package assignment делит вендоров на назначенных и не назначенных на вакансию
// и синхронизирует это разбиение с сервисом вакансий.
//
// Граф состояний сессии:
//
//	Closed ──► Loading ──► Ready ──► Closed
//	              │
//	              └──► Closed (ошибка загрузки)
package assignment

type State string

const (
	StateClosed  State = "CLOSED"
	StateLoading State = "LOADING"
	StateReady   State = "READY"
)

var validTransitions = map[State][]State{
	StateClosed:  {StateLoading},
	StateLoading: {StateReady, StateClosed},
	StateReady:   {StateClosed},
}

func IsTransitionAllowed(from, to State) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}
