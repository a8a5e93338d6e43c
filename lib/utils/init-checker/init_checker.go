package initchecker

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

type Dependency struct {
	Name  string
	Value any
}

func Dep(name string, value any) Dependency {
	return Dependency{Name: name, Value: value}
}

// Check возвращает ошибку со списком незаполненных зависимостей.
// Типизированный nil (например, nil-указатель в интерфейсе) тоже считается пустым
func Check(deps ...Dependency) error {
	missing := make([]string, 0)
	for _, dep := range deps {
		if isNil(dep.Value) {
			missing = append(missing, dep.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return errors.Errorf("не инициализированы зависимости: %v", strings.Join(missing, ", "))
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}
