package validation

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	mustRegister(v, "haslower", hasRune(unicode.IsLower))
	mustRegister(v, "hasupper", hasRune(unicode.IsUpper))
	mustRegister(v, "hasdigit", hasRune(unicode.IsDigit))
	mustRegister(v, "hasspecial", hasRune(func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}))
	mustRegister(v, "nospace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
	})
	mustRegister(v, "latinalpha", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, r := range value {
			if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
				return false
			}
		}
		return value != ""
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("ошибка регистрации правила %v: %v", tag, err))
	}
}

func hasRune(match func(r rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.ContainsFunc(fl.Field().String(), match)
	}
}

// ValidationError ошибки формы по полям
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

func IsValidationError(err error) (*ValidationError, bool) {
	var target *ValidationError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// Messages тексты ошибок по ключу "поле.правило"
type Messages map[string]string

// Struct проверяет структуру по тегам validate. Для каждого поля остается
// первое нарушенное правило
func Struct(s interface{}, messages Messages) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errors.Wrap(err, "ошибка проверки формы")
	}
	fields := map[string]string{}
	for _, fieldErr := range validationErrors {
		field := fieldErr.Field()
		if _, exist := fields[field]; exist {
			continue
		}
		fields[field] = message(messages, field, fieldErr.Tag())
	}
	return &ValidationError{Fields: fields}
}

func message(messages Messages, field, tag string) string {
	if msg, ok := messages[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := messages[field]; ok {
		return msg
	}
	return fmt.Sprintf("Invalid %v", field)
}

// Merge объединяет ошибки нескольких проверок
func Merge(errs ...error) error {
	fields := map[string]string{}
	for _, err := range errs {
		if err == nil {
			continue
		}
		vErr, ok := IsValidationError(err)
		if !ok {
			return err
		}
		for k, v := range vErr.Fields {
			if _, exist := fields[k]; !exist {
				fields[k] = v
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func Field(name, msg string) error {
	return &ValidationError{Fields: map[string]string{name: msg}}
}
