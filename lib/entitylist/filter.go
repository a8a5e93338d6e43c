package entitylist

import (
	"strings"

	"golang.org/x/text/cases"
)

type Field[T any] func(entity T) string

// Filter оставляет сущности, у которых хотя бы одно поле содержит term без учета регистра.
// Порядок сохраняется, пустой term пропускает все. Пробелы в term значимы
func Filter[T any](entities []T, term string, fields ...Field[T]) []T {
	if term == "" || len(fields) == 0 {
		result := make([]T, len(entities))
		copy(result, entities)
		return result
	}
	folder := cases.Fold()
	needle := folder.String(term)
	result := make([]T, 0, len(entities))
	for _, entity := range entities {
		for _, field := range fields {
			if strings.Contains(folder.String(field(entity)), needle) {
				result = append(result, entity)
				break
			}
		}
	}
	return result
}
