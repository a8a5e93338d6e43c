package entitylist

func PageCount(total, perPage int) int {
	if total <= 0 {
		return 0
	}
	if perPage <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// Paginate срез страницы page (с 1). За пределами списка пусто
func Paginate[T any](list []T, page, perPage int) []T {
	if perPage <= 0 {
		return list
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(list) {
		return []T{}
	}
	end := start + perPage
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

type Page[T any] struct {
	Items     []T
	Total     int
	Page      int
	PerPage   int
	PageCount int
}

// View фильтрует и режет на страницы один и тот же список, поэтому
// кол-во страниц всегда соответствует отрисованным строкам
func View[T any](entities []T, term string, page, perPage int, fields ...Field[T]) Page[T] {
	filtered := Filter(entities, term, fields...)
	if page < 1 {
		page = 1
	}
	return Page[T]{
		Items:     Paginate(filtered, page, perPage),
		Total:     len(filtered),
		Page:      page,
		PerPage:   perPage,
		PageCount: PageCount(len(filtered), perPage),
	}
}
