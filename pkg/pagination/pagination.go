// Package pagination paginación en memoria por offset para listados ya filtrados.
package pagination

// Límites por defecto de los listados de la API.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Normalize aplica los valores por defecto y los topes a limit/offset recibidos por query.
func Normalize(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// PageCount número de páginas para total elementos con tamaño size: ceil(total/size).
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Slice devuelve la ventana [offset, offset+limit) de items. Fuera de rango devuelve vacío.
func Slice[T any](items []T, limit, offset int) []T {
	if limit <= 0 || offset < 0 || offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// Page devuelve la página número page (base 1) de tamaño size.
func Page[T any](items []T, page, size int) []T {
	if page < 1 {
		return []T{}
	}
	return Slice(items, size, (page-1)*size)
}
