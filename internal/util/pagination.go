package util

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Paginate clamps page to >= 1 and size to [1, MaxPageSize] and returns the
// clamped values together with the row offset.
func Paginate(page, size int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size, (page - 1) * size
}

func TotalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
