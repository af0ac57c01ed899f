package utils

// DefaultPageSize is the fixed page size used by post and user listings.
const DefaultPageSize = 10

// Pagination converts a 1-based page number into limit/offset values.
func Pagination(page int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	return DefaultPageSize, (page - 1) * DefaultPageSize
}
