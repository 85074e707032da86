// Package pagination holds the shared page-window arithmetic used by every
// list view.
package pagination

// Page returns the half-open window [(page-1)*size, page*size) of items.
// Pages are 1-based; a page beyond the range yields an empty slice.
func Page[T any](items []T, size, page int) []T {
	if size <= 0 || page <= 0 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages is ceil(len/size); zero items means zero pages.
func TotalPages[T any](items []T, size int) int {
	if size <= 0 {
		return 0
	}
	return (len(items) + size - 1) / size
}
