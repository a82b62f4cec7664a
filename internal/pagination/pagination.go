package pagination

// Bounds returns the [start, end) slice bounds of a 1-based page over total
// items. A non-positive pageSize selects everything; pages past the end are
// empty. Large page numbers never overflow.
func Bounds(total, page, pageSize int) (int, int) {
	if pageSize <= 0 {
		return 0, total
	}
	if page < 1 {
		page = 1
	}
	if page-1 > total/pageSize {
		return total, total
	}
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + min(pageSize, total-start)
	return start, end
}
