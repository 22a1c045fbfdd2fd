package scroll

// mod returns i modulo n in [0, n). n must be positive.
func mod(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i >= 0 {
		return i % n
	}
	return n + ((i + 1) % n) - 1
}

// BoundIndex maps a raw window index of a list with count items into
// [0, count). Loop lists use it to address their data; it returns -1 when
// count is not positive.
func BoundIndex(index, count int) int {
	if count <= 0 {
		return -1
	}
	return mod(index, count)
}

// BoundIndex maps a raw index into the region's [0, TotalCount).
func (r *Region) BoundIndex(index int) int {
	return BoundIndex(index, r.total)
}
