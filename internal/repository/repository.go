// Package repository provides typed per-collection access on top of the
// document store.
package repository

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func clampPage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	return page, size
}
