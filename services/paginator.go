package services

import (
	"strconv"
	"strings"
)

// Paginator splits count items into pages of perPage. There is always at
// least one page, even when count is zero.
type Paginator struct {
	Count   int64
	PerPage int
}

// NumPages returns the number of pages
func (p Paginator) NumPages() int {
	if p.Count <= 0 || p.PerPage <= 0 {
		return 1
	}
	return int((p.Count + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// Resolve turns a raw page parameter into a valid page number. Anything
// that is not an integer yields the first page; numbers out of range yield
// the last page.
func (p Paginator) Resolve(raw string) int {
	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	if number < 1 || number > p.NumPages() {
		return p.NumPages()
	}
	return number
}

// Offset returns the index of the first item on page number
func (p Paginator) Offset(number int) int {
	return (number - 1) * p.PerPage
}
