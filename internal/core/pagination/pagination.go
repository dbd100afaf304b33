// Package pagination holds the offset/limit window shared by every paginated table.
package pagination

import (
	"net/url"
	"strconv"
)

const (
	MaxLimit = 100
	// MaxOffset bounds offsets read from a query string.
	MaxOffset = 1_000_000
)

type Page struct {
	Limit  int
	Offset int
	Total  int
}

// FromQuery reads limit/offset, clamping nonsense to defaultLimit and zero.
func FromQuery(q url.Values, defaultLimit int) Page {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	p := Page{Limit: defaultLimit}

	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		p.Limit = limit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil && offset > 0 {
		p.Offset = min(offset, MaxOffset)
	}
	return p
}

func (p Page) HasPrevious() bool {
	return p.Offset > 0
}

// HasNext is written as a subtraction so a huge offset cannot overflow into true.
func (p Page) HasNext() bool {
	return p.Offset < p.Total-p.Limit
}

func (p Page) Previous() Page {
	prev := p
	prev.Offset = p.Offset - p.Limit
	if prev.Offset < 0 {
		prev.Offset = 0
	}
	return prev
}

func (p Page) Next() Page {
	next := p
	next.Offset = p.Offset + p.Limit
	return next
}

// WithTotal returns the page with the total reported by the server.
func (p Page) WithTotal(total int) Page {
	p.Total = total
	return p
}

// Query renders the window as query parameters, for pagination links.
func (p Page) Query() string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("offset", strconv.Itoa(p.Offset))
	return q.Encode()
}

// From is the 1-based index of the first row shown.
func (p Page) From() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset + 1
}

func (p Page) To() int {
	to := p.Offset + p.Limit
	if to > p.Total {
		to = p.Total
	}
	return to
}

// Slice paginates an in-memory list and reports its length as the total.
func Slice[T any](items []T, p Page) ([]T, Page) {
	p.Total = len(items)
	if p.Offset >= len(items) {
		return []T{}, p
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end], p
}
