package history

import (
	"context"

	"critique-backend/internal/analyses"
)

// DefaultPageSize is used when a non-positive page size is requested.
const DefaultPageSize = 5

// Layout selects how the visible page is painted.
type Layout string

const (
	LayoutTable Layout = "table"
	LayoutCards Layout = "cards"
)

// ParseLayout maps a query value onto a Layout.
func ParseLayout(s string) (Layout, bool) {
	switch Layout(s) {
	case LayoutTable:
		return LayoutTable, true
	case LayoutCards:
		return LayoutCards, true
	default:
		return "", false
	}
}

// Deleter removes a record from the backing store.
type Deleter interface {
	Delete(ctx context.Context, id string) error
}

// DeleterFunc adapts a function to Deleter.
type DeleterFunc func(ctx context.Context, id string) error

func (f DeleterFunc) Delete(ctx context.Context, id string) error {
	return f(ctx, id)
}

// State is the paged view of one user's analyses. Operations return a new
// State and never write to the receiver's backing slice.
type State struct {
	Records  []analyses.Record
	Page     int
	PageSize int
	Layout   Layout
}

// New returns an empty state on page 1 in table layout.
func New(pageSize int) State {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return State{Page: 1, PageSize: pageSize, Layout: LayoutTable}
}

// TotalPages is ceil(len/pageSize), never less than 1.
func (s State) TotalPages() int {
	size := s.size()
	total := (len(s.Records) + size - 1) / size
	if total < 1 {
		return 1
	}
	return total
}

// Load replaces the backing list. The current page is kept unless it now
// exceeds the last page.
func (s State) Load(records []analyses.Record) State {
	s.Records = append([]analyses.Record(nil), records...)
	return s.clamp()
}

// SetLayout switches the layout. Unknown modes leave the state unchanged.
func (s State) SetLayout(mode Layout) State {
	if _, ok := ParseLayout(string(mode)); !ok {
		return s
	}
	s.Layout = mode
	return s
}

// GoToPage moves to page n. It reports false, leaving the state as is, when n
// is outside [1, TotalPages].
func (s State) GoToPage(n int) (State, bool) {
	if n < 1 || n > s.TotalPages() {
		return s, false
	}
	s.Page = n
	return s, true
}

// Delete asks the store to remove id and, only on success, drops it from the
// backing list and clamps the page.
func (s State) Delete(ctx context.Context, store Deleter, id string) (State, error) {
	if err := store.Delete(ctx, id); err != nil {
		return s, err
	}
	kept := make([]analyses.Record, 0, len(s.Records))
	for _, rec := range s.Records {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	s.Records = kept
	return s.clamp(), nil
}

// Visible returns the records on the current page.
func (s State) Visible() []analyses.Record {
	size := s.size()
	start := (s.Page - 1) * size
	if start < 0 || start >= len(s.Records) {
		return nil
	}
	end := start + size
	if end > len(s.Records) {
		end = len(s.Records)
	}
	return s.Records[start:end]
}

func (s State) size() int {
	if s.PageSize < 1 {
		return DefaultPageSize
	}
	return s.PageSize
}

func (s State) clamp() State {
	if total := s.TotalPages(); s.Page > total {
		s.Page = total
	}
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}
