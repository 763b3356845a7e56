// Package tableview holds the users table state: the loaded rows, the active
// sort, and the current page.
package tableview

import (
	"context"
	"fmt"
	"sort"

	"github.com/jaidar2003/Mockachino/internal/api"
	"github.com/jaidar2003/Mockachino/internal/logging"
)

const (
	// DefaultPageSize is the page size of a new Model.
	DefaultPageSize = 10
	// MaxVisiblePages caps the page window.
	MaxVisiblePages = 5
	// DefaultErrorMessage is shown when a load fails.
	DefaultErrorMessage = "Error loading users"
)

// Sort indicators for column headers.
const (
	IndicatorUnsorted   = "⇅"
	IndicatorAscending  = "↑"
	IndicatorDescending = "↓"
)

// Generation identifies one load. Each BeginLoad issues a larger one.
type Generation uint64

// LoadFunc fetches the full user set.
type LoadFunc func(ctx context.Context) ([]User, error)

// FromFetcher adapts an API fetcher to a LoadFunc for the users collection.
func FromFetcher(f api.Fetcher) LoadFunc {
	return func(ctx context.Context) ([]User, error) {
		records, err := f.Fetch(ctx, api.CollectionUsers)
		if err != nil {
			return nil, err
		}
		return UsersFromRecords(records), nil
	}
}

// Model is the users table view model.
//
// All methods are meant to be called from a single goroutine (the UI loop);
// the only asynchronous step, fetching, happens outside and is handed back
// through CompleteLoad.
type Model struct {
	// sorted is the full row set, replaced on each load and re-sorted in place.
	sorted []User

	sortColumn  Column
	sortDir     Direction
	currentPage int
	pageSize    int

	loading      bool
	errMsg       string
	lastErr      error
	generation   Generation
	discardStale bool
	errorMessage string
}

// Option configures a Model.
type Option func(*Model)

// WithPageSize sets the initial page size. Non-positive values are ignored.
func WithPageSize(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.pageSize = n
		}
	}
}

// WithDiscardStale drops completions of loads that a newer BeginLoad has
// superseded. Without it, completions apply in arrival order and the last
// one to land wins.
func WithDiscardStale(discard bool) Option {
	return func(m *Model) {
		m.discardStale = discard
	}
}

// WithErrorMessage replaces the message shown when a load fails.
func WithErrorMessage(msg string) Option {
	return func(m *Model) {
		if msg != "" {
			m.errorMessage = msg
		}
	}
}

// New creates an empty Model sorted ascending by first name.
func New(opts ...Option) *Model {
	m := &Model{
		sorted:       []User{},
		sortColumn:   ColumnFirstName,
		sortDir:      Ascending,
		currentPage:  1,
		pageSize:     DefaultPageSize,
		errorMessage: DefaultErrorMessage,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// BeginLoad marks a load as in flight and returns its generation.
func (m *Model) BeginLoad() Generation {
	m.generation++
	m.loading = true
	m.errMsg = ""
	m.lastErr = nil
	return m.generation
}

// CompleteLoad applies the outcome of the load tagged gen and reports whether
// it was applied. On success the rows are replaced, the current sort is
// reapplied and the view returns to page 1. On failure the previous rows stay
// and Error returns the user-facing message.
func (m *Model) CompleteLoad(gen Generation, users []User, err error) bool {
	if m.discardStale && gen != m.generation {
		logging.UIDebug("discarding stale users load %d (latest %d)", gen, m.generation)
		return false
	}

	m.loading = false
	if err != nil {
		m.errMsg = m.errorMessage
		m.lastErr = err
		logging.Get(logging.CategoryUI).Errorf("load users failed: %v", err)
		return true
	}

	m.sorted = append(make([]User, 0, len(users)), users...)
	m.applySort()
	m.currentPage = 1
	logging.UIDebug("loaded %d users, %d pages", len(users), m.TotalPages())
	return true
}

// Load runs a complete load synchronously.
func (m *Model) Load(ctx context.Context, load LoadFunc) error {
	gen := m.BeginLoad()
	users, err := load(ctx)
	m.CompleteLoad(gen, users, err)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	return nil
}

// SortBy sorts by column. Sorting by the active column flips the direction;
// a new column starts ascending. The view returns to page 1.
func (m *Model) SortBy(column Column) {
	if m.sortColumn == column {
		if m.sortDir == Ascending {
			m.sortDir = Descending
		} else {
			m.sortDir = Ascending
		}
	} else {
		m.sortColumn = column
		m.sortDir = Ascending
	}

	m.applySort()
	m.currentPage = 1
}

// applySort stable-sorts the rows by the active column, so rows with equal
// keys keep the order they had before.
func (m *Model) applySort() {
	col, desc := m.sortColumn, m.sortDir == Descending
	sort.SliceStable(m.sorted, func(i, j int) bool {
		a, b := m.sorted[i].Value(col), m.sorted[j].Value(col)
		if desc {
			return a > b
		}
		return a < b
	})
}

// ChangePageSize sets the page size and returns to page 1.
// Non-positive sizes are ignored.
func (m *Model) ChangePageSize(size int) {
	if size < 1 {
		return
	}
	m.pageSize = size
	m.currentPage = 1
}

// GoToPage moves to page when 1 <= page <= TotalPages; otherwise nothing changes.
func (m *Model) GoToPage(page int) {
	if page >= 1 && page <= m.TotalPages() {
		m.currentPage = page
	}
}

// PreviousPage moves one page back, if there is one.
func (m *Model) PreviousPage() {
	m.GoToPage(m.currentPage - 1)
}

// NextPage moves one page forward, if there is one.
func (m *Model) NextPage() {
	m.GoToPage(m.currentPage + 1)
}

// TotalPages returns ceil(rows / page size).
func (m *Model) TotalPages() int {
	return (len(m.sorted) + m.pageSize - 1) / m.pageSize
}

// PaginatedRows returns the rows of the current page.
func (m *Model) PaginatedRows() []User {
	start, end := m.bounds()
	return append([]User(nil), m.sorted[start:end]...)
}

// SortedRows returns every row in the current sort order.
func (m *Model) SortedRows() []User {
	return append([]User(nil), m.sorted...)
}

// bounds returns the current page's half-open index range into sorted.
func (m *Model) bounds() (int, int) {
	start := (m.currentPage - 1) * m.pageSize
	if start > len(m.sorted) {
		start = len(m.sorted)
	}
	end := start + m.pageSize
	if end > len(m.sorted) {
		end = len(m.sorted)
	}
	return start, end
}

// SortIndicator returns the header glyph for column.
func (m *Model) SortIndicator(column Column) string {
	if m.sortColumn != column {
		return IndicatorUnsorted
	}
	if m.sortDir == Ascending {
		return IndicatorAscending
	}
	return IndicatorDescending
}

// RecordRangeLabel describes the rows on screen, e.g. "21-23 of 23".
func (m *Model) RecordRangeLabel() string {
	total := len(m.sorted)
	if total == 0 {
		return "0-0 of 0"
	}
	start, end := m.bounds()
	return fmt.Sprintf("%d-%d of %d", start+1, end, total)
}

// VisiblePages returns up to MaxVisiblePages page numbers around the current
// page, shifted at either end so the window stays full.
func (m *Model) VisiblePages() []int {
	total := m.TotalPages()
	start, end := 1, total
	if total > MaxVisiblePages {
		start = m.currentPage - MaxVisiblePages/2
		if start < 1 {
			start = 1
		}
		end = start + MaxVisiblePages - 1
		if end > total {
			end = total
			start = end - MaxVisiblePages + 1
		}
	}

	pages := make([]int, 0, MaxVisiblePages)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// CurrentPage returns the 1-based page number.
func (m *Model) CurrentPage() int { return m.currentPage }

// PageSize returns the rows per page.
func (m *Model) PageSize() int { return m.pageSize }

// SortColumn returns the active sort column.
func (m *Model) SortColumn() Column { return m.sortColumn }

// SortDirection returns the active sort direction.
func (m *Model) SortDirection() Direction { return m.sortDir }

// Len returns the number of loaded rows.
func (m *Model) Len() int { return len(m.sorted) }

// IsLoading reports whether a load is in flight.
func (m *Model) IsLoading() bool { return m.loading }

// Error returns the user-facing message of the last failed load, or "".
func (m *Model) Error() string { return m.errMsg }

// Err returns the cause of the last failed load.
func (m *Model) Err() error { return m.lastErr }

// Generation returns the generation of the most recent BeginLoad.
func (m *Model) Generation() Generation { return m.generation }
