package tableview

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeUsers(n int) []User {
	users := make([]User, n)
	for i := range users {
		users[i] = User{
			FirstName:   fmt.Sprintf("user%02d", i+1),
			LastName:    fmt.Sprintf("last%02d", n-i),
			Email:       fmt.Sprintf("u%02d@example.com", i+1),
			DateOfBirth: fmt.Sprintf("19%02d-01-01", 50+i%40),
		}
	}
	return users
}

func loaded(t *testing.T, users []User, opts ...Option) *Model {
	t.Helper()
	m := New(opts...)
	require.True(t, m.CompleteLoad(m.BeginLoad(), users, nil))
	return m
}

func firstNames(users []User) []string {
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.FirstName
	}
	return names
}

func TestNew_Defaults(t *testing.T) {
	m := New()
	assert.Equal(t, ColumnFirstName, m.SortColumn())
	assert.Equal(t, Ascending, m.SortDirection())
	assert.Equal(t, 1, m.CurrentPage())
	assert.Equal(t, DefaultPageSize, m.PageSize())
	assert.Equal(t, 0, m.TotalPages())
	assert.Empty(t, m.PaginatedRows())
	assert.False(t, m.IsLoading())
	assert.Equal(t, "", m.Error())
	assert.Equal(t, "0-0 of 0", m.RecordRangeLabel())
	assert.Empty(t, m.VisiblePages())
}

func TestScenario_TwentyThreeRecords(t *testing.T) {
	m := loaded(t, makeUsers(23))

	assert.Equal(t, 3, m.TotalPages())
	m.GoToPage(3)
	assert.Equal(t, 3, m.CurrentPage())
	assert.Len(t, m.PaginatedRows(), 3)
	assert.Equal(t, "21-23 of 23", m.RecordRangeLabel())
}

func TestScenario_SortToggle(t *testing.T) {
	m := loaded(t, []User{{FirstName: "B"}, {FirstName: "A"}})

	// Loading applies the default ascending first_name sort.
	assert.Equal(t, []string{"A", "B"}, firstNames(m.PaginatedRows()))

	m.SortBy(ColumnFirstName)
	assert.Equal(t, Descending, m.SortDirection())
	assert.Equal(t, []string{"B", "A"}, firstNames(m.PaginatedRows()))

	m.SortBy(ColumnFirstName)
	assert.Equal(t, Ascending, m.SortDirection())
	assert.Equal(t, []string{"A", "B"}, firstNames(m.PaginatedRows()))
}

func TestSortBy_NewColumnStartsAscending(t *testing.T) {
	m := loaded(t, makeUsers(4))
	m.SortBy(ColumnFirstName) // desc

	m.SortBy(ColumnLastName)
	assert.Equal(t, ColumnLastName, m.SortColumn())
	assert.Equal(t, Ascending, m.SortDirection())
	assert.Equal(t, []string{"user04", "user03", "user02", "user01"}, firstNames(m.PaginatedRows()))
}

func TestSortBy_TwiceTogglesForEveryColumn(t *testing.T) {
	for _, c := range Columns {
		t.Run(string(c), func(t *testing.T) {
			m := loaded(t, makeUsers(7))
			m.SortBy(c)
			first := m.SortDirection()
			m.SortBy(c)
			assert.NotEqual(t, first, m.SortDirection())
		})
	}
}

func TestSortBy_IsStable(t *testing.T) {
	users := []User{
		{FirstName: "Ana", LastName: "Smith"},
		{FirstName: "Bo", LastName: "Jones"},
		{FirstName: "Cy", LastName: "Smith"},
		{FirstName: "Di", LastName: "Jones"},
		{FirstName: "Ed", LastName: "Smith"},
	}
	m := loaded(t, users)

	m.SortBy(ColumnLastName)
	want := []string{"Bo", "Di", "Ana", "Cy", "Ed"}
	if diff := cmp.Diff(want, firstNames(m.SortedRows())); diff != "" {
		t.Fatalf("ascending last_name mismatch (-want +got):\n%s", diff)
	}

	// Descending sorts on top of the previous order: equal keys keep it.
	m.SortBy(ColumnLastName)
	want = []string{"Ana", "Cy", "Ed", "Bo", "Di"}
	if diff := cmp.Diff(want, firstNames(m.SortedRows())); diff != "" {
		t.Fatalf("descending last_name mismatch (-want +got):\n%s", diff)
	}
}

func TestSortBy_ResetsToFirstPage(t *testing.T) {
	m := loaded(t, makeUsers(30))
	m.GoToPage(3)
	m.SortBy(ColumnEmail)
	assert.Equal(t, 1, m.CurrentPage())
}

func TestSortBy_DateIsLexicographic(t *testing.T) {
	m := loaded(t, []User{
		{FirstName: "c", DateOfBirth: "2001-10-05"},
		{FirstName: "a", DateOfBirth: "1999-12-31"},
		{FirstName: "b", DateOfBirth: "2001-02-28"},
	})
	m.SortBy(ColumnDateOfBirth)
	assert.Equal(t, []string{"a", "b", "c"}, firstNames(m.SortedRows()))
}

func TestPagination_Properties(t *testing.T) {
	for n := 0; n <= 37; n++ {
		for size := 1; size <= 12; size++ {
			m := loaded(t, makeUsers(n), WithPageSize(size))

			wantPages := (n + size - 1) / size
			require.Equal(t, wantPages, m.TotalPages(), "n=%d size=%d", n, size)

			for page := 1; page <= wantPages; page++ {
				m.GoToPage(page)
				require.Equal(t, page, m.CurrentPage())

				wantLen := size
				if rest := n - (page-1)*size; rest < wantLen {
					wantLen = rest
				}
				rows := m.PaginatedRows()
				require.Len(t, rows, wantLen, "n=%d size=%d page=%d", n, size, page)

				sorted := m.SortedRows()
				if diff := cmp.Diff(sorted[(page-1)*size:(page-1)*size+wantLen], rows); diff != "" {
					t.Fatalf("page slice mismatch n=%d size=%d page=%d:\n%s", n, size, page, diff)
				}
			}
		}
	}
}

func TestGoToPage_OutOfRangeIsNoOp(t *testing.T) {
	m := loaded(t, makeUsers(23))
	m.GoToPage(2)
	before := m.PaginatedRows()

	for _, p := range []int{-1, 0, 4, 100} {
		m.GoToPage(p)
		assert.Equal(t, 2, m.CurrentPage(), "page %d", p)
		assert.Equal(t, before, m.PaginatedRows())
	}
}

func TestGoToPage_EmptySet(t *testing.T) {
	m := loaded(t, nil)
	m.GoToPage(1)
	assert.Equal(t, 1, m.CurrentPage())
	m.NextPage()
	assert.Equal(t, 1, m.CurrentPage())
}

func TestPreviousNextPage(t *testing.T) {
	m := loaded(t, makeUsers(25))

	m.PreviousPage()
	assert.Equal(t, 1, m.CurrentPage())

	m.NextPage()
	m.NextPage()
	assert.Equal(t, 3, m.CurrentPage())

	m.NextPage()
	assert.Equal(t, 3, m.CurrentPage())

	m.PreviousPage()
	assert.Equal(t, 2, m.CurrentPage())
}

func TestChangePageSize(t *testing.T) {
	m := loaded(t, makeUsers(23))
	m.GoToPage(3)

	m.ChangePageSize(5)
	assert.Equal(t, 5, m.PageSize())
	assert.Equal(t, 1, m.CurrentPage())
	assert.Equal(t, 5, m.TotalPages())
	assert.Equal(t, "1-5 of 23", m.RecordRangeLabel())

	m.ChangePageSize(0)
	m.ChangePageSize(-4)
	assert.Equal(t, 5, m.PageSize())
}

func TestRecordRangeLabel_ClampsToTotal(t *testing.T) {
	m := loaded(t, makeUsers(7), WithPageSize(5))
	assert.Equal(t, "1-5 of 7", m.RecordRangeLabel())
	m.NextPage()
	assert.Equal(t, "6-7 of 7", m.RecordRangeLabel())
}

func TestVisiblePages(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		current int
		want    []int
	}{
		{"fewer than window", 3, 2, []int{1, 2, 3}},
		{"exactly window", 5, 5, []int{1, 2, 3, 4, 5}},
		{"start edge", 10, 1, []int{1, 2, 3, 4, 5}},
		{"near start", 10, 2, []int{1, 2, 3, 4, 5}},
		{"centered", 10, 5, []int{3, 4, 5, 6, 7}},
		{"near end", 10, 9, []int{6, 7, 8, 9, 10}},
		{"end edge", 10, 10, []int{6, 7, 8, 9, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loaded(t, makeUsers(tt.total), WithPageSize(1))
			m.GoToPage(tt.current)
			assert.Equal(t, tt.want, m.VisiblePages())
		})
	}
}

func TestSortIndicator(t *testing.T) {
	m := New()
	assert.Equal(t, IndicatorAscending, m.SortIndicator(ColumnFirstName))
	assert.Equal(t, IndicatorUnsorted, m.SortIndicator(ColumnEmail))

	m.SortBy(ColumnFirstName)
	assert.Equal(t, IndicatorDescending, m.SortIndicator(ColumnFirstName))
}

func TestLoad_FailureKeepsRows(t *testing.T) {
	m := loaded(t, makeUsers(12))
	m.GoToPage(2)

	gen := m.BeginLoad()
	assert.True(t, m.IsLoading())
	assert.Equal(t, "", m.Error())

	m.CompleteLoad(gen, nil, errors.New("connection refused"))

	assert.False(t, m.IsLoading())
	assert.Equal(t, DefaultErrorMessage, m.Error())
	assert.EqualError(t, m.Err(), "connection refused")
	assert.Equal(t, 12, m.Len())
	assert.Equal(t, 2, m.CurrentPage())
	assert.Len(t, m.PaginatedRows(), 2)
}

func TestLoad_SuccessResetsPageAndKeepsSort(t *testing.T) {
	m := loaded(t, makeUsers(30))
	m.SortBy(ColumnLastName)
	m.GoToPage(2)

	m.CompleteLoad(m.BeginLoad(), makeUsers(15), nil)

	assert.Equal(t, 1, m.CurrentPage())
	assert.Equal(t, ColumnLastName, m.SortColumn())
	assert.Equal(t, "last01", m.PaginatedRows()[0].LastName)
}

func TestLoad_BeginClearsPreviousError(t *testing.T) {
	m := New(WithErrorMessage("No se pudo cargar"))
	m.CompleteLoad(m.BeginLoad(), nil, errors.New("boom"))
	assert.Equal(t, "No se pudo cargar", m.Error())

	m.BeginLoad()
	assert.Equal(t, "", m.Error())
	assert.Nil(t, m.Err())
}

func TestLoad_CompletionOrderWinsByDefault(t *testing.T) {
	m := New()
	first := m.BeginLoad()
	second := m.BeginLoad()

	assert.True(t, m.CompleteLoad(second, makeUsers(2), nil))
	assert.True(t, m.CompleteLoad(first, makeUsers(9), nil))

	assert.Equal(t, 9, m.Len())
}

func TestLoad_DiscardStale(t *testing.T) {
	m := New(WithDiscardStale(true))
	first := m.BeginLoad()
	second := m.BeginLoad()

	assert.True(t, m.CompleteLoad(second, makeUsers(2), nil))
	assert.False(t, m.CompleteLoad(first, makeUsers(9), nil))

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, second, m.Generation())
}

func TestLoad_Sync(t *testing.T) {
	m := New()
	err := m.Load(context.Background(), func(ctx context.Context) ([]User, error) {
		return makeUsers(3), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())

	cause := errors.New("offline")
	err = m.Load(context.Background(), func(ctx context.Context) ([]User, error) {
		return nil, cause
	})
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 3, m.Len())
	assert.NotEmpty(t, m.Error())
}

func TestPaginatedRows_ReturnsCopy(t *testing.T) {
	m := loaded(t, makeUsers(3))
	rows := m.PaginatedRows()
	rows[0].FirstName = "mutated"
	assert.Equal(t, "user01", m.PaginatedRows()[0].FirstName)
}
