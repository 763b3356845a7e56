// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for page sizing
const (
	// Chrome around every page
	HeaderHeight = 1
	TabBarHeight = 2
	FooterHeight = 2

	// Page content
	PageHorizontalPadding = 2
	PageTitleHeight       = 2
	StatusLineHeight      = 2

	// Table dimensions
	TableHeaderHeight = 2
	MinColumnWidth    = 10

	// Defaults before the first WindowSizeMsg
	DefaultWidth  = 80
	DefaultHeight = 24
)

// ContentHeight returns the rows left for a page body once the app chrome
// (header, tab bar, footer) is drawn.
func ContentHeight(terminalHeight int) int {
	h := terminalHeight - HeaderHeight - TabBarHeight - FooterHeight
	if h < 1 {
		return 1
	}
	return h
}

// ContentWidth returns the usable width of a page body.
func ContentWidth(terminalWidth int) int {
	w := terminalWidth - PageHorizontalPadding*2
	if w < 1 {
		return 1
	}
	return w
}

// TableBodyHeight returns the rows available for table rows inside a page of
// the given height, after the title, table header and status lines.
func TableBodyHeight(pageHeight int) int {
	h := pageHeight - PageTitleHeight - TableHeaderHeight - StatusLineHeight*2
	if h < 1 {
		return 1
	}
	return h
}

// ColumnWidths splits width evenly across n columns, never below MinColumnWidth.
func ColumnWidths(width, n int) []int {
	if n < 1 {
		return nil
	}
	// bubbles/table pads each cell by one on both sides
	each := width/n - 2
	if each < MinColumnWidth {
		each = MinColumnWidth
	}
	widths := make([]int, n)
	for i := range widths {
		widths[i] = each
	}
	return widths
}
