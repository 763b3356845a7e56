package ui

import "testing"

func TestContentDimensions(t *testing.T) {
	if got := ContentHeight(24); got != 24-HeaderHeight-TabBarHeight-FooterHeight {
		t.Errorf("unexpected content height %d", got)
	}
	if got := ContentHeight(2); got != 1 {
		t.Errorf("expected content height floor of 1, got %d", got)
	}
	if got := ContentWidth(80); got != 76 {
		t.Errorf("expected 76, got %d", got)
	}
	if got := TableBodyHeight(3); got != 1 {
		t.Errorf("expected table body floor of 1, got %d", got)
	}
}

func TestColumnWidths(t *testing.T) {
	widths := ColumnWidths(100, 4)
	if len(widths) != 4 || widths[0] != 23 {
		t.Errorf("unexpected widths %v", widths)
	}
	if got := ColumnWidths(10, 4); got[0] != MinColumnWidth {
		t.Errorf("expected minimum width, got %v", got)
	}
	if ColumnWidths(10, 0) != nil {
		t.Error("expected nil for zero columns")
	}
}
