package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jaidar2003/Mockachino/internal/logging"
	"github.com/jaidar2003/Mockachino/internal/tableview"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// sortKeys maps single keys to the column they sort by.
var sortKeys = map[string]tableview.Column{
	"f": tableview.ColumnFirstName,
	"l": tableview.ColumnLastName,
	"e": tableview.ColumnEmail,
	"d": tableview.ColumnDateOfBirth,
}

// UsersTablePageModel is the sortable, paginated users page.
type UsersTablePageModel struct {
	ctx       context.Context
	load      tableview.LoadFunc
	instance  uint64
	activated bool

	view      *tableview.Model
	pageSizes []int

	table   table.Model
	spinner spinner.Model
	styles  Styles
	width   int
	height  int
}

// NewUsersTablePageModel creates the users table page. pageSizes are the
// sizes +/- cycle through; the model starts on pageSize.
func NewUsersTablePageModel(ctx context.Context, load tableview.LoadFunc, instance uint64, pageSize int, pageSizes []int, discardStale bool, styles Styles) UsersTablePageModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	t := table.New(
		table.WithFocused(true),
		table.WithHeight(TableBodyHeight(ContentHeight(DefaultHeight))),
	)

	m := UsersTablePageModel{
		ctx:       ctx,
		load:      load,
		instance:  instance,
		view:      tableview.New(tableview.WithPageSize(pageSize), tableview.WithDiscardStale(discardStale)),
		pageSizes: pageSizes,
		table:     t,
		spinner:   sp,
		styles:    styles,
		width:     ContentWidth(DefaultWidth),
	}
	m.syncTable()
	return m
}

// Activate loads the users the first time the page is shown.
func (m *UsersTablePageModel) Activate() tea.Cmd {
	if m.activated {
		return nil
	}
	m.activated = true
	return m.Load()
}

// Load starts a fresh load of the users.
func (m *UsersTablePageModel) Load() tea.Cmd {
	gen := m.view.BeginLoad()
	logging.UIDebug("users-table: load generation %d", gen)
	return tea.Batch(
		loadUsersCmd(m.ctx, m.load, gen, m.instance),
		m.spinner.Tick,
	)
}

// Update handles messages.
func (m UsersTablePageModel) Update(msg tea.Msg) (UsersTablePageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		if msg.instance != m.instance {
			return m, nil
		}
		m.view.CompleteLoad(msg.gen, msg.users, msg.err)
		m.syncTable()
		return m, nil

	case spinner.TickMsg:
		if !m.view.IsLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		key := msg.String()
		if col, ok := sortKeys[key]; ok {
			m.view.SortBy(col)
			m.syncTable()
			return m, nil
		}
		switch key {
		case "left":
			m.view.PreviousPage()
		case "right":
			m.view.NextPage()
		case "home":
			m.view.GoToPage(1)
		case "end":
			m.view.GoToPage(m.view.TotalPages())
		case "+", "=":
			m.view.ChangePageSize(m.nextPageSize(1))
		case "-":
			m.view.ChangePageSize(m.nextPageSize(-1))
		case "r":
			return m, m.Load()
		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		m.syncTable()
		return m, nil
	}

	return m, nil
}

// nextPageSize returns the configured size step positions away from the
// current one. The ends do not wrap.
func (m UsersTablePageModel) nextPageSize(step int) int {
	cur := m.view.PageSize()
	if len(m.pageSizes) == 0 {
		return cur
	}
	idx := -1
	for i, n := range m.pageSizes {
		if n == cur {
			idx = i
			break
		}
	}
	if idx == -1 {
		// Not one of the options: snap to the nearest one in that direction.
		for i, n := range m.pageSizes {
			if n > cur {
				if step > 0 {
					return n
				}
				if i == 0 {
					return cur
				}
				return m.pageSizes[i-1]
			}
		}
		if step < 0 {
			return m.pageSizes[len(m.pageSizes)-1]
		}
		return cur
	}
	idx += step
	if idx < 0 || idx >= len(m.pageSizes) {
		return cur
	}
	return m.pageSizes[idx]
}

// syncTable copies the current page into the bubbles table.
func (m *UsersTablePageModel) syncTable() {
	widths := ColumnWidths(m.width, len(tableview.Columns))
	cols := make([]table.Column, len(tableview.Columns))
	for i, c := range tableview.Columns {
		cols[i] = table.Column{
			Title: c.Title() + " " + m.view.SortIndicator(c),
			Width: widths[i],
		}
	}

	page := m.view.PaginatedRows()
	rows := make([]table.Row, len(page))
	for i, u := range page {
		row := make(table.Row, len(tableview.Columns))
		for j, c := range tableview.Columns {
			row[j] = u.Value(c)
		}
		rows[i] = row
	}

	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// SetSize updates the size of the page.
func (m *UsersTablePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.table.SetHeight(TableBodyHeight(h))
	m.syncTable()
}

// SetStyles swaps the page styles.
func (m *UsersTablePageModel) SetStyles(styles Styles) {
	m.styles = styles
	m.spinner.Style = styles.Spinner
}

// SetPageSizes replaces the sizes +/- cycle through.
func (m *UsersTablePageModel) SetPageSizes(sizes []int) {
	m.pageSizes = sizes
}

// View renders the page.
func (m UsersTablePageModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Users Table"))
	sb.WriteString("\n")

	switch {
	case m.view.IsLoading():
		sb.WriteString(m.spinner.View() + " " + m.styles.Muted.Render("Loading users..."))
	case m.view.Error() != "":
		sb.WriteString(m.styles.Error.Render(m.view.Error()))
	default:
		sb.WriteString(m.styles.Muted.Render("f/l/e/d sort · ←/→ page · +/- page size · r reload"))
	}
	sb.WriteString("\n")

	sb.WriteString(m.table.View())
	sb.WriteString("\n")
	sb.WriteString(m.footer())
	return sb.String()
}

// footer renders the page window, range label and page size.
func (m UsersTablePageModel) footer() string {
	var pages []string
	for _, p := range m.view.VisiblePages() {
		label := strconv.Itoa(p)
		if p == m.view.CurrentPage() {
			pages = append(pages, m.styles.PageCurrent.Render(label))
		} else {
			pages = append(pages, m.styles.Muted.Render(label))
		}
	}
	return fmt.Sprintf("%s  %s  %s",
		strings.Join(pages, " "),
		m.styles.Body.Render(m.view.RecordRangeLabel()),
		m.styles.Badge.Render(fmt.Sprintf("%d per page", m.view.PageSize())),
	)
}

// Model exposes the underlying view model.
func (m UsersTablePageModel) Model() *tableview.Model {
	return m.view
}
