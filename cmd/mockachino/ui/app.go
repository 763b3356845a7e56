package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaidar2003/Mockachino/internal/api"
	"github.com/jaidar2003/Mockachino/internal/logging"
	"github.com/jaidar2003/Mockachino/internal/tableview"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Route identifies one of the app pages.
type Route int

const (
	RouteUsers Route = iota
	RouteUsersTable
	RoutePersons
	RouteContacts
)

// Routes lists the pages in tab order.
var Routes = []Route{RouteUsers, RouteUsersTable, RoutePersons, RouteContacts}

// String returns the route path.
func (r Route) String() string {
	switch r {
	case RouteUsers:
		return "users"
	case RouteUsersTable:
		return "users-table"
	case RoutePersons:
		return "persons"
	case RouteContacts:
		return "contacts"
	default:
		return fmt.Sprintf("route(%d)", int(r))
	}
}

// Title returns the tab label.
func (r Route) Title() string {
	switch r {
	case RouteUsers:
		return "Users"
	case RouteUsersTable:
		return "Users Table"
	case RoutePersons:
		return "Persons"
	case RouteContacts:
		return "Contacts"
	default:
		return r.String()
	}
}

// ParseRoute maps a route path to a Route. The empty path is the users page.
func ParseRoute(s string) (Route, error) {
	if s == "" {
		return RouteUsers, nil
	}
	for _, r := range Routes {
		if r.String() == s {
			return r, nil
		}
	}
	return RouteUsers, fmt.Errorf("unknown route %q", s)
}

// AppOptions configures a new AppModel.
type AppOptions struct {
	InitialRoute Route
	PageSize     int
	PageSizes    []int
	DiscardStale bool
	Styles       Styles
	// BaseURL is shown in the header.
	BaseURL string
}

// AppModel is the root bubbletea model. Only the active page exists; leaving
// a route tears its page down and cancels its outstanding loads.
type AppModel struct {
	ctx     context.Context
	fetcher api.Fetcher
	opts    AppOptions

	route    Route
	instance uint64
	cancel   context.CancelFunc

	collection CollectionPageModel
	usersTable UsersTablePageModel

	help     HelpPageModel
	showHelp bool

	initCmd tea.Cmd
	width   int
	height  int
}

// NewAppModel creates the app on opts.InitialRoute.
func NewAppModel(ctx context.Context, f api.Fetcher, opts AppOptions) AppModel {
	if opts.PageSize < 1 {
		opts.PageSize = tableview.DefaultPageSize
	}
	m := AppModel{
		ctx:     ctx,
		fetcher: f,
		opts:    opts,
		help:    NewHelpPageModel(opts.Styles),
		width:   DefaultWidth,
		height:  DefaultHeight,
	}
	m.initCmd = m.switchTo(opts.InitialRoute)
	return m
}

// Init starts the first page.
func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

// switchTo tears down the current page and builds a fresh one for r.
func (m *AppModel) switchTo(r Route) tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	pageCtx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.route = r
	m.instance++
	logging.UI("switching to %s (instance %d)", r, m.instance)

	w, h := ContentWidth(m.width), ContentHeight(m.height)
	switch r {
	case RouteUsersTable:
		m.usersTable = NewUsersTablePageModel(pageCtx, tableview.FromFetcher(m.fetcher), m.instance,
			m.opts.PageSize, m.opts.PageSizes, m.opts.DiscardStale, m.opts.Styles)
		m.usersTable.SetSize(w, h)
		return m.usersTable.Activate()
	case RoutePersons:
		m.collection = NewCollectionPageModel(pageCtx, m.fetcher, api.CollectionPersons, "Persons", true, m.instance, m.opts.Styles)
	case RouteContacts:
		m.collection = NewCollectionPageModel(pageCtx, m.fetcher, api.CollectionContacts, "Contacts", true, m.instance, m.opts.Styles)
	default:
		m.route = RouteUsers
		m.collection = NewCollectionPageModel(pageCtx, m.fetcher, api.CollectionUsers, "Users", false, m.instance, m.opts.Styles)
	}
	m.collection.SetSize(w, h)
	return m.collection.Activate()
}

func (m *AppModel) step(delta int) tea.Cmd {
	idx := 0
	for i, r := range Routes {
		if r == m.route {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(Routes)) % len(Routes)
	return m.switchTo(Routes[idx])
}

// Update handles messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := ContentWidth(m.width), ContentHeight(m.height)
		m.help.SetSize(w, h)
		if m.route == RouteUsersTable {
			m.usersTable.SetSize(w, h)
		} else {
			m.collection.SetSize(w, h)
		}
		return m, nil

	case ConfigReloadedMsg:
		m.opts.Styles = msg.Styles
		if msg.PageSize > 0 {
			m.opts.PageSize = msg.PageSize
		}
		if len(msg.PageSizes) > 0 {
			m.opts.PageSizes = msg.PageSizes
		}
		m.help.SetStyles(msg.Styles)
		if m.route == RouteUsersTable {
			m.usersTable.SetStyles(msg.Styles)
			m.usersTable.SetPageSizes(m.opts.PageSizes)
		} else {
			m.collection.SetStyles(msg.Styles)
		}
		logging.UI("config reloaded")
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "esc":
			if m.showHelp {
				m.showHelp = false
				return m, nil
			}
		case "tab":
			m.showHelp = false
			return m, m.step(1)
		case "shift+tab":
			m.showHelp = false
			return m, m.step(-1)
		case "1", "2", "3", "4":
			m.showHelp = false
			r := Routes[int(msg.String()[0]-'1')]
			if r == m.route {
				return m, nil
			}
			return m, m.switchTo(r)
		}
		if m.showHelp {
			var cmd tea.Cmd
			m.help, cmd = m.help.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	if m.route == RouteUsersTable {
		m.usersTable, cmd = m.usersTable.Update(msg)
	} else {
		m.collection, cmd = m.collection.Update(msg)
	}
	return m, cmd
}

// View renders the app.
func (m AppModel) View() string {
	styles := m.opts.Styles

	header := styles.Header.Render("☕ Mockachino")
	if m.opts.BaseURL != "" {
		header += " " + styles.Subtitle.Render(m.opts.BaseURL)
	}

	var tabs []string
	for i, r := range Routes {
		label := fmt.Sprintf("%d %s", i+1, r.Title())
		if r == m.route {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.TabInactive.Render(label))
		}
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var body string
	switch {
	case m.showHelp:
		body = m.help.View()
	case m.route == RouteUsersTable:
		body = m.usersTable.View()
	default:
		body = m.collection.View()
	}

	footer := styles.Footer.Render("tab switch · ? help · q quit")

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n")
	sb.WriteString(tabBar)
	sb.WriteString("\n")
	sb.WriteString(styles.RenderDivider(m.width))
	sb.WriteString("\n")
	sb.WriteString(styles.Content.Render(body))
	sb.WriteString("\n")
	sb.WriteString(footer)
	return sb.String()
}

// Route returns the active route.
func (m AppModel) Route() Route {
	return m.route
}

// ShowingHelp reports whether the help page is open.
func (m AppModel) ShowingHelp() bool {
	return m.showHelp
}
