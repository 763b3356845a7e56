package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaidar2003/Mockachino/internal/api"
	"github.com/jaidar2003/Mockachino/internal/logging"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// CollectionPageModel shows one collection as a plain record table.
type CollectionPageModel struct {
	ctx        context.Context
	fetcher    api.Fetcher
	collection api.Collection
	title      string
	instance   uint64

	// autoLoad fetches on first activation; otherwise the page waits for r.
	autoLoad  bool
	activated bool

	records  []api.Record
	loaded   bool
	inFlight int
	err      string

	viewport viewport.Model
	spinner  spinner.Model
	styles   Styles
	width    int
	height   int
}

// NewCollectionPageModel creates a page for collection.
func NewCollectionPageModel(ctx context.Context, f api.Fetcher, c api.Collection, title string, autoLoad bool, instance uint64, styles Styles) CollectionPageModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := CollectionPageModel{
		ctx:        ctx,
		fetcher:    f,
		collection: c,
		title:      title,
		instance:   instance,
		autoLoad:   autoLoad,
		viewport:   viewport.New(DefaultWidth, ContentHeight(DefaultHeight)-PageTitleHeight-StatusLineHeight),
		spinner:    sp,
		styles:     styles,
	}
	m.refreshContent()
	return m
}

// Activate is called when the page becomes visible.
func (m *CollectionPageModel) Activate() tea.Cmd {
	if m.activated {
		return nil
	}
	m.activated = true
	if m.autoLoad {
		return m.Load()
	}
	return nil
}

// Load starts a fresh fetch, even when one is already in flight.
func (m *CollectionPageModel) Load() tea.Cmd {
	m.inFlight++
	m.err = ""
	logging.UIDebug("%s page: load requested (%d in flight)", m.collection, m.inFlight)
	return tea.Batch(
		fetchRecordsCmd(m.ctx, m.fetcher, m.collection, m.instance),
		m.spinner.Tick,
	)
}

// Update handles messages.
func (m CollectionPageModel) Update(msg tea.Msg) (CollectionPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		if msg.instance != m.instance || msg.collection != m.collection {
			return m, nil
		}
		if m.inFlight > 0 {
			m.inFlight--
		}
		if msg.err != nil {
			m.err = fmt.Sprintf("Error loading %s", m.collection)
			logging.Get(logging.CategoryUI).Errorf("%s page: %v", m.collection, msg.err)
		} else {
			m.records = msg.records
			m.loaded = true
			m.err = ""
		}
		m.refreshContent()
		return m, nil

	case spinner.TickMsg:
		if !m.IsLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "r", "enter":
			return m, m.Load()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// refreshContent re-renders the records into the viewport.
func (m *CollectionPageModel) refreshContent() {
	switch {
	case !m.loaded:
		m.viewport.SetContent(m.styles.Muted.Render(fmt.Sprintf("Press r to load %s.", m.collection)))
	case len(m.records) == 0:
		m.viewport.SetContent(m.styles.Warning.Render(fmt.Sprintf("No %s found.", m.collection)))
	default:
		m.viewport.SetContent(NewRecordTable("", m.records).View(m.styles))
	}
}

// SetSize updates the size of the viewport.
func (m *CollectionPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h - PageTitleHeight - StatusLineHeight
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
}

// SetStyles swaps the page styles.
func (m *CollectionPageModel) SetStyles(styles Styles) {
	m.styles = styles
	m.spinner.Style = styles.Spinner
	m.refreshContent()
}

// View renders the page.
func (m CollectionPageModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render(m.title))
	sb.WriteString("\n")

	switch {
	case m.IsLoading():
		sb.WriteString(m.spinner.View() + " " + m.styles.Muted.Render(fmt.Sprintf("Loading %s...", m.collection)))
	case m.err != "":
		sb.WriteString(m.styles.Error.Render(m.err))
	case m.loaded:
		sb.WriteString(m.styles.Success.Render(fmt.Sprintf("%d %s", len(m.records), m.collection)))
	}
	sb.WriteString("\n")

	sb.WriteString(m.viewport.View())
	return sb.String()
}

// IsLoading reports whether any fetch for this page is outstanding.
func (m CollectionPageModel) IsLoading() bool {
	return m.inFlight > 0
}

// Records returns the last successfully loaded records.
func (m CollectionPageModel) Records() []api.Record {
	return m.records
}

// Error returns the message of the last failed load, or "".
func (m CollectionPageModel) Error() string {
	return m.err
}
