package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# Mockachino

Browse the users, persons and contacts collections of the mock backend.

## Navigation

| Key | Action |
|-----|--------|
| tab / shift+tab | next / previous page |
| 1 2 3 4 | Users, Users Table, Persons, Contacts |
| ? | toggle this help |
| q / ctrl+c | quit |

## Users, Persons, Contacts

| Key | Action |
|-----|--------|
| r / enter | fetch the collection again |
| up / down | scroll |

Persons and contacts are fetched when first opened. Users waits for r.

## Users Table

| Key | Action |
|-----|--------|
| f l e d | sort by first name, last name, email, date of birth |
| ← / → | previous / next page |
| home / end | first / last page |
| + / - | larger / smaller page size |
| r | reload |

Sorting the same column twice flips the direction. Dates sort as text, so
ISO 8601 values order correctly.
`

// HelpPageModel renders the key reference as markdown.
type HelpPageModel struct {
	viewport viewport.Model
	styles   Styles
	width    int
}

// NewHelpPageModel creates the help page.
func NewHelpPageModel(styles Styles) HelpPageModel {
	m := HelpPageModel{
		viewport: viewport.New(DefaultWidth, ContentHeight(DefaultHeight)),
		styles:   styles,
		width:    DefaultWidth,
	}
	m.render()
	return m
}

func (m *HelpPageModel) render() {
	style := "light"
	if m.styles.Theme.IsDark {
		style = "dark"
	}
	wrap := m.width - 4
	if wrap < 20 {
		wrap = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.viewport.SetContent(helpMarkdown)
		return
	}
	out, err := renderer.Render(helpMarkdown)
	if err != nil {
		m.viewport.SetContent(helpMarkdown)
		return
	}
	m.viewport.SetContent(strings.TrimSpace(out))
}

// Update handles messages.
func (m HelpPageModel) Update(msg tea.Msg) (HelpPageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// SetSize updates the size of the page and re-wraps the text.
func (m *HelpPageModel) SetSize(w, h int) {
	m.width = w
	m.viewport.Width = w
	m.viewport.Height = h
	m.render()
}

// SetStyles swaps the page styles.
func (m *HelpPageModel) SetStyles(styles Styles) {
	m.styles = styles
	m.render()
}

// View renders the page.
func (m HelpPageModel) View() string {
	return m.viewport.View()
}
