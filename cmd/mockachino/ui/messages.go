package ui

import (
	"context"

	"github.com/jaidar2003/Mockachino/internal/api"
	"github.com/jaidar2003/Mockachino/internal/tableview"

	tea "github.com/charmbracelet/bubbletea"
)

// recordsLoadedMsg carries one collection fetch back into the UI loop.
// instance identifies the page that asked; a page that has since been torn
// down never sees it.
type recordsLoadedMsg struct {
	instance   uint64
	collection api.Collection
	records    []api.Record
	err        error
}

// usersLoadedMsg carries a users-table load back into the UI loop.
type usersLoadedMsg struct {
	instance uint64
	gen      tableview.Generation
	users    []tableview.User
	err      error
}

// ConfigReloadedMsg applies a reloaded config to the running UI.
// PageSize is the size new users-table pages start on; zero keeps the
// current one.
type ConfigReloadedMsg struct {
	Styles    Styles
	PageSize  int
	PageSizes []int
}

func fetchRecordsCmd(ctx context.Context, f api.Fetcher, c api.Collection, instance uint64) tea.Cmd {
	return func() tea.Msg {
		records, err := f.Fetch(ctx, c)
		return recordsLoadedMsg{instance: instance, collection: c, records: records, err: err}
	}
}

func loadUsersCmd(ctx context.Context, load tableview.LoadFunc, gen tableview.Generation, instance uint64) tea.Cmd {
	return func() tea.Msg {
		users, err := load(ctx)
		return usersLoadedMsg{instance: instance, gen: gen, users: users, err: err}
	}
}
