package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jaidar2003/Mockachino/cmd/mockachino/ui"
	"github.com/jaidar2003/Mockachino/internal/config"
	"github.com/jaidar2003/Mockachino/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// initialRoute is the --route flag of the root command.
var initialRoute string

// runTUI starts the interactive interface.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	routeName := cfg.UI.InitialRoute
	if initialRoute != "" {
		routeName = initialRoute
	}
	route, err := ui.ParseRoute(routeName)
	if err != nil {
		return err
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Close()
	logging.Boot("starting on %s against %s", route, cfg.API.BaseURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := newClient(cfg)
	model := ui.NewAppModel(ctx, client, appOptions(cfg, route))

	p := tea.NewProgram(model, tea.WithAltScreen())

	// Theme and page sizes follow edits to the config file while running.
	path := resolveConfigPath()
	if _, statErr := os.Stat(filepath.Dir(path)); statErr == nil {
		_, err := config.Watch(ctx, path,
			func(next *config.Config) {
				logging.Get(logging.CategoryConfig).Infof("reloaded %s", path)
				p.Send(ui.ConfigReloadedMsg{
					Styles:    ui.NewStyles(ui.ThemeByName(next.UI.Theme)),
					PageSize:  next.UI.PageSize,
					PageSizes: next.PageSizes(),
				})
			},
			func(err error) {
				logging.ConfigWarn("config watch: %v", err)
			},
		)
		if err != nil {
			logging.ConfigWarn("config hot reload disabled: %v", err)
		}
	}

	_, err = p.Run()
	logging.Boot("exiting")
	return err
}

func appOptions(cfg *config.Config, route ui.Route) ui.AppOptions {
	return ui.AppOptions{
		InitialRoute: route,
		PageSize:     cfg.UI.PageSize,
		PageSizes:    cfg.PageSizes(),
		DiscardStale: cfg.UI.DiscardStaleLoads,
		Styles:       ui.NewStyles(ui.ThemeByName(cfg.UI.Theme)),
		BaseURL:      cfg.API.BaseURL,
	}
}
