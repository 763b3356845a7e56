package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jaidar2003/Mockachino/cmd/mockachino/ui"
	"github.com/jaidar2003/Mockachino/internal/api"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Output formats for the print commands.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// outputFormat is the --output flag shared by the print commands.
var outputFormat string

var usersCmd = newCollectionCmd(api.CollectionUsers, "Fetch and print the users collection")

var personsCmd = newCollectionCmd(api.CollectionPersons, "Fetch and print the persons collection")

var contactsCmd = newCollectionCmd(api.CollectionContacts, "Fetch and print the contacts collection")

func newCollectionCmd(c api.Collection, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(c),
		Short: short,
		Long: fmt.Sprintf(`Issues one GET for %s and prints every record.

The response may be a bare array or an object wrapping the array; anything
else prints as an empty collection.`, c),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollection(cmd, c)
		},
	}
	cmd.Flags().StringVarP(&outputFormat, "output", "o", outputTable, "Output format: table, json, yaml")
	return cmd
}

func runCollection(cmd *cobra.Command, c api.Collection) error {
	if err := validateOutput(outputFormat); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client := newClient(cfg)
	logger.Debug("fetching collection", zap.String("collection", string(c)), zap.String("url", client.URL(c)))

	records, err := client.Fetch(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", c, err)
	}
	logger.Debug("fetched collection", zap.String("collection", string(c)), zap.Int("records", len(records)))

	return printRecords(cmd.OutOrStdout(), strings.ToUpper(string(c)[:1])+string(c)[1:], records, outputFormat)
}

func validateOutput(format string) error {
	switch format {
	case outputTable, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (valid: table, json, yaml)", format)
	}
}

// printRecords writes records in the requested format.
func printRecords(w io.Writer, title string, records []api.Record, format string) error {
	if records == nil {
		records = []api.Record{}
	}
	switch format {
	case outputJSON:
		return writeJSON(w, records)
	case outputYAML:
		return writeYAML(w, records)
	}

	if len(records) == 0 {
		fmt.Fprintf(w, "No %s found.\n", strings.ToLower(title))
		return nil
	}
	fmt.Fprint(w, ui.NewRecordTable(title, records).View(ui.NewStyles(ui.LightTheme())))
	fmt.Fprintf(w, "%d records\n", len(records))
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
