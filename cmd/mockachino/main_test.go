package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jaidar2003/Mockachino/cmd/mockachino/ui"
	"github.com/jaidar2003/Mockachino/internal/api"
	"github.com/jaidar2003/Mockachino/internal/config"
	"github.com/jaidar2003/Mockachino/internal/tableview"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func usersBody(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf(`{"first_name":"F%02d","last_name":"L%02d","email":"e%02d@x.io","date_of_birth":"2000-01-01"}`, i, i, i)
	}
	return `{"status":"ok","data":[` + strings.Join(parts, ",") + `]}`
}

// newBackend serves 23 users in an envelope, two bare persons and a failing
// contacts endpoint.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users":
			_, _ = w.Write([]byte(usersBody(23)))
		case "/persons":
			_, _ = w.Write([]byte(`[{"name":"Ada","age":36},{"name":"Grace","age":85}]`))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// setup points the global flags at srv and a throwaway config path.
func setup(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	for _, env := range []string{"MOCKACHINO_BASE_URL", "MOCKACHINO_TIMEOUT", "MOCKACHINO_PAGE_SIZE", "MOCKACHINO_DARK_MODE", "MOCKACHINO_DEBUG"} {
		t.Setenv(env, "")
	}

	logger = zap.NewNop()
	configPath = filepath.Join(t.TempDir(), "config.yaml")
	baseURL = ""
	if srv != nil {
		baseURL = srv.URL
	}
	outputFormat = outputTable
	sortColumn = string(tableview.ColumnFirstName)
	sortDesc = false
	pageNumber = 1
	pageSize = 0
	tableOut = outputTable
	forceInit = false

	t.Cleanup(func() {
		configPath = ""
		baseURL = ""
	})
	return configPath
}

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestCollectionCommand_Table(t *testing.T) {
	setup(t, newBackend(t))
	cmd, out := newTestCmd()

	require.NoError(t, runCollection(cmd, api.CollectionPersons))

	got := out.String()
	assert.Contains(t, got, "Persons")
	assert.Contains(t, got, "name")
	assert.Contains(t, got, "Grace")
	assert.Contains(t, got, "2 records")
	assert.Less(t, strings.Index(got, "name"), strings.Index(got, "age"), "columns keep backend key order")
}

func TestCollectionCommand_JSON(t *testing.T) {
	setup(t, newBackend(t))
	outputFormat = outputJSON
	cmd, out := newTestCmd()

	require.NoError(t, runCollection(cmd, api.CollectionUsers))

	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &users))
	assert.Len(t, users, 23)
	assert.Equal(t, "F00", users[0]["first_name"])
}

func TestCollectionCommand_YAML(t *testing.T) {
	setup(t, newBackend(t))
	outputFormat = outputYAML
	cmd, out := newTestCmd()

	require.NoError(t, runCollection(cmd, api.CollectionPersons))

	var persons []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &persons))
	require.Len(t, persons, 2)
	assert.Equal(t, "Ada", persons[0]["name"])
	assert.Less(t, strings.Index(out.String(), "name"), strings.Index(out.String(), "age"))
}

func TestCollectionCommand_TransportError(t *testing.T) {
	setup(t, newBackend(t))
	cmd, _ := newTestCmd()

	err := runCollection(cmd, api.CollectionContacts)
	require.Error(t, err)

	var te *api.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
	assert.Equal(t, api.CollectionContacts, te.Collection)
}

func TestCollectionCommand_UnknownOutput(t *testing.T) {
	setup(t, newBackend(t))
	outputFormat = "xml"
	cmd, _ := newTestCmd()

	err := runCollection(cmd, api.CollectionUsers)
	assert.ErrorContains(t, err, "unknown output format")
}

func TestUsersTableCommand_LastPage(t *testing.T) {
	setup(t, newBackend(t))
	pageNumber = 3
	cmd, out := newTestCmd()

	require.NoError(t, runUsersTable(cmd, nil))

	got := out.String()
	assert.Contains(t, got, "21-23 of 23")
	assert.Contains(t, got, "Pages: 1 2 [3]")
	assert.Contains(t, got, "F22")
	assert.NotContains(t, got, "F19")
}

func TestUsersTableCommand_SortDescending(t *testing.T) {
	setup(t, newBackend(t))
	sortColumn = string(tableview.ColumnLastName)
	sortDesc = true
	pageSize = 5
	tableOut = outputJSON
	cmd, out := newTestCmd()

	require.NoError(t, runUsersTable(cmd, nil))

	var page []tableview.User
	require.NoError(t, json.Unmarshal(out.Bytes(), &page))
	require.Len(t, page, 5)
	assert.Equal(t, "L22", page[0].LastName)
	assert.Equal(t, "L18", page[4].LastName)
}

func TestUsersTableCommand_FirstNameDescending(t *testing.T) {
	setup(t, newBackend(t))
	sortDesc = true
	tableOut = outputJSON
	cmd, out := newTestCmd()

	require.NoError(t, runUsersTable(cmd, nil))

	var page []tableview.User
	require.NoError(t, json.Unmarshal(out.Bytes(), &page))
	require.NotEmpty(t, page)
	assert.Equal(t, "F22", page[0].FirstName)
}

func TestUsersTableCommand_Errors(t *testing.T) {
	t.Run("page out of range", func(t *testing.T) {
		setup(t, newBackend(t))
		pageNumber = 4
		cmd, _ := newTestCmd()
		assert.ErrorContains(t, runUsersTable(cmd, nil), "out of range (1-3)")
	})

	t.Run("unknown column", func(t *testing.T) {
		setup(t, newBackend(t))
		sortColumn = "age"
		cmd, _ := newTestCmd()
		assert.ErrorIs(t, runUsersTable(cmd, nil), tableview.ErrUnknownColumn)
	})

	t.Run("negative page size", func(t *testing.T) {
		setup(t, newBackend(t))
		pageSize = -1
		cmd, _ := newTestCmd()
		assert.ErrorContains(t, runUsersTable(cmd, nil), "invalid page size")
	})
}

func TestFetchAllCommand(t *testing.T) {
	setup(t, newBackend(t))
	cmd, out := newTestCmd()

	require.NoError(t, runFetchAll(cmd, []string{"users", "persons"}))
	assert.Contains(t, out.String(), "users      23")
	assert.Contains(t, out.String(), "persons    2")
}

func TestFetchAllCommand_FailureFailsAll(t *testing.T) {
	setup(t, newBackend(t))
	cmd, _ := newTestCmd()

	err := runFetchAll(cmd, nil)
	require.Error(t, err)
	assert.True(t, api.IsTransportError(err))
}

func TestFetchAllCommand_UnknownCollection(t *testing.T) {
	setup(t, newBackend(t))
	cmd, _ := newTestCmd()

	assert.ErrorIs(t, runFetchAll(cmd, []string{"orders"}), api.ErrUnknownCollection)
}

func TestConfigInitAndShow(t *testing.T) {
	path := setup(t, nil)
	cmd, out := newTestCmd()

	require.NoError(t, runConfigInit(cmd, nil))
	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.Contains(t, out.String(), path)

	assert.ErrorContains(t, runConfigInit(cmd, nil), "already exists")
	forceInit = true
	assert.NoError(t, runConfigInit(cmd, nil))

	baseURL = "http://override.local"
	cmd, out = newTestCmd()
	require.NoError(t, runConfigShow(cmd, nil))

	var shown config.Config
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &shown))
	assert.Equal(t, "http://override.local", shown.API.BaseURL)
	assert.Equal(t, 10, shown.UI.PageSize)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := setup(t, nil)
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  theme: neon\n"), 0644))

	_, err := loadConfig()
	assert.ErrorContains(t, err, "invalid theme")
}

func TestAppOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.UI.Theme = "dark"
	cfg.UI.PageSize = 7
	cfg.UI.DiscardStaleLoads = true

	opts := appOptions(cfg, ui.RoutePersons)
	assert.Equal(t, ui.RoutePersons, opts.InitialRoute)
	assert.Equal(t, 7, opts.PageSize)
	assert.Equal(t, []int{5, 7, 10, 20, 50}, opts.PageSizes)
	assert.True(t, opts.DiscardStale)
	assert.True(t, opts.Styles.Theme.IsDark)
	assert.Equal(t, config.DefaultBaseURL, opts.BaseURL)
}
