package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/exlogs/internal/client"
	"github.com/watchfire-io/exlogs/internal/config"
	"github.com/watchfire-io/exlogs/internal/models"
	"github.com/watchfire-io/exlogs/internal/query"
)

const pageJSON = `{
  "data": [
    {
      "id": 17,
      "timestamp": "2024-03-13T10:15:00Z",
      "statusCode": 404,
      "ip": "10.0.0.7",
      "path": "/api/users/9",
      "method": "GET",
      "payload": {"q": 1},
      "message": "User not found",
      "count": 3,
      "stack": null,
      "controllerName": "UsersController",
      "handlerName": "findOne"
    }
  ],
  "total": 41
}`

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func serve(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &rawQuery
}

func TestListDryRunPrintsURL(t *testing.T) {
	isolate(t)

	out, err := execute(t, "list", "--endpoint", "http://example.test/api/exception-logs",
		"--status", "404", "--method", "post", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t,
		"http://example.test/api/exception-logs?statusCode=404&method=POST&page=1&limit=10&sortBy=timestamp&sortOrder=DESC\n",
		out)
}

func TestListSortAndPageFlags(t *testing.T) {
	isolate(t)

	out, err := execute(t, "list", "--endpoint", "http://example.test/logs",
		"--search", "boom", "--sort-by", "Status Code", "--order", "asc", "--page", "3", "--limit", "25", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/logs?search=boom&page=3&limit=25&sortBy=statuscode&sortOrder=ASC\n", out)
}

func TestListRendersTable(t *testing.T) {
	isolate(t)
	srv, rawQuery := serve(t, http.StatusOK, pageJSON)

	out, err := execute(t, "list", "--endpoint", srv.URL, "-c", "404")
	require.NoError(t, err)

	assert.Equal(t, "statusCode=404&page=1&limit=10&sortBy=timestamp&sortOrder=DESC", *rawQuery)
	assert.Contains(t, out, "Timestamp ▼")
	assert.Contains(t, out, "Status Code")
	assert.Contains(t, out, "User not found")
	assert.Contains(t, out, `{"q":1}`)
	assert.Contains(t, out, "Page 1 of 5 (41 records)")
}

func TestListEmptyPage(t *testing.T) {
	isolate(t)
	srv, _ := serve(t, http.StatusOK, `{"data": [], "total": 0}`)

	out, err := execute(t, "list", "--endpoint", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "No records found")
	assert.Contains(t, out, "Page 1 of 0 (0 records)")
}

func TestListJSON(t *testing.T) {
	isolate(t)
	srv, _ := serve(t, http.StatusOK, pageJSON)

	out, err := execute(t, "list", "--endpoint", srv.URL, "--json")
	require.NoError(t, err)

	var rs models.ResultSet
	require.NoError(t, json.Unmarshal([]byte(out), &rs))
	assert.Equal(t, 41, rs.Total)
	require.Len(t, rs.Data, 1)
	assert.Equal(t, "17", rs.Data[0].ID.String())
}

func TestListFailsOnServerError(t *testing.T) {
	isolate(t)
	srv, _ := serve(t, http.StatusInternalServerError, `{"message":"down"}`)

	_, err := execute(t, "list", "--endpoint", srv.URL)
	var se *client.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
}

func TestListRejectsUnsortableColumn(t *testing.T) {
	isolate(t)

	_, err := execute(t, "list", "--sort-by", "ip", "--dry-run")
	assert.ErrorIs(t, err, query.ErrNotSortable)

	_, err = execute(t, "list", "--order", "sideways", "--dry-run")
	assert.ErrorContains(t, err, "sort order")
}

func TestRootWithoutTerminalLists(t *testing.T) {
	isolate(t)
	srv, _ := serve(t, http.StatusOK, pageJSON)

	out, err := execute(t, "--endpoint", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Page 1 of 5 (41 records)")
}

func TestConfigInitShowPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "exlogs.yaml")

	out, err := execute(t, "config", "path", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	_, err = execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.True(t, config.FileExists(path))

	_, err = execute(t, "config", "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "config", "init", "--config", path, "--force")
	require.NoError(t, err)

	out, err = execute(t, "config", "show", "--config", path, "--endpoint", "http://flag.test/logs")
	require.NoError(t, err)
	assert.Contains(t, out, "# source: "+path)
	assert.Contains(t, out, "endpoint: http://flag.test/logs")
	assert.Contains(t, out, "page_size: 10")
}

func TestConfigPathDefault(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, config.GlobalDirName, config.SettingsFileName)+"\n", out)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "exlogs")
	assert.Contains(t, out, "OS/Arch")
}
