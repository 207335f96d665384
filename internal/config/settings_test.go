package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/exlogs/internal/models"
)

// isolate points HOME and the working directory at a fresh temp dir so no real
// settings or .env file leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestDefaultsWithoutSettingsFile(t *testing.T) {
	isolate(t)

	l, err := NewLoader(Options{})
	require.NoError(t, err)
	assert.Empty(t, l.ConfigFile())

	s, err := l.Settings()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultEndpoint, s.Endpoint)
	assert.Equal(t, 10, s.PageSize)
	assert.Equal(t, 10*time.Second, s.Timeout)
	assert.Equal(t, models.DefaultTimeFormat, s.TimeFormat)
	assert.Equal(t, "system", s.Appearance.Theme)
}

func TestSettingsFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
endpoint: http://localhost:3000/api/exception-logs
timeout: 3s
page_size: 25
timezone: UTC
headers:
  Authorization: Bearer abc
`), 0644))

	l, err := NewLoader(Options{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, path, l.ConfigFile())

	s, err := l.Settings()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/api/exception-logs", s.Endpoint)
	assert.Equal(t, 3*time.Second, s.Timeout)
	assert.Equal(t, 25, s.PageSize)
	assert.Equal(t, time.UTC, s.Location())
	assert.Equal(t, "Bearer abc", s.Headers["authorization"])
}

func TestMissingExplicitFileFails(t *testing.T) {
	dir := isolate(t)
	_, err := NewLoader(Options{ConfigFile: filepath.Join(dir, "nope.yaml")})
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("EXLOGS_PAGE_SIZE", "50")

	l, err := NewLoader(Options{})
	require.NoError(t, err)
	s, err := l.Settings()
	require.NoError(t, err)
	assert.Equal(t, 50, s.PageSize)
}

func TestEnvHeaders(t *testing.T) {
	isolate(t)
	t.Setenv("EXLOGS_HEADERS", "Authorization=Bearer env, X-Team=core")

	l, err := NewLoader(Options{})
	require.NoError(t, err)
	s, err := l.Settings()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Authorization": "Bearer env", "X-Team": "core"}, s.Headers)
}

func TestEnvHeadersMalformed(t *testing.T) {
	isolate(t)
	t.Setenv("EXLOGS_HEADERS", "Authorization")

	l, err := NewLoader(Options{})
	require.NoError(t, err)
	_, err = l.Settings()
	assert.ErrorContains(t, err, "Name=Value")
}

func TestParseHeaders(t *testing.T) {
	h, err := ParseHeaders("")
	require.NoError(t, err)
	assert.Empty(t, h)

	h, err = ParseHeaders("A=1,,B = x=y ")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "x=y"}, h)

	_, err = ParseHeaders("=oops")
	assert.Error(t, err)
}

func TestDotEnvFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EXLOGS_ENDPOINT=http://dotenv.local/logs\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("EXLOGS_ENDPOINT") })

	l, err := NewLoader(Options{})
	require.NoError(t, err)
	s, err := l.Settings()
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv.local/logs", s.Endpoint)
}

func TestFlagOverridesEverything(t *testing.T) {
	isolate(t)
	t.Setenv("EXLOGS_ENDPOINT", "http://env.local/logs")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("endpoint", "", "")
	require.NoError(t, fs.Parse([]string{"--endpoint", "http://flag.local/logs"}))

	l, err := NewLoader(Options{})
	require.NoError(t, err)
	require.NoError(t, l.BindPFlag("endpoint", fs.Lookup("endpoint")))

	s, err := l.Settings()
	require.NoError(t, err)
	assert.Equal(t, "http://flag.local/logs", s.Endpoint)
}

func TestInvalidPageSize(t *testing.T) {
	isolate(t)
	t.Setenv("EXLOGS_PAGE_SIZE", "0")

	l, err := NewLoader(Options{})
	require.NoError(t, err)
	_, err = l.Settings()
	assert.ErrorContains(t, err, "page_size")
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", SettingsFileName)

	s := models.NewSettings()
	s.PageSize = 100
	require.NoError(t, Save(path, s))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")

	l, err := NewLoader(Options{ConfigFile: path})
	require.NoError(t, err)
	got, err := l.Settings()
	require.NoError(t, err)
	assert.Equal(t, 100, got.PageSize)
	assert.Equal(t, s.Timeout, got.Timeout)
}

type watchResult struct {
	settings *models.Settings
	err      error
}

// waitFor drains watch results until match accepts one or the timeout passes.
func waitFor(t *testing.T, ch <-chan watchResult, match func(watchResult) bool) watchResult {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case r := <-ch:
			if match(r) {
				return r
			}
		case <-timeout:
			t.Fatal("no matching settings change before timeout")
			return watchResult{}
		}
	}
}

func TestWatchReloadsSettings(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, SettingsFileName)
	require.NoError(t, Save(path, models.NewSettings()))

	l, err := NewLoader(Options{ConfigFile: path})
	require.NoError(t, err)

	changes := make(chan watchResult, 16)
	l.Watch(func(s *models.Settings, err error) {
		select {
		case changes <- watchResult{s, err}:
		default:
		}
	})

	updated := models.NewSettings()
	updated.Endpoint = "http://reloaded.local/logs"
	require.NoError(t, SaveYAML(path, updated))
	r := waitFor(t, changes, func(r watchResult) bool {
		return r.err == nil && r.settings.Endpoint == updated.Endpoint
	})
	assert.Equal(t, updated.PageSize, r.settings.PageSize)

	broken := models.NewSettings()
	broken.PageSize = 0
	require.NoError(t, SaveYAML(path, broken))
	r = waitFor(t, changes, func(r watchResult) bool { return r.err != nil })
	assert.ErrorContains(t, r.err, "page_size")
	assert.Nil(t, r.settings)
}

func TestWatchWithoutSettingsFile(t *testing.T) {
	isolate(t)

	l, err := NewLoader(Options{})
	require.NoError(t, err)
	called := false
	l.Watch(func(*models.Settings, error) { called = true })
	assert.False(t, called)
}
