package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Browse.PageSize)
	assert.Equal(t, 300*time.Millisecond, cfg.Browse.SearchDebounce)
	assert.True(t, cfg.UI.ShowMatchReason)
	assert.False(t, cfg.IsConfigured())
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := `catalog:
  file: /data/movies.yaml
  watch: true
browse:
  page_size: 20
  search_debounce: 150ms
opener:
  command: firefox
  args: ["--new-tab"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))
	t.Setenv("CINEPHILE_BROWSE_PAGE_SIZE", "25")
	t.Setenv("CINEPHILE_UI_SHOW_MATCH_REASON", "false")

	cfg, err := loadConfig(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "/data/movies.yaml", cfg.Catalog.File)
	assert.True(t, cfg.Catalog.Watch)
	assert.True(t, cfg.IsConfigured())
	assert.Equal(t, 25, cfg.Browse.PageSize, "env overrides file")
	assert.Equal(t, 150*time.Millisecond, cfg.Browse.SearchDebounce)
	assert.False(t, cfg.UI.ShowMatchReason)
	assert.Equal(t, "firefox", cfg.Opener.Command)
	assert.Equal(t, []string{"--new-tab"}, cfg.Opener.Args)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero page size", "browse:\n  page_size: 0\n"},
		{"negative debounce", "browse:\n  search_debounce: -1s\n"},
		{"unknown level", "logging:\n  level: loud\n"},
		{"malformed yaml", "browse: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(tt.content), 0644))
			_, err := loadConfig(viper.New(), dir)
			assert.Error(t, err)
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Catalog.File = "/data/movies.json"
	cfg.Browse.SearchDebounce = 500 * time.Millisecond

	require.NoError(t, saveConfig(viper.New(), cfg, dir))

	loaded, err := loadConfig(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "/data/movies.json", loaded.Catalog.File)
	assert.Equal(t, 500*time.Millisecond, loaded.Browse.SearchDebounce)
}

func TestSetupLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cinephile.log")
	logger, err := SetupLogger(&LoggingConfig{File: path, Level: "debug"})
	require.NoError(t, err)

	logger.Debug("catalog loaded", "count", 3)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "catalog loaded", entry["msg"])
	assert.Equal(t, float64(3), entry["count"])

	_, err = SetupLogger(&LoggingConfig{})
	assert.Error(t, err)
}

func TestNewJSONLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

type call struct {
	name string
	args []string
}

func newTestLauncher(command string, args []string, goos string, inPath bool) (*Launcher, *[]call) {
	var calls []call
	l := NewLauncher(command, args, NullLogger())
	l.goos = goos
	l.lookPath = func(file string) (string, error) {
		if inPath {
			return "/usr/bin/" + file, nil
		}
		return "", errors.New("not found")
	}
	l.start = func(name string, args ...string) error {
		calls = append(calls, call{name, args})
		return nil
	}
	return l, &calls
}

func TestLauncher_Open(t *testing.T) {
	const link = "https://www.youtube.com/watch?v=roja"

	tests := []struct {
		name    string
		command string
		args    []string
		goos    string
		inPath  bool
		want    call
	}{
		{"linux default", "", nil, "linux", true, call{"xdg-open", []string{link}}},
		{"darwin default", "", nil, "darwin", true, call{"open", []string{link}}},
		{"windows default", "", nil, "windows", true, call{"cmd", []string{"/c", "start", "", link}}},
		{"configured", "firefox", []string{"--new-tab"}, "linux", true, call{"firefox", []string{"--new-tab", link}}},
		{"darwin app bundle", "Safari", nil, "darwin", false, call{"open", []string{"-a", "Safari", link}}},
		{"darwin app with args", "Firefox", []string{"-private"}, "darwin", false,
			call{"open", []string{"-a", "Firefox", "--args", "-private", link}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, calls := newTestLauncher(tt.command, tt.args, tt.goos, tt.inPath)
			require.NoError(t, l.Open(link))
			require.Len(t, *calls, 1)
			assert.Equal(t, tt.want, (*calls)[0])
		})
	}
}

func TestLauncher_RejectsNonWebLinks(t *testing.T) {
	for _, link := range []string{"", "file:///etc/passwd", "--help", "javascript:alert(1)"} {
		l, calls := newTestLauncher("", nil, "linux", true)
		assert.Error(t, l.Open(link), link)
		assert.Empty(t, *calls)
	}
}
