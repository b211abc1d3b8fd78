package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "./dev.db", cfg.Store.DBPath)
	assert.True(t, cfg.Store.AutoMigrate)
	assert.True(t, cfg.Store.SeedOnStartup)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
env: production
server:
  port: 9090
  cors_origins:
    - https://securli.example
store:
  db_path: /var/lib/roi/roi.db
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsDev())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://securli.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "/var/lib/roi/roi.db", cfg.Store.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	// Defaults still apply for unset values
	assert.True(t, cfg.Store.AutoMigrate)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  port: 9090\n"), 0o644))

	t.Setenv("ROI_SERVER_PORT", "7070")
	t.Setenv("ROI_ADMIN_EMAIL", "admin@securli.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "admin@securli.example", cfg.Admin.Email)
}

func TestLoadDotEnvDoesNotOverwriteExistingEnv(t *testing.T) {
	dir := chdirTemp(t)
	content := []byte(`
# comment
ROI_ADMIN_EMAIL=fromfile@securli.example
export ROI_ADMIN_PASSWORD='hello world'
ROI_SERVER_SESSION_SECRET=fromfile
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), content, 0o600))

	t.Setenv("ROI_SERVER_SESSION_SECRET", "already")
	// Registered so t.Setenv restores the previous state after godotenv sets them.
	t.Setenv("ROI_ADMIN_EMAIL", "")
	t.Setenv("ROI_ADMIN_PASSWORD", "")
	require.NoError(t, os.Unsetenv("ROI_ADMIN_EMAIL"))
	require.NoError(t, os.Unsetenv("ROI_ADMIN_PASSWORD"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "fromfile@securli.example", cfg.Admin.Email)
	assert.Equal(t, "hello world", cfg.Admin.Password)
	assert.Equal(t, "already", cfg.Server.SessionSecret)
	assert.Empty(t, cfg.Warnings())
}

func TestWarnings(t *testing.T) {
	cfg := &Config{}
	assert.Len(t, cfg.Warnings(), 3)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))

	assert.Error(t, InitLogger(LogConfig{Level: "loud"}))
}
