package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	cfg.Finalize()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, EngineSQLite, cfg.Database.Engine)
	assert.Equal(t, EmailConsole, cfg.Email.Backend)
	assert.False(t, cfg.Security.SSLRedirect, "debug disables TLS enforcement")
}

func TestApplyEnv_Overrides(t *testing.T) {
	t.Setenv("DEBUG", "false")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("ALLOWED_HOSTS", "callsoso.org, www.callsoso.org ,")
	t.Setenv("DB_ENGINE", "POSTGRES")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/callsoso")
	t.Setenv("EMAIL_PORT", "2525")
	t.Setenv("SECURE_HSTS_SECONDS", "31536000")
	t.Setenv("X_FRAME_OPTIONS", "SAMEORIGIN")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	cfg.Finalize()
	require.NoError(t, cfg.Validate())

	assert.False(t, cfg.Debug)
	assert.Equal(t, []string{"callsoso.org", "www.callsoso.org"}, cfg.AllowedHosts)
	assert.Equal(t, EnginePostgres, cfg.Database.Engine)
	assert.Equal(t, 2525, cfg.Email.Port)
	assert.Equal(t, int64(31536000), cfg.Security.HSTSSeconds)
	assert.Equal(t, "SAMEORIGIN", cfg.Security.FrameOptions)
	assert.True(t, cfg.Security.SSLRedirect)
}

func TestApplyEnv_BadValues(t *testing.T) {
	t.Setenv("DEBUG", "maybe")
	t.Setenv("EMAIL_PORT", "smtp")

	err := Default().ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEBUG")
	assert.Contains(t, err.Error(), "EMAIL_PORT")
}

func TestValidate_RequiresSecretKeyInProduction(t *testing.T) {
	cfg := Default()
	cfg.Debug = false
	cfg.Finalize()
	assert.ErrorContains(t, cfg.Validate(), "SECRET_KEY")

	cfg.SecretKey = "real-key"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Engines(t *testing.T) {
	cfg := Default()
	cfg.Database.Engine = EnginePostgres
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")

	cfg.Database.Engine = EngineMySQL
	assert.ErrorContains(t, cfg.Validate(), "mysql engine")
	cfg.Database.URL = "u:p@tcp(db:3306)/callsoso"
	assert.NoError(t, cfg.Validate())

	cfg.Database.Engine = "oracle"
	assert.ErrorContains(t, cfg.Validate(), "unsupported")

	cfg = Default()
	cfg.Email.Backend = EmailSMTP
	assert.ErrorContains(t, cfg.Validate(), "EMAIL_HOST")
}

func TestLoadFile_OverlaysPresentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "callsoso.yaml")
	content := `
port: "9000"
database:
  engine: postgres
  url: postgres://localhost/callsoso
email:
  contact: hello@callsoso.org
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := Default()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, EnginePostgres, cfg.Database.Engine)
	assert.Equal(t, "hello@callsoso.org", cfg.Email.Contact)
	// untouched keys keep their defaults
	assert.Equal(t, 587, cfg.Email.Port)
	assert.Equal(t, "Call Soso <noreply@callsoso.org>", cfg.Email.From)
}
