package configs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `server:
  port: 8080
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 0
  idle_timeout: 60
log:
  level: debug
auth:
  jwt_secret: dev-secret-change-me-please
  admin_role: admin
  token_query_param: token
analytics:
  activity_window_seconds: 300
  activity_cap: 300
  top_pages_limit: 10
  bucket_retention_hours: 25
  stream_interval_seconds: 10
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "test_config_*.yml")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	_, err = tmpfile.WriteString(content)
	require.NoError(t, err)
	tmpfile.Close()

	return tmpfile.Name()
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	path := writeTempConfig(t, validConfigYAML)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 0, cfg.Server.WriteTimeout, "write timeout 0 is valid so event streams are not cut off")
	assert.Equal(t, 60, cfg.Server.IdleTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "admin", cfg.Auth.AdminRole)
	assert.Equal(t, "token", cfg.Auth.TokenQueryParam)
	assert.Equal(t, 300, cfg.Analytics.ActivityWindowSeconds)
	assert.Equal(t, 300, cfg.Analytics.ActivityCap)
	assert.Equal(t, 10, cfg.Analytics.TopPagesLimit)
	assert.Equal(t, 25, cfg.Analytics.BucketRetentionHours)
	assert.Equal(t, 10, cfg.Analytics.StreamIntervalSeconds)
}

func TestLoadConfig_MissingPort(t *testing.T) {
	invalidConfig := `server:
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 0
  idle_timeout: 60
log:
  level: debug
auth:
  jwt_secret: dev-secret-change-me-please
  admin_role: admin
  token_query_param: token
analytics:
  activity_window_seconds: 300
  activity_cap: 300
  top_pages_limit: 10
  bucket_retention_hours: 25
  stream_interval_seconds: 10
`
	path := writeTempConfig(t, invalidConfig)

	cfg, err := LoadConfig(path)
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "port")
}

func TestLoadConfig_ShortJWTSecret(t *testing.T) {
	invalidConfig := `server:
  port: 8080
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 0
  idle_timeout: 60
log:
  level: info
auth:
  jwt_secret: short
  admin_role: admin
  token_query_param: token
analytics:
  activity_window_seconds: 300
  activity_cap: 300
  top_pages_limit: 10
  bucket_retention_hours: 25
  stream_interval_seconds: 10
`
	path := writeTempConfig(t, invalidConfig)

	cfg, err := LoadConfig(path)
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "auth.jwtsecret")
}

func TestLoadConfig_RetentionBelowReportedWindow(t *testing.T) {
	invalidConfig := `server:
  port: 8080
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 0
  idle_timeout: 60
log:
  level: info
auth:
  jwt_secret: dev-secret-change-me-please
  admin_role: admin
  token_query_param: token
analytics:
  activity_window_seconds: 300
  activity_cap: 300
  top_pages_limit: 10
  bucket_retention_hours: 24
  stream_interval_seconds: 10
`
	path := writeTempConfig(t, invalidConfig)

	cfg, err := LoadConfig(path)
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "bucketretentionhours")
}

func TestLoadConfig_InvalidPortRange(t *testing.T) {
	invalidConfig := `server:
  port: 70000
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 0
  idle_timeout: 60
log:
  level: info
auth:
  jwt_secret: dev-secret-change-me-please
  admin_role: admin
  token_query_param: token
analytics:
  activity_window_seconds: 300
  activity_cap: 300
  top_pages_limit: 10
  bucket_retention_hours: 25
  stream_interval_seconds: 10
`
	path := writeTempConfig(t, invalidConfig)

	cfg, err := LoadConfig(path)
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "port")
}
