package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, defaultRequestTimeout, cfg.HTTP.RequestTimeout)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.TokenTTL)
	require.NotNil(t, cfg.Posts)
	assert.Equal(t, 10, cfg.Posts.DefaultPageSize)
	assert.Equal(t, 100, cfg.Posts.MaxPageSize)
	assert.False(t, cfg.Posts.OwnerOnly)
	require.NotNil(t, cfg.Storage)
	assert.Equal(t, "/uploads", cfg.Storage.PublicPrefix)
	assert.EqualValues(t, DefaultMaxUploadSize, cfg.Storage.MaxUploadSize)
	require.NotNil(t, cfg.Migration)
	require.NotNil(t, cfg.Worker)
	assert.Equal(t, defaultWorkerPort, cfg.Worker.Port)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Auth:  &AuthConfig{BcryptCost: 12, TokenTTL: time.Hour},
		Posts: &PostsConfig{DefaultPageSize: 5, MaxPageSize: 20, OwnerOnly: true},
	}
	cfg.ApplyDefaults()

	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5, cfg.Posts.DefaultPageSize)
	assert.Equal(t, 20, cfg.Posts.MaxPageSize)
	assert.True(t, cfg.Posts.OwnerOnly)
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
env:
  serviceName: blog
  log:
    level: info
http:
  port: 7530
secretKey:
  access: from-file
posts:
  maxPageSize: 50
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), content, 0o600))

	t.Chdir(dir)
	t.Setenv("SECRETKEY_ACCESS", "from-env")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, "blog", cfg.Env.ServiceName)
	assert.Equal(t, 7530, cfg.HTTP.Port)
	assert.Equal(t, "from-env", cfg.SecretKey.Access)
	require.NotNil(t, cfg.Posts)
	assert.Equal(t, 50, cfg.Posts.MaxPageSize)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file missing.yaml not found")
}
