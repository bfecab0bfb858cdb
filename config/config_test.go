package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joshnies/pocket/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(constants.APIHostEnvVar, "")
	return home
}

func TestLoad_CreatesDefaultConfig(t *testing.T) {
	home := setHome(t)
	cpath := filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName)

	cfg, err := Load(cpath)
	require.NoError(t, err)
	assert.FileExists(t, cpath)

	assert.Equal(t, EnvPrd, cfg.Env)
	assert.Equal(t, "https://api.pocketpay.app", cfg.API.Host)
	assert.Equal(t, StoreDriverFile, cfg.Store.Driver)
	assert.Equal(t, filepath.Join(home, constants.ConfigDirName, constants.StoreFileName), cfg.Store.Path)
	assert.True(t, cfg.UploadProgress)

	// The derived API host isn't written back
	data, err := os.ReadFile(cpath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "pocketpay.app")
}

func TestLoad_Environment(t *testing.T) {
	home := setHome(t)
	cpath := filepath.Join(home, "config.yml")
	require.NoError(t, os.WriteFile(cpath, []byte("env: lcl\n"), 0644))

	cfg, err := Load(cpath)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", cfg.API.Host)

	t.Setenv(constants.APIHostEnvVar, "http://127.0.0.1:1234")
	cfg, err = Load(cpath)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:1234", cfg.API.Host)
}

func TestLoad_RedisStore(t *testing.T) {
	home := setHome(t)
	cpath := filepath.Join(home, "config.yml")
	require.NoError(t, os.WriteFile(cpath, []byte("store:\n  driver: redis\n  redis_url: redis://localhost:6379/0\n"), 0644))

	cfg, err := Load(cpath)
	require.NoError(t, err)
	assert.Equal(t, StoreDriverRedis, cfg.Store.Driver)
	assert.Equal(t, "pocket:", cfg.Store.RedisPrefix)
	assert.Empty(t, cfg.Store.Path)
}

func TestLoad_Invalid(t *testing.T) {
	home := setHome(t)

	tests := map[string]string{
		"bad yaml":        "store: [",
		"unknown driver":  "store:\n  driver: sqlite\n",
		"redis needs url": "store:\n  driver: redis\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			cpath := filepath.Join(home, name+".yml")
			require.NoError(t, os.WriteFile(cpath, []byte(content), 0644))

			_, err := Load(cpath)
			assert.Error(t, err)
		})
	}
}

func TestSave_KeepsExplicitHost(t *testing.T) {
	home := setHome(t)
	cpath := filepath.Join(home, "config.yml")

	cfg := Default()
	cfg.API.Host = "https://pocket.internal"
	require.NoError(t, Save(cpath, cfg))

	loaded, err := Load(cpath)
	require.NoError(t, err)
	assert.Equal(t, "https://pocket.internal", loaded.API.Host)
}

func TestValidate(t *testing.T) {
	cfg := Config{API: APIConfig{Host: "http://x"}, Store: StoreConfig{Driver: StoreDriverMemory}}
	assert.NoError(t, Validate(cfg))

	cfg.API.Host = ""
	assert.Error(t, Validate(cfg))

	cfg = Config{API: APIConfig{Host: "http://x"}, Store: StoreConfig{Driver: StoreDriverFile}}
	assert.Error(t, Validate(cfg))
}

func TestLoad_GoogleDefaults(t *testing.T) {
	home := setHome(t)
	cpath := filepath.Join(home, "config.yml")
	require.NoError(t, os.WriteFile(cpath, []byte("google:\n  callback_port: 4242\n"), 0644))

	cfg, err := Load(cpath)
	require.NoError(t, err)
	assert.Equal(t, constants.GoogleClientID, cfg.Google.ClientID)
	assert.Equal(t, constants.GoogleAuthURL, cfg.Google.AuthURL)
	assert.Equal(t, constants.GoogleTokenURL, cfg.Google.TokenURL)
	assert.Equal(t, 4242, cfg.Google.CallbackPort)

	require.NoError(t, Save(cpath, cfg))
	data, err := os.ReadFile(cpath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), constants.GoogleClientID)
	assert.Contains(t, string(data), "callback_port: 4242")

	require.NoError(t, os.WriteFile(cpath, []byte("google:\n  callback_port: 70000\n"), 0644))
	_, err = Load(cpath)
	assert.ErrorContains(t, err, "callback_port")
}
