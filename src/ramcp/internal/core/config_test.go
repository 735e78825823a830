package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestNewConfig(t *testing.T) {
	t.Run("loads listed files and layers them", func(t *testing.T) {
		dir := writeConfigDir(t, map[string]string{
			"meta.yaml":  "files:\n  - base.yaml\n  - local.yaml\n",
			"base.yaml":  "logging:\n  level: info\nanalyzer:\n  socket: /tmp/lspmux.sock\n",
			"local.yaml": "logging:\n  level: debug\n",
		})
		t.Setenv("RAMCP_CONFIG_DIR", dir)

		provider, err := NewConfig()
		require.NoError(t, err)
		require.NotNil(t, provider)

		cfg := provider.(Config)
		assert.Equal(t, "config", cfg.Name())
		assert.Equal(t, "debug", cfg.Get("logging.level").String())
		assert.Equal(t, "/tmp/lspmux.sock", cfg.Get("analyzer.socket").String())
	})

	t.Run("skips missing layers", func(t *testing.T) {
		dir := writeConfigDir(t, map[string]string{
			"meta.yaml": "files:\n  - base.yaml\n  - local.yaml\n",
			"base.yaml": "logging:\n  level: info\n",
		})
		t.Setenv("RAMCP_CONFIG_DIR", dir)

		provider, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, "info", provider.Get("logging.level").String())
	})

	t.Run("expands environment variables with defaults", func(t *testing.T) {
		dir := writeConfigDir(t, map[string]string{
			"meta.yaml": "files:\n  - base.yaml\n",
			"base.yaml": "analyzer:\n  socket: ${RAMCP_TEST_SOCKET:/tmp/default.sock}\n",
		})
		t.Setenv("RAMCP_CONFIG_DIR", dir)

		provider, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/default.sock", provider.Get("analyzer.socket").String())

		t.Setenv("RAMCP_TEST_SOCKET", "/run/user/1000/lspmux.sock")
		provider, err = NewConfig()
		require.NoError(t, err)
		assert.Equal(t, "/run/user/1000/lspmux.sock", provider.Get("analyzer.socket").String())
	})

	t.Run("fails when config directory doesn't exist", func(t *testing.T) {
		t.Setenv("RAMCP_CONFIG_DIR", "/nonexistent/path")
		provider, err := NewConfig()
		assert.Error(t, err)
		assert.Nil(t, provider)
	})

	t.Run("fails when no listed file exists", func(t *testing.T) {
		dir := writeConfigDir(t, map[string]string{
			"meta.yaml": "files:\n  - base.yaml\n",
		})
		t.Setenv("RAMCP_CONFIG_DIR", dir)

		provider, err := NewConfig()
		assert.Error(t, err)
		assert.Nil(t, provider)
	})
}

func TestGetConfigDir(t *testing.T) {
	tests := []struct {
		name           string
		setupEnv       func()
		expectedResult string
	}{
		{
			name: "returns environment variable when set",
			setupEnv: func() {
				os.Setenv("RAMCP_CONFIG_DIR", "/custom/config/path")
			},
			expectedResult: "/custom/config/path",
		},
		{
			name: "returns default path when environment variable not set",
			setupEnv: func() {
				os.Unsetenv("RAMCP_CONFIG_DIR")
			},
			expectedResult: "src/ramcp/config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupEnv()
			t.Cleanup(func() {
				os.Unsetenv("RAMCP_CONFIG_DIR")
			})

			result := getConfigDir()
			assert.Equal(t, tt.expectedResult, result)
		})
	}
}
