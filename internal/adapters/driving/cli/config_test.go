package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zicoder/internal/core/domain"
)

const sampleConfig = `
[server]
addr = "127.0.0.1:9000"
api_token = "sk-test-1234567890"

[[cache]]
name = "fast"
driver = "memory"
active = true
connect = true

[[models]]
name = "local"
driver = "ollama"
`

func TestConfigShow(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	out, err := execute(t, context.Background(), "config", "show", "--config", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Config: "+path)
	assert.Contains(t, out, "Addr: 127.0.0.1:9000")
	assert.Contains(t, out, "API Token: sk-t...7890")
	assert.NotContains(t, out, "sk-test-1234567890")
	assert.Contains(t, out, "fast (memory) [active, connect]")
	assert.Contains(t, out, "local (ollama)\n")
	assert.Contains(t, out, "(no drivers declared)")
}

func TestConfigShow_InvalidFile(t *testing.T) {
	path := writeConfig(t, "[server\n")

	_, err := execute(t, context.Background(), "config", "--config", path)
	assert.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")

	out, err := execute(t, context.Background(), "config", "path", "--config", path)

	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := execute(t, context.Background(), "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	out, err = execute(t, context.Background(), "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "memory (memory) [active, connect]")
	assert.Contains(t, out, "local (local) [active, connect]")

	t.Run("existing file is kept", func(t *testing.T) {
		_, err := execute(t, context.Background(), "config", "init", "--config", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("force overwrites", func(t *testing.T) {
		_, err := execute(t, context.Background(), "config", "init", "--force", "--config", path)
		assert.NoError(t, err)
	})
}

func TestStarterSettings_Valid(t *testing.T) {
	assert.NoError(t, starterSettings().Validate())
}

func TestDeclFlags(t *testing.T) {
	assert.Equal(t, "", declFlags(domain.DriverSettings{}))
	assert.Equal(t, " [active]", declFlags(domain.DriverSettings{Active: true}))
	assert.Equal(t, " [active, connect]", declFlags(domain.DriverSettings{Active: true, Connect: true}))
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Empty", input: "", expected: "****"},
		{name: "Exactly 8 chars", input: "12345678", expected: "****"},
		{name: "Long secret", input: "sk-1234567890abcdef", expected: "sk-1...cdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskSecret(tt.input))
		})
	}
}
