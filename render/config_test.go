package render

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
backend = "vulkan"
consistency_checks = true
log_level = "debug"

[limits]
textures = 8
frame_buffers = 2

[shader]
glsl_version = 450
`))
	require.NoError(t, err)

	assert.Equal(t, "vulkan", cfg.Backend)
	assert.True(t, cfg.ConsistencyChecks)
	assert.Equal(t, 8, cfg.Limits.Textures)
	assert.Equal(t, 2, cfg.Limits.Capacity(ResourceFrameBuffer))
	assert.Equal(t, DefaultLimits().Buffers, cfg.Limits.Buffers, "unset limits keep defaults")
	assert.Equal(t, 450, cfg.Shader.GLSLVersion)

	kind, err := cfg.BackendKind()
	require.NoError(t, err)
	assert.Equal(t, BackendVulkan, kind)
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParseConfigErrors(t *testing.T) {
	_, err := ParseConfig([]byte(`backend = "metal"`))
	assert.ErrorIs(t, err, ErrUnknownBackend)

	_, err = ParseConfig([]byte(`log_level = "loud"`))
	assert.Error(t, err)

	_, err = ParseConfig([]byte(`backend = `))
	assert.Error(t, err)
}

func TestParseConfigZeroLimits(t *testing.T) {
	cfg, err := ParseConfig([]byte("[limits]\npipelines = 0\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultLimits().Pipelines, cfg.Limits.Pipelines)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.toml")
	require.NoError(t, os.WriteFile(path, []byte(`backend = "opengl"`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestParseBackendKind(t *testing.T) {
	kind, err := ParseBackendKind("opengl")
	require.NoError(t, err)
	assert.Equal(t, BackendOpenGL, kind)

	_, err = ParseBackendKind("none")
	assert.ErrorIs(t, err, ErrUnknownBackend)
	assert.Equal(t, "BackendKind(9)", BackendKind(9).String())
}

func TestLimitsCapacity(t *testing.T) {
	l := DefaultLimits()
	assert.Equal(t, 1024, l.Capacity(ResourceTexture))
	assert.Equal(t, 256, l.Capacity(ResourcePass))
	assert.Zero(t, l.Capacity(ResourceDevice))
}
