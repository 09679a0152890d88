package render

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Limits are the pool capacities of a device, one per resource kind.
type Limits struct {
	Textures            int `toml:"textures"`
	Buffers             int `toml:"buffers"`
	Shaders             int `toml:"shaders"`
	BindingGroupLayouts int `toml:"binding_group_layouts"`
	BindingGroups       int `toml:"binding_groups"`
	Pipelines           int `toml:"pipelines"`
	Passes              int `toml:"passes"`
	FrameBuffers        int `toml:"frame_buffers"`
}

type ShaderConfig struct {
	// GLSLVersion is the GLSL version WGSL shaders are translated to on GL.
	GLSLVersion int `toml:"glsl_version"`
}

// Config holds device settings. The zero value is not usable; start from
// DefaultConfig or load a file with LoadConfig.
type Config struct {
	Backend string `toml:"backend"`
	// ConsistencyChecks makes the GL binding cache verify every elided bind
	// against the driver.
	ConsistencyChecks bool         `toml:"consistency_checks"`
	LogLevel          string       `toml:"log_level"`
	Limits            Limits       `toml:"limits"`
	Shader            ShaderConfig `toml:"shader"`
}

func DefaultLimits() Limits {
	return Limits{
		Textures:            1024,
		Buffers:             1024,
		Shaders:             1024,
		BindingGroupLayouts: 512,
		BindingGroups:       512,
		Pipelines:           512,
		Passes:              256,
		FrameBuffers:        256,
	}
}

func DefaultConfig() Config {
	return Config{
		Backend:  BackendOpenGL.String(),
		LogLevel: "info",
		Limits:   DefaultLimits(),
		Shader:   ShaderConfig{GLSLVersion: 410},
	}
}

// ParseConfig decodes TOML on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("render: parse config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("render: load config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// Validate checks the backend name and log level.
func (c Config) Validate() error {
	if _, err := c.BackendKind(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c Config) BackendKind() (BackendKind, error) {
	return ParseBackendKind(c.Backend)
}

// Level parses LogLevel. An empty level means info.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("render: log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Capacity returns the pool capacity for t.
func (l Limits) Capacity(t ResourceType) int {
	switch t {
	case ResourceTexture:
		return l.Textures
	case ResourceBuffer:
		return l.Buffers
	case ResourceShader:
		return l.Shaders
	case ResourceBindingGroupLayout:
		return l.BindingGroupLayouts
	case ResourceBindingGroup:
		return l.BindingGroups
	case ResourcePipeline:
		return l.Pipelines
	case ResourcePass:
		return l.Passes
	case ResourceFrameBuffer:
		return l.FrameBuffers
	}
	return 0
}

// normalize replaces unset values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Backend == "" {
		c.Backend = def.Backend
	}
	if c.Shader.GLSLVersion <= 0 {
		c.Shader.GLSLVersion = def.Shader.GLSLVersion
	}
	fill := func(v *int, d int) {
		if *v <= 0 {
			*v = d
		}
	}
	fill(&c.Limits.Textures, def.Limits.Textures)
	fill(&c.Limits.Buffers, def.Limits.Buffers)
	fill(&c.Limits.Shaders, def.Limits.Shaders)
	fill(&c.Limits.BindingGroupLayouts, def.Limits.BindingGroupLayouts)
	fill(&c.Limits.BindingGroups, def.Limits.BindingGroups)
	fill(&c.Limits.Pipelines, def.Limits.Pipelines)
	fill(&c.Limits.Passes, def.Limits.Passes)
	fill(&c.Limits.FrameBuffers, def.Limits.FrameBuffers)
}
