// Package config reads render job files. The format follows the file
// extension: .json, .yaml/.yml or .toml.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds the output settings and the scenes of one render job.
type Config struct {
	// Paths
	TextureDir string `json:"texture_dir" yaml:"texture_dir" toml:"texture_dir"`
	OutputDir  string `json:"output_dir" yaml:"output_dir" toml:"output_dir"`

	// Render settings
	Size        int    `json:"size" yaml:"size" toml:"size"`
	Supersample int    `json:"supersample" yaml:"supersample" toml:"supersample"`
	Quality     int    `json:"quality" yaml:"quality" toml:"quality"`
	Workers     int    `json:"workers" yaml:"workers" toml:"workers"`
	Format      string `json:"format" yaml:"format" toml:"format"`

	Scenes []Scene `json:"scenes" yaml:"scenes" toml:"scenes"`
}

var ErrUnknownFormat = errors.New("config: unknown file format")

// Load reads a config file. Fields not set in the file keep their zero
// values; call Resolve to fill defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	// Relative paths in the file are relative to the file.
	dir := filepath.Dir(path)
	cfg.TextureDir = relTo(dir, cfg.TextureDir)
	cfg.OutputDir = relTo(dir, cfg.OutputDir)
	return cfg, nil
}

// Parse decodes data in the format named by ext (with or without the dot).
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(data []byte, ext string) (Config, error) {
	var cfg Config
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, err
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, err
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return cfg, nil
}

// Marshal encodes cfg in the format named by ext.
func Marshal(cfg Config, ext string) ([]byte, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		return json.MarshalIndent(cfg, "", "  ")
	case "yaml", "yml":
		return yaml.Marshal(cfg)
	case "toml":
		return toml.Marshal(cfg)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}

func relTo(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir  string
	TextureDir string
	Size       int
	Quality    int
	Workers    int
	Format     string
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.Size > 0 {
		c.Size = flags.Size
	}
	if flags.Quality > 0 {
		c.Quality = flags.Quality
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}

	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.Size <= 0 {
		c.Size = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Quality <= 0 {
		c.Quality = 90
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	c.Format = strings.ToLower(strings.TrimPrefix(c.Format, "."))
	if c.Format == "" {
		c.Format = "webp"
	}

	for i := range c.Scenes {
		if c.Scenes[i].Name == "" {
			c.Scenes[i].Name = fmt.Sprintf("scene%03d", i)
		}
	}
}
