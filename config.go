package sscene

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the scene settings a host usually reads from a file.
type Config struct {
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	FOV        float32   `yaml:"fov"`
	ZFar       float32   `yaml:"zfar"`
	ClearColor [4]uint8  `yaml:"clear_color,flow"`
	Wireframe  bool      `yaml:"wireframe"`
	Log        LogConfig `yaml:"log"`
}

type LogConfig struct {
	Prefix string `yaml:"prefix"`
	Debug  bool   `yaml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Width:      800,
		Height:     600,
		FOV:        90,
		ZFar:       200,
		ClearColor: [4]uint8{0, 0, 0, 255},
		Log:        LogConfig{Prefix: "sscene"},
	}
}

// LoadConfig reads a YAML file over DefaultConfig. A missing file is not an
// error and yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("screen size %dx%d must be positive", c.Width, c.Height)
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		return fmt.Errorf("fov %v out of range (0, 180)", c.FOV)
	}
	if c.ZFar <= NearPlane {
		return fmt.Errorf("zfar %v must exceed near plane %v", c.ZFar, NearPlane)
	}
	return nil
}

func (c Config) clearColor() color.RGBA {
	return color.RGBA{R: c.ClearColor[0], G: c.ClearColor[1], B: c.ClearColor[2], A: c.ClearColor[3]}
}
