// Package config handles bake configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/vatbake/internal/layout"
)

// Config holds all bake settings.
type Config struct {
	Frames  FramesConfig  `yaml:"frames"`
	Input   InputConfig   `yaml:"input"`
	Bake    BakeConfig    `yaml:"bake"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// FramesConfig defines the sampled frame range.
type FramesConfig struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
	Step  int `yaml:"step"`
}

// InputConfig holds the animated geometry source.
type InputConfig struct {
	// Pattern is a printf pattern for per-frame OBJ files,
	// e.g. "frames/walk_%04d.obj".
	Pattern string `yaml:"obj_pattern"`
}

// BakeConfig holds sampling and layout settings.
type BakeConfig struct {
	ZCurve           bool    `yaml:"encode_as_zcurve"`
	GenerateMesh     bool    `yaml:"generate_mesh"`
	NormalEpsilonDeg float32 `yaml:"normal_epsilon_deg"`
	MaxImageArea     int     `yaml:"max_image_area"`
}

// ExportConfig holds output settings.
type ExportConfig struct {
	Dir     string `yaml:"export_path"`
	Prefix  string `yaml:"filename_prefix"`
	Preview bool   `yaml:"preview"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Frames: FramesConfig{
			Start: 1,
			End:   250,
			Step:  1,
		},
		Bake: BakeConfig{
			ZCurve:           true,
			GenerateMesh:     true,
			NormalEpsilonDeg: 0.1,
			MaxImageArea:     layout.DefaultMaxArea,
		},
		Export: ExportConfig{
			Dir:     "./export",
			Prefix:  "VAT",
			Preview: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Input.Pattern == "" {
		return fmt.Errorf("input obj_pattern is required")
	}
	if c.Frames.End < c.Frames.Start {
		return fmt.Errorf("frame range %d..%d is empty", c.Frames.Start, c.Frames.End)
	}
	if c.Frames.Step < 1 {
		return fmt.Errorf("frame step must be at least 1, got %d", c.Frames.Step)
	}
	if c.Bake.NormalEpsilonDeg < 0 || c.Bake.NormalEpsilonDeg >= 180 {
		return fmt.Errorf("normal epsilon must be in [0, 180) degrees, got %v", c.Bake.NormalEpsilonDeg)
	}
	if c.Bake.MaxImageArea < 1 {
		return fmt.Errorf("max image area must be positive, got %d", c.Bake.MaxImageArea)
	}
	if c.Export.Prefix == "" {
		return fmt.Errorf("filename prefix must not be empty")
	}
	return nil
}
