// Package config loads the ambient, non-semantic tunables of a checker
// run (worker pool sizes, progress cadence, DOT highlight colour, and the
// live dashboard's listen address) from a YAML file.
//
// The loader reads an outer envelope (kind plus a freeform "def" payload)
// with viper, then re-marshals the def payload to YAML and decodes it
// into the concrete config struct with yaml.v3. A fresh viper.New() is
// used per call rather than viper's package-level singleton: a stateful
// global config object doesn't compose when a process wants more than one
// independent config source.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// outerConfig is the envelope format on disk: `kind` names the config
// flavour (always "checker" today, but kept so the format can host other
// kinds without a breaking change) and `def` is the actual payload.
type outerConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// MarkerConfig tunes the marker's ambient concurrency.
type MarkerConfig struct {
	// Workers bounds the goroutine pool used for state-local subformula
	// evaluation. 0 means runtime.NumCPU().
	Workers int `yaml:"workers"`
	// ProgressEvery thins BFS progress reports: cmd/mcctl publishes a
	// building snapshot after an expansion only when the discovered state
	// count is a multiple of ProgressEvery. 0 or a negative value
	// publishes after every expansion.
	//
	// Tag keys are lowercase because viper lowercases every key it reads.
	ProgressEvery int `yaml:"progressevery"`
}

// VizConfig tunes the DOT renderer.
type VizConfig struct {
	// HighlightColor fills nodes satisfying the top-level subformula.
	// Defaults to "palegreen", the original source's hardcoded value.
	HighlightColor string `yaml:"highlightcolor"`
}

// DashboardConfig tunes the optional live progress viewer.
type DashboardConfig struct {
	// Addr is the host:port the dashboard listens on, e.g. ":8080".
	Addr string `yaml:"addr"`
}

// CheckerConfig is the full set of ambient tunables for one checker run.
type CheckerConfig struct {
	Marker    MarkerConfig    `yaml:"marker"`
	Viz       VizConfig       `yaml:"viz"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// Default returns the configuration a zero-config run should use.
func Default() *CheckerConfig {
	return &CheckerConfig{
		Marker: MarkerConfig{ProgressEvery: 1000},
		Viz:    VizConfig{HighlightColor: "palegreen"},
	}
}

// Load reads a checker config from a YAML file at path.
func Load(path string) (*CheckerConfig, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var outer outerConfig
	if err := vp.Unmarshal(&outer); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	raw, err := yaml.Marshal(outer.Def)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
