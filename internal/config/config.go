// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the command line configuration from an optional
// file and STREETADDR_ prefixed environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kkyr/fig"

	"m4o.io/streetaddr"
	"m4o.io/streetaddr/geodesy"
	"m4o.io/streetaddr/internal/codec"
)

const configEnv = "STREETADDR"

// Config represents the application's configuration structure.
type Config struct {
	LogLevel string `fig:"loglevel" default:"info"`

	// Number of streets generated concurrently; 0 picks a default.
	CPU uint16 `fig:"cpu"`

	Addressing Addressing `fig:"addressing"`

	Output struct {
		// Allowed values: raw, zlib, xz, lz4, zstd.  Empty infers the
		// compression from the output file extension.
		Compression string `fig:"compression"`
	} `fig:"output"`

	Database struct {
		DSN string `fig:"dsn"`
	} `fig:"database"`
}

// Addressing holds the generator settings.
type Addressing struct {
	Interval float64 `fig:"interval" default:"20"`
	Offset   float64 `fig:"offset" default:"5"`
	Start    int     `fig:"start"`
	Reverse  bool    `fig:"reverse"`
	Probe    float64 `fig:"probe" default:"100"`
	Fallback float64 `fig:"fallback" default:"10"`

	// Allowed values: spherical, s2
	Kernel string `fig:"kernel" default:"spherical"`
}

// NewFromFile loads the configuration from the file in path, overridden by
// the environment.
func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)

	if _, err := os.Stat(filepath.Join(path, file)); err != nil {
		return conf, fmt.Errorf("failed to read config: %w", err)
	}

	if err := fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

// New loads the configuration from the environment alone.
func New() (*Config, error) {
	conf := new(Config)

	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if err := c.Addressing.Options().Validate(); err != nil {
		return err
	}

	if c.Addressing.Probe <= 0 || c.Addressing.Fallback <= 0 {
		return fmt.Errorf("%w: probe distances must be positive, got %v and %v",
			streetaddr.ErrInvalidOptions, c.Addressing.Probe, c.Addressing.Fallback)
	}

	if _, err := geodesy.ByName(c.Addressing.Kernel); err != nil {
		return err
	}

	if c.Output.Compression != "" {
		if _, err := codec.Parse(c.Output.Compression); err != nil {
			return err
		}
	}

	if c.CPU == 0 {
		c.CPU = streetaddr.DefaultNCpu()
	}

	return nil
}

// Level is the parsed log level, info when it does not parse.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return level
}

// Compression returns the configured output compression, or the one implied
// by the path when none is configured.
func (c *Config) Compression(path string) codec.Compression {
	if c.Output.Compression != "" {
		if comp, err := codec.Parse(c.Output.Compression); err == nil {
			return comp
		}
	}

	return codec.FromPath(path)
}

// GeneratorOptions translates the configuration into generator options.
func (c *Config) GeneratorOptions(logger *slog.Logger) []streetaddr.Option {
	opts := []streetaddr.Option{
		streetaddr.WithOptions(c.Addressing.Options()),
		streetaddr.WithProbeMeters(c.Addressing.Probe),
		streetaddr.WithFallbackMeters(c.Addressing.Fallback),
		streetaddr.WithNCpus(c.CPU),
		streetaddr.WithLogger(logger),
	}

	if k, err := geodesy.ByName(c.Addressing.Kernel); err == nil {
		opts = append(opts, streetaddr.WithKernel(k))
	}

	return opts
}

// Options returns the caller-facing generator options.
func (a Addressing) Options() streetaddr.Options {
	return streetaddr.Options{
		IntervalMeters:   a.Interval,
		OffsetMeters:     a.Offset,
		StartNumber:      a.Start,
		ReverseDirection: a.Reverse,
	}
}
