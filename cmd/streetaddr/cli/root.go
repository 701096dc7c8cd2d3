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

// Package cli holds the root command and the plumbing shared by the
// streetaddr subcommands.
package cli

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"m4o.io/streetaddr/internal/config"
	"m4o.io/streetaddr/internal/logger"
)

// RootCmd is the streetaddr command every subcommand registers with.
var RootCmd = &cobra.Command{
	Use:           "streetaddr",
	Short:         "Generate addressing for street polygons",
	Long:          "Generate centerlines, numbered address points and cross lines for street polygons",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.String("config", "", "configuration file (yaml, json or toml)")
	flags.String("log-level", "", "log level: debug, info, warn or error")
}

// AddAddressingFlags registers the generator flags shared by subcommands.
func AddAddressingFlags(flags *pflag.FlagSet) {
	flags.Float64("interval", 0, "meters between cross lines")
	flags.Float64("offset", 0, "meters between address points and the street boundary")
	flags.Int("start", 0, "first building number")
	flags.Bool("reverse", false, "number the street from its other end")
	flags.Float64("probe", 0, "meters probed from the centerline for the street boundary")
	flags.Float64("fallback", 0, "meters used when a probe misses the boundary")
	flags.String("kernel", "", "geometry kernel: spherical or s2")
	flags.Uint16P("cpu", "c", 0, "number of CPUs to use")
}

// LoadConfig loads the configuration named by --config, or the environment
// alone, and applies the command line flags over it.
func LoadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	flags := cmd.Flags()

	path, err := flags.GetString("config")
	if err != nil {
		return nil, nil, err
	}

	var cfg *config.Config
	if path != "" {
		cfg, err = config.NewFromFile(filepath.Dir(path), filepath.Base(path))
	} else {
		cfg, err = config.New()
	}

	if err != nil {
		return nil, nil, err
	}

	if err = applyFlags(flags, cfg); err != nil {
		return nil, nil, err
	}

	if err = cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return cfg, logger.New(cfg.Level()), nil
}

// applyFlags copies the flags set on the command line over cfg.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	var err error

	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}

		switch f.Name {
		case "log-level":
			cfg.LogLevel = f.Value.String()
		case "interval":
			cfg.Addressing.Interval, err = flags.GetFloat64(f.Name)
		case "offset":
			cfg.Addressing.Offset, err = flags.GetFloat64(f.Name)
		case "start":
			cfg.Addressing.Start, err = flags.GetInt(f.Name)
		case "reverse":
			cfg.Addressing.Reverse, err = flags.GetBool(f.Name)
		case "probe":
			cfg.Addressing.Probe, err = flags.GetFloat64(f.Name)
		case "fallback":
			cfg.Addressing.Fallback, err = flags.GetFloat64(f.Name)
		case "kernel":
			cfg.Addressing.Kernel = f.Value.String()
		case "cpu":
			cfg.CPU, err = flags.GetUint16(f.Name)
		case "compression":
			cfg.Output.Compression = f.Value.String()
		case "dsn":
			cfg.Database.DSN = f.Value.String()
		}
	})

	return err
}
