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

package cli

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/streetaddr/internal/codec"
)

func command() *cobra.Command {
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}

	flags := cmd.Flags()
	flags.String("config", "", "")
	flags.String("log-level", "", "")
	flags.String("compression", "", "")
	AddAddressingFlags(flags)

	return cmd
}

func TestLoadConfigFlags(t *testing.T) {
	cmd := command()
	require.NoError(t, cmd.ParseFlags([]string{
		"--interval", "30", "--offset=2", "--start", "5", "--reverse",
		"--kernel", "s2", "--cpu", "3", "--log-level", "debug", "--compression", "xz",
	}))

	cfg, logger, err := LoadConfig(cmd)
	require.NoError(t, err)
	require.NotNil(t, logger)

	assert.Equal(t, 30.0, cfg.Addressing.Interval)
	assert.Equal(t, 2.0, cfg.Addressing.Offset)
	assert.Equal(t, 5, cfg.Addressing.Start)
	assert.True(t, cfg.Addressing.Reverse)
	assert.Equal(t, "s2", cfg.Addressing.Kernel)
	assert.Equal(t, uint16(3), cfg.CPU)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, codec.XZ, cfg.Compression("out.geojson"))

	// unset flags keep the configured defaults
	assert.Equal(t, 100.0, cfg.Addressing.Probe)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "streetaddr.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"addressing":{"interval":40,"offset":3}}`), 0o600))

	cmd := command()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--offset", "4"}))

	cfg, _, err := LoadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 40.0, cfg.Addressing.Interval)
	assert.Equal(t, 4.0, cfg.Addressing.Offset)
}

func TestLoadConfigInvalid(t *testing.T) {
	cmd := command()
	require.NoError(t, cmd.ParseFlags([]string{"--interval=-3"}))

	_, _, err := LoadConfig(cmd)
	assert.Error(t, err)
}

func TestInputOutput(t *testing.T) {
	const doc = `{"type":"FeatureCollection","features":[]}`

	for _, ext := range []string{".geojson", ".geojson.zz", ".geojson.xz", ".geojson.lz4", ".geojson.zst"} {
		t.Run(ext, func(t *testing.T) {
			name := filepath.Join(t.TempDir(), "streets"+ext)

			w, err := CreateOutput(name, codec.FromPath(name))
			require.NoError(t, err)

			_, err = io.WriteString(w, doc)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			for _, progress := range []bool{false, true} {
				r, err := OpenInput(name, progress)
				require.NoError(t, err)

				got, err := io.ReadAll(r)
				require.NoError(t, err)
				require.NoError(t, r.Close())

				assert.Equal(t, doc, string(got))
			}
		})
	}

	_, err := OpenInput(filepath.Join(t.TempDir(), "missing.geojson"), false)
	assert.Error(t, err)
}

func TestInputValue(t *testing.T) {
	var in string

	v := NewInputValue("-", &in, "file")
	assert.Equal(t, "-", in)
	assert.Equal(t, "file", v.Type())

	name := filepath.Join(t.TempDir(), "streets.geojson")
	require.NoError(t, os.WriteFile(name, []byte("{}"), 0o600))

	require.NoError(t, v.Set(name))
	assert.Equal(t, name, in)
	assert.Equal(t, name, v.String())

	assert.Error(t, v.Set(filepath.Join(t.TempDir(), "missing.geojson")))
	assert.Equal(t, name, in)
}

func TestStreetBarDisabled(t *testing.T) {
	bar := NewStreetBar(10, false)
	bar.Increment()
	bar.Finish()
}
