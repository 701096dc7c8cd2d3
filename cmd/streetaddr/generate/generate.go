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

// Package generate implements the generate subcommand, which addresses a
// single street polygon.
package generate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/paulmach/orb"
	"github.com/spf13/cobra"

	"m4o.io/streetaddr"
	"m4o.io/streetaddr/cmd/streetaddr/cli"
	"m4o.io/streetaddr/geojsonio"
	"m4o.io/streetaddr/model"
)

var out io.Writer = os.Stdout

const (
	formatJSON    = "json"
	formatGeoJSON = "geojson"
	formatText    = "text"
)

func init() {
	cli.RootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.StringP("format", "f", formatText, "output format: text, json or geojson")
	flags.StringP("out", "o", "", "output file, compressed according to its extension (default stdout)")
	flags.String("compression", "", "output compression: raw, zlib, xz, lz4 or zstd")
	flags.String("id", "", "street polygon id used in GeoJSON output")
	cli.AddAddressingFlags(flags)
}

var generateCmd = &cobra.Command{
	Use:   "generate [<GeoJSON polygon file>]",
	Short: "Generate addressing for a street polygon",
	Long:  "Generate the centerline, address points and cross lines of a street polygon",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}

		var name string
		if len(args) == 1 {
			name = args[0]
		}

		in, err := cli.OpenInput(name, false)
		if err != nil {
			return err
		}

		r, err := runGenerate(in, cfg.GeneratorOptions(logger)...)
		if cerr := in.Close(); err == nil {
			err = cerr
		}

		if err != nil {
			return err
		}

		flags := cmd.Flags()

		format, err := flags.GetString("format")
		if err != nil {
			return err
		}

		outName, err := flags.GetString("out")
		if err != nil {
			return err
		}

		id, err := flags.GetString("id")
		if err != nil {
			return err
		}

		if id == "" {
			id = streetID(name)
		}

		w, err := cli.CreateOutput(outName, cfg.Compression(outName))
		if err != nil {
			return err
		}

		saved := out
		out = w

		defer func() { out = saved }()

		if err = render(format, id, r); err != nil {
			_ = w.Close()

			return err
		}

		return w.Close()
	},
}

func runGenerate(in io.Reader, opts ...streetaddr.Option) (*model.Result, error) {
	poly, err := geojsonio.ReadPolygon(in)
	if err != nil {
		return nil, err
	}

	return streetaddr.Generate(poly, opts...)
}

func render(format, id string, r *model.Result) error {
	switch strings.ToLower(format) {
	case formatJSON:
		return renderJSON(r)
	case formatGeoJSON:
		return renderGeoJSON(id, r)
	case formatText:
		renderTxt(r)

		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// streetID derives an id from the input file name.
func streetID(name string) string {
	if name == "" || name == "-" {
		return "street"
	}

	base := filepath.Base(name)

	return base[:strings.Index(base+".", ".")]
}

func renderJSON(r *model.Result) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(b))

	return err
}

func renderGeoJSON(id string, r *model.Result) error {
	b, err := json.Marshal(geojsonio.ResultFeatures(id, r))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(b))

	return err
}

func renderTxt(r *model.Result) {
	left, right := r.PointsOn(model.Left), r.PointsOn(model.Right)

	fmt.Fprintf(out, "BoundingBox: %s\n", r.BoundingBox())
	if n := len(r.Centerline); n > 0 {
		fmt.Fprintf(out, "From: %s\n", dms(r.Centerline[0]))
		fmt.Fprintf(out, "To: %s\n", dms(r.Centerline[n-1]))
	}

	fmt.Fprintf(out, "TotalLength: %s\n", humanize.SIWithDigits(r.TotalLengthMeters, 1, "m"))
	fmt.Fprintf(out, "CenterlinePoints: %s\n", humanize.Comma(int64(len(r.Centerline))))
	fmt.Fprintf(out, "CrossLines: %s\n", humanize.Comma(int64(len(r.CrossLines))))
	fmt.Fprintf(out, "AddressPoints: %s (left %s, right %s)\n",
		humanize.Comma(int64(len(r.AddressPoints))),
		humanize.Comma(int64(len(left))),
		humanize.Comma(int64(len(right))))

	for _, p := range r.AddressPoints {
		fmt.Fprintf(out, "%s\t%s\t%d\t%.7f, %.7f\n",
			p.ID, p.Side, p.Number, p.Position.Lon(), p.Position.Lat())
	}
}

// dms formats a point as latitude and longitude in degrees, minutes and
// seconds.
func dms(p orb.Point) string {
	return fmt.Sprintf("%s, %s", model.Lat(p), model.Lon(p))
}
