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

// Package batch implements the batch subcommand, which addresses every street
// polygon of a GeoJSON feature collection concurrently.
package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"

	"m4o.io/streetaddr"
	"m4o.io/streetaddr/cmd/streetaddr/cli"
	"m4o.io/streetaddr/geojsonio"
	"m4o.io/streetaddr/internal/codec"
	"m4o.io/streetaddr/internal/logger"
	"m4o.io/streetaddr/store"
)

var out io.Writer = os.Stdout

var input string

// ErrNoDSN is returned when saving is requested without a database.
var ErrNoDSN = errors.New("saving requires a database DSN")

func init() {
	cli.RootCmd.AddCommand(batchCmd)

	flags := batchCmd.Flags()
	flags.VarP(cli.NewInputValue("-", &input, "file"), "in", "i", "GeoJSON feature collection of street polygons (default stdin)")
	flags.StringP("out", "o", "", "write every street's features to this GeoJSON file")
	flags.String("compression", "", "output compression: raw, zlib, xz, lz4 or zstd")
	flags.Bool("save", false, "save the addressing to PostgreSQL")
	flags.String("dsn", "", "PostgreSQL DSN used with --save")
	flags.BoolP("progress", "p", true, "show progress on stderr")
	flags.BoolP("json", "j", false, "print the summary in JSON")
	cli.AddAddressingFlags(flags)
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate addressing for a collection of street polygons",
	Long:  "Generate addressing for every street polygon of a GeoJSON feature collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		flags := cmd.Flags()

		progress, err := flags.GetBool("progress")
		if err != nil {
			return err
		}

		in, err := cli.OpenInput(input, progress)
		if err != nil {
			return err
		}

		streets, err := geojsonio.ReadStreets(in)
		if cerr := in.Close(); err == nil {
			err = cerr
		}

		if err != nil {
			return err
		}

		save, err := flags.GetBool("save")
		if err != nil {
			return err
		}

		var st store.Store

		if save {
			if st, err = openStore(ctx, cfg.Database.DSN); err != nil {
				return err
			}

			defer st.Close()
		}

		g, err := streetaddr.NewGenerator(cfg.GeneratorOptions(log)...)
		if err != nil {
			return err
		}

		bar := cli.NewStreetBar(len(streets), progress)
		fc, summary, err := runBatch(ctx, g, streets, st, bar, log)
		bar.Finish()

		if err != nil {
			return err
		}

		outName, err := flags.GetString("out")
		if err != nil {
			return err
		}

		if outName != "" {
			if err = writeFeatures(outName, cfg.Compression(outName), fc); err != nil {
				return err
			}
		}

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			return err
		}

		if jsonfmt {
			return renderJSON(summary)
		}

		renderTxt(summary)

		return nil
	},
}

func openStore(ctx context.Context, dsn string) (store.Store, error) {
	if dsn == "" {
		return nil, ErrNoDSN
	}

	pg, err := store.OpenPostgres(dsn)
	if err != nil {
		return nil, err
	}

	if err = pg.Migrate(ctx); err != nil {
		_ = pg.Close()

		return nil, err
	}

	return pg, nil
}

// runBatch generates addressing for every street, saving each success to st
// when it is not nil.  Failed streets are counted, not fatal; a failing
// store is.
func runBatch(
	ctx context.Context,
	g *streetaddr.Generator,
	streets []streetaddr.Street,
	st store.Store,
	bar *cli.StreetBar,
	log *slog.Logger,
) (*geojson.FeatureCollection, streetaddr.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		summary  streetaddr.Summary
		storeErr error
	)

	fc := geojson.NewFeatureCollection()

	for o := range g.GenerateAll(ctx, streets) {
		bar.Increment()
		summary.Add(o)

		if o.Err != nil || storeErr != nil {
			continue
		}

		fc.Features = append(fc.Features, geojsonio.ResultFeatures(o.StreetID, o.Result).Features...)

		if st == nil {
			continue
		}

		rec := store.NewRecord(o.StreetID, o.AreaID, g.Options(), o.Result)
		if _, err := st.Upsert(ctx, rec); err != nil {
			log.Error("could not save addressing", "street", o.StreetID, logger.Err(err))
			storeErr = err

			cancel()
		}
	}

	if storeErr != nil {
		return nil, summary, storeErr
	}

	return fc, summary, nil
}

func writeFeatures(name string, c codec.Compression, fc *geojson.FeatureCollection) error {
	w, err := cli.CreateOutput(name, c)
	if err != nil {
		return err
	}

	if err = json.NewEncoder(w).Encode(fc); err != nil {
		_ = w.Close()

		return err
	}

	return w.Close()
}

func renderJSON(s streetaddr.Summary) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(b))

	return err
}

func renderTxt(s streetaddr.Summary) {
	fmt.Fprintf(out, "Streets: %s\n", humanize.Comma(s.Streets))
	fmt.Fprintf(out, "Failed: %s\n", humanize.Comma(s.Failed))
	fmt.Fprintf(out, "AddressPoints: %s\n", humanize.Comma(s.AddressPoints))
	fmt.Fprintf(out, "CrossLines: %s\n", humanize.Comma(s.CrossLines))
	fmt.Fprintf(out, "TotalLength: %s\n", humanize.SIWithDigits(s.TotalLengthMeters, 1, "m"))
}
