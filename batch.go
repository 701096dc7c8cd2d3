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

package streetaddr

import (
	"context"

	"github.com/destel/rill"
	"github.com/paulmach/orb"

	"m4o.io/streetaddr/model"
)

// Street is a street polygon together with its identifiers.
type Street struct {
	ID      string
	AreaID  string
	Polygon orb.Polygon
}

// Outcome is the result of generating addressing for one street.  Exactly
// one of Result and Err is set.
type Outcome struct {
	StreetID string
	AreaID   string
	Result   *model.Result
	Err      error
}

// GenerateAll generates addressing for every street concurrently, using the
// number of CPUs the generator was configured with.  Outcomes are delivered
// in the order of streets.  A failing street does not stop the others.
//
// Canceling ctx stops generation.  Streets still in flight are reported
// with the context's error for as long as the caller keeps receiving; once
// the caller stops, the channel is closed and the rest are discarded.
func (g *Generator) GenerateAll(ctx context.Context, streets []Street) <-chan Outcome {
	in := rill.FromSlice(streets, nil)

	results := rill.OrderedMap(in, int(g.cfg.nCPU), func(s Street) (Outcome, error) {
		o := Outcome{StreetID: s.ID, AreaID: s.AreaID}

		if err := ctx.Err(); err != nil {
			o.Err = err

			return o, nil
		}

		o.Result, o.Err = g.Generate(s.Polygon)
		if o.Err != nil {
			g.cfg.logger.Warn("street addressing failed", "street", s.ID, "error", o.Err)
		}

		return o, nil
	})

	out := make(chan Outcome)

	go func() {
		defer close(out)

		for r := range results {
			select {
			case out <- r.Value:
			case <-ctx.Done():
				rill.DrainNB(results)

				return
			}
		}
	}()

	return out
}

// Summary totals a batch of outcomes.
type Summary struct {
	Streets           int64   `json:"streets"`
	Failed            int64   `json:"failed"`
	AddressPoints     int64   `json:"addressPoints"`
	CrossLines        int64   `json:"crossLines"`
	TotalLengthMeters float64 `json:"totalLength"`
}

// Add accounts for one more outcome.
func (s *Summary) Add(o Outcome) {
	s.Streets++

	if o.Err != nil {
		s.Failed++

		return
	}

	s.AddressPoints += int64(len(o.Result.AddressPoints))
	s.CrossLines += int64(len(o.Result.CrossLines))
	s.TotalLengthMeters += o.Result.TotalLengthMeters
}

// Summarize totals the outcomes.
func Summarize(outcomes []Outcome) Summary {
	var s Summary

	for _, o := range outcomes {
		s.Add(o)
	}

	return s
}
