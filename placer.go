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
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"

	"github.com/paulmach/orb"

	"m4o.io/streetaddr/geodesy"
	"m4o.io/streetaddr/model"
)

// minSegmentMeters is the shortest stretch of centerline that still gets a
// pair of address markers, and the shortest leftover tail that still gets a
// closing cross line.
const minSegmentMeters = 1.0

// PlaceParams configures Place.
type PlaceParams struct {
	IntervalMeters float64
	OffsetMeters   float64
	StartNumber    int
	ProbeMeters    float64
	FallbackMeters float64
}

// Placement is the output of Place.
type Placement struct {
	AddressPoints []model.AddressPoint
	CrossLines    []model.CrossLine
}

// numbering tracks the next number on each side of the street.
type numbering struct {
	odd  int
	even int
}

func newNumbering(start int) numbering {
	if start%2 == 0 {
		return numbering{odd: start + 1, even: start}
	}

	return numbering{odd: start, even: start + 1}
}

// next returns the numbers for the left and right markers of one segment and
// the numbering that follows them.
func (n numbering) next() (left, right int, after numbering) {
	return n.odd, n.even, numbering{odd: n.odd + 2, even: n.even + 2}
}

// probeResult is the outcome of casting a ray towards the street boundary.
// hit is false when the ray missed and the fallback position was used.
type probeResult struct {
	point orb.Point
	hit   bool
}

type placer struct {
	k        geodesy.Kernel
	line     orb.LineString
	boundary orb.LineString
	length   float64
	params   PlaceParams
	logger   *slog.Logger
}

// Place walks the centerline at fixed intervals.  At every interval boundary
// it lays a cross line spanning the polygon, and at the middle of every
// interval longer than a meter it places an odd numbered marker on the left
// and an even numbered marker on the right, just outside the polygon.
func Place(k geodesy.Kernel, poly orb.Polygon, centerline orb.LineString, params PlaceParams) (Placement, error) {
	return place(k, poly, centerline, params, slog.Default())
}

func place(k geodesy.Kernel, poly orb.Polygon, centerline orb.LineString, params PlaceParams, logger *slog.Logger) (Placement, error) {
	params = params.withDefaults()
	if err := params.validate(); err != nil {
		return Placement{}, err
	}

	if len(centerline) < 2 {
		return Placement{}, fmt.Errorf("%w: centerline has %d points", ErrInvalidPolygon, len(centerline))
	}

	boundary := k.Boundary(poly)
	if len(boundary) < minRingPositions {
		return Placement{}, fmt.Errorf("%w: boundary has %d points", ErrInvalidPolygon, len(boundary))
	}

	length := k.Length(centerline)
	if math.IsNaN(length) || math.IsInf(length, 0) {
		return Placement{}, fmt.Errorf("%w: centerline length is %v", ErrInvalidPolygon, length)
	}

	p := &placer{
		k:        k,
		line:     centerline,
		boundary: boundary,
		length:   length,
		params:   params,
		logger:   logger,
	}

	return p.run(), nil
}

func (p *placer) run() Placement {
	var out Placement

	interval := p.params.IntervalMeters
	numbers := newNumbering(p.params.StartNumber)

	samples := Segment(p.k, p.line, interval)

	for _, s := range samples {
		d := s.Distance
		if d >= p.length {
			break
		}

		out.CrossLines = append(out.CrossLines, p.crossLineOrChord("cross-"+ftoa(d), s))

		end := math.Min(d+interval, p.length)
		if end <= d+minSegmentMeters {
			continue
		}

		mid := sampleAt(p.k, p.line, p.length, (d+end)/2)

		var left, right int
		left, right, numbers = numbers.next()

		out.AddressPoints = append(out.AddressPoints,
			p.addressPoint("L-"+ftoa(d), mid, model.Left, left),
			p.addressPoint("R-"+ftoa(d), mid, model.Right, right),
		)
	}

	if math.Mod(p.length, interval) > minSegmentMeters {
		if c, ok := p.crossLine("cross-end", samples[len(samples)-1]); ok {
			out.CrossLines = append(out.CrossLines, c)
		}
	}

	return out
}

// crossLine probes both ways across the street from the sample and spans the
// first to the last boundary crossing along the probe.  ok is false when the
// probe crosses the boundary fewer than twice.
func (p *placer) crossLine(id string, s Sample) (model.CrossLine, bool) {
	from := p.k.Destination(s.Point, p.params.ProbeMeters, s.Bearing+model.Left.BearingOffset())
	to := p.k.Destination(s.Point, p.params.ProbeMeters, s.Bearing+model.Right.BearingOffset())

	hits := p.k.Intersect(orb.LineString{from, to}, p.boundary)
	if len(hits) < 2 {
		return model.CrossLine{}, false
	}

	p.sortByDistance(from, hits)

	return model.CrossLine{ID: id, Start: hits[0], End: hits[len(hits)-1]}, true
}

// crossLineOrChord is crossLine with a short chord centered on the sample as
// the fallback.
func (p *placer) crossLineOrChord(id string, s Sample) model.CrossLine {
	if c, ok := p.crossLine(id, s); ok {
		return c
	}

	p.logger.Debug("cross line probe missed the boundary", "id", id, "distance", s.Distance)

	return model.CrossLine{
		ID:    id,
		Start: p.k.Destination(s.Point, p.params.FallbackMeters, s.Bearing+model.Left.BearingOffset()),
		End:   p.k.Destination(s.Point, p.params.FallbackMeters, s.Bearing+model.Right.BearingOffset()),
	}
}

func (p *placer) addressPoint(id string, mid Sample, side model.Side, number int) model.AddressPoint {
	r := p.probe(mid, side)
	if !r.hit {
		p.logger.Debug("address probe missed the boundary", "id", id, "side", side, "distance", mid.Distance)
	}

	return model.AddressPoint{ID: id, Position: r.point, Number: number, Side: side}
}

// probe casts a ray from the sample towards one side and places a marker
// just beyond the nearest boundary crossing, or at the fallback distance
// along the ray when there is none.
func (p *placer) probe(s Sample, side model.Side) probeResult {
	bearing := s.Bearing + side.BearingOffset()
	ray := orb.LineString{s.Point, p.k.Destination(s.Point, p.params.ProbeMeters, bearing)}

	hits := p.k.Intersect(ray, p.boundary)
	if len(hits) == 0 {
		return probeResult{point: p.k.Destination(s.Point, p.params.FallbackMeters, bearing)}
	}

	p.sortByDistance(s.Point, hits)

	return probeResult{point: p.k.Destination(hits[0], p.params.OffsetMeters, bearing), hit: true}
}

func (p *placer) sortByDistance(origin orb.Point, points []orb.Point) {
	slices.SortStableFunc(points, func(a, b orb.Point) int {
		da, db := p.k.Distance(origin, a), p.k.Distance(origin, b)

		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		default:
			return 0
		}
	})
}

// withDefaults fills in unset probe distances.
func (pp PlaceParams) withDefaults() PlaceParams {
	if pp.ProbeMeters == 0 {
		pp.ProbeMeters = DefaultProbeMeters
	}

	if pp.FallbackMeters == 0 {
		pp.FallbackMeters = DefaultFallbackMeters
	}

	return pp
}

func (pp PlaceParams) validate() error {
	err := Options{
		IntervalMeters: pp.IntervalMeters,
		OffsetMeters:   pp.OffsetMeters,
		StartNumber:    pp.StartNumber,
	}.Validate()
	if err != nil {
		return err
	}

	if !positive(pp.ProbeMeters) || !positive(pp.FallbackMeters) {
		return fmt.Errorf("%w: probe distances must be positive, got %v and %v",
			ErrInvalidOptions, pp.ProbeMeters, pp.FallbackMeters)
	}

	return nil
}

// placeParams derives the placement parameters from the generator options,
// filling in the probe distances Place requires.
func (o *options) placeParams() PlaceParams {
	return PlaceParams{
		IntervalMeters: o.IntervalMeters,
		OffsetMeters:   o.OffsetMeters,
		StartNumber:    o.StartNumber,
		ProbeMeters:    o.probe,
		FallbackMeters: o.fallback,
	}
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
