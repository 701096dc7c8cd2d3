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

// Package streetaddr generates the addressing scheme of a street drawn as a
// polygon: a centerline through the polygon, numbered address markers on
// both sides of it and cross lines dividing it into equal intervals.
package streetaddr

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"m4o.io/streetaddr/model"
)

// minRingPositions is the smallest closed ring: three vertices plus the
// repeated first one.
const minRingPositions = 4

// Generator produces addressing for street polygons.  A Generator holds no
// mutable state and may be used from multiple goroutines.
type Generator struct {
	cfg options
}

// NewGenerator returns a generator configured with options.
func NewGenerator(opts ...Option) (*Generator, error) {
	cfg := defaultGeneratorConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Generator{cfg: cfg}, nil
}

// Options returns the caller-facing options the generator was built with.
func (g *Generator) Options() Options {
	return g.cfg.Options
}

// Generate computes the centerline, address points and cross lines of the
// street polygon, configured with options.
func Generate(poly orb.Polygon, opts ...Option) (*model.Result, error) {
	g, err := NewGenerator(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	return g.Generate(poly)
}

// Generate computes the centerline, address points and cross lines of the
// street polygon.  Either the complete result or an error wrapping
// ErrGeneration is returned.
func (g *Generator) Generate(poly orb.Polygon) (*model.Result, error) {
	poly, err := normalizePolygon(poly)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	k := g.cfg.kernel

	line := centerline(k, poly, g.cfg.logger)
	if g.cfg.ReverseDirection {
		line = line.Clone()
		line.Reverse()
	}

	placement, err := place(k, poly, line, g.cfg.placeParams(), g.cfg.logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	return &model.Result{
		Centerline:        line,
		AddressPoints:     placement.AddressPoints,
		CrossLines:        placement.CrossLines,
		TotalLengthMeters: k.Length(line),
	}, nil
}

// normalizePolygon checks the outer ring and returns a polygon holding only
// that ring, closed.  Holes are dropped.
func normalizePolygon(poly orb.Polygon) (orb.Polygon, error) {
	if len(poly) == 0 || len(poly[0]) == 0 {
		return nil, fmt.Errorf("%w: no outer ring", ErrInvalidPolygon)
	}

	ring := poly[0]

	for i, p := range ring {
		if !finite(p) {
			return nil, fmt.Errorf("%w: vertex %d is not finite: %v", ErrInvalidPolygon, i, p)
		}
	}

	if !ring.Closed() {
		closed := make(orb.Ring, 0, len(ring)+1)
		closed = append(closed, ring...)
		ring = append(closed, ring[0])
	}

	if len(ring) < minRingPositions {
		return nil, fmt.Errorf("%w: ring has %d positions, need at least %d",
			ErrInvalidPolygon, len(ring), minRingPositions)
	}

	return orb.Polygon{ring}, nil
}

func finite(p orb.Point) bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
