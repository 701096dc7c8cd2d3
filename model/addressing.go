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

// Package model contains the shared model for street-polygon addressing.
package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrUnknownSide is returned when decoding a side that is neither left nor
// right.
var ErrUnknownSide = errors.New("unknown street side")

// Side is the side of the street, relative to the direction of travel along
// the centerline.
type Side int8

const (
	// Left is the side at bearing - 90°; it carries odd numbers.
	Left Side = iota

	// Right is the side at bearing + 90°; it carries even numbers.
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int8(s))
	}
}

// Opposite returns the other side of the street.
func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}

	return Left
}

// BearingOffset is the angle, in degrees, added to the travel bearing to
// point at this side.
func (s Side) BearingOffset() float64 {
	if s == Left {
		return -90
	}

	return 90
}

func (s Side) MarshalText() ([]byte, error) {
	switch s {
	case Left, Right:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownSide, s)
	}
}

func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "left":
		*s = Left
	case "right":
		*s = Right
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSide, text)
	}

	return nil
}

// AddressPoint is a numbered marker placed just outside the street polygon.
type AddressPoint struct {
	ID       string    `json:"id"`
	Position orb.Point `json:"position"`
	Number   int       `json:"number"`
	Side     Side      `json:"side"`
}

// CrossLine is a chord of the street polygon, perpendicular to the
// centerline, marking the boundary of one addressing interval.
type CrossLine struct {
	ID    string    `json:"id"`
	Start orb.Point `json:"start"`
	End   orb.Point `json:"end"`
}

// LineString returns the cross line as a two point line.
func (c CrossLine) LineString() orb.LineString {
	return orb.LineString{c.Start, c.End}
}

// Result is the complete output of one addressing run for a street polygon.
type Result struct {
	Centerline        orb.LineString
	AddressPoints     []AddressPoint
	CrossLines        []CrossLine
	TotalLengthMeters float64
}

// resultJSON is the wire form of Result; the centerline is a GeoJSON
// LineString geometry.
type resultJSON struct {
	Centerline    *geojson.Geometry `json:"centerline"`
	AddressPoints []AddressPoint    `json:"addressPoints"`
	CrossLines    []CrossLine       `json:"crossLines"`
	TotalLength   float64           `json:"totalLength"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	points := r.AddressPoints
	if points == nil {
		points = []AddressPoint{}
	}

	lines := r.CrossLines
	if lines == nil {
		lines = []CrossLine{}
	}

	return json.Marshal(resultJSON{
		Centerline:    geojson.NewGeometry(r.Centerline),
		AddressPoints: points,
		CrossLines:    lines,
		TotalLength:   r.TotalLengthMeters,
	})
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var w resultJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var centerline orb.LineString

	if w.Centerline != nil {
		ls, ok := w.Centerline.Geometry().(orb.LineString)
		if !ok {
			return fmt.Errorf("centerline must be a LineString, got %s", w.Centerline.Type)
		}

		centerline = ls
	}

	*r = Result{
		Centerline:        centerline,
		AddressPoints:     w.AddressPoints,
		CrossLines:        w.CrossLines,
		TotalLengthMeters: w.TotalLength,
	}

	return nil
}

// PointsOn returns the address points on one side, in placement order.
func (r *Result) PointsOn(side Side) []AddressPoint {
	var out []AddressPoint

	for _, p := range r.AddressPoints {
		if p.Side == side {
			out = append(out, p)
		}
	}

	return out
}

// BoundingBox returns the box enclosing the centerline, every cross line and
// every address point.
func (r *Result) BoundingBox() *BoundingBox {
	bbox := InitialBoundingBox()
	bbox.ExpandWithPoints(r.Centerline...)

	for _, c := range r.CrossLines {
		bbox.ExpandWithPoints(c.Start, c.End)
	}

	for _, p := range r.AddressPoints {
		bbox.ExpandWithPoint(p.Position)
	}

	return bbox
}
