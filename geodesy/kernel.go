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

// Package geodesy provides the geometry primitives the addressing engine is
// built on.  All points are [lon, lat] in degrees, all distances are in
// meters and all bearings are in degrees clockwise from north.
package geodesy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb"

	"m4o.io/streetaddr/model"
)

// ErrUnknownKernel is returned by ByName for unsupported kernel names.
var ErrUnknownKernel = errors.New("unknown geometry kernel")

// Kernel is the set of geometric operations the addressing engine needs.
// Implementations must be safe for concurrent use.
type Kernel interface {
	// Distance is the great circle distance between two points.
	Distance(a, b orb.Point) float64

	// Bearing is the initial bearing from one point to another, in the
	// range [-180, 180].
	Bearing(from, to orb.Point) float64

	// Destination is the point reached by travelling meters from p along
	// bearing.
	Destination(p orb.Point, meters, bearing float64) orb.Point

	// Midpoint is the point halfway between a and b.
	Midpoint(a, b orb.Point) orb.Point

	// Along is the point at a distance along the line.  Distances before
	// the start clamp to the first point, past the end to the last point.
	Along(line orb.LineString, meters float64) orb.Point

	// Length is the length of the line.
	Length(line orb.LineString) float64

	// Intersect returns the distinct points where the two lines cross or
	// touch, in the order their segments are visited.
	Intersect(a, b orb.LineString) []orb.Point

	// Boundary returns the outer ring of the polygon as a line.
	Boundary(poly orb.Polygon) orb.LineString
}

// Default is the kernel used when none is configured.
var Default Kernel = Spherical{}

// ByName returns the kernel called "spherical" or "s2".
func ByName(name string) (Kernel, error) {
	switch strings.ToLower(name) {
	case "spherical", "":
		return Spherical{}, nil
	case "s2":
		return S2{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
	}
}

// Boundary returns a copy of the outer ring of the polygon as a line.  It is
// shared by the kernels since the boundary does not depend on the model of
// the earth.
func Boundary(poly orb.Polygon) orb.LineString {
	if len(poly) == 0 {
		return nil
	}

	ring := poly[0]
	line := make(orb.LineString, len(ring))
	copy(line, ring)

	return line
}

// dedupe drops repeated points, equal to within a billionth of a degree,
// while keeping the first occurrence.
func dedupe(points []orb.Point) []orb.Point {
	if len(points) < 2 {
		return points
	}

	out := points[:0:0]

Outer:
	for _, p := range points {
		for _, q := range out {
			if model.PointEqualWithin(p, q, model.E9) {
				continue Outer
			}
		}

		out = append(out, p)
	}

	return out
}
