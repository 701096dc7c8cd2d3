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

package geodesy

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Spherical is a kernel backed by the haversine helpers of orb/geo.  Line
// intersections are the great circle edge crossings of golang/geo, the same
// as the S2 kernel.
type Spherical struct{}

var _ Kernel = Spherical{}

func (Spherical) Distance(a, b orb.Point) float64 {
	return geo.DistanceHaversine(a, b)
}

func (Spherical) Bearing(from, to orb.Point) float64 {
	return geo.Bearing(from, to)
}

func (Spherical) Destination(p orb.Point, meters, bearing float64) orb.Point {
	return geo.PointAtBearingAndDistance(p, bearing, meters)
}

func (Spherical) Midpoint(a, b orb.Point) orb.Point {
	return geo.Midpoint(a, b)
}

func (Spherical) Along(line orb.LineString, meters float64) orb.Point {
	if len(line) == 0 {
		return orb.Point{}
	}

	p, _ := geo.PointAtDistanceAlongLine(line, meters)

	return p
}

func (Spherical) Length(line orb.LineString) float64 {
	return geo.LengthHaversine(line)
}

func (Spherical) Intersect(a, b orb.LineString) []orb.Point {
	return crossings(a, b)
}

func (Spherical) Boundary(poly orb.Polygon) orb.LineString {
	return Boundary(poly)
}
