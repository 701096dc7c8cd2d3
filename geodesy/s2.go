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
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// S2 is a kernel that works on the unit sphere using golang/geo.  Edges are
// great circle arcs, so intersections are exact on the sphere rather than
// in lon/lat space.
type S2 struct{}

var _ Kernel = S2{}

func toS2(p orb.Point) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat(), p.Lon()))
}

func fromS2(p s2.Point) orb.Point {
	ll := s2.LatLngFromPoint(p)

	return orb.Point{ll.Lng.Degrees(), ll.Lat.Degrees()}
}

func toMeters(a s1.Angle) float64 {
	return a.Radians() * orb.EarthRadius
}

func (S2) Distance(a, b orb.Point) float64 {
	return toMeters(toS2(a).Distance(toS2(b)))
}

// Bearing and Destination come from orb/geo, which works on the same sphere;
// golang/geo has no azimuth based operations.

func (S2) Bearing(from, to orb.Point) float64 {
	return geo.Bearing(from, to)
}

func (S2) Destination(p orb.Point, meters, bearing float64) orb.Point {
	return geo.PointAtBearingAndDistance(p, bearing, meters)
}

func (S2) Midpoint(a, b orb.Point) orb.Point {
	return fromS2(s2.Interpolate(0.5, toS2(a), toS2(b)))
}

func (k S2) Along(line orb.LineString, meters float64) orb.Point {
	if len(line) == 0 {
		return orb.Point{}
	}

	if meters <= 0 || len(line) == 1 {
		return line[0]
	}

	var travelled float64

	for i := 1; i < len(line); i++ {
		a, b := toS2(line[i-1]), toS2(line[i])
		seg := toMeters(a.Distance(b))

		if travelled+seg > meters && seg > 0 {
			return fromS2(s2.Interpolate((meters-travelled)/seg, a, b))
		}

		travelled += seg
	}

	return line[len(line)-1]
}

func (k S2) Length(line orb.LineString) float64 {
	var total float64

	for i := 1; i < len(line); i++ {
		total += k.Distance(line[i-1], line[i])
	}

	return total
}

func (S2) Intersect(a, b orb.LineString) []orb.Point {
	return crossings(a, b)
}

// crossings returns the points where edges of a cross or touch edges of b,
// treating every edge as a great circle arc.
func crossings(a, b orb.LineString) []orb.Point {
	var hits []orb.Point

	for i := 1; i < len(a); i++ {
		a0, a1 := toS2(a[i-1]), toS2(a[i])

		for j := 1; j < len(b); j++ {
			b0, b1 := toS2(b[j-1]), toS2(b[j])

			switch s2.CrossingSign(a0, a1, b0, b1) {
			case s2.Cross:
				hits = append(hits, fromS2(s2.Intersection(a0, a1, b0, b1)))
			case s2.MaybeCross:
				// the edges share a vertex
				if v, ok := sharedVertex(a[i-1], a[i], b[j-1], b[j]); ok {
					hits = append(hits, v)
				}
			case s2.DoNotCross:
			}
		}
	}

	return dedupe(hits)
}

func (S2) Boundary(poly orb.Polygon) orb.LineString {
	return Boundary(poly)
}

func sharedVertex(a0, a1, b0, b1 orb.Point) (orb.Point, bool) {
	for _, a := range []orb.Point{a0, a1} {
		if a.Equal(b0) || a.Equal(b1) {
			return a, true
		}
	}

	return orb.Point{}, false
}
