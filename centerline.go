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
	"log/slog"

	"github.com/paulmach/orb"

	"m4o.io/streetaddr/geodesy"
)

const (
	// endpointSamples bounds the number of ring vertices compared when
	// looking for the two ends of the street.
	endpointSamples = 50

	// resampleStations is the number of intervals each side of the ring is
	// divided into; the centerline has one more point than this.
	resampleStations = 100
)

// Centerline derives the spine of an elongated street polygon.  The two
// vertices farthest apart are taken as the ends of the street, the ring is
// split there into its two long sides, and the centerline is the sequence
// of midpoints between facing stations on those sides.
//
// Centerline never fails and always returns at least two points: for rings
// without two distinct vertices it returns a straight line from the first
// vertex to the middle one.
func Centerline(k geodesy.Kernel, poly orb.Polygon) orb.LineString {
	return centerline(k, poly, slog.Default())
}

func centerline(k geodesy.Kernel, poly orb.Polygon, logger *slog.Logger) orb.LineString {
	line, err := extractCenterline(k, outerRing(poly))
	if err != nil {
		logger.Debug("falling back to a straight centerline", "error", err)

		return fallbackCenterline(outerRing(poly))
	}

	return line
}

func extractCenterline(k geodesy.Kernel, ring orb.Ring) (orb.LineString, error) {
	if len(ring) < 2 {
		return nil, errDegenerateRing
	}

	i, j, ok := farthestPair(k, ring, max(1, len(ring)/endpointSamples))
	if !ok {
		return nil, errDegenerateRing
	}

	sideA, sideB := splitRing(ring, i, j)
	if len(sideA) < 2 || len(sideB) < 2 {
		return nil, errShortSide
	}

	lenA, lenB := k.Length(sideA), k.Length(sideB)

	spine := make(orb.LineString, 0, resampleStations+1)

	for s := 0; s <= resampleStations; s++ {
		t := float64(s) / resampleStations

		a := k.Along(sideA, t*lenA)
		b := k.Along(sideB, (1-t)*lenB) // side B runs the other way

		spine = append(spine, k.Midpoint(a, b))
	}

	return spine, nil
}

// farthestPair scans every stride-th vertex for the pair farthest apart.
// The returned indices satisfy i < j.  ok is false when no two sampled
// vertices are apart.
func farthestPair(k geodesy.Kernel, ring orb.Ring, stride int) (i, j int, ok bool) {
	var best float64

	for a := 0; a < len(ring); a += stride {
		for b := a + stride; b < len(ring); b += stride {
			if d := k.Distance(ring[a], ring[b]); d > best {
				best, i, j = d, a, b
			}
		}
	}

	return i, j, best > 0
}

// splitRing cuts the closed ring at vertices i < j into the two paths
// i→j and j→i.  The second path skips the duplicated closing vertex.
func splitRing(ring orb.Ring, i, j int) (orb.LineString, orb.LineString) {
	a := make(orb.LineString, 0, j-i+1)
	a = append(a, ring[i:j+1]...)

	b := make(orb.LineString, 0, len(ring)-j+i)
	b = append(b, ring[j:]...)
	b = append(b, ring[1:i+1]...)

	return a, b
}

// fallbackCenterline joins the first vertex to the middle one.  An empty
// ring yields a zero length line at the origin.
func fallbackCenterline(ring orb.Ring) orb.LineString {
	if len(ring) == 0 {
		return orb.LineString{{}, {}}
	}

	return orb.LineString{ring[0], ring[len(ring)/2]}
}

func outerRing(poly orb.Polygon) orb.Ring {
	if len(poly) == 0 {
		return nil
	}

	return poly[0]
}
