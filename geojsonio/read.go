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

// Package geojsonio converts between GeoJSON documents and the addressing
// model.
package geojsonio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"m4o.io/streetaddr"
)

// ErrNoPolygon is returned when a document holds no polygon.
var ErrNoPolygon = errors.New("no polygon in GeoJSON document")

// Property keys recognized on street features.
var (
	idKeys   = []string{"id", "streetPolygonId"}
	areaKeys = []string{"mahallaId", "areaId"}
)

type typeProbe struct {
	Type string `json:"type"`
}

// ReadPolygon reads a single street polygon from a Polygon or MultiPolygon
// geometry, a Feature, or a FeatureCollection.  For collections and
// multipolygons the first polygon wins.
func ReadPolygon(r io.Reader) (orb.Polygon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var probe typeProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("could not parse GeoJSON: %w", err)
	}

	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("could not parse feature collection: %w", err)
		}

		for _, f := range fc.Features {
			if poly, ok := polygonOf(f.Geometry); ok {
				return poly, nil
			}
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("could not parse feature: %w", err)
		}

		if poly, ok := polygonOf(f.Geometry); ok {
			return poly, nil
		}
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("could not parse geometry: %w", err)
		}

		if poly, ok := polygonOf(g.Geometry()); ok {
			return poly, nil
		}
	}

	return nil, ErrNoPolygon
}

// ReadStreets reads every feature of a FeatureCollection as a street.  The
// street id comes from the feature id or its id property, falling back to
// the feature's position; the area id comes from the mahallaId or areaId
// property.  Features without a polygon are kept with an empty polygon so
// that generation reports them as failures.
func ReadStreets(r io.Reader) ([]streetaddr.Street, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("could not parse feature collection: %w", err)
	}

	streets := make([]streetaddr.Street, 0, len(fc.Features))

	for i, f := range fc.Features {
		id := fmt.Sprintf("street-%d", i)
		if f.ID != nil {
			id = fmt.Sprint(f.ID)
		} else if v, ok := property(f.Properties, idKeys); ok {
			id = v
		}

		area, _ := property(f.Properties, areaKeys)
		poly, _ := polygonOf(f.Geometry)

		streets = append(streets, streetaddr.Street{ID: id, AreaID: area, Polygon: poly})
	}

	return streets, nil
}

func polygonOf(g orb.Geometry) (orb.Polygon, bool) {
	switch g := g.(type) {
	case orb.Polygon:
		return g, len(g) > 0
	case orb.MultiPolygon:
		if len(g) > 0 && len(g[0]) > 0 {
			return g[0], true
		}
	}

	return nil, false
}

func property(props geojson.Properties, keys []string) (string, bool) {
	for _, k := range keys {
		if v, ok := props[k]; ok && v != nil {
			return fmt.Sprint(v), true
		}
	}

	return "", false
}
