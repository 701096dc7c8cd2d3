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

package geojsonio

import (
	"strconv"

	"github.com/paulmach/orb/geojson"

	"m4o.io/streetaddr/model"
)

// Feature kinds, stored in the "kind" property.
const (
	KindCenterline = "centerline"
	KindCrossLine  = "cross-line"
	KindAddress    = "address"
)

// Map styling hints, using simplestyle property names.
const (
	crossLineColor = "#ffffff"
	leftColor      = "#1f77b4"
	rightColor     = "#d62728"
)

// ResultFeatures renders a result as a feature collection: the centerline,
// one line per cross line and one point per address marker.  streetID, when
// not empty, is copied onto every feature.
func ResultFeatures(streetID string, r *model.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	base := func(kind string) geojson.Properties {
		props := geojson.Properties{"kind": kind}
		if streetID != "" {
			props["streetPolygonId"] = streetID
		}

		return props
	}

	if len(r.Centerline) > 0 {
		f := geojson.NewFeature(r.Centerline)
		f.Properties = base(KindCenterline)
		f.Properties["totalLength"] = r.TotalLengthMeters
		fc.Append(f)
	}

	for _, c := range r.CrossLines {
		f := geojson.NewFeature(c.LineString())
		f.ID = c.ID
		f.Properties = base(KindCrossLine)
		f.Properties["stroke"] = crossLineColor
		fc.Append(f)
	}

	for _, p := range r.AddressPoints {
		f := geojson.NewFeature(p.Position)
		f.ID = p.ID
		f.Properties = base(KindAddress)
		f.Properties["number"] = p.Number
		f.Properties["side"] = p.Side.String()
		f.Properties["label"] = strconv.Itoa(p.Number)
		f.Properties["marker-color"] = sideColor(p.Side)
		fc.Append(f)
	}

	if bbox := r.BoundingBox(); !bbox.IsEmpty() {
		fc.BBox = geojson.NewBBox(bbox.Bound())
	}

	return fc
}

func sideColor(s model.Side) string {
	if s == model.Left {
		return leftColor
	}

	return rightColor
}
