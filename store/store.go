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

// Package store persists generated street addressing keyed by street
// polygon id.
package store

import (
	"context"
	"errors"
	"time"

	"m4o.io/streetaddr"
	"m4o.io/streetaddr/model"
)

// ErrNotFound is returned when no addressing exists for a street polygon.
var ErrNotFound = errors.New("addressing not found")

// ErrMissingID is returned when a record has no street polygon id.
var ErrMissingID = errors.New("street polygon id is required")

// Record is the stored addressing of one street polygon together with the
// options it was generated with.
type Record struct {
	StreetPolygonID string       `json:"streetPolygonId"`
	AreaID          string       `json:"areaId,omitempty"`
	Result          model.Result `json:"result"`
	IntervalMeters  float64      `json:"intervalMeters"`
	OffsetMeters    float64      `json:"offsetMeters"`
	StartNumber     int          `json:"startNumber"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// NewRecord assembles a record from a generation result.  Unset interval and
// offset fall back to the generator defaults.
func NewRecord(streetID, areaID string, opts streetaddr.Options, r *model.Result) Record {
	if opts.IntervalMeters == 0 {
		opts.IntervalMeters = streetaddr.DefaultIntervalMeters
	}

	if opts.OffsetMeters == 0 {
		opts.OffsetMeters = streetaddr.DefaultOffsetMeters
	}

	return Record{
		StreetPolygonID: streetID,
		AreaID:          areaID,
		Result:          *r,
		IntervalMeters:  opts.IntervalMeters,
		OffsetMeters:    opts.OffsetMeters,
		StartNumber:     opts.StartNumber,
	}
}

// TotalLengthMeters is the length of the stored centerline.
func (r Record) TotalLengthMeters() float64 {
	return r.Result.TotalLengthMeters
}

// Store is the persistence collaborator for addressing.  Writes for the same
// street polygon id are serialized; the last upsert wins.
type Store interface {
	// Upsert creates or replaces the addressing of rec.StreetPolygonID and
	// returns the stored record.
	Upsert(ctx context.Context, rec Record) (Record, error)

	// Get returns the addressing of a street polygon or ErrNotFound.
	Get(ctx context.Context, streetPolygonID string) (Record, error)

	// ListByArea returns every record of an area ordered by street polygon
	// id.
	ListByArea(ctx context.Context, areaID string) ([]Record, error)

	// Delete removes the addressing of a street polygon or returns
	// ErrNotFound.
	Delete(ctx context.Context, streetPolygonID string) error

	// Close releases the store's resources.
	Close() error
}
