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

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"m4o.io/streetaddr/model"
)

const (
	maxOpenConns = 16
	maxIdleConns = 8
)

const schema = `CREATE TABLE IF NOT EXISTS street_addressing (
	street_polygon_id TEXT PRIMARY KEY,
	area_id           TEXT NOT NULL DEFAULT '',
	centerline        JSONB NOT NULL,
	address_points    JSONB NOT NULL,
	cross_lines       JSONB NOT NULL,
	interval_meters   DOUBLE PRECISION NOT NULL,
	offset_meters     DOUBLE PRECISION NOT NULL,
	start_number      INTEGER NOT NULL,
	total_length      DOUBLE PRECISION NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS street_addressing_area_idx ON street_addressing (area_id)`

const upsertSQL = `INSERT INTO street_addressing
	(street_polygon_id, area_id, centerline, address_points, cross_lines,
	 interval_meters, offset_meters, start_number, total_length, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
ON CONFLICT (street_polygon_id) DO UPDATE SET
	area_id = EXCLUDED.area_id,
	centerline = EXCLUDED.centerline,
	address_points = EXCLUDED.address_points,
	cross_lines = EXCLUDED.cross_lines,
	interval_meters = EXCLUDED.interval_meters,
	offset_meters = EXCLUDED.offset_meters,
	start_number = EXCLUDED.start_number,
	total_length = EXCLUDED.total_length,
	updated_at = now()
RETURNING updated_at`

const selectColumns = `SELECT street_polygon_id, area_id, centerline, address_points, cross_lines,
	interval_meters, offset_meters, start_number, total_length, updated_at
FROM street_addressing`

// Postgres is a Store backed by a PostgreSQL table.
type Postgres struct {
	db *sql.DB
}

var _ Store = (*Postgres)(nil)

// OpenPostgres opens a connection pool with the DSN.
func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)

	return &Postgres{db: db}, nil
}

// AttachPostgres wraps an existing connection pool.
func AttachPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// Migrate creates the addressing table when it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("could not create addressing table: %w", err)
	}

	return nil
}

func (p *Postgres) Upsert(ctx context.Context, rec Record) (Record, error) {
	if rec.StreetPolygonID == "" {
		return Record{}, ErrMissingID
	}

	cols, err := encodeColumns(rec.Result)
	if err != nil {
		return Record{}, err
	}

	row := p.db.QueryRowContext(ctx, upsertSQL,
		rec.StreetPolygonID, rec.AreaID, string(cols.centerline), string(cols.addressPoints), string(cols.crossLines),
		rec.IntervalMeters, rec.OffsetMeters, rec.StartNumber, rec.Result.TotalLengthMeters)

	if err := row.Scan(&rec.UpdatedAt); err != nil {
		return Record{}, fmt.Errorf("could not upsert addressing %s: %w", rec.StreetPolygonID, err)
	}

	return rec, nil
}

func (p *Postgres) Get(ctx context.Context, streetPolygonID string) (Record, error) {
	row := p.db.QueryRowContext(ctx, selectColumns+" WHERE street_polygon_id = $1", streetPolygonID)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	} else if err != nil {
		return Record{}, fmt.Errorf("could not read addressing %s: %w", streetPolygonID, err)
	}

	return rec, nil
}

func (p *Postgres) ListByArea(ctx context.Context, areaID string) ([]Record, error) {
	rows, err := p.db.QueryContext(ctx, selectColumns+" WHERE area_id = $1 ORDER BY street_polygon_id", areaID)
	if err != nil {
		return nil, fmt.Errorf("could not list addressing of area %s: %w", areaID, err)
	}
	defer rows.Close()

	var out []Record

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, rec)
	}

	return out, rows.Err()
}

func (p *Postgres) Delete(ctx context.Context, streetPolygonID string) error {
	res, err := p.db.ExecContext(ctx, "DELETE FROM street_addressing WHERE street_polygon_id = $1", streetPolygonID)
	if err != nil {
		return fmt.Errorf("could not delete addressing %s: %w", streetPolygonID, err)
	}

	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}

	return nil
}

// Close closes the connection pool.
func (p *Postgres) Close() error { return p.db.Close() }

// columns holds the JSONB encodings of a result.  They are sent as text
// since lib/pq encodes byte slices as bytea.
type columns struct {
	centerline    []byte
	addressPoints []byte
	crossLines    []byte
}

func encodeColumns(r model.Result) (columns, error) {
	var (
		cols columns
		err  error
	)

	if cols.centerline, err = json.Marshal(geojson.NewGeometry(r.Centerline)); err != nil {
		return columns{}, fmt.Errorf("could not encode centerline: %w", err)
	}

	points := r.AddressPoints
	if points == nil {
		points = []model.AddressPoint{}
	}

	if cols.addressPoints, err = json.Marshal(points); err != nil {
		return columns{}, fmt.Errorf("could not encode address points: %w", err)
	}

	lines := r.CrossLines
	if lines == nil {
		lines = []model.CrossLine{}
	}

	if cols.crossLines, err = json.Marshal(lines); err != nil {
		return columns{}, fmt.Errorf("could not encode cross lines: %w", err)
	}

	return cols, nil
}

func decodeColumns(cols columns, totalLength float64) (model.Result, error) {
	r := model.Result{TotalLengthMeters: totalLength}

	g, err := geojson.UnmarshalGeometry(cols.centerline)
	if err != nil {
		return model.Result{}, fmt.Errorf("could not decode centerline: %w", err)
	}

	ls, ok := g.Geometry().(orb.LineString)
	if !ok {
		return model.Result{}, fmt.Errorf("centerline must be a LineString, got %s", g.Type)
	}

	r.Centerline = ls

	if err := json.Unmarshal(cols.addressPoints, &r.AddressPoints); err != nil {
		return model.Result{}, fmt.Errorf("could not decode address points: %w", err)
	}

	if err := json.Unmarshal(cols.crossLines, &r.CrossLines); err != nil {
		return model.Result{}, fmt.Errorf("could not decode cross lines: %w", err)
	}

	return r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var (
		rec         Record
		cols        columns
		totalLength float64
	)

	err := s.Scan(&rec.StreetPolygonID, &rec.AreaID, &cols.centerline, &cols.addressPoints, &cols.crossLines,
		&rec.IntervalMeters, &rec.OffsetMeters, &rec.StartNumber, &totalLength, &rec.UpdatedAt)
	if err != nil {
		return Record{}, err
	}

	if rec.Result, err = decodeColumns(cols, totalLength); err != nil {
		return Record{}, err
	}

	return rec, nil
}
