// Package refdb provides read-only access to the reference database holding
// the registered monitoring stations and the already-persisted samples.
package refdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eddcli/internal/config"
)

// ReferenceStore is the query surface the pipeline needs. Implementations
// must be read-only; the pipeline never writes to the reference database.
type ReferenceStore interface {
	// StationExists reports whether a station with exactly this name (case
	// and whitespace sensitive) is registered.
	StationExists(ctx context.Context, name string) (bool, error)

	// FindSampleStation returns the station name the sample id is already
	// registered under, if any.
	FindSampleStation(ctx context.Context, sampleID string) (string, bool, error)
}

const stationExistsSQL = `
    SELECT 1
    FROM station
    WHERE name = $1
`

// Store wraps reference database access helpers backed by a pgx pool.
type Store struct {
	pool *pgxpool.Pool

	// sampleSQL is fixed per run; the sample table name comes from the
	// resolved data-type configuration, never from file contents.
	sampleSQL string

	// Per-run caches. Repeated names and ids resolve without another round
	// trip; decisions and comment texts are unaffected.
	stationCache map[string]bool
	sampleCache  map[string]sampleHit
}

type sampleHit struct {
	station string
	found   bool
}

// New creates a Store for the given connection settings and data type, and
// verifies connectivity with a probe query. Any failure here aborts the run
// before the pipeline touches the input files.
func New(ctx context.Context, db config.DatabaseConfig, dt config.DataTypeConfig) (*Store, error) {
	pool, err := pgxpool.New(ctx, db.ConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	var one int
	if err := pool.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		pool.Close()
		return nil, fmt.Errorf("reference database unreachable: %w", err)
	}

	sampleSQL := fmt.Sprintf(`
    SELECT s.name
    FROM %s ms
    JOIN station s ON s.id = ms.station
    WHERE ms.%s = $1
    LIMIT 1
`, dt.SampleTable, dt.SampleIDCol)

	return &Store{
		pool:         pool,
		sampleSQL:    sampleSQL,
		stationCache: make(map[string]bool),
		sampleCache:  make(map[string]sampleHit),
	}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// StationExists implements ReferenceStore.
func (s *Store) StationExists(ctx context.Context, name string) (bool, error) {
	if hit, ok := s.stationCache[name]; ok {
		return hit, nil
	}
	var one int
	err := s.pool.QueryRow(ctx, stationExistsSQL, name).Scan(&one)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		s.stationCache[name] = false
		return false, nil
	case err != nil:
		return false, fmt.Errorf("station lookup failed: %w", err)
	}
	s.stationCache[name] = true
	return true, nil
}

// FindSampleStation implements ReferenceStore.
func (s *Store) FindSampleStation(ctx context.Context, sampleID string) (string, bool, error) {
	if hit, ok := s.sampleCache[sampleID]; ok {
		return hit.station, hit.found, nil
	}
	var station string
	err := s.pool.QueryRow(ctx, s.sampleSQL, sampleID).Scan(&station)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		s.sampleCache[sampleID] = sampleHit{}
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("sample lookup failed: %w", err)
	}
	s.sampleCache[sampleID] = sampleHit{station: station, found: true}
	return station, true, nil
}
