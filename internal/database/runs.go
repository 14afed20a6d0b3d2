package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"hexclave/pkg/maps"
)

// ErrRunNotFound is returned when a run is not found.
var ErrRunNotFound = errors.New("run not found")

// Run records one board generation attempt.
type Run struct {
	ID        string
	Seed      int64
	Players   int
	Width     int
	Height    int
	LandRatio float64
	Stats     maps.Stats
	Error     string // set when the board could not be split
	CreatedAt time.Time
}

// Failed reports whether generation gave up on this board.
func (r *Run) Failed() bool {
	return r.Error != ""
}

// RunSummary aggregates every stored run for one table size.
type RunSummary struct {
	Players        int
	Runs           int
	Failures       int
	AvgLandHexes   float64
	AvgImbalance   float64
	WorstImbalance int
}

// RecordRun stores a run, assigning its ID and timestamp.
func (db *DB) RecordRun(run *Run) error {
	statsJSON, err := json.Marshal(run.Stats)
	if err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now()
	_, err = db.conn.Exec(`
		INSERT INTO generation_runs (id, seed, players, width, height, land_ratio, land_hexes, imbalance, stats_json, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Seed, run.Players, run.Width, run.Height, run.LandRatio,
		run.Stats.LandHexes, run.Stats.Imbalance, string(statsJSON), run.Error, run.CreatedAt)
	return err
}

const runColumns = `id, seed, players, width, height, land_ratio, stats_json, error, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var r Run
	var statsJSON string
	if err := row.Scan(&r.ID, &r.Seed, &r.Players, &r.Width, &r.Height, &r.LandRatio,
		&statsJSON, &r.Error, &r.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(statsJSON), &r.Stats); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRun retrieves a run by ID.
func (db *DB) GetRun(id string) (*Run, error) {
	r, err := scanRun(db.conn.QueryRow(`SELECT `+runColumns+` FROM generation_runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListRuns returns up to limit runs, newest first.
func (db *DB) ListRuns(limit int) ([]*Run, error) {
	rows, err := db.conn.Query(`
		SELECT `+runColumns+`
		FROM generation_runs
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Summary aggregates stored runs per player count. Averages cover successful
// runs only.
func (db *DB) Summary() ([]RunSummary, error) {
	rows, err := db.conn.Query(`
		SELECT players,
		       COUNT(*),
		       SUM(CASE WHEN error != '' THEN 1 ELSE 0 END),
		       AVG(CASE WHEN error = '' THEN land_hexes END),
		       AVG(CASE WHEN error = '' THEN imbalance END),
		       COALESCE(MAX(CASE WHEN error = '' THEN imbalance END), 0)
		FROM generation_runs
		GROUP BY players
		ORDER BY players
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		var avgLand, avgImbalance sql.NullFloat64
		if err := rows.Scan(&s.Players, &s.Runs, &s.Failures, &avgLand, &avgImbalance, &s.WorstImbalance); err != nil {
			return nil, err
		}
		s.AvgLandHexes = avgLand.Float64
		s.AvgImbalance = avgImbalance.Float64
		out = append(out, s)
	}
	return out, rows.Err()
}
