package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/stratify/design"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("store: run not found")

// ErrNotSampled is returned by NewRun for a design without a sample set.
var ErrNotSampled = errors.New("store: design has no sample set")

// RunClass is the recorded statistics and allocation of one class.
type RunClass struct {
	Code       int     `json:"class_code"`
	PixelCount int     `json:"pixel_count"`
	Proportion float64 `json:"proportion"`
	Allocated  int     `json:"allocated"`
}

// Run is a persisted sampling run. Seed and Strategy replay the draw against a
// grid with the same Fingerprint.
type Run struct {
	RunID       string          `json:"run_id"`
	CreatedAt   time.Time       `json:"created_at"`
	Rows        int             `json:"rows"`
	Cols        int             `json:"cols"`
	Fingerprint uint64          `json:"fingerprint"`
	NoData      []int           `json:"nodata"`
	Policy      string          `json:"policy"`
	Total       int             `json:"total"`
	Strategy    string          `json:"strategy"`
	Seed        uint64          `json:"seed"`
	Classes     []RunClass      `json:"classes,omitempty"`
	Samples     []design.Sample `json:"samples,omitempty"`
}

// NewRun snapshots a sampled design. RunID and CreatedAt are left for InsertRun.
func NewRun(d *design.Design) (*Run, error) {
	set := d.SampleSet()
	if set == nil {
		return nil, fmt.Errorf("%w (state %s)", ErrNotSampled, d.State())
	}
	stats := d.Statistics()
	alloc := d.Allocation()

	run := &Run{
		Rows:        d.Grid().Rows(),
		Cols:        d.Grid().Cols(),
		Fingerprint: d.Grid().Fingerprint(),
		NoData:      d.NoData().Values(),
		Policy:      d.Policy().String(),
		Total:       d.Total(),
		Strategy:    set.Strategy,
		Seed:        set.Seed,
		Classes:     make([]RunClass, len(stats.Classes)),
		Samples:     set.Flatten(),
	}
	for i, c := range stats.Classes {
		run.Classes[i] = RunClass{Code: c.Code, PixelCount: c.PixelCount, Proportion: c.Proportion, Allocated: alloc[i]}
	}
	return run, nil
}

// RunStore provides persistence for sampling runs.
type RunStore struct {
	db *sql.DB
}

// NewRunStore creates a RunStore over a migrated database.
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db.DB}
}

// InsertRun stores run with its classes and samples in one transaction.
// An empty RunID gets a new UUID and a zero CreatedAt the current time.
func (s *RunStore) InsertRun(ctx context.Context, run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	nodata, err := json.Marshal(nonNil(run.NoData))
	if err != nil {
		return fmt.Errorf("encode nodata: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (
			run_id, created_at_ns, grid_rows, grid_cols, fingerprint,
			nodata, policy, total, strategy, seed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.CreatedAt.UnixNano(),
		run.Rows,
		run.Cols,
		formatFingerprint(run.Fingerprint),
		string(nodata),
		run.Policy,
		run.Total,
		run.Strategy,
		int64(run.Seed),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	classStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_classes (run_id, class_code, pixel_count, proportion, allocated)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare run classes: %w", err)
	}
	defer classStmt.Close()
	for _, c := range run.Classes {
		if _, err := classStmt.ExecContext(ctx, run.RunID, c.Code, c.PixelCount, c.Proportion, c.Allocated); err != nil {
			return fmt.Errorf("insert run class %d: %w", c.Code, err)
		}
	}

	sampleStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_samples (run_id, seq, class_code, pixel_row, pixel_col)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare run samples: %w", err)
	}
	defer sampleStmt.Close()
	for i, smp := range run.Samples {
		if _, err := sampleStmt.ExecContext(ctx, run.RunID, i, smp.Code, smp.Row, smp.Col); err != nil {
			return fmt.Errorf("insert run sample %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// GetRun loads a run with its classes and samples.
func (s *RunStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT run_id, created_at_ns, grid_rows, grid_cols, fingerprint,
		       nodata, policy, total, strategy, seed
		FROM runs WHERE run_id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}

	if run.Classes, err = s.runClasses(ctx, runID); err != nil {
		return nil, err
	}
	if run.Samples, err = s.runSamples(ctx, runID); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns every run header, newest first. Classes and Samples are
// not loaded; use GetRun for a full run.
func (s *RunStore) ListRuns(ctx context.Context) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, created_at_ns, grid_rows, grid_cols, fingerprint,
		       nodata, policy, total, strategy, seed
		FROM runs ORDER BY created_at_ns DESC, run_id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DeleteRun removes a run and its rows.
func (s *RunStore) DeleteRun(ctx context.Context, runID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete run: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM run_samples WHERE run_id = ?`,
		`DELETE FROM run_classes WHERE run_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, runID); err != nil {
			return fmt.Errorf("delete run %s: %w", runID, err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("delete run %s: %w", runID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run %s: %w", runID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return tx.Commit()
}

func (s *RunStore) runClasses(ctx context.Context, runID string) ([]RunClass, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT class_code, pixel_count, proportion, allocated
		FROM run_classes WHERE run_id = ? ORDER BY class_code`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run classes: %w", err)
	}
	defer rows.Close()

	var out []RunClass
	for rows.Next() {
		var c RunClass
		if err := rows.Scan(&c.Code, &c.PixelCount, &c.Proportion, &c.Allocated); err != nil {
			return nil, fmt.Errorf("scan run class: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *RunStore) runSamples(ctx context.Context, runID string) ([]design.Sample, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT class_code, pixel_row, pixel_col
		FROM run_samples WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run samples: %w", err)
	}
	defer rows.Close()

	var out []design.Sample
	for rows.Next() {
		var smp design.Sample
		if err := rows.Scan(&smp.Code, &smp.Row, &smp.Col); err != nil {
			return nil, fmt.Errorf("scan run sample: %w", err)
		}
		out = append(out, smp)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		run         Run
		createdAtNs int64
		fingerprint string
		nodata      string
		seed        int64
	)
	err := sc.Scan(&run.RunID, &createdAtNs, &run.Rows, &run.Cols, &fingerprint,
		&nodata, &run.Policy, &run.Total, &run.Strategy, &seed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}

	run.CreatedAt = time.Unix(0, createdAtNs)
	run.Seed = uint64(seed)
	if run.Fingerprint, err = strconv.ParseUint(fingerprint, 16, 64); err != nil {
		return nil, fmt.Errorf("parse fingerprint of run %s: %w", run.RunID, err)
	}
	if err := json.Unmarshal([]byte(nodata), &run.NoData); err != nil {
		return nil, fmt.Errorf("parse nodata of run %s: %w", run.RunID, err)
	}
	return &run, nil
}

func formatFingerprint(f uint64) string {
	return fmt.Sprintf("%016x", f)
}

func nonNil(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}
