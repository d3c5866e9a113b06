package followups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PGStore is the durable job store. The followup_jobs table is time-indexed
// on run_at; ClaimDue uses UPDATE ... RETURNING so concurrent pollers never
// claim the same row twice.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Enqueue(ctx context.Context, job Job) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO followup_jobs (id, job_type, email, first_name, city, size, run_at, created_at, status, attempts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0)`,
		job.ID, string(job.Type), job.Email, job.FirstName, job.City, job.Size,
		job.RunAt, job.CreatedAt, StatusPending)
	if err != nil {
		return fmt.Errorf("enqueue job: %w", err)
	}
	return nil
}

func (s *PGStore) Get(ctx context.Context, id uuid.UUID) (Job, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, job_type, email, first_name, city, size, run_at, created_at, status, attempts, COALESCE(last_error, '')
		FROM followup_jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (s *PGStore) ClaimDue(ctx context.Context, now time.Time, limit int) ([]Job, error) {
	rows, err := s.db.QueryContext(ctx, `
		UPDATE followup_jobs
		SET status = 'claimed'
		WHERE id IN (
			SELECT id FROM followup_jobs
			WHERE status = $1 AND run_at <= $2
			ORDER BY run_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, job_type, email, first_name, city, size, run_at, created_at, status, attempts, COALESCE(last_error, '')`,
		StatusPending, now, limit)
	if err != nil {
		return nil, fmt.Errorf("claim due jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (s *PGStore) Release(ctx context.Context, id uuid.UUID) error {
	return s.exec(ctx, `UPDATE followup_jobs SET status = $1 WHERE id = $2`, StatusPending, id)
}

func (s *PGStore) MarkSent(ctx context.Context, id uuid.UUID) error {
	return s.exec(ctx, `UPDATE followup_jobs SET status = $1 WHERE id = $2`, StatusSent, id)
}

func (s *PGStore) RecordFailure(ctx context.Context, id uuid.UUID, lastError string) (int, error) {
	// Status goes back to pending so the next ClaimDue can retry the job
	var attempts int
	err := s.db.QueryRowContext(ctx, `
		UPDATE followup_jobs SET attempts = attempts + 1, last_error = $1, status = $2
		WHERE id = $3
		RETURNING attempts`, lastError, StatusPending, id).Scan(&attempts)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrJobNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("record failure: %w", err)
	}
	return attempts, nil
}

func (s *PGStore) MarkFailed(ctx context.Context, id uuid.UUID, lastError string) error {
	return s.exec(ctx, `UPDATE followup_jobs SET status = $1, last_error = $2 WHERE id = $3`, StatusFailed, lastError, id)
}

func (s *PGStore) CountPending(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM followup_jobs WHERE status = $1`, StatusPending).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending jobs: %w", err)
	}
	return count, nil
}

func (s *PGStore) exec(ctx context.Context, query string, args ...interface{}) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrJobNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row scanner) (Job, error) {
	var job Job
	var jobType string
	err := row.Scan(&job.ID, &jobType, &job.Email, &job.FirstName, &job.City, &job.Size,
		&job.RunAt, &job.CreatedAt, &job.Status, &job.Attempts, &job.LastError)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrJobNotFound
	}
	if err != nil {
		return Job{}, fmt.Errorf("scan job: %w", err)
	}
	job.Type = JobType(jobType)
	return job, nil
}
