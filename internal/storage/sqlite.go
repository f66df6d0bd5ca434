package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/quickrmbg/quick-rmbg/internal/models"
	_ "modernc.org/sqlite"
)

type Storage struct {
	db *sql.DB
}

func New(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		completed_at TIMESTAMP,
		input_path TEXT NOT NULL,
		mode TEXT NOT NULL,
		model TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'running',
		reason TEXT,
		final_path TEXT,
		error TEXT
	);

	CREATE TABLE IF NOT EXISTS passes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id INTEGER NOT NULL REFERENCES jobs(id),
		pass_num INTEGER NOT NULL,
		input_path TEXT NOT NULL,
		output_path TEXT NOT NULL,
		ok INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		UNIQUE(job_id, pass_num)
	);

	CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
	CREATE INDEX IF NOT EXISTS idx_passes_job ON passes(job_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// CreateJob inserts a running job row and returns its id.
func (s *Storage) CreateJob(job models.Job) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO jobs (input_path, mode, model, status) VALUES (?, ?, ?, ?)`,
		job.InputPath, job.Mode, job.Model, models.JobStatusRunning,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// RecordPass inserts one pass row for a job.
func (s *Storage) RecordPass(jobID int64, pass models.PassResult) error {
	_, err := s.db.Exec(
		`INSERT INTO passes (job_id, pass_num, input_path, output_path, ok, error, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		jobID, pass.Index, pass.InputPath, pass.OutputPath, pass.OK, pass.Error,
		pass.Duration.Milliseconds(),
	)
	return err
}

// FinishJob stamps a job's terminal state.
func (s *Storage) FinishJob(jobID int64, out models.Outcome) error {
	status := models.JobStatusComplete
	errText := ""
	if !out.OK {
		status = models.JobStatusFailed
		if n := len(out.Passes); n > 0 {
			errText = out.Passes[n-1].Error
		}
	}

	_, err := s.db.Exec(
		`UPDATE jobs SET completed_at = ?, status = ?, reason = ?, final_path = ?, error = ? WHERE id = ?`,
		time.Now(), status, out.Reason, out.FinalPath, errText, jobID,
	)
	return err
}

func (s *Storage) GetJob(id int64) (*models.JobRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, created_at, completed_at, input_path, mode, model, status, reason, final_path, error
		 FROM jobs WHERE id = ?`, id,
	)

	job, err := scanJob(row)
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (s *Storage) ListJobs(limit int) ([]*models.JobRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, created_at, completed_at, input_path, mode, model, status, reason, final_path, error
		 FROM jobs ORDER BY created_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*models.JobRecord
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

func (s *Storage) GetPassesForJob(jobID int64) ([]*models.PassRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, job_id, pass_num, input_path, output_path, ok, error, duration_ms
		 FROM passes WHERE job_id = ? ORDER BY pass_num`, jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passes []*models.PassRecord
	for rows.Next() {
		var pass models.PassRecord
		var errText sql.NullString

		err := rows.Scan(
			&pass.ID, &pass.JobID, &pass.PassNum, &pass.InputPath,
			&pass.OutputPath, &pass.OK, &errText, &pass.DurationMS,
		)
		if err != nil {
			return nil, err
		}

		if errText.Valid {
			pass.Error = errText.String
		}

		passes = append(passes, &pass)
	}

	return passes, rows.Err()
}

func (s *Storage) DeleteJob(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM passes WHERE job_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM jobs WHERE id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*models.JobRecord, error) {
	var job models.JobRecord
	var completedAt sql.NullTime
	var reason, finalPath, errText sql.NullString

	err := row.Scan(
		&job.ID, &job.CreatedAt, &completedAt, &job.InputPath,
		&job.Mode, &job.Model, &job.Status, &reason, &finalPath, &errText,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		job.CompletedAt = &completedAt.Time
	}
	if reason.Valid {
		job.Reason = models.Reason(reason.String)
	}
	if finalPath.Valid {
		job.FinalPath = finalPath.String
	}
	if errText.Valid {
		job.Error = errText.String
	}

	return &job, nil
}

// FormatTimeAgo renders a compact relative timestamp for list views.
func FormatTimeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("Jan 2")
	}
}
