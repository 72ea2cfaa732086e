package store

import (
	"database/sql"
	"time"
)

// FetchRun is the audit record of one coordinator fetch.
type FetchRun struct {
	ID           int64
	FetchID      string
	Query        string
	StartedAt    time.Time
	FinishedAt   sql.NullTime
	Success      bool
	ErrorKind    sql.NullString // provider error kind, "" for untyped failures
	ErrorMessage sql.NullString
	ResolvedCity sql.NullString
}

// StartFetchRun records the start of a fetch.
func (s *Store) StartFetchRun(fetchID, query string) (*FetchRun, error) {
	run := &FetchRun{
		FetchID:   fetchID,
		Query:     query,
		StartedAt: time.Now().UTC(),
	}

	result, err := s.db.Exec(`
		INSERT INTO fetch_runs (fetch_id, query, started_at, success)
		VALUES (?, ?, ?, FALSE)
	`, run.FetchID, run.Query, run.StartedAt)
	if err != nil {
		return nil, err
	}

	run.ID, err = result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return run, nil
}

// CompleteFetchRun stamps the finish time and stores the outcome fields.
func (s *Store) CompleteFetchRun(run *FetchRun) error {
	if run == nil {
		return nil
	}

	run.FinishedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}

	_, err := s.db.Exec(`
		UPDATE fetch_runs SET
			finished_at = ?,
			success = ?,
			error_kind = ?,
			error_message = ?,
			resolved_city = ?
		WHERE id = ?
	`, run.FinishedAt, run.Success, run.ErrorKind, run.ErrorMessage, run.ResolvedCity, run.ID)
	return err
}

// RecentFetchRuns returns up to limit runs, newest first.
func (s *Store) RecentFetchRuns(limit int) ([]FetchRun, error) {
	rows, err := s.db.Query(`
		SELECT id, fetch_id, query, started_at, finished_at, success,
		       error_kind, error_message, resolved_city
		FROM fetch_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []FetchRun
	for rows.Next() {
		var r FetchRun
		if err := rows.Scan(&r.ID, &r.FetchID, &r.Query, &r.StartedAt, &r.FinishedAt,
			&r.Success, &r.ErrorKind, &r.ErrorMessage, &r.ResolvedCity); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// FetchHealth summarises fetch outcomes per day.
type FetchHealth struct {
	Date        string
	TotalRuns   int
	SuccessRuns int
	FailedRuns  int
}

// GetFetchHealth returns per-day summaries for the last days days.
func (s *Store) GetFetchHealth(days int) ([]FetchHealth, error) {
	rows, err := s.db.Query(`
		SELECT
			DATE(SUBSTR(started_at, 1, 19)) AS date,
			COUNT(*) AS total_runs,
			SUM(CASE WHEN success THEN 1 ELSE 0 END) AS success_runs,
			SUM(CASE WHEN NOT success THEN 1 ELSE 0 END) AS failed_runs
		FROM fetch_runs
		WHERE SUBSTR(started_at, 1, 19) > datetime('now', '-' || ? || ' days')
		GROUP BY date
		ORDER BY date DESC
	`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FetchHealth
	for rows.Next() {
		var h FetchHealth
		if err := rows.Scan(&h.Date, &h.TotalRuns, &h.SuccessRuns, &h.FailedRuns); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
