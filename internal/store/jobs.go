package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"jobscout-engine/internal/domain"
)

// InsertJob persists a record and returns its id. Tracked jobs (ignore=0)
// get the full application-status ladder created alongside.
func (d *DB) InsertJob(ctx context.Context, rec domain.Record) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	res, err := d.Pool.ExecContext(ctx, `
INSERT INTO jobs(title, company, location, link, description, compensation, site, search_term, "ignore", created_at, updated_at)
VALUES(?,?,?,?,?,?,?,?,?,?,?);`,
		rec.Title,
		rec.Company,
		rec.Location,
		rec.Link,
		rec.Description,
		rec.Compensation,
		rec.Site,
		rec.SearchTerm,
		rec.Ignore,
		now,
		now,
	)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if rec.Ignore == domain.Track {
		if err := d.createStatusRecords(ctx, id); err != nil {
			return 0, fmt.Errorf("create status records: %w", err)
		}
	}

	return id, nil
}

func (d *DB) createStatusRecords(ctx context.Context, jobID int64) error {
	for _, status := range ApplicationStatuses {
		if _, err := d.Pool.ExecContext(ctx, `
INSERT INTO application_statuses(job_id, status, checked, date_reached)
VALUES(?,?,0,NULL);`, jobID, status); err != nil {
			return err
		}
	}
	return nil
}

// FindJobBy looks up an existing job by exact title/company/location.
// Cross-run duplicate checks go through here.
func (d *DB) FindJobBy(ctx context.Context, title, company, location string) (int64, bool, error) {
	var id int64
	err := d.Pool.QueryRowContext(ctx, `
SELECT id FROM jobs
WHERE title = ? AND company = ? AND location = ?
LIMIT 1;`, title, company, location).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (d *DB) SetIgnore(ctx context.Context, id int64, ignore bool) error {
	val := domain.Track
	if ignore {
		val = domain.Ignore
	}
	_, err := d.Pool.ExecContext(ctx, `
UPDATE jobs
SET "ignore" = ?, updated_at = ?
WHERE id = ?;`, val, time.Now().UTC().Format(time.RFC3339), id)
	return err
}

// JobsByIDs fetches records for the given ids; missing ids are skipped.
func (d *DB) JobsByIDs(ctx context.Context, ids []int64) ([]domain.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimRight(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := fmt.Sprintf(`
SELECT id, title, company, location, link, description, compensation, site, search_term, "ignore"
FROM jobs
WHERE id IN (%s);`, placeholders)

	rows, err := d.Pool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListJobs returns jobs, tracked-only by default.
func (d *DB) ListJobs(ctx context.Context, includeIgnored bool) ([]domain.Record, error) {
	where := `WHERE "ignore" = 0`
	if includeIgnored {
		where = ""
	}

	query := fmt.Sprintf(`
SELECT id, title, company, location, link, description, compensation, site, search_term, "ignore"
FROM jobs
%s
ORDER BY id DESC;`, where)

	rows, err := d.Pool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (d *DB) DeleteJob(ctx context.Context, id int64) error {
	// Status rows go with the job (ON DELETE CASCADE).
	_, err := d.Pool.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?;`, id)
	return err
}

func scanRecords(rows *sql.Rows) ([]domain.Record, error) {
	var out []domain.Record
	for rows.Next() {
		var r domain.Record
		if err := rows.Scan(&r.ID, &r.Title, &r.Company, &r.Location, &r.Link,
			&r.Description, &r.Compensation, &r.Site, &r.SearchTerm, &r.Ignore); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
