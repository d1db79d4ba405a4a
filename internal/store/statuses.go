package store

import (
	"context"
	"fmt"
	"time"
)

type ApplicationStatus struct {
	ID          int64  `json:"id"`
	JobID       int64  `json:"job_id"`
	Status      string `json:"status"`
	Checked     int    `json:"checked"`
	DateReached string `json:"date_reached,omitempty"`
}

func validStatus(name string) bool {
	for _, s := range ApplicationStatuses {
		if s == name {
			return true
		}
	}
	return false
}

// UpdateApplicationStatus checks or unchecks one milestone for a job.
// Checking without an explicit date stamps today.
func (d *DB) UpdateApplicationStatus(ctx context.Context, jobID int64, status string, checked bool, dateReached string) error {
	if !validStatus(status) {
		return fmt.Errorf("unknown application status %q", status)
	}

	checkedVal := 0
	if checked {
		checkedVal = 1
		if dateReached == "" {
			dateReached = time.Now().UTC().Format("2006-01-02")
		}
	} else {
		dateReached = ""
	}

	var date any
	if dateReached != "" {
		date = dateReached
	}

	res, err := d.Pool.ExecContext(ctx, `
UPDATE application_statuses
SET checked = ?, date_reached = ?
WHERE job_id = ? AND status = ?;`, checkedVal, date, jobID, status)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("no status row for job %d status %q", jobID, status)
	}
	return nil
}

func (d *DB) ApplicationStatusesByJob(ctx context.Context, jobID int64) ([]ApplicationStatus, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, job_id, status, checked, COALESCE(date_reached, '')
FROM application_statuses
WHERE job_id = ?
ORDER BY id;`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ApplicationStatus
	for rows.Next() {
		var s ApplicationStatus
		if err := rows.Scan(&s.ID, &s.JobID, &s.Status, &s.Checked, &s.DateReached); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ResetApplicationStatuses clears every milestone for a job.
func (d *DB) ResetApplicationStatuses(ctx context.Context, jobID int64) error {
	_, err := d.Pool.ExecContext(ctx, `
UPDATE application_statuses
SET checked = 0, date_reached = NULL
WHERE job_id = ?;`, jobID)
	return err
}
