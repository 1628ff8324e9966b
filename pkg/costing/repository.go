package costing

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// StoreBatch upserts costed entries keyed by their source entry id, so
	// re-importing a window is idempotent.
	StoreBatch(ctx context.Context, entries []CostedTimeEntry) error
	FindByProject(ctx context.Context, projectId string, start, end time.Time) ([]CostedTimeEntry, error)
	FindByEmployee(ctx context.Context, employeeId string, start, end time.Time) ([]CostedTimeEntry, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const dateFormat = "2006-01-02"

func (r *RepositoryImpl) StoreBatch(ctx context.Context, entries []CostedTimeEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO costed_time_entry (
                    source_entry_id,
                    employee_id,
                    employee_name,
                    project_id,
                    project_name,
                    entry_date,
                    hours,
                    billable_hours,
                    non_billable_hours,
                    hourly_rate,
                    project_multiplier,
                    total_cost,
                    billable_value,
                    efficiency,
                    description,
                    tags
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT (source_entry_id) DO UPDATE SET
				    employee_id = excluded.employee_id,
				    employee_name = excluded.employee_name,
				    project_id = excluded.project_id,
				    project_name = excluded.project_name,
				    entry_date = excluded.entry_date,
				    hours = excluded.hours,
				    billable_hours = excluded.billable_hours,
				    non_billable_hours = excluded.non_billable_hours,
				    hourly_rate = excluded.hourly_rate,
				    project_multiplier = excluded.project_multiplier,
				    total_cost = excluded.total_cost,
				    billable_value = excluded.billable_value,
				    efficiency = excluded.efficiency,
				    description = excluded.description,
				    tags = excluded.tags`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	for _, entry := range entries {
		tags, err := json.Marshal(entry.Tags)
		if err != nil {
			err := fmt.Errorf("could not marshal tags: %w", err)
			log.Error(err)
			return err
		}
		_, err = stmt.ExecContext(ctx,
			entry.SourceEntryId,
			entry.EmployeeId,
			entry.EmployeeName,
			entry.ProjectId,
			entry.ProjectName,
			entry.Date.Format(dateFormat),
			entry.Hours,
			entry.BillableHours,
			entry.NonBillableHours,
			entry.HourlyRate,
			entry.ProjectMultiplier,
			entry.TotalCost,
			entry.BillableValue,
			entry.Efficiency,
			entry.Description,
			string(tags),
		)
		if err != nil {
			err := fmt.Errorf("could not insert costed entry %s: %w", entry.SourceEntryId, err)
			log.Error(err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit transaction: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) FindByProject(ctx context.Context, projectId string, start, end time.Time) ([]CostedTimeEntry, error) {
	query := selectColumns + ` FROM costed_time_entry
				WHERE project_id = ? AND entry_date >= ? AND entry_date <= ? ORDER BY entry_date, id`
	rows, err := r.db.QueryContext(ctx, query, projectId, start.Format(dateFormat), end.Format(dateFormat))
	if err != nil {
		err := fmt.Errorf("could not query costed entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *RepositoryImpl) FindByEmployee(ctx context.Context, employeeId string, start, end time.Time) ([]CostedTimeEntry, error) {
	query := selectColumns + ` FROM costed_time_entry
				WHERE employee_id = ? AND entry_date >= ? AND entry_date <= ? ORDER BY entry_date, id`
	rows, err := r.db.QueryContext(ctx, query, employeeId, start.Format(dateFormat), end.Format(dateFormat))
	if err != nil {
		err := fmt.Errorf("could not query costed entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

const selectColumns = `SELECT id, source_entry_id, employee_id, employee_name, project_id, project_name, entry_date,
				hours, billable_hours, non_billable_hours, hourly_rate, project_multiplier, total_cost, billable_value,
				efficiency, description, tags`

func scanEntries(rows *sql.Rows) ([]CostedTimeEntry, error) {
	var entries []CostedTimeEntry
	for rows.Next() {
		var entry CostedTimeEntry
		var entryDate, tags string
		if err := rows.Scan(
			&entry.Id,
			&entry.SourceEntryId,
			&entry.EmployeeId,
			&entry.EmployeeName,
			&entry.ProjectId,
			&entry.ProjectName,
			&entryDate,
			&entry.Hours,
			&entry.BillableHours,
			&entry.NonBillableHours,
			&entry.HourlyRate,
			&entry.ProjectMultiplier,
			&entry.TotalCost,
			&entry.BillableValue,
			&entry.Efficiency,
			&entry.Description,
			&tags,
		); err != nil {
			err := fmt.Errorf("could not scan costed entry: %w", err)
			log.Error(err)
			return nil, err
		}
		parsed, err := time.Parse(dateFormat, entryDate)
		if err != nil {
			err := fmt.Errorf("could not parse entry date: %w", err)
			log.Error(err)
			return nil, err
		}
		entry.Date = parsed
		if tags != "" {
			if err := json.Unmarshal([]byte(tags), &entry.Tags); err != nil {
				err := fmt.Errorf("could not unmarshal tags: %w", err)
				log.Error(err)
				return nil, err
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return entries, nil
}
