package multiplier

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// Store inserts a record, closing the project's previously open record in
	// the same transaction when the new record is open-ended.
	Store(ctx context.Context, record Record) (int, error)
	GetAllForProject(ctx context.Context, projectId string) ([]Record, error)
	GetAll(ctx context.Context) ([]Record, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const dateFormat = "2006-01-02"

func (r *RepositoryImpl) Store(ctx context.Context, record Record) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return 0, err
	}
	defer tx.Rollback()

	if record.Open() {
		closeQuery := "UPDATE project_multiplier SET end_date = ? WHERE project_id = ? AND end_date IS NULL"
		if _, err := tx.ExecContext(ctx, closeQuery, record.EffectiveDate.Format(dateFormat), record.ProjectId); err != nil {
			err := fmt.Errorf("could not close open multiplier record: %w", err)
			log.Error(err)
			return 0, err
		}
	}

	insertQuery := `INSERT INTO project_multiplier (
                    project_id,
                    project_name,
                    multiplier,
                    effective_date,
                    end_date,
                    notes
				) VALUES (?, ?, ?, ?, ?, ?) RETURNING id`

	var endDateParam interface{}
	if !record.EndDate.IsZero() {
		endDateParam = record.EndDate.Format(dateFormat)
	}
	var id int
	err = tx.QueryRowContext(ctx, insertQuery,
		record.ProjectId,
		record.ProjectName,
		record.Multiplier,
		record.EffectiveDate.Format(dateFormat),
		endDateParam,
		record.Notes,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not insert multiplier record: %w", err)
		log.Error(err)
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit transaction: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) GetAllForProject(ctx context.Context, projectId string) ([]Record, error) {
	query := `SELECT id, project_id, project_name, multiplier, effective_date, end_date, notes
				FROM project_multiplier WHERE project_id = ? ORDER BY effective_date`
	rows, err := r.db.QueryContext(ctx, query, projectId)
	if err != nil {
		err := fmt.Errorf("could not query multiplier records: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Record, error) {
	query := `SELECT id, project_id, project_name, multiplier, effective_date, end_date, notes
				FROM project_multiplier ORDER BY project_id, effective_date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query multiplier records: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var record Record
		var effectiveDate string
		var endDate sql.NullString
		if err := rows.Scan(
			&record.Id,
			&record.ProjectId,
			&record.ProjectName,
			&record.Multiplier,
			&effectiveDate,
			&endDate,
			&record.Notes,
		); err != nil {
			err := fmt.Errorf("could not scan multiplier record: %w", err)
			log.Error(err)
			return nil, err
		}
		parsed, err := time.Parse(dateFormat, effectiveDate)
		if err != nil {
			err := fmt.Errorf("%w: could not parse effective date %q", ErrLedgerCorrupted, effectiveDate)
			log.Error(err)
			return nil, err
		}
		record.EffectiveDate = parsed
		if endDate.Valid {
			parsed, err := time.Parse(dateFormat, endDate.String)
			if err != nil {
				err := fmt.Errorf("%w: could not parse end date %q", ErrLedgerCorrupted, endDate.String)
				log.Error(err)
				return nil, err
			}
			record.EndDate = parsed
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return records, nil
}
