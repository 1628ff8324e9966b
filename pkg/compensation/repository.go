package compensation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// Store inserts a record. When the record is open-ended, the employee's
	// previously open record is closed at the new record's effective date in
	// the same transaction.
	Store(ctx context.Context, record Record) (int, error)
	GetAllForEmployee(ctx context.Context, employeeId string) ([]Record, error)
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
		closeQuery := "UPDATE compensation_record SET end_date = ? WHERE employee_id = ? AND end_date IS NULL"
		if _, err := tx.ExecContext(ctx, closeQuery, record.EffectiveDate.Format(dateFormat), record.EmployeeId); err != nil {
			err := fmt.Errorf("could not close open compensation record: %w", err)
			log.Error(err)
			return 0, err
		}
	}

	insertQuery := `INSERT INTO compensation_record (
                    employee_id,
                    effective_date,
                    end_date,
                    annual_salary,
                    hourly_rate,
                    currency,
                    notes
				) VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`

	var endDateParam interface{}
	if !record.EndDate.IsZero() {
		endDateParam = record.EndDate.Format(dateFormat)
	}
	var id int
	err = tx.QueryRowContext(ctx, insertQuery,
		record.EmployeeId,
		record.EffectiveDate.Format(dateFormat),
		endDateParam,
		record.AnnualSalary,
		record.HourlyRate,
		record.Currency,
		record.Notes,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not insert compensation record: %w", err)
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

func (r *RepositoryImpl) GetAllForEmployee(ctx context.Context, employeeId string) ([]Record, error) {
	query := `SELECT id, employee_id, effective_date, end_date, annual_salary, hourly_rate, currency, notes
				FROM compensation_record WHERE employee_id = ? ORDER BY effective_date`
	rows, err := r.db.QueryContext(ctx, query, employeeId)
	if err != nil {
		err := fmt.Errorf("could not query compensation records: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Record, error) {
	query := `SELECT id, employee_id, effective_date, end_date, annual_salary, hourly_rate, currency, notes
				FROM compensation_record ORDER BY employee_id, effective_date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query compensation records: %w", err)
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
			&record.EmployeeId,
			&effectiveDate,
			&endDate,
			&record.AnnualSalary,
			&record.HourlyRate,
			&record.Currency,
			&record.Notes,
		); err != nil {
			err := fmt.Errorf("could not scan compensation record: %w", err)
			log.Error(err)
			return nil, err
		}
		parsed, err := time.Parse(dateFormat, effectiveDate)
		if err != nil {
			// A stored date that does not parse means the table was edited
			// outside the ledger invariant.
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
