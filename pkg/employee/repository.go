package employee

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, employee Employee) error
	FindById(ctx context.Context, id string) (*Employee, error)
	GetAll(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, employee Employee) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const dateFormat = "2006-01-02"

func (r *RepositoryImpl) Store(ctx context.Context, employee Employee) error {
	query := `INSERT INTO employee (
                    id,
                    name,
                    email,
                    status,
                    department,
                    position,
                    hire_date,
                    termination_date
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT (id) DO UPDATE SET
				    name = excluded.name,
				    email = excluded.email,
				    status = excluded.status,
				    department = excluded.department,
				    position = excluded.position,
				    hire_date = excluded.hire_date,
				    termination_date = excluded.termination_date`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		employee.Id,
		employee.Name,
		employee.Email,
		string(employee.Status),
		employee.Department,
		employee.Position,
		dateParam(employee.HireDate),
		dateParam(employee.TerminationDate),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) FindById(ctx context.Context, id string) (*Employee, error) {
	query := `SELECT id, name, email, status, department, position, hire_date, termination_date
				FROM employee WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	employee, err := scanEmployee(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		err := fmt.Errorf("could not scan employee: %w", err)
		log.Error(err)
		return nil, err
	}
	return employee, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Employee, error) {
	query := `SELECT id, name, email, status, department, position, hire_date, termination_date
				FROM employee ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query employees: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			err := fmt.Errorf("could not scan employee: %w", err)
			log.Error(err)
			return nil, err
		}
		employees = append(employees, *employee)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return employees, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, employee Employee) (bool, error) {
	query := `UPDATE employee SET
                  name = ?,
                  email = ?,
                  status = ?,
                  department = ?,
                  position = ?,
                  hire_date = ?,
                  termination_date = ?
              WHERE id = ?`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		employee.Name,
		employee.Email,
		string(employee.Status),
		employee.Department,
		employee.Position,
		dateParam(employee.HireDate),
		dateParam(employee.TerminationDate),
		employee.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	query := "DELETE FROM employee WHERE id = ?"
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()
	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*Employee, error) {
	var employee Employee
	var status string
	var hireDate, terminationDate sql.NullString
	if err := row.Scan(
		&employee.Id,
		&employee.Name,
		&employee.Email,
		&status,
		&employee.Department,
		&employee.Position,
		&hireDate,
		&terminationDate,
	); err != nil {
		return nil, err
	}
	employee.Status = Status(status)
	if hireDate.Valid {
		parsed, err := time.Parse(dateFormat, hireDate.String)
		if err != nil {
			return nil, fmt.Errorf("could not parse hire date: %w", err)
		}
		employee.HireDate = parsed
	}
	if terminationDate.Valid {
		parsed, err := time.Parse(dateFormat, terminationDate.String)
		if err != nil {
			return nil, fmt.Errorf("could not parse termination date: %w", err)
		}
		employee.TerminationDate = parsed
	}
	return &employee, nil
}

func dateParam(date time.Time) interface{} {
	if date.IsZero() {
		return nil
	}
	return date.Format(dateFormat)
}
