package project

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, project Project) error
	FindById(ctx context.Context, id string) (*Project, error)
	GetAll(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, project Project) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, project Project) error {
	query := `INSERT INTO project (id, name, client_name, status) VALUES (?, ?, ?, ?)
				ON CONFLICT (id) DO UPDATE SET
				    name = excluded.name,
				    client_name = excluded.client_name,
				    status = excluded.status`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, project.Id, project.Name, project.ClientName, string(project.Status))
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) FindById(ctx context.Context, id string) (*Project, error) {
	query := "SELECT id, name, client_name, status FROM project WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, id)
	var project Project
	var status string
	if err := row.Scan(&project.Id, &project.Name, &project.ClientName, &status); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		err := fmt.Errorf("could not scan project: %w", err)
		log.Error(err)
		return nil, err
	}
	project.Status = Status(status)
	return &project, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Project, error) {
	query := "SELECT id, name, client_name, status FROM project ORDER BY name"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query projects: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var project Project
		var status string
		if err := rows.Scan(&project.Id, &project.Name, &project.ClientName, &status); err != nil {
			err := fmt.Errorf("could not scan project: %w", err)
			log.Error(err)
			return nil, err
		}
		project.Status = Status(status)
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return projects, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, project Project) (bool, error) {
	query := "UPDATE project SET name = ?, client_name = ?, status = ? WHERE id = ?"
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, project.Name, project.ClientName, string(project.Status), project.Id)
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
	query := "DELETE FROM project WHERE id = ?"
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
