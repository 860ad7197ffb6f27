package convocation

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jfcarod/convocations-api/model"
	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

type ConvocationRepository interface {
	Create(ctx context.Context, data *model.ConvocationEntity) (*model.ConvocationEntity, error)
	GetByID(ctx context.Context, id uint64) (*model.ConvocationEntity, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ConvocationEntity, error)
	List(ctx context.Context, skip, limit int) ([]model.ConvocationEntity, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64, patch *model.UpdateConvocationRequest) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, id uint64) error
}

func NewConvocationRepository(conn *sqlx.DB) ConvocationRepository {
	return &SQL{conn: conn}
}

const (
	insertConvocationQuery = `INSERT INTO convocations (title, description, start_date, end_date, created_at) VALUES (?, ?, ?, ?, ?)`
	getConvocationBase     = `SELECT id, title, description, start_date, end_date, created_at, updated_at FROM convocations`
	deleteConvocationQuery = `DELETE FROM convocations WHERE id = ?`
)

func (s *SQL) Create(ctx context.Context, data *model.ConvocationEntity) (*model.ConvocationEntity, error) {
	data.CreatedAt = time.Now().UTC().Truncate(time.Second)

	result, err := s.conn.ExecContext(ctx, insertConvocationQuery,
		data.Title, data.Description, data.StartDate, data.EndDate, data.CreatedAt)
	if err != nil {
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	return data, nil
}

// GetByID returns (nil, nil) when no row matches; callers translate that
// into the not-found condition.
func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.ConvocationEntity, error) {
	var entity model.ConvocationEntity
	if err := s.conn.QueryRowxContext(ctx, getConvocationBase+" WHERE id = ?", id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// GetByIDTx locks the row for the remainder of the transaction.
func (s *SQL) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ConvocationEntity, error) {
	var entity model.ConvocationEntity
	if err := tx.QueryRowxContext(ctx, getConvocationBase+" WHERE id = ? FOR UPDATE", id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) List(ctx context.Context, skip, limit int) ([]model.ConvocationEntity, error) {
	query := getConvocationBase + " ORDER BY id LIMIT ? OFFSET ?"
	rows, err := s.conn.QueryxContext(ctx, query, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ConvocationEntity, 0)
	for rows.Next() {
		var it model.ConvocationEntity
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateTx applies only the fields present in the patch.
func (s *SQL) UpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64, patch *model.UpdateConvocationRequest) error {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 5)

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.StartDate != nil {
		sets = append(sets, "start_date = ?")
		args = append(args, *patch.StartDate)
	}
	if patch.EndDate != nil {
		sets = append(sets, "end_date = ?")
		args = append(args, *patch.EndDate)
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE convocations SET %s WHERE id = ?", strings.Join(sets, ", "))
	args = append(args, id)

	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

func (s *SQL) DeleteTx(ctx context.Context, tx *sqlx.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, deleteConvocationQuery, id)
	return err
}
