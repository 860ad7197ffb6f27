package user

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

type UserRepository interface {
	Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.UserEntity, error)
	List(ctx context.Context, skip, limit int) ([]model.UserEntity, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64, patch *model.UpdateUserRequest) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, id uint64) error
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	insertUserQuery = `INSERT INTO users (username, email, first_name, last_name, date_of_birth, password_hash, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	getUserBase     = `SELECT id, username, email, first_name, last_name, date_of_birth, password_hash, created_at, updated_at FROM users`
	deleteUserQuery = `DELETE FROM users WHERE id = ?`
)

func (s *SQL) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	data.CreatedAt = time.Now().UTC().Truncate(time.Second)

	result, err := s.conn.ExecContext(ctx, insertUserQuery,
		data.Username, data.Email, data.FirstName, data.LastName, data.DateOfBirth, data.PasswordHash, data.CreatedAt)
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

// Get looks a user up by any combination of id, username, and email.
// Returns (nil, nil) when no row matches.
func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := getUserBase + " WHERE true"
	args := make([]any, 0, 3)

	if filter.ID != 0 {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Username != "" {
		query += " AND username = ?"
		args = append(args, filter.Username)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}

	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.UserEntity, error) {
	var entity model.UserEntity
	if err := tx.QueryRowxContext(ctx, getUserBase+" WHERE id = ? FOR UPDATE", id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) List(ctx context.Context, skip, limit int) ([]model.UserEntity, error) {
	query := getUserBase + " ORDER BY id LIMIT ? OFFSET ?"
	rows, err := s.conn.QueryxContext(ctx, query, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.UserEntity, 0)
	for rows.Next() {
		var it model.UserEntity
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *SQL) UpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64, patch *model.UpdateUserRequest) error {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 6)

	if patch.Username != nil {
		sets = append(sets, "username = ?")
		args = append(args, *patch.Username)
	}
	if patch.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *patch.Email)
	}
	if patch.FirstName != nil {
		sets = append(sets, "first_name = ?")
		args = append(args, *patch.FirstName)
	}
	if patch.LastName != nil {
		sets = append(sets, "last_name = ?")
		args = append(args, *patch.LastName)
	}
	if patch.DateOfBirth != nil {
		sets = append(sets, "date_of_birth = ?")
		args = append(args, *patch.DateOfBirth)
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = ?", strings.Join(sets, ", "))
	args = append(args, id)

	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

func (s *SQL) DeleteTx(ctx context.Context, tx *sqlx.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, deleteUserQuery, id)
	return err
}
