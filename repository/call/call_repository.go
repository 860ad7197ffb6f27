package call

import (
	"context"
	"database/sql"
	"time"

	"github.com/jfcarod/convocations-api/model"
	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

type CallRepository interface {
	Create(ctx context.Context, data *model.CallEntity) (*model.CallEntity, error)
	GetByID(ctx context.Context, id uint64) (*model.CallEntity, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.CallEntity, error)
	List(ctx context.Context, skip, limit int) ([]model.CallEntity, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64, patch *model.UpdateCallRequest) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, id uint64) error
}

func NewCallRepository(conn *sqlx.DB) CallRepository {
	return &SQL{conn: conn}
}

const (
	insertCallQuery    = `INSERT INTO calls (caller_id, receiver_id, call_start_time, created_at) VALUES (?, ?, ?, ?)`
	getCallBase        = `SELECT id, caller_id, receiver_id, call_start_time, call_end_time, created_at FROM calls`
	updateCallEndQuery = `UPDATE calls SET call_end_time = ? WHERE id = ?`
	deleteCallQuery    = `DELETE FROM calls WHERE id = ?`
)

func (s *SQL) Create(ctx context.Context, data *model.CallEntity) (*model.CallEntity, error) {
	data.CreatedAt = time.Now().UTC().Truncate(time.Second)

	result, err := s.conn.ExecContext(ctx, insertCallQuery,
		data.CallerID, data.ReceiverID, data.CallStartTime, data.CreatedAt)
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

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.CallEntity, error) {
	var entity model.CallEntity
	if err := s.conn.QueryRowxContext(ctx, getCallBase+" WHERE id = ?", id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.CallEntity, error) {
	var entity model.CallEntity
	if err := tx.QueryRowxContext(ctx, getCallBase+" WHERE id = ? FOR UPDATE", id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) List(ctx context.Context, skip, limit int) ([]model.CallEntity, error) {
	query := getCallBase + " ORDER BY id LIMIT ? OFFSET ?"
	rows, err := s.conn.QueryxContext(ctx, query, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CallEntity, 0)
	for rows.Next() {
		var it model.CallEntity
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateTx writes the end time; the service layer skips empty patches.
func (s *SQL) UpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64, patch *model.UpdateCallRequest) error {
	_, err := tx.ExecContext(ctx, updateCallEndQuery, *patch.CallEndTime, id)
	return err
}

func (s *SQL) DeleteTx(ctx context.Context, tx *sqlx.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, deleteCallQuery, id)
	return err
}
