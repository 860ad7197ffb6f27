package tx

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// TxRepository brackets the read-modify-write flows: updates and deletes
// lock the row with GetByIDTx and commit or roll back through here.
type TxRepository interface {
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	CommitTx(tx *sqlx.Tx) error
	RollbackTx(tx *sqlx.Tx) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewTxRepository(conn *sqlx.DB) TxRepository {
	return &SQL{conn: conn}
}

func (s *SQL) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return s.conn.BeginTxx(ctx, nil)
}

func (s *SQL) CommitTx(tx *sqlx.Tx) error {
	return tx.Commit()
}

// RollbackTx is safe to defer after a commit; the driver reports the
// already-finished transaction and callers ignore it.
func (s *SQL) RollbackTx(tx *sqlx.Tx) error {
	return tx.Rollback()
}
