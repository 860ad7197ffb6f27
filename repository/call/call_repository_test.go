package call_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jfcarod/convocations-api/model"
	"github.com/jfcarod/convocations-api/repository/call"
	"github.com/jmoiron/sqlx"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mockDB, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	conn := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() {
		if err := mockDB.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sql expectations: %v", err)
		}
		_ = conn.Close()
	})
	return conn, mockDB
}

func TestCallRepository_Create(t *testing.T) {
	conn, mockDB := newMockDB(t)
	repo := call.NewCallRepository(conn)

	start := time.Date(2026, time.July, 10, 14, 30, 0, 0, time.UTC)

	mockDB.
		ExpectExec(regexp.QuoteMeta(`INSERT INTO calls (caller_id, receiver_id, call_start_time, created_at) VALUES (?, ?, ?, ?)`)).
		WithArgs(uint64(1), uint64(2), start, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(10, 1))

	got, err := repo.Create(context.Background(), &model.CallEntity{
		CallerID:      1,
		ReceiverID:    2,
		CallStartTime: start,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got.ID != 10 {
		t.Errorf("Create() id = %d, want 10", got.ID)
	}
}

func TestCallRepository_GetByID(t *testing.T) {
	columns := []string{"id", "caller_id", "receiver_id", "call_start_time", "call_end_time", "created_at"}
	start := time.Date(2026, time.July, 10, 14, 30, 0, 0, time.UTC)

	t.Run("open call has no end time", func(t *testing.T) {
		conn, mockDB := newMockDB(t)
		repo := call.NewCallRepository(conn)

		mockDB.
			ExpectQuery(regexp.QuoteMeta(`SELECT id, caller_id, receiver_id, call_start_time, call_end_time, created_at FROM calls WHERE id = ?`)).
			WithArgs(uint64(10)).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(10, 1, 2, start, nil, start))

		got, err := repo.GetByID(context.Background(), 10)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got == nil || got.CallEndTime != nil {
			t.Fatalf("GetByID() = %+v, want open call", got)
		}
	})

	t.Run("missing row yields nil, nil", func(t *testing.T) {
		conn, mockDB := newMockDB(t)
		repo := call.NewCallRepository(conn)

		mockDB.
			ExpectQuery(regexp.QuoteMeta(`SELECT id, caller_id, receiver_id, call_start_time, call_end_time, created_at FROM calls WHERE id = ?`)).
			WithArgs(uint64(42)).
			WillReturnRows(sqlmock.NewRows(columns))

		got, err := repo.GetByID(context.Background(), 42)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got != nil {
			t.Errorf("GetByID() = %+v, want nil", got)
		}
	})
}

func TestCallRepository_UpdateTx(t *testing.T) {
	conn, mockDB := newMockDB(t)
	repo := call.NewCallRepository(conn)

	mockDB.ExpectBegin()
	tx, err := conn.Beginx()
	if err != nil {
		t.Fatal(err)
	}

	end := time.Date(2026, time.July, 10, 14, 55, 0, 0, time.UTC)
	mockDB.
		ExpectExec(regexp.QuoteMeta(`UPDATE calls SET call_end_time = ? WHERE id = ?`)).
		WithArgs(end, uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateTx(context.Background(), tx, 5, &model.UpdateCallRequest{CallEndTime: &end}); err != nil {
		t.Fatalf("UpdateTx() error = %v", err)
	}
}

func TestCallRepository_DeleteTx(t *testing.T) {
	conn, mockDB := newMockDB(t)
	repo := call.NewCallRepository(conn)

	mockDB.ExpectBegin()
	tx, err := conn.Beginx()
	if err != nil {
		t.Fatal(err)
	}

	mockDB.
		ExpectExec(regexp.QuoteMeta(`DELETE FROM calls WHERE id = ?`)).
		WithArgs(uint64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteTx(context.Background(), tx, 8); err != nil {
		t.Fatalf("DeleteTx() error = %v", err)
	}
}
