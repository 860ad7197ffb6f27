package call_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	callapp "github.com/jfcarod/convocations-api/application/call"
	"github.com/jfcarod/convocations-api/constant"
	callmocks "github.com/jfcarod/convocations-api/mocks/repository/call"
	txmocks "github.com/jfcarod/convocations-api/mocks/repository/tx"
	"github.com/jfcarod/convocations-api/model"
	cerr "github.com/jfcarod/convocations-api/utils/errors"
	"github.com/stretchr/testify/mock"
)

func TestCallApp_Create(t *testing.T) {
	callRepo := callmocks.NewCallRepository(t)
	start := time.Date(2026, time.July, 10, 14, 30, 0, 0, time.UTC)

	callRepo.
		On("Create", mock.Anything, mock.MatchedBy(func(c *model.CallEntity) bool {
			return c.CallerID == 1 && c.ReceiverID == 2 && c.CallStartTime.Equal(start) && c.CallEndTime == nil
		})).
		Return(&model.CallEntity{ID: 10, CallerID: 1, ReceiverID: 2, CallStartTime: start}, nil).
		Once()

	app := callapp.NewCallApp(callRepo, txmocks.NewTxRepository(t), nil)
	got, err := app.Create(context.Background(), &model.CreateCallRequest{
		CallerID:      1,
		ReceiverID:    2,
		CallStartTime: start,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got.ID != 10 || got.CallEndTime != nil {
		t.Errorf("Create() = %+v, want open call with id 10", got)
	}
}

func TestCallApp_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		callRepo := callmocks.NewCallRepository(t)
		want := &model.CallEntity{ID: 3, CallerID: 1, ReceiverID: 2}

		callRepo.On("GetByID", mock.Anything, uint64(3)).Return(want, nil).Once()

		app := callapp.NewCallApp(callRepo, txmocks.NewTxRepository(t), nil)
		got, err := app.GetByID(context.Background(), 3)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("GetByID() = %+v, want %+v", got, want)
		}
	})

	t.Run("error: not found", func(t *testing.T) {
		callRepo := callmocks.NewCallRepository(t)

		callRepo.On("GetByID", mock.Anything, uint64(42)).Return(nil, nil).Once()

		app := callapp.NewCallApp(callRepo, txmocks.NewTxRepository(t), nil)
		_, err := app.GetByID(context.Background(), 42)
		assertErrCode(t, err, constant.ErrNotFound)
		if err.Error() != "call with id 42 not found" {
			t.Errorf("GetByID() error detail = %q", err.Error())
		}
	})
}

func TestCallApp_Update(t *testing.T) {
	start := time.Date(2026, time.July, 10, 14, 30, 0, 0, time.UTC)
	end := start.Add(25 * time.Minute)
	open := &model.CallEntity{ID: 5, CallerID: 1, ReceiverID: 2, CallStartTime: start}

	t.Run("success: closing a call sets only the end time", func(t *testing.T) {
		callRepo := callmocks.NewCallRepository(t)
		txRepo := txmocks.NewTxRepository(t)

		patch := &model.UpdateCallRequest{CallEndTime: &end}
		closed := *open
		closed.CallEndTime = &end

		txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
		txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
		callRepo.On("GetByIDTx", mock.Anything, mock.Anything, uint64(5)).Return(open, nil).Once()
		callRepo.On("UpdateTx", mock.Anything, mock.Anything, uint64(5), patch).Return(nil).Once()
		callRepo.On("GetByIDTx", mock.Anything, mock.Anything, uint64(5)).Return(&closed, nil).Once()
		txRepo.On("CommitTx", mock.Anything).Return(nil).Once()

		app := callapp.NewCallApp(callRepo, txRepo, nil)
		got, err := app.Update(context.Background(), 5, patch)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if got.CallEndTime == nil || !got.CallEndTime.Equal(end) {
			t.Errorf("Update() end time = %v, want %v", got.CallEndTime, end)
		}
		if !got.CallStartTime.Equal(start) || got.CallerID != open.CallerID {
			t.Errorf("Update() touched fields outside the patch: %+v", got)
		}
	})

	t.Run("success: empty patch skips the write", func(t *testing.T) {
		callRepo := callmocks.NewCallRepository(t)
		txRepo := txmocks.NewTxRepository(t)

		txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
		txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
		callRepo.On("GetByIDTx", mock.Anything, mock.Anything, uint64(5)).Return(open, nil).Twice()
		txRepo.On("CommitTx", mock.Anything).Return(nil).Once()

		app := callapp.NewCallApp(callRepo, txRepo, nil)
		got, err := app.Update(context.Background(), 5, &model.UpdateCallRequest{})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if !reflect.DeepEqual(got, open) {
			t.Errorf("Update() = %+v, want unchanged %+v", got, open)
		}
	})

	t.Run("error: not found", func(t *testing.T) {
		callRepo := callmocks.NewCallRepository(t)
		txRepo := txmocks.NewTxRepository(t)

		txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
		txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
		callRepo.On("GetByIDTx", mock.Anything, mock.Anything, uint64(404)).Return(nil, nil).Once()

		app := callapp.NewCallApp(callRepo, txRepo, nil)
		_, err := app.Update(context.Background(), 404, &model.UpdateCallRequest{CallEndTime: &end})
		assertErrCode(t, err, constant.ErrNotFound)
	})
}

func TestCallApp_Delete(t *testing.T) {
	existing := &model.CallEntity{ID: 8, CallerID: 1, ReceiverID: 2}

	t.Run("success", func(t *testing.T) {
		callRepo := callmocks.NewCallRepository(t)
		txRepo := txmocks.NewTxRepository(t)

		txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
		txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
		callRepo.On("GetByIDTx", mock.Anything, mock.Anything, uint64(8)).Return(existing, nil).Once()
		callRepo.On("DeleteTx", mock.Anything, mock.Anything, uint64(8)).Return(nil).Once()
		txRepo.On("CommitTx", mock.Anything).Return(nil).Once()

		app := callapp.NewCallApp(callRepo, txRepo, nil)
		got, err := app.Delete(context.Background(), 8)
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if !reflect.DeepEqual(got, existing) {
			t.Errorf("Delete() = %+v, want %+v", got, existing)
		}
	})

	t.Run("error: second delete is not found", func(t *testing.T) {
		callRepo := callmocks.NewCallRepository(t)
		txRepo := txmocks.NewTxRepository(t)

		txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
		txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
		callRepo.On("GetByIDTx", mock.Anything, mock.Anything, uint64(8)).Return(nil, nil).Once()

		app := callapp.NewCallApp(callRepo, txRepo, nil)
		_, err := app.Delete(context.Background(), 8)
		assertErrCode(t, err, constant.ErrNotFound)
	})
}

func assertErrCode(t *testing.T, err error, want constant.ErrorType) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	ce, ok := err.(cerr.CustomError)
	if !ok {
		t.Fatalf("expected CustomError, got %T", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[want] {
		t.Errorf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[want])
	}
}
