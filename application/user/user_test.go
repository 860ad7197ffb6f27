package user_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	userapp "github.com/jfcarod/convocations-api/application/user"
	"github.com/jfcarod/convocations-api/cmd/config"
	"github.com/jfcarod/convocations-api/constant"
	redismocks "github.com/jfcarod/convocations-api/mocks/repository/redis"
	txmocks "github.com/jfcarod/convocations-api/mocks/repository/tx"
	usermocks "github.com/jfcarod/convocations-api/mocks/repository/user"
	"github.com/jfcarod/convocations-api/model"
	cerr "github.com/jfcarod/convocations-api/utils/errors"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret",
			JWTExpiration:  time.Hour,
			SessionExpTime: time.Hour,
		},
	}
}

func strptr(s string) *string { return &s }

func TestUserApp_Create(t *testing.T) {
	type fields struct {
		userRepo  *usermocks.UserRepository
		txRepo    *txmocks.TxRepository
		redisRepo *redismocks.RedisRepository
	}
	tests := []struct {
		name     string
		fields   fields
		req      *model.CreateUserRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: stores bcrypt hash, not the password",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				txRepo:    txmocks.NewTxRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			req: &model.CreateUserRequest{
				Username: "johndoe",
				Email:    "john@example.com",
				Password: "s3cretpassword",
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Username: "johndoe"}).Return(nil, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "john@example.com"}).Return(nil, nil).Once()
				f.userRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(u *model.UserEntity) bool {
						if u.PasswordHash == "s3cretpassword" || u.PasswordHash == "" {
							return false
						}
						return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cretpassword")) == nil
					})).
					Return(&model.UserEntity{ID: 1, Username: "johndoe", Email: "john@example.com"}, nil).
					Once()
			},
			wantErr: false,
		},
		{
			name: "error: username already taken",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				txRepo:    txmocks.NewTxRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			req: &model.CreateUserRequest{
				Username: "johndoe",
				Email:    "john@example.com",
				Password: "s3cretpassword",
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Username: "johndoe"}).
					Return(&model.UserEntity{ID: 9, Username: "johndoe"}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrCredentialExists,
		},
		{
			name: "error: email already taken",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				txRepo:    txmocks.NewTxRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			req: &model.CreateUserRequest{
				Username: "johndoe",
				Email:    "john@example.com",
				Password: "s3cretpassword",
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Username: "johndoe"}).Return(nil, nil).Once()
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "john@example.com"}).
					Return(&model.UserEntity{ID: 9, Email: "john@example.com"}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrCredentialExists,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockCall(tt.fields)
			app := userapp.NewUserApp(testConfig(), tt.fields.userRepo, tt.fields.txRepo, tt.fields.redisRepo, nil)

			got, err := app.Create(context.Background(), tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.ID == 0 || got.Username != tt.req.Username {
				t.Errorf("Create() = %+v", got)
			}
		})
	}
}

func TestUserApp_Update(t *testing.T) {
	existing := &model.UserEntity{
		ID:       4,
		Username: "janedoe",
		Email:    "jane@example.com",
	}

	t.Run("success: merge-patch first name only", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		txRepo := txmocks.NewTxRepository(t)

		patch := &model.UpdateUserRequest{FirstName: strptr("Jane")}
		updated := *existing
		updated.FirstName = strptr("Jane")

		txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
		txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
		userRepo.On("GetByIDTx", mock.Anything, mock.Anything, uint64(4)).Return(existing, nil).Once()
		userRepo.On("UpdateTx", mock.Anything, mock.Anything, uint64(4), patch).Return(nil).Once()
		userRepo.On("GetByIDTx", mock.Anything, mock.Anything, uint64(4)).Return(&updated, nil).Once()
		txRepo.On("CommitTx", mock.Anything).Return(nil).Once()

		app := userapp.NewUserApp(testConfig(), userRepo, txRepo, redismocks.NewRedisRepository(t), nil)
		got, err := app.Update(context.Background(), 4, patch)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if got.FirstName == nil || *got.FirstName != "Jane" {
			t.Errorf("Update() first name = %v, want Jane", got.FirstName)
		}
		if got.Username != existing.Username || got.Email != existing.Email {
			t.Errorf("Update() touched fields outside the patch: %+v", got)
		}
	})

	t.Run("error: new username belongs to another user", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		txRepo := txmocks.NewTxRepository(t)

		txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
		txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
		userRepo.On("GetByIDTx", mock.Anything, mock.Anything, uint64(4)).Return(existing, nil).Once()
		userRepo.
			On("Get", mock.Anything, &model.UserFilter{Username: "takenname"}).
			Return(&model.UserEntity{ID: 77, Username: "takenname"}, nil).
			Once()

		app := userapp.NewUserApp(testConfig(), userRepo, txRepo, redismocks.NewRedisRepository(t), nil)
		_, err := app.Update(context.Background(), 4, &model.UpdateUserRequest{Username: strptr("takenname")})
		assertErrCode(t, err, constant.ErrCredentialExists)
	})

	t.Run("error: absent id is not found even when the patched email is taken", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		txRepo := txmocks.NewTxRepository(t)

		// No Get expectation: the uniqueness lookup must not run for a
		// missing row
		txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
		txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
		userRepo.On("GetByIDTx", mock.Anything, mock.Anything, uint64(999)).Return(nil, nil).Once()

		app := userapp.NewUserApp(testConfig(), userRepo, txRepo, redismocks.NewRedisRepository(t), nil)
		_, err := app.Update(context.Background(), 999, &model.UpdateUserRequest{Email: strptr("jane@example.com")})
		assertErrCode(t, err, constant.ErrNotFound)
	})

	t.Run("success: renaming to own username is allowed", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		txRepo := txmocks.NewTxRepository(t)

		patch := &model.UpdateUserRequest{Username: strptr("janedoe")}

		userRepo.On("Get", mock.Anything, &model.UserFilter{Username: "janedoe"}).Return(existing, nil).Once()
		txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
		txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
		userRepo.On("GetByIDTx", mock.Anything, mock.Anything, uint64(4)).Return(existing, nil).Twice()
		userRepo.On("UpdateTx", mock.Anything, mock.Anything, uint64(4), patch).Return(nil).Once()
		txRepo.On("CommitTx", mock.Anything).Return(nil).Once()

		app := userapp.NewUserApp(testConfig(), userRepo, txRepo, redismocks.NewRedisRepository(t), nil)
		if _, err := app.Update(context.Background(), 4, patch); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
	})

	t.Run("error: not found", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		txRepo := txmocks.NewTxRepository(t)

		txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
		txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
		userRepo.On("GetByIDTx", mock.Anything, mock.Anything, uint64(404)).Return(nil, nil).Once()

		app := userapp.NewUserApp(testConfig(), userRepo, txRepo, redismocks.NewRedisRepository(t), nil)
		_, err := app.Update(context.Background(), 404, &model.UpdateUserRequest{FirstName: strptr("Ghost")})
		assertErrCode(t, err, constant.ErrNotFound)
	})
}

func TestUserApp_Delete(t *testing.T) {
	existing := &model.UserEntity{ID: 6, Username: "leaving", Email: "leaving@example.com"}

	t.Run("success: returns removed user", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		txRepo := txmocks.NewTxRepository(t)

		txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
		txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
		userRepo.On("GetByIDTx", mock.Anything, mock.Anything, uint64(6)).Return(existing, nil).Once()
		userRepo.On("DeleteTx", mock.Anything, mock.Anything, uint64(6)).Return(nil).Once()
		txRepo.On("CommitTx", mock.Anything).Return(nil).Once()

		app := userapp.NewUserApp(testConfig(), userRepo, txRepo, redismocks.NewRedisRepository(t), nil)
		got, err := app.Delete(context.Background(), 6)
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if !reflect.DeepEqual(got, existing) {
			t.Errorf("Delete() = %+v, want %+v", got, existing)
		}
	})

	t.Run("error: already deleted", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		txRepo := txmocks.NewTxRepository(t)

		txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
		txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
		userRepo.On("GetByIDTx", mock.Anything, mock.Anything, uint64(6)).Return(nil, nil).Once()

		app := userapp.NewUserApp(testConfig(), userRepo, txRepo, redismocks.NewRedisRepository(t), nil)
		_, err := app.Delete(context.Background(), 6)
		assertErrCode(t, err, constant.ErrNotFound)
	})
}

func TestUserApp_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	stored := &model.UserEntity{
		ID:           2,
		Username:     "johndoe",
		Email:        "john@example.com",
		PasswordHash: string(hash),
	}

	t.Run("success: login by email creates a session", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		redisRepo := redismocks.NewRedisRepository(t)

		userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "john@example.com"}).Return(stored, nil).Once()
		redisRepo.
			On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(2), time.Hour).
			Return(nil).
			Once()

		app := userapp.NewUserApp(testConfig(), userRepo, txmocks.NewTxRepository(t), redisRepo, nil)
		got, err := app.Login(context.Background(), &model.LoginRequest{Identifier: "john@example.com", Password: "correct horse"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if got.Token == "" || got.Username != "johndoe" {
			t.Errorf("Login() = %+v, want token and username", got)
		}
	})

	t.Run("error: unknown identifier", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)

		userRepo.On("Get", mock.Anything, &model.UserFilter{Username: "nobody"}).Return(nil, nil).Once()

		app := userapp.NewUserApp(testConfig(), userRepo, txmocks.NewTxRepository(t), redismocks.NewRedisRepository(t), nil)
		_, err := app.Login(context.Background(), &model.LoginRequest{Identifier: "nobody", Password: "whatever1"})
		assertErrCode(t, err, constant.ErrNotFound)
	})

	t.Run("error: wrong password", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)

		userRepo.On("Get", mock.Anything, &model.UserFilter{Username: "johndoe"}).Return(stored, nil).Once()

		app := userapp.NewUserApp(testConfig(), userRepo, txmocks.NewTxRepository(t), redismocks.NewRedisRepository(t), nil)
		_, err := app.Login(context.Background(), &model.LoginRequest{Identifier: "johndoe", Password: "wrong horse"})
		assertErrCode(t, err, constant.ErrInvalidPassword)
	})
}

func TestUserApp_ValidateToken(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	stored := &model.UserEntity{ID: 3, Username: "johndoe", Email: "john@example.com", PasswordHash: string(hash)}

	userRepo := usermocks.NewUserRepository(t)
	redisRepo := redismocks.NewRedisRepository(t)

	var sessionJTI string
	userRepo.On("Get", mock.Anything, &model.UserFilter{Username: "johndoe"}).Return(stored, nil).Once()
	redisRepo.
		On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(3), time.Hour).
		Run(func(args mock.Arguments) { sessionJTI = args.String(1) }).
		Return(nil).
		Once()

	app := userapp.NewUserApp(testConfig(), userRepo, txmocks.NewTxRepository(t), redisRepo, nil)
	resp, err := app.Login(context.Background(), &model.LoginRequest{Identifier: "johndoe", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	t.Run("success: live session", func(t *testing.T) {
		redisRepo.On("GetSession", mock.Anything, sessionJTI).Return(uint64(3), nil).Once()

		userID, err := app.ValidateToken(context.Background(), resp.Token)
		if err != nil {
			t.Fatalf("ValidateToken() error = %v", err)
		}
		if userID != 3 {
			t.Errorf("ValidateToken() = %d, want 3", userID)
		}
	})

	t.Run("error: session revoked", func(t *testing.T) {
		redisRepo.On("GetSession", mock.Anything, sessionJTI).Return(uint64(0), context.DeadlineExceeded).Once()

		if _, err := app.ValidateToken(context.Background(), resp.Token); err == nil {
			t.Fatal("ValidateToken() expected error for revoked session")
		}
	})

	t.Run("error: garbage token", func(t *testing.T) {
		if _, err := app.ValidateToken(context.Background(), "not.a.token"); err == nil {
			t.Fatal("ValidateToken() expected error for malformed token")
		}
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
