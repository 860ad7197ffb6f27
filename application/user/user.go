package user

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jfcarod/convocations-api/cmd/config"
	"github.com/jfcarod/convocations-api/constant"
	"github.com/jfcarod/convocations-api/model"
	redisrepo "github.com/jfcarod/convocations-api/repository/redis"
	txrepo "github.com/jfcarod/convocations-api/repository/tx"
	userrepo "github.com/jfcarod/convocations-api/repository/user"
	"github.com/jfcarod/convocations-api/thirdparty/rabbitmq"
	"github.com/jfcarod/convocations-api/utils/errors"
	"github.com/jfcarod/convocations-api/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserApp interface {
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.UserEntity, error)
	GetByID(ctx context.Context, id uint64) (*model.UserEntity, error)
	List(ctx context.Context, skip, limit int) ([]model.UserEntity, error)
	Update(ctx context.Context, id uint64, req *model.UpdateUserRequest) (*model.UserEntity, error)
	Delete(ctx context.Context, id uint64) (*model.UserEntity, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (uint64, error)
}

type UserAppImpl struct {
	config    *config.Config
	userRepo  userrepo.UserRepository
	txRepo    txrepo.TxRepository
	redisRepo redisrepo.Repository
	publisher rabbitmq.EventPublisher
}

func NewUserApp(config *config.Config, userRepo userrepo.UserRepository, txRepo txrepo.TxRepository, redisRepo redisrepo.Repository, publisher rabbitmq.EventPublisher) UserApp {
	return &UserAppImpl{
		config:    config,
		userRepo:  userRepo,
		txRepo:    txRepo,
		redisRepo: redisRepo,
		publisher: publisher,
	}
}

func (s *UserAppImpl) Create(ctx context.Context, req *model.CreateUserRequest) (*model.UserEntity, error) {
	// Pre-check uniqueness so the error shape does not depend on the
	// driver's duplicate-key message
	existingUser, err := s.userRepo.Get(ctx, &model.UserFilter{Username: req.Username})
	if err != nil {
		logger.Error("[Create] err userRepo.Get username", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, errors.SetCustomError(constant.ErrCredentialExists)
	}

	existingUser, err = s.userRepo.Get(ctx, &model.UserFilter{Email: req.Email})
	if err != nil {
		logger.Error("[Create] err userRepo.Get email", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, errors.SetCustomError(constant.ErrCredentialExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("[Create] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	userEntity := &model.UserEntity{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DateOfBirth:  req.DateOfBirth,
		PasswordHash: string(hashedPassword),
	}

	userEntity, err = s.userRepo.Create(ctx, userEntity)
	if err != nil {
		logger.Error("[Create] err userRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.publishEvent(userEntity.ID, constant.EventActionCreated)
	return userEntity, nil
}

func (s *UserAppImpl) GetByID(ctx context.Context, id uint64) (*model.UserEntity, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: id})
	if err != nil {
		logger.Error("[GetByID] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomErrorf(constant.ErrNotFound, "user with id %d not found", id)
	}
	return user, nil
}

func (s *UserAppImpl) List(ctx context.Context, skip, limit int) ([]model.UserEntity, error) {
	items, err := s.userRepo.List(ctx, skip, limit)
	if err != nil {
		logger.Error("[List] err userRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

func (s *UserAppImpl) Update(ctx context.Context, id uint64, req *model.UpdateUserRequest) (*model.UserEntity, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Update] err BeginTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	defer func() {
		_ = s.txRepo.RollbackTx(tx)
	}()

	// Existence decides the error before any uniqueness check does
	existing, err := s.userRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		logger.Error("[Update] err userRepo.GetByIDTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return nil, errors.SetCustomErrorf(constant.ErrNotFound, "user with id %d not found", id)
	}

	// Uniqueness pre-checks against other rows
	if req.Username != nil {
		other, err := s.userRepo.Get(ctx, &model.UserFilter{Username: *req.Username})
		if err != nil {
			logger.Error("[Update] err userRepo.Get username", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if other != nil && other.ID != id {
			return nil, errors.SetCustomError(constant.ErrCredentialExists)
		}
	}
	if req.Email != nil {
		other, err := s.userRepo.Get(ctx, &model.UserFilter{Email: *req.Email})
		if err != nil {
			logger.Error("[Update] err userRepo.Get email", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if other != nil && other.ID != id {
			return nil, errors.SetCustomError(constant.ErrCredentialExists)
		}
	}

	if !req.IsEmpty() {
		if err := s.userRepo.UpdateTx(ctx, tx, id, req); err != nil {
			logger.Error("[Update] err userRepo.UpdateTx", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	updated, err := s.userRepo.GetByIDTx(ctx, tx, id)
	if err != nil || updated == nil {
		logger.Error("[Update] err re-reading updated row", zap.Uint64("id", id))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Update] err CommitTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.publishEvent(id, constant.EventActionUpdated)
	return updated, nil
}

func (s *UserAppImpl) Delete(ctx context.Context, id uint64) (*model.UserEntity, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Delete] err BeginTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	defer func() {
		_ = s.txRepo.RollbackTx(tx)
	}()

	existing, err := s.userRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		logger.Error("[Delete] err userRepo.GetByIDTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return nil, errors.SetCustomErrorf(constant.ErrNotFound, "user with id %d not found", id)
	}

	if err := s.userRepo.DeleteTx(ctx, tx, id); err != nil {
		logger.Error("[Delete] err userRepo.DeleteTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Delete] err CommitTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.publishEvent(id, constant.EventActionDeleted)
	return existing, nil
}

func (s *UserAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	// Find user by username or email
	filter := &model.UserFilter{}
	if isEmail(req.Identifier) {
		filter.Email = req.Identifier
	} else {
		filter.Username = req.Identifier
	}

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		logger.Error("[Login] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidPassword)
	}

	token, jti, err := s.generateJWT(user.ID)
	if err != nil {
		logger.Error("[Login] err generateJWT", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	err = s.redisRepo.SetSession(ctx, jti, user.ID, s.config.Auth.SessionExpTime)
	if err != nil {
		logger.Error("[Login] err SetSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.LoginResponse{
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	}, nil
}

func (s *UserAppImpl) ValidateToken(ctx context.Context, tokenString string) (uint64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid claims")
	}

	userIDStr := claims.Subject
	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id in token")
	}

	jti := claims.ID
	if jti == "" {
		return 0, fmt.Errorf("token missing jti")
	}

	redisUserID, err := s.redisRepo.GetSession(ctx, jti)
	if err != nil {
		return 0, fmt.Errorf("invalid or expired session")
	}

	if redisUserID != userID {
		return 0, fmt.Errorf("token does not match user session")
	}

	return userID, nil
}

// generateJWT creates a JWT token for the user
func (s *UserAppImpl) generateJWT(userID uint64) (string, string, error) {
	newUUID, _ := uuid.NewRandom()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Auth.JWTExpiration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        newUUID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims.ID, nil
}

func (s *UserAppImpl) publishEvent(id uint64, action string) {
	if s.publisher == nil {
		return
	}
	msg := rabbitmq.EntityEventMessage{
		Entity:     constant.EntityUser,
		EntityID:   id,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishEntityEvent(msg); err != nil {
		logger.Warn("failed to publish entity event", zap.Uint64("id", id), zap.String("action", action), zap.Error(err))
	}
}

// isEmail checks if identifier looks like an email
func isEmail(identifier string) bool {
	for _, r := range identifier {
		if r == '@' {
			return true
		}
	}
	return false
}
