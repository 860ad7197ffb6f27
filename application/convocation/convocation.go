package convocation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jfcarod/convocations-api/constant"
	"github.com/jfcarod/convocations-api/model"
	convocationrepo "github.com/jfcarod/convocations-api/repository/convocation"
	redisrepo "github.com/jfcarod/convocations-api/repository/redis"
	txrepo "github.com/jfcarod/convocations-api/repository/tx"
	"github.com/jfcarod/convocations-api/thirdparty/rabbitmq"
	"github.com/jfcarod/convocations-api/utils/errors"
	"github.com/jfcarod/convocations-api/utils/logger"
	"go.uber.org/zap"
)

const cacheTTL = 5 * time.Minute

type ConvocationApp interface {
	Create(ctx context.Context, req *model.CreateConvocationRequest) (*model.ConvocationEntity, error)
	GetByID(ctx context.Context, id uint64) (*model.ConvocationEntity, error)
	List(ctx context.Context, skip, limit int) ([]model.ConvocationEntity, error)
	Update(ctx context.Context, id uint64, req *model.UpdateConvocationRequest) (*model.ConvocationEntity, error)
	Delete(ctx context.Context, id uint64) (*model.ConvocationEntity, error)
}

type ConvocationAppImpl struct {
	convocationRepo convocationrepo.ConvocationRepository
	txRepo          txrepo.TxRepository
	redisRepo       redisrepo.Repository
	publisher       rabbitmq.EventPublisher
}

func NewConvocationApp(convocationRepo convocationrepo.ConvocationRepository, txRepo txrepo.TxRepository, redisRepo redisrepo.Repository, publisher rabbitmq.EventPublisher) ConvocationApp {
	return &ConvocationAppImpl{
		convocationRepo: convocationRepo,
		txRepo:          txRepo,
		redisRepo:       redisRepo,
		publisher:       publisher,
	}
}

func (s *ConvocationAppImpl) Create(ctx context.Context, req *model.CreateConvocationRequest) (*model.ConvocationEntity, error) {
	if req.StartDate.After(req.EndDate) {
		return nil, errors.SetCustomError(constant.ErrInvalidDateRange)
	}

	entity := &model.ConvocationEntity{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	entity, err := s.convocationRepo.Create(ctx, entity)
	if err != nil {
		logger.Error("[Create] err convocationRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.publishEvent(entity.ID, constant.EventActionCreated)
	return entity, nil
}

func (s *ConvocationAppImpl) GetByID(ctx context.Context, id uint64) (*model.ConvocationEntity, error) {
	if cached, err := s.redisRepo.GetCachedEntity(ctx, constant.EntityConvocation, id); err == nil && cached != "" {
		var entity model.ConvocationEntity
		if err := json.Unmarshal([]byte(cached), &entity); err == nil {
			return &entity, nil
		}
	}

	entity, err := s.convocationRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetByID] err convocationRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return nil, errors.SetCustomErrorf(constant.ErrNotFound, "convocation with id %d not found", id)
	}

	if payload, err := json.Marshal(entity); err == nil {
		if err := s.redisRepo.CacheEntity(ctx, constant.EntityConvocation, id, string(payload), cacheTTL); err != nil {
			logger.Warn("[GetByID] err redisRepo.CacheEntity", zap.String("error", err.Error()))
		}
	}

	return entity, nil
}

func (s *ConvocationAppImpl) List(ctx context.Context, skip, limit int) ([]model.ConvocationEntity, error) {
	items, err := s.convocationRepo.List(ctx, skip, limit)
	if err != nil {
		logger.Error("[List] err convocationRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

func (s *ConvocationAppImpl) Update(ctx context.Context, id uint64, req *model.UpdateConvocationRequest) (*model.ConvocationEntity, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Update] err BeginTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	defer func() {
		_ = s.txRepo.RollbackTx(tx)
	}()

	existing, err := s.convocationRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		logger.Error("[Update] err convocationRepo.GetByIDTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return nil, errors.SetCustomErrorf(constant.ErrNotFound, "convocation with id %d not found", id)
	}

	// Validate the merged date range, not just the supplied fields
	start, end := existing.StartDate, existing.EndDate
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}
	if start.After(end) {
		return nil, errors.SetCustomError(constant.ErrInvalidDateRange)
	}

	if !req.IsEmpty() {
		if err := s.convocationRepo.UpdateTx(ctx, tx, id, req); err != nil {
			logger.Error("[Update] err convocationRepo.UpdateTx", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	updated, err := s.convocationRepo.GetByIDTx(ctx, tx, id)
	if err != nil || updated == nil {
		logger.Error("[Update] err re-reading updated row", zap.Uint64("id", id))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Update] err CommitTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.invalidateCache(ctx, id)
	s.publishEvent(id, constant.EventActionUpdated)
	return updated, nil
}

func (s *ConvocationAppImpl) Delete(ctx context.Context, id uint64) (*model.ConvocationEntity, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Delete] err BeginTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	defer func() {
		_ = s.txRepo.RollbackTx(tx)
	}()

	existing, err := s.convocationRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		logger.Error("[Delete] err convocationRepo.GetByIDTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return nil, errors.SetCustomErrorf(constant.ErrNotFound, "convocation with id %d not found", id)
	}

	if err := s.convocationRepo.DeleteTx(ctx, tx, id); err != nil {
		logger.Error("[Delete] err convocationRepo.DeleteTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Delete] err CommitTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.invalidateCache(ctx, id)
	s.publishEvent(id, constant.EventActionDeleted)
	return existing, nil
}

func (s *ConvocationAppImpl) invalidateCache(ctx context.Context, id uint64) {
	if err := s.redisRepo.InvalidateEntity(ctx, constant.EntityConvocation, id); err != nil {
		logger.Warn("failed to invalidate convocation cache", zap.Uint64("id", id), zap.Error(err))
	}
}

func (s *ConvocationAppImpl) publishEvent(id uint64, action string) {
	if s.publisher == nil {
		return
	}
	msg := rabbitmq.EntityEventMessage{
		Entity:     constant.EntityConvocation,
		EntityID:   id,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishEntityEvent(msg); err != nil {
		logger.Warn("failed to publish entity event", zap.Uint64("id", id), zap.String("action", action), zap.Error(err))
	}
}
