package call

import (
	"context"
	"time"

	"github.com/jfcarod/convocations-api/constant"
	"github.com/jfcarod/convocations-api/model"
	callrepo "github.com/jfcarod/convocations-api/repository/call"
	txrepo "github.com/jfcarod/convocations-api/repository/tx"
	"github.com/jfcarod/convocations-api/thirdparty/rabbitmq"
	"github.com/jfcarod/convocations-api/utils/errors"
	"github.com/jfcarod/convocations-api/utils/logger"
	"go.uber.org/zap"
)

type CallApp interface {
	Create(ctx context.Context, req *model.CreateCallRequest) (*model.CallEntity, error)
	GetByID(ctx context.Context, id uint64) (*model.CallEntity, error)
	List(ctx context.Context, skip, limit int) ([]model.CallEntity, error)
	Update(ctx context.Context, id uint64, req *model.UpdateCallRequest) (*model.CallEntity, error)
	Delete(ctx context.Context, id uint64) (*model.CallEntity, error)
}

type CallAppImpl struct {
	callRepo  callrepo.CallRepository
	txRepo    txrepo.TxRepository
	publisher rabbitmq.EventPublisher
}

func NewCallApp(callRepo callrepo.CallRepository, txRepo txrepo.TxRepository, publisher rabbitmq.EventPublisher) CallApp {
	return &CallAppImpl{
		callRepo:  callRepo,
		txRepo:    txRepo,
		publisher: publisher,
	}
}

func (s *CallAppImpl) Create(ctx context.Context, req *model.CreateCallRequest) (*model.CallEntity, error) {
	entity := &model.CallEntity{
		CallerID:      req.CallerID,
		ReceiverID:    req.ReceiverID,
		CallStartTime: req.CallStartTime,
	}

	entity, err := s.callRepo.Create(ctx, entity)
	if err != nil {
		logger.Error("[Create] err callRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.publishEvent(entity.ID, constant.EventActionCreated)
	return entity, nil
}

func (s *CallAppImpl) GetByID(ctx context.Context, id uint64) (*model.CallEntity, error) {
	entity, err := s.callRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetByID] err callRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return nil, errors.SetCustomErrorf(constant.ErrNotFound, "call with id %d not found", id)
	}
	return entity, nil
}

func (s *CallAppImpl) List(ctx context.Context, skip, limit int) ([]model.CallEntity, error) {
	items, err := s.callRepo.List(ctx, skip, limit)
	if err != nil {
		logger.Error("[List] err callRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

func (s *CallAppImpl) Update(ctx context.Context, id uint64, req *model.UpdateCallRequest) (*model.CallEntity, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Update] err BeginTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	defer func() {
		_ = s.txRepo.RollbackTx(tx)
	}()

	existing, err := s.callRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		logger.Error("[Update] err callRepo.GetByIDTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return nil, errors.SetCustomErrorf(constant.ErrNotFound, "call with id %d not found", id)
	}

	if !req.IsEmpty() {
		if err := s.callRepo.UpdateTx(ctx, tx, id, req); err != nil {
			logger.Error("[Update] err callRepo.UpdateTx", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	updated, err := s.callRepo.GetByIDTx(ctx, tx, id)
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

func (s *CallAppImpl) Delete(ctx context.Context, id uint64) (*model.CallEntity, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Delete] err BeginTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	defer func() {
		_ = s.txRepo.RollbackTx(tx)
	}()

	existing, err := s.callRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		logger.Error("[Delete] err callRepo.GetByIDTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return nil, errors.SetCustomErrorf(constant.ErrNotFound, "call with id %d not found", id)
	}

	if err := s.callRepo.DeleteTx(ctx, tx, id); err != nil {
		logger.Error("[Delete] err callRepo.DeleteTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Delete] err CommitTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.publishEvent(id, constant.EventActionDeleted)
	return existing, nil
}

func (s *CallAppImpl) publishEvent(id uint64, action string) {
	if s.publisher == nil {
		return
	}
	msg := rabbitmq.EntityEventMessage{
		Entity:     constant.EntityCall,
		EntityID:   id,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishEntityEvent(msg); err != nil {
		logger.Warn("failed to publish entity event", zap.Uint64("id", id), zap.String("action", action), zap.Error(err))
	}
}
