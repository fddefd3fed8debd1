package service

import (
	"context"

	"partstrack/internal/domain"
	"partstrack/internal/dto"

	"go.uber.org/zap"
)

type TransitionAuthority interface {
	Decide(order domain.Order, target domain.Status, role domain.Role) domain.Verdict
}

type OrderRepository interface {
	UpdateStatus(ctx context.Context, id uint, status domain.Status) error
	Cancel(ctx context.Context, id uint, reason string) error
	Delete(ctx context.Context, id uint) error
}

// BulkService runs one operation across a selection of orders. Batches are
// best-effort and non-transactional: every item gets an independent outcome
// and a failed item never stops the rest of the batch.
type BulkService struct {
	authority TransitionAuthority
	orderRepo OrderRepository
	logger    *zap.Logger
}

func NewBulkService(authority TransitionAuthority, orderRepo OrderRepository, logger *zap.Logger) *BulkService {
	return &BulkService{
		authority: authority,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// RunBulkTransition moves every permitted order in the selection to target.
// Denied orders contribute their reason to the result; permitted orders are
// persisted one at a time, in selection order, so aggregation stays
// deterministic and the same batch never races itself on the store.
func (s *BulkService) RunBulkTransition(
	ctx context.Context,
	orders []domain.Order,
	target domain.Status,
	role domain.Role,
) *dto.BatchResult {
	result := &dto.BatchResult{}

	valid := s.partition(orders, target, role, result)

	for _, order := range valid {
		if err := s.orderRepo.UpdateStatus(ctx, order.ID, target); err != nil {
			result.Errors = append(result.Errors, err.Error())
			s.logger.Error("bulk status update failed", zap.Uint("orderId", order.ID), zap.String("target", string(target)), zap.Error(err))
			continue
		}
		result.SuccessCount++
		result.Succeeded = append(result.Succeeded, order.ID)
	}

	s.logger.Info("bulk transition finished",
		zap.String("target", string(target)),
		zap.Int("selected", len(orders)),
		zap.Int("succeeded", result.SuccessCount),
		zap.Int("skipped", len(result.Errors)),
	)

	return result
}

// RunBulkCancel cancels every permitted order in the selection, recording
// reason on each. Same accumulator shape as RunBulkTransition.
func (s *BulkService) RunBulkCancel(
	ctx context.Context,
	orders []domain.Order,
	reason string,
	role domain.Role,
) *dto.BatchResult {
	result := &dto.BatchResult{}

	valid := s.partition(orders, domain.StatusCancelled, role, result)

	for _, order := range valid {
		if err := s.orderRepo.Cancel(ctx, order.ID, reason); err != nil {
			result.Errors = append(result.Errors, err.Error())
			s.logger.Error("bulk cancel failed", zap.Uint("orderId", order.ID), zap.Error(err))
			continue
		}
		result.SuccessCount++
		result.Succeeded = append(result.Succeeded, order.ID)
	}

	s.logger.Info("bulk cancel finished",
		zap.Int("selected", len(orders)),
		zap.Int("succeeded", result.SuccessCount),
		zap.Int("skipped", len(result.Errors)),
	)

	return result
}

// RunBulkDelete removes every order in the selection. There is no authority
// gate on deletion; the admin-only restriction is enforced at the boundary
// before this is ever invoked.
func (s *BulkService) RunBulkDelete(ctx context.Context, orders []domain.Order) *dto.BatchResult {
	result := &dto.BatchResult{}

	for _, order := range orders {
		if err := s.orderRepo.Delete(ctx, order.ID); err != nil {
			result.Errors = append(result.Errors, err.Error())
			s.logger.Error("bulk delete failed", zap.Uint("orderId", order.ID), zap.Error(err))
			continue
		}
		result.SuccessCount++
		result.Succeeded = append(result.Succeeded, order.ID)
	}

	s.logger.Info("bulk delete finished",
		zap.Int("selected", len(orders)),
		zap.Int("succeeded", result.SuccessCount),
		zap.Int("skipped", len(result.Errors)),
	)

	return result
}

// partition splits the selection through the transition authority, folding
// every denial reason into result and returning the permitted subset.
func (s *BulkService) partition(
	orders []domain.Order,
	target domain.Status,
	role domain.Role,
	result *dto.BatchResult,
) []domain.Order {
	valid := make([]domain.Order, 0, len(orders))

	for _, order := range orders {
		verdict := s.authority.Decide(order, target, role)
		if !verdict.Allowed {
			result.Errors = append(result.Errors, verdict.Reason)
			s.logger.Warn("transition denied",
				zap.Uint("orderId", order.ID),
				zap.String("from", string(order.Status)),
				zap.String("target", string(target)),
				zap.String("role", string(role)),
				zap.String("reason", verdict.Reason),
			)
			continue
		}
		valid = append(valid, order)
	}

	return valid
}
