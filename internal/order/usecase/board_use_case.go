package usecase

import (
	"context"
	"fmt"

	"partstrack/internal/domain"
	"partstrack/internal/dto"

	"go.uber.org/zap"
)

type BulkOrderService interface {
	RunBulkTransition(ctx context.Context, orders []domain.Order, target domain.Status, role domain.Role) *dto.BatchResult
	RunBulkCancel(ctx context.Context, orders []domain.Order, reason string, role domain.Role) *dto.BatchResult
	RunBulkDelete(ctx context.Context, orders []domain.Order) *dto.BatchResult
}

type OrderRepository interface {
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error)
}

// BoardResult is what the caller sees after a bulk operation: the visible
// list under the active filter with the batch outcome already applied, the
// counts, and the consolidated message when anything was skipped. The
// selection is always cleared; it never survives a batch.
type BoardResult struct {
	Orders       []domain.Order
	SuccessCount int
	SkippedCount int
	Message      string
}

// BoardUseCase coordinates one bulk operation against the order board. It
// owns no persistent state; each call loads the visible list, runs the batch
// through the orchestrator, and applies the outcome locally rather than
// re-querying the store.
type BoardUseCase struct {
	orderRepo OrderRepository
	bulkSvc   BulkOrderService
	logger    *zap.Logger
}

func NewBoardUseCase(orderRepo OrderRepository, bulkSvc BulkOrderService, logger *zap.Logger) *BoardUseCase {
	return &BoardUseCase{
		orderRepo: orderRepo,
		bulkSvc:   bulkSvc,
		logger:    logger,
	}
}

// List returns the orders visible under the status filter.
func (uc *BoardUseCase) List(ctx context.Context, filter domain.Status) ([]domain.Order, error) {
	return uc.orderRepo.ListByStatus(ctx, filter)
}

// BulkTransition moves the selected orders to target and returns the updated
// board. A failure loading the visible list propagates; nothing after
// iteration starts does.
func (uc *BoardUseCase) BulkTransition(
	ctx context.Context,
	filter domain.Status,
	ids []uint,
	target domain.Status,
	role domain.Role,
) (*BoardResult, error) {
	uc.logger.Info("bulk transition requested", zap.Int("selected", len(ids)), zap.String("target", string(target)), zap.String("role", string(role)))

	visible, err := uc.orderRepo.ListByStatus(ctx, filter)
	if err != nil {
		return nil, err
	}

	selected, missing := pickSelection(visible, ids)
	result := uc.bulkSvc.RunBulkTransition(ctx, selected, target, role)
	result.Errors = append(missing, result.Errors...)

	orders := applyBatch(visible, result, func(order *domain.Order) {
		order.Status = target
	}, filter)

	return uc.boardResult(orders, result), nil
}

// BulkCancel cancels the selected orders, recording reason on each.
func (uc *BoardUseCase) BulkCancel(
	ctx context.Context,
	filter domain.Status,
	ids []uint,
	reason string,
	role domain.Role,
) (*BoardResult, error) {
	uc.logger.Info("bulk cancel requested", zap.Int("selected", len(ids)), zap.String("role", string(role)))

	visible, err := uc.orderRepo.ListByStatus(ctx, filter)
	if err != nil {
		return nil, err
	}

	selected, missing := pickSelection(visible, ids)
	result := uc.bulkSvc.RunBulkCancel(ctx, selected, reason, role)
	result.Errors = append(missing, result.Errors...)

	orders := applyBatch(visible, result, func(order *domain.Order) {
		order.Status = domain.StatusCancelled
		order.CancellationReason = &reason
	}, filter)

	return uc.boardResult(orders, result), nil
}

// BulkDelete removes the selected orders. The admin-only restriction is a
// boundary concern enforced before this is reached.
func (uc *BoardUseCase) BulkDelete(
	ctx context.Context,
	filter domain.Status,
	ids []uint,
) (*BoardResult, error) {
	uc.logger.Info("bulk delete requested", zap.Int("selected", len(ids)))

	visible, err := uc.orderRepo.ListByStatus(ctx, filter)
	if err != nil {
		return nil, err
	}

	selected, missing := pickSelection(visible, ids)
	result := uc.bulkSvc.RunBulkDelete(ctx, selected)
	result.Errors = append(missing, result.Errors...)

	succeeded := succeededSet(result)
	orders := make([]domain.Order, 0, len(visible))
	for _, order := range visible {
		if succeeded[order.ID] {
			continue
		}
		orders = append(orders, order)
	}

	return uc.boardResult(orders, result), nil
}

func (uc *BoardUseCase) boardResult(orders []domain.Order, result *dto.BatchResult) *BoardResult {
	return &BoardResult{
		Orders:       orders,
		SuccessCount: result.SuccessCount,
		SkippedCount: len(result.Errors),
		Message:      result.Message(),
	}
}

// pickSelection resolves the selected ids against the visible list in
// selection order. Ids that are not on the board contribute a not-found
// reason instead of being silently dropped.
func pickSelection(visible []domain.Order, ids []uint) ([]domain.Order, []string) {
	byID := make(map[uint]domain.Order, len(visible))
	for _, order := range visible {
		byID[order.ID] = order
	}

	selected := make([]domain.Order, 0, len(ids))
	var missing []string
	for _, id := range ids {
		order, ok := byID[id]
		if !ok {
			missing = append(missing, fmt.Sprintf("Order %d is not on the board.", id))
			continue
		}
		selected = append(selected, order)
	}

	return selected, missing
}

// applyBatch updates the in-memory list after a batch: successfully
// transitioned orders get mutate applied, and rows no longer matching the
// active filter drop out of the visible list.
func applyBatch(
	visible []domain.Order,
	result *dto.BatchResult,
	mutate func(*domain.Order),
	filter domain.Status,
) []domain.Order {
	succeeded := succeededSet(result)

	orders := make([]domain.Order, 0, len(visible))
	for _, order := range visible {
		if succeeded[order.ID] {
			mutate(&order)
		}
		if filter != "" && order.Status != filter {
			continue
		}
		orders = append(orders, order)
	}

	return orders
}

func succeededSet(result *dto.BatchResult) map[uint]bool {
	set := make(map[uint]bool, len(result.Succeeded))
	for _, id := range result.Succeeded {
		set[id] = true
	}
	return set
}
