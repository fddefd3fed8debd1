package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"partstrack/internal/domain"
	"partstrack/internal/dto"
	"partstrack/internal/order/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mock implementations

type mockOrderRepository struct {
	ListByStatusFunc func(ctx context.Context, status domain.Status) ([]domain.Order, error)
	UpdateStatusFunc func(ctx context.Context, id uint, status domain.Status) error
	CancelFunc       func(ctx context.Context, id uint, reason string) error
	DeleteFunc       func(ctx context.Context, id uint) error
}

func (m *mockOrderRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error) {
	return m.ListByStatusFunc(ctx, status)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id uint, status domain.Status) error {
	return m.UpdateStatusFunc(ctx, id, status)
}

func (m *mockOrderRepository) Cancel(ctx context.Context, id uint, reason string) error {
	return m.CancelFunc(ctx, id, reason)
}

func (m *mockOrderRepository) Delete(ctx context.Context, id uint) error {
	return m.DeleteFunc(ctx, id)
}

type mockBulkService struct {
	RunBulkTransitionFunc func(ctx context.Context, orders []domain.Order, target domain.Status, role domain.Role) *dto.BatchResult
	RunBulkCancelFunc     func(ctx context.Context, orders []domain.Order, reason string, role domain.Role) *dto.BatchResult
	RunBulkDeleteFunc     func(ctx context.Context, orders []domain.Order) *dto.BatchResult
}

func (m *mockBulkService) RunBulkTransition(ctx context.Context, orders []domain.Order, target domain.Status, role domain.Role) *dto.BatchResult {
	return m.RunBulkTransitionFunc(ctx, orders, target, role)
}

func (m *mockBulkService) RunBulkCancel(ctx context.Context, orders []domain.Order, reason string, role domain.Role) *dto.BatchResult {
	return m.RunBulkCancelFunc(ctx, orders, reason, role)
}

func (m *mockBulkService) RunBulkDelete(ctx context.Context, orders []domain.Order) *dto.BatchResult {
	return m.RunBulkDeleteFunc(ctx, orders)
}

func boardOf(orders ...domain.Order) *mockOrderRepository {
	return &mockOrderRepository{
		ListByStatusFunc: func(ctx context.Context, status domain.Status) ([]domain.Order, error) {
			return orders, nil
		},
	}
}

// newBoardWithRealOrchestrator wires the use case through the real bulk
// service and transition authority, with only persistence mocked.
func newBoardWithRealOrchestrator(repo *mockOrderRepository, now time.Time) *BoardUseCase {
	authority := domain.NewAuthority(func() time.Time { return now })
	bulkSvc := service.NewBulkService(authority, repo, zap.NewNop())
	return NewBoardUseCase(repo, bulkSvc, zap.NewNop())
}

// Tests

func TestBulkTransition_MixedBatchAggregation(t *testing.T) {
	// Order 1 is policy-denied (employee approving), order 2's persistence
	// call fails, order 3 succeeds.
	now := time.Now()
	orders := []domain.Order{
		{ID: 1, Status: domain.StatusNeedToOrder, CreatedAt: now},
		{ID: 2, Status: domain.StatusOrdered, CreatedAt: now},
		{ID: 3, Status: domain.StatusOrdered, CreatedAt: now},
	}

	repo := boardOf(orders...)
	repo.UpdateStatusFunc = func(ctx context.Context, id uint, status domain.Status) error {
		if id == 2 {
			return errors.New("row version conflict")
		}
		return nil
	}

	board := newBoardWithRealOrchestrator(repo, now)
	result, err := board.BulkTransition(context.Background(), "", []uint{1, 2, 3}, domain.StatusReceived, domain.RoleEmployee)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 2, result.SkippedCount)
	assert.Contains(t, result.Message, "1 order(s) updated, 2 skipped.")
	assert.Contains(t, result.Message, `Transition from "need to order" to "received" is not permitted.`)
	assert.Contains(t, result.Message, "row version conflict")

	// No filter: all three stay visible, only order 3 carries the new status.
	require.Len(t, result.Orders, 3)
	assert.Equal(t, domain.StatusNeedToOrder, result.Orders[0].Status)
	assert.Equal(t, domain.StatusOrdered, result.Orders[1].Status)
	assert.Equal(t, domain.StatusReceived, result.Orders[2].Status)
}

func TestBulkTransition_FilterDropsTransitionedRows(t *testing.T) {
	now := time.Now()
	repo := boardOf(
		domain.Order{ID: 1, Status: domain.StatusOrdered, CreatedAt: now},
		domain.Order{ID: 2, Status: domain.StatusOrdered, CreatedAt: now},
	)
	repo.UpdateStatusFunc = func(ctx context.Context, id uint, status domain.Status) error {
		return nil
	}

	board := newBoardWithRealOrchestrator(repo, now)
	result, err := board.BulkTransition(context.Background(), domain.StatusOrdered, []uint{1}, domain.StatusReceived, domain.RoleEmployee)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Empty(t, result.Message)

	// Order 1 left the "ordered" filter; order 2 is still on the board.
	require.Len(t, result.Orders, 1)
	assert.Equal(t, uint(2), result.Orders[0].ID)
}

func TestBulkCancel_WithinWindowSetsReasonLocally(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := boardOf(domain.Order{ID: 1, Status: domain.StatusNeedToOrder, CreatedAt: createdAt})
	repo.CancelFunc = func(ctx context.Context, id uint, reason string) error {
		assert.Equal(t, "duplicate order", reason)
		return nil
	}

	// Thirty minutes after creation: inside the employee window.
	board := newBoardWithRealOrchestrator(repo, createdAt.Add(30*time.Minute))
	result, err := board.BulkCancel(context.Background(), "", []uint{1}, "duplicate order", domain.RoleEmployee)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	require.Len(t, result.Orders, 1)
	assert.Equal(t, domain.StatusCancelled, result.Orders[0].Status)
	require.NotNil(t, result.Orders[0].CancellationReason)
	assert.Equal(t, "duplicate order", *result.Orders[0].CancellationReason)
}

func TestBulkCancel_ExpiredWindowLeavesOrderUntouched(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := boardOf(domain.Order{ID: 1, Status: domain.StatusNeedToOrder, CreatedAt: createdAt})
	repo.CancelFunc = func(ctx context.Context, id uint, reason string) error {
		t.Fatal("denied orders must not reach persistence")
		return nil
	}

	// Ninety minutes after creation: past the window.
	board := newBoardWithRealOrchestrator(repo, createdAt.Add(90*time.Minute))
	result, err := board.BulkCancel(context.Background(), "", []uint{1}, "too slow", domain.RoleEmployee)
	require.NoError(t, err)

	assert.Equal(t, 0, result.SuccessCount)
	assert.Equal(t, 1, result.SkippedCount)
	assert.Contains(t, result.Message, "Cancellation window (1 hour) has expired.")

	require.Len(t, result.Orders, 1)
	assert.Equal(t, domain.StatusNeedToOrder, result.Orders[0].Status)
	assert.Nil(t, result.Orders[0].CancellationReason)
}

func TestBulkDelete_RemovesDeletedRows(t *testing.T) {
	now := time.Now()
	repo := boardOf(
		domain.Order{ID: 1, Status: domain.StatusCompleted, CreatedAt: now},
		domain.Order{ID: 2, Status: domain.StatusCompleted, CreatedAt: now},
	)
	repo.DeleteFunc = func(ctx context.Context, id uint) error {
		return nil
	}

	board := newBoardWithRealOrchestrator(repo, now)
	result, err := board.BulkDelete(context.Background(), domain.StatusCompleted, []uint{1})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	require.Len(t, result.Orders, 1)
	assert.Equal(t, uint(2), result.Orders[0].ID)
}

func TestBulkTransition_UnknownSelectionID(t *testing.T) {
	now := time.Now()
	repo := boardOf(domain.Order{ID: 1, Status: domain.StatusOrdered, CreatedAt: now})
	repo.UpdateStatusFunc = func(ctx context.Context, id uint, status domain.Status) error {
		return nil
	}

	board := newBoardWithRealOrchestrator(repo, now)
	result, err := board.BulkTransition(context.Background(), "", []uint{1, 42}, domain.StatusReceived, domain.RoleManager)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.SkippedCount)
	assert.Contains(t, result.Message, "Order 42 is not on the board.")
}

func TestBulkTransition_ListFailurePropagates(t *testing.T) {
	listErr := errors.New("connection refused")
	repo := &mockOrderRepository{
		ListByStatusFunc: func(ctx context.Context, status domain.Status) ([]domain.Order, error) {
			return nil, listErr
		},
	}
	bulkSvc := &mockBulkService{
		RunBulkTransitionFunc: func(ctx context.Context, orders []domain.Order, target domain.Status, role domain.Role) *dto.BatchResult {
			t.Fatal("batch must not start when the list load fails")
			return nil
		},
	}

	board := NewBoardUseCase(repo, bulkSvc, zap.NewNop())
	result, err := board.BulkTransition(context.Background(), "", []uint{1}, domain.StatusReceived, domain.RoleManager)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, listErr)
}

func TestBulkTransition_PassesSelectionInOrder(t *testing.T) {
	now := time.Now()
	repo := boardOf(
		domain.Order{ID: 1, Status: domain.StatusOrdered, CreatedAt: now},
		domain.Order{ID: 2, Status: domain.StatusOrdered, CreatedAt: now},
		domain.Order{ID: 3, Status: domain.StatusOrdered, CreatedAt: now},
	)

	var got []uint
	bulkSvc := &mockBulkService{
		RunBulkTransitionFunc: func(ctx context.Context, orders []domain.Order, target domain.Status, role domain.Role) *dto.BatchResult {
			for _, order := range orders {
				got = append(got, order.ID)
			}
			return &dto.BatchResult{}
		},
	}

	board := NewBoardUseCase(repo, bulkSvc, zap.NewNop())
	_, err := board.BulkTransition(context.Background(), "", []uint{3, 1, 2}, domain.StatusReceived, domain.RoleManager)
	require.NoError(t, err)

	assert.Equal(t, []uint{3, 1, 2}, got)
}
