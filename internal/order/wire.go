package order

import (
	"database/sql"

	"partstrack/internal/config"
	"partstrack/internal/domain"
	"partstrack/internal/order/controller"
	orderrepo "partstrack/internal/order/repository"
	"partstrack/internal/order/service"
	"partstrack/internal/order/usecase"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.BulkController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	authority := domain.NewAuthority(nil)

	bulkSvc := service.NewBulkService(authority, orderRepo, logger)
	board := usecase.NewBoardUseCase(orderRepo, bulkSvc, logger)

	return controller.NewBulkController(board, cfg.Order.BulkMaxSelection, logger)
}
