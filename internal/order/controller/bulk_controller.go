package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"partstrack/internal/domain"
	"partstrack/internal/dto"
	apperrors "partstrack/internal/errors"
	"partstrack/internal/order/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// roleHeader carries the caller's role, set by the session layer in front of
// this service. It is trusted here; parsing it into the closed role set is
// the only check applied.
const roleHeader = "X-User-Role"

type BoardUseCase interface {
	List(ctx context.Context, filter domain.Status) ([]domain.Order, error)
	BulkTransition(ctx context.Context, filter domain.Status, ids []uint, target domain.Status, role domain.Role) (*usecase.BoardResult, error)
	BulkCancel(ctx context.Context, filter domain.Status, ids []uint, reason string, role domain.Role) (*usecase.BoardResult, error)
	BulkDelete(ctx context.Context, filter domain.Status, ids []uint) (*usecase.BoardResult, error)
}

type BulkController struct {
	useCase      BoardUseCase
	maxSelection int
	logger       *zap.Logger
}

func NewBulkController(useCase BoardUseCase, maxSelection int, logger *zap.Logger) *BulkController {
	return &BulkController{
		useCase:      useCase,
		maxSelection: maxSelection,
		logger:       logger,
	}
}

func (c *BulkController) ListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	filter, ok := c.parseFilter(w, traceID, r.URL.Query().Get("status"))
	if !ok {
		return
	}

	orders, err := c.useCase.List(r.Context(), filter)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.ListOrdersResponse{
		TraceID:   traceID,
		Orders:    toOrderDTOs(orders),
		Timestamp: time.Now().UTC(),
	})
}

func (c *BulkController) BulkStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	role, ok := c.parseRole(w, traceID, r)
	if !ok {
		return
	}

	var req dto.BulkStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	details := c.validateSelection(req.OrderIDs)
	target := domain.Status(req.Status)
	if !target.Valid() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "status",
			Message: "status is not a known value",
		})
	}
	if req.Filter != "" && !domain.Status(req.Filter).Valid() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "filter",
			Message: "filter is not a known status",
		})
	}
	if len(details) > 0 {
		c.writeValidationError(w, traceID, "validation failed", details...)
		return
	}

	result, err := c.useCase.BulkTransition(r.Context(), domain.Status(req.Filter), req.OrderIDs, target, role)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeBulkResponse(w, traceID, result)
}

func (c *BulkController) BulkCancel(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	role, ok := c.parseRole(w, traceID, r)
	if !ok {
		return
	}

	var req dto.BulkCancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	details := c.validateSelection(req.OrderIDs)
	if req.Reason == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if req.Filter != "" && !domain.Status(req.Filter).Valid() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "filter",
			Message: "filter is not a known status",
		})
	}
	if len(details) > 0 {
		c.writeValidationError(w, traceID, "validation failed", details...)
		return
	}

	result, err := c.useCase.BulkCancel(r.Context(), domain.Status(req.Filter), req.OrderIDs, req.Reason, role)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeBulkResponse(w, traceID, result)
}

func (c *BulkController) BulkDelete(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	role, ok := c.parseRole(w, traceID, r)
	if !ok {
		return
	}

	// Deletion is admin-only. The orchestrator applies no gate of its own,
	// so the check lives here at the boundary.
	if role != domain.RoleAdmin {
		c.writeErrorResponse(w, traceID, http.StatusForbidden, "FORBIDDEN", "only admins can delete orders", logger)
		return
	}

	var req dto.BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	details := c.validateSelection(req.OrderIDs)
	if req.Filter != "" && !domain.Status(req.Filter).Valid() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "filter",
			Message: "filter is not a known status",
		})
	}
	if len(details) > 0 {
		c.writeValidationError(w, traceID, "validation failed", details...)
		return
	}

	result, err := c.useCase.BulkDelete(r.Context(), domain.Status(req.Filter), req.OrderIDs)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeBulkResponse(w, traceID, result)
}

func (c *BulkController) validateSelection(ids []uint) []apperrors.ValidationDetail {
	var details []apperrors.ValidationDetail

	if len(ids) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "orderIds",
			Message: "orderIds must not be empty",
		})
	}

	if len(ids) > c.maxSelection {
		details = append(details, apperrors.ValidationDetail{
			Field:   "orderIds",
			Message: "orderIds exceeds maximum of " + strconv.Itoa(c.maxSelection),
		})
	}

	seen := make(map[uint]bool, len(ids))
	for idx, id := range ids {
		if id == 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "orderIds[" + strconv.Itoa(idx) + "]",
				Message: "each orderId must be a positive integer",
			})
		}
		if seen[id] {
			details = append(details, apperrors.ValidationDetail{
				Field:   "orderIds[" + strconv.Itoa(idx) + "]",
				Message: "orderId must not be duplicated",
			})
		}
		seen[id] = true
	}

	return details
}

func (c *BulkController) parseRole(w http.ResponseWriter, traceID string, r *http.Request) (domain.Role, bool) {
	role, ok := domain.ParseRole(r.Header.Get(roleHeader))
	if !ok {
		c.writeErrorResponse(w, traceID, http.StatusForbidden, "FORBIDDEN", "caller role is missing or unknown", c.logger)
		return "", false
	}
	return role, true
}

func (c *BulkController) parseFilter(w http.ResponseWriter, traceID string, raw string) (domain.Status, bool) {
	if raw == "" {
		return "", true
	}
	filter := domain.Status(raw)
	if !filter.Valid() {
		c.writeValidationError(w, traceID, "validation failed", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status is not a known value",
		})
		return "", false
	}
	return filter, true
}

func (c *BulkController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error(), logger)
		return
	}

	if _, ok := apperrors.IsForbiddenError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusForbidden, "FORBIDDEN", err.Error(), logger)
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusConflict, "CONFLICT", err.Error(), logger)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", logger)
}

func (c *BulkController) writeBulkResponse(w http.ResponseWriter, traceID string, result *usecase.BoardResult) {
	response := dto.BulkResponse{
		TraceID:      traceID,
		SuccessCount: result.SuccessCount,
		SkippedCount: result.SkippedCount,
		Message:      result.Message,
		Orders:       toOrderDTOs(result.Orders),
		Timestamp:    time.Now().UTC(),
	}

	statusCode := http.StatusOK
	if result.SkippedCount > 0 && result.SuccessCount > 0 {
		statusCode = http.StatusPartialContent
	} else if result.SkippedCount > 0 && result.SuccessCount == 0 {
		statusCode = http.StatusUnprocessableEntity
	}

	c.writeJSON(w, statusCode, response)
}

func toOrderDTOs(orders []domain.Order) []dto.OrderDTO {
	out := make([]dto.OrderDTO, len(orders))
	for i, order := range orders {
		out[i] = dto.OrderDTO{
			ID:                 order.ID,
			CustomerName:       order.CustomerName,
			PartNumber:         order.PartNumber,
			Technician:         order.Technician,
			Store:              order.Store,
			Status:             string(order.Status),
			CancellationReason: order.CancellationReason,
			CreatedAt:          order.CreatedAt,
			UpdatedAt:          order.UpdatedAt,
		}
	}
	return out
}

type errorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (c *BulkController) writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code string, message string, logger *zap.Logger) {
	response := errorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}

	c.writeJSON(w, statusCode, response)
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *BulkController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	response := validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	}

	c.writeJSON(w, http.StatusBadRequest, response)
}

func (c *BulkController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
