package dto

import (
	"fmt"
	"strings"
	"time"
)

// BatchResult aggregates one bulk operation. Errors holds every denial
// reason and every persistence failure message in the order they were seen,
// one entry per affected item; it is not de-duplicated here so the skipped
// count stays accurate.
type BatchResult struct {
	SuccessCount int
	Errors       []string
	Succeeded    []uint
}

// Message renders the consolidated user-facing text: a summary line plus the
// distinct reasons, one per line in first-seen order. Empty when nothing was
// skipped.
func (r BatchResult) Message() string {
	if len(r.Errors) == 0 {
		return ""
	}

	lines := make([]string, 0, len(r.Errors)+1)
	lines = append(lines, fmt.Sprintf("%d order(s) updated, %d skipped.", r.SuccessCount, len(r.Errors)))

	seen := make(map[string]bool, len(r.Errors))
	for _, reason := range r.Errors {
		if seen[reason] {
			continue
		}
		seen[reason] = true
		lines = append(lines, reason)
	}

	return strings.Join(lines, "\n")
}

// Filter on the bulk requests is the board's active status filter; the
// response list is rebuilt under it after the batch runs.

type BulkStatusRequest struct {
	OrderIDs []uint `json:"orderIds"`
	Status   string `json:"status"`
	Filter   string `json:"filter,omitempty"`
}

type BulkCancelRequest struct {
	OrderIDs []uint `json:"orderIds"`
	Reason   string `json:"reason"`
	Filter   string `json:"filter,omitempty"`
}

type BulkDeleteRequest struct {
	OrderIDs []uint `json:"orderIds"`
	Filter   string `json:"filter,omitempty"`
}

type OrderDTO struct {
	ID                 uint      `json:"id"`
	CustomerName       string    `json:"customerName"`
	PartNumber         string    `json:"partNumber"`
	Technician         string    `json:"technician"`
	Store              string    `json:"store"`
	Status             string    `json:"status"`
	CancellationReason *string   `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// BulkResponse is the consolidated outcome returned to the caller: the
// post-batch visible list under the active filter, counts, and the combined
// message when anything was skipped.
type BulkResponse struct {
	TraceID      string     `json:"traceId"`
	SuccessCount int        `json:"successCount"`
	SkippedCount int        `json:"skippedCount"`
	Message      string     `json:"message,omitempty"`
	Orders       []OrderDTO `json:"orders"`
	Timestamp    time.Time  `json:"timestamp"`
}

type ListOrdersResponse struct {
	TraceID   string     `json:"traceId"`
	Orders    []OrderDTO `json:"orders"`
	Timestamp time.Time  `json:"timestamp"`
}
