package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAssignmentHistoryQueryHandler reads the offer ledger straight from the
// assignments table.
type GetAssignmentHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetAssignmentHistoryQueryHandler creates a handler for offer history
// queries.
func NewGetAssignmentHistoryQueryHandler(db *gorm.DB) GetAssignmentHistoryQueryHandler {
	return GetAssignmentHistoryQueryHandler{db: db}
}

// Handle returns the most recent offer records, newest first.
func (h GetAssignmentHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetAssignmentHistoryQuery,
) ([]GetAssignmentHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records := make([]GetAssignmentHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			courier_id,
			score,
			status,
			assigned_at
		FROM assignments
		ORDER BY assigned_at DESC
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID    uuid.UUID
			courierID  uuid.UUID
			score      float64
			status     string
			assignedAt time.Time
		)

		if err = rows.Scan(&orderID, &courierID, &score, &status, &assignedAt); err != nil {
			return nil, err
		}

		oID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		cID, idErr := kernel.UUIDFromBytes(courierID[:])
		if idErr != nil {
			return nil, idErr
		}

		records = append(records, GetAssignmentHistoryQueryResponse{
			OrderID:    oID,
			CourierID:  cID,
			Score:      score,
			Status:     status,
			AssignedAt: assignedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
