package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
)

// AssignmentRepository stores the offer history. Records are appended as
// pending and updated once to a terminal status, never after.
type AssignmentRepository interface {
	// Add appends a new offer record.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists the single pending-to-terminal transition.
	Update(ctx context.Context, aggregate *assignment.Assignment) error
}

// RejectionRepository stores the append-only rejection audit trail.
type RejectionRepository interface {
	Add(ctx context.Context, record *assignment.Rejection) error
}

// NotificationRepository stores outbound user and courier notifications.
// Writes are best-effort from the caller's point of view: a failed
// notification write never rolls back an assignment.
type NotificationRepository interface {
	Add(ctx context.Context, record *assignment.Notification) error

	// AddCourierFeed mirrors the record into the courier's own feed.
	AddCourierFeed(ctx context.Context, record *assignment.Notification) error
}

// DeliveryRepository stores the delivery tracking record created when an
// assignment commits. The engine only appends here.
type DeliveryRepository interface {
	Add(ctx context.Context, record *assignment.Delivery) error
}
