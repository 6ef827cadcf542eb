// Package ledgerrepo persists the append-only records of the assignment
// pass: offers, rejections, notifications and delivery tracking rows.
package ledgerrepo

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"

	"github.com/google/uuid"
)

// Delivery rows are created in this fixed initial state; downstream tracking
// owns later transitions.
const (
	deliveryStatusAssigned  = "assigned"
	deliveryResponsePending = "pending"
)

// AssignmentDTO represents one offer record in the assignments table.
type AssignmentDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	CourierID  uuid.UUID `gorm:"type:uuid;index"`
	Score      float64
	Status     string
	AssignedAt time.Time
}

// TableName overrides GORM's default naming convention.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// RejectionDTO represents one rejection audit row.
type RejectionDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	CourierID uuid.UUID `gorm:"type:uuid"`
	Reason    string
	CreatedAt time.Time
}

// TableName overrides GORM's default naming convention.
func (RejectionDTO) TableName() string {
	return "rejections"
}

// NotificationDTO represents one outbound notification row.
type NotificationDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	RecipientID uuid.UUID `gorm:"type:uuid;index"`
	OrderID     uuid.UUID `gorm:"type:uuid"`
	Title       string
	Message     string
	CreatedAt   time.Time
}

// TableName overrides GORM's default naming convention.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// CourierFeedDTO mirrors courier-bound notifications into the courier's own
// feed table.
type CourierFeedDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	RecipientID uuid.UUID `gorm:"type:uuid;index"`
	OrderID     uuid.UUID `gorm:"type:uuid"`
	Title       string
	Message     string
	CreatedAt   time.Time
}

// TableName overrides GORM's default naming convention.
func (CourierFeedDTO) TableName() string {
	return "courier_feed"
}

// DeliveryDTO represents the delivery tracking row appended when an
// assignment commits.
type DeliveryDTO struct {
	ID         int64      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID  `gorm:"type:uuid;index"`
	CourierID  uuid.UUID  `gorm:"type:uuid;index"`
	ZoneID     *uuid.UUID `gorm:"type:uuid"`
	Status     string
	Response   string
	AssignedAt time.Time
}

// TableName overrides GORM's default naming convention.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func assignmentFromDomain(record *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		OrderID:    record.OrderID().Bytes(),
		CourierID:  record.CourierID().Bytes(),
		Score:      record.Score(),
		Status:     string(record.Status()),
		AssignedAt: record.AssignedAt(),
	}
}

func rejectionFromDomain(record *assignment.Rejection) RejectionDTO {
	return RejectionDTO{
		OrderID:   record.OrderID().Bytes(),
		CourierID: record.CourierID().Bytes(),
		Reason:    string(record.Reason()),
		CreatedAt: record.CreatedAt(),
	}
}

func notificationFromDomain(record *assignment.Notification) NotificationDTO {
	return NotificationDTO{
		RecipientID: record.RecipientID().Bytes(),
		OrderID:     record.OrderID().Bytes(),
		Title:       record.Title(),
		Message:     record.Message(),
		CreatedAt:   record.CreatedAt(),
	}
}

func courierFeedFromDomain(record *assignment.Notification) CourierFeedDTO {
	return CourierFeedDTO{
		RecipientID: record.RecipientID().Bytes(),
		OrderID:     record.OrderID().Bytes(),
		Title:       record.Title(),
		Message:     record.Message(),
		CreatedAt:   record.CreatedAt(),
	}
}

func deliveryFromDomain(record *assignment.Delivery) DeliveryDTO {
	var zoneID *uuid.UUID
	if id := record.ZoneID(); id != nil {
		raw := id.Bytes()
		zoneID = &raw
	}

	return DeliveryDTO{
		OrderID:    record.OrderID().Bytes(),
		CourierID:  record.CourierID().Bytes(),
		ZoneID:     zoneID,
		Status:     deliveryStatusAssigned,
		Response:   deliveryResponsePending,
		AssignedAt: record.AssignedAt(),
	}
}
