package ledgerrepo

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GORM offer ledger.
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Add appends a new offer record.
func (r *GormAssignmentRepository) Add(ctx context.Context, record *assignment.Assignment) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := assignmentFromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update settles the pending record of this order/courier pair into its
// terminal status. Terminal rows are never touched again.
func (r *GormAssignmentRepository) Update(ctx context.Context, record *assignment.Assignment) error {
	if err := record.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("order_id = ? AND courier_id = ? AND status = ?",
			record.OrderID().Bytes(), record.CourierID().Bytes(), string(assignment.StatusPending)).
		Update("status", string(record.Status()))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// GormRejectionRepository implements ports.RejectionRepository using GORM.
type GormRejectionRepository struct {
	db *gorm.DB
}

// NewGormRejectionRepository creates a new GORM rejection ledger.
func NewGormRejectionRepository(db *gorm.DB) *GormRejectionRepository {
	return &GormRejectionRepository{db: db}
}

// Add appends a rejection audit row.
func (r *GormRejectionRepository) Add(ctx context.Context, record *assignment.Rejection) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := rejectionFromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GormNotificationRepository implements ports.NotificationRepository using
// GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification store.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Add appends a notification row.
func (r *GormNotificationRepository) Add(ctx context.Context, record *assignment.Notification) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := notificationFromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddCourierFeed mirrors the record into the courier feed table.
func (r *GormNotificationRepository) AddCourierFeed(ctx context.Context, record *assignment.Notification) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := courierFeedFromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GORM delivery tracking store.
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// Add appends the delivery tracking row.
func (r *GormDeliveryRepository) Add(ctx context.Context, record *assignment.Delivery) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := deliveryFromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}
