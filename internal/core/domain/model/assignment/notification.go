package assignment

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a Notification was not
// created through one of its constructors.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via a constructor")

// Notification is a fire-and-forget message recorded for a user or courier.
// The engine guarantees the write is attempted, not that it is delivered.
type Notification struct {
	recipientID   kernel.UUID
	orderID       kernel.UUID
	title         string
	message       string
	createdAt     time.Time
	isConstructed bool
}

// NewOfferNotification builds the message sent to a courier when an order is
// offered to them.
func NewOfferNotification(courierID, orderID kernel.UUID, createdAt time.Time) (*Notification, error) {
	return newNotification(courierID, orderID,
		"New Order Available",
		fmt.Sprintf("Please accept Order #%s", orderID),
		createdAt)
}

// NewAssignedNotification builds the message sent to the requesting user after
// a successful assignment.
func NewAssignedNotification(userID, orderID kernel.UUID, userName string, createdAt time.Time) (*Notification, error) {
	return newNotification(userID, orderID,
		"Order Assigned!",
		fmt.Sprintf("%s, your Order #%s has been assigned.", userName, orderID),
		createdAt)
}

func newNotification(recipientID, orderID kernel.UUID, title, message string, createdAt time.Time) (*Notification, error) {
	if err := errors.Join(recipientID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Notification{
		recipientID:   recipientID,
		orderID:       orderID,
		title:         title,
		message:       message,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Notification was created through a constructor.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// RecipientID returns the message recipient.
func (n *Notification) RecipientID() kernel.UUID {
	return n.recipientID
}

// OrderID returns the related order.
func (n *Notification) OrderID() kernel.UUID {
	return n.orderID
}

// Title returns the notification title.
func (n *Notification) Title() string {
	return n.title
}

// Message returns the notification body.
func (n *Notification) Message() string {
	return n.message
}

// CreatedAt returns the record timestamp.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}
