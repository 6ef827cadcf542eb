// Package commands contains the write-side operations of the assignment
// engine. The batch pass is the single command; it mutates orders, courier
// workloads and the offer ledger behind a unit of work.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides access to the courier repository within a
	// transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// AssignmentRepoFactory provides access to the offer ledger within a
	// transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// DeliveryRepoFactory provides access to the delivery tracking ledger
	// within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// AssignmentUoW spans every table the assignment transaction touches:
	// the order flip, the courier capacity reservation, the offer record
	// and the delivery record commit or roll back together.
	AssignmentUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		AssignmentRepoFactory
		DeliveryRepoFactory
	}

	// AssignmentUoWFactory creates a fresh unit of work per commit.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}
)
