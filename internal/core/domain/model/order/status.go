package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// The engine's contract is a single transition performed exactly once, inside
// the assignment transaction:
//
//	Pending ──> Assigned
//
// Pending maps to order_status = 0 in the store and Assigned to 1; the batch
// predicate selects Pending rows only, which is what makes re-scans idempotent.
type Status int

const (
	// Pending is the initial status: the order awaits courier assignment.
	Pending Status = iota

	// Assigned indicates a courier accepted the order. Final for this engine;
	// delivery progress is tracked outside it.
	Assigned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:  "Pending",
		Assigned: "Assigned",
	}
}

// Validate checks that the Status holds one of the defined values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Assign returns the status after courier assignment.
// Only Pending orders may transition; re-assigning an Assigned order fails,
// which is how double processing surfaces as an error instead of a silent
// overwrite.
func (s Status) Assign() (Status, error) {
	if s != Pending {
		return s, errs.NewValueIsInvalidErrorWithCause("status transition",
			fmt.Errorf("cannot assign order in status %s", s))
	}
	return Assigned, nil
}

// String returns the human-readable status name.
func (s Status) String() string {
	if name, ok := getStatusStrings()[s]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(s))
}
