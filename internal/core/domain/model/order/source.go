package order

import "dispatch/internal/pkg/errs"

// Source tells which intake channel an order arrived through. The batch pass
// runs once per source; the value is a repository filter, not aggregate state.
type Source string

const (
	SourceImmediate    Source = "immediate"
	SourceSubscription Source = "subscription"
)

// Validate checks that the Source holds one of the defined values.
func (s Source) Validate() error {
	switch s {
	case SourceImmediate, SourceSubscription:
		return nil
	default:
		return errs.NewValueIsInvalidError("order source")
	}
}

// String returns the stored representation.
func (s Source) String() string {
	return string(s)
}
