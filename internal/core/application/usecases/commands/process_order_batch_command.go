package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/order"
)

// ErrProcessOrderBatchCommandIsNotConstructed is returned when the command
// was not created through its constructor.
var ErrProcessOrderBatchCommandIsNotConstructed = errors.New(
	"ProcessOrderBatchCommand must be created via NewProcessOrderBatchCommand constructor",
)

// ProcessOrderBatchCommand requests one assignment pass over the pending
// orders of a single intake source.
type ProcessOrderBatchCommand struct {
	source order.Source

	isConstructed bool
}

// NewProcessOrderBatchCommand creates a command for one batch pass.
func NewProcessOrderBatchCommand(source order.Source) (ProcessOrderBatchCommand, error) {
	if err := source.Validate(); err != nil {
		return ProcessOrderBatchCommand{}, err
	}

	return ProcessOrderBatchCommand{
		source:        source,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessOrderBatchCommand) Validate() error {
	if !c.isConstructed {
		return ErrProcessOrderBatchCommandIsNotConstructed
	}
	return nil
}

// Source returns the intake source this pass covers.
func (c ProcessOrderBatchCommand) Source() order.Source {
	return c.source
}
