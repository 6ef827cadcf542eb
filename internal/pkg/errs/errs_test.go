package errs_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("courierId", "3f2a9c")

		assert.Equal(t, "courierId", err.ParamName)
		assert.Equal(t, "3f2a9c", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 3f2a9c", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection reset by peer")
		err := errs.NewObjectNotFoundErrorWithCause("courierId", "3f2a9c", cause)

		assert.Equal(t, "courierId", err.ParamName)
		assert.Equal(t, "3f2a9c", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: courierId, ID is: 3f2a9c (cause: connection reset by peer)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("non-string ID renders through the string verb", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("zoneId", 42)
		assert.Equal(t, "object not found: %!s(int=42)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("geometry")

		assert.Equal(t, "geometry", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: geometry", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("ring is self-intersecting")
		err := errs.NewValueIsInvalidErrorWithCause("geometry", cause)

		assert.Equal(t, "geometry", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: geometry (cause: ring is self-intersecting)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("maxCapacity", 12, 1, 10)

		assert.Equal(t, "maxCapacity", err.ParamName)
		assert.Equal(t, 12, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 10, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 12 is maxCapacity, min value is 1, max value is 10", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("stale courier snapshot")
		err := errs.NewValueIsOutOfRangeErrorWithCause("activeOrderCount", -1, 0, 3, cause)

		assert.Equal(t, "activeOrderCount", err.ParamName)
		assert.Equal(t, -1, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 3, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -1 is activeOrderCount, min value is 0, max value is 3 (cause: stale courier snapshot)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("newlines collapse to spaces", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("address", "12 MG Road\nPune", 0, 10)
		assert.Contains(t, err.Error(), "12 MG Road Pune")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("responder")

		assert.Equal(t, "responder", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: responder", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("geometry column is empty")
		err := errs.NewValueIsRequiredErrorWithCause("zone geometry", cause)

		assert.Equal(t, "zone geometry", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: zone geometry (cause: geometry column is empty)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestVersionIsInvalidError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("aggregate version conflict")
		err := errs.NewVersionIsInvalidError("orderVersion", cause)

		assert.Equal(t, "orderVersion", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "version is invalid: orderVersion (cause: aggregate version conflict)", err.Error())
		assert.Equal(t, errs.ErrVersionIsInvalid, err.Unwrap())
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewVersionIsInvalidErrorWithCause("orderVersion")

		assert.Equal(t, "orderVersion", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "version is invalid: orderVersion", err.Error())
		assert.Equal(t, errs.ErrVersionIsInvalid, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinels are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrVersionIsInvalid)
	})

	t.Run("sentinel messages", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "version is invalid", errs.ErrVersionIsInvalid.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is reaches the sentinel", func(t *testing.T) {
		require.ErrorIs(t,
			errs.NewObjectNotFoundError("courierId", "3f2a9c"), errs.ErrObjectNotFound)
		require.ErrorIs(t,
			errs.NewValueIsInvalidError("geometry"), errs.ErrValueIsInvalid)
		require.ErrorIs(t,
			errs.NewValueIsOutOfRangeError("maxCapacity", 12, 1, 10), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t,
			errs.NewValueIsRequiredError("responder"), errs.ErrValueIsRequired)
		require.ErrorIs(t,
			errs.NewVersionIsInvalidError("orderVersion", errors.New("conflict")), errs.ErrVersionIsInvalid)
	})
}
