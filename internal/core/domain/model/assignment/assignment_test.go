package assignment_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func TestNewAssignment(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), 0.42, testTime)
		require.NoError(t, err)
		assert.Equal(t, assignment.StatusPending, a.Status())
		assert.InDelta(t, 0.42, a.Score(), 1e-9)
	})

	t.Run("requires timestamps and ids", func(t *testing.T) {
		_, err := assignment.NewAssignment(kernel.UUID{}, kernel.NewUUID(), 0.42, testTime)
		require.Error(t, err)

		_, err = assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), 0.42, time.Time{})
		require.Error(t, err)
	})
}

func TestAssignment_TerminalTransitions(t *testing.T) {
	t.Run("accept", func(t *testing.T) {
		a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), 0.42, testTime)
		require.NoError(t, err)

		require.NoError(t, a.Accept())
		assert.Equal(t, assignment.StatusAccepted, a.Status())
	})

	t.Run("reject", func(t *testing.T) {
		a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), 0.42, testTime)
		require.NoError(t, err)

		require.NoError(t, a.Reject())
		assert.Equal(t, assignment.StatusRejected, a.Status())
	})

	t.Run("terminal records never mutate", func(t *testing.T) {
		a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), 0.42, testTime)
		require.NoError(t, err)
		require.NoError(t, a.Accept())

		require.ErrorIs(t, a.Reject(), assignment.ErrAssignmentIsTerminal)
		require.ErrorIs(t, a.Accept(), assignment.ErrAssignmentIsTerminal)
		assert.Equal(t, assignment.StatusAccepted, a.Status())
	})
}

func TestRejectionReason_Validate(t *testing.T) {
	valid := []assignment.RejectionReason{
		assignment.ReasonETAInvalid,
		assignment.ReasonDistanceETAUnavailable,
		assignment.ReasonLowScore,
		assignment.ReasonBadLocation,
		assignment.ReasonRejectedByCourier,
	}
	for _, reason := range valid {
		require.NoError(t, reason.Validate(), string(reason))
	}

	require.Error(t, assignment.RejectionReason("lost_interest").Validate())
}

func TestNewRejection(t *testing.T) {
	r, err := assignment.NewRejection(kernel.NewUUID(), kernel.NewUUID(),
		assignment.ReasonRejectedByCourier, testTime)
	require.NoError(t, err)
	assert.Equal(t, assignment.ReasonRejectedByCourier, r.Reason())
	assert.Equal(t, testTime, r.CreatedAt())

	_, err = assignment.NewRejection(kernel.NewUUID(), kernel.NewUUID(), "nonsense", testTime)
	require.Error(t, err)
}

func TestNotifications(t *testing.T) {
	orderID := kernel.NewUUID()

	t.Run("offer notification", func(t *testing.T) {
		n, err := assignment.NewOfferNotification(kernel.NewUUID(), orderID, testTime)
		require.NoError(t, err)
		assert.Equal(t, "New Order Available", n.Title())
		assert.Contains(t, n.Message(), orderID.String())
	})

	t.Run("assigned notification addresses the user", func(t *testing.T) {
		n, err := assignment.NewAssignedNotification(kernel.NewUUID(), orderID, "Asha", testTime)
		require.NoError(t, err)
		assert.Equal(t, "Order Assigned!", n.Title())
		assert.Contains(t, n.Message(), "Asha")
		assert.Contains(t, n.Message(), orderID.String())
	})
}
