package session_test

import (
	"testing"

	"settlement/internal/core/domain/model/session"
	"settlement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Transitions(t *testing.T) {
	t.Run("forward path", func(t *testing.T) {
		dispatched, err := session.Open.Dispatch()
		require.NoError(t, err)
		assert.Equal(t, session.Dispatched, dispatched)

		reconciled, err := dispatched.Reconcile()
		require.NoError(t, err)
		assert.Equal(t, session.Reconciled, reconciled)

		settled, err := reconciled.Settle()
		require.NoError(t, err)
		assert.Equal(t, session.Settled, settled)
		assert.True(t, settled.IsTerminal())
	})

	t.Run("abandon only from open", func(t *testing.T) {
		abandoned, err := session.Open.Abandon()
		require.NoError(t, err)
		assert.Equal(t, session.Abandoned, abandoned)
		assert.True(t, abandoned.IsTerminal())

		_, err = session.Dispatched.Abandon()
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("reconcile requires dispatched", func(t *testing.T) {
		for _, s := range []session.Status{session.Open, session.Reconciled, session.Settled, session.Abandoned} {
			_, err := s.Reconcile()
			require.ErrorIs(t, err, errs.ErrConflict, "from %s", s)
		}
	})

	t.Run("no backward transitions", func(t *testing.T) {
		_, err := session.Reconciled.Dispatch()
		require.ErrorIs(t, err, errs.ErrConflict)

		_, err = session.Settled.Settle()
		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range []session.Status{session.Open, session.Dispatched, session.Reconciled, session.Settled, session.Abandoned} {
		require.NoError(t, s.Validate())
	}
	require.ErrorIs(t, session.StatusUnknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, session.Status(42).Validate(), errs.ErrValueIsInvalid)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Open", session.Open.String())
	assert.Equal(t, "Dispatched", session.Dispatched.String())
	assert.Equal(t, "Unknown", session.Status(42).String())
}

func TestDeliveryResult(t *testing.T) {
	t.Run("not delivered classification", func(t *testing.T) {
		assert.False(t, session.Pending.IsNotDelivered())
		assert.False(t, session.Delivered.IsNotDelivered())
		assert.True(t, session.Failed.IsNotDelivered())
		assert.True(t, session.Rejected.IsNotDelivered())
		assert.True(t, session.Rescheduled.IsNotDelivered())
	})

	t.Run("failure reason requirement follows not-delivered", func(t *testing.T) {
		assert.True(t, session.Failed.RequiresFailureReason())
		assert.True(t, session.Rejected.RequiresFailureReason())
		assert.True(t, session.Rescheduled.RequiresFailureReason())
		assert.False(t, session.Delivered.RequiresFailureReason())
	})

	t.Run("round trip through string form", func(t *testing.T) {
		for _, s := range []string{"pending", "delivered", "failed", "rejected", "rescheduled"} {
			r, err := session.DeliveryResultFromString(s)
			require.NoError(t, err)
			assert.Equal(t, s, r.String())
		}
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := session.DeliveryResultFromString("lost")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
