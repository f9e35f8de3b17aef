package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValidate(t *testing.T) {
	t.Run("should accept all defined statuses", func(t *testing.T) {
		statuses := []order.Status{
			order.Pending, order.Preparing, order.Ready, order.ReadyForPickup,
			order.OutForDelivery, order.Delivered, order.Cancelled, order.Rejected,
		}

		for _, s := range statuses {
			assert.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
	})

	t.Run("should reject out of range status", func(t *testing.T) {
		require.Error(t, order.Status(99).Validate())
	})
}

func TestStatusString(t *testing.T) {
	t.Run("should format known statuses", func(t *testing.T) {
		assert.Equal(t, "Pending", order.Pending.String())
		assert.Equal(t, "ReadyForPickup", order.ReadyForPickup.String())
		assert.Equal(t, "Delivered", order.Delivered.String())
	})

	t.Run("should format out of range status as unknown", func(t *testing.T) {
		assert.Equal(t, "Unknown", order.Status(99).String())
	})
}

func TestStatusIsTerminal(t *testing.T) {
	t.Run("should report terminal statuses", func(t *testing.T) {
		assert.True(t, order.Delivered.IsTerminal())
		assert.True(t, order.Cancelled.IsTerminal())
		assert.True(t, order.Rejected.IsTerminal())
	})

	t.Run("should report active statuses as not terminal", func(t *testing.T) {
		assert.False(t, order.Pending.IsTerminal())
		assert.False(t, order.Ready.IsTerminal())
		assert.False(t, order.ReadyForPickup.IsTerminal())
		assert.False(t, order.OutForDelivery.IsTerminal())
	})
}

func TestStatusValidateSearchable(t *testing.T) {
	t.Run("should allow search while awaiting pickup", func(t *testing.T) {
		assert.NoError(t, order.ReadyForPickup.ValidateSearchable())
	})

	t.Run("should reject search in any other status", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Preparing, order.Ready,
			order.OutForDelivery, order.Delivered, order.Cancelled,
		} {
			err := s.ValidateSearchable()
			require.Error(t, err, s.String())
			assert.Contains(t, err.Error(), s.String())
		}
	})
}

func TestStatusRevertToReady(t *testing.T) {
	t.Run("should revert from ready for pickup", func(t *testing.T) {
		got, err := order.ReadyForPickup.RevertToReady()

		require.NoError(t, err)
		assert.Equal(t, order.Ready, got)
	})

	t.Run("should be idempotent from ready", func(t *testing.T) {
		got, err := order.Ready.RevertToReady()

		require.NoError(t, err)
		assert.Equal(t, order.Ready, got)
	})

	t.Run("should reject revert from other statuses", func(t *testing.T) {
		for _, s := range []order.Status{order.Pending, order.OutForDelivery, order.Delivered} {
			_, err := s.RevertToReady()
			require.Error(t, err, s.String())
		}
	})
}

func TestStatusMarkReadyForPickup(t *testing.T) {
	t.Run("should transition from ready", func(t *testing.T) {
		got, err := order.Ready.MarkReadyForPickup()

		require.NoError(t, err)
		assert.Equal(t, order.ReadyForPickup, got)
	})

	t.Run("should allow restart from ready for pickup", func(t *testing.T) {
		got, err := order.ReadyForPickup.MarkReadyForPickup()

		require.NoError(t, err)
		assert.Equal(t, order.ReadyForPickup, got)
	})

	t.Run("should reject transition from terminal statuses", func(t *testing.T) {
		for _, s := range []order.Status{order.Cancelled, order.Delivered, order.Rejected} {
			_, err := s.MarkReadyForPickup()
			require.Error(t, err, s.String())
		}
	})
}
