package customer_test

import (
	"testing"

	"laundryops/internal/core/domain/model/customer"
	"laundryops/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T, isVIP bool, points, orders int) *customer.Customer {
	t.Helper()
	c, err := customer.RestoreCustomer(kernel.NewUUID(), kernel.NewUUID(), isVIP, points, orders)
	require.NoError(t, err)
	return c
}

func TestNewCustomer(t *testing.T) {
	c, err := customer.NewCustomer(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	assert.False(t, c.IsVIP())
	assert.Zero(t, c.RewardPoints())
	assert.Zero(t, c.LifetimeOrders())

	_, err = customer.NewCustomer(kernel.UUID{}, kernel.NewUUID())
	require.Error(t, err)

	var zero customer.Customer
	require.ErrorIs(t, zero.Validate(), customer.ErrCustomerIsNotConstructed)
}

func TestCustomer_AccrueVIPPoints(t *testing.T) {
	t.Run("vip_earns_floor_of_total_over_100", func(t *testing.T) {
		c := restore(t, true, 10, 30)
		awarded := c.AccrueVIPPoints(decimal.NewFromFloat(349.99))
		assert.Equal(t, 3, awarded)
		assert.Equal(t, 13, c.RewardPoints())
	})

	t.Run("non_vip_earns_nothing", func(t *testing.T) {
		c := restore(t, false, 0, 3)
		assert.Zero(t, c.AccrueVIPPoints(decimal.NewFromInt(500)))
		assert.Zero(t, c.RewardPoints())
	})

	t.Run("small_total_earns_nothing", func(t *testing.T) {
		c := restore(t, true, 0, 30)
		assert.Zero(t, c.AccrueVIPPoints(decimal.NewFromInt(99)))
	})
}

func TestCustomer_Milestones(t *testing.T) {
	t.Run("exact_thresholds_hit", func(t *testing.T) {
		for _, threshold := range []int{5, 10, 25, 50, 100} {
			c := restore(t, false, 0, threshold-1)
			assert.Equal(t, threshold, c.RecordDeliveredOrder())
			hit, ok := c.MilestoneReached()
			require.True(t, ok, "threshold %d", threshold)
			assert.Equal(t, threshold, hit)
		}
	})

	t.Run("off_threshold_misses", func(t *testing.T) {
		c := restore(t, false, 0, 6)
		c.RecordDeliveredOrder()
		_, ok := c.MilestoneReached()
		assert.False(t, ok)
	})
}

func TestCustomer_PromoteToVIP(t *testing.T) {
	t.Run("promoted_at_25", func(t *testing.T) {
		c := restore(t, false, 0, 24)
		c.RecordDeliveredOrder()
		assert.True(t, c.PromoteToVIP())
		assert.True(t, c.IsVIP())
	})

	t.Run("already_vip_not_repromoted", func(t *testing.T) {
		c := restore(t, true, 0, 50)
		assert.False(t, c.PromoteToVIP())
	})

	t.Run("below_threshold_not_promoted", func(t *testing.T) {
		c := restore(t, false, 0, 10)
		assert.False(t, c.PromoteToVIP())
		assert.False(t, c.IsVIP())
	})
}
