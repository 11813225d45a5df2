package utils

import (
	"testing"
	"time"

	"github.com/Adithyan-707/StyleNest/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeCoupon() models.Coupon {
	return models.Coupon{
		Code:      "SAVE15",
		Type:      models.CouponTypePercent,
		Value:     15,
		ValidFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Expiry:    time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC),
		Active:    true,
	}
}

func TestEvaluateCouponPercent(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	coupon := activeCoupon()
	discount, appErr := EvaluateCoupon(&coupon, 200, now)
	require.Nil(t, appErr)
	assert.Equal(t, 30.0, discount)
}

func TestEvaluateCouponFlat(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	coupon := activeCoupon()
	coupon.Type = models.CouponTypeFlat
	coupon.Value = 50

	discount, appErr := EvaluateCoupon(&coupon, 200, now)
	require.Nil(t, appErr)
	assert.Equal(t, 50.0, discount)
}

func TestEvaluateCouponRejections(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		mutate     func(c *models.Coupon)
		orderTotal float64
		wantCode   string
	}{
		{
			name:       "inactive",
			mutate:     func(c *models.Coupon) { c.Active = false },
			orderTotal: 200,
			wantCode:   "coupon_inactive",
		},
		{
			name:       "not yet valid",
			mutate:     func(c *models.Coupon) { c.ValidFrom = now.Add(24 * time.Hour) },
			orderTotal: 200,
			wantCode:   "coupon_not_yet_valid",
		},
		{
			name:       "expired",
			mutate:     func(c *models.Coupon) { c.Expiry = now.Add(-time.Hour) },
			orderTotal: 200,
			wantCode:   "coupon_expired",
		},
		{
			name: "usage limit reached",
			mutate: func(c *models.Coupon) {
				c.UsageLimit = 100
				c.UsedCount = 100
			},
			orderTotal: 200,
			wantCode:   "coupon_usage_limit_reached",
		},
		{
			name:       "below minimum order value",
			mutate:     func(c *models.Coupon) { c.MinOrderValue = 500 },
			orderTotal: 200,
			wantCode:   "coupon_min_order_not_met",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := activeCoupon()
			tt.mutate(&coupon)

			discount, appErr := EvaluateCoupon(&coupon, tt.orderTotal, now)
			require.NotNil(t, appErr)
			assert.Equal(t, 0.0, discount)
			assert.Equal(t, KindBusinessRule, appErr.Kind)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestEvaluateCouponUsageLimitZeroMeansUnlimited(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	coupon := activeCoupon()
	coupon.UsageLimit = 0
	coupon.UsedCount = 1000000

	discount, appErr := EvaluateCoupon(&coupon, 100, now)
	require.Nil(t, appErr)
	assert.Equal(t, 15.0, discount)
}

func TestEvaluateCouponMaxDiscountCap(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	coupon := activeCoupon()
	coupon.Value = 50
	coupon.MaxDiscount = 40

	discount, appErr := EvaluateCoupon(&coupon, 1000, now)
	require.Nil(t, appErr)
	assert.Equal(t, 40.0, discount)
}

func TestEvaluateCouponNeverExceedsOrderTotal(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	coupon := activeCoupon()
	coupon.Type = models.CouponTypeFlat
	coupon.Value = 500

	discount, appErr := EvaluateCoupon(&coupon, 120, now)
	require.Nil(t, appErr)
	assert.Equal(t, 120.0, discount)
}

func TestEvaluateCouponIsIdempotent(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	coupon := activeCoupon()
	first, appErr := EvaluateCoupon(&coupon, 250, now)
	require.Nil(t, appErr)

	// The coupon must come out untouched so evaluation can repeat
	second, appErr := EvaluateCoupon(&coupon, 250, now)
	require.Nil(t, appErr)
	assert.Equal(t, first, second)
	assert.Equal(t, 0, coupon.UsedCount)
}

func TestEvaluateCouponBoundaryDates(t *testing.T) {
	coupon := activeCoupon()

	// Exactly at ValidFrom the coupon is usable
	discount, appErr := EvaluateCoupon(&coupon, 200, coupon.ValidFrom)
	require.Nil(t, appErr)
	assert.Equal(t, 30.0, discount)

	// Exactly at Expiry it still applies
	discount, appErr = EvaluateCoupon(&coupon, 200, coupon.Expiry)
	require.Nil(t, appErr)
	assert.Equal(t, 30.0, discount)
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 10.57, RoundMoney(10.566))
	assert.Equal(t, 10.56, RoundMoney(10.564))
	assert.Equal(t, 0.0, RoundMoney(0))
	assert.Equal(t, 33.33, RoundMoney(99.99/3))
}

func TestToMinorUnits(t *testing.T) {
	// 1099.99 sits just below its decimal value in a float64, so a
	// plain truncation would lose a paisa
	assert.Equal(t, int64(109999), ToMinorUnits(1099.99))
	assert.Equal(t, int64(1000), ToMinorUnits(10.00))
	assert.Equal(t, int64(1), ToMinorUnits(0.01))
	assert.Equal(t, int64(0), ToMinorUnits(0))
}
