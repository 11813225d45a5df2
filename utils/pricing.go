package utils

import (
	"math"
	"time"

	"github.com/Adithyan-707/StyleNest/models"
)

// RoundMoney rounds an amount to two decimal places
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// ToMinorUnits converts a rupee amount to paise. Truncation is not
// safe here: 1099.99 stored as 1099.9899... would become 109998.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// EvaluateCoupon computes the discount a coupon grants against an order
// total. It never touches the database and never mutates the coupon;
// used_count is only incremented when an order actually commits, so
// evaluation can be retried freely.
//
// Check order: active, validity window, usage limit, minimum order
// value. A UsageLimit of 0 means unlimited; a MaxDiscount of 0 means
// uncapped. The discount never exceeds the order total.
func EvaluateCoupon(coupon *models.Coupon, orderTotal float64, now time.Time) (float64, *AppError) {
	if !coupon.Active {
		return 0, BusinessRuleError("coupon_inactive", "Coupon is not active")
	}
	if !coupon.ValidFrom.IsZero() && now.Before(coupon.ValidFrom) {
		return 0, BusinessRuleError("coupon_not_yet_valid", "Coupon is not valid yet")
	}
	if !coupon.Expiry.IsZero() && now.After(coupon.Expiry) {
		return 0, BusinessRuleError("coupon_expired", "Coupon has expired")
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return 0, BusinessRuleError("coupon_usage_limit_reached", "Coupon usage limit reached")
	}
	if orderTotal < coupon.MinOrderValue {
		return 0, BusinessRuleError("coupon_min_order_not_met", "Order total is less than the minimum order value for this coupon")
	}

	var discount float64
	if coupon.Type == models.CouponTypePercent {
		discount = (orderTotal * coupon.Value) / 100
	} else {
		discount = coupon.Value
	}

	if coupon.MaxDiscount > 0 && discount > coupon.MaxDiscount {
		discount = coupon.MaxDiscount
	}
	if discount > orderTotal {
		discount = orderTotal
	}

	return RoundMoney(discount), nil
}
