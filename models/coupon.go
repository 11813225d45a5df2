package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon discount types
const (
	CouponTypePercent = "percent"
	CouponTypeFlat    = "flat"
)

type Coupon struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Code          string         `gorm:"uniqueIndex:idx_coupons_code" json:"code"`
	Type          string         `json:"type"` // "flat" or "percent"
	Value         float64        `json:"value"`
	MinOrderValue float64        `json:"min_order_value"`
	MaxDiscount   float64        `json:"max_discount"` // 0 means no cap
	ValidFrom     time.Time      `json:"valid_from"`
	Expiry        time.Time      `json:"expiry"`
	UsageLimit    int            `json:"usage_limit"` // 0 means unlimited
	UsedCount     int            `json:"used_count"`
	Active        bool           `json:"active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserCoupon records a coupon redeemed by a user on a committed order
type UserCoupon struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `json:"user_id"`
	CouponID uint      `json:"coupon_id"`
	OrderID  uint      `json:"order_id"`
	UsedAt   time.Time `json:"used_at"`
}
