package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// statusRank orders the forward flow. Cancelled sits outside it.
var statusRank = map[string]int{
	OrderStatusPending:    0,
	OrderStatusProcessing: 1,
	OrderStatusShipped:    2,
	OrderStatusDelivered:  3,
}

// ValidOrderStatus reports whether s is a known status value.
func ValidOrderStatus(s string) bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether an order may move from one status to
// another. The forward flow only advances one step at a time; an order
// can be cancelled from Pending or Processing, never once shipped.
func CanTransition(from, to string) bool {
	if from == OrderStatusCancelled || from == OrderStatusDelivered {
		return false
	}
	if to == OrderStatusCancelled {
		return from == OrderStatusPending || from == OrderStatusProcessing
	}
	fromRank, ok1 := statusRank[from]
	toRank, ok2 := statusRank[to]
	if !ok1 || !ok2 {
		return false
	}
	return toRank == fromRank+1
}

type Order struct {
	ID                 uint        `gorm:"primaryKey" json:"id"`
	OrderNumber        string      `gorm:"uniqueIndex" json:"order_number"`
	UserID             uint        `json:"user_id"`
	User               User        `json:"-" gorm:"foreignKey:UserID"`
	AddressID          uint        `json:"address_id"`
	Address            Address     `json:"address" gorm:"foreignKey:AddressID"`
	Subtotal           float64     `json:"subtotal"`
	CouponDiscount     float64     `json:"coupon_discount"`
	CouponID           uint        `json:"coupon_id"`
	CouponCode         string      `json:"coupon_code"`
	ShippingCharge     float64     `json:"shipping_charge"`
	Tax                float64     `json:"tax"`
	FinalTotal         float64     `json:"final_total"`
	PaymentMethod      string      `json:"payment_method"`
	Status             string      `json:"status"`
	CancellationReason string      `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
	OrderItems         []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem is a frozen snapshot of what was bought. Name and price are
// copied at purchase time so the order survives later product edits.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `json:"order_id"`
	ProductID   uint    `json:"product_id"`
	VariantID   uint    `json:"variant_id"`
	ProductName string  `json:"product_name"`
	VariantName string  `json:"variant_name,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
}
