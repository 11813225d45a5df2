package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Adithyan-707/StyleNest/models"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCheckoutTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Cart{},
		&models.Coupon{},
		&models.UserCoupon{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:     name,
		Price:    price,
		Stock:    stock,
		SKU:      "SKU-" + name,
		IsActive: true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestOrderLinesFallsBackToPersistedCart(t *testing.T) {
	db := newCheckoutTestDB(t)

	shirt := seedProduct(t, db, "shirt", 499.00, 10)
	jeans := seedProduct(t, db, "jeans", 1299.00, 5)
	require.NoError(t, db.Create(&models.Cart{UserID: 7, ProductID: shirt.ID, Quantity: 2}).Error)
	require.NoError(t, db.Create(&models.Cart{UserID: 7, ProductID: jeans.ID, Quantity: 1}).Error)

	lines, usedPersistedCart, err := orderLines(db, 7, nil)
	require.NoError(t, err)
	assert.True(t, usedPersistedCart)
	require.Len(t, lines, 2)
	assert.Equal(t, shirt.ID, lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, jeans.ID, lines[1].ProductID)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestOrderLinesPrefersRequestItems(t *testing.T) {
	db := newCheckoutTestDB(t)

	shirt := seedProduct(t, db, "shirt", 499.00, 10)
	jeans := seedProduct(t, db, "jeans", 1299.00, 5)
	require.NoError(t, db.Create(&models.Cart{UserID: 7, ProductID: shirt.ID, Quantity: 2}).Error)

	items := []PlaceOrderItem{{ProductID: jeans.ID, Quantity: 3}}
	lines, usedPersistedCart, err := orderLines(db, 7, items)
	require.NoError(t, err)

	// Explicit items win; the persisted cart must stay untouched
	assert.False(t, usedPersistedCart)
	require.Len(t, lines, 1)
	assert.Equal(t, jeans.ID, lines[0].ProductID)
	assert.Equal(t, 3, lines[0].Quantity)

	var cartCount int64
	db.Model(&models.Cart{}).Where("user_id = ?", 7).Count(&cartCount)
	assert.Equal(t, int64(1), cartCount)
}

func TestDecrementStockAppliesGuardedUpdates(t *testing.T) {
	db := newCheckoutTestDB(t)

	shirt := seedProduct(t, db, "shirt", 499.00, 5)
	priced := []utils.PricedLine{{ProductID: shirt.ID, ProductName: shirt.Name, Quantity: 2}}

	appErr := decrementStock(db, priced)
	require.Nil(t, appErr)

	var after models.Product
	require.NoError(t, db.First(&after, shirt.ID).Error)
	assert.Equal(t, 3, after.Stock)
}

func TestDecrementStockConflictRollsBackEarlierLines(t *testing.T) {
	db := newCheckoutTestDB(t)

	shirt := seedProduct(t, db, "shirt", 499.00, 5)
	jeans := seedProduct(t, db, "jeans", 1299.00, 1)

	// The jeans line passed the pre-check against stale stock but the
	// row now holds less than requested, so the guard must refuse it.
	priced := []utils.PricedLine{
		{ProductID: shirt.ID, ProductName: shirt.Name, Quantity: 2},
		{ProductID: jeans.ID, ProductName: jeans.Name, Quantity: 2},
	}

	tx := db.Begin()
	require.NoError(t, tx.Error)
	appErr := decrementStock(tx, priced)
	require.NotNil(t, appErr)
	assert.Equal(t, utils.KindConflict, appErr.Kind)
	assert.Equal(t, "insufficient_stock", appErr.Code)
	tx.Rollback()

	// Rollback restores the shirt decrement that already went through
	var shirtAfter, jeansAfter models.Product
	require.NoError(t, db.First(&shirtAfter, shirt.ID).Error)
	require.NoError(t, db.First(&jeansAfter, jeans.ID).Error)
	assert.Equal(t, 5, shirtAfter.Stock)
	assert.Equal(t, 1, jeansAfter.Stock)
}

func TestDecrementStockVariantGuard(t *testing.T) {
	db := newCheckoutTestDB(t)

	shirt := seedProduct(t, db, "shirt", 499.00, 0)
	variant := models.ProductVariant{ProductID: shirt.ID, Name: "XL", Price: 549.00, Stock: 1, IsActive: true}
	require.NoError(t, db.Create(&variant).Error)

	priced := []utils.PricedLine{{ProductID: shirt.ID, VariantID: variant.ID, ProductName: shirt.Name, VariantName: variant.Name, Quantity: 2}}
	appErr := decrementStock(db, priced)
	require.NotNil(t, appErr)
	assert.Equal(t, "insufficient_stock", appErr.Code)

	var after models.ProductVariant
	require.NoError(t, db.First(&after, variant.ID).Error)
	assert.Equal(t, 1, after.Stock)
}

func TestConsumeCouponRecordsRedemption(t *testing.T) {
	db := newCheckoutTestDB(t)

	coupon := models.Coupon{
		Code:       "WELCOME10",
		Type:       "percent",
		Value:      10,
		ValidFrom:  time.Now().Add(-time.Hour),
		Expiry:     time.Now().Add(time.Hour),
		UsageLimit: 2,
		UsedCount:  1,
		Active:     true,
	}
	require.NoError(t, db.Create(&coupon).Error)

	appErr := consumeCoupon(db, &coupon, 7, 42)
	require.Nil(t, appErr)

	var after models.Coupon
	require.NoError(t, db.First(&after, coupon.ID).Error)
	assert.Equal(t, 2, after.UsedCount)

	var redemption models.UserCoupon
	require.NoError(t, db.Where("user_id = ? AND coupon_id = ?", 7, coupon.ID).First(&redemption).Error)
	assert.Equal(t, uint(42), redemption.OrderID)
}

func TestConsumeCouponExhaustedConflict(t *testing.T) {
	db := newCheckoutTestDB(t)

	// Another order spent the last use after this one evaluated it
	coupon := models.Coupon{
		Code:       "LASTONE",
		Type:       "flat",
		Value:      50,
		ValidFrom:  time.Now().Add(-time.Hour),
		Expiry:     time.Now().Add(time.Hour),
		UsageLimit: 2,
		UsedCount:  2,
		Active:     true,
	}
	require.NoError(t, db.Create(&coupon).Error)

	appErr := consumeCoupon(db, &coupon, 7, 42)
	require.NotNil(t, appErr)
	assert.Equal(t, utils.KindConflict, appErr.Kind)
	assert.Equal(t, "coupon_usage_limit_reached", appErr.Code)

	var after models.Coupon
	require.NoError(t, db.First(&after, coupon.ID).Error)
	assert.Equal(t, 2, after.UsedCount)

	var redemptions int64
	db.Model(&models.UserCoupon{}).Where("coupon_id = ?", coupon.ID).Count(&redemptions)
	assert.Equal(t, int64(0), redemptions)
}

func TestPlaceOrderRequiresDeclaredTotal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/v1/user/checkout",
		strings.NewReader(`{"address_id": 1, "payment_method": "cod"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user", models.User{Model: gorm.Model{ID: 1}, Email: "buyer@example.com"})

	PlaceOrder(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "total_amount")
}
