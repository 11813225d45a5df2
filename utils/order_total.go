package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TotalTolerance is the absolute rounding slack allowed between a
// client-declared total and the server-computed one.
const TotalTolerance = 0.01

// PricedLine is one cart line after server-side repricing. The unit
// price always comes from the live catalog, never from the client.
type PricedLine struct {
	ProductID   uint
	VariantID   uint
	ProductName string
	VariantName string
	UnitPrice   float64
	Quantity    int
	Stock       int
	LineTotal   float64
}

// RepriceLines reprices cart lines against the live catalog. Quantities
// must be positive; unknown or unavailable products fail the whole set.
func RepriceLines(db *gorm.DB, lines []CartLine) ([]PricedLine, *AppError) {
	if len(lines) == 0 {
		return nil, BusinessRuleError("empty_cart", "Cannot price an empty item list")
	}

	priced := make([]PricedLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ValidationFailedError("invalid_quantity", fmt.Sprintf("Quantity for product %d must be a positive integer", line.ProductID))
		}

		unitPrice, stock, productName, variantName, appErr := ResolveSaleLine(db, line.ProductID, line.VariantID)
		if appErr != nil {
			return nil, appErr
		}

		priced = append(priced, PricedLine{
			ProductID:   line.ProductID,
			VariantID:   line.VariantID,
			ProductName: productName,
			VariantName: variantName,
			UnitPrice:   unitPrice,
			Quantity:    line.Quantity,
			Stock:       stock,
			LineTotal:   RoundMoney(unitPrice * float64(line.Quantity)),
		})
	}

	return priced, nil
}

// SumLines totals a set of repriced lines
func SumLines(lines []PricedLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return RoundMoney(total)
}

// ValidateDeclaredTotal compares the client-declared total against the
// server-computed one. The tolerance covers floating-point rounding
// only; anything past it is rejected.
func ValidateDeclaredTotal(computed, declared float64) *AppError {
	if math.Abs(computed-declared) <= TotalTolerance {
		return nil
	}
	return BusinessRuleError("total_mismatch",
		fmt.Sprintf("Declared total %.2f does not match computed total %.2f", declared, computed))
}

// GenerateOrderNumber builds a human-readable order number, distinct
// from the database primary key: date plus a short random suffix.
func GenerateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:6]
	return fmt.Sprintf("SN-%s-%s", now.Format("20060102"), suffix)
}
