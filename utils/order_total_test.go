package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDeclaredTotal(t *testing.T) {
	tests := []struct {
		name     string
		computed float64
		declared float64
		wantErr  bool
	}{
		{name: "exact match", computed: 200.00, declared: 200.00, wantErr: false},
		{name: "within tolerance below", computed: 200.00, declared: 199.99, wantErr: false},
		{name: "within tolerance above", computed: 200.00, declared: 200.01, wantErr: false},
		{name: "past tolerance", computed: 200.00, declared: 199.97, wantErr: true},
		{name: "wildly off", computed: 200.00, declared: 20.00, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := ValidateDeclaredTotal(tt.computed, tt.declared)
			if tt.wantErr {
				require.NotNil(t, appErr)
				assert.Equal(t, KindBusinessRule, appErr.Kind)
				assert.Equal(t, "total_mismatch", appErr.Code)
			} else {
				assert.Nil(t, appErr)
			}
		})
	}
}

func TestSumLines(t *testing.T) {
	lines := []PricedLine{
		{UnitPrice: 49.99, Quantity: 2},
		{UnitPrice: 15.50, Quantity: 1},
	}
	assert.Equal(t, 115.48, SumLines(lines))
	assert.Equal(t, 0.0, SumLines(nil))
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	number := GenerateOrderNumber(now)
	assert.Regexp(t, regexp.MustCompile(`^SN-20260314-[0-9A-F]{6}$`), number)
}

func TestGenerateOrderNumberUniqueness(t *testing.T) {
	now := time.Now()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number := GenerateOrderNumber(now)
		assert.False(t, seen[number], "duplicate order number %s", number)
		seen[number] = true
	}
}
