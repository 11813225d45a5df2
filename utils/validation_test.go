package utils

import (
	"testing"

	"github.com/Adithyan-707/StyleNest/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateCouponValue(t *testing.T) {
	tests := []struct {
		name       string
		couponType string
		value      float64
		wantErr    bool
	}{
		{name: "valid percent", couponType: models.CouponTypePercent, value: 15, wantErr: false},
		{name: "full percent", couponType: models.CouponTypePercent, value: 100, wantErr: false},
		{name: "percent over 100", couponType: models.CouponTypePercent, value: 101, wantErr: true},
		{name: "zero value", couponType: models.CouponTypePercent, value: 0, wantErr: true},
		{name: "negative value", couponType: models.CouponTypeFlat, value: -10, wantErr: true},
		{name: "valid flat", couponType: models.CouponTypeFlat, value: 250, wantErr: false},
		{name: "flat over 100 is fine", couponType: models.CouponTypeFlat, value: 5000, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCouponValue(tt.couponType, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{name: "strong", password: "Str0ngpass", wantOK: true},
		{name: "too short", password: "Ab1", wantOK: false},
		{name: "no digit", password: "Abcdefgh", wantOK: false},
		{name: "no upper", password: "abcdefg1", wantOK: false},
		{name: "no lower", password: "ABCDEFG1", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _ := ValidatePassword(tt.password)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestValidateAddress(t *testing.T) {
	valid := models.Address{
		Name:       "Arjun M",
		Line1:      "14 Rose Street",
		City:       "Kochi",
		State:      "Kerala",
		Country:    "India",
		PostalCode: "682001",
	}
	assert.Empty(t, ValidateAddress(&valid))

	missing := models.Address{PostalCode: "682001"}
	errs := ValidateAddress(&missing)
	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "line1")
	assert.Contains(t, fields, "city")
	assert.Contains(t, fields, "country")
}
