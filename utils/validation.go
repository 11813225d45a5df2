package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Adithyan-707/StyleNest/models"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex    = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	postalRegex   = regexp.MustCompile(`^[a-zA-Z0-9\- ]{3,10}$`)
	hasLower      = regexp.MustCompile(`[a-z]`)
	hasUpper      = regexp.MustCompile(`[A-Z]`)
	hasNumber     = regexp.MustCompile(`[0-9]`)
)

// ValidateUsername checks if the username meets the requirements
func ValidateUsername(username string) (bool, string) {
	if !usernameRegex.MatchString(username) {
		return false, "Username must be 3-20 characters and contain only letters, numbers and underscores"
	}
	return true, ""
}

// ValidateEmail checks if the email is well-formed
func ValidateEmail(email string) (bool, string) {
	if !emailRegex.MatchString(email) {
		return false, "Invalid email format"
	}
	return true, ""
}

// ValidatePhone checks if the phone number is well-formed
func ValidatePhone(phone string) (bool, string) {
	if phone == "" {
		return true, ""
	}
	if !phoneRegex.MatchString(phone) {
		return false, "Invalid phone number format"
	}
	return true, ""
}

// ValidatePassword enforces the password policy
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters long"
	}
	if !hasLower.MatchString(password) || !hasUpper.MatchString(password) || !hasNumber.MatchString(password) {
		return false, "Password must contain at least one uppercase letter, one lowercase letter and one number"
	}
	return true, ""
}

// ValidateCouponValue enforces the coupon value invariants: the value
// must be positive, and a percentage coupon cannot exceed 100.
func ValidateCouponValue(couponType string, value float64) error {
	if value <= 0 {
		return fmt.Errorf("coupon value must be greater than 0")
	}
	if couponType == models.CouponTypePercent && value > 100 {
		return fmt.Errorf("percentage coupon value cannot exceed 100")
	}
	return nil
}

// ValidateAddress collects field-level errors for a shipping address
func ValidateAddress(addr *models.Address) []FieldError {
	var errs []FieldError
	if strings.TrimSpace(addr.Line1) == "" {
		errs = append(errs, FieldError{Field: "line1", Message: "Address line is required"})
	}
	if strings.TrimSpace(addr.City) == "" {
		errs = append(errs, FieldError{Field: "city", Message: "City is required"})
	}
	if strings.TrimSpace(addr.Country) == "" {
		errs = append(errs, FieldError{Field: "country", Message: "Country is required"})
	}
	if !postalRegex.MatchString(addr.PostalCode) {
		errs = append(errs, FieldError{Field: "postal_code", Message: "Invalid postal code"})
	}
	if addr.Phone != "" {
		if ok, msg := ValidatePhone(addr.Phone); !ok {
			errs = append(errs, FieldError{Field: "phone", Message: msg})
		}
	}
	return errs
}
