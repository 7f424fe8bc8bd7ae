package util

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAmount_Positive(t *testing.T) {
	testCases := []string{"0.01", "1", "100.5", "9999999.99"}

	for _, s := range testCases {
		amount, _ := decimal.NewFromString(s)
		err := ValidateAmount(amount)
		if err != nil {
			t.Errorf("ValidateAmount(%s) error = %v, want nil", s, err)
		}
	}
}

func TestValidateAmount_ZeroOrNegative(t *testing.T) {
	testCases := []string{"0", "-0.01", "-100"}

	for _, s := range testCases {
		amount, _ := decimal.NewFromString(s)
		err := ValidateAmount(amount)
		if err == nil {
			t.Errorf("ValidateAmount(%s) error = nil, want error", s)
		}
	}
}

func TestValidateAmount_TooLarge(t *testing.T) {
	err := ValidateAmount(decimal.NewFromInt(10_000_000_000))
	if err == nil {
		t.Error("ValidateAmount(10_000_000_000) error = nil, want error")
	}
}

func TestValidateAmount_TooManyDecimals(t *testing.T) {
	amount, _ := decimal.NewFromString("12.345")
	err := ValidateAmount(amount)
	if err == nil {
		t.Error("ValidateAmount(12.345) error = nil, want error")
	}
}

func TestValidateDate_Valid(t *testing.T) {
	testCases := []string{
		"2024-01-01",
		"2024-12-31",
		"2025-06-15",
	}

	for _, date := range testCases {
		err := ValidateDate(date)
		if err != nil {
			t.Errorf("ValidateDate(%s) error = %v, want nil", date, err)
		}
	}
}

func TestValidateDate_Invalid(t *testing.T) {
	testCases := []string{"", "2024-13-01", "01/02/2024", "yesterday"}

	for _, date := range testCases {
		err := ValidateDate(date)
		if err == nil {
			t.Errorf("ValidateDate(%s) error = nil, want error", date)
		}
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("Rakoto"); err != nil {
		t.Errorf("ValidateName(Rakoto) error = %v, want nil", err)
	}
	if err := ValidateName(""); err == nil {
		t.Error("ValidateName(\"\") error = nil, want error")
	}
	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidateName(string(long)); err == nil {
		t.Error("ValidateName(65 chars) error = nil, want error")
	}
}
