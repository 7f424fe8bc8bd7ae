package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestParseCode(t *testing.T) {
	for _, s := range []string{"MGA", "rmb", " Usd "} {
		_, err := ParseCode(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseCode("GBP")
	assert.Error(t, err)
	_, err = ParseCode("")
	assert.Error(t, err)
}

func TestToMGA_DefaultRates(t *testing.T) {
	cv := DefaultConverter()

	tests := []struct {
		code Code
		want string
	}{
		{MGA, "100"},
		{RMB, "61300"},
		{EUR, "518000"},
		{USD, "440000"},
		{AED, "119500"},
	}
	for _, tt := range tests {
		got := cv.ToMGA(dec("100"), tt.code, nil)
		assert.True(t, got.Equal(dec(tt.want)), "%s: got %s want %s", tt.code, got, tt.want)
	}
}

func TestToMGA_MGAIgnoresOverride(t *testing.T) {
	cv := DefaultConverter()
	override := dec("9999")
	got := cv.ToMGA(dec("250.50"), MGA, &override)
	assert.True(t, got.Equal(dec("250.50")))
}

func TestToMGA_OverrideWinsOverDefault(t *testing.T) {
	cv := DefaultConverter()
	override := dec("620")
	got := cv.ToMGA(dec("10"), RMB, &override)
	assert.True(t, got.Equal(dec("6200")))
}

func TestToMGA_NonPositiveOverrideIgnored(t *testing.T) {
	cv := DefaultConverter()
	override := decimal.Zero
	got := cv.ToMGA(dec("10"), RMB, &override)
	assert.True(t, got.Equal(dec("6130")))
}

func TestToMGA_Rounding(t *testing.T) {
	cv := DefaultConverter()
	override := dec("613.333")
	got := cv.ToMGA(dec("1.01"), RMB, &override)
	// 1.01 * 613.333 = 619.46633 -> 619.47
	assert.True(t, got.Equal(dec("619.47")), "got %s", got)
}

func TestNewConverter_ConfigOverridesDefaults(t *testing.T) {
	cv := NewConverter(map[string]float64{
		"RMB": 650,
		"XYZ": 42,  // unknown code ignored
		"EUR": -10, // non-positive ignored, default kept
	})

	got := cv.ToMGA(dec("2"), RMB, nil)
	require.True(t, got.Equal(dec("1300")), "got %s", got)

	got = cv.ToMGA(dec("1"), EUR, nil)
	assert.True(t, got.Equal(dec("5180")))
}
