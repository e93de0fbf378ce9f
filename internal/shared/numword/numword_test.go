package numword_test

import (
	"testing"

	"go-payslip/internal/shared/numword"

	"github.com/stretchr/testify/assert"
)

func TestConvert(t *testing.T) {
	cases := []struct {
		name string
		in   int64
		want string
	}{
		{"zero is empty", 0, ""},
		{"single digit", 7, "Seven"},
		{"teen", 13, "Thirteen"},
		{"round tens", 40, "Forty"},
		{"tens and ones", 99, "Ninety Nine"},
		{"round hundred", 500, "Five Hundred"},
		{"hundred with teen", 112, "One Hundred Twelve"},
		{"thousands", 44967, "Forty Four Thousand Nine Hundred Sixty Seven"},
		{"exact thousand", 1000, "One Thousand"},
		{"million", 1000000, "One Million"},
		{"mixed groups", 123045006, "One Hundred Twenty Three Million Forty Five Thousand Six"},
		{"max nine digits", 999999999, "Nine Hundred Ninety Nine Million Nine Hundred Ninety Nine Thousand Nine Hundred Ninety Nine"},
		{"ten digits overflow", 1_000_000_000, numword.Overflow},
		{"negative overflow", -5, numword.Overflow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, numword.Convert(tc.in))
		})
	}
}

func TestConvertIndian(t *testing.T) {
	assert.Equal(t, "", numword.ConvertIndian(0))
	assert.Equal(t, "Forty Four Thousand Nine Hundred Sixty Seven", numword.ConvertIndian(44967))
	assert.Equal(t, "One Lakh", numword.ConvertIndian(100000))
	assert.Equal(t, "Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine", numword.ConvertIndian(123456789))
	assert.Equal(t, numword.Overflow, numword.ConvertIndian(1_000_000_000))
}

func TestRupees(t *testing.T) {
	assert.Equal(t, "Forty Four Thousand Nine Hundred Sixty Seven Rupees Only", numword.Rupees(44967, numword.GroupingWestern))
	assert.Equal(t, "Zero Rupees Only", numword.Rupees(0, numword.GroupingWestern))
	assert.Equal(t, "Two Lakh Rupees Only", numword.Rupees(200000, numword.GroupingIndian))
	assert.Equal(t, numword.Overflow, numword.Rupees(1_000_000_000, numword.GroupingWestern))
}
