package numword

import (
	"strconv"
	"strings"
)

// Overflow is returned for values that do not fit in nine decimal digits.
const Overflow = "Overflow"

const maxDigits = 9

type Grouping string

const (
	GroupingWestern Grouping = "western"
	GroupingIndian  Grouping = "indian"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// Convert spells n using Million/Thousand grouping.
// Convert(0) returns an empty string.
func Convert(n int64) string {
	groups, ok := split(n, []int{3, 3, 3})
	if !ok {
		return Overflow
	}

	var b strings.Builder
	if groups[0] != 0 {
		b.WriteString(belowThousand(groups[0]) + " Million ")
	}
	if groups[1] != 0 {
		b.WriteString(belowThousand(groups[1]) + " Thousand ")
	}
	if groups[2] != 0 {
		b.WriteString(belowThousand(groups[2]))
	}
	return strings.TrimSpace(b.String())
}

// ConvertIndian spells n using Crore/Lakh/Thousand grouping (2-2-2-3 digits).
func ConvertIndian(n int64) string {
	groups, ok := split(n, []int{2, 2, 2, 3})
	if !ok {
		return Overflow
	}

	labels := []string{" Crore ", " Lakh ", " Thousand ", ""}
	var b strings.Builder
	for i, g := range groups {
		if g == 0 {
			continue
		}
		b.WriteString(belowThousand(g) + labels[i])
	}
	return strings.TrimSpace(b.String())
}

// Rupees renders an amount as "<words> Rupees Only".
func Rupees(n int64, grouping Grouping) string {
	var words string
	if grouping == GroupingIndian {
		words = ConvertIndian(n)
	} else {
		words = Convert(n)
	}
	switch words {
	case Overflow:
		return Overflow
	case "":
		return "Zero Rupees Only"
	}
	return words + " Rupees Only"
}

// split zero-pads n to nine digits and cuts it into groups of the given widths,
// most significant first.
func split(n int64, widths []int) ([]int, bool) {
	if n < 0 {
		return nil, false
	}
	digits := strconv.FormatInt(n, 10)
	if len(digits) > maxDigits {
		return nil, false
	}
	digits = strings.Repeat("0", maxDigits-len(digits)) + digits

	groups := make([]int, 0, len(widths))
	pos := 0
	for _, w := range widths {
		v, _ := strconv.Atoi(digits[pos : pos+w])
		groups = append(groups, v)
		pos += w
	}
	return groups, true
}

func belowThousand(n int) string {
	if n >= 100 {
		rest := belowThousand(n % 100)
		if rest == "" {
			return ones[n/100] + " Hundred"
		}
		return ones[n/100] + " Hundred " + rest
	}
	if n >= 20 {
		return strings.TrimSpace(tens[n/10] + " " + ones[n%10])
	}
	return ones[n]
}
