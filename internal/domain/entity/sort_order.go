package entity

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

type SortOrder string

const (
	SortNone       SortOrder = ""
	SortPrice      SortOrder = "price"
	SortExperience SortOrder = "experience"
)

// ParseSortOrder maps a query value to a SortOrder. Unknown values keep source order.
func ParseSortOrder(value string) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(value))) {
	case SortPrice:
		return SortPrice
	case SortExperience:
		return SortExperience
	default:
		return SortNone
	}
}

// FeeAmount extracts the numeric amount from a display string such as "₹ 1,500".
// A '.' counts as a decimal point only once a digit has been read, so "Rs. 500" is 500.
func (d Doctor) FeeAmount() (decimal.Decimal, bool) {
	var b strings.Builder
	seenDigit, seenPoint := false, false
scan:
	for _, r := range d.Fees {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
			seenDigit = true
		case !seenDigit:
		case r == ',':
		case r == '.' && !seenPoint:
			b.WriteRune(r)
			seenPoint = true
		default:
			break scan
		}
	}
	digits := strings.TrimSuffix(b.String(), ".")
	if digits == "" {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// ExperienceYears extracts the leading year count from text such as "13 Years of experience".
func (d Doctor) ExperienceYears() (int, bool) {
	fields := strings.FieldsFunc(d.Experience, func(r rune) bool { return !unicode.IsDigit(r) })
	if len(fields) == 0 {
		return 0, false
	}
	years, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return years, true
}
