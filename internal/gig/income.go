package gig

import (
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

// Income holds the income totals of the past and upcoming gigs.
type Income struct {
	Past   decimal.Decimal `json:"past"`
	Future decimal.Decimal `json:"future"`
}

// Total returns past plus future income.
func (i Income) Total() decimal.Decimal {
	return i.Past.Add(i.Future)
}

var numericPrefix = regexp.MustCompile(`^\s*([+-]?)(\d*)(?:\.(\d+))?(?:[eE]([+-]?\d+))?`)

// maxExponent bounds the exponent of an income so sums stay small.
const maxExponent = 18

// ParseIncome reads the leading number of s, e.g. "50.5", "120 cash" or
// "-3e2". Input with no leading number is zero; bad income never fails.
// Exponents beyond ±18 are clamped.
func ParseIncome(s string) decimal.Decimal {
	m := numericPrefix.FindStringSubmatch(s)
	if m == nil || (m[2] == "" && m[3] == "") {
		return decimal.Zero
	}

	num := m[1]
	if m[2] == "" {
		num += "0"
	} else {
		num += m[2]
	}
	if m[3] != "" {
		num += "." + m[3]
	}
	if m[4] != "" {
		num += "e" + strconv.Itoa(clampExponent(m[4]))
	}

	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func clampExponent(s string) int {
	exp, err := strconv.Atoi(s)
	if err != nil {
		// Out of int range: keep only the sign.
		if s[0] == '-' {
			return -maxExponent
		}
		return maxExponent
	}
	return min(max(exp, -maxExponent), maxExponent)
}

// TotalIncome sums the income of gigs.
func TotalIncome(gigs []Gig) decimal.Decimal {
	total := decimal.Zero
	for _, g := range gigs {
		total = total.Add(ParseIncome(g.Income))
	}
	return total
}
