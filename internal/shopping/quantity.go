package shopping

import (
	"math"
	"strconv"
	"strings"
)

var fractionReplacer = strings.NewReplacer(
	"½", "0.5",
	"¼", "0.25",
	"¾", "0.75",
)

// NormalizeFractions rewrites the vulgar fraction glyphs ½, ¼ and ¾ to their
// decimal text. Everything else passes through untouched.
func NormalizeFractions(line string) string {
	return fractionReplacer.Replace(line)
}

// Quantity is either a known amount or Unknown. The zero value is Unknown.
type Quantity struct {
	value float64
	known bool
}

// Unknown is the quantity of a line without a recognised leading number.
var Unknown = Quantity{}

// Known wraps a numeric amount.
func Known(v float64) Quantity {
	return Quantity{value: v, known: true}
}

// Value returns the amount and whether it is known.
func (q Quantity) Value() (float64, bool) {
	return q.value, q.known
}

// IsKnown reports whether q carries an amount.
func (q Quantity) IsKnown() bool {
	return q.known
}

// Merge sums two known quantities. If either side is Unknown the result is
// Unknown, so an entry that lost its amount never regains it.
func (q Quantity) Merge(other Quantity) Quantity {
	if q.known && other.known {
		return Known(q.value + other.value)
	}
	return Unknown
}

// Scale multiplies a known quantity by factor. Unknown stays Unknown.
func (q Quantity) Scale(factor float64) Quantity {
	if !q.known {
		return Unknown
	}
	return Known(q.value * factor)
}

// String renders integral amounts without a decimal point and everything else
// with the fewest digits that round-trip. Unknown renders as "".
func (q Quantity) String() string {
	if !q.known {
		return ""
	}
	if q.value == math.Trunc(q.value) && !math.IsInf(q.value, 0) {
		return strconv.FormatFloat(q.value, 'f', 0, 64)
	}
	return strconv.FormatFloat(q.value, 'f', -1, 64)
}

// ParsedIngredient is an ingredient line split into its leading amount and the
// remaining description.
type ParsedIngredient struct {
	Quantity    Quantity
	Description string
}

// ParseIngredient splits line into an optional leading number of the form
// DIGITS or DIGITS.DIGITS and the trimmed remainder. Lines that do not start
// with such a number, including malformed ones like "1.5.2" or ".5", come back
// with an Unknown quantity and the whole trimmed line as description. So do
// numbers too large for a float64.
func ParseIngredient(line string) ParsedIngredient {
	trimmed := strings.TrimSpace(line)

	end := leadingNumberEnd(trimmed)
	if end == 0 {
		return ParsedIngredient{Quantity: Unknown, Description: trimmed}
	}

	v, err := strconv.ParseFloat(trimmed[:end], 64)
	if err != nil {
		return ParsedIngredient{Quantity: Unknown, Description: trimmed}
	}

	return ParsedIngredient{
		Quantity:    Known(v),
		Description: strings.TrimSpace(trimmed[end:]),
	}
}

// leadingNumberEnd returns the byte length of the number token at the start of
// s, or 0 when s does not start with a well-formed one.
func leadingNumberEnd(s string) int {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == 0 {
		return 0
	}
	if i == len(s) || s[i] != '.' {
		return i
	}

	// Fractional part: at least one digit, and no second decimal point.
	j := i + 1
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j == i+1 {
		return 0
	}
	if j < len(s) && s[j] == '.' {
		return 0
	}
	return j
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
