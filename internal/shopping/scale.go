package shopping

import "strings"

// PortionFactor is the multiplier that turns a recipe written for
// defaultPortions into desired portions. A non-positive default counts as 1.
func PortionFactor(desired, defaultPortions int) float64 {
	if defaultPortions <= 0 {
		defaultPortions = 1
	}
	return float64(desired) / float64(defaultPortions)
}

// ScaleIngredient rescales the leading amount of an ingredient line. Lines
// without an amount are returned with only their fraction glyphs normalised.
func ScaleIngredient(line string, factor float64) string {
	normalized := NormalizeFractions(line)

	parsed := ParseIngredient(normalized)
	if !parsed.Quantity.IsKnown() {
		return normalized
	}

	scaled := parsed.Quantity.Scale(factor)
	return strings.TrimSpace(scaled.String() + " " + parsed.Description)
}
