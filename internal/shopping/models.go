package shopping

// Contribution is one day's share of the shopping list: the raw ingredient
// lines of the assigned recipe and the portion factor to apply to them.
type Contribution struct {
	Label       string
	Ingredients []string
	Factor      float64
}

// Scaled returns the contribution's ingredient lines rescaled by its factor.
func (c Contribution) Scaled() []string {
	lines := make([]string, len(c.Ingredients))
	for i, ing := range c.Ingredients {
		lines[i] = ScaleIngredient(ing, c.Factor)
	}
	return lines
}
