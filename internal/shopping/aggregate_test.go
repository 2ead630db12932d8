package shopping

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleIngredient(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		factor float64
		want   string
	}{
		{name: "integer", line: "2 eggs", factor: 2, want: "4 eggs"},
		{name: "integral collapse", line: "1.5 cups flour", factor: 2, want: "3 cups flour"},
		{name: "no quantity passes through", line: "salt to taste", factor: 3, want: "salt to taste"},
		{name: "fraction glyph", line: "½ cup yoghurt", factor: 3, want: "1.5 cup yoghurt"},
		{name: "fractional result", line: "1 lemon", factor: 0.5, want: "0.5 lemon"},
		{name: "unit glued to number", line: "200g feta", factor: 2, want: "400 g feta"},
		{name: "identity factor", line: "1 cucumber", factor: 1, want: "1 cucumber"},
		{name: "number only", line: "3", factor: 2, want: "6"},
		{name: "unscaled keeps normalised glyphs", line: "pinch of ½ salt", factor: 2, want: "pinch of 0.5 salt"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ScaleIngredient(tc.line, tc.factor))
		})
	}
}

func TestPortionFactor(t *testing.T) {
	assert.Equal(t, 2.0, PortionFactor(2, 1))
	assert.Equal(t, 0.75, PortionFactor(3, 4))
	assert.Equal(t, 3.0, PortionFactor(3, 0), "zero default portions counts as one")
	assert.Equal(t, 3.0, PortionFactor(3, -2), "negative default portions counts as one")
}

func TestAggregator(t *testing.T) {
	t.Run("sums known quantities", func(t *testing.T) {
		agg := NewAggregator()
		agg.AddLine("2 eggs")
		agg.AddLine("3 eggs")
		assert.Equal(t, []string{"5 eggs"}, agg.Lines())
	})

	t.Run("unknown quantity wins in either order", func(t *testing.T) {
		first := NewAggregator()
		first.AddLine("2 eggs")
		first.AddLine("eggs")

		second := NewAggregator()
		second.AddLine("eggs")
		second.AddLine("2 eggs")

		assert.Equal(t, []string{"eggs"}, first.Lines())
		assert.Equal(t, first.Lines(), second.Lines())
	})

	t.Run("downgrade is permanent", func(t *testing.T) {
		agg := NewAggregator()
		agg.AddLine("2 eggs")
		agg.AddLine("eggs")
		agg.AddLine("4 eggs")
		assert.Equal(t, []string{"eggs"}, agg.Lines())
	})

	t.Run("keys are exact", func(t *testing.T) {
		agg := NewAggregator()
		agg.AddLine("2 Cucumber")
		agg.AddLine("2 cucumber")
		agg.AddLine("1 cucumber.")
		assert.Equal(t, []string{"1 cucumber.", "2 Cucumber", "2 cucumber"}, agg.Lines())
	})

	t.Run("blank lines ignored", func(t *testing.T) {
		agg := NewAggregator()
		agg.AddLine("")
		agg.AddLine("   ")
		assert.Empty(t, agg.Lines())
	})

	t.Run("formatting is idempotent", func(t *testing.T) {
		agg := NewAggregator()
		agg.AddLine("1 cucumber")
		agg.AddLine("olive oil")
		agg.AddLine("0.5 lemon")
		assert.Equal(t, agg.Lines(), agg.Lines())
	})

	t.Run("entries carry quantities", func(t *testing.T) {
		agg := NewAggregator()
		agg.AddLine("1.25 kg potatoes")
		agg.AddLine("1.25 kg potatoes")

		entries := agg.Entries()
		require.Len(t, entries, 1)
		v, ok := entries[0].Quantity.Value()
		assert.True(t, ok)
		assert.Equal(t, 2.5, v)
		assert.Equal(t, "kg potatoes", entries[0].Description)
	})

	t.Run("concurrent adds", func(t *testing.T) {
		agg := NewAggregator()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				agg.AddLine("1 onion")
				agg.AddLine(fmt.Sprintf("1 spice %d", i%5))
			}()
		}
		wg.Wait()

		lines := agg.Lines()
		assert.Contains(t, lines, "50 onion")
		assert.Contains(t, lines, "10 spice 0")
		assert.Len(t, lines, 6)
	})
}

func TestBuild(t *testing.T) {
	greekSalad := []string{"1 cucumber", "200g feta", "olive oil"}

	t.Run("same recipe on two days", func(t *testing.T) {
		contributions := []Contribution{
			{Label: "Monday", Ingredients: greekSalad, Factor: PortionFactor(2, 1)},
			{Label: "Tuesday", Ingredients: greekSalad, Factor: PortionFactor(3, 1)},
		}

		assert.Equal(t, []string{"2 cucumber", "400 g feta", "olive oil"}, contributions[0].Scaled())
		assert.Equal(t, []string{"3 cucumber", "600 g feta", "olive oil"}, contributions[1].Scaled())
		assert.Equal(t, []string{"1000 g feta", "5 cucumber", "olive oil"}, Build(contributions))
	})

	t.Run("order of contributions does not matter", func(t *testing.T) {
		a := Contribution{Label: "Monday", Ingredients: []string{"2 eggs", "1 lemon"}, Factor: 1.5}
		b := Contribution{Label: "Tuesday", Ingredients: []string{"eggs", "½ lemon"}, Factor: 2}

		assert.Equal(t, Build([]Contribution{a, b}), Build([]Contribution{b, a}))
		assert.Equal(t, []string{"2.5 lemon", "eggs"}, Build([]Contribution{a, b}))
	})

	t.Run("sums in day order on every run", func(t *testing.T) {
		filler := make([]string, 200)
		for i := range filler {
			filler[i] = fmt.Sprintf("%d pinch spice %d", i+1, i)
		}
		day := func(label, oats string) Contribution {
			return Contribution{Label: label, Ingredients: append([]string{oats}, filler...), Factor: 1}
		}
		contributions := []Contribution{
			day("Monday", "0.1 cup oats"),
			day("Tuesday", "0.2 cup oats"),
			day("Wednesday", "0.3 cup oats"),
		}

		want := Known(0.1).Merge(Known(0.2)).Merge(Known(0.3)).String() + " cup oats"
		first := Build(contributions)
		assert.Contains(t, first, want)
		for i := 0; i < 200; i++ {
			require.Equal(t, first, Build(contributions))
		}
	})

	t.Run("no contributions", func(t *testing.T) {
		assert.Empty(t, Build(nil))
	})
}
