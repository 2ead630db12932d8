package recipe

import (
	"errors"
	"sort"

	"week-meal-planner/internal/shopping"
)

// ErrNoIngredients is returned when a recipe source has no ingredient list.
var ErrNoIngredients = errors.New("recipe has no ingredients")

// Source identifies where a recipe was loaded from.
type Source string

const (
	SourceVault   Source = "vault"
	SourceGhost   Source = "ghost"
	SourceClipped Source = "clipped"
)

// Recipe is a loaded recipe. Ingredients are kept as the raw lines found in the
// source; quantities are only interpreted when a shopping list is built.
type Recipe struct {
	Title       string   `json:"title" yaml:"title"`
	Ingredients []string `json:"ingredients" yaml:"ingredients"`
	Portions    int      `json:"portions" yaml:"portions"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Source      Source   `json:"source,omitempty" yaml:"-"`
	SourceURL   string   `json:"source_url,omitempty" yaml:"source,omitempty"`
}

// DefaultPortions is the number of portions the ingredient list is written
// for. Missing or non-positive counts are treated as 1.
func (r Recipe) DefaultPortions() int {
	if r.Portions <= 0 {
		return 1
	}
	return r.Portions
}

// Factor returns the portion factor for cooking the recipe for desired
// portions.
func (r Recipe) Factor(desired int) float64 {
	return shopping.PortionFactor(desired, r.DefaultPortions())
}

// Contribution pairs the recipe's ingredients with the factor for desired
// portions, labelled with the day it is cooked on.
func (r Recipe) Contribution(label string, desired int) shopping.Contribution {
	return shopping.Contribution{
		Label:       label,
		Ingredients: r.Ingredients,
		Factor:      r.Factor(desired),
	}
}

// Catalog indexes recipes by title.
type Catalog map[string]Recipe

// NewCatalog indexes recipes by title. Later duplicates are dropped.
func NewCatalog(recipes ...Recipe) Catalog {
	c := make(Catalog, len(recipes))
	for _, r := range recipes {
		c.Add(r)
	}
	return c
}

// Add inserts r unless a recipe with the same title exists. It reports whether
// r was added.
func (c Catalog) Add(r Recipe) bool {
	if _, exists := c[r.Title]; exists {
		return false
	}
	c[r.Title] = r
	return true
}

// Titles returns the recipe titles in sorted order.
func (c Catalog) Titles() []string {
	titles := make([]string, 0, len(c))
	for title := range c {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

// Sorted returns the recipes ordered by title.
func (c Catalog) Sorted() []Recipe {
	titles := c.Titles()
	recipes := make([]Recipe, len(titles))
	for i, title := range titles {
		recipes[i] = c[title]
	}
	return recipes
}
