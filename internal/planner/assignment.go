package planner

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"week-meal-planner/internal/recipe"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyAssignment = errors.New("no days assigned")
	ErrUnknownRecipe   = errors.New("unknown recipe")
	ErrInvalidPortions = errors.New("portions must be positive")
	ErrDuplicateDay    = errors.New("day assigned twice")
)

// Workdays are the days the planner fills by default.
var Workdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// DaySelection assigns a recipe and a portion count to one day.
type DaySelection struct {
	Day      string `yaml:"day" json:"day"`
	Recipe   string `yaml:"recipe" json:"recipe"`
	Portions int    `yaml:"portions" json:"portions"`
}

// Assignment is the ordered list of day selections for one planning session.
type Assignment struct {
	Days []DaySelection `yaml:"days" json:"days"`
}

// LoadAssignment reads an assignment from a YAML file of the form
//
//	days:
//	  - day: Monday
//	    recipe: Greek Salad
//	    portions: 2
//
// Omitted portions default to 1.
func LoadAssignment(path string) (Assignment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Assignment{}, fmt.Errorf("failed to read assignment file: %w", err)
	}
	return ParseAssignment(data)
}

// assignmentFile mirrors Assignment with optional portions so an omitted
// count can be told apart from an explicit zero.
type assignmentFile struct {
	Days []struct {
		Day      string `yaml:"day"`
		Recipe   string `yaml:"recipe"`
		Portions *int   `yaml:"portions"`
	} `yaml:"days"`
}

// ParseAssignment decodes YAML assignment data. An explicit non-positive
// portion count is kept so Validate can reject it.
func ParseAssignment(data []byte) (Assignment, error) {
	var raw assignmentFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Assignment{}, fmt.Errorf("failed to parse assignment: %w", err)
	}

	if len(raw.Days) == 0 {
		return Assignment{}, nil
	}

	a := Assignment{Days: make([]DaySelection, len(raw.Days))}
	for i, d := range raw.Days {
		portions := 1
		if d.Portions != nil {
			portions = *d.Portions
		}
		a.Days[i] = DaySelection{
			Day:      strings.TrimSpace(d.Day),
			Recipe:   strings.TrimSpace(d.Recipe),
			Portions: portions,
		}
	}
	return a, nil
}

// DefaultAssignment puts the alphabetically first recipe on every workday at
// one portion each.
func DefaultAssignment(catalog recipe.Catalog) Assignment {
	titles := catalog.Titles()
	if len(titles) == 0 {
		return Assignment{}
	}

	a := Assignment{Days: make([]DaySelection, len(Workdays))}
	for i, day := range Workdays {
		a.Days[i] = DaySelection{Day: day, Recipe: titles[0], Portions: 1}
	}
	return a
}

// Validate checks that every selection names a known recipe with a positive
// portion count and that no day is assigned twice.
func (a Assignment) Validate(catalog recipe.Catalog) error {
	if len(a.Days) == 0 {
		return ErrEmptyAssignment
	}

	seen := make(map[string]bool, len(a.Days))
	for _, sel := range a.Days {
		if sel.Day == "" {
			return fmt.Errorf("selection for %q has no day", sel.Recipe)
		}
		key := strings.ToLower(sel.Day)
		if seen[key] {
			return fmt.Errorf("%s: %w", sel.Day, ErrDuplicateDay)
		}
		seen[key] = true

		if _, ok := catalog[sel.Recipe]; !ok {
			return fmt.Errorf("%s: %q: %w", sel.Day, sel.Recipe, ErrUnknownRecipe)
		}
		if sel.Portions <= 0 {
			return fmt.Errorf("%s: %d: %w", sel.Day, sel.Portions, ErrInvalidPortions)
		}
	}
	return nil
}
