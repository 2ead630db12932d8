package planner

import (
	"fmt"
	"time"

	"week-meal-planner/internal/recipe"
	"week-meal-planner/internal/shopping"
)

// Planner turns a day assignment into a meal plan with its shopping list.
type Planner struct {
	now func() time.Time
}

// NewPlanner creates a new Planner instance.
func NewPlanner() *Planner {
	return &Planner{now: time.Now}
}

// GeneratePlan validates the assignment against the catalog, scales every
// assigned recipe and aggregates the shopping list. A zero weekStart plans the
// current week.
func (p *Planner) GeneratePlan(catalog recipe.Catalog, assignment Assignment, weekStart time.Time) (*MealPlan, error) {
	if err := assignment.Validate(catalog); err != nil {
		return nil, fmt.Errorf("invalid assignment: %w", err)
	}

	if weekStart.IsZero() {
		weekStart = p.now()
	}
	weekStart = WeekStart(weekStart)
	_, week := weekStart.ISOWeek()

	plan := &MealPlan{
		WeekStart:  weekStart,
		WeekNumber: week,
		Plan:       make([]DayPlan, 0, len(assignment.Days)),
	}

	contributions := make([]shopping.Contribution, 0, len(assignment.Days))
	for _, sel := range assignment.Days {
		rec := catalog[sel.Recipe]
		plan.Plan = append(plan.Plan, DayPlan{
			Day:         sel.Day,
			RecipeTitle: rec.Title,
			Portions:    sel.Portions,
		})
		contributions = append(contributions, rec.Contribution(sel.Day, sel.Portions))
	}

	plan.ShoppingList = shopping.Build(contributions)
	return plan, nil
}

// WeekStart returns midnight on the Monday of t's ISO week.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextMonday returns midnight on the Monday after t.
func NextMonday(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 7)
}
