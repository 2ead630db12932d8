package planner

import "time"

// DayPlan is the recipe cooked on a single day.
type DayPlan struct {
	Day         string `json:"day"`
	RecipeTitle string `json:"recipe_title"`
	Portions    int    `json:"portions"`
}

// MealPlan is a full weekly plan together with its shopping list.
type MealPlan struct {
	WeekStart    time.Time `json:"week_start"`
	WeekNumber   int       `json:"week_number"`
	Plan         []DayPlan `json:"plan"`
	ShoppingList []string  `json:"shopping_list"`
}

// DateRange returns the first and last working day of the plan's week.
func (p *MealPlan) DateRange() (time.Time, time.Time) {
	return p.WeekStart, p.WeekStart.AddDate(0, 0, len(Workdays)-1)
}
