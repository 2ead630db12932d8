package vault

import (
	"fmt"
	"strings"

	"week-meal-planner/internal/planner"
)

// PlanNoteName is the file name of the plan note for the plan's week.
func PlanNoteName(plan *planner.MealPlan) string {
	return fmt.Sprintf("Meal Plan Week %d.md", plan.WeekNumber)
}

// RenderPlanNote renders the plan as an Obsidian note linking every recipe.
func RenderPlanNote(plan *planner.MealPlan) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Weekly Meal Plan for Week %d\n\n", plan.WeekNumber)
	from, to := plan.DateRange()
	fmt.Fprintf(&sb, "### Date Range: %s - %s\n\n", from.Format("January 02"), to.Format("January 02"))

	sb.WriteString("## Meals\n\n")
	for _, dp := range plan.Plan {
		fmt.Fprintf(&sb, "### %s\n- Lunch: [[%s]]", dp.Day, dp.RecipeTitle)
		if dp.Portions > 0 {
			fmt.Fprintf(&sb, " (%s)", portionsLabel(dp.Portions))
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString("## Shopping List\n\n")
	for _, item := range plan.ShoppingList {
		fmt.Fprintf(&sb, "- %s\n", item)
	}
	return sb.String()
}

func portionsLabel(n int) string {
	if n == 1 {
		return "1 portion"
	}
	return fmt.Sprintf("%d portions", n)
}
