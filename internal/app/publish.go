package app

import (
	"fmt"
	"html"
	"strings"

	"week-meal-planner/internal/planner"
)

// PlanPostTitle is the Ghost post title for a weekly plan.
func PlanPostTitle(plan *planner.MealPlan) string {
	return fmt.Sprintf("Weekly Meal Plan for Week %d", plan.WeekNumber)
}

// RenderPlanHTML renders the plan as the body of a Ghost post.
func RenderPlanHTML(plan *planner.MealPlan) string {
	var sb strings.Builder
	from, to := plan.DateRange()
	sb.WriteString(fmt.Sprintf("<p><em>%s - %s</em></p>", from.Format("January 02"), to.Format("January 02")))

	sb.WriteString("<h2>Meals</h2><ul>")
	for _, dp := range plan.Plan {
		sb.WriteString(fmt.Sprintf("<li><strong>%s</strong>: %s (%d)</li>",
			html.EscapeString(dp.Day), html.EscapeString(dp.RecipeTitle), dp.Portions))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h2>Shopping List</h2><ul>")
	for _, item := range plan.ShoppingList {
		sb.WriteString(fmt.Sprintf("<li>%s</li>", html.EscapeString(item)))
	}
	sb.WriteString("</ul>")

	return sb.String()
}
