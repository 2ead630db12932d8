package vault

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"week-meal-planner/internal/planner"
	"week-meal-planner/internal/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeNote(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadRecipes(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "Koken/Greek Salad.md", "portions: 1\n#LunchSalad\n## Ingredients\n- 1 cucumber\n- 200g feta\n")
	writeNote(t, dir, "Koken/Soup.md", "#Dinner\n## Ingredients\n- 1 leek\n")
	writeNote(t, dir, "Broken.md", "#LunchSalad\nno ingredient section\n")
	writeNote(t, dir, ".obsidian/Template.md", "#LunchSalad\n## Ingredients\n- 1 x\n")
	writeNote(t, dir, "notes.txt", "#LunchSalad\n## Ingredients\n- 1 y\n")

	store, err := NewStore(dir, "LunchSalad", "", zap.NewNop())
	require.NoError(t, err)

	recipes, err := store.LoadRecipes()
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Greek Salad", recipes[0].Title)
	assert.Equal(t, []string{"1 cucumber", "200g feta"}, recipes[0].Ingredients)
	assert.Equal(t, 1, recipes[0].Portions)
}

func TestNewStore(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "missing"), "LunchSalad", "", nil)
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.md")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = NewStore(file, "LunchSalad", "", nil)
	assert.Error(t, err)
}

func TestSaveRecipe(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, "LunchSalad", "", nil)
	require.NoError(t, err)

	rec := recipe.Recipe{
		Title:       "Beet: Salad / Feta",
		Ingredients: []string{"2 beets", "100g feta"},
		Portions:    2,
	}

	path, err := store.SaveRecipe(rec)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Beet- Salad - Feta.md"), path)

	recipes, err := store.LoadRecipes()
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, rec.Ingredients, recipes[0].Ingredients)
	assert.Equal(t, 2, recipes[0].Portions)

	_, err = store.SaveRecipe(rec)
	assert.ErrorIs(t, err, ErrExists)

	_, err = store.SaveRecipe(recipe.Recipe{Title: "???"})
	assert.Error(t, err)
}

func TestSavePlan(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, "LunchSalad", "Plans", nil)
	require.NoError(t, err)

	plan := &planner.MealPlan{
		WeekStart:  time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC),
		WeekNumber: 43,
		Plan: []planner.DayPlan{
			{Day: "Monday", RecipeTitle: "Greek Salad", Portions: 2},
			{Day: "Tuesday", RecipeTitle: "Greek Salad", Portions: 1},
		},
		ShoppingList: []string{"1000 g feta", "5 cucumber", "olive oil"},
	}

	path, err := store.SavePlan(plan)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Plans", "Meal Plan Week 43.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	note := string(data)

	assert.True(t, strings.HasPrefix(note, "# Weekly Meal Plan for Week 43\n"))
	assert.Contains(t, note, "### Date Range: October 19 - October 23")
	assert.Contains(t, note, "### Monday\n- Lunch: [[Greek Salad]] (2 portions)")
	assert.Contains(t, note, "### Tuesday\n- Lunch: [[Greek Salad]] (1 portion)")
	assert.Contains(t, note, "## Shopping List\n\n- 1000 g feta\n- 5 cucumber\n- olive oil\n")

	// A plan note is not mistaken for a recipe.
	recipes, err := store.LoadRecipes()
	require.NoError(t, err)
	assert.Empty(t, recipes)
}
