package app

import (
	"context"
	"errors"
	"fmt"

	"week-meal-planner/internal/ghost"
	"week-meal-planner/internal/recipe"

	"go.uber.org/zap"
)

// ProcessRecipePost turns a Ghost post into a recipe. Posts without an
// ingredient list are rejected with recipe.ErrNoIngredients.
func ProcessRecipePost(post ghost.Post) (recipe.Recipe, error) {
	rec, err := recipe.ParseHTML(post.Title, post.HTML)
	if err != nil {
		return recipe.Recipe{}, err
	}
	if rec.SourceURL == "" {
		rec.SourceURL = post.URL
	}
	return rec, nil
}

// ingestGhostRecipes fetches the tagged Ghost posts and adds the ones that
// parse to catalog. Title clashes keep the entry already in the catalog.
func (a *App) ingestGhostRecipes(ctx context.Context, catalog recipe.Catalog) error {
	posts, err := a.ghostClient.FetchRecipes(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch recipes from ghost: %w", err)
	}

	added := 0
	for _, post := range posts {
		rec, err := ProcessRecipePost(post)
		if err != nil {
			level := a.logger.Warn
			if errors.Is(err, recipe.ErrNoIngredients) {
				level = a.logger.Debug
			}
			level("skipping ghost post", zap.String("title", post.Title), zap.Error(err))
			continue
		}
		if !catalog.Add(rec) {
			a.logger.Debug("ghost recipe shadowed by vault note", zap.String("title", rec.Title))
			continue
		}
		added++
	}

	a.logger.Info("fetched recipes from ghost", zap.Int("posts", len(posts)), zap.Int("added", added))
	return nil
}
