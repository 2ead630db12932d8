package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"week-meal-planner/internal/export"
	"week-meal-planner/internal/ghost"
	"week-meal-planner/internal/metrics"
	"week-meal-planner/internal/planner"
	"week-meal-planner/internal/recipe"

	"go.uber.org/zap"
)

// ErrClipperDisabled is returned by ClipRecipe when no LLM provider is configured.
var ErrClipperDisabled = errors.New("recipe clipper is not configured")

// Vault is the note store recipes are read from and plans are written to.
type Vault interface {
	LoadRecipes() ([]recipe.Recipe, error)
	SaveRecipe(rec recipe.Recipe) (string, error)
	SavePlan(plan *planner.MealPlan) (string, error)
}

// RecipeClipper extracts a recipe from a web page.
type RecipeClipper interface {
	Clip(ctx context.Context, url string) (recipe.Recipe, error)
}

// Notifier delivers a finished plan.
type Notifier interface {
	SendPlan(plan *planner.MealPlan) error
}

// PlanOptions selects the outputs of GeneratePlan besides the plan itself.
type PlanOptions struct {
	DryRun   bool   // skip the vault note, publishing and notifications
	XLSXPath string // write a workbook when set
	Publish  bool   // publish the plan on Ghost instead of saving a draft
	Post     bool   // create a Ghost post at all
	Notify   bool
}

// PlanResult describes what GeneratePlan produced.
type PlanResult struct {
	Plan     *planner.MealPlan
	NotePath string
	XLSXPath string
	Post     *ghost.Post
	Notified bool
}

// ClipResult describes a clipped recipe and where it went.
type ClipResult struct {
	Recipe   recipe.Recipe
	NotePath string
	Post     *ghost.Post
}

// App holds the application's dependencies. The Ghost client, clipper and
// notifier are optional.
type App struct {
	vault         Vault
	ghostClient   ghost.Client
	mealPlanner   *planner.Planner
	recipeClipper RecipeClipper
	notifier      Notifier
	metricsStore  *metrics.Store
	logger        *zap.Logger

	postingDisabled bool
}

// NewApp creates and initializes a new App instance.
func NewApp(
	vault Vault,
	ghostClient ghost.Client,
	mealPlanner *planner.Planner,
	recipeClipper RecipeClipper,
	notifier Notifier,
	metricsStore *metrics.Store,
	logger *zap.Logger,
) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metricsStore == nil {
		metricsStore = metrics.NewStore()
	}
	return &App{
		vault:         vault,
		ghostClient:   ghostClient,
		mealPlanner:   mealPlanner,
		recipeClipper: recipeClipper,
		notifier:      notifier,
		metricsStore:  metricsStore,
		logger:        logger,
	}
}

// DisablePosting keeps the Ghost client for reading recipes but skips every
// post. Use it when no usable admin key is configured.
func (a *App) DisablePosting() {
	a.postingDisabled = true
}

// canPost reports whether Ghost posts can be created, logging why not.
func (a *App) canPost(what string) bool {
	if a.ghostClient == nil {
		a.logger.Warn("ghost is not configured, " + what + " not posted")
		return false
	}
	if a.postingDisabled {
		a.logger.Warn("ghost admin key is not configured, " + what + " not posted")
		return false
	}
	return true
}

// Catalog loads the vault recipes and, when Ghost is configured, the tagged
// Ghost posts. Vault notes win on a title clash. A failing Ghost fetch is
// logged and the vault recipes are returned on their own.
func (a *App) Catalog(ctx context.Context) (recipe.Catalog, error) {
	recipes, err := a.vault.LoadRecipes()
	if err != nil {
		return nil, fmt.Errorf("failed to load vault recipes: %w", err)
	}
	catalog := recipe.NewCatalog(recipes...)

	if a.ghostClient != nil {
		if err := a.ingestGhostRecipes(ctx, catalog); err != nil {
			a.logger.Warn("continuing with vault recipes only", zap.Error(err))
		}
	}
	return catalog, nil
}

// ListRecipes returns every known recipe ordered by title.
func (a *App) ListRecipes(ctx context.Context) ([]recipe.Recipe, error) {
	catalog, err := a.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Sorted(), nil
}

// GeneratePlan builds the plan for the week containing weekStart. An empty
// assignment falls back to planner.DefaultAssignment. The vault note is the
// primary output; the workbook, the Ghost post and the Telegram message are
// best effort and only logged when they fail.
func (a *App) GeneratePlan(ctx context.Context, assignment planner.Assignment, weekStart time.Time, opts PlanOptions) (*PlanResult, error) {
	catalog, err := a.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	if len(assignment.Days) == 0 {
		assignment = planner.DefaultAssignment(catalog)
	}

	plan, err := a.mealPlanner.GeneratePlan(catalog, assignment, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan: %w", err)
	}
	a.logger.Info("generated meal plan",
		zap.Int("week", plan.WeekNumber),
		zap.Int("days", len(plan.Plan)),
		zap.Int("items", len(plan.ShoppingList)),
	)

	result := &PlanResult{Plan: plan}

	if opts.XLSXPath != "" {
		if err := export.WriteXLSXFile(opts.XLSXPath, plan); err != nil {
			a.logger.Error("failed to export workbook", zap.String("path", opts.XLSXPath), zap.Error(err))
		} else {
			result.XLSXPath = opts.XLSXPath
		}
	}

	if opts.DryRun {
		return result, nil
	}

	notePath, err := a.vault.SavePlan(plan)
	if err != nil {
		return result, fmt.Errorf("failed to save plan note: %w", err)
	}
	result.NotePath = notePath
	a.logger.Info("saved plan note", zap.String("path", notePath))

	if opts.Post || opts.Publish {
		result.Post = a.postPlan(ctx, plan, opts.Publish)
	}

	if opts.Notify {
		result.Notified = a.notify(plan)
	}

	return result, nil
}

func (a *App) postPlan(ctx context.Context, plan *planner.MealPlan, publish bool) *ghost.Post {
	if !a.canPost("plan") {
		return nil
	}
	post, err := a.ghostClient.CreatePost(ctx, PlanPostTitle(plan), RenderPlanHTML(plan), publish)
	if err != nil {
		a.logger.Error("failed to post plan to ghost", zap.Error(err))
		return nil
	}
	a.logger.Info("posted plan to ghost", zap.String("id", post.ID), zap.Bool("published", publish))
	return post
}

func (a *App) notify(plan *planner.MealPlan) bool {
	if a.notifier == nil {
		a.logger.Warn("telegram is not configured, plan not sent")
		return false
	}
	if err := a.notifier.SendPlan(plan); err != nil {
		a.logger.Error("failed to send plan to telegram", zap.Error(err))
		return false
	}
	return true
}

// ClipRecipe extracts a recipe from url and saves it as a vault note. With
// publish set the recipe is also published on Ghost; a failed publish is
// logged.
func (a *App) ClipRecipe(ctx context.Context, url string, publish bool) (*ClipResult, error) {
	if a.recipeClipper == nil {
		return nil, ErrClipperDisabled
	}

	rec, err := a.recipeClipper.Clip(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to clip %s: %w", url, err)
	}

	notePath, err := a.vault.SaveRecipe(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to save clipped recipe: %w", err)
	}
	a.logger.Info("clipped recipe", zap.String("title", rec.Title), zap.String("path", notePath))

	result := &ClipResult{Recipe: rec, NotePath: notePath}
	if publish {
		if !a.canPost("recipe") {
			return result, nil
		}
		post, err := a.ghostClient.CreatePost(ctx, rec.Title, rec.ToHTML(), true)
		if err != nil {
			a.logger.Error("failed to publish recipe to ghost", zap.Error(err))
			return result, nil
		}
		result.Post = post
	}
	return result, nil
}

// Usage returns the LLM usage recorded during this run.
func (a *App) Usage() []metrics.Summary {
	return a.metricsStore.Summaries()
}
