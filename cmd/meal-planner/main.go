package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"week-meal-planner/internal/app"
	"week-meal-planner/internal/clipper"
	"week-meal-planner/internal/config"
	"week-meal-planner/internal/ghost"
	"week-meal-planner/internal/llm"
	"week-meal-planner/internal/metrics"
	"week-meal-planner/internal/planner"
	"week-meal-planner/internal/telegram"
	"week-meal-planner/internal/vault"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, cleanup, err := buildApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}
	defer cleanup()

	switch os.Args[1] {
	case "recipes":
		err = runRecipes(ctx, application)
	case "plan":
		err = runPlan(ctx, application, os.Args[2:])
	case "clip":
		err = runClip(ctx, application, os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", os.Args[1]), zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func buildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app.App, func(), error) {
	cleanup := func() {}

	vaultStore, err := vault.NewStore(cfg.VaultPath, cfg.RecipeTag, cfg.PlanFolder, logger.Named("vault"))
	if err != nil {
		return nil, cleanup, err
	}

	var ghostClient ghost.Client
	if cfg.GhostEnabled() {
		ghostClient = ghost.NewClient(cfg)
	}

	metricsStore := metrics.NewStore()

	var recipeClipper app.RecipeClipper
	if cfg.LLMEnabled() {
		textGen, err := llm.NewTextGenerator(ctx, cfg)
		if err != nil {
			return nil, cleanup, err
		}
		if closer, ok := textGen.(llm.Closer); ok {
			cleanup = func() { _ = closer.Close() }
		}
		recipeClipper = clipper.NewClipper(textGen, cfg.RecipeTag, metricsStore, logger.Named("clipper"))
	}

	var notifier app.Notifier
	if cfg.TelegramEnabled() {
		n, err := telegram.NewNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			logger.Warn("telegram notifications disabled", zap.Error(err))
		} else {
			notifier = n
		}
	}

	application := app.NewApp(
		vaultStore,
		ghostClient,
		planner.NewPlanner(),
		recipeClipper,
		notifier,
		metricsStore,
		logger,
	)
	if cfg.GhostEnabled() && !cfg.GhostAdminEnabled() {
		logger.Warn("GHOST_ADMIN_API_KEY is not an id:secret pair, posting to ghost disabled")
		application.DisablePosting()
	}
	return application, cleanup, nil
}

func runRecipes(ctx context.Context, application *app.App) error {
	recipes, err := application.ListRecipes(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%d recipes\n\n", len(recipes))
	for _, rec := range recipes {
		fmt.Printf("%-40s %2d portion(s)  %2d ingredient(s)  [%s]\n",
			rec.Title, rec.DefaultPortions(), len(rec.Ingredients), rec.Source)
	}
	return nil
}

func runPlan(ctx context.Context, application *app.App, args []string) error {
	planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
	file := planCmd.String("file", "", "YAML file assigning recipes and portions to days")
	week := planCmd.String("week", "", "Any date in the week to plan (YYYY-MM-DD) or \"next\"; defaults to the current week")
	xlsx := planCmd.String("xlsx", "", "Also write the plan to this Excel workbook")
	post := planCmd.Bool("post", false, "Create a draft post on Ghost")
	publish := planCmd.Bool("publish", false, "Publish the plan on Ghost")
	notify := planCmd.Bool("notify", false, "Send the plan to Telegram")
	dryRun := planCmd.Bool("dry-run", false, "Print the plan without writing the vault note")
	_ = planCmd.Parse(args)

	var assignment planner.Assignment
	if *file != "" {
		a, err := planner.LoadAssignment(*file)
		if err != nil {
			return err
		}
		assignment = a
	}

	weekStart, err := parseWeek(*week, time.Now())
	if err != nil {
		return err
	}

	result, err := application.GeneratePlan(ctx, assignment, weekStart, app.PlanOptions{
		DryRun:   *dryRun,
		XLSXPath: *xlsx,
		Post:     *post,
		Publish:  *publish,
		Notify:   *notify,
	})
	if err != nil {
		return err
	}

	printPlan(result.Plan)
	if result.NotePath != "" {
		fmt.Printf("\nSaved to %s\n", result.NotePath)
	}
	if result.XLSXPath != "" {
		fmt.Printf("Exported to %s\n", result.XLSXPath)
	}
	if result.Post != nil {
		fmt.Printf("Ghost post %s created\n", result.Post.ID)
	}
	return nil
}

func runClip(ctx context.Context, application *app.App, args []string) error {
	clipCmd := flag.NewFlagSet("clip", flag.ExitOnError)
	publish := clipCmd.Bool("publish", false, "Also publish the recipe on Ghost")
	_ = clipCmd.Parse(args)

	if clipCmd.NArg() != 1 {
		return fmt.Errorf("usage: meal-planner clip [-publish] <url>")
	}

	result, err := application.ClipRecipe(ctx, clipCmd.Arg(0), *publish)
	if err != nil {
		return err
	}

	fmt.Printf("Clipped %q (%d ingredients, %d portions) to %s\n",
		result.Recipe.Title, len(result.Recipe.Ingredients), result.Recipe.DefaultPortions(), result.NotePath)
	for _, s := range application.Usage() {
		fmt.Printf("%s: %d calls, %d prompt + %d completion tokens\n",
			s.AgentName, s.Calls, s.PromptTokens, s.CompletionTokens)
	}
	return nil
}

func printPlan(plan *planner.MealPlan) {
	from, to := plan.DateRange()
	fmt.Printf("=== WEEK %d (%s - %s) ===\n", plan.WeekNumber, from.Format("Jan 02"), to.Format("Jan 02"))
	for _, dp := range plan.Plan {
		fmt.Printf("%-10s: %s (%d)\n", dp.Day, dp.RecipeTitle, dp.Portions)
	}

	fmt.Println("\n=== SHOPPING LIST ===")
	for _, item := range plan.ShoppingList {
		fmt.Printf("- %s\n", item)
	}
}

// parseWeek parses a YYYY-MM-DD date. An empty string means the current week
// and "next" the week after now.
func parseWeek(s string, now time.Time) (time.Time, error) {
	switch s {
	case "":
		return time.Time{}, nil
	case "next":
		return planner.NextMonday(now), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -week %q: %w", s, err)
	}
	return t, nil
}

func newLogger(level string) (*zap.Logger, error) {
	atom, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = atom
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zcfg.Sampling = nil
	return zcfg.Build()
}

func printUsage() {
	fmt.Println("Usage: meal-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  recipes                      List the recipes found in the vault and on Ghost")
	fmt.Println("  plan [flags]                 Build the weekly plan and shopping list")
	fmt.Println("  clip [-publish] <url>        Extract a recipe from a web page into the vault")
}
