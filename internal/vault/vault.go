package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"week-meal-planner/internal/planner"
	"week-meal-planner/internal/recipe"

	"go.uber.org/zap"
)

// ErrExists is returned when a note would overwrite an existing file.
var ErrExists = errors.New("note already exists")

// Store reads recipe notes from, and writes plan notes to, an Obsidian vault.
type Store struct {
	basePath   string
	tag        string
	planFolder string
	logger     *zap.Logger
}

// NewStore opens the vault at basePath. Only notes carrying tag are treated as
// recipes; plan notes go to planFolder, relative to the vault root.
func NewStore(basePath, tag, planFolder string, logger *zap.Logger) (*Store, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault %s: %w", basePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault path %s is not a directory", basePath)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		basePath:   basePath,
		tag:        tag,
		planFolder: planFolder,
		logger:     logger,
	}, nil
}

// LoadRecipes walks the vault and parses every tagged note. Notes that cannot
// be read or parsed are skipped with a warning.
func (s *Store) LoadRecipes() ([]recipe.Recipe, error) {
	var recipes []recipe.Recipe

	err := filepath.WalkDir(s.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.basePath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("failed to read note", zap.String("path", path), zap.Error(err))
			return nil
		}
		content := string(data)
		if !recipe.HasTag(content, s.tag) {
			return nil
		}

		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		rec, err := recipe.ParseMarkdown(title, content)
		if err != nil {
			s.logger.Warn("skipping recipe note", zap.String("path", path), zap.Error(err))
			return nil
		}
		recipes = append(recipes, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk vault: %w", err)
	}

	s.logger.Debug("loaded recipes from vault", zap.Int("count", len(recipes)), zap.String("tag", s.tag))
	return recipes, nil
}

// SaveRecipe writes rec as a new note at the vault root and returns its path.
func (s *Store) SaveRecipe(rec recipe.Recipe) (string, error) {
	name := sanitizeFilename(rec.Title)
	if name == "" {
		return "", fmt.Errorf("recipe has no usable title")
	}

	path := filepath.Join(s.basePath, name+".md")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s: %w", path, ErrExists)
	}

	if err := os.WriteFile(path, []byte(rec.ToMarkdown(s.tag)), 0644); err != nil {
		return "", fmt.Errorf("failed to write recipe note: %w", err)
	}
	return path, nil
}

// SavePlan writes the weekly plan note, replacing an earlier note for the same
// week, and returns its path.
func (s *Store) SavePlan(plan *planner.MealPlan) (string, error) {
	dir := filepath.Join(s.basePath, s.planFolder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create plan folder %s: %w", dir, err)
	}

	path := filepath.Join(dir, PlanNoteName(plan))
	if err := os.WriteFile(path, []byte(RenderPlanNote(plan)), 0644); err != nil {
		return "", fmt.Errorf("failed to write plan note: %w", err)
	}
	return path, nil
}

// sanitizeFilename drops characters that are not allowed in file names or
// that Obsidian treats as link syntax.
func sanitizeFilename(title string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-",
		"*", "", "?", "", "\"", "", "<", "", ">", "", "|", "",
		"[", "", "]", "", "#", "", "^", "",
	)
	return strings.TrimSpace(replacer.Replace(title))
}
