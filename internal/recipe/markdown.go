package recipe

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	portionsPattern = regexp.MustCompile(`(?i)portions:\s*(\d+)`)
	headingPattern  = regexp.MustCompile(`^##\s+(.+?)\s*$`)
	bulletPattern   = regexp.MustCompile(`^[-*]\s*(.+)$`)
)

// frontmatter holds the YAML header fields recipe notes may carry.
type frontmatter struct {
	Portions int      `yaml:"portions"`
	Servings int      `yaml:"servings"`
	Tags     []string `yaml:"tags"`
	Source   string   `yaml:"source"`
}

// splitFrontmatter separates a leading "---" delimited YAML block from the
// note body. Notes without one return an empty header.
func splitFrontmatter(content string) (string, string) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return "", normalized
	}
	rest := normalized[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", normalized
	}
	header := rest[:end]
	body := strings.TrimPrefix(rest[end+len("\n---"):], "\n")
	return header, body
}

func parseFrontmatter(content string) (frontmatter, string, error) {
	header, body := splitFrontmatter(content)
	var fm frontmatter
	if header == "" {
		return fm, body, nil
	}
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return fm, body, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	return fm, body, nil
}

// HasTag reports whether a note carries tag, either inline as "#tag" or in
// its frontmatter tags. Matching is case-sensitive like Obsidian's.
func HasTag(content, tag string) bool {
	tag = strings.TrimPrefix(tag, "#")
	if tag == "" {
		return true
	}
	fm, body, err := parseFrontmatter(content)
	if err == nil {
		for _, t := range fm.Tags {
			if strings.TrimPrefix(t, "#") == tag {
				return true
			}
		}
	}
	return strings.Contains(body, "#"+tag)
}

// ParseMarkdown reads a recipe note. Ingredients are the bullet lines of the
// "## Ingredients" section; the portion count comes from the frontmatter or
// from a "portions: N" line anywhere in the note.
func ParseMarkdown(title, content string) (Recipe, error) {
	fm, body, err := parseFrontmatter(content)
	if err != nil {
		// A broken header is not fatal; fall back to the plain text rules.
		fm = frontmatter{}
	}

	ingredients, err := ingredientSection(body)
	if err != nil {
		return Recipe{}, fmt.Errorf("%q: failed to read ingredients: %w", title, err)
	}

	rec := Recipe{
		Title:       title,
		Ingredients: ingredients,
		Portions:    fm.Portions,
		Tags:        fm.Tags,
		Source:      SourceVault,
		SourceURL:   fm.Source,
	}
	if rec.Portions == 0 {
		rec.Portions = fm.Servings
	}
	if rec.Portions == 0 {
		if m := portionsPattern.FindStringSubmatch(content); m != nil {
			rec.Portions, _ = strconv.Atoi(m[1])
		}
	}

	if len(rec.Ingredients) == 0 {
		return rec, fmt.Errorf("%q: %w", title, ErrNoIngredients)
	}
	return rec, nil
}

func ingredientSection(body string) ([]string, error) {
	var ingredients []string
	inSection := false

	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "##") {
			if inSection {
				break
			}
			m := headingPattern.FindStringSubmatch(line)
			inSection = m != nil && strings.EqualFold(m[1], "Ingredients")
			continue
		}
		if !inSection {
			continue
		}
		if m := bulletPattern.FindStringSubmatch(line); m != nil {
			item := strings.TrimSpace(m[1])
			// Obsidian task boxes: "- [ ] 2 eggs".
			item = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(item, "[ ]"), "[x]"))
			if item != "" {
				ingredients = append(ingredients, item)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ingredients, nil
}

// ToMarkdown renders the recipe as a vault note that ParseMarkdown reads back.
func (r Recipe) ToMarkdown(tag string) string {
	var sb strings.Builder

	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "portions: %d\n", r.DefaultPortions())
	if r.SourceURL != "" {
		fmt.Fprintf(&sb, "source: %q\n", r.SourceURL)
	}
	sb.WriteString("---\n\n")

	fmt.Fprintf(&sb, "# %s\n\n", r.Title)
	if tag = strings.TrimPrefix(tag, "#"); tag != "" {
		fmt.Fprintf(&sb, "#%s\n\n", tag)
	}

	sb.WriteString("## Ingredients\n\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&sb, "- %s\n", ing)
	}
	return sb.String()
}
