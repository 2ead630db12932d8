package clipper

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"week-meal-planner/internal/llm"
	"week-meal-planner/internal/metrics"
	"week-meal-planner/internal/recipe"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

//go:embed clipper_prompt.md
var clipperPrompt string

const (
	agentName       = "Clipper"
	maxContentChars = 20000
)

var promptTemplate = template.Must(template.New("clipper").Parse(clipperPrompt))

// Clipper handles fetching and extracting recipes from URLs.
type Clipper struct {
	textGen    llm.TextGenerator
	httpClient *http.Client
	tag        string
	metrics    *metrics.Store
	logger     *zap.Logger
}

// ExtractedRecipe represents the data structured by the AI.
type ExtractedRecipe struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Portions    portions `json:"portions"`
}

// portions accepts both 4 and "4 people" from the model.
type portions int

func (p *portions) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*p = portions(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("portions must be a number or string: %w", err)
	}
	digits := strings.TrimSpace(s)
	if end := strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }); end >= 0 {
		digits = digits[:end]
	}
	if digits == "" {
		*p = 0
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return fmt.Errorf("invalid portions %q: %w", s, err)
	}
	*p = portions(n)
	return nil
}

// NewClipper creates a new Clipper instance. Clipped recipes are tagged with
// tag so the vault picks them up on the next load.
func NewClipper(textGen llm.TextGenerator, tag string, store *metrics.Store, logger *zap.Logger) *Clipper {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = metrics.NewStore()
	}
	return &Clipper{
		textGen:    textGen,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		tag:        tag,
		metrics:    store,
		logger:     logger,
	}
}

// Clip fetches the URL and extracts a recipe from it using the LLM.
func (c *Clipper) Clip(ctx context.Context, url string) (recipe.Recipe, error) {
	content, err := c.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt, err := buildPrompt(url, content)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("failed to build prompt: %w", err)
	}

	start := time.Now()
	llmResp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("ai extraction failed: %w", err)
	}
	latency := time.Since(start)
	c.metrics.RecordUsage(agentName, llmResp.Usage, latency)
	c.logger.Debug("recipe extracted",
		zap.String("url", url),
		zap.String("model", llmResp.Usage.Model),
		zap.Int("prompt_tokens", llmResp.Usage.PromptTokens),
		zap.Int("completion_tokens", llmResp.Usage.CompletionTokens),
		zap.Duration("latency", latency),
	)

	var extracted ExtractedRecipe
	if err := json.Unmarshal([]byte(llmResp.Content), &extracted); err != nil {
		return recipe.Recipe{}, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, llmResp.Content)
	}

	return c.toRecipe(extracted, url)
}

func (c *Clipper) toRecipe(extracted ExtractedRecipe, url string) (recipe.Recipe, error) {
	title := strings.TrimSpace(extracted.Title)
	if title == "" {
		return recipe.Recipe{}, errors.New("extracted recipe has no title")
	}

	var ingredients []string
	for _, ing := range extracted.Ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			ingredients = append(ingredients, ing)
		}
	}
	if len(ingredients) == 0 {
		return recipe.Recipe{}, fmt.Errorf("%q: %w", title, recipe.ErrNoIngredients)
	}

	rec := recipe.Recipe{
		Title:       title,
		Ingredients: ingredients,
		Portions:    int(extracted.Portions),
		Source:      recipe.SourceClipped,
		SourceURL:   url,
	}
	if c.tag != "" {
		rec.Tags = []string{c.tag}
	}
	if rec.Portions <= 0 {
		rec.Portions = 1
	}
	return rec, nil
}

func (c *Clipper) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, noscript, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	return truncateText(text, maxContentChars), nil
}

// truncateText cuts text to at most n bytes without splitting a UTF-8
// sequence.
func truncateText(text string, n int) string {
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}

func buildPrompt(url, content string) (string, error) {
	var buf bytes.Buffer
	err := promptTemplate.Execute(&buf, struct {
		URL     string
		Content string
	}{URL: url, Content: content})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
