package recipe

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var servingsPattern = regexp.MustCompile(`(?i)(?:servings|portions)\s*:?\s*(\d+)`)

// ParseHTML extracts a recipe from a rendered blog post. The ingredient list
// is the first <ul> or <ol> after a heading reading "Ingredients".
func ParseHTML(title, body string) (Recipe, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return Recipe{}, fmt.Errorf("failed to parse recipe HTML: %w", err)
	}

	rec := Recipe{Title: title, Source: SourceGhost}

	doc.Find("h1, h2, h3, h4").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !strings.EqualFold(strings.TrimSpace(h.Text()), "Ingredients") {
			return true
		}
		list := h.NextAllFiltered("ul, ol").First()
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			if item := strings.Join(strings.Fields(li.Text()), " "); item != "" {
				rec.Ingredients = append(rec.Ingredients, item)
			}
		})
		return false
	})

	if m := servingsPattern.FindStringSubmatch(doc.Text()); m != nil {
		rec.Portions, _ = strconv.Atoi(m[1])
	}

	if href, ok := doc.Find("a[href]").First().Attr("href"); ok {
		rec.SourceURL = href
	}

	if len(rec.Ingredients) == 0 {
		return rec, fmt.Errorf("%q: %w", title, ErrNoIngredients)
	}
	return rec, nil
}

// ToHTML renders the recipe the way ParseHTML expects to find it.
func (r Recipe) ToHTML() string {
	var sb strings.Builder
	if r.SourceURL != "" {
		u := html.EscapeString(r.SourceURL)
		sb.WriteString(fmt.Sprintf("<p><i>Imported from: <a href=\"%s\">%s</a></i></p>", u, u))
	}

	sb.WriteString("<h2>Ingredients</h2><ul>")
	for _, ing := range r.Ingredients {
		sb.WriteString(fmt.Sprintf("<li>%s</li>", html.EscapeString(ing)))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<hr>")
	sb.WriteString(fmt.Sprintf("<p><strong>Servings:</strong> %d</p>", r.DefaultPortions()))

	return sb.String()
}
