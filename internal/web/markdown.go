package web

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/pageza/fridge-recipes/backend/internal/types"
)

// markdown renders model output; raw HTML in the input is escaped, not passed through
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// FormatMarkdown turns a result into Markdown. Freeform text is used as-is.
func FormatMarkdown(result *types.RecipeResult) string {
	if result == nil {
		return ""
	}
	if !result.Structured() {
		return result.Raw
	}

	var b strings.Builder
	for i, r := range result.Recipes {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		fmt.Fprintf(&b, "### %s\n\n", r.Name)
		if r.CookingTime != "" {
			fmt.Fprintf(&b, "**Cooking time:** %s  \n", r.CookingTime)
		}
		if r.Difficulty != "" {
			fmt.Fprintf(&b, "**Difficulty:** %s\n", r.Difficulty)
		}
		if len(r.Ingredients) > 0 {
			b.WriteString("\n**Ingredients**\n\n")
			for _, ing := range r.Ingredients {
				fmt.Fprintf(&b, "- %s\n", ing)
			}
		}
		if r.Instructions != "" {
			fmt.Fprintf(&b, "\n**Instructions**\n\n%s\n", r.Instructions)
		}
	}
	return b.String()
}

// RenderMarkdown converts Markdown to HTML
func RenderMarkdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
