package templates

import (
	"strings"
	"text/template"
)

// builtinFuncs are available in every template loaded by the registry.
var builtinFuncs = template.FuncMap{
	"join":    Join,
	"orElse":  OrElse,
	"upper":   strings.ToUpper,
	"title":   titleCase,
	"snaketo": SnakeToWords,
}

// Join renders a string list as a comma-separated phrase. Empty lists render
// as the provided fallback so prompts never contain dangling labels.
func Join(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

// OrElse returns the value when non-empty, otherwise the fallback.
func OrElse(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// SnakeToWords converts snake_case identifiers into space-separated words.
func SnakeToWords(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
