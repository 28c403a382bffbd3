package utils

import (
	"github.com/gosimple/slug"
)

// NormalizeSlug creates a URL-friendly slug using the gosimple/slug library
func NormalizeSlug(text string) string {
	if text == "" {
		return ""
	}
	return slug.Make(text)
}

// GenerateIdeaSlug creates a slug for an idea title, falling back to "idea"
func GenerateIdeaSlug(title string) string {
	if s := NormalizeSlug(title); s != "" {
		return s
	}
	return "idea"
}
