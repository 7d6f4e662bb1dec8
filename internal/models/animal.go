package models

import (
	"strings"
	"time"
)

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

type Animal struct {
	ID           string     `json:"id"`
	CategoryID   *string    `json:"category_id,omitempty"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Species      string     `json:"species"`
	Breed        string     `json:"breed,omitempty"`
	Description  string     `json:"description"`
	Story        string     `json:"story,omitempty"`
	ImageURL     string     `json:"-"`
	IsActive     bool       `json:"is_active"`
	DateDeceased *time.Time `json:"date_deceased,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

const placeholderImage = "/static/images/animal_placeholder.jpg"

// ImageOrPlaceholder returns the stored image URL, or a local
// placeholder when none was uploaded.
func (a *Animal) ImageOrPlaceholder() string {
	if a.ImageURL != "" {
		return a.ImageURL
	}
	return placeholderImage
}

// Slugify lowercases the name and collapses everything that is not a
// letter or digit into single hyphens. Uniqueness is the caller's
// problem (see AnimalService.uniqueSlug).
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
