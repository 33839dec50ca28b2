// Package domain defines the core models of the coaching backend: the closed
// category taxonomy, ingested documents and their chunks, the conversation
// transcript, and the user's coaching settings. These types are shared by the
// search, state, services, and HTTP layers and double as the JSON shape of the
// persisted snapshots.
package domain

import (
	"errors"
	"strings"
)

// Category is one label of the fixed ten-value taxonomy (P.A.R.A. method plus
// Wheel of Life areas).
type Category string

const (
	CategoryProjects      Category = "PROJECTS"
	CategoryCareer        Category = "CAREER"
	CategoryHealth        Category = "HEALTH"
	CategoryRelationships Category = "RELATIONSHIPS"
	CategoryFinances      Category = "FINANCES"
	CategoryLearning      Category = "LEARNING"
	CategoryRecreation    Category = "RECREATION"
	CategoryEnvironment   Category = "ENVIRONMENT"
	CategoryResources     Category = "RESOURCES"
	CategoryArchive       Category = "ARCHIVE"
)

// FallbackCategory is assigned whenever classification fails or yields an
// unrecognized label.
const FallbackCategory = CategoryResources

// CategoryAll is the filter value meaning "no category filter".
const CategoryAll = "ALL"

// ErrUnknownCategory is returned by ParseCategory for labels outside the set.
var ErrUnknownCategory = errors.New("unknown category")

// CategoryInfo carries the presentation metadata of a category.
type CategoryInfo struct {
	Label       Category `json:"label"`
	Glyph       string   `json:"glyph"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
}

// categories is ordered; Categories() and the classification instruction
// list labels in this order.
var categories = []CategoryInfo{
	{CategoryProjects, "📋", "#ff6b6b", "Active work with deadlines"},
	{CategoryCareer, "💼", "#4ecdc4", "Professional growth & work"},
	{CategoryHealth, "🏃‍♂️", "#45b7d1", "Physical & mental wellness"},
	{CategoryRelationships, "❤️", "#f9ca24", "Family, friends, romance"},
	{CategoryFinances, "💰", "#6c5ce7", "Money, investing, budgeting"},
	{CategoryLearning, "📚", "#a29bfe", "Education, skills, growth"},
	{CategoryRecreation, "🎉", "#fd79a8", "Hobbies, fun, entertainment"},
	{CategoryEnvironment, "🏠", "#00b894", "Home, workspace, surroundings"},
	{CategoryResources, "🗄️", "#636e72", "Reference materials"},
	{CategoryArchive, "📁", "#b2bec3", "Completed or inactive"},
}

// Categories returns the taxonomy in its canonical order. The slice is a copy.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categories))
	copy(out, categories)
	return out
}

// Info returns the metadata for c; ok is false for labels outside the set.
func (c Category) Info() (CategoryInfo, bool) {
	for _, ci := range categories {
		if ci.Label == c {
			return ci, true
		}
	}
	return CategoryInfo{}, false
}

// Valid reports whether c is one of the ten labels.
func (c Category) Valid() bool {
	_, ok := c.Info()
	return ok
}

// ParseCategory maps free text onto the closed set: the input is trimmed and
// compared case-insensitively against each label. Anything else, including a
// label wrapped in quotes or followed by prose, is rejected.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, ci := range categories {
		if strings.EqualFold(s, string(ci.Label)) {
			return ci.Label, nil
		}
	}
	return "", ErrUnknownCategory
}
