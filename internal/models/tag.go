package models

import "strings"

// Tag is a globally shared label. Names are unique ignoring case and keep
// the spelling of their first insertion.
type Tag struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// TableName returns the table name for Tag.
func (Tag) TableName() string {
	return "tags"
}

// SplitTags parses a comma-separated tag string.
func SplitTags(s string) []string {
	return NormalizeTagNames(strings.Split(s, ","))
}

// NormalizeTagNames trims names, drops empty ones and removes case-insensitive
// duplicates, keeping the first spelling. The result is never nil.
func NormalizeTagNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, name)
	}
	return result
}
