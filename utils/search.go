package utils

import (
	"strings"
)

// MatchesSearch reports whether any field contains term, ignoring case. A
// blank term matches everything.
func MatchesSearch(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// FilterBySearch keeps the items whose fields match term, preserving order.
func FilterBySearch[T any](items []T, term string, fields func(T) []string) []T {
	if strings.TrimSpace(term) == "" {
		return items
	}
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if MatchesSearch(term, fields(item)...) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
