// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import "strconv"

// AtoiDefault converts a string to an int using strconv.Atoi.
// If the string is empty or cannot be parsed as an integer,
// it returns the provided default value instead.
//
// Example:
//
//	n := utils.AtoiDefault("42", 0) // returns 42
//	n = utils.AtoiDefault("", 10)   // returns 10
//	n = utils.AtoiDefault("x", 5)   // returns 5
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// Default and maximum page sizes used by paginated listings.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageBounds normalizes a 1-based page request against total items and
// returns the half-open slice bounds [start, end). Pages below 1 become 1,
// non-positive sizes become DefaultPageSize and sizes above MaxPageSize are
// capped. Pages past the end yield start == end == total.
func PageBounds(page, pageSize, total int) (start, end int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if total <= 0 {
		return 0, 0
	}
	start = (page - 1) * pageSize
	if start >= total {
		return total, total
	}
	end = start + pageSize
	if end > total {
		end = total
	}
	return start, end
}
