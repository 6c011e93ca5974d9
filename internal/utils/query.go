// Package utils holds small parsing helpers shared by the HTTP layer.
package utils

import (
	"strconv"
	"strings"
)

// BoundedInt parses s as a base-10 integer. Blank or malformed input yields
// def; parsed values outside [lo, hi] are clamped to the nearest bound.
func BoundedInt(s string, def, lo, hi int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	switch {
	case n < lo:
		return lo
	case n > hi:
		return hi
	}
	return n
}
