package util

import "strconv"

// MaxLimit caps any limit a client passes in a query string.
const MaxLimit = 200

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Limit reads a positive limit from s. Missing, invalid or out of range
// values fall back to def.
func Limit(s string, def int) int {
	n := ParseIntDefault(s, def)
	if n <= 0 || n > MaxLimit {
		return def
	}
	return n
}
