// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
//
// The parsers below are strict: an empty (or blank) input yields the
// default, anything else must parse completely or an error is returned.
package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// IntDefault parses s as a base-10 int.
//
// Example:
//
//	n, _ := utils.IntDefault("42", 1) // 42
//	n, _ = utils.IntDefault("", 1)    // 1
//	_, err := utils.IntDefault("x", 1) // err != nil
func IntDefault(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return n, nil
}

// FloatDefault parses s as a finite float64. NaN and infinities are rejected.
func FloatDefault(s string, def float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return f, nil
}

// BoolDefault parses s with strconv.ParseBool ("1", "t", "true", "0",
// "false", ...), case-insensitively.
func BoolDefault(s string, def bool) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(s))
	if err != nil {
		return false, fmt.Errorf("not a boolean: %q", s)
	}
	return b, nil
}
