// Package config loads settings from environment variables. Loading is fail-open:
// a malformed or invalid value never stops the process, it is replaced by the
// default and reported as a warning.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Result is the outcome of loading one setting.
// Warnings holds one message per fallback applied.
type Result[T any] struct {
	Value           T
	Warnings        []string
	FallbackApplied bool
}

func fallback[T any](envKey, raw string, def T, reason error) Result[T] {
	return Result[T]{
		Value:           def,
		Warnings:        []string{fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", envKey, raw, reason, def)},
		FallbackApplied: true,
	}
}

// load reads envKey, parses it and validates it. Unset or empty variables yield def without a warning.
func load[T any](envKey string, def T, parse func(string) (T, error), validator func(T) error) Result[T] {
	raw := os.Getenv(envKey)
	if raw == "" {
		return Result[T]{Value: def}
	}
	v, err := parse(raw)
	if err != nil {
		return fallback(envKey, raw, def, err)
	}
	if validator != nil {
		if err := validator(v); err != nil {
			return fallback(envKey, raw, def, err)
		}
	}
	return Result[T]{Value: v}
}

// LoadEnvString returns the variable or def when unset. No validation is applied.
func LoadEnvString(envKey, def string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return def
}

// LoadEnvWithFallback loads a string and validates it.
//
//	r := LoadEnvWithFallback("MARKET_CRON_SCHEDULE", "*/15 * * * *", ValidateCronSchedule)
func LoadEnvWithFallback(envKey, def string, validator func(string) error) Result[string] {
	return load(envKey, def, func(s string) (string, error) { return s, nil }, validator)
}

// LoadEnvDuration loads a Go duration string such as "12s" or "1h30m".
func LoadEnvDuration(envKey string, def time.Duration, validator func(time.Duration) error) Result[time.Duration] {
	return load(envKey, def, time.ParseDuration, validator)
}

// LoadEnvInt loads a base-10 integer.
func LoadEnvInt(envKey string, def int, validator func(int) error) Result[int] {
	return load(envKey, def, func(s string) (int, error) {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("invalid integer format")
		}
		return n, nil
	}, validator)
}

// LoadEnvBool loads a boolean in any form accepted by strconv.ParseBool.
func LoadEnvBool(envKey string, def bool) Result[bool] {
	return load(envKey, def, func(s string) (bool, error) {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return false, fmt.Errorf("invalid boolean format, expected 'true' or 'false'")
		}
		return b, nil
	}, nil)
}

// Collector accumulates warnings from several loads so that a config constructor
// can report them together.
type Collector struct {
	Warnings []string
	Fields   []string
}

// Track records the warnings of r under field and returns its value.
func Track[T any](c *Collector, field string, r Result[T]) T {
	if r.FallbackApplied {
		c.Warnings = append(c.Warnings, r.Warnings...)
		c.Fields = append(c.Fields, field)
	}
	return r.Value
}
