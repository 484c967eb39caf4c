// Package pagination provides types and utilities for paginated data queries.
package pagination

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names for pagination configuration. They follow the
// service-wide SECTION_FIELD convention used by the other config sections.
const (
	EnvPaginationDefaultPageSize = "PAGINATION_DEFAULT_PAGE_SIZE"
	EnvPaginationMaxPageSize     = "PAGINATION_MAX_PAGE_SIZE"
)

// Config bounds the page sizes served by list endpoints. Requests naming no
// size get DefaultPageSize; requests over MaxPageSize are clamped during
// PageRequest.Normalize.
type Config struct {
	DefaultPageSize int `toml:"default_page_size"`
	MaxPageSize     int `toml:"max_page_size"`
}

// Finalize applies defaults, loads environment overrides, and validates the
// configuration, in that order.
func (c *Config) Finalize() error {
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = 20
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = 100
	}

	overrideInt(EnvPaginationDefaultPageSize, &c.DefaultPageSize)
	overrideInt(EnvPaginationMaxPageSize, &c.MaxPageSize)

	switch {
	case c.DefaultPageSize < 1:
		return fmt.Errorf("pagination: default_page_size must be at least 1, got %d", c.DefaultPageSize)
	case c.MaxPageSize < 1:
		return fmt.Errorf("pagination: max_page_size must be at least 1, got %d", c.MaxPageSize)
	case c.DefaultPageSize > c.MaxPageSize:
		return fmt.Errorf("pagination: default_page_size %d exceeds max_page_size %d", c.DefaultPageSize, c.MaxPageSize)
	}
	return nil
}

// Merge applies non-zero values from overlay onto the receiver.
func (c *Config) Merge(overlay *Config) {
	if overlay.DefaultPageSize != 0 {
		c.DefaultPageSize = overlay.DefaultPageSize
	}
	if overlay.MaxPageSize != 0 {
		c.MaxPageSize = overlay.MaxPageSize
	}
}

func overrideInt(name string, dst *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}
