package domain

import (
	"path"
	"strings"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the document format from a file name or URL path.
func FormatFor(location string) Format {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// RawDocument is a catalog as fetched, before validation.
type RawDocument struct {
	Location string
	Format   Format
	Data     []byte
}

// LoadReport describes the outcome of a (re)load. Fallback is set when the
// source could not be used and the empty catalog was installed instead.
type LoadReport struct {
	Location string
	Games    int
	Dropped  []int
	Fallback bool
	Reason   string
}
