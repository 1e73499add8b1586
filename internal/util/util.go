package util

import (
	"regexp"
	"strconv"
	"strings"
)

const DefaultPageSize = 10

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}

func Calculate(page, size int) (skip int, limit int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	skip = (page - 1) * size
	return skip, size
}

func NumberOfPages(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into its base slug: lowercase, every run of
// non-alphanumeric characters collapsed to a single hyphen, hyphens trimmed
// from both ends. May return "" for titles with no alphanumerics.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
