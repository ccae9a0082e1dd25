package paths

import (
	"path/filepath"
	"strings"

	"github.com/testrig-dev/testrig/pkg/errors"
)

// ListSeparator delimits paths in serialized adapter path lists.
const ListSeparator = ";"

// TrimQuotes strips surrounding whitespace and one pair of enclosing
// double quotes from a raw command-line value.
func TrimQuotes(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) >= 2 && strings.HasPrefix(trimmed, `"`) && strings.HasSuffix(trimmed, `"`) {
		trimmed = trimmed[1 : len(trimmed)-1]
	}
	return strings.TrimSpace(trimmed)
}

// Resolve turns a raw value into a cleaned absolute path.
func Resolve(path string) (string, error) {
	if strings.Contains(path, "\x00") {
		return "", errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve path %q", path)
	}
	return abs, nil
}

// SplitList splits a semicolon-delimited path list, discarding empty segments.
func SplitList(list string) []string {
	if list == "" {
		return nil
	}

	var out []string
	for _, segment := range strings.Split(list, ListSeparator) {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		out = append(out, segment)
	}
	return out
}

// JoinList serializes paths as a semicolon-delimited string with no
// trailing separator.
func JoinList(paths []string) string {
	return strings.Join(paths, ListSeparator)
}

// Dedupe removes exact-string duplicates, preserving first occurrence order.
func Dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	var out []string
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
