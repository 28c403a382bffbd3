package schedule

import (
	"strconv"
	"strings"
)

// fieldKind tags the shape of a single cron field
type fieldKind int

const (
	kindWildcard fieldKind = iota
	kindStep
	kindRange
	kindList
	kindLiteral
	kindOther
)

// field is a cron field classified by shape. Matching order is fixed:
// wildcard, step, range, list, literal.
type field struct {
	kind  fieldKind
	raw   string
	parts []string
}

func parseField(raw string) field {
	switch {
	case raw == "*":
		return field{kind: kindWildcard, raw: raw}
	case strings.HasPrefix(raw, "*/"):
		return field{kind: kindStep, raw: raw, parts: []string{raw[2:]}}
	case strings.Contains(raw, "-"):
		return field{kind: kindRange, raw: raw, parts: strings.Split(raw, "-")}
	case strings.Contains(raw, ","):
		return field{kind: kindList, raw: raw, parts: strings.Split(raw, ",")}
	case isDigits(raw):
		return field{kind: kindLiteral, raw: raw, parts: []string{raw}}
	default:
		return field{kind: kindOther, raw: raw}
	}
}

// stepValue returns N for a "*/N" field when N is a plain decimal integer
func (f field) stepValue() (int, bool) {
	if f.kind != kindStep || !isDigits(f.parts[0]) {
		return 0, false
	}
	n, err := strconv.Atoi(f.parts[0])
	if err != nil {
		return 0, false
	}
	return n, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
