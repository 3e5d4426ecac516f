package filter

import (
	"strings"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"

	"github.com/aevon-lab/faultline/internal/core/fields"
)

// inferSuffix picks the shadow field type for a data field from the
// literals it is compared against. Only the first usable literal is
// inspected; wildcards tell nothing about the type and are skipped.
func inferSuffix(literals []string) fields.Suffix {
	values := usableLiterals(literals)

	if len(values) > 0 {
		v := values[0]
		switch {
		case isBoolean(v):
			return fields.Boolean
		case isNumeric(v):
			return fields.Numeric
		case isDate(v):
			return fields.Date
		}
	}

	if len(values) > 0 && allDateMath(values) {
		return fields.Date
	}
	return fields.String
}

// usableLiterals trims, drops empties and wildcards, and dedupes in order.
func usableLiterals(literals []string) []string {
	seen := make(map[string]struct{}, len(literals))
	out := make([]string, 0, len(literals))
	for _, l := range literals {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "*") {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

func isBoolean(v string) bool {
	return strings.EqualFold(v, "true") || strings.EqualFold(v, "false")
}

func isNumeric(v string) bool {
	_, err := decimal.NewFromString(v)
	return err == nil
}

// isDate reports whether v parses as a date or timestamp in any common layout.
func isDate(v string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	_, err := dateparse.ParseAny(v)
	return err == nil
}

// allDateMath reports whether every value is a relative date expression
// such as "now" or "now/d".
func allDateMath(values []string) bool {
	for _, v := range values {
		lower := strings.ToLower(v)
		if lower != "now" && !strings.HasPrefix(lower, "now/") {
			return false
		}
	}
	return true
}
