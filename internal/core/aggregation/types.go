package aggregation

import (
	"fmt"
	"strings"
)

// Type names a supported aggregation kind as it appears in a request.
type Type string

const (
	TypeAvg      Type = "avg"
	TypeSum      Type = "sum"
	TypeMin      Type = "min"
	TypeMax      Type = "max"
	TypeLast     Type = "last"
	TypeDistinct Type = "distinct"
	TypeTerm     Type = "term"
)

// Definition is one requested summary operation over one field.
// Two definitions are the same aggregation when Type and Field match;
// defaults and patterns do not take part in identity.
type Definition struct {
	Type  Type
	Field string

	DefaultValue *int

	// SortOrder is carried through to the planned request. The request
	// syntax has no way to set it, so Compile always leaves it empty.
	SortOrder string

	// Term only. At most one of the two is set.
	IncludePattern string
	ExcludePattern string
}

// identity is the (Type, Field) pair used for duplicate detection.
type identity struct {
	typ   Type
	field string
}

func (d Definition) identity() identity {
	return identity{typ: d.Type, field: d.Field}
}

// Equal reports whether d and other request the same aggregation.
func (d Definition) Equal(other Definition) bool {
	return d.identity() == other.identity()
}

// Key is the output bucket name, e.g. "avg_value" or "term_is_first_occurrence".
func (d Definition) Key() string {
	prefix := ""
	if k, ok := Kinds[d.Type]; ok {
		prefix = k.KeyPrefix()
	}
	return strings.ReplaceAll(prefix+d.Field, ".", "_")
}

// DefaultValueScript returns the script substituting DefaultValue for documents
// missing the field. It is empty when the definition carries no default.
func (d Definition) DefaultValueScript() string {
	if d.DefaultValue == nil {
		return ""
	}
	return fmt.Sprintf("doc['%s'].empty ? %d : doc['%s'].value", d.Field, *d.DefaultValue, d.Field)
}

// Result is the outcome of compiling an aggregation request.
// A non-empty Message always means the request was rejected.
type Result struct {
	IsValid             bool
	Message             string
	UsesPremiumFeatures bool
	Aggregations        []Definition
}

// Failed reports whether the request was rejected.
func (r Result) Failed() bool {
	return !r.IsValid || r.Message != ""
}
