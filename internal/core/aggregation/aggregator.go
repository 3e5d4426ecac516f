package aggregation

import (
	"strconv"
	"strings"
)

// Kind defines how a request piece of a given type becomes a Definition.
// To add a new aggregation kind: implement Kind and register it in Kinds.
type Kind interface {
	// KeyPrefix is prepended to the field when naming the output bucket.
	KeyPrefix() string

	// Build creates the definition for field. extra is the optional third
	// part of the piece and is empty when absent.
	Build(field, extra string) Definition
}

// Kinds is the registry of all supported aggregation kinds.
var Kinds = map[Type]Kind{
	TypeAvg:      metricKind{typ: TypeAvg},
	TypeSum:      metricKind{typ: TypeSum},
	TypeMin:      metricKind{typ: TypeMin},
	TypeMax:      metricKind{typ: TypeMax},
	TypeLast:     metricKind{typ: TypeLast},
	TypeDistinct: metricKind{typ: TypeDistinct},
	TypeTerm:     termKind{},
}

// ValidType reports whether t is a registered aggregation kind.
func ValidType(t Type) bool {
	_, ok := Kinds[t]
	return ok
}

// metricKind reads an optional integer default value from the extra part.
type metricKind struct {
	typ Type
}

func (k metricKind) KeyPrefix() string { return string(k.typ) + "_" }

func (k metricKind) Build(field, extra string) Definition {
	d := Definition{Type: k.typ, Field: field}
	if extra == "" {
		return d
	}
	// An unparsable default is ignored rather than rejected.
	if v, err := strconv.Atoi(strings.TrimSpace(extra)); err == nil {
		d.DefaultValue = &v
	}
	return d
}

// termKind reads an include pattern, or an exclude pattern when prefixed with "-".
type termKind struct{}

func (termKind) KeyPrefix() string { return string(TypeTerm) + "_" }

func (termKind) Build(field, extra string) Definition {
	d := Definition{Type: TypeTerm, Field: field}
	if extra == "" {
		return d
	}
	if strings.HasPrefix(extra, "-") {
		d.ExcludePattern = extra[1:]
	} else {
		d.IncludePattern = extra
	}
	return d
}
