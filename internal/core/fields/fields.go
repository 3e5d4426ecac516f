// Package fields holds the naming convention that maps user-facing extended
// data fields onto the typed shadow fields of the search index.
package fields

import "strings"

const (
	// DataPrefix marks a schema-less extended data field whose type is inferred.
	DataPrefix = "data."
	// RefPrefix marks an extended reference field, always indexed as a keyword.
	RefPrefix = "ref."
	// IndexPrefix is the namespace of the typed shadow fields.
	IndexPrefix = "idx."
)

// Suffix is the one-letter storage type of a shadow field.
type Suffix string

const (
	Boolean   Suffix = "b"
	Numeric   Suffix = "n"
	Date      Suffix = "d"
	String    Suffix = "s"
	Reference Suffix = "r"
)

// Index returns the shadow field name for name, e.g. Index("retries", Numeric) is "idx.retries-n".
func Index(name string, suffix Suffix) string {
	return IndexPrefix + name + "-" + string(suffix)
}

// IsData reports whether field is in the extended data namespace.
func IsData(field string) bool {
	return strings.HasPrefix(field, DataPrefix)
}

// IsRef reports whether field is in the extended reference namespace.
func IsRef(field string) bool {
	return strings.HasPrefix(field, RefPrefix)
}
