// Package querylang parses the search filter language into a tree of nodes
// and serializes a (possibly rewritten) tree back into query text.
//
// The language is a subset of the Lucene query-string syntax:
// field:value terms, quoted phrases, [a TO b] and {a TO b} ranges,
// >, >=, <, <= comparisons, _exists_ and _missing_ predicates, grouping with
// parentheses, field:(a OR b) shorthand, AND/OR/NOT and -/+ prefixes.
package querylang

import "strings"

// Node is a node of a parsed query. The node set is closed: the marker
// method keeps other packages from adding kinds, so a type switch over
// *GroupNode, *TermNode, *TermRangeNode, *ExistsNode and *MissingNode is exhaustive.
type Node interface {
	node()
	// String serializes the node back into query text.
	String() string
}

// Operator joins the two sides of a GroupNode.
type Operator int

const (
	OpDefault Operator = iota // implicit, written as whitespace
	OpAnd
	OpOr
)

func (o Operator) String() string {
	switch o {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	default:
		return ""
	}
}

// Prefix modifiers.
const (
	PrefixNone     = ""
	PrefixMust     = "+"
	PrefixMustNot  = "-"
	PrefixNegation = "NOT"
)

// GroupNode composes up to two nodes. A group with a Field is the
// field:( ... ) shorthand; its field-less descendants inherit that field.
type GroupNode struct {
	Field     string
	Left      Node
	Right     Node
	Operator  Operator
	HasParens bool
	Prefix    string
}

func (*GroupNode) node() {}

// Children returns the non-nil sides of the group in order.
func (g *GroupNode) Children() []Node {
	children := make([]Node, 0, 2)
	if g.Left != nil {
		children = append(children, g.Left)
	}
	if g.Right != nil {
		children = append(children, g.Right)
	}
	return children
}

func (g *GroupNode) String() string {
	var sb strings.Builder
	writePrefix(&sb, g.Prefix)
	parens := g.HasParens || g.Field != ""
	if g.Field != "" {
		sb.WriteString(g.Field)
		sb.WriteByte(':')
	}
	if parens {
		sb.WriteByte('(')
	}
	if g.Left != nil {
		sb.WriteString(g.Left.String())
	}
	if g.Right != nil {
		if g.Operator == OpDefault {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(" " + g.Operator.String() + " ")
		}
		sb.WriteString(g.Right.String())
	}
	if parens {
		sb.WriteByte(')')
	}
	return sb.String()
}

// TermNode is a single value, optionally scoped to a field.
// Term holds a bareword verbatim (escapes included) or the unescaped
// content of a quoted phrase.
type TermNode struct {
	Field    string
	Term     string
	IsQuoted bool
	Prefix   string
}

func (*TermNode) node() {}

func (t *TermNode) String() string {
	var sb strings.Builder
	writePrefix(&sb, t.Prefix)
	writeField(&sb, t.Field)
	if t.IsQuoted {
		sb.WriteString(Quote(t.Term))
	} else {
		sb.WriteString(t.Term)
	}
	return sb.String()
}

// Comparison operators of the shorthand range form.
const (
	CmpGreater        = ">"
	CmpGreaterOrEqual = ">="
	CmpLess           = "<"
	CmpLessOrEqual    = "<="
)

// TermRangeNode is a bounded range or a comparison. For the comparison
// form Operator is set and only one of Min or Max is.
type TermRangeNode struct {
	Field        string
	Min          string
	Max          string
	MinInclusive bool
	MaxInclusive bool
	Operator     string
	Prefix       string
}

func (*TermRangeNode) node() {}

func (r *TermRangeNode) String() string {
	var sb strings.Builder
	writePrefix(&sb, r.Prefix)
	writeField(&sb, r.Field)

	switch r.Operator {
	case CmpGreater, CmpGreaterOrEqual:
		sb.WriteString(r.Operator + r.Min)
		return sb.String()
	case CmpLess, CmpLessOrEqual:
		sb.WriteString(r.Operator + r.Max)
		return sb.String()
	}

	if r.MinInclusive {
		sb.WriteByte('[')
	} else {
		sb.WriteByte('{')
	}
	sb.WriteString(r.Min + " TO " + r.Max)
	if r.MaxInclusive {
		sb.WriteByte(']')
	} else {
		sb.WriteByte('}')
	}
	return sb.String()
}

// ExistsNode matches documents that have Field.
type ExistsNode struct {
	Field  string
	Prefix string
}

func (*ExistsNode) node() {}

func (e *ExistsNode) String() string {
	var sb strings.Builder
	writePrefix(&sb, e.Prefix)
	sb.WriteString(ExistsField + ":" + e.Field)
	return sb.String()
}

// MissingNode matches documents that lack Field.
type MissingNode struct {
	Field  string
	Prefix string
}

func (*MissingNode) node() {}

func (m *MissingNode) String() string {
	var sb strings.Builder
	writePrefix(&sb, m.Prefix)
	sb.WriteString(MissingField + ":" + m.Field)
	return sb.String()
}

// Pseudo-fields of the existence predicates.
const (
	ExistsField  = "_exists_"
	MissingField = "_missing_"
)

// Quote wraps s in double quotes, escaping quotes and backslashes that the
// lexer would otherwise consume.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			// Keep escapes the lexer preserves verbatim (e.g. \*) as they are.
			if i+1 < len(s) && s[i+1] != '"' && s[i+1] != '\\' {
				sb.WriteByte('\\')
			} else {
				sb.WriteString(`\\`)
			}
		default:
			sb.WriteByte(ch)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func writePrefix(sb *strings.Builder, prefix string) {
	switch prefix {
	case PrefixNone:
	case PrefixNegation:
		sb.WriteString("NOT ")
	default:
		sb.WriteString(prefix)
	}
}

func writeField(sb *strings.Builder, field string) {
	if field == "" {
		return
	}
	sb.WriteString(field)
	sb.WriteByte(':')
}
