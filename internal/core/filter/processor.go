// Package filter rewrites search filters onto the index field naming scheme
// and reports which paid or dynamic features a filter touches.
package filter

import (
	"strings"

	"github.com/aevon-lab/faultline/internal/core/fields"
	"github.com/aevon-lab/faultline/internal/core/policy"
	"github.com/aevon-lab/faultline/internal/querylang"
)

// Result is the outcome of processing a search filter.
// A non-empty Message always means the filter was rejected.
type Result struct {
	IsValid             bool
	Message             string
	UsesPremiumFeatures bool
	UsesDynamicFields   bool
	// ExpandedQuery is the filter to send to the index. It is the input
	// unchanged unless a dynamic field was rewritten. Validate leaves it empty.
	ExpandedQuery string
}

// Failed reports whether the filter was rejected.
func (r Result) Failed() bool {
	return !r.IsValid || r.Message != ""
}

// Processor parses and rewrites search filters. It holds no mutable state
// and is safe for concurrent use.
type Processor struct {
	policy policy.QueryPolicy
}

// NewProcessor returns a Processor using p to decide premium usage.
func NewProcessor(p policy.QueryPolicy) *Processor {
	return &Processor{policy: p}
}

// Process rewrites query and returns the expanded filter with usage flags.
func (p *Processor) Process(query string) Result {
	return p.run(query, true)
}

// Validate reports usage flags and syntax errors without serializing the
// rewritten filter.
func (p *Processor) Validate(query string) Result {
	return p.run(query, false)
}

func (p *Processor) run(query string, expand bool) Result {
	if strings.TrimSpace(query) == "" {
		return Result{IsValid: true}
	}

	root, err := querylang.Parse(query)
	if err != nil {
		return Result{Message: err.Error()}
	}

	v := &visitor{free: p.policy.FreeFields}
	v.visit(root)

	res := Result{
		IsValid:             true,
		UsesPremiumFeatures: v.premium,
		UsesDynamicFields:   v.dynamic,
	}
	if expand {
		res.ExpandedQuery = query
		if v.dynamic {
			res.ExpandedQuery = root.String()
		}
	}
	return res
}

// visitor walks a parsed filter once, rewriting fields in place and
// accumulating the usage flags.
type visitor struct {
	free    policy.FieldSet
	premium bool
	dynamic bool
}

func (v *visitor) visit(n querylang.Node) {
	switch node := n.(type) {
	case *querylang.GroupNode:
		if node.Field != "" {
			node.Field = v.rewrite(node.Field, groupLiterals(node))
		}
		for _, child := range node.Children() {
			v.visit(child)
		}
	case *querylang.TermNode:
		node.Field = v.rewrite(node.Field, []string{node.Term})
	case *querylang.TermRangeNode:
		node.Field = v.rewrite(node.Field, []string{node.Min, node.Max})
	case *querylang.ExistsNode:
		node.Field = v.rewrite(node.Field, nil)
	case *querylang.MissingNode:
		node.Field = v.rewrite(node.Field, nil)
	}
}

// rewrite maps a user-facing field onto its index field and records usage.
func (v *visitor) rewrite(field string, literals []string) string {
	if field == "" {
		return field
	}
	if !v.free.Contains(field) {
		v.premium = true
	}

	switch {
	case fields.IsData(field):
		v.dynamic = true
		return fields.Index(strings.TrimPrefix(field, fields.DataPrefix), inferSuffix(literals))
	case fields.IsRef(field):
		v.dynamic = true
		return fields.Index(strings.TrimPrefix(field, fields.RefPrefix), fields.Reference)
	case strings.HasPrefix(field, fields.IndexPrefix):
		// Already rewritten; re-processing an expanded filter reports the same usage.
		v.dynamic = true
	}
	return field
}

// groupLiterals collects, in source order, the values of the field-less
// terms and ranges in the operator chain directly under g. They are the
// values compared against g.Field.
func groupLiterals(g *querylang.GroupNode) []string {
	var literals []string
	var collect func(n querylang.Node)
	collect = func(n querylang.Node) {
		switch c := n.(type) {
		case *querylang.GroupNode:
			if c.Field == "" && c.Prefix == querylang.PrefixNone && !c.HasParens {
				for _, child := range c.Children() {
					collect(child)
				}
			}
		case *querylang.TermNode:
			if c.Field == "" {
				literals = append(literals, c.Term)
			}
		case *querylang.TermRangeNode:
			if c.Field == "" {
				literals = append(literals, c.Min, c.Max)
			}
		}
	}
	for _, child := range g.Children() {
		collect(child)
	}
	return literals
}
