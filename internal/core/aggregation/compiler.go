package aggregation

import (
	"strings"

	"github.com/aevon-lab/faultline/internal/core/fields"
	"github.com/aevon-lab/faultline/internal/core/policy"
)

// Rejection messages. Callers surface these verbatim.
const (
	MsgCountExceeded         = "Aggregation count exceeded"
	MsgDuplicate             = "Duplicate aggregation detected"
	MsgDistinctCountExceeded = "Distinct aggregation count exceeded"
	MsgTermsCountExceeded    = "Terms aggregation count exceeded"
	MsgDisallowedField       = "Dissallowed field detected"
)

// Compiler turns aggregation request strings into validated definitions.
// It holds no mutable state and is safe for concurrent use.
type Compiler struct {
	policy policy.AggregationPolicy
}

// NewCompiler returns a Compiler enforcing p.
func NewCompiler(p policy.AggregationPolicy) *Compiler {
	return &Compiler{policy: p}
}

// Compile parses spec, a comma-separated list of "type:field[:extra]" pieces.
// With applyPolicy false the tenant-facing limits are skipped; the premium
// flag is computed either way.
func (c *Compiler) Compile(spec string, applyPolicy bool) Result {
	if strings.TrimSpace(spec) == "" {
		return Result{IsValid: true, Aggregations: []Definition{}}
	}

	pieces := strings.Split(spec, ",")
	raw := make([]Definition, 0, len(pieces))
	for _, piece := range pieces {
		def, msg := parsePiece(piece)
		if msg != "" {
			return Result{Message: msg}
		}
		raw = append(raw, def)
	}

	aggs := dedupe(raw)
	result := Result{
		IsValid:      true,
		Aggregations: aggs,
	}
	for _, d := range raw {
		if !c.policy.FreeFields.Contains(d.Field) {
			result.UsesPremiumFeatures = true
			break
		}
	}

	if !applyPolicy {
		return result
	}

	if msg := c.check(raw, aggs); msg != "" {
		return Result{Message: msg, UsesPremiumFeatures: result.UsesPremiumFeatures}
	}
	return result
}

// check applies the policy rules in order and returns the first violation.
func (c *Compiler) check(raw, aggs []Definition) string {
	p := c.policy

	if len(aggs) > p.MaxAggregations {
		return MsgCountExceeded
	}
	if len(aggs) != len(raw) {
		return MsgDuplicate
	}

	var distinct, terms int
	for _, d := range aggs {
		switch d.Type {
		case TypeDistinct:
			distinct++
		case TypeTerm:
			terms++
		}
	}
	if distinct > p.MaxDistinct {
		return MsgDistinctCountExceeded
	}

	for _, d := range aggs {
		if d.Type != TypeTerm {
			continue
		}
		if !p.TermFields.Contains(d.Field) {
			return MsgTermsCountExceeded
		}
		if d.IncludePattern != "" && !p.TermPatterns.Contains(d.IncludePattern) {
			return MsgTermsCountExceeded
		}
		if d.ExcludePattern != "" && !p.TermPatterns.Contains(d.ExcludePattern) {
			return MsgTermsCountExceeded
		}
	}
	if terms > p.MaxTerms {
		return MsgTermsCountExceeded
	}

	for _, d := range aggs {
		if !p.AllowedFields.Contains(d.Field) {
			return MsgDisallowedField
		}
	}
	return ""
}

// parsePiece builds one definition or returns the rejection message.
func parsePiece(piece string) (Definition, string) {
	parts := strings.Split(piece, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Definition{}, "Invalid aggregation: " + piece
	}

	typ := strings.ToLower(strings.TrimSpace(parts[0]))
	field := strings.ToLower(strings.TrimSpace(parts[1]))
	if typ == "" || field == "" {
		return Definition{}, "Invalid type: " + typ + " or field: " + field
	}
	field = rewriteField(field)

	kind, ok := Kinds[Type(typ)]
	if !ok {
		return Definition{}, "Invalid type: " + typ
	}

	var extra string
	if len(parts) == 3 {
		extra = strings.TrimSpace(parts[2])
	}
	return kind.Build(field, extra), ""
}

// rewriteField maps extended data fields onto their shadow field. Data fields
// are always aggregated as numeric; no literal is available to infer from.
func rewriteField(field string) string {
	switch {
	case fields.IsData(field):
		return fields.Index(strings.TrimPrefix(field, fields.DataPrefix), fields.Numeric)
	case fields.IsRef(field):
		return fields.Index(strings.TrimPrefix(field, fields.RefPrefix), fields.Reference)
	default:
		return field
	}
}

// dedupe keeps the first definition of each (Type, Field) pair in input order.
func dedupe(defs []Definition) []Definition {
	seen := make(map[identity]struct{}, len(defs))
	out := make([]Definition, 0, len(defs))
	for _, d := range defs {
		id := d.identity()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, d)
	}
	return out
}
