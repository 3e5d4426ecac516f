package policy

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldSet is an immutable set of field names. Sets built by NewFieldSet
// ignore case; sets built by NewExactSet do not.
type FieldSet struct {
	fields map[string]struct{}
	exact  bool
}

// NewFieldSet builds a FieldSet from the given names. Names are trimmed and lower-cased.
func NewFieldSet(names ...string) FieldSet {
	fields := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		fields[name] = struct{}{}
	}
	return FieldSet{fields: fields}
}

// NewExactSet builds a case-sensitive FieldSet. Names are trimmed only.
func NewExactSet(names ...string) FieldSet {
	fields := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		fields[name] = struct{}{}
	}
	return FieldSet{fields: fields, exact: true}
}

// Contains reports whether name is in the set.
func (s FieldSet) Contains(name string) bool {
	if !s.exact {
		name = strings.ToLower(name)
	}
	_, ok := s.fields[name]
	return ok
}

// Len returns the number of names in the set.
func (s FieldSet) Len() int {
	return len(s.fields)
}

// AggregationPolicy holds the cost limits applied to tenant aggregation requests.
type AggregationPolicy struct {
	MaxAggregations int
	MaxDistinct     int
	MaxTerms        int

	// FreeFields never flag premium usage.
	FreeFields FieldSet
	// AllowedFields are the only fields a tenant may aggregate on, regardless of plan.
	AllowedFields FieldSet
	// TermFields and TermPatterns restrict terms bucketing. Patterns match exactly.
	TermFields   FieldSet
	TermPatterns FieldSet
}

// QueryPolicy holds the entitlement rules applied to search filters.
type QueryPolicy struct {
	// FreeFields may be filtered on without a premium entitlement.
	FreeFields FieldSet
}

// Policy is the process-wide, read-only cost and entitlement configuration.
type Policy struct {
	Aggregation AggregationPolicy
	Query       QueryPolicy

	// Fingerprint is the SHA-256 of the policy file, empty for the built-in default.
	Fingerprint string
}

// Default returns the built-in policy.
func Default() Policy {
	return Policy{
		Aggregation: AggregationPolicy{
			MaxAggregations: 10,
			MaxDistinct:     1,
			MaxTerms:        1,
			FreeFields:      NewFieldSet("value", "stack_id", "is_first_occurrence"),
			AllowedFields:   NewFieldSet("value", "stack_id", "user.keyword", "is_first_occurrence"),
			TermFields:      NewFieldSet("is_first_occurrence"),
			TermPatterns:    NewExactSet("f", "t"),
		},
		Query: QueryPolicy{
			FreeFields: NewFieldSet("hidden", "fixed", "type", "reference", "organization", "project", "stack"),
		},
	}
}

// rawPolicy is the on-disk YAML shape. Omitted keys keep their default.
type rawPolicy struct {
	Aggregation struct {
		MaxAggregations *int     `yaml:"max_aggregations"`
		MaxDistinct     *int     `yaml:"max_distinct"`
		MaxTerms        *int     `yaml:"max_terms"`
		FreeFields      []string `yaml:"free_fields"`
		AllowedFields   []string `yaml:"allowed_fields"`
		TermFields      []string `yaml:"term_fields"`
		TermPatterns    []string `yaml:"term_patterns"`
	} `yaml:"aggregation"`
	Query struct {
		FreeFields []string `yaml:"free_fields"`
	} `yaml:"query"`
}

// LoadFile reads a YAML policy override from path and merges it over Default.
func LoadFile(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("reading policy file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML policy document and merges it over Default.
func Parse(data []byte) (Policy, error) {
	var raw rawPolicy
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Policy{}, fmt.Errorf("parsing policy: %w", err)
	}

	p := Default()
	agg := raw.Aggregation
	if agg.MaxAggregations != nil {
		p.Aggregation.MaxAggregations = *agg.MaxAggregations
	}
	if agg.MaxDistinct != nil {
		p.Aggregation.MaxDistinct = *agg.MaxDistinct
	}
	if agg.MaxTerms != nil {
		p.Aggregation.MaxTerms = *agg.MaxTerms
	}
	if agg.FreeFields != nil {
		p.Aggregation.FreeFields = NewFieldSet(agg.FreeFields...)
	}
	if agg.AllowedFields != nil {
		p.Aggregation.AllowedFields = NewFieldSet(agg.AllowedFields...)
	}
	if agg.TermFields != nil {
		p.Aggregation.TermFields = NewFieldSet(agg.TermFields...)
	}
	if agg.TermPatterns != nil {
		p.Aggregation.TermPatterns = NewExactSet(agg.TermPatterns...)
	}
	if raw.Query.FreeFields != nil {
		p.Query.FreeFields = NewFieldSet(raw.Query.FreeFields...)
	}

	if err := p.Validate(); err != nil {
		return Policy{}, err
	}

	p.Fingerprint = fmt.Sprintf("%x", sha256.Sum256(data))
	return p, nil
}

// Validate checks that the limits are usable.
func (p Policy) Validate() error {
	if p.Aggregation.MaxAggregations <= 0 {
		return fmt.Errorf("aggregation.max_aggregations must be > 0")
	}
	if p.Aggregation.MaxDistinct < 0 {
		return fmt.Errorf("aggregation.max_distinct must be >= 0")
	}
	if p.Aggregation.MaxTerms < 0 {
		return fmt.Errorf("aggregation.max_terms must be >= 0")
	}
	return nil
}
