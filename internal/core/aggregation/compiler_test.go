package aggregation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aevon-lab/faultline/internal/core/policy"
)

func newTestCompiler() *Compiler {
	return NewCompiler(policy.Default().Aggregation)
}

func TestCompile_Empty(t *testing.T) {
	c := newTestCompiler()

	for _, spec := range []string{"", "   "} {
		res := c.Compile(spec, true)
		require.True(t, res.IsValid)
		require.Empty(t, res.Message)
		require.False(t, res.UsesPremiumFeatures)
		require.Empty(t, res.Aggregations)
	}
}

func TestCompile_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantMsg string
	}{
		{name: "missing colon", spec: "avg", wantMsg: "Invalid aggregation: avg"},
		{name: "too many parts", spec: "avg:value:1:2", wantMsg: "Invalid aggregation: avg:value:1:2"},
		{name: "trailing comma", spec: "avg:value,", wantMsg: "Invalid aggregation: "},
		{name: "empty field", spec: "avg:", wantMsg: "Invalid type: avg or field: "},
		{name: "empty type", spec: " :value", wantMsg: "Invalid type:  or field: value"},
		{name: "unknown type", spec: "count:value", wantMsg: "Invalid type: count"},
		{name: "second piece bad", spec: "avg:value,median:value", wantMsg: "Invalid type: median"},
	}

	c := newTestCompiler()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := c.Compile(tc.spec, true)
			require.False(t, res.IsValid)
			require.True(t, res.Failed())
			require.Equal(t, tc.wantMsg, res.Message)
			require.Empty(t, res.Aggregations)
		})
	}
}

func TestCompile_FreeFields(t *testing.T) {
	res := newTestCompiler().Compile("avg:value,distinct:stack_id", true)

	require.True(t, res.IsValid)
	require.Empty(t, res.Message)
	require.False(t, res.UsesPremiumFeatures)
	require.Equal(t, []Definition{
		{Type: TypeAvg, Field: "value"},
		{Type: TypeDistinct, Field: "stack_id"},
	}, res.Aggregations)
}

func TestCompile_AllowedButPremium(t *testing.T) {
	res := newTestCompiler().Compile("avg:user.keyword", true)

	require.True(t, res.IsValid)
	require.True(t, res.UsesPremiumFeatures)
	require.Len(t, res.Aggregations, 1)
	require.Equal(t, "avg_user_keyword", res.Aggregations[0].Key())
}

func TestCompile_CaseFolding(t *testing.T) {
	res := newTestCompiler().Compile(" AVG : Value ", true)

	require.True(t, res.IsValid)
	require.Equal(t, []Definition{{Type: TypeAvg, Field: "value"}}, res.Aggregations)
}

func TestCompile_FieldRewrite(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		wantField string
	}{
		{name: "data is always numeric", spec: "sum:data.duration:100", wantField: "idx.duration-n"},
		{name: "data boolean-looking name still numeric", spec: "avg:data.enabled", wantField: "idx.enabled-n"},
		{name: "ref is keyword", spec: "last:ref.session", wantField: "idx.session-r"},
		{name: "case folded before rewrite", spec: "max:DATA.Latency", wantField: "idx.latency-n"},
	}

	c := newTestCompiler()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := c.Compile(tc.spec, false)
			require.True(t, res.IsValid)
			require.True(t, res.UsesPremiumFeatures)
			require.Len(t, res.Aggregations, 1)
			require.Equal(t, tc.wantField, res.Aggregations[0].Field)
		})
	}
}

func TestCompile_DynamicFieldRejectedByAllowList(t *testing.T) {
	c := newTestCompiler()

	res := c.Compile("sum:data.duration:100", true)
	require.False(t, res.IsValid)
	require.Equal(t, MsgDisallowedField, res.Message)
	require.True(t, res.UsesPremiumFeatures)

	raw := c.Compile("sum:data.duration:100", false)
	require.True(t, raw.IsValid)
	require.Equal(t, []Definition{
		{Type: TypeSum, Field: "idx.duration-n", DefaultValue: intPtr(100)},
	}, raw.Aggregations)
	require.Equal(t, "doc['idx.duration-n'].empty ? 100 : doc['idx.duration-n'].value", raw.Aggregations[0].DefaultValueScript())
}

func TestCompile_PolicyRules(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantMsg string
	}{
		{
			name: "count exceeded",
			spec: "avg:value,sum:value,min:value,max:value,last:value," +
				"avg:stack_id,sum:stack_id,min:stack_id,max:stack_id,last:stack_id,avg:user.keyword",
			wantMsg: MsgCountExceeded,
		},
		{
			name: "eleven pieces with one duplicate",
			spec: "avg:value,sum:value,min:value,max:value,last:value," +
				"avg:stack_id,sum:stack_id,min:stack_id,max:stack_id,last:stack_id,avg:value",
			wantMsg: MsgDuplicate,
		},
		{name: "identical duplicates", spec: "avg:value,avg:value", wantMsg: MsgDuplicate},
		{name: "duplicates with different defaults", spec: "sum:value:1,sum:value:2", wantMsg: MsgDuplicate},
		{name: "duplicates after case folding", spec: "avg:value,AVG:VALUE", wantMsg: MsgDuplicate},
		{name: "two distinct", spec: "distinct:value,distinct:stack_id", wantMsg: MsgDistinctCountExceeded},
		{name: "term on non-term field", spec: "term:type", wantMsg: MsgTermsCountExceeded},
		{name: "term with unknown include", spec: "term:is_first_occurrence:x", wantMsg: MsgTermsCountExceeded},
		{name: "term with unknown exclude", spec: "term:is_first_occurrence:-x", wantMsg: MsgTermsCountExceeded},
		{name: "term include pattern is case-sensitive", spec: "term:is_first_occurrence:T", wantMsg: MsgTermsCountExceeded},
		{name: "term exclude pattern is case-sensitive", spec: "term:is_first_occurrence:-F", wantMsg: MsgTermsCountExceeded},
		{name: "disallowed field", spec: "avg:value,avg:error.code", wantMsg: MsgDisallowedField},
		{name: "duplicate wins over distinct", spec: "distinct:value,distinct:value,distinct:stack_id", wantMsg: MsgDuplicate},
		{name: "distinct wins over allow-list", spec: "distinct:value,distinct:other", wantMsg: MsgDistinctCountExceeded},
	}

	c := newTestCompiler()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := c.Compile(tc.spec, true)
			require.False(t, res.IsValid)
			require.Equal(t, tc.wantMsg, res.Message)
		})
	}
}

func TestCompile_TermAccepted(t *testing.T) {
	c := newTestCompiler()

	for _, spec := range []string{
		"term:is_first_occurrence",
		"term:is_first_occurrence:t",
		"term:is_first_occurrence:-f",
	} {
		t.Run(spec, func(t *testing.T) {
			res := c.Compile(spec, true)
			require.True(t, res.IsValid, res.Message)
			require.False(t, res.UsesPremiumFeatures)
		})
	}
}

func TestCompile_MoreThanOneTerm(t *testing.T) {
	p := policy.Default().Aggregation
	p.TermFields = policy.NewFieldSet("is_first_occurrence", "stack_id")
	c := NewCompiler(p)

	res := c.Compile("term:is_first_occurrence:t,term:stack_id", true)
	require.False(t, res.IsValid)
	require.Equal(t, MsgTermsCountExceeded, res.Message)

	p.MaxTerms = 2
	res = NewCompiler(p).Compile("term:is_first_occurrence:t,term:stack_id", true)
	require.True(t, res.IsValid, res.Message)
	require.Len(t, res.Aggregations, 2)
}

func TestCompile_SkipPolicy(t *testing.T) {
	spec := "avg:value,avg:value,distinct:value,distinct:stack_id,term:type,avg:error.code"

	res := newTestCompiler().Compile(spec, false)
	require.True(t, res.IsValid)
	require.Empty(t, res.Message)
	require.True(t, res.UsesPremiumFeatures)
	// duplicates collapse to the first occurrence
	require.Len(t, res.Aggregations, 5)
	require.Equal(t, Definition{Type: TypeAvg, Field: "value"}, res.Aggregations[0])
}

func TestCompile_SubstitutedPolicy(t *testing.T) {
	p := policy.Default().Aggregation
	p.FreeFields = policy.NewFieldSet("value", "user.keyword")
	p.AllowedFields = policy.NewFieldSet("value", "user.keyword", "idx.duration-n")
	c := NewCompiler(p)

	res := c.Compile("avg:user.keyword,sum:data.duration", true)
	require.True(t, res.IsValid, res.Message)
	require.True(t, res.UsesPremiumFeatures)

	res = c.Compile("avg:user.keyword", true)
	require.False(t, res.UsesPremiumFeatures)
}
