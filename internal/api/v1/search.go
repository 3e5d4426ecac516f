package v1

// PlanRequest is the body of POST /v1/search/plan.
type PlanRequest struct {
	Query        string `json:"query"`
	Aggregations string `json:"aggregations"`
}

// Aggregation is one compiled aggregation as sent to the index.
type Aggregation struct {
	Type               string `json:"type"`
	Field              string `json:"field"`
	Key                string `json:"key"`
	DefaultValue       *int   `json:"default_value,omitempty"`
	DefaultValueScript string `json:"default_value_script,omitempty"`
	SortOrder          string `json:"sort_order,omitempty"`
	Include            string `json:"include,omitempty"`
	Exclude            string `json:"exclude,omitempty"`
}

// PlanResponse is the index-ready form of a search request.
type PlanResponse struct {
	ExpandedQuery       string        `json:"expanded_query"`
	Aggregations        []Aggregation `json:"aggregations"`
	UsesPremiumFeatures bool          `json:"uses_premium_features"`
	UsesDynamicFields   bool          `json:"uses_dynamic_fields"`
}

// ValidationResponse reports whether a query or aggregation request is acceptable.
type ValidationResponse struct {
	IsValid             bool   `json:"is_valid"`
	Message             string `json:"message,omitempty"`
	UsesPremiumFeatures bool   `json:"uses_premium_features"`
}

// AggregationValidationRequest is the body of POST /v1/aggregations/validate.
type AggregationValidationRequest struct {
	Aggregations string `json:"aggregations"`
}
