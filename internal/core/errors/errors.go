package errors

const (
	HttpInternalError           = "internal_error"
	HttpInvalidJsonError        = "invalid_json"
	HttpInvalidQueryError       = "invalid_query"
	HttpInvalidAggregationError = "invalid_aggregation"
	HttpInvalidFilterError      = "invalid_filter"
	HttpNotFoundError           = "not_found"
	HttpDuplicateFilterError    = "duplicate_filter"
)

// ErrorResponse is the error response body for all API errors.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
