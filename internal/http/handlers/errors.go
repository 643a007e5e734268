// Package handlers defines the error codes carried by every API error
// response.
//
// Codes are lowercase snake_case and stable; clients branch on them rather
// than on the message text. Generic codes mirror HTTP status semantics,
// domain codes name the operation that failed.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "bad_request",
//	  "message": "minPrice must not exceed maxPrice"
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeSearchFailed  = "search_failed"
	ErrCodeSuggestFailed = "suggestions_failed"
	ErrCodePopularFailed = "popular_failed"
	ErrCodeStatsFailed   = "stats_failed"
)
