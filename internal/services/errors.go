// Package services defines the business logic for product search, query
// suggestions and search administration. This file centralizes service-level
// error values so that they can be consistently returned by service methods
// and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

// Parameter validation errors. Handlers map these to 400.
var (
	// ErrInvalidPage is returned when page is below 1.
	ErrInvalidPage = errors.New("page must be >= 1")

	// ErrPageTooLarge is returned when the page offset would overflow.
	ErrPageTooLarge = errors.New("page is too large")

	// ErrNegativePrice is returned when minPrice or maxPrice is negative.
	ErrNegativePrice = errors.New("prices must be >= 0")

	// ErrInvalidPriceRange is returned when minPrice exceeds maxPrice.
	ErrInvalidPriceRange = errors.New("minPrice must not exceed maxPrice")

	// ErrInvalidSort is returned for an unknown sort key.
	ErrInvalidSort = errors.New("sort must be one of: price_asc, price_desc, name_asc, name_desc, popularity, newest")
)

// Upstream errors. Handlers map these to 500.
var (
	// ErrSearchFailed wraps a failed product fetch.
	ErrSearchFailed = errors.New("search failed")

	// ErrSuggestFailed wraps a failed suggestion candidate fetch.
	ErrSuggestFailed = errors.New("suggestions failed")
)

// IsValidation reports whether err is a parameter validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidPage) ||
		errors.Is(err, ErrPageTooLarge) ||
		errors.Is(err, ErrNegativePrice) ||
		errors.Is(err, ErrInvalidPriceRange) ||
		errors.Is(err, ErrInvalidSort)
}
