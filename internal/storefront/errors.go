package storefront

import "errors"

var (
	// ErrThrottled is returned when storefront API rejected query because of rate limits.
	ErrThrottled = errors.New("storefront API throttled request")
	// ErrStatusNotOK is returned when http response had status different than 200 OK.
	ErrStatusNotOK = errors.New("response status is not 200 OK")
	// ErrQueryFailed is returned when storefront API returned errors for query.
	ErrQueryFailed = errors.New("storefront query failed")
)
