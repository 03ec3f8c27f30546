package matcher

import "errors"

// ErrLookupFailed is returned with NotFound result when storefront could not be queried.
// It tells caller that product absence is not confirmed.
var ErrLookupFailed = errors.New("storefront lookup failed")
