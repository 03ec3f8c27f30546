package syncer

import "errors"

// ErrEmptyCode is returned when single product synchronization is requested without code.
var ErrEmptyCode = errors.New("product code is empty")
