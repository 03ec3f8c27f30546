package handler

import "errors"

// ErrScanNotRunning is returned when cancel-scan command is received while no scan is running.
var ErrScanNotRunning = errors.New("no catalog scan is running")
