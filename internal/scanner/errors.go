package scanner

import "errors"

// ErrScanRunning is returned when scan is requested while another scan is running.
var ErrScanRunning = errors.New("catalog scan already running")
