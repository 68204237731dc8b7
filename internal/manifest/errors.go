package manifest

import "errors"

// Sentinel errors distinguishing the failure classes of a manifest run.
var (
	ErrMissingDirectory = errors.New("category directory not found")
	ErrScanFailure      = errors.New("category directory scan failed")
	ErrOutputWrite      = errors.New("manifest output write failed")
	ErrInvalidLayout    = errors.New("invalid manifest layout")
)
