package utils

import "errors"

// Store failure taxonomy. Controllers map these to HTTP statuses at the
// boundary; handlers below the boundary return sentinels so callers can tell
// "gone" from "decided" from "retry later" without parsing strings.
var (
	ErrNotFound         = errors.New("record not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrAlreadyDecided   = errors.New("course already decided")
	ErrTransient        = errors.New("temporary store failure")
)
