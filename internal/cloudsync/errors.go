package cloudsync

import "errors"

// ErrNotConfigured means no sync endpoint was configured. Treated as a
// silent no-op by callers, not a failure.
var ErrNotConfigured = errors.New("cloudsync: not configured")

// ErrNotFound means the remote store has no saved settings yet.
var ErrNotFound = errors.New("cloudsync: settings not found")
