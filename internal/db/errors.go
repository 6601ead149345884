package db

import "errors"

// ErrNotConnected is returned by read operations when the backing
// connection was never established (e.g. dev mode, or a failed dial that
// the caller chose to run in-memory-only rather than fatal on).
var ErrNotConnected = errors.New("db: not connected")
