package client

import "errors"

// ErrConfig is returned when a configuration is malformed: a non-fixed
// external buffer, or an external buffer size that is not a multiple of
// the internal block size.
var ErrConfig = errors.New("client: invalid configuration")

// ErrBadFrameCount is returned (via the bool result, not as an error
// value) when Process is called with a frame count that does not match
// the configured external buffer size; exported for tests that want to
// assert the condition by name.
var ErrBadFrameCount = errors.New("client: frame count mismatch")
