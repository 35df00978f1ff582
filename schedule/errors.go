package schedule

import "errors"

// ErrNotSupported is returned by the lifecycle methods this scheduler
// does not implement: the host audio device, not the scheduler itself,
// drives shutdown.
var ErrNotSupported = errors.New("schedule: not supported")
