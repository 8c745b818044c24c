package lifecycle

import "time"

// DefaultTimeout bounds graceful start/stop work during process lifecycle
// transitions.
const DefaultTimeout = 10 * time.Second
