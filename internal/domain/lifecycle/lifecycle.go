// Package lifecycle holds shared lifecycle settings for fx hooks.
package lifecycle

import "time"

// DefaultTimeout bounds graceful start and stop of long-lived components.
const DefaultTimeout = 10 * time.Second
