// Package lifecycle holds timing constants shared by start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds start hooks, graceful shutdowns and detached writes.
const DefaultTimeout = 10 * time.Second
