// Package delivery contains the servers exposed by the binaries.
package delivery

import "context"

// Delivery is a server started by fx and run until shutdown.
type Delivery interface {
	Serve(ctx context.Context) error
}
