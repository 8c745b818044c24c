package delivery

import "context"

// Delivery is a long-running inbound surface (HTTP server, worker loop).
// Serve blocks until the surface stops or the context is canceled.
type Delivery interface {
	Serve(ctx context.Context) error
}
