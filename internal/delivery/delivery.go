// Package delivery defines the transports the application serves on.
package delivery

import "context"

// Delivery is a long-running server started from main. Implementations
// register their shutdown with the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
