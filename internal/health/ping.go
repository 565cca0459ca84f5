package health

import "context"

// HealthPinger is implemented by dependencies that can probe their own
// connectivity, like the SQL store backends pinging their database handle.
// HealthPing returns nil when the dependency answered within the caller's
// deadline.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}
