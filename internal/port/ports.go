// Package port defines the interfaces (ports) for the pieces the
// service layer does not own. Following hexagonal architecture, these
// ports decouple the service layer from concrete implementations.
package port

import "time"

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// Clock supplies the current time. Remittance files embed the
// generation timestamp, so tests inject a fixed clock to get
// byte-stable output.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a func to the Clock port.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
