// Package mq provides a broker-agnostic publish API for domain
// notifications. The API server only produces; consumers (mailers,
// dashboards) live in separate deployments.
package mq

import "context"

// Backend defines the broker operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// Bus wraps a backend with a stable API.
type Bus struct {
	backend Backend
}

// New constructs a Bus for the provided backend.
func New(backend Backend) *Bus {
	return &Bus{backend: backend}
}

// Publish sends a message to the named channel and returns the broker's
// message id.
func (b *Bus) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	return b.backend.Publish(ctx, channel, data, attrs)
}

// Close closes the underlying backend.
func (b *Bus) Close() error {
	return b.backend.Close()
}
