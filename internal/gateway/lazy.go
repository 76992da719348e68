package gateway

import (
	"context"
	"io"
	"sync"
	"time"
)

// LazyClient creates a Google Cloud client on first use. A process without
// credentials can still start; each call reports the dial failure instead.
// A failed dial is retried on the next call.
type LazyClient[T io.Closer] struct {
	mu     sync.Mutex
	dial   func(ctx context.Context) (T, error)
	client T
	ready  bool
}

// NewLazyClient returns a LazyClient that builds its client with dial.
func NewLazyClient[T io.Closer](dial func(ctx context.Context) (T, error)) *LazyClient[T] {
	return &LazyClient[T]{dial: dial}
}

// Get returns the client, dialling it if needed.
func (l *LazyClient[T]) Get(ctx context.Context) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ready {
		return l.client, nil
	}
	client, err := l.dial(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	l.client, l.ready = client, true
	return client, nil
}

// Close closes the client if it was ever dialled.
func (l *LazyClient[T]) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.ready {
		return nil
	}
	l.ready = false
	return l.client.Close()
}

// CallContext bounds a single hosted-service call by timeoutSecs, when positive.
func CallContext(ctx context.Context, timeoutSecs int) (context.Context, context.CancelFunc) {
	if timeoutSecs <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(timeoutSecs)*time.Second)
}
