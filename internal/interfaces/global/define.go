// Package global
package global

import "context"

type Callable interface {
	Invoke(ctx context.Context) error
}

// CallableFunc adapts a plain function to the Callable interface.
type CallableFunc func(ctx context.Context) error

func (f CallableFunc) Invoke(ctx context.Context) error { return f(ctx) }
