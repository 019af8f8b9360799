// Package async provides one-shot futures for work that completes off the
// caller's goroutine, such as decoding a dropped image.
package async

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPanic wraps a panic raised by the asynchronous function
var ErrPanic = errors.New("async: function panicked")

// Future is the result of an asynchronous computation. It completes exactly once.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}

	mu        sync.Mutex
	callbacks []func(U, error)
}

// Await blocks until the computation completes
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// IsComplete reports completion without blocking
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// OnComplete registers fn to run once with the result. If the future already
// completed fn runs immediately on the caller's goroutine; otherwise it runs on
// the goroutine that completed the future.
func (f *Future[U]) OnComplete(fn func(U, error)) {
	f.mu.Lock()
	if !f.IsComplete() {
		f.callbacks = append(f.callbacks, fn)
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	fn(f.result, f.err)
}

func (f *Future[U]) complete(res U, err error) {
	f.mu.Lock()
	f.result = res
	f.err = err
	close(f.done)
	callbacks := f.callbacks
	f.callbacks = nil
	f.mu.Unlock()

	for _, cb := range callbacks {
		cb(res, err)
	}
}

// Async runs fn on a new goroutine and returns its Future. A context that is
// already cancelled completes the future with ctx.Err() without calling fn.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		var zero U
		select {
		case <-ctx.Done():
			f.complete(zero, ctx.Err())
			return
		default:
		}

		res, err := safeCall(ctx, param, fn)
		f.complete(res, err)
	}()

	return f
}

func safeCall[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) (res U, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero U
			res = zero
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn(ctx, param)
}
