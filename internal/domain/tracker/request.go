package tracker

import (
	"context"
	"errors"
)

// ErrSuperseded marks a lookup that was overtaken by a newer one.
var ErrSuperseded = errors.New("tracker: superseded by a newer lookup")

// ErrClosed marks a lookup abandoned because the tracker was closed.
var ErrClosed = errors.New("tracker: closed")

// Request is the handle of one asynchronous lookup. It settles exactly once.
type Request struct {
	Query Query

	seq  uint64
	done chan struct{}
	err  error
}

func newRequest(q Query, seq uint64) *Request {
	return &Request{Query: q, seq: seq, done: make(chan struct{})}
}

// Done is closed once the lookup settled, whatever the outcome.
func (r *Request) Done() <-chan struct{} {
	return r.done
}

// Err is the outcome; nil until Done is closed and on success.
func (r *Request) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// Wait blocks until the lookup settles or ctx ends.
func (r *Request) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Request) finish(err error) {
	r.err = err
	close(r.done)
}
