package ui

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// CallStatus is the lifecycle position of one greet call.
type CallStatus int

const (
	CallPending CallStatus = iota
	CallResolved
	CallRejected
	CallDropped // the surface was closed before the result could be applied
)

func (s CallStatus) String() string {
	switch s {
	case CallPending:
		return "pending"
	case CallResolved:
		return "resolved"
	case CallRejected:
		return "rejected"
	case CallDropped:
		return "dropped"
	}
	return "unknown"
}

// Call tracks one submission.
type Call struct {
	ID   string
	Name string // the input value sent to the backend

	done chan struct{}

	mu     sync.Mutex
	status CallStatus
	result string
	err    error
}

func newCall(name string) *Call {
	return &Call{
		ID:   uuid.New().String(),
		Name: name,
		done: make(chan struct{}),
	}
}

// Done is closed once the call leaves the pending state.
func (c *Call) Done() <-chan struct{} {
	return c.done
}

// Status returns the current status.
func (c *Call) Status() CallStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Result returns the greeting or the failure. Both are zero while pending.
func (c *Call) Result() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result, c.err
}

// Wait blocks until the call finishes or ctx is done.
func (c *Call) Wait(ctx context.Context) (string, error) {
	select {
	case <-c.done:
		return c.Result()
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *Call) finish(status CallStatus, result string, err error) {
	c.mu.Lock()
	c.status = status
	c.result = result
	c.err = err
	c.mu.Unlock()
	close(c.done)
}
