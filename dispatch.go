package panzoom

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// Dispatcher routes work onto the UI goroutine. Callbacks coming from the
// engine check OnUIThread and either run directly or Post.
type Dispatcher interface {
	// OnUIThread reports whether the caller is running on the UI goroutine.
	OnUIThread() bool
	// Post queues fn to run on the UI goroutine. It returns false if fn was
	// not queued (nil fn or a closed dispatcher).
	Post(fn func()) bool
}

// Looper is a Dispatcher backed by a FIFO queue that the UI goroutine
// drains, either once per frame with Drain or continuously with Loop.
//
// The goroutine that calls Bind (or Loop) becomes the UI goroutine.
type Looper struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	owner  atomic.Int64
	closed atomic.Bool

	// onPost is called after each successful Post, e.g. to request a frame.
	onPost func()
}

// NewLooper creates a Looper bound to the calling goroutine.
func NewLooper() *Looper {
	l := &Looper{wake: make(chan struct{}, 1)}
	l.Bind()
	return l
}

// Bind makes the calling goroutine the UI goroutine.
func (l *Looper) Bind() {
	l.owner.Store(goroutineID())
}

// SetWakeFunc registers fn to be called after every successful Post. Hosts
// driven by a frame loop use it to schedule a frame. Call before the looper
// is shared.
func (l *Looper) SetWakeFunc(fn func()) {
	l.onPost = fn
}

// OnUIThread implements Dispatcher.
func (l *Looper) OnUIThread() bool {
	return l.owner.Load() == goroutineID()
}

// Post implements Dispatcher. Safe to call from any goroutine.
func (l *Looper) Post(fn func()) bool {
	if fn == nil || l.closed.Load() {
		return false
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	if l.onPost != nil {
		l.onPost()
	}
	return true
}

// Pending returns the number of queued callbacks.
func (l *Looper) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Drain runs every queued callback in FIFO order on the calling goroutine
// and returns how many ran. Callbacks posted while draining run on the next
// Drain.
func (l *Looper) Drain() int {
	l.mu.Lock()
	callbacks := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	return len(callbacks)
}

// Loop binds the calling goroutine and runs posted callbacks until ctx is
// done or the looper is closed. Remaining callbacks are drained before
// returning.
func (l *Looper) Loop(ctx context.Context) error {
	l.Bind()
	for {
		l.Drain()
		if l.closed.Load() {
			return nil
		}
		select {
		case <-ctx.Done():
			l.Drain()
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Close stops accepting new callbacks and wakes a running Loop.
func (l *Looper) Close() {
	if l.closed.Swap(true) {
		return
	}
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// goroutineID parses the current goroutine's id from its stack header
// ("goroutine 18 [running]:"). Returns -1 if the header cannot be parsed.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return -1
	}
	return id
}
