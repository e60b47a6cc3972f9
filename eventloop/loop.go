package eventloop

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lavenderwm/lavender/util/multiplexer"
)

// Loop is a single-threaded run-to-completion dispatcher. Every posted
// event executes fully before the next one; suspension only ever happens
// between events. Timers are first-class sources that fire on the same
// thread at or after their deadline and may re-arm themselves.
type Loop struct {
	events chan func()
	posts  multiplexer.ManyToOne[func()]
	quit   chan struct{}
}

func New() *Loop {
	events := make(chan func(), 64)
	return &Loop{
		events: events,
		posts:  multiplexer.NewManyToOne(events),
		quit:   make(chan struct{}),
	}
}

// Post queues f for execution on the loop thread.
func (l *Loop) Post(f func()) error {
	return l.posts.Send(f)
}

// Run dispatches until Stop is called. It must be the only goroutine
// executing posted events.
func (l *Loop) Run() {
	for {
		select {
		case f, ok := <-l.events:
			if !ok {
				return
			}
			f()
		case <-l.quit:
			return
		}
	}
}

// Stop ends Run after the event currently executing completes. Stopping
// an already stopped loop is a no-op.
func (l *Loop) Stop() {
	select {
	case <-l.quit:
	default:
		close(l.quit)
	}
}

// DispatchPending drains queued events on the caller's thread without
// blocking. For embedding the loop into an outer dispatcher (the wayland
// display loop) that owns the thread.
func (l *Loop) DispatchPending() {
	for {
		select {
		case f, ok := <-l.events:
			if !ok {
				return
			}
			f()
		default:
			return
		}
	}
}

// Timer is a scheduled callback source. Cancelling removes it from the
// loop before it fires.
type Timer struct {
	cancel chan struct{}
}

func (t *Timer) Cancel() {
	select {
	case <-t.cancel:
	default:
		close(t.cancel)
	}
}

// AddTimer schedules f to run on the loop thread after delay. When f
// returns true the timer re-arms itself with the same delay.
func (l *Loop) AddTimer(delay time.Duration, f func() bool) *Timer {
	t := &Timer{cancel: make(chan struct{})}
	go l.armTimer(t, delay, f)
	return t
}

func (l *Loop) armTimer(t *Timer, delay time.Duration, f func() bool) {
	tick := time.NewTimer(delay)
	defer tick.Stop()

	select {
	case <-tick.C:
		err := l.Post(func() {
			if f() {
				go l.armTimer(t, delay, f)
			}
		})
		if err != nil {
			logrus.WithError(err).Warnln("Dropped timer event")
		}
	case <-t.cancel:
	case <-l.quit:
	}
}
