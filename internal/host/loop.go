package host

import (
	"sync"

	"go.uber.org/zap"
)

// Loop is a single-goroutine UI execution context. Tasks run one at a time in
// submission order. A panicking task is logged and the loop keeps going.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	logger *zap.Logger

	closeOnce sync.Once
	stopping  bool
	closed    chan struct{}
}

// NewLoop starts a UI loop.
func NewLoop(logger *zap.Logger) *Loop {
	l := &Loop{
		wake:   make(chan struct{}, 1),
		closed: make(chan struct{}),
		logger: logger.With(zap.String("component", "ui-loop")),
	}
	go l.run()
	return l
}

// RunOnUI enqueues fn. It never blocks. Tasks submitted after Close are dropped.
func (l *Loop) RunOnUI(fn func()) {
	l.mu.Lock()
	if l.stopping {
		l.mu.Unlock()
		l.logger.Warn("UI loop closed, dropping task")
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every task submitted before the call has run. It must not
// be called from a task running on the loop.
func (l *Loop) Flush() {
	done := make(chan struct{})
	l.mu.Lock()
	if l.stopping {
		l.mu.Unlock()
		<-l.closed
		return
	}
	l.queue = append(l.queue, func() { close(done) })
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	<-done
}

// Close runs the remaining tasks and stops the loop.
// Safe to call multiple times.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.mu.Lock()
		l.stopping = true
		l.mu.Unlock()

		select {
		case l.wake <- struct{}{}:
		default:
		}
		<-l.closed
	})
}

// IsClosed returns whether the loop has stopped.
func (l *Loop) IsClosed() bool {
	select {
	case <-l.closed:
		return true
	default:
		return false
	}
}

func (l *Loop) run() {
	defer close(l.closed)
	for range l.wake {
		for {
			l.mu.Lock()
			if len(l.queue) == 0 {
				stop := l.stopping
				l.mu.Unlock()
				if stop {
					return
				}
				break
			}
			fn := l.queue[0]
			l.queue[0] = nil
			l.queue = l.queue[1:]
			l.mu.Unlock()

			l.runTask(fn)
		}
	}
}

func (l *Loop) runTask(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("UI task panicked", zap.Any("panic", r))
		}
	}()
	fn()
}
