package workflow

import "sync"

// loop serializes all workflow state mutation onto a single goroutine,
// the workflow's coordination context.
type loop struct {
	ops      chan func()
	done     chan struct{}
	stopOnce sync.Once
}

func newLoop() *loop {
	l := &loop{
		ops:  make(chan func()),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *loop) run() {
	for {
		select {
		case op := <-l.ops:
			op()
		case <-l.done:
			return
		}
	}
}

// post schedules op on the coordination goroutine without waiting for it.
// Ops posted after stop are dropped.
func (l *loop) post(op func()) {
	select {
	case l.ops <- op:
	case <-l.done:
	}
}

// call runs op on the coordination goroutine and waits for it to finish.
// After stop, call returns without running op.
func (l *loop) call(op func()) {
	ran := make(chan struct{})
	select {
	case l.ops <- func() { op(); close(ran) }:
	case <-l.done:
		return
	}
	select {
	case <-ran:
	case <-l.done:
	}
}

func (l *loop) stop() {
	l.stopOnce.Do(func() { close(l.done) })
}
