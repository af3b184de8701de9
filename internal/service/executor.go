package service

import (
	"errors"
	"fmt"
	"sync"
)

var ErrExecutorClosed = errors.New("executor is closed")

// SerialExecutor runs submitted tasks in order per key. Different keys run
// concurrently. A key's goroutine exits once its queue drains.
type SerialExecutor struct {
	mu      sync.Mutex
	lanes   map[string]*lane
	wg      sync.WaitGroup
	closed  bool
	onPanic func(key string, err error)
}

type lane struct {
	tasks []func()
}

func NewSerialExecutor(onPanic func(key string, err error)) *SerialExecutor {
	return &SerialExecutor{
		lanes:   make(map[string]*lane),
		onPanic: onPanic,
	}
}

func (e *SerialExecutor) Submit(key string, task func()) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrExecutorClosed
	}

	if l, ok := e.lanes[key]; ok {
		l.tasks = append(l.tasks, task)
		return nil
	}

	l := &lane{tasks: []func(){task}}
	e.lanes[key] = l
	e.wg.Add(1)
	go e.drain(key, l)
	return nil
}

// Close rejects new tasks and waits for queued ones to finish.
func (e *SerialExecutor) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	e.wg.Wait()
}

func (e *SerialExecutor) drain(key string, l *lane) {
	defer e.wg.Done()

	for {
		e.mu.Lock()
		if len(l.tasks) == 0 {
			delete(e.lanes, key)
			e.mu.Unlock()
			return
		}
		task := l.tasks[0]
		l.tasks[0] = nil
		l.tasks = l.tasks[1:]
		e.mu.Unlock()

		e.run(key, task)
	}
}

func (e *SerialExecutor) run(key string, task func()) {
	defer func() {
		if r := recover(); r != nil && e.onPanic != nil {
			e.onPanic(key, fmt.Errorf("task panicked: %v", r))
		}
	}()
	task()
}
