/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package concurrent

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// WorkerPoolExecutorConfig contains options to configure a WorkerPoolExecutor.
type WorkerPoolExecutorConfig struct {
	// The maximum number of tasks running at the same time (required, must be greater than 0)
	MaxPoolSize uint32

	// The number of submitted tasks that may wait for a worker before Submit blocks. Default to
	// MaxPoolSize.
	QueueSize uint32
}

// Validate verifies config values.
func (config *WorkerPoolExecutorConfig) Validate() error {
	if config.MaxPoolSize == 0 {
		return errors.New(`WorkerPoolExecutor: MaxPoolSize must be a non-zero value which specifies ` +
			`the maximum number of workers to be created by the executor. If you have no idea, try to ` +
			`set the value to uint32(runtime.GOMAXPROCS(-1)).`)
	}
	return nil
}

// States of workerPoolTask
const (
	taskStateQueued int32 = iota
	taskStateRunning
	taskStateCancelled
)

// workerPoolTask implements TaskHandle for Task executed in a WorkerPoolExecutor.
type workerPoolTask struct {
	Task
	state int32
	done  chan struct{}

	// Written once before done is closed.
	result interface{}
	err    error
}

var _ TaskHandle = (*workerPoolTask)(nil)

// Cancel implements TaskHandle.
func (task *workerPoolTask) Cancel() error {
	if !atomic.CompareAndSwapInt32(&task.state, taskStateQueued, taskStateCancelled) {
		return ErrTaskRunning
	}
	task.err = ErrTaskCancelled
	close(task.done)
	return nil
}

// Done implements TaskHandle.
func (task *workerPoolTask) Done() <-chan struct{} {
	return task.done
}

// AwaitResult implements TaskHandle.
func (task *workerPoolTask) AwaitResult(timeout time.Duration) (interface{}, error) {
	if timeout <= 0 {
		<-task.done
		return task.result, task.err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-task.done:
		return task.result, task.err
	case <-timer.C:
		return nil, ErrAwaitTaskResultTimeout
	}
}

// run executes the task unless it was cancelled.
func (task *workerPoolTask) run() {
	if !atomic.CompareAndSwapInt32(&task.state, taskStateQueued, taskStateRunning) {
		return
	}
	defer close(task.done)
	defer func() {
		if r := recover(); r != nil {
			task.result, task.err = nil, fmt.Errorf("task panicked: %v", r)
		}
	}()
	task.result, task.err = task.Task.Run()
}

// WorkerPoolExecutor runs submitted tasks on a fixed number of goroutines. Workers are started on
// creation and exit after Shutdown once the queue drained.
type WorkerPoolExecutor struct {
	// mutex guards shutdown against Submit so no task is sent on a closed queue.
	mutex    sync.RWMutex
	shutdown bool

	queue      chan *workerPoolTask
	workers    sync.WaitGroup
	terminated chan struct{}
}

var _ Executor = (*WorkerPoolExecutor)(nil)

// NewWorkerPoolExecutor creates a WorkerPoolExecutor from given config.
func NewWorkerPoolExecutor(config WorkerPoolExecutorConfig) (*WorkerPoolExecutor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	queueSize := config.QueueSize
	if queueSize == 0 {
		queueSize = config.MaxPoolSize
	}

	executor := &WorkerPoolExecutor{
		queue:      make(chan *workerPoolTask, queueSize),
		terminated: make(chan struct{}),
	}

	executor.workers.Add(int(config.MaxPoolSize))
	for i := uint32(0); i < config.MaxPoolSize; i++ {
		go executor.runWorker()
	}
	go func() {
		executor.workers.Wait()
		close(executor.terminated)
	}()

	return executor, nil
}

func (executor *WorkerPoolExecutor) runWorker() {
	defer executor.workers.Done()
	for task := range executor.queue {
		task.run()
	}
}

// Submit implements Executor. It blocks while the queue is full.
func (executor *WorkerPoolExecutor) Submit(task Task) (TaskHandle, error) {
	executor.mutex.RLock()
	defer executor.mutex.RUnlock()

	if executor.shutdown {
		return nil, ErrExecutorShutdown
	}

	t := &workerPoolTask{
		Task: task,
		done: make(chan struct{}),
	}
	executor.queue <- t
	return t, nil
}

// Shutdown implements Executor.
func (executor *WorkerPoolExecutor) Shutdown() (<-chan struct{}, error) {
	executor.mutex.Lock()
	if !executor.shutdown {
		executor.shutdown = true
		close(executor.queue)
	}
	executor.mutex.Unlock()
	return executor.terminated, nil
}
