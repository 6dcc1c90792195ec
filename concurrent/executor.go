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

// Package concurrent runs blocking work on a bounded set of goroutines. The rpc package uses it to
// turn blocking remote calls into futures.
package concurrent

import (
	"errors"
	"time"
)

// Task represents an instance that can be executed by an Executor.
type Task interface {
	// Run performs the work. The return values are delivered to the TaskHandle of the task.
	Run() (interface{}, error)
}

// The TaskFunc type is an adapter to allow the use of ordinary functions as a Task.
type TaskFunc func() (interface{}, error)

var _ Task = (TaskFunc)(nil)

// Run implements Task. It calls f().
func (f TaskFunc) Run() (interface{}, error) {
	return f()
}

// Errors returned from Executor and TaskHandle.
var (
	// ErrTaskCancelled indicates the task was cancelled before it started.
	ErrTaskCancelled = errors.New("task was cancelled")

	// ErrTaskRunning is returned by Cancel when the task has already started or completed.
	ErrTaskRunning = errors.New("task has already started")

	// ErrAwaitTaskResultTimeout indicates AwaitResult ran out of time.
	ErrAwaitTaskResultTimeout = errors.New("timeout while waiting task result")

	// ErrExecutorShutdown is returned by Submit after Shutdown was called.
	ErrExecutorShutdown = errors.New("executor has been shut down")
)

// TaskHandle tracks progress of a Task and can be used to cancel execution and/or wait for
// completion.
type TaskHandle interface {
	// Cancel prevents the task from running if it has not started yet.
	Cancel() error

	// Done returns a channel that is closed when the task completed or was cancelled.
	Done() <-chan struct{}

	// AwaitResult blocks until the task completed or timeout elapsed. A non-positive timeout waits
	// without limit. It returns (nil, ErrTaskCancelled) for a cancelled task and (nil,
	// ErrAwaitTaskResultTimeout) on timeout; otherwise the values returned from Run.
	AwaitResult(timeout time.Duration) (interface{}, error)
}

// Executor provides interfaces to manage and to execute tasks.
type Executor interface {
	// Shutdown stops accepting new tasks. Previously submitted tasks are still executed. The returned
	// channel is closed once all of them have completed. Calling Shutdown more than once is allowed.
	Shutdown() (terminated <-chan struct{}, err error)

	// Submit arranges task for execution. The actual execution may occur sometime later.
	Submit(task Task) (TaskHandle, error)
}
