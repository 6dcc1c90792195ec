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

// Package future provides values that may not be available yet.
//
// A Future is polled rather than awaited: Poll either returns the final value or PollResultPending
// after it has arranged for the given Waker to be woken once progress can be made. The model follows
// Rust's futures [0]. Poll must never block; blocking work belongs on an executor and the future
// only observes its completion.
//
// BlockOn drives a Future to completion on the calling goroutine. It is the bridge from code that
// wants a plain value (the CLI, tests) to the deferred values returned by transform hooks and by
// field resolvers.
//
// [0]: https://doc.rust-lang.org/std/future/trait.Future.html
package future

// A Future represents an asynchronous computation.
type Future interface {
	// Poll attempts to resolve the future to a final value.
	//
	//	* (any, err): the future failed with err.
	//	* (PollResultPending, nil): the value is not ready; waker will be woken when the future
	//	  should be polled again.
	//	* (value, nil): the future completed with value.
	//
	// A future that has completed should not be polled again. When Poll is called more than once
	// before completion, only the Waker given to the most recent call is woken.
	Poll(waker Waker) (PollResult, error)
}

// PollFunc adapts a function to Future.
type PollFunc func(waker Waker) (PollResult, error)

// Poll calls f(waker).
func (f PollFunc) Poll(waker Waker) (PollResult, error) {
	return f(waker)
}

var _ Future = PollFunc(nil)

// PollResult is PollResultPending or the value of a completed future.
type PollResult interface{}

type pending struct{}

// PollResultPending is returned by Poll while the value is not ready.
var PollResultPending PollResult = pending{}

// IsPending returns true if result is PollResultPending.
func IsPending(result PollResult) bool {
	_, ok := result.(pending)
	return ok
}

// A Waker is handed to Poll by whoever drives a future. A pending future wakes it when it is worth
// polling again. Wake may be called from any goroutine and more than once.
type Waker interface {
	Wake() error
}

// WakerFunc adapts a function to Waker.
type WakerFunc func() error

// Wake calls f().
func (f WakerFunc) Wake() error {
	return f()
}

type nopWaker struct{}

func (nopWaker) Wake() error { return nil }

// NopWaker ignores wake-ups. It suits futures that are known to complete on the first poll.
var NopWaker Waker = nopWaker{}
