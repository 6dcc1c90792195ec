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

package graphql

// thunkState is the evaluation state of a thunk.
type thunkState uint8

// Enumeration of thunkState
const (
	thunkPending thunkState = iota
	thunkRunning
	thunkDone
)

// thunk is a lazily evaluated, memoized computation. The first call to get evaluates the function
// and caches its result (including the error) for later calls. A call to get from within the
// evaluation itself returns the zero value with a nil error so a type may refer to itself while its
// fields are being defined.
//
// thunk is not safe for concurrent evaluation. Types are built on a single goroutine and get is
// forced for every type reachable from a schema in NewSchema (or Finalize); after that point the
// cached result is only read.
type thunk[T any] struct {
	state  thunkState
	fn     func() (T, error)
	result T
	err    error
}

func newThunk[T any](fn func() (T, error)) *thunk[T] {
	return &thunk[T]{fn: fn}
}

func (t *thunk[T]) get() (T, error) {
	switch t.state {
	case thunkDone:
		return t.result, t.err
	case thunkRunning:
		var zero T
		return zero, nil
	}

	t.state = thunkRunning
	t.result, t.err = t.fn()
	// Release the closure so everything it captures can be garbage collected.
	t.fn = nil
	t.state = thunkDone
	return t.result, t.err
}

// evaluated returns true if the thunk has completed its evaluation.
func (t *thunk[T]) evaluated() bool {
	return t.state == thunkDone
}

// typeWithLazyFields is implemented by types whose fields are defined by a thunk.
type typeWithLazyFields interface {
	Type

	// resolveFields forces the field thunk and returns the error it produced.
	resolveFields() error
}
