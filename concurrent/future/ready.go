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

package future

import "errors"

// ErrNilError is the failure of a future created by Err(nil).
var ErrNilError = errors.New("future: Err called with nil error")

type readyFuture struct {
	value interface{}
}

// Poll implements Future.
func (f readyFuture) Poll(Waker) (PollResult, error) {
	return f.value, nil
}

// Ready creates a Future that is immediately ready with value.
func Ready(value interface{}) Future {
	return readyFuture{value}
}

type errFuture struct {
	err error
}

// Poll implements Future.
func (f errFuture) Poll(Waker) (PollResult, error) {
	return nil, f.err
}

// Err creates a Future that immediately fails with err.
func Err(err error) Future {
	if err == nil {
		err = ErrNilError
	}
	return errFuture{err}
}
