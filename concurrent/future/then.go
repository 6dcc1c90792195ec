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

// ThenFunc computes the next value from the value of a completed future. It may return a Future to
// continue asynchronously.
type ThenFunc func(value interface{}) (interface{}, error)

type then struct {
	input Future
	f     ThenFunc

	// next is set once input completed and f returned a Future.
	next Future
}

// Poll implements Future.
func (t *then) Poll(waker Waker) (PollResult, error) {
	if t.next != nil {
		return t.next.Poll(waker)
	}

	result, err := t.input.Poll(waker)
	if err != nil {
		return nil, err
	}
	if IsPending(result) {
		return PollResultPending, nil
	}

	value, err := t.f(result)
	if err != nil {
		return nil, err
	}
	if next, ok := value.(Future); ok {
		t.next = next
		return next.Poll(waker)
	}
	return value, nil
}

// Then creates a Future which runs f with the value of input once it completes. Errors from input
// are passed through without calling f.
func Then(input Future, f ThenFunc) Future {
	return &then{
		input: input,
		f:     f,
	}
}

// Lift returns value if it is already a Future and wraps it with Ready otherwise.
func Lift(value interface{}) Future {
	if f, ok := value.(Future); ok {
		return f
	}
	return Ready(value)
}
