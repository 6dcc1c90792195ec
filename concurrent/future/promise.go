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

import "sync"

// Promise is a Future completed by a call to Resolve or Reject, usually from another goroutine. It
// is safe for concurrent use.
type Promise struct {
	mutex sync.Mutex
	done  bool
	value interface{}
	err   error
	waker Waker
}

var _ Future = (*Promise)(nil)

// NewPromise creates a pending Promise.
func NewPromise() *Promise {
	return &Promise{}
}

// Poll implements Future.
func (p *Promise) Poll(waker Waker) (PollResult, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.done {
		return p.value, p.err
	}
	p.waker = waker
	return PollResultPending, nil
}

// Resolve completes the promise with value. Only the first of Resolve and Reject takes effect; it
// returns false for the others.
func (p *Promise) Resolve(value interface{}) bool {
	return p.complete(value, nil)
}

// Reject completes the promise with err.
func (p *Promise) Reject(err error) bool {
	if err == nil {
		err = ErrNilError
	}
	return p.complete(nil, err)
}

func (p *Promise) complete(value interface{}, err error) bool {
	p.mutex.Lock()
	if p.done {
		p.mutex.Unlock()
		return false
	}
	p.done = true
	p.value = value
	p.err = err
	waker := p.waker
	p.waker = nil
	p.mutex.Unlock()

	if waker != nil {
		waker.Wake()
	}
	return true
}
