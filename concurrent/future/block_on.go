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

import "context"

// chanWaker wakes a blocked BlockOn by sending to a buffered channel. Extra wake-ups coalesce.
type chanWaker chan struct{}

// Wake implements Waker.
func (w chanWaker) Wake() error {
	select {
	case w <- struct{}{}:
	default:
	}
	return nil
}

// BlockOn polls f on the calling goroutine until it completes.
func BlockOn(f Future) (interface{}, error) {
	return BlockOnContext(context.Background(), f)
}

// BlockOnContext is like BlockOn but gives up when ctx is done, returning ctx.Err(). The future is
// abandoned in that case.
func BlockOnContext(ctx context.Context, f Future) (interface{}, error) {
	waker := make(chanWaker, 1)
	for {
		result, err := f.Poll(waker)
		if err != nil {
			return nil, err
		}
		if !IsPending(result) {
			return result, nil
		}

		select {
		case <-waker:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
