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

package future_test

import (
	"context"
	"errors"
	"time"

	"github.com/botobag/thriftql/concurrent/future"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// pendingFor returns a future that stays pending for the first n polls.
func pendingFor(n int, value interface{}) future.Future {
	return future.PollFunc(func(waker future.Waker) (future.PollResult, error) {
		if n > 0 {
			n--
			waker.Wake()
			return future.PollResultPending, nil
		}
		return value, nil
	})
}

var _ = Describe("Ready", func() {
	It("is ready with a value", func() {
		Expect(future.Ready(1).Poll(nil)).Should(Equal(1))
	})

	It("fails with an error", func() {
		testErr := errors.New("ready with an error")
		_, err := future.Err(testErr).Poll(nil)
		Expect(err).Should(MatchError(testErr))

		_, err = future.Err(nil).Poll(nil)
		Expect(err).Should(MatchError(future.ErrNilError))
	})

	It("lifts plain values", func() {
		f := future.Ready(2)
		Expect(future.Lift(f)).Should(BeIdenticalTo(f))
		Expect(future.Lift(3).Poll(future.NopWaker)).Should(Equal(3))
	})
})

var _ = Describe("Join", func() {
	It("completes with no futures", func() {
		Expect(future.BlockOn(future.Join())).Should(BeEmpty())
	})

	It("collects values in order", func() {
		f := future.Join(
			pendingFor(2, 1),
			future.Ready(2),
			pendingFor(1, 3),
		)
		Expect(future.BlockOn(f)).Should(Equal([]interface{}{1, 2, 3}))
	})

	It("fails if one of the futures fails", func() {
		expectErr := errors.New("an error value")
		f := future.Join(
			future.Ready(1),
			future.Err(expectErr),
			future.Ready(3),
		)
		_, err := future.BlockOn(f)
		Expect(err).Should(MatchError(expectErr))
	})
})

var _ = Describe("Then", func() {
	It("maps the value", func() {
		f := future.Then(pendingFor(1, 20), func(value interface{}) (interface{}, error) {
			return value.(int) + 1, nil
		})
		Expect(future.BlockOn(f)).Should(Equal(21))
	})

	It("continues with a returned future", func() {
		f := future.Then(future.Ready("a"), func(value interface{}) (interface{}, error) {
			return pendingFor(2, value.(string)+"b"), nil
		})
		Expect(future.BlockOn(f)).Should(Equal("ab"))
	})

	It("does not call the function on error", func() {
		called := false
		expectErr := errors.New("failed")
		f := future.Then(future.Err(expectErr), func(value interface{}) (interface{}, error) {
			called = true
			return value, nil
		})
		_, err := future.BlockOn(f)
		Expect(err).Should(MatchError(expectErr))
		Expect(called).Should(BeFalse())
	})
})

var _ = Describe("Promise", func() {
	It("is completed from another goroutine", func() {
		p := future.NewPromise()
		Expect(p.Poll(future.NopWaker)).Should(Equal(future.PollResultPending))

		go func() {
			time.Sleep(10 * time.Millisecond)
			p.Resolve("done")
		}()
		Expect(future.BlockOn(p)).Should(Equal("done"))
	})

	It("keeps the first completion", func() {
		p := future.NewPromise()
		Expect(p.Reject(errors.New("first"))).Should(BeTrue())
		Expect(p.Resolve(1)).Should(BeFalse())
		_, err := p.Poll(future.NopWaker)
		Expect(err).Should(MatchError("first"))
	})

	It("wakes the latest waker", func() {
		p := future.NewPromise()
		woken := 0
		p.Poll(future.WakerFunc(func() error {
			woken += 10
			return nil
		}))
		p.Poll(future.WakerFunc(func() error {
			woken++
			return nil
		}))
		p.Resolve(nil)
		Expect(woken).Should(Equal(1))
	})
})

var _ = Describe("BlockOnContext", func() {
	It("gives up when the context is done", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := future.BlockOnContext(ctx, future.NewPromise())
		Expect(err).Should(Equal(context.DeadlineExceeded))
	})
})
