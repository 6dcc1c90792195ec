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

package rpc

import (
	"context"
	"fmt"

	"github.com/botobag/thriftql/concurrent"
	"github.com/botobag/thriftql/concurrent/future"
)

// AsyncClient runs the blocking calls of an Invoker on an Executor and delivers their results as
// futures.
type AsyncClient struct {
	invoker  Invoker
	executor concurrent.Executor
}

var _ Client = (*AsyncClient)(nil)

// NewAsyncClient creates an AsyncClient. The executor is not owned by the client; shut it down when
// the client is no longer used.
func NewAsyncClient(invoker Invoker, executor concurrent.Executor) *AsyncClient {
	return &AsyncClient{
		invoker:  invoker,
		executor: executor,
	}
}

// Call implements Client. A call whose context is done before it gets to run fails with the
// context's error without reaching the invoker.
func (client *AsyncClient) Call(ctx context.Context, service string, method string, request interface{}) future.Future {
	if ctx == nil {
		ctx = context.Background()
	}

	promise := future.NewPromise()
	_, err := client.executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
		defer func() {
			if r := recover(); r != nil {
				promise.Reject(fmt.Errorf("rpc: call to %s.%s panicked: %v", service, method, r))
				panic(r)
			}
		}()

		if err := ctx.Err(); err != nil {
			promise.Reject(err)
			return nil, err
		}

		response, err := client.invoker.Invoke(ctx, service, method, request)
		if err != nil {
			promise.Reject(err)
		} else {
			promise.Resolve(response)
		}
		return response, err
	}))
	if err != nil {
		return future.Err(err)
	}

	return promise
}
