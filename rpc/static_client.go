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
	"errors"
	"fmt"
	"sync"

	"github.com/botobag/thriftql/concurrent/future"
)

// ErrNoHandler is returned for calls to a method that StaticClient has no handler for.
var ErrNoHandler = errors.New("rpc: no handler for method")

// RecordedCall is a call received by a StaticClient.
type RecordedCall struct {
	Service string
	Method  string
	Request interface{}
}

// StaticClient answers calls from handlers registered in process. It serves tests and canned
// fixtures. It is safe for concurrent use.
type StaticClient struct {
	mutex    sync.Mutex
	handlers map[string]map[string]Invoker
	calls    []RecordedCall
}

var (
	_ Client  = (*StaticClient)(nil)
	_ Invoker = (*StaticClient)(nil)
)

// NewStaticClient creates a StaticClient that returns the given responses. responses maps service
// name to method name to response.
func NewStaticClient(responses map[string]map[string]interface{}) *StaticClient {
	client := &StaticClient{
		handlers: map[string]map[string]Invoker{},
	}
	for service, methods := range responses {
		for method, response := range methods {
			client.Respond(service, method, response)
		}
	}
	return client
}

// Handle registers handler for service.method, replacing any previous one.
func (client *StaticClient) Handle(service string, method string, handler Invoker) *StaticClient {
	client.mutex.Lock()
	defer client.mutex.Unlock()
	methods, exists := client.handlers[service]
	if !exists {
		methods = map[string]Invoker{}
		client.handlers[service] = methods
	}
	methods[method] = handler
	return client
}

// Respond registers a handler for service.method that always returns response.
func (client *StaticClient) Respond(service string, method string, response interface{}) *StaticClient {
	return client.Handle(service, method, InvokerFunc(
		func(context.Context, string, string, interface{}) (interface{}, error) {
			return response, nil
		}))
}

// Invoke implements Invoker.
func (client *StaticClient) Invoke(ctx context.Context, service string, method string, request interface{}) (interface{}, error) {
	client.mutex.Lock()
	client.calls = append(client.calls, RecordedCall{
		Service: service,
		Method:  method,
		Request: request,
	})
	handler := client.handlers[service][method]
	client.mutex.Unlock()

	if handler == nil {
		return nil, fmt.Errorf("%w %s.%s", ErrNoHandler, service, method)
	}
	return handler.Invoke(ctx, service, method, request)
}

// Call implements Client. The handler runs on the calling goroutine.
func (client *StaticClient) Call(ctx context.Context, service string, method string, request interface{}) future.Future {
	response, err := client.Invoke(ctx, service, method, request)
	if err != nil {
		return future.Err(err)
	}
	return future.Ready(response)
}

// Calls returns the calls received so far in order.
func (client *StaticClient) Calls() []RecordedCall {
	client.mutex.Lock()
	defer client.mutex.Unlock()
	calls := make([]RecordedCall, len(client.calls))
	copy(calls, client.calls)
	return calls
}
