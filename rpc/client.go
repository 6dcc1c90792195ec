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

	"github.com/botobag/thriftql/concurrent/future"
)

// Client performs remote calls. service is the configured service name and method the function
// name. Call must not block; the response is delivered through the returned Future.
type Client interface {
	Call(ctx context.Context, service string, method string, request interface{}) future.Future
}

// ClientFunc is an adapter to allow the use of ordinary functions as Client.
type ClientFunc func(ctx context.Context, service string, method string, request interface{}) future.Future

// Call calls f(ctx, service, method, request).
func (f ClientFunc) Call(ctx context.Context, service string, method string, request interface{}) future.Future {
	return f(ctx, service, method, request)
}

// Invoker performs a remote call and blocks until the response arrives. Wrap it in an AsyncClient to
// get a Client.
type Invoker interface {
	Invoke(ctx context.Context, service string, method string, request interface{}) (interface{}, error)
}

// InvokerFunc is an adapter to allow the use of ordinary functions as Invoker.
type InvokerFunc func(ctx context.Context, service string, method string, request interface{}) (interface{}, error)

// Invoke calls f(ctx, service, method, request).
func (f InvokerFunc) Invoke(ctx context.Context, service string, method string, request interface{}) (interface{}, error) {
	return f(ctx, service, method, request)
}

var (
	_ Client  = ClientFunc(nil)
	_ Invoker = InvokerFunc(nil)
)

// Route tells a ClientFactory where a service lives.
type Route struct {
	// Service is the configured service name.
	Service string

	// File is the IDL document that declares the service.
	File string

	// Servers lists the addresses of the service.
	Servers []string
}

// ClientFactory creates the Client that serves the given routes.
type ClientFactory interface {
	NewClient(routes []Route) (Client, error)
}

// ClientFactoryFunc is an adapter to allow the use of ordinary functions as ClientFactory.
type ClientFactoryFunc func(routes []Route) (Client, error)

// NewClient calls f(routes).
func (f ClientFactoryFunc) NewClient(routes []Route) (Client, error) {
	return f(routes)
}

// FactoryOf returns a ClientFactory that ignores the routes and always returns client.
func FactoryOf(client Client) ClientFactory {
	return ClientFactoryFunc(func([]Route) (Client, error) {
		return client, nil
	})
}

// ErrNoClient is the failure of every call made through UnavailableClient.
var ErrNoClient = errors.New("rpc: no client is configured")

// UnavailableClient fails every call with ErrNoClient. It stands in when a schema is built only to
// be printed or checked.
var UnavailableClient Client = ClientFunc(
	func(ctx context.Context, service string, method string, request interface{}) future.Future {
		return future.Err(fmt.Errorf("%w: cannot call %s.%s", ErrNoClient, service, method))
	})
