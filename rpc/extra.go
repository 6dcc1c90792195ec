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

// Package rpc defines how compiled operations reach remote services: the Client that performs a
// call, the Hooks that transform requests and responses around it and the Extra that describes the
// call in flight.
package rpc

import (
	"context"

	"github.com/google/uuid"
)

// Extra describes the call that a hook runs for.
type Extra struct {
	// Context is the context of the query that triggered the call.
	Context context.Context

	// Service is the name under which the service was configured.
	Service string

	// Method is the name of the function being called.
	Method string

	// CallID identifies the call. Every call gets a fresh random ID.
	CallID uuid.UUID

	// Request is the request that was sent. It is only set for response hooks.
	Request interface{}
}

// NewExtra creates an Extra for a new call.
func NewExtra(ctx context.Context, service string, method string) *Extra {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Extra{
		Context: ctx,
		Service: service,
		Method:  method,
		CallID:  uuid.New(),
	}
}

// ForResponse returns a copy of extra with Request set. Response hooks receive it.
func (extra *Extra) ForResponse(request interface{}) *Extra {
	e := *extra
	e.Request = request
	return &e
}
