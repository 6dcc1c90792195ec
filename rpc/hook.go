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
	"github.com/botobag/thriftql/concurrent/future"
)

// Hook transforms a value on its way to or from a remote call. The replacement value may be
// computed asynchronously; Transform must not block and returns a Future instead.
type Hook interface {
	Transform(value interface{}, extra *Extra) future.Future
}

// HookFunc is an adapter to allow the use of ordinary functions as Hook.
type HookFunc func(value interface{}, extra *Extra) future.Future

// Transform calls f(value, extra).
func (f HookFunc) Transform(value interface{}, extra *Extra) future.Future {
	return f(value, extra)
}

// SyncHook is an adapter for hooks that compute the replacement value right away.
type SyncHook func(value interface{}, extra *Extra) (interface{}, error)

// Transform calls f(value, extra) and wraps the result in a Future.
func (f SyncHook) Transform(value interface{}, extra *Extra) future.Future {
	v, err := f(value, extra)
	if err != nil {
		return future.Err(err)
	}
	return future.Lift(v)
}

var (
	_ Hook = HookFunc(nil)
	_ Hook = SyncHook(nil)
)

// Hooks is a pair of request and response hooks. Either may be nil.
type Hooks struct {
	OnRequest  Hook
	OnResponse Hook
}

// Chain runs hooks one after another, each on the value produced by the previous one. nil hooks are
// skipped. The first failure fails the returned Future and the remaining hooks are not run.
func Chain(value interface{}, extra *Extra, hooks ...Hook) future.Future {
	result := future.Ready(value)
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		hook := hook
		result = future.Then(result, func(value interface{}) (interface{}, error) {
			next := hook.Transform(value, extra)
			if next == nil {
				return value, nil
			}
			return next, nil
		})
	}
	return result
}
