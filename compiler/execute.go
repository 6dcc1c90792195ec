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

package compiler

import (
	"context"
	"fmt"
	"sort"

	"github.com/botobag/thriftql/concurrent/future"
	"github.com/botobag/thriftql/graphql"
	"github.com/botobag/thriftql/idl"
	"github.com/botobag/thriftql/internal/util"
)

// Selection names a root field of an assembled schema and the arguments to resolve it with.
type Selection struct {
	Name string
	Args map[string]interface{}
}

// Result is the completed value of a Selection or the error that ended it.
type Result struct {
	Name  string
	Value interface{}
	Err   error
}

// Execute resolves the root field name of schema with args and completes its result.
func Execute(ctx context.Context, schema *graphql.Schema, name string, args map[string]interface{}) (interface{}, error) {
	return future.BlockOnContext(ctx, resolveRootField(ctx, schema, name, args))
}

// ExecuteAll resolves the given selections together and returns one Result for each, in order. A
// selection that fails is reported in its Result and does not affect the others. The returned error
// is only set when ctx is done before every selection completed.
func ExecuteAll(ctx context.Context, schema *graphql.Schema, selections []Selection) ([]Result, error) {
	futures := make([]future.Future, len(selections))
	for i, selection := range selections {
		futures[i] = settle(selection.Name, resolveRootField(ctx, schema, selection.Name, selection.Args))
	}

	values, err := future.BlockOnContext(ctx, future.Join(futures...))
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(selections))
	for i, value := range values.([]interface{}) {
		results[i] = value.(Result)
	}
	return results, nil
}

// settle turns the outcome of f into a Result so a failure completes the future instead of
// failing it.
func settle(name string, f future.Future) future.Future {
	return future.PollFunc(func(waker future.Waker) (future.PollResult, error) {
		value, err := f.Poll(waker)
		if err != nil {
			return Result{Name: name, Err: err}, nil
		}
		if future.IsPending(value) {
			return future.PollResultPending, nil
		}
		return Result{Name: name, Value: value}, nil
	})
}

func resolveRootField(
	ctx context.Context,
	schema *graphql.Schema,
	name string,
	args map[string]interface{}) future.Future {
	const op = idl.Op("compiler.Execute")

	query := schema.Query()
	field, exists := query.Fields()[name]
	if !exists {
		names := make([]string, 0, len(query.Fields()))
		for fieldName := range query.Fields() {
			names = append(names, fieldName)
		}
		sort.Strings(names)
		return future.Err(idl.NewError(fmt.Sprintf("no root field %q.%s", name, util.DidYouMean(name, names)),
			idl.ErrKindUnresolvedIdentifier, idl.Identifier(name), op))
	}

	argValues, err := graphql.CoerceArgumentValues(field, args)
	if err != nil {
		return future.Err(idl.NewError(fmt.Sprintf("invalid arguments for %s", name), err, op))
	}

	resolver := field.Resolver()
	if resolver == nil {
		return future.Err(idl.NewError(fmt.Sprintf("root field %s has no resolver", name), idl.ErrKindConfig,
			idl.Identifier(name), op))
	}

	value, err := resolver.Resolve(ctx, nil, graphql.NewResolveInfo(schema, query, field, argValues))
	if err != nil {
		return future.Err(idl.NewError(fmt.Sprintf("cannot resolve %s", name), err, op))
	}

	resolved := future.Lift(value)
	return future.PollFunc(func(waker future.Waker) (future.PollResult, error) {
		value, err := resolved.Poll(waker)
		if err != nil {
			return nil, idl.NewError(fmt.Sprintf("cannot resolve %s", name), err, op)
		}
		if future.IsPending(value) {
			return future.PollResultPending, nil
		}
		return graphql.CompleteValue(field.Type(), value)
	})
}
