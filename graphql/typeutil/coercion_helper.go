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

// Package typeutil provides helpers to implement value coercion for leaf types.
package typeutil

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// CoercionMode specified the type of coercion currently running.
type CoercionMode uint

// Enumeration of CoercionMode; There are 2 kinds of coercions (Result Coercion and Input Coercion)
// occurred in GraphQL and are described in [0] and for each builtin scalar type.
//
// [0]: https://facebook.github.io/graphql/June2018/#sec-Scalars
const (
	// The coercion is used to prepare values for result.
	ResultCoercionMode CoercionMode = iota
	// The coercion is used to parse value read from query variables.
	InputCoercionMode
)

// CoercionContext contains context which is passed to coercion handlers.
type CoercionContext struct {
	Mode CoercionMode
}

// CoercionHelper defines an utility class that helps implement coercion for scalars. Coercing a
// value of interface{} usually requires a type switch over many primitive types ({u}int{8,16,32,64},
// pointers to them and types defined on top of them). CoercionHelper coalesces them into a handful
// of handlers: all signed integers are delivered to CoerceSignedInteger as int64, all floats to
// CoerceFloat as float64, and so on. Pointers are dereferenced and nil pointers are delivered to
// CoerceNil. A json.Number is delivered to CoerceSignedInteger when its text is an int64 and to
// CoerceFloat otherwise.
//
// NaN and infinities are not "real" values and are delivered to RaiseNonValue.
//
// To use CoercionHelper, define a struct with CoercionHelperBase embedded, override the handlers to
// implement your coercion and call SetImpl. Then call Coerce to execute the coercion.
type CoercionHelper interface {
	RaiseError(value interface{}, ctx *CoercionContext, format string, a ...interface{}) error
	RaiseInvalidTypeError(value interface{}, ctx *CoercionContext) error
	RaiseNonValue(value interface{}, ctx *CoercionContext) error

	CoerceBool(value bool, ctx *CoercionContext) (interface{}, error)
	CoerceSignedInteger(value int64, ctx *CoercionContext) (interface{}, error)
	CoerceUnsignedInteger(value uint64, ctx *CoercionContext) (interface{}, error)
	CoerceFloat(value float64, ctx *CoercionContext) (interface{}, error)
	CoerceString(value string, ctx *CoercionContext) (interface{}, error)
	CoerceNil(value interface{}, ctx *CoercionContext) (interface{}, error)
}

// CoercionHelperBase implements method dispatching to deliver value based on its kind into the
// appropriated coercion handler in a CoercionHelper implementation. It also provides default
// implementation for the handlers which reject the value.
type CoercionHelperBase struct {
	impl CoercionHelper
}

// SetImpl tells CoercionHelperBase the CoercionHelper implementation for method dispatching.
func (helper *CoercionHelperBase) SetImpl(impl CoercionHelper) {
	helper.impl = impl
}

// Coerce executes the coercion for given value.
func (helper *CoercionHelperBase) Coerce(value interface{}, ctx CoercionContext) (interface{}, error) {
	impl := helper.impl
	if impl == nil {
		panic("need to call SetImpl to initialize CoercionHelperBase before running")
	}

	// Quick path for common types.
	switch v := value.(type) {
	case nil:
		return impl.CoerceNil(value, &ctx)
	case bool:
		return impl.CoerceBool(v, &ctx)
	case int:
		return impl.CoerceSignedInteger(int64(v), &ctx)
	case int64:
		return impl.CoerceSignedInteger(v, &ctx)
	case string:
		return impl.CoerceString(v, &ctx)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return impl.CoerceSignedInteger(i, &ctx)
		}
		f, err := v.Float64()
		if err != nil {
			return nil, impl.RaiseError(value, &ctx, "not a number")
		}
		return impl.CoerceFloat(f, &ctx)
	}

	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return impl.CoerceNil(value, &ctx)
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Bool:
		return impl.CoerceBool(v.Bool(), &ctx)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return impl.CoerceSignedInteger(v.Int(), &ctx)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return impl.CoerceUnsignedInteger(v.Uint(), &ctx)

	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, impl.RaiseNonValue(value, &ctx)
		}
		return impl.CoerceFloat(f, &ctx)

	case reflect.String:
		return impl.CoerceString(v.String(), &ctx)
	}

	return nil, impl.RaiseInvalidTypeError(value, &ctx)
}

// RaiseError implements CoercionHelper.
func (helper *CoercionHelperBase) RaiseError(value interface{}, ctx *CoercionContext, format string, a ...interface{}) error {
	return fmt.Errorf("failed to coerce %+v: %s", value, fmt.Sprintf(format, a...))
}

// RaiseInvalidTypeError implements CoercionHelper.
func (helper *CoercionHelperBase) RaiseInvalidTypeError(value interface{}, ctx *CoercionContext) error {
	switch ctx.Mode {
	case ResultCoercionMode:
		return helper.impl.RaiseError(value, ctx, "unexpected result type `%T`", value)

	case InputCoercionMode:
		return helper.impl.RaiseError(value, ctx, "invalid variable type `%T`", value)
	}

	panic("unknown mode")
}

// RaiseNonValue implements CoercionHelper.
func (helper *CoercionHelperBase) RaiseNonValue(value interface{}, ctx *CoercionContext) error {
	return helper.impl.RaiseError(value, ctx, "not a value")
}

// CoerceBool implements CoercionHelper.
func (helper *CoercionHelperBase) CoerceBool(value bool, ctx *CoercionContext) (interface{}, error) {
	return nil, helper.impl.RaiseInvalidTypeError(value, ctx)
}

// CoerceSignedInteger implements CoercionHelper.
func (helper *CoercionHelperBase) CoerceSignedInteger(value int64, ctx *CoercionContext) (interface{}, error) {
	return nil, helper.impl.RaiseInvalidTypeError(value, ctx)
}

// CoerceUnsignedInteger implements CoercionHelper. By default, values that fit in int64 are
// delivered to CoerceSignedInteger.
func (helper *CoercionHelperBase) CoerceUnsignedInteger(value uint64, ctx *CoercionContext) (interface{}, error) {
	if value > math.MaxInt64 {
		return nil, helper.impl.RaiseError(value, ctx, "value too large for 64-bit signed integer")
	}
	return helper.impl.CoerceSignedInteger(int64(value), ctx)
}

// CoerceFloat implements CoercionHelper.
func (helper *CoercionHelperBase) CoerceFloat(value float64, ctx *CoercionContext) (interface{}, error) {
	return nil, helper.impl.RaiseInvalidTypeError(value, ctx)
}

// CoerceString implements CoercionHelper.
func (helper *CoercionHelperBase) CoerceString(value string, ctx *CoercionContext) (interface{}, error) {
	return nil, helper.impl.RaiseInvalidTypeError(value, ctx)
}

// CoerceNil implements CoercionHelper.
func (helper *CoercionHelperBase) CoerceNil(value interface{}, ctx *CoercionContext) (interface{}, error) {
	// Accept nil value in coercion.
	return nil, nil
}
