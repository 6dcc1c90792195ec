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
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/botobag/thriftql/graphql"
	"github.com/botobag/thriftql/graphql/ast"
	"github.com/botobag/thriftql/graphql/typeutil"
	"github.com/botobag/thriftql/idl"
)

//===----------------------------------------------------------------------------------------====//
// Int64
//===----------------------------------------------------------------------------------------====//

// maxExactFloatInteger is the largest integer up to which every integer is exact in float64.
const maxExactFloatInteger = 1 << 53

// int64Coercer parses 64-bit integers from strings and numbers. Results are rendered as decimal
// strings since JSON numbers lose precision beyond 2^53. Input values are delivered as int64.
type int64Coercer struct {
	typeutil.CoercionHelperBase
}

func newInt64Coercer() *int64Coercer {
	coercer := &int64Coercer{}
	coercer.SetImpl(coercer)
	return coercer
}

// RaiseError overrides typeutil.CoercionHelperBase.
func (coercer *int64Coercer) RaiseError(value interface{}, ctx *typeutil.CoercionContext, format string, a ...interface{}) error {
	if v, ok := value.(string); ok {
		value = strconv.Quote(v)
	}
	return idl.NewError(fmt.Sprintf("Int64 cannot represent %v: %s", value, fmt.Sprintf(format, a...)),
		idl.ErrKindInvalidScalar)
}

func (coercer *int64Coercer) result(value int64, ctx *typeutil.CoercionContext) interface{} {
	if ctx.Mode == typeutil.ResultCoercionMode {
		return strconv.FormatInt(value, 10)
	}
	return value
}

// CoerceSignedInteger overrides typeutil.CoercionHelperBase.
func (coercer *int64Coercer) CoerceSignedInteger(value int64, ctx *typeutil.CoercionContext) (interface{}, error) {
	return coercer.result(value, ctx), nil
}

// CoerceFloat overrides typeutil.CoercionHelperBase.
func (coercer *int64Coercer) CoerceFloat(value float64, ctx *typeutil.CoercionContext) (interface{}, error) {
	if value != math.Trunc(value) {
		return nil, coercer.RaiseError(value, ctx, "not an integer")
	}
	// Input floats beyond 2^53 may have been rounded already. Such values must be passed as strings
	// or exact JSON numbers.
	if ctx.Mode == typeutil.InputCoercionMode && math.Abs(value) > maxExactFloatInteger {
		return nil, coercer.RaiseError(value, ctx, "value not exactly representable, pass it as a string")
	}
	// float64(math.MaxInt64) rounds up to 2^63.
	if value < math.MinInt64 || value >= math.MaxInt64 {
		return nil, coercer.RaiseError(value, ctx, "value out of range for 64-bit signed integer")
	}
	return coercer.result(int64(value), ctx), nil
}

// CoerceString overrides typeutil.CoercionHelperBase.
func (coercer *int64Coercer) CoerceString(value string, ctx *typeutil.CoercionContext) (interface{}, error) {
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, coercer.RaiseError(value, ctx, "not a 64-bit integer")
	}
	return coercer.result(i, ctx), nil
}

// CoerceResultValue implements graphql.ScalarResultCoercer.
func (coercer *int64Coercer) CoerceResultValue(value interface{}) (interface{}, error) {
	return coercer.Coerce(value, typeutil.CoercionContext{Mode: typeutil.ResultCoercionMode})
}

// CoerceVariableValue implements graphql.ScalarInputCoercer.
func (coercer *int64Coercer) CoerceVariableValue(value interface{}) (interface{}, error) {
	return coercer.Coerce(value, typeutil.CoercionContext{Mode: typeutil.InputCoercionMode})
}

// CoerceArgumentValue implements graphql.ScalarInputCoercer.
func (coercer *int64Coercer) CoerceArgumentValue(value ast.Value) (interface{}, error) {
	switch value := value.(type) {
	case ast.IntValue:
		return coercer.CoerceVariableValue(value.Text)
	case ast.StringValue:
		return coercer.CoerceVariableValue(value.Value)
	}
	return nil, idl.NewError(fmt.Sprintf("Int64 cannot represent %v: expected an integer or a string literal",
		value.Interface()), idl.ErrKindInvalidScalar)
}

var int64Type = graphql.MustNewScalar(&graphql.ScalarConfig{
	Name:          "Int64",
	Description:   "Use string or number",
	ResultCoercer: newInt64Coercer(),
	InputCoercer:  newInt64Coercer(),
})

// Int64 is the scalar for i64. It accepts a string or a number on input and serializes to a string.
func Int64() graphql.Scalar {
	return int64Type
}

//===----------------------------------------------------------------------------------------====//
// Map and Set
//===----------------------------------------------------------------------------------------====//

// unwrap converts nested Go maps, sets and slices into the plain shapes of JSON: maps become
// map[string]interface{} with keys in their fmt form and slices become []interface{}. A map whose
// element type is struct{} is a set and becomes the sorted list of its keys.
func unwrap(value interface{}) interface{} {
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		if v.Type().Elem().Kind() == reflect.Struct && v.Type().Elem().NumField() == 0 {
			keys := make([]interface{}, 0, v.Len())
			for _, key := range v.MapKeys() {
				keys = append(keys, unwrap(key.Interface()))
			}
			sort.Slice(keys, func(i, j int) bool {
				return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
			})
			return keys
		}
		result := make(map[string]interface{}, v.Len())
		for _, key := range v.MapKeys() {
			result[fmt.Sprint(key.Interface())] = unwrap(v.MapIndex(key).Interface())
		}
		return result

	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		// Binary fields stay as they are.
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Interface()
		}
		fallthrough
	case reflect.Array:
		result := make([]interface{}, v.Len())
		for i := range result {
			result[i] = unwrap(v.Index(i).Interface())
		}
		return result
	}

	return v.Interface()
}

// containerCoercer implements the coercions of Map and Set.
type containerCoercer struct {
	name string

	// accepts returns true for an input value of the expected shape.
	accepts func(value interface{}) bool
}

// CoerceResultValue implements graphql.ScalarResultCoercer.
func (coercer containerCoercer) CoerceResultValue(value interface{}) (interface{}, error) {
	return unwrap(value), nil
}

// CoerceVariableValue implements graphql.ScalarInputCoercer.
func (coercer containerCoercer) CoerceVariableValue(value interface{}) (interface{}, error) {
	if !coercer.accepts(value) {
		return nil, idl.NewError(fmt.Sprintf("%s cannot represent a value of type %T", coercer.name, value),
			idl.ErrKindInvalidScalar)
	}
	return value, nil
}

// CoerceArgumentValue implements graphql.ScalarInputCoercer.
func (coercer containerCoercer) CoerceArgumentValue(value ast.Value) (interface{}, error) {
	return coercer.CoerceVariableValue(value.Interface())
}

func isObject(value interface{}) bool {
	_, ok := value.(map[string]interface{})
	return ok
}

func isArray(value interface{}) bool {
	_, ok := value.([]interface{})
	return ok
}

var (
	mapCoercer = containerCoercer{name: "Map", accepts: isObject}
	setCoercer = containerCoercer{name: "Set", accepts: isArray}

	mapType = graphql.MustNewScalar(&graphql.ScalarConfig{
		Name:          "Map",
		Description:   "Use plain object",
		ResultCoercer: mapCoercer,
		InputCoercer:  mapCoercer,
	})

	setType = graphql.MustNewScalar(&graphql.ScalarConfig{
		Name:          "Set",
		Description:   "Use Array",
		ResultCoercer: setCoercer,
		InputCoercer:  setCoercer,
	})
)

// Map is the scalar for map<K, V>. Keys are rendered in string form.
func Map() graphql.Scalar {
	return mapType
}

// Set is the scalar for set<T>. It is rendered as an array.
func Set() graphql.Scalar {
	return setType
}
