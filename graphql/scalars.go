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

package graphql

import (
	"fmt"
	"math"
	"strconv"

	"github.com/botobag/thriftql/graphql/ast"
	"github.com/botobag/thriftql/graphql/typeutil"
)

// The "type of internal value" for each built-in scalar are listed as follows,
//
// +--------------+---------------------------------+
// | GraphQL Type | Go Type ("internal value type") |
// +--------------+---------------------------------+
// | Int          | int                             |
// | Float        | float64                         |
// | String       | string                          |
// | Boolean      | boolean                         |
// | ID           | string                          |
// +--------------+---------------------------------+

// Reasons for the error when coercing built-in scalar types
const (
	coercionErrorNonInteger      = "not an integer"
	coercionErrorIntegerTooLarge = "value too large for 32-bit signed integer"
	coercionErrorIntegerTooSmall = "value too small for 32-bit signed integer"
	coercionErrorNonNumeric      = "not a numeric value"
)

// scalarCoercerBase is built on top of typeutil.CoercionHelperBase as a shared base to the coercers
// for built-in scalars below.
type scalarCoercerBase struct {
	typeutil.CoercionHelperBase
	typeName string
}

// RaiseError overrides typeutil.CoercionHelperBase.
func (coercer *scalarCoercerBase) RaiseError(value interface{}, ctx *typeutil.CoercionContext, format string, a ...interface{}) error {
	if v, ok := value.(string); ok {
		// Quote the string for pretty printing.
		value = strconv.Quote(v)
	}
	return NewCoercionError("%s cannot represent %v: %s", coercer.typeName, value, fmt.Sprintf(format, a...))
}

// RaiseInvalidArgumentTypeError returns an error indicating an unexpected type in input argument
// coercion.
func (coercer *scalarCoercerBase) RaiseInvalidArgumentTypeError(value ast.Value) error {
	return NewCoercionError("%s cannot represent %v: unexpected argument node type `%T`",
		coercer.typeName, value.Interface(), value)
}

// CoerceResultValue implements ScalarResultCoercer.
func (coercer *scalarCoercerBase) CoerceResultValue(value interface{}) (interface{}, error) {
	return coercer.Coerce(value, typeutil.CoercionContext{Mode: typeutil.ResultCoercionMode})
}

// CoerceVariableValue implements ScalarInputCoercer.
func (coercer *scalarCoercerBase) CoerceVariableValue(value interface{}) (interface{}, error) {
	return coercer.Coerce(value, typeutil.CoercionContext{Mode: typeutil.InputCoercionMode})
}

func (coercer *scalarCoercerBase) init(typeName string, impl typeutil.CoercionHelper) {
	coercer.SetImpl(impl)
	coercer.typeName = typeName
}

// builtinCoercer is implemented by the coercers of built-in scalars.
type builtinCoercer interface {
	ScalarResultCoercer
	ScalarInputCoercer
}

// builtinScalar implements the built-in scalar types.
type builtinScalar struct {
	ThisIsScalarType
	name        string
	description string
	coercer     builtinCoercer
}

// Name implements TypeWithName.
func (s *builtinScalar) Name() string {
	return s.name
}

// Description implements TypeWithDescription.
func (s *builtinScalar) Description() string {
	return s.description
}

// String implements fmt.Stringer.
func (s *builtinScalar) String() string {
	return s.name
}

// CoerceResultValue implmenets LeafType.
func (s *builtinScalar) CoerceResultValue(value interface{}) (interface{}, error) {
	return s.coercer.CoerceResultValue(value)
}

// CoerceVariableValue implmenets LeafType.
func (s *builtinScalar) CoerceVariableValue(value interface{}) (interface{}, error) {
	return s.coercer.CoerceVariableValue(value)
}

// CoerceArgumentValue implmenets LeafType.
func (s *builtinScalar) CoerceArgumentValue(value ast.Value) (interface{}, error) {
	return s.coercer.CoerceArgumentValue(value)
}

//===-----------------------------------------------------------------------------------------===//
// Int
//===-----------------------------------------------------------------------------------------===//
// The Int scalar type represents a signed 32‐bit numeric non‐fractional value.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Int

type intCoercer struct {
	scalarCoercerBase
}

// CoerceBool overrides typeutil.CoercionHelperBase.
func (coercer *intCoercer) CoerceBool(value bool, ctx *typeutil.CoercionContext) (interface{}, error) {
	// Input mode only accepts integer values.
	if ctx.Mode == typeutil.InputCoercionMode {
		return nil, coercer.RaiseInvalidTypeError(value, ctx)
	}
	if value {
		return 1, nil
	}
	return 0, nil
}

// CoerceSignedInteger overrides typeutil.CoercionHelperBase.
func (coercer *intCoercer) CoerceSignedInteger(value int64, ctx *typeutil.CoercionContext) (interface{}, error) {
	if value > int64(math.MaxInt32) {
		return nil, coercer.RaiseError(value, ctx, coercionErrorIntegerTooLarge)
	} else if value < int64(math.MinInt32) {
		return nil, coercer.RaiseError(value, ctx, coercionErrorIntegerTooSmall)
	}
	return int(value), nil
}

// CoerceFloat overrides typeutil.CoercionHelperBase.
func (coercer *intCoercer) CoerceFloat(value float64, ctx *typeutil.CoercionContext) (interface{}, error) {
	// Variables decoded from JSON carry numbers as float64. Accept them in both modes as long as the
	// conversion is lossless.
	if value != math.Trunc(value) {
		return nil, coercer.RaiseError(value, ctx, coercionErrorNonInteger)
	}
	return coercer.CoerceSignedInteger(int64(value), ctx)
}

// CoerceString overrides typeutil.CoercionHelperBase.
func (coercer *intCoercer) CoerceString(value string, ctx *typeutil.CoercionContext) (interface{}, error) {
	if ctx.Mode == typeutil.InputCoercionMode {
		return nil, coercer.RaiseInvalidTypeError(value, ctx)
	}
	return coercer.coerceStringImpl(value, ctx)
}

func (coercer *intCoercer) coerceStringImpl(value string, ctx *typeutil.CoercionContext) (interface{}, error) {
	val, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return nil, coercer.RaiseError(value, ctx, coercionErrorNonInteger)
	}
	return int(val), nil
}

// CoerceArgumentValue implements ScalarInputCoercer.
func (coercer *intCoercer) CoerceArgumentValue(value ast.Value) (interface{}, error) {
	if value, ok := value.(ast.IntValue); ok {
		return coercer.coerceStringImpl(value.Text, &typeutil.CoercionContext{Mode: typeutil.InputCoercionMode})
	}
	return nil, coercer.RaiseInvalidArgumentTypeError(value)
}

var intTypeInstance = func() Scalar {
	coercer := &intCoercer{}
	coercer.init("Int", coercer)
	return &builtinScalar{
		name: "Int",
		description: "The `Int` scalar type represents non-fractional signed whole numeric " +
			"values. Int can represent values between -(2^31) and 2^31 - 1.",
		coercer: coercer,
	}
}()

// Int returns the GraphQL builtin Int type definition.
func Int() Scalar {
	return intTypeInstance
}

//===-----------------------------------------------------------------------------------------===//
// Float
//===-----------------------------------------------------------------------------------------===//
// The Float scalar type represents signed double‐precision fractional values as specified by IEEE
// 754.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Float

type floatCoercer struct {
	scalarCoercerBase
}

// CoerceBool overrides typeutil.CoercionHelperBase.
func (coercer *floatCoercer) CoerceBool(value bool, ctx *typeutil.CoercionContext) (interface{}, error) {
	if ctx.Mode == typeutil.InputCoercionMode {
		return nil, coercer.RaiseInvalidTypeError(value, ctx)
	}
	if value {
		return float64(1), nil
	}
	return float64(0), nil
}

// CoerceSignedInteger overrides typeutil.CoercionHelperBase.
func (coercer *floatCoercer) CoerceSignedInteger(value int64, ctx *typeutil.CoercionContext) (interface{}, error) {
	return float64(value), nil
}

// CoerceFloat overrides typeutil.CoercionHelperBase.
func (coercer *floatCoercer) CoerceFloat(value float64, ctx *typeutil.CoercionContext) (interface{}, error) {
	return value, nil
}

// CoerceString overrides typeutil.CoercionHelperBase.
func (coercer *floatCoercer) CoerceString(value string, ctx *typeutil.CoercionContext) (interface{}, error) {
	if ctx.Mode == typeutil.InputCoercionMode {
		return nil, coercer.RaiseInvalidTypeError(value, ctx)
	}
	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, coercer.RaiseError(value, ctx, coercionErrorNonNumeric)
	}
	return val, nil
}

// CoerceArgumentValue implements ScalarInputCoercer.
func (coercer *floatCoercer) CoerceArgumentValue(value ast.Value) (interface{}, error) {
	var (
		val float64
		err error
	)
	switch value := value.(type) {
	case ast.IntValue:
		val, err = strconv.ParseFloat(value.Text, 64)
	case ast.FloatValue:
		val, err = value.FloatValue()
	default:
		return nil, coercer.RaiseInvalidArgumentTypeError(value)
	}
	if err != nil {
		return nil, coercer.RaiseError(value.String(), nil, coercionErrorNonNumeric)
	}
	return val, nil
}

var floatTypeInstance = func() Scalar {
	coercer := &floatCoercer{}
	coercer.init("Float", coercer)
	return &builtinScalar{
		name: "Float",
		description: "The `Float` scalar type represents signed double-precision fractional " +
			"values as specified by " +
			"[IEEE 754](http://en.wikipedia.org/wiki/IEEE_floating_point).",
		coercer: coercer,
	}
}()

// Float returns the GraphQL builtin Float type definition.
func Float() Scalar {
	return floatTypeInstance
}

//===-----------------------------------------------------------------------------------------===//
// String
//===-----------------------------------------------------------------------------------------===//
// The String scalar type represents textual data, represented as UTF‐8 character sequences.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-String

type stringCoercer struct {
	scalarCoercerBase
}

// CoerceBool overrides typeutil.CoercionHelperBase.
func (coercer *stringCoercer) CoerceBool(value bool, ctx *typeutil.CoercionContext) (interface{}, error) {
	if ctx.Mode == typeutil.InputCoercionMode {
		return nil, coercer.RaiseInvalidTypeError(value, ctx)
	}
	return strconv.FormatBool(value), nil
}

// CoerceSignedInteger overrides typeutil.CoercionHelperBase.
func (coercer *stringCoercer) CoerceSignedInteger(value int64, ctx *typeutil.CoercionContext) (interface{}, error) {
	if ctx.Mode == typeutil.InputCoercionMode {
		return nil, coercer.RaiseInvalidTypeError(value, ctx)
	}
	return strconv.FormatInt(value, 10), nil
}

// CoerceUnsignedInteger overrides typeutil.CoercionHelperBase.
func (coercer *stringCoercer) CoerceUnsignedInteger(value uint64, ctx *typeutil.CoercionContext) (interface{}, error) {
	if ctx.Mode == typeutil.InputCoercionMode {
		return nil, coercer.RaiseInvalidTypeError(value, ctx)
	}
	return strconv.FormatUint(value, 10), nil
}

// CoerceFloat overrides typeutil.CoercionHelperBase.
func (coercer *stringCoercer) CoerceFloat(value float64, ctx *typeutil.CoercionContext) (interface{}, error) {
	if ctx.Mode == typeutil.InputCoercionMode {
		return nil, coercer.RaiseInvalidTypeError(value, ctx)
	}
	return strconv.FormatFloat(value, 'g', -1, 64), nil
}

// CoerceString overrides typeutil.CoercionHelperBase.
func (coercer *stringCoercer) CoerceString(value string, ctx *typeutil.CoercionContext) (interface{}, error) {
	return value, nil
}

// CoerceArgumentValue implements ScalarInputCoercer.
func (coercer *stringCoercer) CoerceArgumentValue(value ast.Value) (interface{}, error) {
	if value, ok := value.(ast.StringValue); ok {
		return value.Value, nil
	}
	return nil, coercer.RaiseInvalidArgumentTypeError(value)
}

var stringTypeInstance = func() Scalar {
	coercer := &stringCoercer{}
	coercer.init("String", coercer)
	return &builtinScalar{
		name: "String",
		description: "The `String` scalar type represents textual data, represented as UTF-8 " +
			"character sequences. The String type is most often used by GraphQL to " +
			"represent free-form human-readable text.",
		coercer: coercer,
	}
}()

// String returns the GraphQL builtin String type definition.
func String() Scalar {
	return stringTypeInstance
}

//===-----------------------------------------------------------------------------------------===//
// Boolean
//===-----------------------------------------------------------------------------------------===//
// The Boolean scalar type represents true or false.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Boolean

type booleanCoercer struct {
	scalarCoercerBase
}

// CoerceBool overrides typeutil.CoercionHelperBase.
func (coercer *booleanCoercer) CoerceBool(value bool, ctx *typeutil.CoercionContext) (interface{}, error) {
	return value, nil
}

// CoerceSignedInteger overrides typeutil.CoercionHelperBase.
func (coercer *booleanCoercer) CoerceSignedInteger(value int64, ctx *typeutil.CoercionContext) (interface{}, error) {
	if ctx.Mode == typeutil.InputCoercionMode {
		return nil, coercer.RaiseInvalidTypeError(value, ctx)
	}
	return value != 0, nil
}

// CoerceFloat overrides typeutil.CoercionHelperBase.
func (coercer *booleanCoercer) CoerceFloat(value float64, ctx *typeutil.CoercionContext) (interface{}, error) {
	if ctx.Mode == typeutil.InputCoercionMode {
		return nil, coercer.RaiseInvalidTypeError(value, ctx)
	}
	return value != 0, nil
}

// CoerceArgumentValue implements ScalarInputCoercer.
func (coercer *booleanCoercer) CoerceArgumentValue(value ast.Value) (interface{}, error) {
	if value, ok := value.(ast.BooleanValue); ok {
		return value.Value, nil
	}
	return nil, coercer.RaiseInvalidArgumentTypeError(value)
}

var booleanTypeInstance = func() Scalar {
	coercer := &booleanCoercer{}
	coercer.init("Boolean", coercer)
	return &builtinScalar{
		name:        "Boolean",
		description: "The `Boolean` scalar type represents `true` or `false`.",
		coercer:     coercer,
	}
}()

// Boolean returns the GraphQL builtin Boolean type definition.
func Boolean() Scalar {
	return booleanTypeInstance
}

//===-----------------------------------------------------------------------------------------===//
// ID
//===-----------------------------------------------------------------------------------------===//
// The ID scalar type represents a unique identifier. It is serialized in the same way as a String.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-ID

type idCoercer struct {
	scalarCoercerBase
}

// CoerceSignedInteger overrides typeutil.CoercionHelperBase.
func (coercer *idCoercer) CoerceSignedInteger(value int64, ctx *typeutil.CoercionContext) (interface{}, error) {
	return strconv.FormatInt(value, 10), nil
}

// CoerceString overrides typeutil.CoercionHelperBase.
func (coercer *idCoercer) CoerceString(value string, ctx *typeutil.CoercionContext) (interface{}, error) {
	return value, nil
}

// CoerceArgumentValue implements ScalarInputCoercer.
func (coercer *idCoercer) CoerceArgumentValue(value ast.Value) (interface{}, error) {
	switch value := value.(type) {
	case ast.StringValue:
		return value.Value, nil
	case ast.IntValue:
		return value.Text, nil
	}
	return nil, coercer.RaiseInvalidArgumentTypeError(value)
}

var idTypeInstance = func() Scalar {
	coercer := &idCoercer{}
	coercer.init("ID", coercer)
	return &builtinScalar{
		name: "ID",
		description: "The `ID` scalar type represents a unique identifier, often used to " +
			"refetch an object or as key for a cache. The ID type appears in a JSON " +
			"response as a String; however, it is not intended to be human-readable. " +
			"When expected as an input type, any string (such as `\"4\"`) or integer " +
			"(such as `4`) input value will be accepted as an ID.",
		coercer: coercer,
	}
}()

// ID returns the GraphQL builtin ID type definition.
func ID() Scalar {
	return idTypeInstance
}

// IsSpecifiedScalarType returns true if the given type is one of the built-in scalars.
func IsSpecifiedScalarType(t Type) bool {
	switch t {
	case intTypeInstance, floatTypeInstance, stringTypeInstance, booleanTypeInstance, idTypeInstance:
		return true
	}
	return false
}
