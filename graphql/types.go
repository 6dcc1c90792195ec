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

	"github.com/botobag/thriftql/graphql/ast"
)

// Type is implemented by every node of a type graph. Only the types of this package can satisfy it:
// the unexported marker method is provided by the ThisIsXxxType structs below, which implementations
// embed.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Types
type Type interface {
	fmt.Stringer
	graphqlType()
}

// TypeWithName is implemented by named types.
type TypeWithName interface {
	Name() string
}

// TypeWithDescription is implemented by types that carry documentation.
type TypeWithDescription interface {
	Description() string
}

// LeafType is a Scalar or an Enum. Leaf values are where a result tree ends and are the only values
// that cross the schema boundary as plain data, so a LeafType converts in both directions.
type LeafType interface {
	Type
	TypeWithName
	TypeWithDescription

	// CoerceResultValue converts a value produced by a resolver into its serialized form.
	CoerceResultValue(value interface{}) (interface{}, error)

	// CoerceVariableValue converts a decoded input value (e.g. from JSON) into the internal form.
	CoerceVariableValue(value interface{}) (interface{}, error)

	// CoerceArgumentValue converts a literal written in a query into the internal form.
	CoerceArgumentValue(value ast.Value) (interface{}, error)

	graphqlLeafType()
}

// WrappingType is List or NonNull.
//
// Reference: https://facebook.github.io/graphql/draft/#sec-Wrapping-Types
type WrappingType interface {
	Type

	// UnwrappedType returns the wrapped type.
	UnwrappedType() Type

	graphqlWrappingType()
}

// Deprecation marks a field or an enum value as deprecated.
type Deprecation struct {
	Reason string
}

// Defined returns true if d is set.
func (d *Deprecation) Defined() bool {
	return d != nil
}

//===----------------------------------------------------------------------------------------====//
// Scalar
//===----------------------------------------------------------------------------------------====//

// Scalar is a named leaf type defined by its coercion functions. Besides the built-in Int, Float,
// String, Boolean and ID, schemas compiled from IDL documents use scalars for 64-bit integers and
// for maps and sets.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Scalars
type Scalar interface {
	LeafType
	graphqlScalarType()
}

// ThisIsScalarType marks a struct as a Scalar when embedded.
type ThisIsScalarType struct{}

func (*ThisIsScalarType) graphqlType()       {}
func (*ThisIsScalarType) graphqlLeafType()   {}
func (*ThisIsScalarType) graphqlScalarType() {}

//===----------------------------------------------------------------------------------------====//
// Object
//===----------------------------------------------------------------------------------------====//

// Object is a named output type with a set of fields.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Objects
type Object interface {
	Type
	TypeWithName
	TypeWithDescription

	// Fields returns the fields of the object. Objects created with a FieldsThunk evaluate it on the
	// first call.
	Fields() FieldMap

	graphqlObjectType()
}

// ThisIsObjectType marks a struct as an Object when embedded.
type ThisIsObjectType struct{}

func (*ThisIsObjectType) graphqlType()       {}
func (*ThisIsObjectType) graphqlObjectType() {}

//===----------------------------------------------------------------------------------------====//
// Enum
//===----------------------------------------------------------------------------------------====//

// Enum is a leaf type whose values are a fixed set of names. Each name maps to an internal value;
// enums compiled from IDL documents use the numeric value of the member.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Enums
type Enum interface {
	LeafType

	// Values returns the values of the enum ordered by name.
	Values() []*EnumValue

	// Value returns the value with the given name or nil.
	Value(name string) *EnumValue

	graphqlEnumType()
}

// ThisIsEnumType marks a struct as an Enum when embedded.
type ThisIsEnumType struct{}

func (*ThisIsEnumType) graphqlType()     {}
func (*ThisIsEnumType) graphqlLeafType() {}
func (*ThisIsEnumType) graphqlEnumType() {}

//===------------------------------------------------------------------------------------------===//
// InputObject
//===------------------------------------------------------------------------------------------===//

// InputObject is the input counterpart of Object. Its fields take only input types and may carry
// default values.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Input-Objects
type InputObject interface {
	Type
	TypeWithName
	TypeWithDescription

	// Fields returns the fields of the input object. Like Object, a thunk is evaluated on first call.
	Fields() InputFieldMap

	graphqlInputObjectType()
}

// ThisIsInputObjectType marks a struct as an InputObject when embedded.
type ThisIsInputObjectType struct{}

func (*ThisIsInputObjectType) graphqlType()            {}
func (*ThisIsInputObjectType) graphqlInputObjectType() {}

//===------------------------------------------------------------------------------------------===//
// List
//===------------------------------------------------------------------------------------------===//

// List wraps an element type.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Type-System.List
type List interface {
	WrappingType

	// ElementType returns the type of the elements.
	ElementType() Type

	graphqlListType()
}

// ThisIsListType marks a struct as a List when embedded.
type ThisIsListType struct{}

func (*ThisIsListType) graphqlType()         {}
func (*ThisIsListType) graphqlWrappingType() {}
func (*ThisIsListType) graphqlListType()     {}

//===------------------------------------------------------------------------------------------===//
// NonNull
//===------------------------------------------------------------------------------------------===//

// NonNull wraps a nullable type and rejects null values. Required IDL fields and parameters compile
// to NonNull.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Type-System.Non-Null
type NonNull interface {
	WrappingType

	// InnerType returns the wrapped nullable type.
	InnerType() Type

	graphqlNonNullType()
}

// ThisIsNonNullType marks a struct as a NonNull when embedded.
type ThisIsNonNullType struct{}

func (*ThisIsNonNullType) graphqlType()         {}
func (*ThisIsNonNullType) graphqlWrappingType() {}
func (*ThisIsNonNullType) graphqlNonNullType()  {}

//===------------------------------------------------------------------------------------------===//
// Predicates
//===------------------------------------------------------------------------------------------===//

// NamedTypeOf strips every List and NonNull from t.
func NamedTypeOf(t Type) Type {
	for {
		wrapping, ok := t.(WrappingType)
		if !ok || wrapping == nil {
			return t
		}
		t = wrapping.UnwrappedType()
	}
}

// NullableTypeOf strips a NonNull from t, if any.
func NullableTypeOf(t Type) Type {
	if nonNull, ok := t.(NonNull); ok && nonNull != nil {
		return nonNull.InnerType()
	}
	return t
}

// IsInputType returns true if values of t may be given as arguments.
//
// Reference: https://facebook.github.io/graphql/June2018/#IsInputType()
func IsInputType(t Type) bool {
	switch NamedTypeOf(t).(type) {
	case Scalar, Enum, InputObject:
		return true
	}
	return false
}

// IsOutputType returns true if fields may yield values of t.
//
// Reference: https://facebook.github.io/graphql/draft/#IsOutputType()
func IsOutputType(t Type) bool {
	switch NamedTypeOf(t).(type) {
	case Scalar, Enum, Object:
		return true
	}
	return false
}

// IsObjectType returns true if t is an Object.
func IsObjectType(t Type) bool {
	_, ok := t.(Object)
	return ok
}

// IsInputObjectType returns true if t is an InputObject.
func IsInputObjectType(t Type) bool {
	_, ok := t.(InputObject)
	return ok
}

// IsNonNullType returns true if t is a NonNull.
func IsNonNullType(t Type) bool {
	_, ok := t.(NonNull)
	return ok
}
