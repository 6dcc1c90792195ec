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

// ScalarResultCoercer coerces result value into a value represented in the Scalar type. Please read
// "Result Coercion" in [0] to provide appropriate implementation.
//
// [0]: https://facebook.github.io/graphql/June2018/#sec-Scalars
type ScalarResultCoercer interface {
	// CoerceResultValue coerces the given value for the field to return.
	CoerceResultValue(value interface{}) (interface{}, error)
}

// CoerceScalarResultFunc is an adapter to allow the use of ordinary functions as
// ScalarResultCoercer.
type CoerceScalarResultFunc func(value interface{}) (interface{}, error)

// CoerceResultValue calls f(value).
func (f CoerceScalarResultFunc) CoerceResultValue(value interface{}) (interface{}, error) {
	return f(value)
}

// CoerceScalarResultFunc implements ScalarResultCoercer.
var _ ScalarResultCoercer = (CoerceScalarResultFunc)(nil)

// ScalarInputCoercer coerces input values in the GraphQL requests into a value represented the
// Scalar type. Please read "Input Coercion" in [0] to provide appropriate implementation.
//
// [0]: https://facebook.github.io/graphql/June2018/#sec-Scalars
type ScalarInputCoercer interface {
	// CoerceVariableValue coerces a scalar value in input query variables [0].
	//
	// [0]: https://facebook.github.io/graphql/June2018/#CoerceVariableValues()
	CoerceVariableValue(value interface{}) (interface{}, error)

	// CoerceArgumentValue coerces a scalar value in input field arguments [0].
	//
	// [0]: https://facebook.github.io/graphql/June2018/#CoerceArgumentValues()
	CoerceArgumentValue(value ast.Value) (interface{}, error)
}

// ScalarInputCoercerFuncs is an adapter to create a ScalarInputCoercer from function values.
type ScalarInputCoercerFuncs struct {
	CoerceVariableValueFunc func(value interface{}) (interface{}, error)
	CoerceArgumentValueFunc func(value ast.Value) (interface{}, error)
}

// CoerceVariableValue calls f.CoerceVariableValueFunc(value).
func (f ScalarInputCoercerFuncs) CoerceVariableValue(value interface{}) (interface{}, error) {
	return f.CoerceVariableValueFunc(value)
}

// CoerceArgumentValue calls f.CoerceArgumentValueFunc(value).
func (f ScalarInputCoercerFuncs) CoerceArgumentValue(value ast.Value) (interface{}, error) {
	return f.CoerceArgumentValueFunc(value)
}

// ScalarInputCoercerFuncs implements ScalarInputCoercer.
var _ ScalarInputCoercer = ScalarInputCoercerFuncs{}

// defaultScalarInputCoercer is used for scalar that doesn't provide coercer for processing input
// values.
type defaultScalarInputCoercer struct {
	name string
}

// CoerceVariableValue implements ScalarInputCoercer.
func (coercer defaultScalarInputCoercer) CoerceVariableValue(value interface{}) (interface{}, error) {
	return value, nil
}

// CoerceArgumentValue implements ScalarInputCoercer.
func (coercer defaultScalarInputCoercer) CoerceArgumentValue(value ast.Value) (interface{}, error) {
	return nil, NewError(fmt.Sprintf("coercer for the input type %s was not provided", coercer.name))
}

// ScalarConfig provides the definition of a scalar type.
type ScalarConfig struct {
	// Name of the scalar type
	Name string

	// Description of the scalar type
	Description string

	// ResultCoercer serializes value for return in execution result
	ResultCoercer ScalarResultCoercer

	// InputCoercer parses input value given to the scalar field (optional)
	InputCoercer ScalarInputCoercer
}

// scalar is our built-in implementation for Scalar. It is configured with and built from
// ScalarConfig.
type scalar struct {
	ThisIsScalarType
	name          string
	description   string
	resultCoercer ScalarResultCoercer
	inputCoercer  ScalarInputCoercer
}

var _ Scalar = (*scalar)(nil)

// NewScalar defines a scalar type from a ScalarConfig.
func NewScalar(config *ScalarConfig) (Scalar, error) {
	if err := assertValidName(config.Name); err != nil {
		return nil, NewError("Must provide a valid name for Scalar.", err, Op("graphql.NewScalar"))
	}

	if config.ResultCoercer == nil {
		return nil, NewError(fmt.Sprintf(
			`%v must provide ResultCoercer. If this custom Scalar is also used as an input type, `+
				`ensure InputCoercer is also provided.`, config.Name), ErrKindValidation, Op("graphql.NewScalar"))
	}

	s := &scalar{
		name:          config.Name,
		description:   config.Description,
		resultCoercer: config.ResultCoercer,
		inputCoercer:  config.InputCoercer,
	}
	if s.inputCoercer == nil {
		s.inputCoercer = defaultScalarInputCoercer{config.Name}
	}

	return s, nil
}

// MustNewScalar is a convenience function equivalent to NewScalar but panics on failure instead of
// returning an error.
func MustNewScalar(config *ScalarConfig) Scalar {
	s, err := NewScalar(config)
	if err != nil {
		panic(err)
	}
	return s
}

// String implements fmt.Stringer.
func (s *scalar) String() string {
	return s.Name()
}

// Name implements TypeWithName.
func (s *scalar) Name() string {
	return s.name
}

// Description implements TypeWithDescription.
func (s *scalar) Description() string {
	return s.description
}

// CoerceResultValue implmenets LeafType.
func (s *scalar) CoerceResultValue(value interface{}) (interface{}, error) {
	return s.resultCoercer.CoerceResultValue(value)
}

// CoerceVariableValue implmenets LeafType.
func (s *scalar) CoerceVariableValue(value interface{}) (interface{}, error) {
	return s.inputCoercer.CoerceVariableValue(value)
}

// CoerceArgumentValue implmenets LeafType.
func (s *scalar) CoerceArgumentValue(value ast.Value) (interface{}, error) {
	return s.inputCoercer.CoerceArgumentValue(value)
}
