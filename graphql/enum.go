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
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/botobag/thriftql/graphql/ast"
)

// EnumResultLookupStrategy specifies how CoerceResultValue searches the enum value.
type EnumResultLookupStrategy uint

// Enumeration of EnumResultLookupStrategy
const (
	// Search with the enum value whose name matches the given value when performing coercion. This is
	// the default strategy.
	EnumResultLookupByName EnumResultLookupStrategy = iota

	// Search with the enum value whose internal value matches the given value. Integer values of any
	// width (and pointers to them) are compared as int64.
	EnumResultLookupByValue
)

// An intentionally internal type for marking a "nil" as internal value of an enum value
type enumNilValueType int

// NilEnumInternalValue is a value that has a special meaning when it is given to the Value in
// EnumValueDefinition. It sets the internal value of an enum value to "nil". Setting Value to "nil"
// or not giving it a value causes the name of the enum value to be used as internal value.
const NilEnumInternalValue enumNilValueType = 0

// EnumValueDefinition provides definition to an enum value.
type EnumValueDefinition struct {
	// Description of the enum value
	Description string

	// Value is the internal value of the enum value; Name of the enum value is used if it's nil.
	Value interface{}

	// Deprecation is non-nil when the value is tagged as deprecated.
	Deprecation *Deprecation
}

// EnumValueDefinitionMap maps enum value names to their corresponding value definitions in an enum
// type.
type EnumValueDefinitionMap map[string]EnumValueDefinition

// EnumConfig provides the definition of an Enum type.
type EnumConfig struct {
	// Name of the enum type
	Name string

	// Description for the enum type
	Description string

	// Values to be defined in the enum
	Values EnumValueDefinitionMap

	// ResultLookupStrategy selects how to map a result value to an enum value.
	ResultLookupStrategy EnumResultLookupStrategy
}

// EnumValue provides definition for a value in enum.
//
// Reference: https://facebook.github.io/graphql/June2018/#EnumValue
type EnumValue struct {
	// Name of the num value
	name string

	// Definition of the value
	def EnumValueDefinition
}

// Name of enum value.
func (value *EnumValue) Name() string {
	return value.name
}

// Description of the enum value
func (value *EnumValue) Description() string {
	return value.def.Description
}

// Value returns the internal value to be used when the enum value is read from input.
func (value *EnumValue) Value() interface{} {
	return value.def.Value
}

// IsDeprecated return true if this value is deprecated.
func (value *EnumValue) IsDeprecated() bool {
	return value.def.Deprecation.Defined()
}

// Deprecation is non-nil when the value is tagged as deprecated.
func (value *EnumValue) Deprecation() *Deprecation {
	return value.def.Deprecation
}

// enum is our built-in implementation for Enum.
type enum struct {
	ThisIsEnumType
	name        string
	description string
	strategy    EnumResultLookupStrategy

	// values defined in the enum type sorted by name
	values []*EnumValue

	// nameMap maps enum name to its EnumValue.
	nameMap map[string]*EnumValue

	// valueMap maps internal value to its EnumValue; Only built for EnumResultLookupByValue.
	valueMap map[interface{}]*EnumValue
}

var _ Enum = (*enum)(nil)

// NewEnum defines a Enum type from a EnumConfig.
func NewEnum(config *EnumConfig) (Enum, error) {
	if err := assertValidName(config.Name); err != nil {
		return nil, NewError("Must provide a valid name for Enum.", err, Op("graphql.NewEnum"))
	}

	if len(config.Values) == 0 {
		return nil, NewError(fmt.Sprintf("%s values must be an object with value names as keys.", config.Name),
			ErrKindValidation, Op("graphql.NewEnum"))
	}

	e := &enum{
		name:        config.Name,
		description: config.Description,
		strategy:    config.ResultLookupStrategy,
		values:      make([]*EnumValue, 0, len(config.Values)),
		nameMap:     make(map[string]*EnumValue, len(config.Values)),
	}

	for name, valueDef := range config.Values {
		if err := assertValidName(name); err != nil {
			return nil, NewError(fmt.Sprintf("%s has an invalid value name.", config.Name), err, Op("graphql.NewEnum"))
		}
		switch name {
		case "true", "false", "null":
			return nil, NewError(fmt.Sprintf("Name %s.%s is reserved and cannot be used as an enum value.",
				config.Name, name), ErrKindValidation, Op("graphql.NewEnum"))
		}

		value := &EnumValue{
			name: name,
			def:  valueDef,
		}
		if value.def.Value == nil {
			// Use name for internal value of the enum value.
			value.def.Value = name
		} else if _, ok := value.def.Value.(enumNilValueType); ok {
			value.def.Value = nil
		}
		e.values = append(e.values, value)
		e.nameMap[name] = value
	}

	sort.Slice(e.values, func(i, j int) bool {
		return e.values[i].name < e.values[j].name
	})

	if e.strategy == EnumResultLookupByValue {
		e.valueMap = make(map[interface{}]*EnumValue, len(e.values))
		for _, value := range e.values {
			key := normalizeEnumValue(value.Value())
			if existing, exists := e.valueMap[key]; exists {
				return nil, NewError(fmt.Sprintf("%s.%s and %s.%s have the same internal value %v.",
					config.Name, existing.name, config.Name, value.name, value.Value()),
					ErrKindValidation, Op("graphql.NewEnum"))
			}
			e.valueMap[key] = value
		}
	}

	return e, nil
}

// MustNewEnum is a convenience function equivalent to NewEnum but panics on failure instead of
// returning an error.
func MustNewEnum(config *EnumConfig) Enum {
	e, err := NewEnum(config)
	if err != nil {
		panic(err)
	}
	return e
}

// normalizeEnumValue dereferences pointers and widens integers to int64 so the values of different
// integer types can be matched against each other.
func normalizeEnumValue(value interface{}) interface{} {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(v.Uint())
	case reflect.Invalid:
		return nil
	}

	if !v.Type().Comparable() {
		return nil
	}
	return v.Interface()
}

// Name implemennts TypeWithName.
func (e *enum) Name() string {
	return e.name
}

// Description implemennts TypeWithDescription.
func (e *enum) Description() string {
	return e.description
}

// String implements fmt.Stringer.
func (e *enum) String() string {
	return e.Name()
}

// Values implements Enum.
func (e *enum) Values() []*EnumValue {
	return e.values
}

// Value implements Enum.
func (e *enum) Value(name string) *EnumValue {
	value, exists := e.nameMap[name]
	if exists {
		return value
	}
	return nil
}

var (
	errNoSuchEnumForValue = errors.New("no enum value matches the value")
	errNoSuchEnumForName  = errors.New("no enum value matches the name")
)

// CoerceResultValue implements LeafType.
func (e *enum) CoerceResultValue(value interface{}) (interface{}, error) {
	if e.strategy == EnumResultLookupByValue {
		if enumValue, exists := e.valueMap[normalizeEnumValue(value)]; exists {
			return enumValue.Name(), nil
		}
		return nil, NewError(fmt.Sprintf("Expected a value of type %s but received: %v", e.name, value),
			errNoSuchEnumForValue, ErrKindCoercion)
	}

	v := reflect.ValueOf(value)
	if v.Kind() != reflect.String {
		return nil, NewCoercionError("Expected a value of type %s but received: %T", e.name, value)
	}
	if enumValue := e.Value(v.String()); enumValue != nil {
		return enumValue.Name(), nil
	}
	return nil, NewError(fmt.Sprintf("Expected a value of type %s but received: %v", e.name, value),
		errNoSuchEnumForName, ErrKindCoercion)
}

// These errors are returned when coercion failed in CoerceVariableValue and CoerceArgumentValue.
var (
	errNilEnumValue      = errors.New("enum value is not provided")
	errInvalidEnumValue  = errors.New("invalid enum value")
	errEnumValueNotFound = errors.New("not a value for the type")
)

// CoerceVariableValue coerces a value read from input query variable that specifies a name of enum
// value and return the internal value that represents the enum.
func (e *enum) CoerceVariableValue(value interface{}) (interface{}, error) {
	nameValue := reflect.ValueOf(value)
	if nameValue.Kind() == reflect.Ptr {
		if nameValue.IsNil() {
			return nil, errNilEnumValue
		}
		nameValue = nameValue.Elem()
	}

	if nameValue.Kind() != reflect.String {
		return nil, errInvalidEnumValue
	}

	if enumValue := e.Value(nameValue.String()); enumValue != nil {
		return enumValue.Value(), nil
	}

	return nil, errEnumValueNotFound
}

// CoerceArgumentValue is similar to CoerceVariableValue but coerces a value from input field
// argument that specifies a name of enum value.
func (e *enum) CoerceArgumentValue(value ast.Value) (interface{}, error) {
	if value, ok := value.(ast.EnumValue); ok {
		if enumValue := e.Value(value.Name); enumValue != nil {
			return enumValue.Value(), nil
		}
		return nil, errEnumValueNotFound
	}
	return nil, errInvalidEnumValue
}
