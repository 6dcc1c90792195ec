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
	"context"
	"fmt"
	"sort"
)

// FieldResolver resolves field value during execution.
//
// Reference: https://graphql.github.io/graphql-spec/June2018/#ResolveFieldValue()
type FieldResolver interface {
	// Context carries deadlines and cancelation signals.
	//
	// Source is the "source" value. It contains the value that has been resolved by field's enclosing
	// object.
	//
	// Info contains a collection of information about the current execution state.
	//
	// The returned value may be a future.Future when the value is computed asynchronously.
	Resolve(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error)
}

// FieldResolverFunc is an adapter to allow the use of ordinary functions as FieldResolver.
type FieldResolverFunc func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error)

// Resolve calls f(ctx, source, info).
func (f FieldResolverFunc) Resolve(
	ctx context.Context,
	source interface{},
	info ResolveInfo) (interface{}, error) {
	return f(ctx, source, info)
}

// FieldResolverFunc implements FieldResolver.
var _ FieldResolver = FieldResolverFunc(nil)

// Fields maps field name to its definition. In general, this should be named as "FieldConfigMap".
// However, this type is used frequently so we try to make it shorter to save some typing efforts.
type Fields map[string]*FieldConfig

// FieldConfig provides definition of a field when defining an object.
type FieldConfig struct {
	// Description of the defining field
	Description string

	// Type of the defining field
	Type Type

	// Argument configuration of the field
	Args ArgumentConfigMap

	// Resolver for resolving field value during execution
	Resolver FieldResolver

	// Deprecation is non-nil when the value is tagged as deprecated.
	Deprecation *Deprecation
}

// FieldMap maps field name to the Field.
type FieldMap map[string]Field

// Sorted returns the fields ordered by name.
func (fieldMap FieldMap) Sorted() []Field {
	fields := make([]Field, 0, len(fieldMap))
	for _, field := range fieldMap {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Name() < fields[j].Name()
	})
	return fields
}

// BuildFieldMap builds a FieldMap from given Fields.
func BuildFieldMap(parent string, fieldConfigMap Fields) (FieldMap, error) {
	if len(fieldConfigMap) == 0 {
		return nil, NewError(fmt.Sprintf("%s fields must be an object with field names as keys.", parent),
			ErrKindValidation)
	}

	fieldMap := make(FieldMap, len(fieldConfigMap))
	for name, fieldConfig := range fieldConfigMap {
		if err := assertValidName(name); err != nil {
			return nil, err
		}

		if fieldConfig == nil || fieldConfig.Type == nil {
			return nil, NewError(fmt.Sprintf("%s.%s field type must be Output Type but got: nil.", parent, name),
				ErrKindValidation)
		} else if !IsOutputType(fieldConfig.Type) {
			return nil, NewError(fmt.Sprintf("%s.%s field type must be Output Type but got: %s.",
				parent, name, fieldConfig.Type), ErrKindValidation)
		}

		// Build field arguments.
		args, err := buildArguments(parent+"."+name, fieldConfig.Args)
		if err != nil {
			return nil, err
		}

		fieldMap[name] = &field{
			config: fieldConfig,
			name:   name,
			args:   args,
		}
	}

	return fieldMap, nil
}

// Field representing a field in an object. It yields a value of a specific type.
//
// Reference: https://graphql.github.io/graphql-spec/June2018/#sec-Objects
type Field interface {
	// Name of the field
	Name() string

	// Description of the field
	Description() string

	// Type of value yielded by the field
	Type() Type

	// Args specifies the definitions of arguments being taken when querying this field.
	Args() []Argument

	// Resolver determines the result value for the field from the value resolved by parent Object.
	//
	// Reference: https://graphql.github.io/graphql-spec/June2018/#ResolveFieldValue()
	Resolver() FieldResolver

	// Deprecation is non-nil when the field is tagged as deprecated.
	Deprecation() *Deprecation
}

// field is our built-in implementation for Field.
type field struct {
	config *FieldConfig
	name   string
	args   []Argument
}

var _ Field = (*field)(nil)

// Name implements Field.
func (f *field) Name() string {
	return f.name
}

// Description implements Field.
func (f *field) Description() string {
	return f.config.Description
}

// Type implements Field.
func (f *field) Type() Type {
	return f.config.Type
}

// Args implements Field.
func (f *field) Args() []Argument {
	return f.args
}

// Resolver implements Field.
func (f *field) Resolver() FieldResolver {
	return f.config.Resolver
}

// Deprecation implements Field.
func (f *field) Deprecation() *Deprecation {
	return f.config.Deprecation
}

// ArgumentConfigMap maps argument name to its definition.
type ArgumentConfigMap map[string]ArgumentConfig

// An intentionally internal type for marking a "null" as default value for an argument
type argumentNilValueType int

// NilArgumentDefaultValue is a value that has a special meaning when it is given to the
// DefaultValue in ArgumentConfig. It sets the argument with default value set to "null". While
// setting DefaultValue to "nil" or not giving it a value means there's no default value.
const NilArgumentDefaultValue argumentNilValueType = 0

// ArgumentConfig provides definition for defining an argument in a field.
type ArgumentConfig struct {
	// Description fo the argument
	Description string

	// Type of the value that can be given to the argument
	Type Type

	// DefaultValue specified the value to be assigned to the argument when no value is provided.
	DefaultValue interface{}
}

// buildArguments builds a list of Argument from an ArgumentConfigMap. Arguments are sorted by name.
func buildArguments(parent string, argConfigMap ArgumentConfigMap) ([]Argument, error) {
	numArgs := len(argConfigMap)
	if numArgs == 0 {
		return nil, nil
	}

	args := make([]Argument, 0, numArgs)
	for name, argConfig := range argConfigMap {
		if err := assertValidName(name); err != nil {
			return nil, err
		}
		if argConfig.Type == nil || !IsInputType(argConfig.Type) {
			return nil, NewError(fmt.Sprintf("%s(%s:) argument type must be Input Type but got: %v.",
				parent, name, argConfig.Type), ErrKindValidation)
		}

		args = append(args, Argument{
			name:         name,
			description:  argConfig.Description,
			ttype:        argConfig.Type,
			defaultValue: argConfig.DefaultValue,
		})
	}

	sort.Slice(args, func(i, j int) bool {
		return args[i].name < args[j].name
	})

	return args, nil
}

// Argument is accepted in querying a field to further specify the return value.
//
// Reference: https://graphql.github.io/graphql-spec/June2018/#sec-Field-Arguments
type Argument struct {
	name         string
	description  string
	ttype        Type
	defaultValue interface{}
}

// Name of the argument
func (arg *Argument) Name() string {
	return arg.name
}

// Description of the argument
func (arg *Argument) Description() string {
	return arg.description
}

// Type of the value that can be given to the argument
func (arg *Argument) Type() Type {
	return arg.ttype
}

// HasDefaultValue returns true if the argument has a default value.
func (arg *Argument) HasDefaultValue() bool {
	return arg.defaultValue != nil
}

// DefaultValue specifies the value to be assigned to the argument when no value is provided.
func (arg *Argument) DefaultValue() interface{} {
	if _, ok := arg.defaultValue.(argumentNilValueType); ok {
		return nil
	}
	return arg.defaultValue
}

// assertValidName checks a name against /^[_a-zA-Z][_a-zA-Z0-9]*$/.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Names
func assertValidName(name string) error {
	if len(name) == 0 {
		return NewError("Must provide a name.", ErrKindValidation)
	}
	if len(name) > 1 && name[0] == '_' && name[1] == '_' {
		return NewError(fmt.Sprintf(`Name "%s" must not begin with "__", which is reserved by GraphQL introspection.`,
			name), ErrKindValidation)
	}
	for i, c := range name {
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && '0' <= c && c <= '9':
		default:
			return NewError(fmt.Sprintf(`Names must match /^[_a-zA-Z][_a-zA-Z0-9]*$/ but "%s" does not.`, name),
				ErrKindValidation)
		}
	}
	return nil
}
