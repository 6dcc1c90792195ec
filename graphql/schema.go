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
	"reflect"
	"sort"
)

// Contains interfaces and definitions for a GraphQL schema.

// TypeMap keeps track of all named types referenced within the schema.
type TypeMap struct {
	types map[string]Type
}

func newTypeMap() TypeMap {
	return TypeMap{
		types: map[string]Type{},
	}
}

// add a type and all the types reachable from it into the map. Fields defined by thunks are forced
// along the way and the first thunk error is returned.
func (typeMap TypeMap) add(t Type) error {
	// stack contains types to be added to the map.
	stack := []Type{t}

	for len(stack) > 0 {
		// Pop a type from stack.
		t, stack = stack[len(stack)-1], stack[:len(stack)-1]

		// Skip nil type quickly. We may have nil Type or nil type instance wrapped in a Type.
		if t == nil || reflect.ValueOf(t).IsNil() {
			continue
		}

		// Map type name to corresponding Type.
		if namedType, ok := t.(TypeWithName); ok {
			name := namedType.Name()
			prev, exists := typeMap.types[name]
			if !exists {
				typeMap.types[name] = t
			} else {
				if prev != t {
					return NewError(fmt.Sprintf(
						"Schema must contain unique named types but contains multiple types named %s.", name),
						ErrKindValidation)
				}
				// Skip t which has been processed.
				continue
			}
		}

		if t, ok := t.(typeWithLazyFields); ok {
			if err := t.resolveFields(); err != nil {
				return err
			}
		}

		// Add types referenced by t to stack.
		switch t := t.(type) {
		case Scalar, Enum:
			// Nothing to to.

		case Object:
			// Add field type and arg type.
			for _, field := range t.Fields() {
				stack = append(stack, field.Type())
				args := field.Args()
				for i := range args {
					stack = append(stack, args[i].Type())
				}
			}

		case InputObject:
			for _, field := range t.Fields() {
				stack = append(stack, field.Type())
			}

		case List:
			stack = append(stack, t.ElementType())

		case NonNull:
			stack = append(stack, t.InnerType())

		default:
			return NewError(fmt.Sprintf("Cannot add %s to schema: unsupported type %T", t, t), ErrKindInternal)
		}
	}

	return nil
}

// Lookup finds a type with given name.
func (typeMap TypeMap) Lookup(name string) Type {
	return typeMap.types[name]
}

// Len returns the number of named types in the map.
func (typeMap TypeMap) Len() int {
	return len(typeMap.types)
}

// Sorted returns the named types ordered by name.
func (typeMap TypeMap) Sorted() []Type {
	names := make([]string, 0, len(typeMap.types))
	for name := range typeMap.types {
		names = append(names, name)
	}
	sort.Strings(names)

	types := make([]Type, len(names))
	for i, name := range names {
		types[i] = typeMap.types[name]
	}
	return types
}

// Finalize forces the field thunks of t and every type reachable from it, and checks that no two
// distinct types share a name. Types returned by a successful Finalize are fully built and safe to
// read concurrently.
func Finalize(t Type) error {
	return newTypeMap().add(t)
}

// SchemaConfig contains configuration to define a GraphQL schema.
type SchemaConfig struct {
	// Query and Mutation returns GraphQL Root Operation defined by the schema.
	Query    Object
	Mutation Object

	// List of types that are declared in the schema.
	Types []Type
}

// Schema Definition
//
// A GraphQL service’s collective type system capabilities are referred to as that service’s
// “schema”. A schema is defined in terms of the types it supports as well as the root operation
// types for each kind of operation.
//
// Definitions including types in schema are assumed to be immutable after creation.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Schema
type Schema struct {
	// query and mutation are root operation objects.
	query    Object
	mutation Object

	// typeMap contains all named type defined in the schema.
	typeMap TypeMap
}

// NewSchema initializes a Schema from the given config.
func NewSchema(config *SchemaConfig) (*Schema, error) {
	if config.Query == nil {
		return nil, NewError("Query root type must be provided.", ErrKindValidation, Op("graphql.NewSchema"))
	}

	schema := &Schema{
		query:    config.Query,
		mutation: config.Mutation,
		typeMap:  newTypeMap(),
	}

	roots := []Type{
		config.Query,
		config.Mutation,
		// Add built-in types.
		Int(),
		Float(),
		String(),
		Boolean(),
		ID(),
	}

	for _, t := range append(roots, config.Types...) {
		if err := schema.typeMap.add(t); err != nil {
			return nil, NewError("Invalid schema", err, Op("graphql.NewSchema"))
		}
	}

	return schema, nil
}

// MustNewSchema is a panic-on-fail version of NewSchema.
func MustNewSchema(config *SchemaConfig) *Schema {
	schema, err := NewSchema(config)
	if err != nil {
		panic(err)
	}
	return schema
}

// TypeMap keeps track of all named types referenced within the schema.
func (schema *Schema) TypeMap() TypeMap {
	return schema.typeMap
}

// Query returns the root operation type for query.
func (schema *Schema) Query() Object {
	return schema.query
}

// Mutation returns the root operation type for mutation or nil if the schema doesn't support
// mutation.
func (schema *Schema) Mutation() Object {
	return schema.mutation
}
