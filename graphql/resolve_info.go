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
	"github.com/json-iterator/go"
)

// An ArgumentValues contains argument values given to a field. It is immutable after it is created.
type ArgumentValues struct {
	values map[string]interface{}
}

var noArgumentValues = ArgumentValues{
	// Allocate an non-nil map to eliminate null-check for Lookup.
	values: map[string]interface{}{},
}

// NoArgumentValues represents an empty argument value set.
func NoArgumentValues() ArgumentValues {
	return noArgumentValues
}

// NewArgumentValues creates an ArgumentValues from given values.
func NewArgumentValues(values map[string]interface{}) ArgumentValues {
	if len(values) == 0 {
		return noArgumentValues
	}
	return ArgumentValues{values}
}

// Lookup returns argument value for the given name. If argument with the given name doesn't exist,
// returns nil. The second value (ok) is a bool that is true if the argument exists, and false if
// not.
func (args ArgumentValues) Lookup(name string) (value interface{}, ok bool) {
	value, ok = args.values[name]
	return
}

// Get returns argument value for the given name. It returns nil if no such argument was found.
func (args ArgumentValues) Get(name string) interface{} {
	return args.values[name]
}

// Len returns the number of arguments.
func (args ArgumentValues) Len() int {
	return len(args.values)
}

// Map returns a copy of the argument values keyed by argument name.
func (args ArgumentValues) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(args.values))
	for name, value := range args.values {
		m[name] = value
	}
	return m
}

// MarshalJSON implements json.Marshaler to serialize the internal map in ArgumentValues into JSON.
func (args ArgumentValues) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(args.values)
}

// ResolveInfo exposes a collection of information about execution state for resolvers.
type ResolveInfo interface {
	// Schema of the type system that is currently executing.
	Schema() *Schema

	// Object is the Object type which the resolving field belongs to.
	Object() Object

	// Field is the field being resolved.
	Field() Field

	// Args contains the argument values given to the field.
	Args() ArgumentValues
}

// resolveInfo is a simple implementation of ResolveInfo.
type resolveInfo struct {
	schema *Schema
	object Object
	field  Field
	args   ArgumentValues
}

// NewResolveInfo creates a ResolveInfo for resolving field of object with given arguments.
func NewResolveInfo(schema *Schema, object Object, field Field, args ArgumentValues) ResolveInfo {
	return &resolveInfo{
		schema: schema,
		object: object,
		field:  field,
		args:   args,
	}
}

// Schema implements ResolveInfo.
func (info *resolveInfo) Schema() *Schema {
	return info.schema
}

// Object implements ResolveInfo.
func (info *resolveInfo) Object() Object {
	return info.object
}

// Field implements ResolveInfo.
func (info *resolveInfo) Field() Field {
	return info.field
}

// Args implements ResolveInfo.
func (info *resolveInfo) Args() ArgumentValues {
	return info.args
}
