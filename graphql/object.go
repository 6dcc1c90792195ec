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

import "fmt"

// FieldsThunk defines fields of an Object lazily. It is called at most once, on the first read of
// the fields, which allows a field to refer to the Object being defined (directly or through other
// types).
type FieldsThunk func() (Fields, error)

// ObjectConfig provides the definition of a Object type.
type ObjectConfig struct {
	// Name of the defining Object
	Name string

	// Description for the Object type
	Description string

	// Fields in the object. Ignored when FieldsThunk is set.
	Fields Fields

	// FieldsThunk defines fields in the object lazily.
	FieldsThunk FieldsThunk
}

// object is our built-in implementation for Object. It is configured with and built from
// ObjectConfig.
type object struct {
	ThisIsObjectType
	name        string
	description string
	fields      *thunk[FieldMap]
}

var (
	_ Object             = (*object)(nil)
	_ typeWithLazyFields = (*object)(nil)
)

// NewObject defines an Object type from a ObjectConfig. Fields given in a thunk are not built until
// they are first read.
func NewObject(config *ObjectConfig) (Object, error) {
	if err := assertValidName(config.Name); err != nil {
		return nil, NewError("Must provide a valid name for Object.", err, Op("graphql.NewObject"))
	}

	o := &object{
		name:        config.Name,
		description: config.Description,
	}

	fieldsThunk := config.FieldsThunk
	if fieldsThunk == nil {
		fields := config.Fields
		fieldsThunk = func() (Fields, error) {
			return fields, nil
		}
	}

	o.fields = newThunk(func() (FieldMap, error) {
		fields, err := fieldsThunk()
		if err != nil {
			return nil, NewError(fmt.Sprintf("Failed to define fields for %s.", o.name), err)
		}
		return BuildFieldMap(o.name, fields)
	})

	return o, nil
}

// MustNewObject is a convenience function equivalent to NewObject but panics on failure instead of
// returning an error.
func MustNewObject(config *ObjectConfig) Object {
	o, err := NewObject(config)
	if err != nil {
		panic(err)
	}
	return o
}

// Name implements TypeWithName.
func (o *object) Name() string {
	return o.name
}

// Description implements TypeWithDescription.
func (o *object) Description() string {
	return o.description
}

// Fields implements Object. It returns nil if the fields failed to build; the error is reported by
// NewSchema or Finalize.
func (o *object) Fields() FieldMap {
	fields, _ := o.fields.get()
	return fields
}

// resolveFields implements typeWithLazyFields.
func (o *object) resolveFields() error {
	_, err := o.fields.get()
	return err
}

// String implements fmt.Stringer.
func (o *object) String() string {
	return o.Name()
}
