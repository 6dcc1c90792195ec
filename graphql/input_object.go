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
	"sort"
)

// InputFields maps field name to its definition for defining an InputField. It should be
// "InputFieldConfigMap" but is shorten to save some typing efforts.
type InputFields map[string]*InputFieldConfig

// InputFieldsThunk defines fields of an InputObject lazily. See FieldsThunk.
type InputFieldsThunk func() (InputFields, error)

// An intentionally internal type for marking a "null" as default value for an input field
type inputFieldNilValueType int

// NilInputFieldDefaultValue is a value that has a special meaning when it is given to the
// DefaultValue in InputFieldConfig. It sets the field with default value set to "null". This is not
// the same with setting DefaultValue to "nil" or not giving it a value which means there's no
// default value.
const NilInputFieldDefaultValue inputFieldNilValueType = 0

// InputFieldConfig contains definition for defining a field in an Input Object type.
type InputFieldConfig struct {
	// Description of the field
	Description string

	// Type of value given to this field
	Type Type

	// DefaultValue specified the value to be assigned to the field when no input is provided.
	DefaultValue interface{}
}

// buildInputFieldMap takes an InputFields to build an InputFieldMap.
func buildInputFieldMap(parent string, inputFieldConfigMap InputFields) (InputFieldMap, error) {
	if len(inputFieldConfigMap) == 0 {
		return nil, NewError(fmt.Sprintf("%s fields must be an object with field names as keys.", parent),
			ErrKindValidation)
	}

	inputFieldMap := make(InputFieldMap, len(inputFieldConfigMap))
	for name, config := range inputFieldConfigMap {
		if err := assertValidName(name); err != nil {
			return nil, err
		}

		if config == nil || config.Type == nil || !IsInputType(config.Type) {
			var t Type
			if config != nil {
				t = config.Type
			}
			return nil, NewError(fmt.Sprintf("%s.%s field type must be Input Type but got: %v.", parent, name, t),
				ErrKindValidation)
		}

		inputFieldMap[name] = &InputField{
			name:         name,
			description:  config.Description,
			ttype:        config.Type,
			defaultValue: config.DefaultValue,
		}
	}

	return inputFieldMap, nil
}

// InputFieldMap maps field name to the field definition in an Input Object type.
type InputFieldMap map[string]*InputField

// Sorted returns the input fields ordered by name.
func (fieldMap InputFieldMap) Sorted() []*InputField {
	fields := make([]*InputField, 0, len(fieldMap))
	for _, field := range fieldMap {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].name < fields[j].name
	})
	return fields
}

// InputField defines a field in an InputObject. It is much simpler than Field because it doesn't
// get value from resolver nor can it have arguments.
type InputField struct {
	name         string
	description  string
	ttype        Type
	defaultValue interface{}
}

// Name of the field
func (f *InputField) Name() string {
	return f.name
}

// Description of the field
func (f *InputField) Description() string {
	return f.description
}

// Type of the field
func (f *InputField) Type() Type {
	return f.ttype
}

// HasDefaultValue returns true if the input field has a default value.
func (f *InputField) HasDefaultValue() bool {
	return f.defaultValue != nil
}

// DefaultValue specifies the value to be assigned to the field when no input is provided.
func (f *InputField) DefaultValue() interface{} {
	if _, ok := f.defaultValue.(inputFieldNilValueType); ok {
		return nil
	}
	return f.defaultValue
}

// InputObjectConfig provides the definition of a InputObject type.
type InputObjectConfig struct {
	// Name of the defining InputObject
	Name string

	// Description for the InputObject type
	Description string

	// Fields in the InputObject. Ignored when FieldsThunk is set.
	Fields InputFields

	// FieldsThunk defines fields in the InputObject lazily.
	FieldsThunk InputFieldsThunk
}

// inputObject is our built-in implementation for InputObject.
type inputObject struct {
	ThisIsInputObjectType
	name        string
	description string
	fields      *thunk[InputFieldMap]
}

var (
	_ InputObject        = (*inputObject)(nil)
	_ typeWithLazyFields = (*inputObject)(nil)
)

// NewInputObject defines a InputObject type from a InputObjectConfig.
func NewInputObject(config *InputObjectConfig) (InputObject, error) {
	if err := assertValidName(config.Name); err != nil {
		return nil, NewError("Must provide a valid name for InputObject.", err, Op("graphql.NewInputObject"))
	}

	o := &inputObject{
		name:        config.Name,
		description: config.Description,
	}

	fieldsThunk := config.FieldsThunk
	if fieldsThunk == nil {
		fields := config.Fields
		fieldsThunk = func() (InputFields, error) {
			return fields, nil
		}
	}

	o.fields = newThunk(func() (InputFieldMap, error) {
		fields, err := fieldsThunk()
		if err != nil {
			return nil, NewError(fmt.Sprintf("Failed to define fields for %s.", o.name), err)
		}
		return buildInputFieldMap(o.name, fields)
	})

	return o, nil
}

// MustNewInputObject is a convenience function equivalent to NewInputObject but panics on failure
// instead of returning an error.
func MustNewInputObject(config *InputObjectConfig) InputObject {
	o, err := NewInputObject(config)
	if err != nil {
		panic(err)
	}
	return o
}

// Name implements TypeWithName.
func (o *inputObject) Name() string {
	return o.name
}

// Description implements TypeWithDescription.
func (o *inputObject) Description() string {
	return o.description
}

// Fields implements InputObject.
func (o *inputObject) Fields() InputFieldMap {
	fields, _ := o.fields.get()
	return fields
}

// resolveFields implements typeWithLazyFields.
func (o *inputObject) resolveFields() error {
	_, err := o.fields.get()
	return err
}

// String implements fmt.Stringer.
func (o *inputObject) String() string {
	return o.Name()
}
