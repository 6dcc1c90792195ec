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
	"strings"
)

// valuePath records the position of a value within nested lists and input objects for error
// reporting.
type valuePath struct {
	prev *valuePath
	key  interface{}
}

func (path *valuePath) String() string {
	var s string
	for path != nil {
		switch key := path.key.(type) {
		case string:
			s = fmt.Sprintf(".%s%s", key, s)
		case int:
			s = fmt.Sprintf("[%d]%s", key, s)
		}
		path = path.prev
	}
	if len(s) > 0 {
		return "value" + s
	}
	return s
}

func (path *valuePath) push(key interface{}) *valuePath {
	return &valuePath{
		prev: path,
		key:  key,
	}
}

func newValueCoercionError(message string, path *valuePath, err error) error {
	var b strings.Builder
	b.WriteString(message)
	if path != nil {
		b.WriteString(" at ")
		b.WriteString(path.String())
	}

	if e, ok := err.(*Error); ok && e.Kind == ErrKindCoercion {
		// Include the message in the error message.
		b.WriteString("; ")
		b.WriteString(e.Message)
	} else {
		b.WriteRune('.')
	}

	args := []interface{}{ErrKindCoercion}
	if path != nil {
		args = append(args, ValuePath(path.String()))
	}
	if err != nil {
		args = append(args, err)
	}
	return NewError(b.String(), args...)
}

// CoerceValue coerces a Go value (typically decoded from JSON) given an input type. It returns
// either a value which is valid for the provided type or the first coercion error encountered.
func CoerceValue(value interface{}, t Type) (interface{}, error) {
	return coerceValueImpl(value, t, nil)
}

func coerceValueImpl(value interface{}, t Type, path *valuePath) (interface{}, error) {
	// A value must be provided if the type is non-null.
	if nonNullType, ok := t.(NonNull); ok {
		if value == nil {
			return nil, newValueCoercionError(
				fmt.Sprintf("Expected non-nullable type %s not to be null", t), path, nil)
		}
		return coerceValueImpl(value, nonNullType.InnerType(), path)
	}

	if value == nil {
		// Explicitly return the value null.
		return nil, nil
	}

	switch t := t.(type) {
	case LeafType:
		coerced, err := t.CoerceVariableValue(value)
		if err != nil {
			return nil, newValueCoercionError(fmt.Sprintf("Expected type %s", t), path, err)
		}
		return coerced, nil

	case List:
		elementType := t.ElementType()
		reflectValue := reflect.ValueOf(value)
		if reflectValue.Kind() == reflect.Slice || reflectValue.Kind() == reflect.Array {
			coercedValues := make([]interface{}, reflectValue.Len())
			for i := range coercedValues {
				coercedValue, err := coerceValueImpl(reflectValue.Index(i).Interface(), elementType, path.push(i))
				if err != nil {
					return nil, err
				}
				coercedValues[i] = coercedValue
			}
			return coercedValues, nil
		}

		// Lists accept a non-list value as a list of one.
		coercedValue, err := coerceValueImpl(value, elementType, path)
		if err != nil {
			return nil, err
		}
		return []interface{}{coercedValue}, nil

	case InputObject:
		objectValue, ok := value.(map[string]interface{})
		if !ok {
			return nil, newValueCoercionError(fmt.Sprintf("Expected type %s to be an object", t), path,
				NewError(fmt.Sprintf("value for InputObject should be given in a map[string]interface{}, but got: %T", value)))
		}

		fields := t.Fields()
		coercedValue := make(map[string]interface{}, len(fields))

		// Ensure every defined field is valid.
		for _, field := range fields.Sorted() {
			name := field.Name()
			fieldValue, hasFieldValue := objectValue[name]
			if !hasFieldValue {
				if field.HasDefaultValue() {
					coercedValue[name] = field.DefaultValue()
				} else if IsNonNullType(field.Type()) {
					return nil, newValueCoercionError(fmt.Sprintf("Field %s of required type %s was not provided",
						path.push(name), field.Type()), nil, nil)
				}
				continue
			}

			coercedField, err := coerceValueImpl(fieldValue, field.Type(), path.push(name))
			if err != nil {
				return nil, err
			}
			coercedValue[name] = coercedField
		}

		// Ensure every provided field is defined.
		names := make([]string, 0, len(objectValue))
		for name := range objectValue {
			if _, exists := fields[name]; !exists {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			sort.Strings(names)
			return nil, newValueCoercionError(fmt.Sprintf(`Field "%s" is not defined by type %s`, names[0], t),
				path, nil)
		}

		return coercedValue, nil
	}

	return nil, newValueCoercionError(fmt.Sprintf("%s is not a valid input type", t), path, nil)
}

// CoerceArgumentValues coerces raw argument values given to field. Arguments that are not given
// receive their default values.
func CoerceArgumentValues(field Field, values map[string]interface{}) (ArgumentValues, error) {
	args := field.Args()
	if len(args) == 0 && len(values) == 0 {
		return NoArgumentValues(), nil
	}

	coerced := make(map[string]interface{}, len(args))
	for i := range args {
		arg := &args[i]
		value, exists := values[arg.Name()]
		if !exists {
			if arg.HasDefaultValue() {
				coerced[arg.Name()] = arg.DefaultValue()
			} else if IsNonNullType(arg.Type()) {
				return NoArgumentValues(), NewError(fmt.Sprintf(
					`Argument "%s" of required type "%s" was not provided.`, arg.Name(), arg.Type()), ErrKindCoercion)
			}
			continue
		}

		v, err := CoerceValue(value, arg.Type())
		if err != nil {
			return NoArgumentValues(), NewError(fmt.Sprintf(`Argument "%s" has invalid value.`, arg.Name()), err)
		}
		coerced[arg.Name()] = v
	}

	for name := range values {
		found := false
		for i := range args {
			if args[i].Name() == name {
				found = true
				break
			}
		}
		if !found {
			return NoArgumentValues(), NewError(fmt.Sprintf(`Unknown argument "%s" on field "%s".`, name, field.Name()),
				ErrKindCoercion)
		}
	}

	return NewArgumentValues(coerced), nil
}

// CompleteValue serializes a resolved value for the given output type. Every field of an Object is
// completed from the entry with the same name in a map[string]interface{} source; missing entries
// complete to null.
//
// Reference: https://facebook.github.io/graphql/June2018/#CompleteValue()
func CompleteValue(t Type, value interface{}) (interface{}, error) {
	if nonNullType, ok := t.(NonNull); ok {
		completed, err := CompleteValue(nonNullType.InnerType(), value)
		if err != nil {
			return nil, err
		}
		if completed == nil {
			return nil, NewError(fmt.Sprintf("Cannot return null for non-nullable type %s.", t), ErrKindCoercion)
		}
		return completed, nil
	}

	if value == nil {
		return nil, nil
	}

	switch t := t.(type) {
	case LeafType:
		return t.CoerceResultValue(value)

	case List:
		reflectValue := reflect.ValueOf(value)
		if reflectValue.Kind() != reflect.Slice && reflectValue.Kind() != reflect.Array {
			return nil, NewError(fmt.Sprintf("Expected Iterable for %s but got: %T.", t, value), ErrKindCoercion)
		}
		completed := make([]interface{}, reflectValue.Len())
		for i := range completed {
			v, err := CompleteValue(t.ElementType(), reflectValue.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			completed[i] = v
		}
		return completed, nil

	case Object:
		source, ok := value.(map[string]interface{})
		if !ok {
			return nil, NewError(fmt.Sprintf("Expected a map for %s but got: %T.", t, value), ErrKindCoercion)
		}
		fields := t.Fields()
		completed := make(map[string]interface{}, len(fields))
		for name, field := range fields {
			v, err := CompleteValue(field.Type(), source[name])
			if err != nil {
				return nil, NewError(fmt.Sprintf("Failed to complete %s.%s.", t, name), err)
			}
			completed[name] = v
		}
		return completed, nil
	}

	return nil, NewError(fmt.Sprintf("Cannot complete value of unexpected type %s.", t), ErrKindInternal)
}
