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

package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/botobag/thriftql/graphql"
	"github.com/botobag/thriftql/idl"
)

// defaultValue converts the default of field into a default value for an input of type t. Defaults
// that do not fit t are dropped.
func (s *Session) defaultValue(field *idl.Field, t graphql.Type) interface{} {
	if field.Default == nil {
		return nil
	}

	value, err := coerceDefault(field.Default, t)
	if err != nil {
		s.config.logger().Printf("compiler: ignoring default value of field %s: %s", field.Name, err)
		return nil
	}
	return value
}

// coerceDefault converts an IDL constant into an internal value of type t.
func coerceDefault(value interface{}, t graphql.Type) (interface{}, error) {
	if value == nil {
		return graphql.NilInputFieldDefaultValue, nil
	}

	switch t := graphql.NullableTypeOf(t).(type) {
	case graphql.Enum:
		return coerceEnumDefault(value, t)

	case graphql.List:
		values, ok := value.([]interface{})
		if !ok {
			break
		}
		result := make([]interface{}, len(values))
		for i, v := range values {
			coerced, err := coerceDefault(v, t.ElementType())
			if err != nil {
				return nil, err
			}
			if coerced == graphql.NilInputFieldDefaultValue {
				coerced = nil
			}
			result[i] = coerced
		}
		return result, nil

	case graphql.InputObject:
		values, ok := value.(map[string]interface{})
		if !ok {
			break
		}
		fields := t.Fields()
		if fields == nil {
			return nil, fmt.Errorf("fields of %s are still being compiled", t)
		}

		names := make([]string, 0, len(values))
		for name := range values {
			names = append(names, name)
		}
		sort.Strings(names)

		result := make(map[string]interface{}, len(values))
		for _, name := range names {
			field, exists := fields[name]
			if !exists {
				return nil, fmt.Errorf("%s has no field %s", t, name)
			}
			coerced, err := coerceDefault(values[name], field.Type())
			if err != nil {
				return nil, err
			}
			if coerced == graphql.NilInputFieldDefaultValue {
				coerced = nil
			}
			result[name] = coerced
		}
		return result, nil
	}

	if ref, ok := value.(idl.ConstRef); ok {
		return nil, fmt.Errorf("reference to constant %s is not supported for %s", ref.Name, t)
	}
	return graphql.CoerceValue(value, t)
}

// coerceEnumDefault accepts either the integer value of a member or a reference to it.
func coerceEnumDefault(value interface{}, t graphql.Enum) (interface{}, error) {
	switch value := value.(type) {
	case int64:
		for _, member := range t.Values() {
			if member.Value() == value {
				return value, nil
			}
		}
		return nil, fmt.Errorf("%s has no member with value %d", t, value)

	case idl.ConstRef:
		name := value.Name
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
		if member := t.Value(name); member != nil {
			return member.Value(), nil
		}
		return nil, fmt.Errorf("%s has no member %s", t, name)
	}
	return nil, fmt.Errorf("unexpected default %v for %s", value, t)
}
