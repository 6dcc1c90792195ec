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

// Package ast defines the literal values that appear in GraphQL documents. Argument coercion of
// leaf types consumes them and the schema printer emits them for default values.
package ast

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Value represents a node containing a value.
//
// Reference: https://facebook.github.io/graphql/June2018/#Value
type Value interface {
	fmt.Stringer

	// Interface returns the Go value represented by the literal.
	Interface() interface{}

	// valueNode is a special mark to indicate a Value node. It makes sure that only value node can be
	// assigned to Value.
	valueNode()
}

// The following implement Value interface.
var (
	_ Value = IntValue{}
	_ Value = FloatValue{}
	_ Value = StringValue{}
	_ Value = BooleanValue{}
	_ Value = NullValue{}
	_ Value = EnumValue{}
	_ Value = ListValue{}
	_ Value = ObjectValue{}
)

// IntValue represents a value node containing an integer.
//
// Reference: https://facebook.github.io/graphql/June2018/#IntValue
type IntValue struct {
	// Literal text of the integer
	Text string
}

// Interface implements Value.
func (value IntValue) Interface() interface{} {
	v, err := value.Int64Value()
	if err != nil {
		return nil
	}
	return v
}

// valueNode implements Value.
func (IntValue) valueNode() {}

// String returns the literal.
func (value IntValue) String() string {
	return value.Text
}

// Int32Value parses literal into an int32.
func (value IntValue) Int32Value() (int32, error) {
	v, err := strconv.ParseInt(value.Text, 10, 32)
	return int32(v), err
}

// Int64Value parses literal into an int64.
func (value IntValue) Int64Value() (int64, error) {
	return strconv.ParseInt(value.Text, 10, 64)
}

// FloatValue represents a value node containing a float.
//
// Reference: https://facebook.github.io/graphql/June2018/#FloatValue
type FloatValue struct {
	// Literal text of the number
	Text string
}

// Interface implements Value.
func (value FloatValue) Interface() interface{} {
	v, err := value.FloatValue()
	if err != nil {
		return nil
	}
	return v
}

// valueNode implements Value.
func (FloatValue) valueNode() {}

// String returns the literal.
func (value FloatValue) String() string {
	return value.Text
}

// FloatValue parses literal into a float64.
func (value FloatValue) FloatValue() (float64, error) {
	return strconv.ParseFloat(value.Text, 64)
}

// StringValue represents a value node containing a string.
//
// Reference: https://facebook.github.io/graphql/June2018/#StringValue
type StringValue struct {
	Value string
}

// Interface implements Value.
func (value StringValue) Interface() interface{} {
	return value.Value
}

// valueNode implements Value.
func (StringValue) valueNode() {}

// String returns the quoted string.
func (value StringValue) String() string {
	return strconv.Quote(value.Value)
}

// BooleanValue represents a value node containing a boolean.
//
// Reference: https://facebook.github.io/graphql/June2018/#BooleanValue
type BooleanValue struct {
	Value bool
}

// Interface implements Value.
func (value BooleanValue) Interface() interface{} {
	return value.Value
}

// valueNode implements Value.
func (BooleanValue) valueNode() {}

func (value BooleanValue) String() string {
	return strconv.FormatBool(value.Value)
}

// NullValue represents a null literal.
//
// Reference: https://facebook.github.io/graphql/June2018/#NullValue
type NullValue struct{}

// Interface implements Value.
func (NullValue) Interface() interface{} {
	return nil
}

// valueNode implements Value.
func (NullValue) valueNode() {}

func (NullValue) String() string {
	return "null"
}

// EnumValue represents an enum value literal.
//
// Reference: https://facebook.github.io/graphql/June2018/#EnumValue
type EnumValue struct {
	Name string
}

// Interface implements Value.
func (value EnumValue) Interface() interface{} {
	return value.Name
}

// valueNode implements Value.
func (EnumValue) valueNode() {}

func (value EnumValue) String() string {
	return value.Name
}

// ListValue represents a list literal.
//
// Reference: https://facebook.github.io/graphql/June2018/#ListValue
type ListValue struct {
	Values []Value
}

// Interface implements Value.
func (value ListValue) Interface() interface{} {
	result := make([]interface{}, len(value.Values))
	for i, v := range value.Values {
		result[i] = v.Interface()
	}
	return result
}

// valueNode implements Value.
func (ListValue) valueNode() {}

func (value ListValue) String() string {
	values := make([]string, len(value.Values))
	for i, v := range value.Values {
		values[i] = v.String()
	}
	return "[" + strings.Join(values, ", ") + "]"
}

// ObjectField is a name-value pair in an ObjectValue.
type ObjectField struct {
	Name  string
	Value Value
}

// ObjectValue represents an input object literal.
//
// Reference: https://facebook.github.io/graphql/June2018/#ObjectValue
type ObjectValue struct {
	Fields []*ObjectField
}

// Interface implements Value.
func (value ObjectValue) Interface() interface{} {
	result := make(map[string]interface{}, len(value.Fields))
	for _, field := range value.Fields {
		result[field.Name] = field.Value.Interface()
	}
	return result
}

// valueNode implements Value.
func (ObjectValue) valueNode() {}

func (value ObjectValue) String() string {
	fields := make([]string, len(value.Fields))
	for i, field := range value.Fields {
		fields[i] = field.Name + ": " + field.Value.String()
	}
	return "{" + strings.Join(fields, ", ") + "}"
}

// ValueOf builds a literal for the given Go value. Maps become ObjectValue with keys sorted so the
// result is deterministic. It returns nil for values that have no literal form.
func ValueOf(v interface{}) Value {
	switch v := v.(type) {
	case nil:
		return NullValue{}
	case bool:
		return BooleanValue{v}
	case string:
		return StringValue{v}
	case int:
		return IntValue{strconv.FormatInt(int64(v), 10)}
	case int32:
		return IntValue{strconv.FormatInt(int64(v), 10)}
	case int64:
		return IntValue{strconv.FormatInt(v, 10)}
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return FloatValue{strconv.FormatFloat(v, 'f', 1, 64)}
		}
		return FloatValue{strconv.FormatFloat(v, 'g', -1, 64)}
	case Value:
		return v
	case []interface{}:
		values := make([]Value, 0, len(v))
		for _, elem := range v {
			value := ValueOf(elem)
			if value == nil {
				return nil
			}
			values = append(values, value)
		}
		return ListValue{values}
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		fields := make([]*ObjectField, 0, len(keys))
		for _, key := range keys {
			value := ValueOf(v[key])
			if value == nil {
				return nil
			}
			fields = append(fields, &ObjectField{Name: key, Value: value})
		}
		return ObjectValue{fields}
	}
	return nil
}
