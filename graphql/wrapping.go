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

type list struct {
	ThisIsListType
	elementType Type
}

var _ List = (*list)(nil)

// NewListOfType wraps elementType in a List. IDL list<T> compiles to a List of the type compiled for
// T in the same direction.
func NewListOfType(elementType Type) (List, error) {
	if elementType == nil {
		return nil, NewError("List requires an element type.", ErrKindValidation, Op("graphql.NewListOfType"))
	}
	return &list{elementType: elementType}, nil
}

// MustNewListOfType is like NewListOfType but panics on error.
func MustNewListOfType(elementType Type) List {
	l, err := NewListOfType(elementType)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *list) ElementType() Type   { return l.elementType }
func (l *list) UnwrappedType() Type { return l.elementType }
func (l *list) String() string      { return "[" + l.elementType.String() + "]" }

type nonNull struct {
	ThisIsNonNullType
	innerType Type
}

var _ NonNull = (*nonNull)(nil)

// NewNonNullOfType wraps innerType in a NonNull. innerType must not be a NonNull itself.
func NewNonNullOfType(innerType Type) (NonNull, error) {
	const op = Op("graphql.NewNonNullOfType")
	if innerType == nil {
		return nil, NewError("NonNull requires an inner type.", ErrKindValidation, op)
	}
	if _, ok := innerType.(NonNull); ok {
		return nil, NewError(fmt.Sprintf("NonNull cannot wrap %s which is already non-null.", innerType),
			ErrKindValidation, op)
	}
	return &nonNull{innerType: innerType}, nil
}

// MustNewNonNullOfType is like NewNonNullOfType but panics on error.
func MustNewNonNullOfType(innerType Type) NonNull {
	t, err := NewNonNullOfType(innerType)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *nonNull) InnerType() Type     { return t.innerType }
func (t *nonNull) UnwrappedType() Type { return t.innerType }
func (t *nonNull) String() string      { return t.innerType.String() + "!" }
