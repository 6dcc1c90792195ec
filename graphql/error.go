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
	"log"
	"runtime"
	"strings"
	"unsafe"

	"github.com/json-iterator/go"
)

// Op names the function that failed, such as "graphql.NewSchema".
type Op string

// ErrKind classifies an Error.
type ErrKind uint8

// Enumeration of ErrKind
const (
	ErrKindOther      ErrKind = iota // Unclassified; not printed.
	ErrKindCoercion                  // A value does not fit the type it was coerced to.
	ErrKindValidation                // A type or schema definition is invalid.
	ErrKindInternal                  // A case the package does not handle.
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindOther:
		return "other error"
	case ErrKindCoercion:
		return "coercion error"
	case ErrKindValidation:
		return "validation error"
	case ErrKindInternal:
		return "internal error"
	}
	return "unknown error kind"
}

// ValuePath locates a value inside an input, such as "value.operands[1].left".
type ValuePath string

// An Error is returned by type and schema construction and by value coercion.
//
// NewError copies Kind and Path from a wrapped *Error when they are not given.
type Error struct {
	Message string

	// Path is set on coercion errors raised inside lists and input objects.
	Path ValuePath

	// Err is the wrapped error, if any.
	Err error

	Op   Op
	Kind ErrKind
}

var _ error = (*Error)(nil)

// NewError builds an Error from message and args, in the manner of upspin.io/errors [0]. Each arg
// is an Op, an ErrKind, a ValuePath or the error to wrap.
//
// [0]: https://commandcenter.blogspot.com/2017/12/error-handling-in-upspin.html.
func NewError(message string, args ...interface{}) error {
	e := &Error{
		Message: message,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case ValuePath:
			e.Path = arg
		case error:
			e.Err = arg
		case Op:
			e.Op = arg
		case ErrKind:
			e.Kind = arg
		default:
			_, file, line, _ := runtime.Caller(1)
			log.Printf("graphql: bad NewError call from %s:%d: %v", file, line, args)
			return fmt.Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}

	if prev, ok := e.Err.(*Error); ok {
		if len(e.Path) == 0 {
			e.Path = prev.Path
		}
		if e.Kind == ErrKindOther {
			e.Kind = prev.Kind
		}
	}

	return e
}

// NewCoercionError builds an Error of ErrKindCoercion with a formatted message.
func NewCoercionError(format string, args ...interface{}) error {
	return NewError(fmt.Sprintf(format, args...), ErrKindCoercion)
}

// IsErrKind returns true if err is an *Error of the given kind.
func IsErrKind(err error, kind ErrKind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

func (e *Error) Error() string {
	var b strings.Builder
	e.printError(&b, nil)
	return b.String()
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// printError writes e and the errors it wraps. outer is the Error wrapping e, if any; a kind equal to
// the kind of outer is not repeated.
func (e *Error) printError(b *strings.Builder, outer *Error) {
	start := b.Len()
	sep := func(s string) {
		if b.Len() > start {
			b.WriteString(s)
		}
	}

	if len(e.Op) > 0 {
		b.WriteString(string(e.Op))
	}
	if len(e.Message) > 0 {
		sep(": ")
		b.WriteString(e.Message)
	}
	if e.Kind != ErrKindOther && (outer == nil || outer.Kind != e.Kind) {
		sep(": ")
		b.WriteString(e.Kind.String())
	}

	switch inner := e.Err.(type) {
	case nil:
	case *Error:
		sep(":\n  ")
		inner.printError(b, e)
	default:
		sep(": ")
		b.WriteString(inner.Error())
	}
}

// MarshalJSON implements json.Marshaler.
func (e *Error) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(e)
}

type errorEncoder struct{}

var _ jsoniter.ValEncoder = errorEncoder{}

func (errorEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return (*Error)(ptr) == nil
}

// Encode writes {"message": ..., "path": ...}; path is omitted when empty.
func (errorEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	err := (*Error)(ptr)
	stream.WriteObjectStart()
	stream.WriteObjectField("message")
	stream.WriteString(err.Message)
	if len(err.Path) > 0 {
		stream.WriteMore()
		stream.WriteObjectField("path")
		stream.WriteString(string(err.Path))
	}
	stream.WriteObjectEnd()
}

func init() {
	jsoniter.RegisterTypeEncoder("graphql.Error", errorEncoder{})
}
