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

package idl

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/json-iterator/go"
)

// Op describes an operation, usually as the package and method, such as "idl.Load".
type Op string

// File is the path of the document where an error was found.
type File string

// Identifier is the text of the reference that an error is about.
type Identifier string

// ErrKind classifies an Error.
type ErrKind uint8

// Enumeration of ErrKind
const (
	ErrKindOther                ErrKind = iota // Unclassified error. This value is not printed in the error message.
	ErrKindParse                               // Malformed IDL text
	ErrKindMalformedIdentifier                 // A qualified reference with other than two components
	ErrKindUnresolvedIdentifier                // No or more than one matching declaration or include
	ErrKindUnsupportedNode                     // A construct that has no compilation rule
	ErrKindInvalidScalar                       // A literal of the wrong kind for a scalar
	ErrKindIO                                  // Failed to read a document
	ErrKindConfig                              // Invalid configuration
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindOther:
		return "other error"
	case ErrKindParse:
		return "parse error"
	case ErrKindMalformedIdentifier:
		return "malformed identifier"
	case ErrKindUnresolvedIdentifier:
		return "unresolved identifier"
	case ErrKindUnsupportedNode:
		return "unsupported node"
	case ErrKindInvalidScalar:
		return "invalid scalar"
	case ErrKindIO:
		return "I/O error"
	case ErrKindConfig:
		return "configuration error"
	}
	return "unknown error kind"
}

// An Error describes a failure to load, resolve or compile IDL documents. File and Identifier locate
// the fault when known.
type Error struct {
	// Message describes the error.
	Message string

	// Kind is the class of error.
	Kind ErrKind

	// Op is the operation being performed.
	Op Op

	// File is the document in which the error occurred.
	File File

	// Identifier is the reference being resolved, if any.
	Identifier Identifier

	// Err is the underlying error that triggered this one.
	Err error
}

var _ error = (*Error)(nil)

// NewError builds an error value from arguments in the fashion of graphql.NewError. Kind, File and
// Identifier that are not given are pulled from the wrapped error if it is an *Error.
func NewError(message string, args ...interface{}) error {
	e := &Error{
		Message: message,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case ErrKind:
			e.Kind = arg
		case Op:
			e.Op = arg
		case File:
			e.File = arg
		case Identifier:
			e.Identifier = arg
		case error:
			e.Err = arg
		default:
			return fmt.Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}

	if prev, ok := e.Err.(*Error); ok {
		if e.Kind == ErrKindOther {
			e.Kind = prev.Kind
		}
		if len(e.File) == 0 {
			e.File = prev.File
		}
		if len(e.Identifier) == 0 {
			e.Identifier = prev.Identifier
		}
	}

	return e
}

// KindOf returns the kind of the first *Error in the chain of err that has one, or ErrKindOther.
func KindOf(err error) ErrKind {
	var e *Error
	for errors.As(err, &e) {
		if e.Kind != ErrKindOther {
			return e.Kind
		}
		err = e.Err
	}
	return ErrKindOther
}

// IsErrKind returns true if KindOf(err) is kind.
func IsErrKind(err error, kind ErrKind) bool {
	return KindOf(err) == kind
}

// Error implements Go's error interface.
func (e *Error) Error() string {
	var b strings.Builder
	e.printError(&b, nil)
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) printError(b *strings.Builder, outer *Error) {
	initialLen := b.Len()
	pad := func(str string) {
		if b.Len() != initialLen {
			b.WriteString(str)
		}
	}

	if len(e.Op) > 0 {
		b.WriteString(string(e.Op))
	}

	// Location is printed once, by the outermost error that carries it.
	if len(e.File) > 0 && (outer == nil || outer.File != e.File) {
		pad(": ")
		b.WriteString(string(e.File))
	}

	if len(e.Message) > 0 {
		pad(": ")
		b.WriteString(e.Message)
	}

	if len(e.Identifier) > 0 && (outer == nil || outer.Identifier != e.Identifier) {
		pad(" ")
		fmt.Fprintf(b, "(identifier %q)", e.Identifier)
	}

	if e.Kind != ErrKindOther && (outer == nil || outer.Kind != e.Kind) {
		pad(": ")
		b.WriteString(e.Kind.String())
	}

	if e.Err != nil {
		if prev, ok := e.Err.(*Error); ok {
			pad(":\n  ")
			prev.printError(b, e)
		} else {
			pad(": ")
			b.WriteString(e.Err.Error())
		}
	}
}

// MarshalJSON implements json.Marshaler.
func (e *Error) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(e)
}

// errorMarshaller implements jsoniter.ValEncoder to encode Error to JSON.
type errorMarshaller struct{}

var _ jsoniter.ValEncoder = errorMarshaller{}

// IsEmpty implements jsoniter.ValEncoder.
func (errorMarshaller) IsEmpty(ptr unsafe.Pointer) bool {
	return (*Error)(ptr) == nil
}

// Encode implements jsoniter.ValEncoder. The error is flattened into its message and location.
func (errorMarshaller) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	err := (*Error)(ptr)
	stream.WriteObjectStart()

	stream.WriteObjectField("message")
	stream.WriteString(err.Error())

	stream.WriteMore()
	stream.WriteObjectField("kind")
	stream.WriteString(err.Kind.String())

	if len(err.File) > 0 {
		stream.WriteMore()
		stream.WriteObjectField("file")
		stream.WriteString(string(err.File))
	}

	if len(err.Identifier) > 0 {
		stream.WriteMore()
		stream.WriteObjectField("identifier")
		stream.WriteString(string(err.Identifier))
	}

	stream.WriteObjectEnd()
}

func init() {
	jsoniter.RegisterTypeEncoder("idl.Error", errorMarshaller{})
}
