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
	"io"
	"log"

	"github.com/botobag/thriftql/idl"
)

// TypeNameOptions describes the declaration a TypeNamer names.
type TypeNameOptions struct {
	// File is the canonical path of the document that declares the type.
	File string

	// Name is the declared name.
	Name string

	// IsEnum is true for enums. Enums are shared by both directions.
	IsEnum bool

	// IsInput is true for structs compiled as input objects.
	IsInput bool
}

// TypeNamer chooses the exposed name of a compiled declaration. Names it returns that are already
// taken in the session receive a numeric suffix.
type TypeNamer func(options TypeNameOptions) string

// DefaultTypeNamer uses the declared name and appends "Input" to structs compiled as input objects.
func DefaultTypeNamer(options TypeNameOptions) string {
	if options.IsInput {
		return options.Name + "Input"
	}
	return options.Name
}

// Config configures a Session.
type Config struct {
	// ConvertEnumToInt compiles every enum to Int instead of an Enum type.
	ConvertEnumToInt bool

	// TypeNamer names compiled types. DefaultTypeNamer is used when nil.
	TypeNamer TypeNamer

	// Parser parses IDL documents. idl.ThriftParser is used when nil.
	Parser idl.Parser

	// Logger receives progress messages. Nothing is logged when nil.
	Logger *log.Logger
}

func (config *Config) typeNamer() TypeNamer {
	if config.TypeNamer != nil {
		return config.TypeNamer
	}
	return DefaultTypeNamer
}

func (config *Config) logger() *log.Logger {
	if config.Logger != nil {
		return config.Logger
	}
	return log.New(io.Discard, "", 0)
}
