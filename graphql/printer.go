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
	"reflect"
	"strings"

	"github.com/botobag/thriftql/graphql/ast"
)

// PrintSchema prints the named types of schema in the GraphQL schema definition language. Types,
// fields, arguments and enum values are printed in name order. Built-in scalars are omitted.
func PrintSchema(schema *Schema) string {
	p := &printer{}

	first := true
	for _, t := range schema.TypeMap().Sorted() {
		if IsSpecifiedScalarType(t) {
			continue
		}
		if !first {
			p.WriteString("\n\n")
		}
		first = false
		p.printType(t)
	}

	if schema.Query().Name() != "Query" || (schema.Mutation() != nil && schema.Mutation().Name() != "Mutation") {
		p.WriteString("\n\nschema {\n  query: ")
		p.WriteString(schema.Query().Name())
		if schema.Mutation() != nil {
			p.WriteString("\n  mutation: ")
			p.WriteString(schema.Mutation().Name())
		}
		p.WriteString("\n}")
	}

	p.WriteString("\n")
	return p.String()
}

type printer struct {
	strings.Builder
	indentLevel int
}

func (p *printer) beginBlock() {
	p.WriteString(" {")
	p.indentLevel++
}

func (p *printer) endBlock() {
	p.indentLevel--
	p.writeNewLineWithIndent()
	p.WriteString("}")
}

func (p *printer) writeNewLineWithIndent() {
	p.WriteString("\n")
	p.WriteString(p.indentation())
}

func (p *printer) indentation() string {
	return strings.Repeat("  ", p.indentLevel)
}

func (p *printer) printType(t Type) {
	if t, ok := t.(TypeWithDescription); ok {
		p.printDescription(t.Description())
	}

	switch t := t.(type) {
	case Scalar:
		p.WriteString("scalar ")
		p.WriteString(t.Name())

	case Enum:
		p.WriteString("enum ")
		p.WriteString(t.Name())
		p.beginBlock()
		for _, value := range t.Values() {
			p.writeNewLineWithIndent()
			p.printDescription(value.Description())
			p.WriteString(value.Name())
			p.printDeprecation(value.Deprecation())
		}
		p.endBlock()

	case Object:
		p.WriteString("type ")
		p.WriteString(t.Name())
		p.beginBlock()
		for _, field := range t.Fields().Sorted() {
			p.writeNewLineWithIndent()
			p.printDescription(field.Description())
			p.WriteString(field.Name())
			p.printArgs(field.Args())
			p.WriteString(": ")
			p.WriteString(field.Type().String())
			p.printDeprecation(field.Deprecation())
		}
		p.endBlock()

	case InputObject:
		p.WriteString("input ")
		p.WriteString(t.Name())
		p.beginBlock()
		for _, field := range t.Fields().Sorted() {
			p.writeNewLineWithIndent()
			p.printDescription(field.Description())
			p.WriteString(field.Name())
			p.WriteString(": ")
			p.WriteString(field.Type().String())
			if field.HasDefaultValue() {
				p.printDefaultValue(field.Type(), field.DefaultValue())
			}
		}
		p.endBlock()
	}
}

func (p *printer) printArgs(args []Argument) {
	if len(args) == 0 {
		return
	}

	p.WriteString("(")
	for i := range args {
		arg := &args[i]
		if i > 0 {
			p.WriteString(", ")
		}
		p.WriteString(arg.Name())
		p.WriteString(": ")
		p.WriteString(arg.Type().String())
		if arg.HasDefaultValue() {
			p.printDefaultValue(arg.Type(), arg.DefaultValue())
		}
	}
	p.WriteString(")")
}

func (p *printer) printDefaultValue(t Type, value interface{}) {
	// Enum values are held by their internal value. Print the name instead.
	if enumType, ok := NullableTypeOf(t).(Enum); ok && value != nil {
		for _, enumValue := range enumType.Values() {
			if reflect.DeepEqual(enumValue.Value(), value) {
				p.WriteString(" = ")
				p.WriteString(enumValue.Name())
				return
			}
		}
	}

	if literal := ast.ValueOf(value); literal != nil {
		p.WriteString(" = ")
		p.WriteString(literal.String())
	}
}

func (p *printer) printDeprecation(deprecation *Deprecation) {
	if !deprecation.Defined() {
		return
	}
	p.WriteString(" @deprecated")
	if len(deprecation.Reason) > 0 {
		p.WriteString("(reason: ")
		p.WriteString(ast.StringValue{Value: deprecation.Reason}.String())
		p.WriteString(")")
	}
}

func (p *printer) printDescription(description string) {
	if len(description) == 0 {
		return
	}
	p.printBlockString(description)
	p.writeNewLineWithIndent()
}

// Print a block string in the indented block form by adding a leading and trailing blank line.
// However, if a block string starts with whitespace and is a single-line, adding a leading blank
// line would strip that whitespace.
func (p *printer) printBlockString(value string) {
	var (
		isSingleLine         = !strings.ContainsRune(value, '\n')
		hasLeadingSpace      = len(value) > 0 && (value[0] == ' ' || value[0] == '\t')
		hasTrailingQuote     = len(value) > 0 && value[len(value)-1] == '"'
		printAsMultipleLines = !isSingleLine || hasTrailingQuote
	)

	p.WriteString(`"""`)

	// Format a multi-line block quote to account for leading space.
	if printAsMultipleLines && !(isSingleLine && hasLeadingSpace) {
		p.writeNewLineWithIndent()
	}

	// Replace """ with \""".
	value = strings.Replace(value, `"""`, `\"""`, -1)
	value = strings.Replace(value, "\n", "\n"+p.indentation(), -1)
	p.WriteString(value)

	if printAsMultipleLines {
		p.writeNewLineWithIndent()
	}

	p.WriteString(`"""`)
}
