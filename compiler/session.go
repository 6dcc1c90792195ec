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

// Package compiler turns IDL declarations into GraphQL types and assembles the root query of the
// services they declare.
//
// A Session owns everything a schema build produces: the loaded documents, the compiled types and
// the names handed out to them. Compiling the same declaration in the same direction twice yields
// the identical type. Struct fields are compiled lazily on first read, which lets structs refer to
// themselves or to each other. Errors found while compiling fields surface when the type is
// finalized (graphql.Finalize or graphql.NewSchema).
//
// A Session is not safe for concurrent use. Types it returns may be shared once finalized.
package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/botobag/thriftql/graphql"
	"github.com/botobag/thriftql/idl"
)

// Session is a single schema build.
type Session struct {
	config Config
	docs   *idl.DocumentSet
	cache  *typeCache

	// typedefs holds the typedefs being expanded to detect cycles.
	typedefs map[typeKey]bool
}

// NewSession creates an empty session.
func NewSession(config Config) *Session {
	return &Session{
		config:   config,
		docs:     idl.NewDocumentSet(),
		cache:    newTypeCache(),
		typedefs: map[typeKey]bool{},
	}
}

// Load loads the documents at paths and everything they include into the session. Documents that
// are already loaded are skipped.
func (s *Session) Load(paths ...string) error {
	loader := &idl.Loader{
		Parser: s.config.Parser,
		Logger: s.config.Logger,
	}
	return loader.LoadInto(s.docs, paths...)
}

// Documents returns the documents loaded into the session.
func (s *Session) Documents() *idl.DocumentSet {
	return s.docs
}

// Document loads the document at path if needed and returns it.
func (s *Session) Document(path string) (*idl.Document, error) {
	if err := s.Load(path); err != nil {
		return nil, err
	}
	doc := s.docs.Document(path)
	if doc == nil {
		return nil, idl.NewError("document is not loaded", idl.ErrKindIO, idl.File(path), idl.Op("compiler.Document"))
	}
	return doc, nil
}

// NumTypes returns the number of declarations compiled so far.
func (s *Session) NumTypes() int {
	return s.cache.len()
}

// CompileDeclaration compiles the struct, enum or typedef with the given name declared in file.
// Qualified names are resolved through the includes of file.
func (s *Session) CompileDeclaration(file string, name string, direction Direction) (graphql.Type, error) {
	doc, err := s.Document(file)
	if err != nil {
		return nil, err
	}
	return s.Compile(&idl.Reference{Name: name}, doc.Path, direction)
}

// Compile converts node, found in the document at file, into a GraphQL type in the given
// direction. file must be the canonical path of a loaded document.
func (s *Session) Compile(node idl.Node, file string, direction Direction) (graphql.Type, error) {
	const op = idl.Op("compiler.Compile")

	switch node := node.(type) {
	case idl.Primitive:
		return s.compilePrimitive(node, file)

	case *idl.ListType:
		elementType, err := s.Compile(node.Elem, file, direction)
		if err != nil {
			return nil, err
		}
		return graphql.NewListOfType(elementType)

	case *idl.MapType:
		return Map(), nil

	case *idl.SetType:
		return Set(), nil

	case *idl.Reference:
		declFile, decl, err := s.docs.Resolve(node.Name, file)
		if err != nil {
			return nil, err
		}
		return s.Compile(decl, declFile, direction)

	case *idl.Field:
		t, err := s.Compile(node.Type, file, direction)
		if err != nil {
			return nil, idl.NewError(fmt.Sprintf("cannot compile field %s", node.Name), err, op)
		}
		if node.Requiredness == idl.Required {
			return graphql.NewNonNullOfType(t)
		}
		return t, nil

	case *idl.Struct:
		return s.compileStruct(node, file, direction)

	case *idl.Enum:
		return s.compileEnum(node, file)

	case *idl.Typedef:
		return s.compileTypedef(node, file, direction)

	case nil:
		return nil, idl.NewError("no node to compile", idl.ErrKindUnsupportedNode, idl.File(file), op)
	}

	return nil, idl.NewError(fmt.Sprintf("no compilation rule for %s node", node.Kind()),
		idl.ErrKindUnsupportedNode, idl.File(file), op)
}

func (s *Session) compilePrimitive(p idl.Primitive, file string) (graphql.Type, error) {
	switch p {
	case idl.Bool:
		return graphql.Boolean(), nil
	case idl.I8, idl.I16, idl.I32:
		return graphql.Int(), nil
	case idl.I64:
		return Int64(), nil
	case idl.Double:
		return graphql.Float(), nil
	case idl.String, idl.Binary:
		return graphql.String(), nil
	}
	return nil, idl.NewError(fmt.Sprintf("no compilation rule for %s", p), idl.ErrKindUnsupportedNode,
		idl.File(file), idl.Op("compiler.Compile"))
}

// placeholderFieldName names the field given to structs without fields.
const placeholderFieldName = "_"

const placeholderDescription = "This is just a placeholder"

func (s *Session) compileStruct(node *idl.Struct, file string, direction Direction) (graphql.Type, error) {
	key := typeKey{file: file, name: node.Name, direction: direction}
	t, created, err := s.cache.getOrCreate(key, func() (graphql.Type, error) {
		name := s.cache.allocateName(s.config.typeNamer()(TypeNameOptions{
			File:    file,
			Name:    node.Name,
			IsInput: direction == Input,
		}))

		if direction == Input {
			return graphql.NewInputObject(&graphql.InputObjectConfig{
				Name:        name,
				Description: node.Doc,
				FieldsThunk: func() (graphql.InputFields, error) {
					return s.inputFields(node, file)
				},
			})
		}

		return graphql.NewObject(&graphql.ObjectConfig{
			Name:        name,
			Description: node.Doc,
			FieldsThunk: func() (graphql.Fields, error) {
				return s.outputFields(node, file)
			},
		})
	})
	if err != nil {
		return nil, idl.NewError(fmt.Sprintf("cannot compile struct %s", node.Name), err, idl.File(file),
			idl.Op("compiler.Compile"))
	}
	if created {
		s.config.logger().Printf("compiler: compiled struct %s (%s) as %s", node.Name, direction, t)
	}
	return t, nil
}

func (s *Session) outputFields(node *idl.Struct, file string) (graphql.Fields, error) {
	if len(node.Fields) == 0 {
		return graphql.Fields{
			placeholderFieldName: {
				Type:        graphql.Boolean(),
				Description: placeholderDescription,
			},
		}, nil
	}

	fields := make(graphql.Fields, len(node.Fields))
	for _, field := range node.Fields {
		t, err := s.Compile(field, file, Output)
		if err != nil {
			return nil, err
		}
		fields[field.Name] = &graphql.FieldConfig{
			Type:        t,
			Description: field.Doc,
		}
	}
	return fields, nil
}

func (s *Session) inputFields(node *idl.Struct, file string) (graphql.InputFields, error) {
	if len(node.Fields) == 0 {
		return graphql.InputFields{
			placeholderFieldName: {
				Type:        graphql.Boolean(),
				Description: placeholderDescription,
			},
		}, nil
	}

	fields := make(graphql.InputFields, len(node.Fields))
	for _, field := range node.Fields {
		t, err := s.Compile(field, file, Input)
		if err != nil {
			return nil, err
		}
		fields[field.Name] = &graphql.InputFieldConfig{
			Type:         t,
			Description:  field.Doc,
			DefaultValue: s.defaultValue(field, t),
		}
	}
	return fields, nil
}

func (s *Session) compileEnum(node *idl.Enum, file string) (graphql.Type, error) {
	if s.config.ConvertEnumToInt {
		return graphql.Int(), nil
	}

	// Enums are valid in both directions and are shared by them.
	key := typeKey{file: file, name: node.Name}
	t, created, err := s.cache.getOrCreate(key, func() (graphql.Type, error) {
		values := make(graphql.EnumValueDefinitionMap, len(node.Members))
		for i, member := range node.Members {
			value := int64(i)
			if len(member.Initializer) > 0 {
				v, err := parseEnumValue(member.Initializer)
				if err != nil {
					return nil, idl.NewError(fmt.Sprintf("invalid value %q for %s", member.Initializer, member.Name),
						err, idl.ErrKindParse)
				}
				value = v
			}
			values[member.Name] = graphql.EnumValueDefinition{
				Description: member.Doc,
				Value:       value,
			}
		}

		return graphql.NewEnum(&graphql.EnumConfig{
			Name: s.cache.allocateName(s.config.typeNamer()(TypeNameOptions{
				File:   file,
				Name:   node.Name,
				IsEnum: true,
			})),
			Description:          node.Doc,
			Values:               values,
			ResultLookupStrategy: graphql.EnumResultLookupByValue,
		})
	})
	if err != nil {
		return nil, idl.NewError(fmt.Sprintf("cannot compile enum %s", node.Name), err, idl.File(file),
			idl.Op("compiler.Compile"))
	}
	if created {
		s.config.logger().Printf("compiler: compiled enum %s as %s", node.Name, t)
	}
	return t, nil
}

// parseEnumValue parses an enum initializer. Only decimal and "0x" hexadecimal literals are valid.
func parseEnumValue(text string) (int64, error) {
	digits, sign := text, ""
	if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		sign, digits = digits[:1], digits[1:]
	}
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
		if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
			return 0, &strconv.NumError{Func: "ParseInt", Num: text, Err: strconv.ErrSyntax}
		}
		return strconv.ParseInt(sign+digits, 16, 64)
	}
	return strconv.ParseInt(text, 10, 64)
}

func (s *Session) compileTypedef(node *idl.Typedef, file string, direction Direction) (graphql.Type, error) {
	key := typeKey{file: file, name: node.Name, direction: direction}
	if s.typedefs[key] {
		return nil, idl.NewError(fmt.Sprintf("typedef %s refers to itself", node.Name),
			idl.ErrKindUnresolvedIdentifier, idl.File(file), idl.Identifier(node.Name), idl.Op("compiler.Compile"))
	}
	s.typedefs[key] = true
	defer delete(s.typedefs, key)

	return s.Compile(node.Type, file, direction)
}
