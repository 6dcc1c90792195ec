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
	"fmt"
	"strconv"

	"go.uber.org/thriftrw/ast"
	thriftidl "go.uber.org/thriftrw/idl"
)

// Parser turns the text of an IDL file into a Document. path is only used to fill Document.Path and
// to locate errors.
type Parser interface {
	Parse(path string, text []byte) (*Document, error)
}

// ParserFunc is an adapter to allow the use of ordinary functions as Parser.
type ParserFunc func(path string, text []byte) (*Document, error)

// Parse calls f(path, text).
func (f ParserFunc) Parse(path string, text []byte) (*Document, error) {
	return f(path, text)
}

// ThriftParser parses Apache Thrift IDL with go.uber.org/thriftrw.
type ThriftParser struct{}

var _ Parser = ThriftParser{}

// Parse implements Parser.
func (ThriftParser) Parse(path string, text []byte) (*Document, error) {
	program, err := thriftidl.Parse(text)
	if err != nil {
		return nil, NewError("failed to parse IDL", err, ErrKindParse, File(path), Op("idl.ThriftParser.Parse"))
	}

	doc := &Document{
		Path: path,
	}

	for _, header := range program.Headers {
		if include, ok := header.(*ast.Include); ok {
			doc.Includes = append(doc.Includes, &Include{
				Path: include.Path,
				Line: include.Line,
			})
		}
	}

	for _, definition := range program.Definitions {
		decl, err := convertDefinition(definition)
		if err != nil {
			return nil, NewError("failed to convert IDL", err, File(path), Op("idl.ThriftParser.Parse"))
		}
		doc.Declarations = append(doc.Declarations, decl)
	}

	return doc, nil
}

func convertDefinition(definition ast.Definition) (Declaration, error) {
	switch d := definition.(type) {
	case *ast.Struct:
		fields, err := convertFields(d.Fields)
		if err != nil {
			return nil, err
		}
		s := &Struct{
			Name:   d.Name,
			Fields: fields,
			Doc:    d.Doc,
			Line:   d.Line,
		}
		switch d.Type {
		case ast.UnionType:
			s.Variant = StructVariantUnion
		case ast.ExceptionType:
			s.Variant = StructVariantException
		}
		return s, nil

	case *ast.Enum:
		e := &Enum{
			Name: d.Name,
			Doc:  d.Doc,
			Line: d.Line,
		}
		for _, item := range d.Items {
			member := &EnumMember{
				Name: item.Name,
				Doc:  item.Doc,
			}
			if item.Value != nil {
				member.Initializer = strconv.Itoa(*item.Value)
			}
			e.Members = append(e.Members, member)
		}
		return e, nil

	case *ast.Typedef:
		t, err := convertType(d.Type)
		if err != nil {
			return nil, err
		}
		return &Typedef{
			Name: d.Name,
			Type: t,
			Doc:  d.Doc,
			Line: d.Line,
		}, nil

	case *ast.Constant:
		t, err := convertType(d.Type)
		if err != nil {
			return nil, err
		}
		return &Constant{
			Name:  d.Name,
			Type:  t,
			Value: convertConstantValue(d.Value),
			Doc:   d.Doc,
			Line:  d.Line,
		}, nil

	case *ast.Service:
		s := &Service{
			Name: d.Name,
			Doc:  d.Doc,
			Line: d.Line,
		}
		for _, function := range d.Functions {
			params, err := convertFields(function.Parameters)
			if err != nil {
				return nil, err
			}
			var result TypeExpr
			if function.ReturnType != nil {
				if result, err = convertType(function.ReturnType); err != nil {
					return nil, err
				}
			}
			s.Functions = append(s.Functions, &Function{
				Name:   function.Name,
				Params: params,
				Result: result,
				OneWay: function.OneWay,
				Doc:    function.Doc,
				Line:   function.Line,
			})
		}
		return s, nil
	}

	return nil, NewError(fmt.Sprintf("unsupported definition %T", definition), ErrKindUnsupportedNode)
}

func convertFields(fields []*ast.Field) ([]*Field, error) {
	result := make([]*Field, 0, len(fields))
	for _, field := range fields {
		t, err := convertType(field.Type)
		if err != nil {
			return nil, err
		}

		f := &Field{
			ID:      field.ID,
			Name:    field.Name,
			Type:    t,
			Default: convertConstantValue(field.Default),
			Doc:     field.Doc,
			Line:    field.Line,
		}
		switch field.Requiredness {
		case ast.Required:
			f.Requiredness = Required
		case ast.Optional:
			f.Requiredness = Optional
		}
		result = append(result, f)
	}
	return result, nil
}

func convertType(t ast.Type) (TypeExpr, error) {
	switch t := t.(type) {
	case ast.BaseType:
		switch t.ID {
		case ast.BoolTypeID:
			return Bool, nil
		case ast.I8TypeID:
			return I8, nil
		case ast.I16TypeID:
			return I16, nil
		case ast.I32TypeID:
			return I32, nil
		case ast.I64TypeID:
			return I64, nil
		case ast.DoubleTypeID:
			return Double, nil
		case ast.StringTypeID:
			return String, nil
		case ast.BinaryTypeID:
			return Binary, nil
		}

	case ast.ListType:
		elem, err := convertType(t.ValueType)
		if err != nil {
			return nil, err
		}
		return &ListType{Elem: elem}, nil

	case ast.SetType:
		elem, err := convertType(t.ValueType)
		if err != nil {
			return nil, err
		}
		return &SetType{Elem: elem}, nil

	case ast.MapType:
		key, err := convertType(t.KeyType)
		if err != nil {
			return nil, err
		}
		value, err := convertType(t.ValueType)
		if err != nil {
			return nil, err
		}
		return &MapType{Key: key, Value: value}, nil

	case ast.TypeReference:
		return &Reference{Name: t.Name, Line: t.Line}, nil
	}

	return nil, NewError(fmt.Sprintf("unsupported type %v", t), ErrKindUnsupportedNode)
}

func convertConstantValue(value ast.ConstantValue) interface{} {
	switch v := value.(type) {
	case ast.ConstantBoolean:
		return bool(v)
	case ast.ConstantInteger:
		return int64(v)
	case ast.ConstantString:
		return string(v)
	case ast.ConstantDouble:
		return float64(v)
	case ast.ConstantReference:
		return ConstRef{Name: v.Name}
	case ast.ConstantList:
		items := make([]interface{}, len(v.Items))
		for i, item := range v.Items {
			items[i] = convertConstantValue(item)
		}
		return items
	case ast.ConstantMap:
		items := make(map[string]interface{}, len(v.Items))
		for _, item := range v.Items {
			items[fmt.Sprint(convertConstantValue(item.Key))] = convertConstantValue(item.Value)
		}
		return items
	}
	return nil
}
