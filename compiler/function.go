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

	"github.com/botobag/thriftql/graphql"
	"github.com/botobag/thriftql/idl"
	"github.com/botobag/thriftql/internal/util"
)

// Operation is the compiled signature of a service function.
type Operation struct {
	// File is the canonical path of the document that declares the service.
	File string

	Service  *idl.Service
	Function *idl.Function

	// Args are the function parameters compiled as inputs.
	Args graphql.ArgumentConfigMap

	// Params lists the parameter names in declaration order.
	Params []string

	// Type is the compiled result. Void functions return Boolean.
	Type graphql.Type
}

// Void returns true if the function has no result.
func (op *Operation) Void() bool {
	return op.Function.Result == nil
}

// CompileFunction compiles the function of the service declared in file. An empty service name
// selects the first service of the document.
func (s *Session) CompileFunction(file string, service string, function string) (*Operation, error) {
	const op = idl.Op("compiler.CompileFunction")

	doc, err := s.Document(file)
	if err != nil {
		return nil, err
	}

	svc := doc.Service(service)
	if svc == nil {
		return nil, idl.NewError(fmt.Sprintf("no service %q in the document", service),
			idl.ErrKindUnresolvedIdentifier, idl.File(doc.Path), idl.Identifier(service), op)
	}

	fn := svc.Function(function)
	if fn == nil {
		return nil, idl.NewError(fmt.Sprintf("service %s has no function %q.%s", svc.Name, function,
			util.DidYouMean(function, functionNames(svc))),
			idl.ErrKindUnresolvedIdentifier, idl.File(doc.Path), idl.Identifier(function), op)
	}

	return s.compileOperation(doc.Path, svc, fn)
}

func (s *Session) compileOperation(file string, svc *idl.Service, fn *idl.Function) (*Operation, error) {
	const op = idl.Op("compiler.CompileFunction")

	operation := &Operation{
		File:     file,
		Service:  svc,
		Function: fn,
		Params:   make([]string, 0, len(fn.Params)),
	}

	if len(fn.Params) > 0 {
		operation.Args = make(graphql.ArgumentConfigMap, len(fn.Params))
	}
	for _, param := range fn.Params {
		t, err := s.Compile(param, file, Input)
		if err != nil {
			return nil, idl.NewError(fmt.Sprintf("cannot compile %s.%s", svc.Name, fn.Name), err, op)
		}

		arg := graphql.ArgumentConfig{
			Description: param.Doc,
			Type:        t,
		}
		if param.Default != nil {
			if value := s.defaultValue(param, t); value != nil {
				if value == graphql.NilInputFieldDefaultValue {
					value = graphql.NilArgumentDefaultValue
				}
				arg.DefaultValue = value
			}
		}
		operation.Args[param.Name] = arg
		operation.Params = append(operation.Params, param.Name)
	}

	if fn.Result == nil {
		operation.Type = graphql.Boolean()
	} else {
		t, err := s.Compile(fn.Result, file, Output)
		if err != nil {
			return nil, idl.NewError(fmt.Sprintf("cannot compile result of %s.%s", svc.Name, fn.Name), err, op)
		}
		operation.Type = t
	}

	s.config.logger().Printf("compiler: compiled function %s.%s", svc.Name, fn.Name)
	return operation, nil
}

func functionNames(svc *idl.Service) []string {
	names := make([]string, len(svc.Functions))
	for i, fn := range svc.Functions {
		names[i] = fn.Name
	}
	return names
}
