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
	"context"
	"fmt"
	"sort"

	"github.com/botobag/thriftql/concurrent/future"
	"github.com/botobag/thriftql/graphql"
	"github.com/botobag/thriftql/idl"
	"github.com/botobag/thriftql/internal/util"
	"github.com/botobag/thriftql/rpc"
)

// ServiceConfig exposes the functions of one IDL service.
type ServiceConfig struct {
	// File is the path of the document that declares the service.
	File string

	// Service is the name of the service in File. The first service is used when empty.
	Service string

	// Servers are handed to the client factory along with the service.
	Servers []string

	// Methods lists the exposed functions with their hooks. In strict mode only the listed functions
	// are exposed.
	Methods map[string]rpc.Hooks
}

// QueryNamer names the root field of a service function.
type QueryNamer func(service string, function string) string

// DefaultQueryNamer joins the service and function names with an underscore.
func DefaultQueryNamer(service string, function string) string {
	return service + "_" + function
}

// AssembleConfig configures Assemble.
type AssembleConfig struct {
	// Services maps the name under which a service is called to its configuration.
	Services map[string]ServiceConfig

	// Strict omits functions that are not listed in ServiceConfig.Methods.
	Strict bool

	// QueryNamer names root fields from the IDL service name. DefaultQueryNamer is used when nil.
	QueryNamer QueryNamer

	// GlobalHooks run for every call, before the hooks of the method.
	GlobalHooks rpc.Hooks

	// ClientFactory creates the client that performs calls. Calls fail with rpc.ErrNoClient when nil.
	ClientFactory rpc.ClientFactory
}

// Assemble compiles the configured services of session into a schema whose root query has one
// field per exposed function.
func Assemble(session *Session, config *AssembleConfig) (*graphql.Schema, error) {
	const op = idl.Op("compiler.Assemble")

	queryNamer := config.QueryNamer
	if queryNamer == nil {
		queryNamer = DefaultQueryNamer
	}

	names := make([]string, 0, len(config.Services))
	for name := range config.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	routes := make([]rpc.Route, 0, len(names))
	for _, name := range names {
		service := config.Services[name]
		routes = append(routes, rpc.Route{
			Service: name,
			File:    service.File,
			Servers: service.Servers,
		})
	}

	factory := config.ClientFactory
	if factory == nil {
		factory = rpc.FactoryOf(rpc.UnavailableClient)
	}
	client, err := factory.NewClient(routes)
	if err != nil {
		return nil, idl.NewError("cannot create client", err, op)
	}

	fields := graphql.Fields{}
	for _, name := range names {
		service := config.Services[name]

		doc, err := session.Document(service.File)
		if err != nil {
			return nil, idl.NewError(fmt.Sprintf("cannot load service %s", name), err, op)
		}
		svc := doc.Service(service.Service)
		if svc == nil {
			return nil, idl.NewError(fmt.Sprintf("no service %q in the document", service.Service),
				idl.ErrKindUnresolvedIdentifier, idl.File(doc.Path), idl.Identifier(service.Service), op)
		}

		for _, fn := range svc.Functions {
			hooks, listed := service.Methods[fn.Name]
			if config.Strict && !listed {
				continue
			}

			operation, err := session.compileOperation(doc.Path, svc, fn)
			if err != nil {
				return nil, err
			}

			fieldName := queryNamer(svc.Name, fn.Name)
			if _, exists := fields[fieldName]; exists {
				return nil, idl.NewError(fmt.Sprintf("root field %s is defined more than once", fieldName),
					idl.ErrKindConfig, idl.File(doc.Path), op)
			}
			fields[fieldName] = &graphql.FieldConfig{
				Description: fn.Doc,
				Type:        operation.Type,
				Args:        operation.Args,
				Resolver: &operationResolver{
					service:     name,
					operation:   operation,
					client:      client,
					globalHooks: config.GlobalHooks,
					hooks:       hooks,
				},
			}
		}

		methods := make([]string, 0, len(service.Methods))
		for method := range service.Methods {
			methods = append(methods, method)
		}
		sort.Strings(methods)
		for _, method := range methods {
			if svc.Function(method) == nil {
				return nil, idl.NewError(fmt.Sprintf("service %s has no function %q.%s", svc.Name, method,
					util.DidYouMean(method, functionNames(svc))),
					idl.ErrKindUnresolvedIdentifier, idl.File(doc.Path), idl.Identifier(method), op)
			}
		}
	}

	if len(fields) == 0 {
		return nil, idl.NewError("no function is exposed", idl.ErrKindConfig, op)
	}

	query, err := graphql.NewObject(&graphql.ObjectConfig{
		Name:        queryTypeName,
		Description: "The root query",
		Fields:      fields,
	})
	if err != nil {
		return nil, err
	}

	return graphql.NewSchema(&graphql.SchemaConfig{
		Query: query,
	})
}

// operationResolver resolves a root field by calling the function through the client.
type operationResolver struct {
	service     string
	operation   *Operation
	client      rpc.Client
	globalHooks rpc.Hooks
	hooks       rpc.Hooks
}

var _ graphql.FieldResolver = (*operationResolver)(nil)

// Resolve implements graphql.FieldResolver. The result is a future.Future.
func (r *operationResolver) Resolve(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	method := r.operation.Function.Name
	extra := rpc.NewExtra(ctx, r.service, method)

	request := r.request(info.Args())
	result := future.Then(rpc.Chain(request, extra, r.globalHooks.OnRequest, r.hooks.OnRequest),
		func(request interface{}) (interface{}, error) {
			responseExtra := extra.ForResponse(request)
			response := future.Then(r.client.Call(extra.Context, r.service, method, request),
				func(response interface{}) (interface{}, error) {
					return rpc.Chain(response, responseExtra, r.globalHooks.OnResponse, r.hooks.OnResponse), nil
				})
			return response, nil
		})

	if r.operation.Void() {
		result = future.Then(result, func(interface{}) (interface{}, error) {
			return true, nil
		})
	}
	return result, nil
}

// request binds the argument values to the request sent to the client. A function with a single
// parameter is called with the value of that parameter.
func (r *operationResolver) request(args graphql.ArgumentValues) interface{} {
	if len(r.operation.Params) == 1 {
		return args.Get(r.operation.Params[0])
	}
	return args.Map()
}
