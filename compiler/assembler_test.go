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

package compiler_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"

	"github.com/botobag/thriftql/compiler"
	"github.com/botobag/thriftql/concurrent"
	"github.com/botobag/thriftql/graphql"
	"github.com/botobag/thriftql/idl"
	. "github.com/botobag/thriftql/internal/testutil"
	"github.com/botobag/thriftql/rpc"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const calculatorIDL = `
	struct Operands {
		1: required i64 left
		2: required i64 right
	}

	enum Op {
		ADD
		MUL
	}

	struct Result {
		1: i64 value
		2: Op op
	}

	service Calculator {
		Result compute(1: Operands operands, 2: Op op = Op.ADD)
		i32 negate(1: i32 value)
		void reset()
		Operands echo(1: Operands operands)
	}
`

var _ = Describe("Assemble", func() {
	var (
		session *compiler.Session
		main    string
		client  *rpc.StaticClient
	)

	BeforeEach(func() {
		session, main = newSession(compiler.Config{}, map[string]string{
			"main.thrift": calculatorIDL,
		})
		client = rpc.NewStaticClient(nil)
	})

	strictConfig := func() *compiler.AssembleConfig {
		return &compiler.AssembleConfig{
			Services: map[string]compiler.ServiceConfig{
				"calc": {
					File:    main,
					Servers: []string{"localhost:9090"},
					Methods: map[string]rpc.Hooks{
						"compute": {},
						"negate":  {},
						"reset":   {},
					},
				},
			},
			Strict:        true,
			ClientFactory: rpc.FactoryOf(client),
		}
	}

	It("builds the root query of the exposed functions", func() {
		schema, err := compiler.Assemble(session, strictConfig())
		Expect(err).ShouldNot(HaveOccurred())

		Expect(graphql.PrintSchema(schema)).Should(EqualText(`"""Use string or number"""
scalar Int64

enum Op {
  ADD
  MUL
}

input OperandsInput {
  left: Int64!
  right: Int64!
}

"""The root query"""
type Query {
  Calculator_compute(op: Op = ADD, operands: OperandsInput): Result
  Calculator_negate(value: Int): Int
  Calculator_reset: Boolean
}

type Result {
  op: Op
  value: Int64
}
`))
	})

	It("exposes every function when not strict", func() {
		config := strictConfig()
		config.Strict = false
		config.Services["calc"] = compiler.ServiceConfig{File: main}

		schema, err := compiler.Assemble(session, config)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(schema.Query().Fields()).Should(HaveLen(4))
		Expect(schema.Query().Fields()).Should(HaveKey("Calculator_echo"))
		Expect(schema.TypeMap().Lookup("Operands")).ShouldNot(BeNil())
		Expect(schema.TypeMap().Lookup("OperandsInput")).ShouldNot(BeNil())
	})

	It("names root fields with the configured namer", func() {
		config := strictConfig()
		config.QueryNamer = func(service string, function string) string {
			return function
		}

		schema, err := compiler.Assemble(session, config)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(schema.Query().Fields()).Should(HaveKey("compute"))
		Expect(schema.Query().Fields()).Should(HaveKey("negate"))
		Expect(schema.Query().Fields()).Should(HaveKey("reset"))
	})

	It("hands the routes to the client factory", func() {
		var routes []rpc.Route
		config := strictConfig()
		config.ClientFactory = rpc.ClientFactoryFunc(func(r []rpc.Route) (rpc.Client, error) {
			routes = r
			return client, nil
		})

		_, err := compiler.Assemble(session, config)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(routes).Should(Equal([]rpc.Route{
			{Service: "calc", File: main, Servers: []string{"localhost:9090"}},
		}))
	})

	It("fails when the client factory fails", func() {
		factoryErr := errors.New("no route to host")
		config := strictConfig()
		config.ClientFactory = rpc.ClientFactoryFunc(func([]rpc.Route) (rpc.Client, error) {
			return nil, factoryErr
		})

		_, err := compiler.Assemble(session, config)
		Expect(errors.Is(err, factoryErr)).Should(BeTrue())
	})

	It("reports functions the service does not declare", func() {
		config := strictConfig()
		config.Services["calc"].Methods["divide"] = rpc.Hooks{}

		_, err := compiler.Assemble(session, config)
		Expect(err).Should(MatchIDLError(
			KindIs(idl.ErrKindUnresolvedIdentifier),
			IdentifierEqual("divide"),
			FileHasSuffix("main.thrift"),
		))
	})

	It("reports unknown services", func() {
		config := strictConfig()
		service := config.Services["calc"]
		service.Service = "Abacus"
		config.Services["calc"] = service

		_, err := compiler.Assemble(session, config)
		Expect(err).Should(MatchIDLError(
			KindIs(idl.ErrKindUnresolvedIdentifier),
			IdentifierEqual("Abacus"),
		))
	})

	It("requires at least one exposed function", func() {
		config := strictConfig()
		config.Services["calc"] = compiler.ServiceConfig{File: main}

		_, err := compiler.Assemble(session, config)
		Expect(err).Should(MatchIDLError(KindIs(idl.ErrKindConfig)))
	})

	It("rejects root fields with the same name", func() {
		config := strictConfig()
		config.Services["calc2"] = config.Services["calc"]

		_, err := compiler.Assemble(session, config)
		Expect(err).Should(MatchIDLError(
			MessageEqual("root field Calculator_compute is defined more than once"),
			KindIs(idl.ErrKindConfig),
		))
	})

	It("suffixes declarations named after the root query or a scalar", func() {
		path := filepath.Join(fixture(map[string]string{
			"names.thrift": `
				struct Query {
					1: i32 a
				}
				enum Map {
					A
				}
				service S {
					Query get(1: Map m)
				}
			`,
		}), "names.thrift")

		schema, err := compiler.Assemble(compiler.NewSession(compiler.Config{}), &compiler.AssembleConfig{
			Services: map[string]compiler.ServiceConfig{
				"s": {File: path},
			},
		})
		Expect(err).ShouldNot(HaveOccurred())

		get := schema.Query().Fields()["S_get"]
		Expect(get).ShouldNot(BeNil())
		Expect(get.Type().String()).Should(Equal("Query_1"))
		Expect(get.Args()[0].Type().String()).Should(Equal("Map_1"))
		Expect(schema.TypeMap().Lookup("Query")).Should(BeIdenticalTo(schema.Query()))
		Expect(schema.TypeMap().Lookup("Map")).Should(BeNil())
	})

	It("aborts on signatures that do not compile", func() {
		broken := filepath.Join(fixture(map[string]string{
			"broken.thrift": `
				struct Request {
					1: Missing missing
				}
				service Broken {
					bool run(1: Request request)
				}
			`,
		}), "broken.thrift")

		_, err := compiler.Assemble(compiler.NewSession(compiler.Config{}), &compiler.AssembleConfig{
			Services: map[string]compiler.ServiceConfig{
				"broken": {File: broken},
			},
		})
		Expect(err).Should(HaveOccurred())
		Expect(idl.KindOf(err)).Should(Equal(idl.ErrKindUnresolvedIdentifier))
	})
})

var _ = Describe("Execute", func() {
	var (
		session *compiler.Session
		main    string
		client  *rpc.StaticClient
		config  *compiler.AssembleConfig
	)

	BeforeEach(func() {
		session, main = newSession(compiler.Config{}, map[string]string{
			"main.thrift": calculatorIDL,
		})
		client = rpc.NewStaticClient(nil)
		config = &compiler.AssembleConfig{
			Services: map[string]compiler.ServiceConfig{
				"calc": {File: main},
			},
			ClientFactory: rpc.FactoryOf(client),
		}
	})

	It("sends the argument map and completes the response", func() {
		client.Respond("calc", "compute", map[string]interface{}{
			"value": int64(7),
			"op":    int64(1),
		})

		schema, err := compiler.Assemble(session, config)
		Expect(err).ShouldNot(HaveOccurred())

		result, err := compiler.Execute(context.Background(), schema, "Calculator_compute", map[string]interface{}{
			"operands": map[string]interface{}{"left": "3", "right": float64(4)},
		})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(result).Should(Equal(map[string]interface{}{
			"value": "7",
			"op":    "MUL",
		}))

		Expect(client.Calls()).Should(Equal([]rpc.RecordedCall{
			{
				Service: "calc",
				Method:  "compute",
				Request: map[string]interface{}{
					"op":       int64(0),
					"operands": map[string]interface{}{"left": int64(3), "right": int64(4)},
				},
			},
		}))
	})

	It("keeps i64 arguments beyond 2^53 exact", func() {
		client.Handle("calc", "echo", rpc.InvokerFunc(
			func(ctx context.Context, service string, method string, request interface{}) (interface{}, error) {
				return request, nil
			}))

		schema, err := compiler.Assemble(session, config)
		Expect(err).ShouldNot(HaveOccurred())

		_, err = compiler.Execute(context.Background(), schema, "Calculator_echo", map[string]interface{}{
			"operands": map[string]interface{}{"left": float64(1<<53 + 2), "right": 1},
		})
		Expect(idl.KindOf(err)).Should(Equal(idl.ErrKindInvalidScalar))
		Expect(client.Calls()).Should(BeEmpty())

		result, err := compiler.Execute(context.Background(), schema, "Calculator_echo", map[string]interface{}{
			"operands": map[string]interface{}{
				"left":  json.Number("9007199254740993"),
				"right": json.Number("-9223372036854775808"),
			},
		})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(result).Should(Equal(map[string]interface{}{
			"left":  "9007199254740993",
			"right": "-9223372036854775808",
		}))
		Expect(client.Calls()).Should(Equal([]rpc.RecordedCall{
			{
				Service: "calc",
				Method:  "echo",
				Request: map[string]interface{}{
					"left":  int64(9007199254740993),
					"right": int64(-9223372036854775808),
				},
			},
		}))
	})

	It("resolves void functions to true", func() {
		client.Respond("calc", "reset", nil)

		schema, err := compiler.Assemble(session, config)
		Expect(err).ShouldNot(HaveOccurred())

		result, err := compiler.Execute(context.Background(), schema, "Calculator_reset", nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(result).Should(Equal(true))
	})

	It("runs global hooks before method hooks", func() {
		var (
			steps         []string
			requestExtra  *rpc.Extra
			responseExtra *rpc.Extra
		)

		config.GlobalHooks = rpc.Hooks{
			OnRequest: rpc.SyncHook(func(value interface{}, extra *rpc.Extra) (interface{}, error) {
				steps = append(steps, "global request")
				requestExtra = extra
				return value, nil
			}),
			OnResponse: rpc.SyncHook(func(value interface{}, extra *rpc.Extra) (interface{}, error) {
				steps = append(steps, "global response")
				responseExtra = extra
				return value, nil
			}),
		}
		config.Services["calc"] = compiler.ServiceConfig{
			File: main,
			Methods: map[string]rpc.Hooks{
				"negate": {
					OnRequest: rpc.SyncHook(func(value interface{}, extra *rpc.Extra) (interface{}, error) {
						steps = append(steps, "method request")
						return value.(int) * 10, nil
					}),
					OnResponse: rpc.SyncHook(func(value interface{}, extra *rpc.Extra) (interface{}, error) {
						steps = append(steps, "method response")
						return value.(int) + 1, nil
					}),
				},
			},
		}
		client.Handle("calc", "negate", rpc.InvokerFunc(
			func(ctx context.Context, service string, method string, request interface{}) (interface{}, error) {
				steps = append(steps, "call")
				return -request.(int), nil
			}))

		schema, err := compiler.Assemble(session, config)
		Expect(err).ShouldNot(HaveOccurred())

		result, err := compiler.Execute(context.Background(), schema, "Calculator_negate", map[string]interface{}{
			"value": 5,
		})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(result).Should(Equal(-49))

		Expect(steps).Should(Equal([]string{
			"global request",
			"method request",
			"call",
			"global response",
			"method response",
		}))

		Expect(requestExtra.Service).Should(Equal("calc"))
		Expect(requestExtra.Method).Should(Equal("negate"))
		Expect(requestExtra.Request).Should(BeNil())
		Expect(responseExtra.CallID).Should(Equal(requestExtra.CallID))
		Expect(responseExtra.Request).Should(Equal(50))
	})

	It("fails the operation when a hook fails", func() {
		hookErr := errors.New("unauthorized")
		config.GlobalHooks.OnRequest = rpc.SyncHook(func(interface{}, *rpc.Extra) (interface{}, error) {
			return nil, hookErr
		})
		client.Respond("calc", "negate", 1)

		schema, err := compiler.Assemble(session, config)
		Expect(err).ShouldNot(HaveOccurred())

		_, err = compiler.Execute(context.Background(), schema, "Calculator_negate", map[string]interface{}{
			"value": 1,
		})
		Expect(errors.Is(err, hookErr)).Should(BeTrue())
		Expect(client.Calls()).Should(BeEmpty())
	})

	It("passes client errors through", func() {
		schema, err := compiler.Assemble(session, config)
		Expect(err).ShouldNot(HaveOccurred())

		_, err = compiler.Execute(context.Background(), schema, "Calculator_negate", map[string]interface{}{
			"value": 1,
		})
		Expect(errors.Is(err, rpc.ErrNoHandler)).Should(BeTrue())
	})

	It("fails calls without a client", func() {
		config.ClientFactory = nil

		schema, err := compiler.Assemble(session, config)
		Expect(err).ShouldNot(HaveOccurred())

		_, err = compiler.Execute(context.Background(), schema, "Calculator_reset", nil)
		Expect(errors.Is(err, rpc.ErrNoClient)).Should(BeTrue())
	})

	It("rejects unknown root fields and invalid arguments", func() {
		schema, err := compiler.Assemble(session, config)
		Expect(err).ShouldNot(HaveOccurred())

		_, err = compiler.Execute(context.Background(), schema, "Calculator_divide", nil)
		Expect(err).Should(MatchIDLError(
			KindIs(idl.ErrKindUnresolvedIdentifier),
			IdentifierEqual("Calculator_divide"),
		))

		_, err = compiler.Execute(context.Background(), schema, "calculator_reset", nil)
		Expect(err).Should(MatchIDLError(
			MessageContainSubstring(`no root field "calculator_reset". Did you mean "Calculator_reset"`),
		))

		_, err = compiler.Execute(context.Background(), schema, "Calculator_compute", map[string]interface{}{
			"operands": map[string]interface{}{"left": "x", "right": 1},
		})
		Expect(err).Should(HaveOccurred())
		Expect(idl.KindOf(err)).Should(Equal(idl.ErrKindInvalidScalar))
	})

	It("reports root fields without a resolver as configuration errors", func() {
		query, err := graphql.NewObject(&graphql.ObjectConfig{
			Name:   "Query",
			Fields: graphql.Fields{"ping": {Type: graphql.Boolean()}},
		})
		Expect(err).ShouldNot(HaveOccurred())
		schema, err := graphql.NewSchema(&graphql.SchemaConfig{Query: query})
		Expect(err).ShouldNot(HaveOccurred())

		_, err = compiler.Execute(context.Background(), schema, "ping", nil)
		Expect(err).Should(MatchIDLError(
			MessageEqual("root field ping has no resolver"),
			KindIs(idl.ErrKindConfig),
			IdentifierEqual("ping"),
		))
	})

	It("resolves calls made on a worker pool", func() {
		executor, err := concurrent.NewWorkerPoolExecutor(concurrent.WorkerPoolExecutorConfig{
			MaxPoolSize: 4,
		})
		Expect(err).ShouldNot(HaveOccurred())
		defer func() {
			terminated, err := executor.Shutdown()
			Expect(err).ShouldNot(HaveOccurred())
			Eventually(terminated).Should(BeClosed())
		}()

		var mu sync.Mutex
		seen := map[int]bool{}
		client.Handle("calc", "negate", rpc.InvokerFunc(
			func(ctx context.Context, service string, method string, request interface{}) (interface{}, error) {
				mu.Lock()
				seen[request.(int)] = true
				mu.Unlock()
				return -request.(int), nil
			}))
		config.ClientFactory = rpc.FactoryOf(rpc.NewAsyncClient(client, executor))

		schema, err := compiler.Assemble(session, config)
		Expect(err).ShouldNot(HaveOccurred())

		for i := 1; i <= 8; i++ {
			result, err := compiler.Execute(context.Background(), schema, "Calculator_negate", map[string]interface{}{
				"value": i,
			})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(result).Should(Equal(-i))
		}
		Expect(seen).Should(HaveLen(8))
	})

	It("isolates failing selections from their siblings", func() {
		negateErr := errors.New("zero cannot be negated")
		client.Handle("calc", "negate", rpc.InvokerFunc(
			func(ctx context.Context, service string, method string, request interface{}) (interface{}, error) {
				if request.(int) == 0 {
					return nil, negateErr
				}
				return -request.(int), nil
			}))
		client.Respond("calc", "reset", nil)

		schema, err := compiler.Assemble(session, config)
		Expect(err).ShouldNot(HaveOccurred())

		results, err := compiler.ExecuteAll(context.Background(), schema, []compiler.Selection{
			{Name: "Calculator_negate", Args: map[string]interface{}{"value": 2}},
			{Name: "Calculator_negate", Args: map[string]interface{}{"value": 0}},
			{Name: "Calculator_divide"},
			{Name: "Calculator_reset"},
		})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(results).Should(HaveLen(4))

		Expect(results[0]).Should(Equal(compiler.Result{Name: "Calculator_negate", Value: -2}))
		Expect(errors.Is(results[1].Err, negateErr)).Should(BeTrue())
		Expect(results[2].Err).Should(MatchIDLError(KindIs(idl.ErrKindUnresolvedIdentifier)))
		Expect(results[3]).Should(Equal(compiler.Result{Name: "Calculator_reset", Value: true}))
	})
})
