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
	"path/filepath"

	"github.com/botobag/thriftql/compiler"
	"github.com/botobag/thriftql/graphql"
	"github.com/botobag/thriftql/idl"
	. "github.com/botobag/thriftql/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("CompileFunction", func() {
	var (
		session *compiler.Session
		main    string
	)

	BeforeEach(func() {
		session, main = newSession(compiler.Config{}, map[string]string{
			"main.thrift": calculatorIDL + `
				service Admin {
					oneway void shutdown(1: required string reason, 2: i32 delay = 30)
				}
			`,
		})
	})

	It("compiles parameters as inputs and the result as output", func() {
		op, err := session.CompileFunction(main, "", "compute")
		Expect(err).ShouldNot(HaveOccurred())

		Expect(op.File).Should(Equal(main))
		Expect(op.Service.Name).Should(Equal("Calculator"))
		Expect(op.Params).Should(Equal([]string{"operands", "op"}))
		Expect(op.Void()).Should(BeFalse())
		Expect(op.Type.String()).Should(Equal("Result"))
		Expect(op.Args["operands"].Type.String()).Should(Equal("OperandsInput"))
		Expect(op.Args["op"].Type.String()).Should(Equal("Op"))
		Expect(op.Args["op"].DefaultValue).Should(Equal(int64(0)))
	})

	It("returns Boolean for void functions", func() {
		op, err := session.CompileFunction(main, "Admin", "shutdown")
		Expect(err).ShouldNot(HaveOccurred())

		Expect(op.Void()).Should(BeTrue())
		Expect(op.Function.OneWay).Should(BeTrue())
		Expect(op.Type).Should(BeIdenticalTo(graphql.Boolean()))
		Expect(op.Args["reason"].Type.String()).Should(Equal("String!"))
		Expect(op.Args["delay"].DefaultValue).Should(Equal(30))
	})

	It("compiles functions without parameters", func() {
		op, err := session.CompileFunction(main, "Calculator", "reset")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(op.Args).Should(BeEmpty())
		Expect(op.Params).Should(BeEmpty())
	})

	It("reports unknown services and functions", func() {
		_, err := session.CompileFunction(main, "Abacus", "compute")
		Expect(err).Should(MatchIDLError(
			KindIs(idl.ErrKindUnresolvedIdentifier),
			IdentifierEqual("Abacus"),
			FileHasSuffix("main.thrift"),
		))

		_, err = session.CompileFunction(main, "Calculator", "divide")
		Expect(err).Should(MatchIDLError(
			MessageContainSubstring(`service Calculator has no function "divide".`),
			KindIs(idl.ErrKindUnresolvedIdentifier),
			IdentifierEqual("divide"),
		))
	})

	It("suggests similar function names", func() {
		_, err := session.CompileFunction(main, "Calculator", "negat")
		Expect(err).Should(MatchIDLError(
			MessageEqual(`service Calculator has no function "negat". Did you mean "negate"?`),
		))
	})

	It("loads documents on demand", func() {
		other := compiler.NewSession(compiler.Config{})
		op, err := other.CompileFunction(main, "", "negate")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(op.Type).Should(BeIdenticalTo(graphql.Int()))
		Expect(other.Documents().Len()).Should(Equal(1))
	})
})

var _ = Describe("Compiling a function across includes", func() {
	It("separates the input shape of an included struct from its output shape", func() {
		dir := fixture(map[string]string{
			"math.thrift": `
				enum Op {
					ADD,
					SUBTRACT
				}

				struct Calc {
					1: i32 a
					2: i32 b
					3: Op op
				}
			`,
			"service.thrift": `
				include "math.thrift"

				service Arithmetic {
					i32 calculate(1: math.Calc w)
				}
			`,
		})

		session := compiler.NewSession(compiler.Config{})
		op, err := session.CompileFunction(filepath.Join(dir, "service.thrift"), "Arithmetic", "calculate")
		Expect(err).ShouldNot(HaveOccurred())

		input, ok := op.Args["w"].Type.(graphql.InputObject)
		Expect(ok).Should(BeTrue())

		output, err := session.CompileDeclaration(filepath.Join(dir, "math.thrift"), "Calc", compiler.Output)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(output).ShouldNot(BeIdenticalTo(input))
		Expect(output.(graphql.Object).Name()).ShouldNot(Equal(input.Name()))

		enum, ok := input.Fields()["op"].Type().(graphql.Enum)
		Expect(ok).Should(BeTrue())
		Expect(enum.Values()).Should(HaveLen(2))
		Expect(enum.Value("ADD").Value()).Should(Equal(int64(0)))
		Expect(enum.Value("SUBTRACT").Value()).Should(Equal(int64(1)))
		Expect(output.(graphql.Object).Fields()["op"].Type()).Should(BeIdenticalTo(enum))
	})
})
