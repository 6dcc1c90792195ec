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

package main

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/botobag/thriftql/idl"
	. "github.com/botobag/thriftql/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const calculatorIDL = `
include "types.thrift"

service Calculator {
	types.Result add(1: required types.Operands operands)
	i32 negate(1: i32 value)
	void reset()
}
`

const typesIDL = `
struct Operands {
	1: required i64 left
	2: required i64 right
}

struct Result {
	1: i64 value
}
`

var _ = Describe("thriftql", func() {
	var (
		dir    string
		stdout *bytes.Buffer
		stderr *bytes.Buffer
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "thriftql-test-")
		Expect(err).ShouldNot(HaveOccurred())

		for name, content := range map[string]string{
			"calculator.thrift": calculatorIDL,
			"types.thrift":      typesIDL,
			"thriftql.yaml": `
services:
  calc:
    file: calculator.thrift
    methods: [add, negate, reset]
`,
			"responses.yaml": `
calc:
  add:
    value: 7
  reset: null
`,
		} {
			Expect(os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)).Should(Succeed())
		}

		stdout = &bytes.Buffer{}
		stderr = &bytes.Buffer{}
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	run := func(args ...string) error {
		cmd := newRootCommand(stdout, stderr)
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	// The configuration resolves files against the working directory unless idl_path says otherwise.
	withIDLPath := func() {
		Expect(os.Setenv("THRIFTQL_IDL_PATH", dir)).Should(Succeed())
	}

	AfterEach(func() {
		os.Unsetenv("THRIFTQL_IDL_PATH")
	})

	Describe("schema", func() {
		It("prints the schema in SDL", func() {
			withIDLPath()
			Expect(run("schema", "-c", filepath.Join(dir, "thriftql.yaml"))).Should(Succeed())
			Expect(stdout.String()).Should(EqualText(`"""Use string or number"""
scalar Int64

input OperandsInput {
  left: Int64!
  right: Int64!
}

"""The root query"""
type Query {
  Calculator_add(operands: OperandsInput!): Result
  Calculator_negate(value: Int): Int
  Calculator_reset: Boolean
}

type Result {
  value: Int64
}
`))
		})

		It("prints the operations as JSON", func() {
			withIDLPath()
			Expect(run("schema", "-c", filepath.Join(dir, "thriftql.yaml"), "--json")).Should(Succeed())
			Expect(stdout.Bytes()).Should(MatchJSON(`{
				"operations": [
					{"name": "Calculator_add", "args": [{"name": "operands", "type": "OperandsInput!"}], "type": "Result"},
					{"name": "Calculator_negate", "args": [{"name": "value", "type": "Int"}], "type": "Int"},
					{"name": "Calculator_reset", "args": [], "type": "Boolean"}
				]
			}`))
		})

		It("reads settings from an environment file", func() {
			envFile := filepath.Join(dir, "thriftql.env")
			Expect(os.WriteFile(envFile, []byte("THRIFTQL_IDL_PATH="+dir+"\nTHRIFTQL_QUERY_NAME_SEPARATOR=__\n"),
				0644)).Should(Succeed())
			defer os.Unsetenv("THRIFTQL_QUERY_NAME_SEPARATOR")

			Expect(run("schema", "-c", filepath.Join(dir, "thriftql.yaml"), "--env-file", envFile)).Should(Succeed())
			Expect(stdout.String()).Should(ContainSubstring("Calculator__negate(value: Int): Int"))
		})

		It("logs progress when verbose", func() {
			withIDLPath()
			Expect(run("schema", "-v", "-c", filepath.Join(dir, "thriftql.yaml"))).Should(Succeed())
			Expect(stderr.String()).Should(ContainSubstring("idl: loaded "))
			Expect(stderr.String()).Should(ContainSubstring("compiler: compiled function Calculator.add"))
		})

		It("fails without services", func() {
			err := run("schema")
			Expect(err).Should(MatchIDLError(KindIs(idl.ErrKindConfig)))
		})
	})

	Describe("check", func() {
		It("compiles every declaration", func() {
			Expect(run("check", filepath.Join(dir, "calculator.thrift"))).Should(Succeed())
			Expect(stdout.String()).Should(Equal("checked 2 documents: 4 types, 3 functions\n"))
		})

		It("reports the first error", func() {
			broken := filepath.Join(dir, "broken.thrift")
			Expect(os.WriteFile(broken, []byte(`
				struct Broken {
					1: types.Missing missing
				}
			`), 0644)).Should(Succeed())

			err := run("check", broken)
			Expect(err).Should(HaveOccurred())
			Expect(idl.KindOf(err)).Should(Equal(idl.ErrKindUnresolvedIdentifier))
		})

		It("requires files", func() {
			Expect(run("check")).ShouldNot(Succeed())
		})
	})

	Describe("call", func() {
		It("executes an operation against the fixture", func() {
			withIDLPath()
			Expect(run("call", "-c", filepath.Join(dir, "thriftql.yaml"),
				"--fixture", filepath.Join(dir, "responses.yaml"),
				"--args", `{"operands": {"left": "1", "right": 2}}`,
				"Calculator_add")).Should(Succeed())
			Expect(stdout.Bytes()).Should(MatchJSON(`{"value": "7"}`))
		})

		It("passes i64 arguments beyond 2^53 exactly", func() {
			withIDLPath()
			Expect(run("call", "-v", "-c", filepath.Join(dir, "thriftql.yaml"),
				"--fixture", filepath.Join(dir, "responses.yaml"),
				"--args", `{"operands": {"left": 9007199254740993, "right": -9223372036854775808}}`,
				"Calculator_add")).Should(Succeed())
			Expect(stdout.Bytes()).Should(MatchJSON(`{"value": "7"}`))
			Expect(stderr.String()).Should(ContainSubstring(
				`rpc: called calc.add with {"left":9007199254740993,"right":-9223372036854775808}`))
		})

		It("resolves void operations to true", func() {
			withIDLPath()
			Expect(run("call", "-c", filepath.Join(dir, "thriftql.yaml"),
				"--fixture", filepath.Join(dir, "responses.yaml"),
				"Calculator_reset")).Should(Succeed())
			Expect(stdout.String()).Should(Equal("true\n"))
		})

		It("rejects malformed arguments", func() {
			withIDLPath()
			err := run("call", "-c", filepath.Join(dir, "thriftql.yaml"), "--args", "[1", "Calculator_negate")
			Expect(err).Should(MatchIDLError(
				MessageEqual("--args must be a JSON object"),
				KindIs(idl.ErrKindConfig),
			))
		})

		It("fails operations without a canned response", func() {
			withIDLPath()
			err := run("call", "-c", filepath.Join(dir, "thriftql.yaml"),
				"--args", `{"value": 1}`, "Calculator_negate")
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("no handler for method"))
		})
	})
})
