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

package ast_test

import (
	"github.com/botobag/thriftql/graphql/ast"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Value", func() {
	DescribeTable("ValueOf",
		func(value interface{}, literal string) {
			v := ast.ValueOf(value)
			Expect(v).ShouldNot(BeNil())
			Expect(v.String()).Should(Equal(literal))
		},
		Entry("null", nil, "null"),
		Entry("boolean", true, "true"),
		Entry("string", "say \"hi\"", `"say \"hi\""`),
		Entry("int", -12, "-12"),
		Entry("int64", int64(1)<<40, "1099511627776"),
		Entry("whole float", 2.0, "2.0"),
		Entry("float", 0.125, "0.125"),
		Entry("list", []interface{}{1, "a", nil}, `[1, "a", null]`),
		Entry("object", map[string]interface{}{"b": 1, "a": []interface{}{true}}, `{a: [true], b: 1}`),
		Entry("enum literal", ast.EnumValue{Name: "RED"}, "RED"),
	)

	It("returns nil for values without literal form", func() {
		Expect(ast.ValueOf(struct{}{})).Should(BeNil())
		Expect(ast.ValueOf([]interface{}{struct{}{}})).Should(BeNil())
		Expect(ast.ValueOf(map[string]interface{}{"x": make(chan int)})).Should(BeNil())
	})

	It("converts literals back to Go values", func() {
		Expect(ast.IntValue{Text: "42"}.Interface()).Should(Equal(int64(42)))
		Expect(ast.IntValue{Text: "x"}.Interface()).Should(BeNil())
		Expect(ast.FloatValue{Text: "1.5"}.Interface()).Should(Equal(1.5))
		Expect(ast.ListValue{Values: []ast.Value{ast.BooleanValue{Value: true}}}.Interface()).Should(
			Equal([]interface{}{true}))
		Expect(ast.ObjectValue{Fields: []*ast.ObjectField{
			{Name: "k", Value: ast.StringValue{Value: "v"}},
		}}.Interface()).Should(Equal(map[string]interface{}{"k": "v"}))

		v, err := ast.IntValue{Text: "2147483648"}.Int32Value()
		Expect(err).Should(HaveOccurred())
		Expect(v).Should(BeNumerically("==", 2147483647))
	})
})
