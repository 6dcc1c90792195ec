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

package graphql_test

import (
	"github.com/botobag/thriftql/graphql"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("PrintSchema", func() {
	It("prints types in name order", func() {
		status := graphql.MustNewEnum(&graphql.EnumConfig{
			Name:        "Status",
			Description: "Status of an order",
			Values: graphql.EnumValueDefinitionMap{
				"OPEN":   {Value: 1},
				"CLOSED": {Value: 2, Description: "No longer accepts changes"},
				"LEGACY": {Value: 3, Deprecation: &graphql.Deprecation{Reason: "Use CLOSED"}},
			},
		})
		orderInput := graphql.MustNewInputObject(&graphql.InputObjectConfig{
			Name: "OrderInput",
			Fields: graphql.InputFields{
				"id":     {Type: graphql.MustNewNonNullOfType(graphql.ID())},
				"tags":   {Type: graphql.MustNewListOfType(graphql.String()), DefaultValue: []interface{}{"a", "b"}},
				"status": {Type: status, DefaultValue: graphql.NilInputFieldDefaultValue},
			},
		})
		order := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Order",
			Fields: graphql.Fields{
				"id":     {Type: graphql.MustNewNonNullOfType(graphql.ID())},
				"status": {Type: status},
				"total": {
					Type:        graphql.Float(),
					Description: "Sum of all items\nin cents",
					Deprecation: &graphql.Deprecation{},
				},
			},
		})
		query := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"order": {
					Type: order,
					Args: graphql.ArgumentConfigMap{
						"input": {Type: graphql.MustNewNonNullOfType(orderInput)},
						"limit": {Type: graphql.Int(), DefaultValue: 10},
					},
				},
			},
		})

		schema := graphql.MustNewSchema(&graphql.SchemaConfig{Query: query})
		Expect(graphql.PrintSchema(schema)).Should(Equal(`type Order {
  id: ID!
  status: Status
  """
  Sum of all items
  in cents
  """
  total: Float @deprecated
}

input OrderInput {
  id: ID!
  status: Status = null
  tags: [String] = ["a", "b"]
}

type Query {
  order(input: OrderInput!, limit: Int = 10): Order
}

"""Status of an order"""
enum Status {
  """No longer accepts changes"""
  CLOSED
  LEGACY @deprecated(reason: "Use CLOSED")
  OPEN
}
`))
	})

	It("prints the schema definition for unconventional root names", func() {
		root := graphql.MustNewObject(&graphql.ObjectConfig{
			Name:   "Root",
			Fields: graphql.Fields{"ok": {Type: graphql.Boolean()}},
		})
		schema := graphql.MustNewSchema(&graphql.SchemaConfig{Query: root})
		Expect(graphql.PrintSchema(schema)).Should(Equal(`type Root {
  ok: Boolean
}

schema {
  query: Root
}
`))
	})

	It("prints enum default values by name", func() {
		color := graphql.MustNewEnum(&graphql.EnumConfig{
			Name: "Color",
			Values: graphql.EnumValueDefinitionMap{
				"RED":  {Value: int64(0)},
				"BLUE": {Value: int64(1)},
			},
		})
		query := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"paint": {
					Type: graphql.Boolean(),
					Args: graphql.ArgumentConfigMap{
						"color": {Type: color, DefaultValue: int64(1)},
					},
				},
			},
		})

		schema := graphql.MustNewSchema(&graphql.SchemaConfig{Query: query})
		Expect(graphql.PrintSchema(schema)).Should(Equal(`enum Color {
  BLUE
  RED
}

type Query {
  paint(color: Color = BLUE): Boolean
}
`))
	})
})
