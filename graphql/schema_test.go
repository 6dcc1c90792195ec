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

var _ = Describe("Schema", func() {
	It("requires a query root", func() {
		_, err := graphql.NewSchema(&graphql.SchemaConfig{})
		Expect(err).Should(HaveOccurred())
		Expect(graphql.IsErrKind(err, graphql.ErrKindValidation)).Should(BeTrue())
	})

	It("collects all named types reachable from roots", func() {
		color := graphql.MustNewEnum(&graphql.EnumConfig{
			Name: "Color",
			Values: graphql.EnumValueDefinitionMap{
				"RED": {Value: 0},
			},
		})
		filter := graphql.MustNewInputObject(&graphql.InputObjectConfig{
			Name: "Filter",
			Fields: graphql.InputFields{
				"color": {Type: color},
			},
		})
		item := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Item",
			Fields: graphql.Fields{
				"color": {Type: color},
			},
		})
		query := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"items": {
					Type: graphql.MustNewListOfType(item),
					Args: graphql.ArgumentConfigMap{
						"filter": {Type: filter},
					},
				},
			},
		})
		orphan := graphql.MustNewScalar(&graphql.ScalarConfig{
			Name: "Orphan",
			ResultCoercer: graphql.CoerceScalarResultFunc(func(value interface{}) (interface{}, error) {
				return value, nil
			}),
		})

		schema, err := graphql.NewSchema(&graphql.SchemaConfig{
			Query: query,
			Types: []graphql.Type{orphan},
		})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(schema.Query()).Should(Equal(query))
		Expect(schema.Mutation()).Should(BeNil())

		typeMap := schema.TypeMap()
		for _, name := range []string{"Query", "Item", "Filter", "Color", "Orphan", "Int", "Boolean"} {
			Expect(typeMap.Lookup(name)).ShouldNot(BeNil(), name)
		}
		Expect(typeMap.Len()).Should(Equal(10))

		names := []string{}
		for _, t := range typeMap.Sorted() {
			names = append(names, t.(graphql.TypeWithName).Name())
		}
		Expect(names).Should(Equal([]string{
			"Boolean", "Color", "Filter", "Float", "ID", "Int", "Item", "Orphan", "Query", "String",
		}))
	})

	It("rejects distinct types with the same name", func() {
		a := graphql.MustNewObject(&graphql.ObjectConfig{
			Name:   "Same",
			Fields: graphql.Fields{"x": {Type: graphql.Int()}},
		})
		b := graphql.MustNewObject(&graphql.ObjectConfig{
			Name:   "Same",
			Fields: graphql.Fields{"y": {Type: graphql.Int()}},
		})
		query := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"a": {Type: a},
				"b": {Type: b},
			},
		})

		_, err := graphql.NewSchema(&graphql.SchemaConfig{Query: query})
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(ContainSubstring(
			"Schema must contain unique named types but contains multiple types named Same."))
	})

	It("surfaces errors from field thunks", func() {
		query := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Query",
			FieldsThunk: func() (graphql.Fields, error) {
				return graphql.Fields{"bad-name": {Type: graphql.Int()}}, nil
			},
		})

		_, err := graphql.NewSchema(&graphql.SchemaConfig{Query: query})
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(HavePrefix("graphql.NewSchema: Invalid schema"))
	})

	It("accepts the same type reached through multiple paths", func() {
		shared := graphql.MustNewObject(&graphql.ObjectConfig{
			Name:   "Shared",
			Fields: graphql.Fields{"x": {Type: graphql.Int()}},
		})
		query := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"one": {Type: shared},
				"two": {Type: graphql.MustNewNonNullOfType(shared)},
			},
		})
		mutation := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Mutation",
			Fields: graphql.Fields{
				"three": {Type: shared},
			},
		})

		schema, err := graphql.NewSchema(&graphql.SchemaConfig{Query: query, Mutation: mutation})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(schema.Mutation()).Should(Equal(mutation))
		Expect(schema.TypeMap().Lookup("Shared")).Should(BeIdenticalTo(shared))
	})
})
