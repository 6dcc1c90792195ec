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

package idl_test

import (
	"bytes"
	"log"
	"os"
	"path/filepath"

	"github.com/botobag/thriftql/idl"
	. "github.com/botobag/thriftql/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// countingParser records how many times each file is parsed.
func countingParser(counts map[string]int) idl.Parser {
	return idl.ParserFunc(func(path string, text []byte) (*idl.Document, error) {
		counts[path]++
		return idl.ThriftParser{}.Parse(path, text)
	})
}

var _ = Describe("Loader", func() {
	It("loads a single document", func() {
		dir := writeFiles(map[string]string{
			"single.thrift": `
				struct Widget {
					1: required string name
				}
			`,
		})

		set, err := (&idl.Loader{}).Load(filepath.Join(dir, "single.thrift"))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(set.Len()).Should(Equal(1))

		doc := set.Document(filepath.Join(dir, "single.thrift"))
		Expect(doc).ShouldNot(BeNil())
		Expect(doc.Path).Should(Equal(filepath.Join(dir, "single.thrift")))
		Expect(doc.Lookup("Widget")).ShouldNot(BeNil())
	})

	It("parses every file of a diamond exactly once", func() {
		dir := writeFiles(map[string]string{
			"a.thrift":      `include "b.thrift"` + "\n" + `include "sub/c.thrift"`,
			"b.thrift":      `include "d.thrift"`,
			"sub/c.thrift":  `include "../d.thrift"`,
			"d.thrift":      `struct D {}`,
			"unused.thrift": `struct Unused {}`,
		})

		counts := map[string]int{}
		var logs bytes.Buffer
		loader := &idl.Loader{
			Parser: countingParser(counts),
			Logger: log.New(&logs, "", 0),
		}

		set, err := loader.Load(filepath.Join(dir, "a.thrift"))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(set.Len()).Should(Equal(4))
		Expect(counts).Should(Equal(map[string]int{
			filepath.Join(dir, "a.thrift"):     1,
			filepath.Join(dir, "b.thrift"):     1,
			filepath.Join(dir, "sub/c.thrift"): 1,
			filepath.Join(dir, "d.thrift"):     1,
		}))
		Expect(logs.String()).Should(ContainSubstring("d.thrift already loaded, skipping"))

		// Documents are listed in load order.
		var paths []string
		for _, doc := range set.Documents() {
			paths = append(paths, doc.Path)
		}
		Expect(paths).Should(Equal([]string{
			filepath.Join(dir, "a.thrift"),
			filepath.Join(dir, "b.thrift"),
			filepath.Join(dir, "d.thrift"),
			filepath.Join(dir, "sub/c.thrift"),
		}))
	})

	It("records the canonical path of includes", func() {
		dir := writeFiles(map[string]string{
			"a.thrift": `include "sub/../b.thrift"`,
			"b.thrift": `struct B {}`,
		})

		set, err := (&idl.Loader{}).Load(filepath.Join(dir, "a.thrift"))
		Expect(err).ShouldNot(HaveOccurred())

		doc := set.Document(filepath.Join(dir, "a.thrift"))
		Expect(doc.Includes).Should(HaveLen(1))
		Expect(doc.Includes[0].Path).Should(Equal("sub/../b.thrift"))
		Expect(doc.Includes[0].Resolved).Should(Equal(filepath.Join(dir, "b.thrift")))
	})

	It("terminates on include cycles", func() {
		dir := writeFiles(map[string]string{
			"a.thrift": `include "b.thrift"`,
			"b.thrift": `include "a.thrift"`,
		})

		counts := map[string]int{}
		set, err := (&idl.Loader{Parser: countingParser(counts)}).Load(filepath.Join(dir, "a.thrift"))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(set.Len()).Should(Equal(2))
		Expect(counts).Should(HaveLen(2))
	})

	It("loads a file reached through a symlink once", func() {
		dir := writeFiles(map[string]string{
			"shared/common.thrift": `struct Common {}`,
			"a.thrift":             `include "link/common.thrift"` + "\n" + `include "shared/common.thrift"`,
		})
		Expect(os.Symlink(filepath.Join(dir, "shared"), filepath.Join(dir, "link"))).Should(Succeed())

		counts := map[string]int{}
		set, err := (&idl.Loader{Parser: countingParser(counts)}).Load(filepath.Join(dir, "a.thrift"))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(set.Len()).Should(Equal(2))
		Expect(counts[filepath.Join(dir, "shared/common.thrift")]).Should(Equal(1))

		// Lookups through the link find the same document.
		Expect(set.Document(filepath.Join(dir, "link/common.thrift"))).Should(
			BeIdenticalTo(set.Document(filepath.Join(dir, "shared/common.thrift"))))
	})

	It("skips files given more than once", func() {
		dir := writeFiles(map[string]string{
			"a.thrift": `struct A {}`,
		})

		counts := map[string]int{}
		loader := &idl.Loader{Parser: countingParser(counts)}
		set, err := loader.Load(filepath.Join(dir, "a.thrift"), filepath.Join(dir, ".", "a.thrift"))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(set.Len()).Should(Equal(1))
		Expect(counts[filepath.Join(dir, "a.thrift")]).Should(Equal(1))
	})

	It("reports parse errors with the offending file", func() {
		dir := writeFiles(map[string]string{
			"a.thrift":   `include "bad.thrift"`,
			"bad.thrift": `struct {`,
		})

		_, err := (&idl.Loader{}).Load(filepath.Join(dir, "a.thrift"))
		Expect(err).Should(MatchIDLError(
			KindIs(idl.ErrKindParse),
			FileHasSuffix("bad.thrift"),
		))
		Expect(idl.KindOf(err)).Should(Equal(idl.ErrKindParse))
		Expect(err.Error()).Should(ContainSubstring("bad.thrift"))
	})

	It("reports missing files", func() {
		dir := writeFiles(map[string]string{
			"a.thrift": `include "missing.thrift"`,
		})

		_, err := (&idl.Loader{}).Load(filepath.Join(dir, "a.thrift"))
		Expect(err).Should(MatchIDLError(
			KindIs(idl.ErrKindIO),
			FileHasSuffix("a.thrift"),
			IdentifierEqual("missing.thrift"),
		))

		_, err = (&idl.Loader{}).Load(filepath.Join(dir, "nope.thrift"))
		Expect(err).Should(MatchIDLError(
			KindIs(idl.ErrKindIO),
			FileHasSuffix("nope.thrift"),
		))
	})
})
