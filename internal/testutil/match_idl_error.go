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

package testutil

import (
	"regexp"

	"github.com/botobag/thriftql/idl"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/gstruct"
	"github.com/onsi/gomega/types"
)

// ErrorFieldsMatcher sets up fields to match.
type ErrorFieldsMatcher func(gstruct.Fields)

// MessageEqual matches message in an idl.Error to be the same as the specified string.
func MessageEqual(s string) ErrorFieldsMatcher {
	return func(fields gstruct.Fields) {
		fields["Message"] = gomega.Equal(s)
	}
}

// MessageContainSubstring matches message in an idl.Error to contain the specified string.
func MessageContainSubstring(s string) ErrorFieldsMatcher {
	return func(fields gstruct.Fields) {
		fields["Message"] = gomega.ContainSubstring(s)
	}
}

// KindIs matches the kind in the error to be the same as the given one.
func KindIs(errKind idl.ErrKind) ErrorFieldsMatcher {
	return func(fields gstruct.Fields) {
		fields["Kind"] = gomega.Equal(errKind)
	}
}

// FileHasSuffix matches the file in the error. Files are canonical paths so tests usually only know
// the tail.
func FileHasSuffix(suffix string) ErrorFieldsMatcher {
	return func(fields gstruct.Fields) {
		fields["File"] = gomega.WithTransform(func(file idl.File) string {
			return string(file)
		}, gomega.MatchRegexp(regexp.QuoteMeta(suffix)+"$"))
	}
}

// IdentifierEqual matches the identifier in the error.
func IdentifierEqual(identifier string) ErrorFieldsMatcher {
	return func(fields gstruct.Fields) {
		fields["Identifier"] = gomega.BeEquivalentTo(identifier)
	}
}

// MatchIDLError matches an idl.Error with given fields.
//
//		Expect(err).Should(MatchIDLError(
//			KindIs(idl.ErrKindUnresolvedIdentifier),
//			IdentifierEqual("c.Widget"),
//		))
func MatchIDLError(matchers ...ErrorFieldsMatcher) types.GomegaMatcher {
	fields := gstruct.Fields{}
	for _, matcher := range matchers {
		matcher(fields)
	}
	return gstruct.PointTo(gstruct.MatchFields(gstruct.IgnoreExtras, fields))
}
