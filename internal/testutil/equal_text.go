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
	"fmt"

	"github.com/onsi/gomega/types"
	"github.com/pmezard/go-difflib/difflib"
)

type equalTextMatcher struct {
	expected string
	diff     string
}

// EqualText is like gomega.Equal for strings but reports a unified diff on failure. Use it to compare
// printed schemas against golden text.
func EqualText(expected string) types.GomegaMatcher {
	return &equalTextMatcher{
		expected: expected,
	}
}

// Match implements types.GomegaMatcher.
func (matcher *equalTextMatcher) Match(actual interface{}) (success bool, err error) {
	text, ok := actual.(string)
	if !ok {
		return false, fmt.Errorf("EqualText matcher expects a string, got %T", actual)
	}
	matcher.diff, err = difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(matcher.expected),
		B:        difflib.SplitLines(text),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  5,
	})
	if err != nil {
		return false, err
	}
	return len(matcher.diff) == 0, nil
}

// FailureMessage implements types.GomegaMatcher.
func (matcher *equalTextMatcher) FailureMessage(actual interface{}) (message string) {
	return fmt.Sprintf("Expected text to match, diff:\n%s", matcher.diff)
}

// NegatedFailureMessage implements types.GomegaMatcher.
func (matcher *equalTextMatcher) NegatedFailureMessage(actual interface{}) (message string) {
	return fmt.Sprintf("Expected text not to be\n%s", matcher.expected)
}
