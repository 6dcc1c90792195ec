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

// Package util contains helpers shared by the packages of the module.
package util

import (
	"math"
	"sort"
	"strings"
)

// maxSuggestions bounds the candidates listed by DidYouMean.
const maxSuggestions = 5

// Suggest returns the options that are close enough to input to be a likely typo of it, most
// similar first.
func Suggest(input string, options []string) []string {
	type candidate struct {
		option   string
		distance int
	}

	var candidates []candidate
	inputThreshold := float64(len(input)) / 2
	for _, option := range options {
		distance := editDistance(input, option)
		threshold := math.Max(math.Max(inputThreshold, float64(len(option))/2), 1)
		if float64(distance) <= threshold {
			candidates = append(candidates, candidate{option, distance})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	suggestions := make([]string, len(candidates))
	for i, c := range candidates {
		suggestions[i] = c.option
	}
	return suggestions
}

// DidYouMean formats the suggestions for input as ` Did you mean "a", "b", or "c"?` (with the
// leading space). It returns an empty string when no option is close.
func DidYouMean(input string, options []string) string {
	suggestions := Suggest(input, options)
	if len(suggestions) == 0 {
		return ""
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	var b strings.Builder
	b.WriteString(" Did you mean ")
	for i, suggestion := range suggestions {
		if i > 0 {
			if len(suggestions) > 2 {
				b.WriteString(",")
			}
			b.WriteString(" ")
			if i == len(suggestions)-1 {
				b.WriteString("or ")
			}
		}
		b.WriteString(`"`)
		b.WriteString(suggestion)
		b.WriteString(`"`)
	}
	b.WriteString("?")
	return b.String()
}

// editDistance counts the insertions, deletions, substitutions and swaps of adjacent characters
// needed to turn a into b. Strings that only differ in case are one edit apart.
func editDistance(a string, b string) int {
	if a == b {
		return 0
	}

	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1
	}

	d := make([][]int, len(a)+1)
	for i := range d {
		d[i] = make([]int, len(b)+1)
		d[i][0] = i
	}
	for j := range d[0] {
		d[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			best := d[i-1][j] + 1
			if v := d[i][j-1] + 1; v < best {
				best = v
			}
			if v := d[i-1][j-1] + cost; v < best {
				best = v
			}
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if v := d[i-2][j-2] + cost; v < best {
					best = v
				}
			}
			d[i][j] = best
		}
	}

	return d[len(a)][len(b)]
}
