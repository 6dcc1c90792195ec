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

package idl

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Stem returns the file name of path without directory and extension. It is the namespace under
// which declarations of an included file are referenced.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Resolve locates the declaration named by reference as seen from the document at contextFile. It
// returns the canonical path of the defining document together with the declaration.
//
// A bare name ("Foo") is looked up in contextFile only. A qualified name ("ns.Foo") selects the
// include of contextFile whose file stem is "ns" and looks "Foo" up there. Includes are matched by
// stem alone, so two included files with the same stem in different directories make the reference
// ambiguous and resolution fails.
func (set *DocumentSet) Resolve(reference string, contextFile string) (string, Declaration, error) {
	const op = Op("idl.Resolve")

	doc := set.Document(contextFile)
	if doc == nil {
		return "", nil, NewError("document is not loaded", ErrKindUnresolvedIdentifier, File(contextFile),
			Identifier(reference), op)
	}

	parts := strings.Split(reference, ".")
	switch len(parts) {
	case 1:
		decl, err := lookupUnique(doc, reference)
		if err != nil {
			return "", nil, NewError(err.Error(), ErrKindUnresolvedIdentifier, File(doc.Path),
				Identifier(reference), op)
		}
		return doc.Path, decl, nil

	case 2:
		// Handled below.

	default:
		return "", nil, NewError(
			fmt.Sprintf("qualified reference must have exactly two components, got %d", len(parts)),
			ErrKindMalformedIdentifier, File(doc.Path), Identifier(reference), op)
	}

	namespace, name := parts[0], parts[1]
	if len(namespace) == 0 || len(name) == 0 {
		return "", nil, NewError("qualified reference has an empty component", ErrKindMalformedIdentifier,
			File(doc.Path), Identifier(reference), op)
	}

	var matches []*Include
	for _, include := range doc.Includes {
		if Stem(include.Path) == namespace {
			matches = append(matches, include)
		}
	}

	switch len(matches) {
	case 0:
		return "", nil, NewError(fmt.Sprintf("no include matches namespace %q", namespace),
			ErrKindUnresolvedIdentifier, File(doc.Path), Identifier(reference), op)
	case 1:
	default:
		return "", nil, NewError(fmt.Sprintf("%d includes match namespace %q", len(matches), namespace),
			ErrKindUnresolvedIdentifier, File(doc.Path), Identifier(reference), op)
	}

	include := matches[0]
	target := include.Resolved
	if len(target) == 0 {
		target = filepath.Join(filepath.Dir(doc.Path), include.Path)
	}
	included := set.Document(target)
	if included == nil {
		return "", nil, NewError(fmt.Sprintf("included file %s is not loaded", include.Path),
			ErrKindUnresolvedIdentifier, File(doc.Path), Identifier(reference), op)
	}

	decl, err := lookupUnique(included, name)
	if err != nil {
		return "", nil, NewError(fmt.Sprintf("%s in %s", err, include.Path), ErrKindUnresolvedIdentifier,
			File(doc.Path), Identifier(reference), op)
	}
	return included.Path, decl, nil
}

// lookupUnique returns the only type declaration of doc named name.
func lookupUnique(doc *Document, name string) (Declaration, error) {
	decls := doc.LookupAll(name)
	switch len(decls) {
	case 0:
		return nil, errors.New("no declaration with the name")
	case 1:
		return decls[0], nil
	}
	return nil, fmt.Errorf("%d declarations with the name", len(decls))
}
