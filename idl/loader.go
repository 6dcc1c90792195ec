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
	"io"
	"log"
	"os"
	"path/filepath"
)

// DocumentSet holds the documents loaded by a Loader keyed by their canonical path.
type DocumentSet struct {
	docs  map[string]*Document
	order []string
}

// NewDocumentSet creates an empty set.
func NewDocumentSet() *DocumentSet {
	return &DocumentSet{
		docs: map[string]*Document{},
	}
}

// Add puts doc into the set under doc.Path. It returns false if a document with the same path is
// already present.
func (set *DocumentSet) Add(doc *Document) bool {
	if _, exists := set.docs[doc.Path]; exists {
		return false
	}
	set.docs[doc.Path] = doc
	set.order = append(set.order, doc.Path)
	return true
}

// Document returns the document loaded from the given path. path is canonicalized first.
func (set *DocumentSet) Document(path string) *Document {
	if doc, exists := set.docs[path]; exists {
		return doc
	}
	canonical, err := Canonicalize(path)
	if err != nil {
		return nil
	}
	return set.docs[canonical]
}

// Documents returns all documents in the order they were loaded.
func (set *DocumentSet) Documents() []*Document {
	docs := make([]*Document, len(set.order))
	for i, path := range set.order {
		docs[i] = set.docs[path]
	}
	return docs
}

// Len returns the number of documents in the set.
func (set *DocumentSet) Len() int {
	return len(set.order)
}

// Canonicalize returns the absolute, symlink-free form of path. Two paths that name the same file
// canonicalize to the same string.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// Loader reads IDL documents and the documents they include.
type Loader struct {
	// Parser converts file contents into documents. ThriftParser is used when nil.
	Parser Parser

	// Logger receives progress messages. Nothing is logged when nil.
	Logger *log.Logger
}

// Load parses the files at the given paths and, recursively, every file they include. Includes are
// resolved relative to the directory of the including file. Every file is parsed once no matter how
// many times it is reached.
func (loader *Loader) Load(paths ...string) (*DocumentSet, error) {
	set := NewDocumentSet()
	if err := loader.LoadInto(set, paths...); err != nil {
		return nil, err
	}
	return set, nil
}

// LoadInto is like Load but adds documents to an existing set. Files already in set are skipped.
func (loader *Loader) LoadInto(set *DocumentSet, paths ...string) error {
	for _, path := range paths {
		canonical, err := Canonicalize(path)
		if err != nil {
			return NewError("cannot resolve path", err, ErrKindIO, File(path), Op("idl.Loader.Load"))
		}
		if err := loader.load(set, canonical); err != nil {
			return err
		}
	}
	return nil
}

func (loader *Loader) parser() Parser {
	if loader.Parser != nil {
		return loader.Parser
	}
	return ThriftParser{}
}

func (loader *Loader) logger() *log.Logger {
	if loader.Logger != nil {
		return loader.Logger
	}
	return log.New(io.Discard, "", 0)
}

func (loader *Loader) load(set *DocumentSet, path string) error {
	if set.Document(path) != nil {
		loader.logger().Printf("idl: %s already loaded, skipping", path)
		return nil
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return NewError("cannot read file", err, ErrKindIO, File(path), Op("idl.Loader.Load"))
	}

	doc, err := loader.parser().Parse(path, text)
	if err != nil {
		return NewError("", err, File(path), Op("idl.Loader.Load"))
	}
	doc.Path = path

	// Record the document before following includes so that cycles terminate.
	set.Add(doc)
	loader.logger().Printf("idl: loaded %s", path)

	dir := filepath.Dir(path)
	for _, include := range doc.Includes {
		target := include.Path
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}
		canonical, err := Canonicalize(target)
		if err != nil {
			return NewError("cannot resolve include", err, ErrKindIO, File(path), Identifier(include.Path),
				Op("idl.Loader.Load"))
		}
		include.Resolved = canonical
		if err := loader.load(set, canonical); err != nil {
			return err
		}
	}

	return nil
}
