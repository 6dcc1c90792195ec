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

// Package graphql provides the GraphQL type system: scalars, enums, objects, input objects and the
// list and non-null wrappers, plus the schema that collects them.
//
// Lazy Fields
//
// Object and InputObject accept a thunk that defines their fields. The thunk is evaluated at most
// once, on the first read of the fields, and its result is cached. This lets a type be created and
// handed out before the types of its fields exist, which is how self-referencing and mutually
// recursive types are built without any global registry of created types: the builder of a type
// graph keeps its own map from whatever identifies a type to the created instance, registers an
// instance before defining its fields, and returns the registered instance to any later lookup.
//
// A thunk failure does not surface when the type is created. NewSchema and Finalize force the
// thunks of every reachable type and report the first failure. Types are built on one goroutine;
// once NewSchema or Finalize has returned successfully, the types are immutable and safe for
// concurrent use.
package graphql
