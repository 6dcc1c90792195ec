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

package compiler

import (
	"strconv"

	"github.com/botobag/thriftql/graphql"
)

// Direction selects which shape of a struct is compiled.
type Direction uint8

// Enumeration of Direction
const (
	Output Direction = iota
	Input
)

func (d Direction) String() string {
	if d == Input {
		return "input"
	}
	return "output"
}

// typeKey identifies a compiled declaration within a session.
type typeKey struct {
	file      string
	name      string
	direction Direction
}

// typeCache holds the compiled types of a session and the names handed out to them. Every key maps
// to at most one type for the lifetime of the cache.
type typeCache struct {
	types map[typeKey]graphql.Type

	// counters counts the uses of each preferred name; taken holds every name handed out.
	counters map[string]int
	taken    map[string]bool
}

// queryTypeName names the root query of an assembled schema.
const queryTypeName = "Query"

// reservedNames returns the names of the types that every assembled schema holds besides the
// compiled ones. Declarations with these names are exposed with a suffix.
func reservedNames() []string {
	names := []string{queryTypeName}
	for _, scalar := range []graphql.Scalar{
		graphql.Int(),
		graphql.Float(),
		graphql.String(),
		graphql.Boolean(),
		graphql.ID(),
		Int64(),
		Map(),
		Set(),
	} {
		names = append(names, scalar.Name())
	}
	return names
}

func newTypeCache() *typeCache {
	cache := &typeCache{
		types:    map[typeKey]graphql.Type{},
		counters: map[string]int{},
		taken:    map[string]bool{},
	}
	for _, name := range reservedNames() {
		cache.taken[name] = true
	}
	return cache
}

// getOrCreate returns the type registered for key or builds one with factory and registers it.
// factory must not compile other declarations: types that refer to other declarations do so from
// their field thunks, which only run after the type is registered.
func (cache *typeCache) getOrCreate(key typeKey, factory func() (graphql.Type, error)) (graphql.Type, bool, error) {
	if t, exists := cache.types[key]; exists {
		return t, false, nil
	}

	t, err := factory()
	if err != nil {
		return nil, false, err
	}
	cache.types[key] = t
	return t, true, nil
}

// allocateName returns preferred on its first use and preferred_1, preferred_2, ... afterwards.
func (cache *typeCache) allocateName(preferred string) string {
	for {
		n := cache.counters[preferred]
		cache.counters[preferred] = n + 1

		name := preferred
		if n > 0 {
			name = preferred + "_" + strconv.Itoa(n)
		}
		if !cache.taken[name] {
			cache.taken[name] = true
			return name
		}
	}
}

// len returns the number of compiled declarations.
func (cache *typeCache) len() int {
	return len(cache.types)
}
