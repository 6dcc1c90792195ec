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

import "fmt"

// NodeKind tags the variants of Node.
type NodeKind uint8

// Enumeration of NodeKind
const (
	NodeKindPrimitive NodeKind = iota + 1
	NodeKindList
	NodeKindMap
	NodeKindSet
	NodeKindReference
	NodeKindStruct
	NodeKindEnum
	NodeKindTypedef
	NodeKindConstant
	NodeKindService
	NodeKindFunction
	NodeKindField
)

var nodeKindNames = [...]string{
	NodeKindPrimitive: "Primitive",
	NodeKindList:      "List",
	NodeKindMap:       "Map",
	NodeKindSet:       "Set",
	NodeKindReference: "Reference",
	NodeKindStruct:    "Struct",
	NodeKindEnum:      "Enum",
	NodeKindTypedef:   "Typedef",
	NodeKindConstant:  "Constant",
	NodeKindService:   "Service",
	NodeKindFunction:  "Function",
	NodeKindField:     "Field",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) && len(nodeKindNames[k]) > 0 {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", k)
}

// Node is implemented by every element of a Document. The set of implementations is closed.
type Node interface {
	Kind() NodeKind
	node()
}

// TypeExpr is a type expression: a Primitive, a container type or a Reference to a declaration.
type TypeExpr interface {
	Node
	String() string
	typeExpr()
}

// Declaration is a named top-level definition in a Document.
type Declaration interface {
	Node
	DeclName() string
	declaration()
}

// The following implement Node.
var (
	_ TypeExpr    = Primitive(0)
	_ TypeExpr    = (*ListType)(nil)
	_ TypeExpr    = (*MapType)(nil)
	_ TypeExpr    = (*SetType)(nil)
	_ TypeExpr    = (*Reference)(nil)
	_ Declaration = (*Struct)(nil)
	_ Declaration = (*Enum)(nil)
	_ Declaration = (*Typedef)(nil)
	_ Declaration = (*Constant)(nil)
	_ Declaration = (*Service)(nil)
	_ Node        = (*Function)(nil)
	_ Node        = (*Field)(nil)
)

//===----------------------------------------------------------------------------------------====//
// Type Expressions
//===----------------------------------------------------------------------------------------====//

// Primitive is one of the built-in scalar types.
type Primitive uint8

// Enumeration of Primitive
const (
	Bool Primitive = iota + 1
	I8
	I16
	I32
	I64
	Double
	String
	Binary
)

var primitiveNames = [...]string{
	Bool:   "bool",
	I8:     "i8",
	I16:    "i16",
	I32:    "i32",
	I64:    "i64",
	Double: "double",
	String: "string",
	Binary: "binary",
}

// Kind implements Node.
func (Primitive) Kind() NodeKind { return NodeKindPrimitive }
func (Primitive) node()          {}
func (Primitive) typeExpr()      {}

func (p Primitive) String() string {
	if int(p) < len(primitiveNames) && len(primitiveNames[p]) > 0 {
		return primitiveNames[p]
	}
	return fmt.Sprintf("Primitive(%d)", p)
}

// ListType is list<Elem>.
type ListType struct {
	Elem TypeExpr
}

// Kind implements Node.
func (*ListType) Kind() NodeKind { return NodeKindList }
func (*ListType) node()          {}
func (*ListType) typeExpr()      {}

func (t *ListType) String() string {
	return "list<" + t.Elem.String() + ">"
}

// SetType is set<Elem>.
type SetType struct {
	Elem TypeExpr
}

// Kind implements Node.
func (*SetType) Kind() NodeKind { return NodeKindSet }
func (*SetType) node()          {}
func (*SetType) typeExpr()      {}

func (t *SetType) String() string {
	return "set<" + t.Elem.String() + ">"
}

// MapType is map<Key, Value>.
type MapType struct {
	Key   TypeExpr
	Value TypeExpr
}

// Kind implements Node.
func (*MapType) Kind() NodeKind { return NodeKindMap }
func (*MapType) node()          {}
func (*MapType) typeExpr()      {}

func (t *MapType) String() string {
	return "map<" + t.Key.String() + ", " + t.Value.String() + ">"
}

// Reference names a declaration, either bare ("Foo") or qualified by the stem of an included file
// ("shared.Foo").
type Reference struct {
	Name string
	Line int
}

// Kind implements Node.
func (*Reference) Kind() NodeKind { return NodeKindReference }
func (*Reference) node()          {}
func (*Reference) typeExpr()      {}

func (t *Reference) String() string {
	return t.Name
}

//===----------------------------------------------------------------------------------------====//
// Declarations
//===----------------------------------------------------------------------------------------====//

// StructVariant distinguishes the struct-like declarations.
type StructVariant uint8

// Enumeration of StructVariant
const (
	StructVariantStruct StructVariant = iota
	StructVariantUnion
	StructVariantException
)

// Requiredness of a Field.
type Requiredness uint8

// Enumeration of Requiredness
const (
	Unspecified Requiredness = iota
	Required
	Optional
)

// ConstRef is a default value that refers to a named constant. It is kept unresolved.
type ConstRef struct {
	Name string
}

// Field is a member of a Struct or a parameter of a Function.
type Field struct {
	ID           int
	Name         string
	Type         TypeExpr
	Requiredness Requiredness

	// Default is nil, bool, int64, float64, string, []interface{}, map[string]interface{} or
	// ConstRef. Map keys are kept in their string form.
	Default interface{}

	Doc  string
	Line int
}

// Kind implements Node.
func (*Field) Kind() NodeKind { return NodeKindField }
func (*Field) node()          {}

// Struct is a struct, union or exception declaration.
type Struct struct {
	Name    string
	Variant StructVariant
	Fields  []*Field
	Doc     string
	Line    int
}

// Kind implements Node.
func (*Struct) Kind() NodeKind { return NodeKindStruct }
func (*Struct) node()          {}
func (*Struct) declaration()   {}

// DeclName implements Declaration.
func (s *Struct) DeclName() string { return s.Name }

// EnumMember is an item of an Enum. Initializer is the literal text of its explicit value, in
// decimal or "0x" hexadecimal form, or empty.
type EnumMember struct {
	Name        string
	Initializer string
	Doc         string
}

// Enum is an enum declaration.
type Enum struct {
	Name    string
	Members []*EnumMember
	Doc     string
	Line    int
}

// Kind implements Node.
func (*Enum) Kind() NodeKind { return NodeKindEnum }
func (*Enum) node()          {}
func (*Enum) declaration()   {}

// DeclName implements Declaration.
func (e *Enum) DeclName() string { return e.Name }

// Typedef gives a new name to a type expression.
type Typedef struct {
	Name string
	Type TypeExpr
	Doc  string
	Line int
}

// Kind implements Node.
func (*Typedef) Kind() NodeKind { return NodeKindTypedef }
func (*Typedef) node()          {}
func (*Typedef) declaration()   {}

// DeclName implements Declaration.
func (t *Typedef) DeclName() string { return t.Name }

// Constant is a named constant. Its value has the same forms as Field.Default.
type Constant struct {
	Name  string
	Type  TypeExpr
	Value interface{}
	Doc   string
	Line  int
}

// Kind implements Node.
func (*Constant) Kind() NodeKind { return NodeKindConstant }
func (*Constant) node()          {}
func (*Constant) declaration()   {}

// DeclName implements Declaration.
func (c *Constant) DeclName() string { return c.Name }

// Function is an operation of a Service. Result is nil for void functions.
type Function struct {
	Name   string
	Params []*Field
	Result TypeExpr
	OneWay bool
	Doc    string
	Line   int
}

// Kind implements Node.
func (*Function) Kind() NodeKind { return NodeKindFunction }
func (*Function) node()          {}

// Service is a service declaration.
type Service struct {
	Name      string
	Functions []*Function
	Doc       string
	Line      int
}

// Kind implements Node.
func (*Service) Kind() NodeKind { return NodeKindService }
func (*Service) node()          {}
func (*Service) declaration()   {}

// DeclName implements Declaration.
func (s *Service) DeclName() string { return s.Name }

// Function finds the function with the given name.
func (s *Service) Function(name string) *Function {
	for _, f := range s.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

//===----------------------------------------------------------------------------------------====//
// Document
//===----------------------------------------------------------------------------------------====//

// Include is an include directive. Path is written relative to the including document. Resolved is
// the canonical path of the included document; it is filled in by the Loader.
type Include struct {
	Path     string
	Resolved string
	Line     int
}

// Document is a parsed IDL file.
type Document struct {
	// Path is the canonical path of the file.
	Path string

	Includes     []*Include
	Declarations []Declaration
}

// Lookup finds the first struct, enum or typedef with the given name. Services and constants are
// not types and are never returned.
func (doc *Document) Lookup(name string) Declaration {
	if decls := doc.LookupAll(name); len(decls) > 0 {
		return decls[0]
	}
	return nil
}

// LookupAll returns every struct, enum and typedef with the given name in declaration order.
func (doc *Document) LookupAll(name string) []Declaration {
	var decls []Declaration
	for _, decl := range doc.Declarations {
		switch decl.(type) {
		case *Struct, *Enum, *Typedef:
			if decl.DeclName() == name {
				decls = append(decls, decl)
			}
		}
	}
	return decls
}

// Services returns the services declared in the document in declaration order.
func (doc *Document) Services() []*Service {
	var services []*Service
	for _, decl := range doc.Declarations {
		if service, ok := decl.(*Service); ok {
			services = append(services, service)
		}
	}
	return services
}

// Service finds a service by name. An empty name selects the first service in the document.
func (doc *Document) Service(name string) *Service {
	for _, service := range doc.Services() {
		if len(name) == 0 || service.Name == name {
			return service
		}
	}
	return nil
}
