// Package dsl parses the declarative schema DSL: model and enum blocks with
// field attributes. It is also the convergence point for the other source
// formats, which are rewritten into DSL text and re-parsed here so that every
// format flows through one classification pipeline.
package dsl

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// File is the root of a parsed schema document.
type File struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Decls []*Decl `parser:"@@*"`
}

// Models returns the model declarations in declaration order.
func (f *File) Models() []*Model {
	var out []*Model

	for _, d := range f.Decls {
		if d.Model != nil {
			out = append(out, d.Model)
		}
	}

	return out
}

// Enums returns the enum declarations in declaration order.
func (f *File) Enums() []*Enum {
	var out []*Enum

	for _, d := range f.Decls {
		if d.Enum != nil {
			out = append(out, d.Enum)
		}
	}

	return out
}

// Decl is a top-level declaration: a model or an enum block.
type Decl struct {
	Pos lexer.Position

	Model *Model `parser:"@@"`
	Enum  *Enum  `parser:"| @@"`
}

// Model is a `model Name { ... }` block.
type Model struct {
	Pos lexer.Position

	Name    string        `parser:"'model' @Ident '{'"`
	Entries []*ModelEntry `parser:"@@* '}'"`
}

// Fields returns the field declarations in declaration order.
func (m *Model) Fields() []*FieldDecl {
	var out []*FieldDecl

	for _, e := range m.Entries {
		if e.Field != nil {
			out = append(out, e.Field)
		}
	}

	return out
}

// BlockAttrs returns the model's block-level attributes.
func (m *Model) BlockAttrs() []*BlockAttr {
	var out []*BlockAttr

	for _, e := range m.Entries {
		if e.BlockAttr != nil {
			out = append(out, e.BlockAttr)
		}
	}

	return out
}

// ModelEntry is a single line of a model body: a block attribute or a field.
// Block attributes must be tried first so `@@id` is not read as a field.
type ModelEntry struct {
	Pos lexer.Position

	BlockAttr *BlockAttr `parser:"@@"`
	Field     *FieldDecl `parser:"| @@"`
}

// FieldDecl is one field declaration: name, type, list/optional markers,
// and trailing attributes.
type FieldDecl struct {
	Pos lexer.Position

	Name     string  `parser:"@Ident"`
	Type     string  `parser:"@Ident"`
	IsList   bool    `parser:"@('[' ']')?"`
	Nullable bool    `parser:"@'?'?"`
	Attrs    []*Attr `parser:"@@*"`
}

// Attr returns the first attribute with the given name, or nil.
func (f *FieldDecl) Attr(name string) *Attr {
	for _, a := range f.Attrs {
		if a.Name() == name {
			return a
		}
	}

	return nil
}

// HasAttr reports whether the field carries an attribute with the given name.
func (f *FieldDecl) HasAttr(name string) bool {
	return f.Attr(name) != nil
}

// Attr is a field-level attribute such as `@id`, `@default(now())`,
// `@relation(fields: [authorId], references: [id])` or `@db.VarChar(255)`.
type Attr struct {
	Pos lexer.Position

	Parts []string   `parser:"'@' @Ident (Dot @Ident)*"`
	Args  []*AttrArg `parser:"('(' (@@ (Comma @@)*)? ')')?"`
}

// Name returns the dotted attribute name without the leading marker.
func (a *Attr) Name() string {
	return strings.Join(a.Parts, ".")
}

// Arg returns the value of the named argument, or the positional value when
// name is empty. Returns nil when absent.
func (a *Attr) Arg(name string) *AttrValue {
	for _, arg := range a.Args {
		switch {
		case name == "" && arg.Name == nil:
			return arg.Value
		case name != "" && arg.Name != nil && *arg.Name == name:
			return arg.Value
		}
	}

	return nil
}

// BlockAttr is a model-level attribute such as `@@id([a, b])` or `@@map("t")`.
type BlockAttr struct {
	Pos lexer.Position

	Parts []string   `parser:"'@@' @Ident (Dot @Ident)*"`
	Args  []*AttrArg `parser:"('(' (@@ (Comma @@)*)? ')')?"`
}

// Name returns the dotted attribute name without the leading marker.
func (b *BlockAttr) Name() string {
	return strings.Join(b.Parts, ".")
}

// Arg returns the value of the named argument, or the positional value when
// name is empty. Returns nil when absent.
func (b *BlockAttr) Arg(name string) *AttrValue {
	for _, arg := range b.Args {
		switch {
		case name == "" && arg.Name == nil:
			return arg.Value
		case name != "" && arg.Name != nil && *arg.Name == name:
			return arg.Value
		}
	}

	return nil
}

// AttrArg is a single attribute argument, optionally named.
type AttrArg struct {
	Pos lexer.Position

	Name  *string    `parser:"(@Ident Colon)?"`
	Value *AttrValue `parser:"@@"`
}

// AttrValue is an attribute argument value: a list, a call such as `now()`,
// a string, a number, or a bare identifier.
type AttrValue struct {
	Pos lexer.Position

	List   []*AttrValue `parser:"'[' (@@ (Comma @@)*)? ']'"`
	Call   *AttrCall    `parser:"| @@"`
	Str    *string      `parser:"| @String"`
	Number *string      `parser:"| @Number"`
	Ident  *string      `parser:"| @Ident"`
}

// Idents flattens a list value into its identifier elements.
func (v *AttrValue) Idents() []string {
	if v == nil {
		return nil
	}

	var out []string

	for _, elem := range v.List {
		if elem.Ident != nil {
			out = append(out, *elem.Ident)
		}
	}

	return out
}

// Text returns a best-effort source-shaped rendering of the value.
func (v *AttrValue) Text() string {
	switch {
	case v == nil:
		return ""
	case v.Call != nil:
		return v.Call.Text()
	case v.Str != nil:
		return *v.Str
	case v.Number != nil:
		return *v.Number
	case v.Ident != nil:
		return *v.Ident
	case len(v.List) > 0:
		parts := make([]string, len(v.List))
		for i, elem := range v.List {
			parts[i] = elem.Text()
		}

		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}

// AttrCall is a function-shaped attribute value such as `now()` or
// `dbgenerated("uuid_generate_v4()")`.
type AttrCall struct {
	Pos lexer.Position

	Func string       `parser:"@Ident '('"`
	Args []*AttrValue `parser:"(@@ (Comma @@)*)? ')'"`
}

// Text renders the call in source shape.
func (c *AttrCall) Text() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.Text()
	}

	return c.Func + "(" + strings.Join(parts, ", ") + ")"
}

// Enum is an `enum Name { ... }` block. Values keep declaration order and
// are not deduplicated.
type Enum struct {
	Pos lexer.Position

	Name    string       `parser:"'enum' @Ident '{'"`
	Entries []*EnumEntry `parser:"@@* '}'"`
}

// Values returns the enum value tokens in declaration order.
func (e *Enum) Values() []string {
	var out []string

	for _, entry := range e.Entries {
		if entry.Value != nil {
			out = append(out, *entry.Value)
		}
	}

	return out
}

// EnumEntry is a single enum body line: a block attribute or a value token.
type EnumEntry struct {
	Pos lexer.Position

	BlockAttr *BlockAttr `parser:"@@"`
	Value     *string    `parser:"| @Ident"`
}
