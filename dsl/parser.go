package dsl

import (
	"github.com/alecthomas/participle/v2"
)

// schemaLexer is the custom lexer for the schema DSL.
// Implements lexer.Definition for full control over tokenization.
var schemaLexer = newSchemaLexer()

var parser = participle.MustBuild[File](
	participle.Lexer(schemaLexer),
	participle.Unquote("String"),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(3), // distinguish named args and call-shaped values
)

// Parse parses schema DSL source and returns the resulting File AST.
func Parse(source string) (*File, error) {
	return parser.ParseString("", source)
}

// ParseBytes parses schema DSL source from bytes.
func ParseBytes(data []byte) (*File, error) {
	return parser.ParseBytes("", data)
}
