package dsl_test

import (
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// cmpIgnoreAST ignores source positions so tests compare AST structure
// without spelling out exact line and column offsets.
var cmpIgnoreAST = cmp.Options{
	cmpopts.IgnoreTypes(lexer.Position{}),
}

// ptr returns a pointer to the given value.
func ptr[T any](v T) *T {
	return &v
}
