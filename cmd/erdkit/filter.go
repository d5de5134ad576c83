package main

import (
	"github.com/erdkit/erdkit"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// modelEnv is the expression environment a --filter predicate runs against,
// once per model.
type modelEnv struct {
	Name       string         `expr:"Name"`
	Fields     []erdkit.Field `expr:"Fields"`
	FieldCount int            `expr:"FieldCount"`
}

// compileFilter compiles a --filter expression. An empty source means no
// filtering and returns nil.
func compileFilter(source string) (*vm.Program, error) {
	if source == "" {
		return nil, nil
	}

	return expr.Compile(source, expr.Env(modelEnv{}), expr.AsBool())
}

// applyFilter keeps models matching the predicate and re-scopes
// relationships to the surviving models. Enums are never filtered. A model
// for which the predicate errors is dropped.
func applyFilter(schema *erdkit.Schema, program *vm.Program) *erdkit.Schema {
	kept := make(map[string]bool, len(schema.Models))

	out := &erdkit.Schema{Enums: schema.Enums}

	for _, m := range schema.Models {
		env := modelEnv{Name: m.Name, Fields: m.Fields, FieldCount: len(m.Fields)}

		result, err := expr.Run(program, env)
		if err != nil {
			continue
		}

		if match, ok := result.(bool); ok && match {
			out.Models = append(out.Models, m)
			kept[m.Name] = true
		}
	}

	for _, r := range schema.Relationships {
		if kept[r.SourceModel] && kept[r.TargetModel] {
			out.Relationships = append(out.Relationships, r)
		}
	}

	return out
}
