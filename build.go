package erdkit

import (
	"strings"

	"github.com/erdkit/erdkit/dsl"
)

// buildSchema classifies a parsed DSL file into canonical models and enums.
// All formats converge here: SQL and JSON sources arrive as bridged DSL text.
func buildSchema(file *dsl.File) ([]Model, []Enum, error) {
	astModels := file.Models()
	astEnums := file.Enums()

	// Names are unique case-sensitively across models and enums combined.
	// The source behavior on collisions was undefined; we reject instead.
	seen := make(map[string]string, len(astModels)+len(astEnums))

	for _, m := range astModels {
		if prev, ok := seen[m.Name]; ok {
			return nil, nil, convErr(MalformedSource, "duplicate name %q: already declared as %s", m.Name, prev)
		}

		seen[m.Name] = "model"
	}

	enumNames := make(map[string]bool, len(astEnums))

	for _, e := range astEnums {
		if prev, ok := seen[e.Name]; ok {
			return nil, nil, convErr(MalformedSource, "duplicate name %q: already declared as %s", e.Name, prev)
		}

		seen[e.Name] = "enum"
		enumNames[e.Name] = true
	}

	models := make([]Model, 0, len(astModels))
	for _, m := range astModels {
		models = append(models, buildModel(m, enumNames))
	}

	enums := make([]Enum, 0, len(astEnums))
	for _, e := range astEnums {
		enums = append(enums, Enum{Name: e.Name, Values: e.Values()})
	}

	return models, enums, nil
}

func buildModel(m *dsl.Model, enumNames map[string]bool) Model {
	// Field names promoted to primary key by a block-level @@id([...]).
	blockPK := make(map[string]bool)

	for _, attr := range m.BlockAttrs() {
		if attr.Name() != "id" {
			continue
		}

		for _, name := range attr.Arg("").Idents() {
			blockPK[name] = true
		}

		for _, name := range attr.Arg("fields").Idents() {
			blockPK[name] = true
		}
	}

	fields := make([]Field, 0, len(m.Entries))
	for _, decl := range m.Fields() {
		fields = append(fields, buildField(decl, enumNames, blockPK[decl.Name]))
	}

	// A scalar column named in a sibling @relation(fields: [...]) is tied to
	// that relation declaration.
	for _, decl := range m.Fields() {
		rel := decl.Attr("relation")
		if rel == nil {
			continue
		}

		for _, col := range rel.Arg("fields").Idents() {
			for i := range fields {
				if fields[i].Name == col && fields[i].Kind.IsScalar() {
					fields[i].IsRelationField = true
					fields[i].HasConnections = true
				}
			}
		}
	}

	return Model{Name: m.Name, Fields: fields}
}

func buildField(decl *dsl.FieldDecl, enumNames map[string]bool, blockPK bool) Field {
	f := Field{
		Name:        decl.Name,
		TypeName:    decl.Type,
		IsList:      decl.IsList,
		IsNullable:  decl.Nullable,
		DefaultKind: DefaultNone,
	}

	if kind, ok := LookupScalar(FormatDSL, decl.Type); ok {
		f.Kind = kind
	} else if enumNames[decl.Type] {
		f.Kind = KindEnumReference
	} else {
		f.Kind = KindModelReference
	}

	explicitID := decl.HasAttr("id") || blockPK
	f.IsUnique = decl.HasAttr("unique")

	// Primary key precedence: explicit marker, then a scalar field named
	// exactly "id", then a unique field whose name contains "id".
	switch {
	case explicitID:
		f.IsPrimaryKey = true
	case decl.Name == "id" && f.Kind.IsScalar():
		f.IsPrimaryKey = true
	case strings.Contains(strings.ToLower(decl.Name), "id") && f.IsUnique:
		f.IsPrimaryKey = true
	}

	// Known heuristic: foreign keys are recognized solely by the Id name
	// suffix. A column like owner_ref referencing another table is missed.
	f.IsForeignKey = f.Kind.IsScalar() && strings.HasSuffix(decl.Name, "Id")

	if rel := decl.Attr("relation"); rel != nil {
		f.IsRelationField = true
		f.RelationFields = rel.Arg("fields").Idents()
		f.RelationReferences = rel.Arg("references").Idents()
	}

	if !f.Kind.IsScalar() {
		f.IsRelationField = true
	}

	f.HasConnections = f.IsRelationField || f.Kind == KindModelReference

	if def := decl.Attr("default"); def != nil {
		f.DefaultKind, f.DefaultValue = classifyDefault(def.Arg(""))
	}

	return f
}

// classifyDefault maps a recognized default expression to its kind.
// Unrecognized expressions are kept as opaque literals.
func classifyDefault(v *dsl.AttrValue) (DefaultKind, string) {
	if v == nil {
		return DefaultNone, ""
	}

	if v.Call != nil {
		switch v.Call.Func {
		case "now":
			return DefaultNow, ""
		case "autoincrement":
			return DefaultAutoincrement, ""
		case "uuid":
			return DefaultUUID, ""
		default:
			return DefaultLiteral, v.Call.Text()
		}
	}

	return DefaultLiteral, v.Text()
}
