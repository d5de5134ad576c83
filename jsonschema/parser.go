// Package jsonschema extracts table descriptors from the two recognized JSON
// shapes: a DSL-export-like document ({models: [...], enums: [...]} or a bare
// array of models) and a custom document keyed by tables, schemas, or
// entities. Key synonyms are resolved by first-non-empty precedence.
package jsonschema

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/erdkit/erdkit/raw"
)

// Parse decodes JSON schema source into raw descriptors. Shape detection is
// a presence check on top-level keys, tried in order; the first matching
// shape wins. Malformed JSON returns the encoding/json error, which carries
// the syntax offset.
func Parse(source string) ([]raw.Table, []raw.Enum, error) {
	trimmed := strings.TrimSpace(source)

	// A bare array is the export shape without the wrapper object.
	if strings.HasPrefix(trimmed, "[") {
		var models []looseModel
		if err := json.Unmarshal([]byte(trimmed), &models); err != nil {
			return nil, nil, err
		}

		return exportTables(models), nil, nil
	}

	var doc struct {
		Models   []looseModel    `json:"models"`
		Enums    []looseEnum     `json:"enums"`
		Tables   json.RawMessage `json:"tables"`
		Schemas  json.RawMessage `json:"schemas"`
		Entities json.RawMessage `json:"entities"`
	}

	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return nil, nil, err
	}

	if doc.Models != nil {
		return exportTables(doc.Models), exportEnums(doc.Enums), nil
	}

	for _, rawTables := range []json.RawMessage{doc.Tables, doc.Schemas, doc.Entities} {
		if rawTables == nil {
			continue
		}

		var entities []looseEntity
		if err := json.Unmarshal(rawTables, &entities); err != nil {
			return nil, nil, err
		}

		return customTables(entities), nil, nil
	}

	return nil, nil, nil
}

// looseModel is the export-shape model: field semantics mirror the DSL, so
// fields are required unless marked otherwise.
type looseModel struct {
	Name   string       `json:"name"`
	Fields []looseField `json:"fields"`
}

type looseEnum struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// looseEntity is the custom-shape table with its column and relation synonyms.
type looseEntity struct {
	Name      string `json:"name"`
	TableName string `json:"tableName"`
	Table     string `json:"table"`

	Fields     []looseField `json:"fields"`
	Columns    []looseField `json:"columns"`
	Properties []looseField `json:"properties"`

	Relations   []looseRelation `json:"relations"`
	ForeignKeys []looseRelation `json:"foreignKeys"`
}

// looseField accepts every recognized spelling of a column entry.
type looseField struct {
	Name         string `json:"name"`
	ColumnName   string `json:"columnName"`
	PropertyName string `json:"propertyName"`

	Type     string `json:"type"`
	DataType string `json:"dataType"`
	Format   string `json:"format"`

	IsID         bool `json:"isId"`
	PrimaryKey   bool `json:"primaryKey"`
	IsPrimaryKey bool `json:"isPrimaryKey"`

	IsUnique bool `json:"isUnique"`
	Unique   bool `json:"unique"`

	IsList  bool `json:"isList"`
	IsArray bool `json:"isArray"`

	Nullable   *bool `json:"nullable"`
	IsNullable *bool `json:"isNullable"`
	Optional   *bool `json:"optional"`
	Required   *bool `json:"required"`
	NotNull    *bool `json:"notNull"`

	Default      any `json:"default"`
	DefaultValue any `json:"defaultValue"`
}

type looseRelation struct {
	Column       string `json:"column"`
	Field        string `json:"field"`
	SourceColumn string `json:"sourceColumn"`

	ReferencedTable string `json:"referencedTable"`
	TargetTable     string `json:"targetTable"`
	References      string `json:"references"`
	Table           string `json:"table"`

	ReferencedColumn string `json:"referencedColumn"`
	TargetColumn     string `json:"targetColumn"`
}

func exportTables(models []looseModel) []raw.Table {
	tables := make([]raw.Table, 0, len(models))

	for _, m := range models {
		t := raw.Table{Name: m.Name}
		for _, f := range m.Fields {
			t.Columns = append(t.Columns, f.toColumn(true))
		}

		tables = append(tables, t)
	}

	return tables
}

func exportEnums(enums []looseEnum) []raw.Enum {
	out := make([]raw.Enum, 0, len(enums))
	for _, e := range enums {
		out = append(out, raw.Enum{Name: e.Name, Values: e.Values})
	}

	return out
}

func customTables(entities []looseEntity) []raw.Table {
	tables := make([]raw.Table, 0, len(entities))

	for _, e := range entities {
		t := raw.Table{Name: firstNonEmpty(e.Name, e.TableName, e.Table)}

		fields := e.Fields
		if len(fields) == 0 {
			fields = e.Columns
		}

		if len(fields) == 0 {
			fields = e.Properties
		}

		for _, f := range fields {
			t.Columns = append(t.Columns, f.toColumn(false))
		}

		relations := e.Relations
		if len(relations) == 0 {
			relations = e.ForeignKeys
		}

		for _, r := range relations {
			fk := raw.ForeignKey{
				Columns:  []string{firstNonEmpty(r.Column, r.Field, r.SourceColumn)},
				RefTable: firstNonEmpty(r.ReferencedTable, r.TargetTable, r.References, r.Table),
			}

			if col := firstNonEmpty(r.ReferencedColumn, r.TargetColumn); col != "" {
				fk.RefColumns = []string{col}
			}

			t.ForeignKeys = append(t.ForeignKeys, fk)
		}

		tables = append(tables, t)
	}

	return tables
}

// toColumn resolves synonym precedence into a raw column. requiredByDefault
// distinguishes the export shape (DSL semantics: required unless optional)
// from the custom shape (SQL semantics: nullable unless constrained).
func (f looseField) toColumn(requiredByDefault bool) raw.Column {
	col := raw.Column{
		Name:       firstNonEmpty(f.Name, f.ColumnName, f.PropertyName),
		Type:       firstNonEmpty(f.Format, f.Type, f.DataType),
		PrimaryKey: f.IsID || f.PrimaryKey || f.IsPrimaryKey,
		Unique:     f.IsUnique || f.Unique,
		IsList:     f.IsList || f.IsArray,
	}

	switch {
	case f.NotNull != nil:
		col.NotNull = *f.NotNull
	case f.Nullable != nil:
		col.NotNull = !*f.Nullable
	case f.IsNullable != nil:
		col.NotNull = !*f.IsNullable
	case f.Optional != nil:
		col.NotNull = !*f.Optional
	case f.Required != nil:
		col.NotNull = *f.Required
	default:
		col.NotNull = requiredByDefault
	}

	if col.PrimaryKey {
		col.NotNull = true
	}

	if def := renderDefault(firstNonNil(f.Default, f.DefaultValue)); def != "" {
		col.Default = &def
	}

	return col
}

// renderDefault turns a decoded JSON default value into default-expression
// text for the normalization bridge.
func renderDefault(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strconv.Quote(val)
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

func firstNonNil(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}

	return nil
}
