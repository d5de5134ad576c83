// Package erdkit normalizes database schema descriptions written in a
// declarative DSL, SQL DDL, or JSON into one canonical entity-relationship
// model: models, enums, fields, and directional relationships with inferred
// cardinality. The canonical schema is a plain value; converting never
// touches package state, so concurrent conversions are safe by construction.
package erdkit

// ScalarKind is the canonical type of a field.
type ScalarKind string

// Canonical scalar kinds. ModelReference and EnumReference mark fields whose
// type names another declaration rather than a scalar.
const (
	KindText           ScalarKind = "Text"
	KindInteger        ScalarKind = "Integer"
	KindBigInteger     ScalarKind = "BigInteger"
	KindFloat          ScalarKind = "Float"
	KindDecimal        ScalarKind = "Decimal"
	KindBoolean        ScalarKind = "Boolean"
	KindDateTime       ScalarKind = "DateTime"
	KindJson           ScalarKind = "Json"
	KindBytes          ScalarKind = "Bytes"
	KindModelReference ScalarKind = "ModelReference"
	KindEnumReference  ScalarKind = "EnumReference"
)

// IsScalar reports whether the kind is a scalar rather than a reference.
func (k ScalarKind) IsScalar() bool {
	return k != KindModelReference && k != KindEnumReference
}

// Cardinality is the relationship multiplicity classification.
type Cardinality string

// Relationship cardinalities.
const (
	OneToOne   Cardinality = "OneToOne"
	OneToMany  Cardinality = "OneToMany"
	ManyToOne  Cardinality = "ManyToOne"
	ManyToMany Cardinality = "ManyToMany"
)

// DefaultKind classifies a field's default value.
type DefaultKind string

// Default value kinds.
const (
	DefaultNone          DefaultKind = "none"
	DefaultLiteral       DefaultKind = "literal"
	DefaultNow           DefaultKind = "now"
	DefaultAutoincrement DefaultKind = "autoincrement"
	DefaultUUID          DefaultKind = "uuid"
)

// Field is a single canonical field. Field order within a model is
// significant and preserved exactly as declared in source.
type Field struct {
	Name string `json:"name" yaml:"name"`

	// Kind is the canonical type; TypeName holds the referenced model or
	// enum name for reference kinds, and the declared type token otherwise.
	Kind     ScalarKind `json:"kind" yaml:"kind"`
	TypeName string     `json:"typeName" yaml:"typeName"`

	IsList     bool `json:"isList" yaml:"isList"`
	IsNullable bool `json:"isNullable" yaml:"isNullable"`

	IsPrimaryKey    bool `json:"isPrimaryKey" yaml:"isPrimaryKey"`
	IsUnique        bool `json:"isUnique" yaml:"isUnique"`
	IsForeignKey    bool `json:"isForeignKey" yaml:"isForeignKey"`
	IsRelationField bool `json:"isRelationField" yaml:"isRelationField"`

	// HasConnections is a display hint: true when the field participates in
	// relationship edges.
	HasConnections bool `json:"hasConnections" yaml:"hasConnections"`

	DefaultKind  DefaultKind `json:"defaultKind" yaml:"defaultKind"`
	DefaultValue string      `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`

	// RelationFields and RelationReferences hold the ordered foreign-key
	// column names and referenced column names from an explicit relation
	// declaration. Empty on fields without one.
	RelationFields     []string `json:"relationFields,omitempty" yaml:"relationFields,omitempty"`
	RelationReferences []string `json:"relationReferences,omitempty" yaml:"relationReferences,omitempty"`
}

// Model is a named, ordered sequence of fields.
type Model struct {
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Field returns the named field, or nil.
func (m *Model) Field(name string) *Field {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return &m.Fields[i]
		}
	}

	return nil
}

// Enum is a named value set. Values keep declaration order, are
// case-sensitive, and are not deduplicated.
type Enum struct {
	Name   string   `json:"name" yaml:"name"`
	Values []string `json:"values" yaml:"values"`
}

// Relationship is a directional edge emitted once per relation-bearing field
// during the left-to-right scan of model bodies. A logically symmetric
// relation between two models appears as two independent records, one per
// side; consumers wanting a symmetric graph must pair records themselves.
type Relationship struct {
	SourceModel string      `json:"sourceModel" yaml:"sourceModel"`
	SourceField string      `json:"sourceField" yaml:"sourceField"`
	TargetModel string      `json:"targetModel" yaml:"targetModel"`
	Cardinality Cardinality `json:"cardinality" yaml:"cardinality"`

	ForeignKeyColumns []string `json:"foreignKeyColumns,omitempty" yaml:"foreignKeyColumns,omitempty"`
	ReferencedColumns []string `json:"referencedColumns,omitempty" yaml:"referencedColumns,omitempty"`

	// Via names the junction model when the relationship was upgraded to
	// many-to-many; empty otherwise.
	Via string `json:"via,omitempty" yaml:"via,omitempty"`

	DisplayLabel string `json:"displayLabel" yaml:"displayLabel"`
}

// Schema is the canonical output: the full entity-relationship model for one
// source document. Values are immutable once returned; downstream consumers
// must copy-on-write for derived state.
type Schema struct {
	Models        []Model        `json:"models" yaml:"models"`
	Enums         []Enum         `json:"enums" yaml:"enums"`
	Relationships []Relationship `json:"relationships" yaml:"relationships"`
}

// Model returns the named model, or nil.
func (s *Schema) Model(name string) *Model {
	for i := range s.Models {
		if s.Models[i].Name == name {
			return &s.Models[i]
		}
	}

	return nil
}

// Enum returns the named enum, or nil.
func (s *Schema) Enum(name string) *Enum {
	for i := range s.Enums {
		if s.Enums[i].Name == name {
			return &s.Enums[i]
		}
	}

	return nil
}
