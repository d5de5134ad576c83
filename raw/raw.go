// Package raw holds the intermediate table descriptors produced by the
// structural parsers before classification. A descriptor records what a
// source document literally declared; nothing here is resolved or inferred.
package raw

// Table is a single table or model extracted from a source document.
// Column order follows declaration order.
type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey

	// PrimaryKey names columns promoted by a table-level PRIMARY KEY clause.
	PrimaryKey []string
}

// Column is an unclassified column or field.
type Column struct {
	Name       string
	Type       string // raw type token, parameters included (e.g. "DECIMAL(10,2)")
	NotNull    bool
	PrimaryKey bool
	Unique     bool
	IsList     bool
	Default    *string // raw default expression, nil when absent

	// Ref carries an inline column-level REFERENCES clause, if any.
	Ref *ColumnRef
}

// ColumnRef is an inline reference from a column to another table.
type ColumnRef struct {
	Table  string
	Column string
}

// ForeignKey is an explicit table-level foreign-key declaration.
// Columns and RefColumns are parallel, in declaration order.
type ForeignKey struct {
	Columns    []string
	RefTable   string
	RefColumns []string
}

// Enum is a named value set. Values keep declaration order and duplicates.
type Enum struct {
	Name   string
	Values []string
}
