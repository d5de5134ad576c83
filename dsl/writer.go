package dsl

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/erdkit/erdkit/raw"
)

// Write renders raw table descriptors as schema DSL text. This is the
// normalization bridge: SQL and JSON sources are rewritten into DSL text and
// re-parsed, so all formats converge on the DSL classification pipeline.
//
// mapToken translates a source-format type token into a DSL type token; the
// caller supplies the per-format mapping. Output produced by Write always
// re-parses with Parse.
func Write(tables []raw.Table, enums []raw.Enum, mapToken func(string) string) string {
	var b strings.Builder

	w := &writer{b: &b, mapToken: mapToken}

	for i, t := range tables {
		if i > 0 {
			b.WriteString("\n")
		}

		w.writeTable(t)
	}

	for i, e := range enums {
		if i > 0 || len(tables) > 0 {
			b.WriteString("\n")
		}

		w.writeEnum(e)
	}

	return b.String()
}

type writer struct {
	b        *strings.Builder
	mapToken func(string) string
}

func (w *writer) writeLine(s string) {
	w.b.WriteString("\t")
	w.b.WriteString(s)
	w.b.WriteString("\n")
}

func (w *writer) writeTable(t raw.Table) {
	w.b.WriteString("model " + ModelName(t.Name) + " {\n")

	tablePK := make(map[string]bool, len(t.PrimaryKey))
	for _, name := range t.PrimaryKey {
		tablePK[name] = true
	}

	used := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		used[c.Name] = true
	}

	for _, c := range t.Columns {
		w.writeColumn(c, tablePK[c.Name])
	}

	// Explicit foreign keys become relation fields so the downstream
	// classifier sees them the same way it sees DSL relation attributes.
	fks := make([]raw.ForeignKey, 0, len(t.ForeignKeys))
	fks = append(fks, t.ForeignKeys...)

	for _, c := range t.Columns {
		if c.Ref != nil {
			fk := raw.ForeignKey{Columns: []string{c.Name}, RefTable: c.Ref.Table}
			if c.Ref.Column != "" {
				fk.RefColumns = []string{c.Ref.Column}
			}

			fks = append(fks, fk)
		}
	}

	for _, fk := range fks {
		w.writeForeignKey(fk, used)
	}

	w.b.WriteString("}\n")
}

func (w *writer) writeColumn(c raw.Column, tablePK bool) {
	var line strings.Builder

	line.WriteString(c.Name)
	line.WriteString(" ")
	line.WriteString(w.mapToken(c.Type))

	if c.IsList {
		line.WriteString("[]")
	}

	pk := c.PrimaryKey || tablePK
	if !c.NotNull && !pk && !c.IsList {
		line.WriteString("?")
	}

	if pk {
		line.WriteString(" @id")
	}

	if c.Unique {
		line.WriteString(" @unique")
	}

	if c.Default != nil {
		line.WriteString(" @default(" + defaultToken(*c.Default) + ")")
	}

	w.writeLine(line.String())
}

func (w *writer) writeForeignKey(fk raw.ForeignKey, used map[string]bool) {
	target := ModelName(fk.RefTable)

	name := fieldName(target)
	for used[name] {
		name += "Ref"
	}

	used[name] = true

	var line strings.Builder

	line.WriteString(name)
	line.WriteString(" ")
	line.WriteString(target)
	line.WriteString(" @relation(fields: [" + strings.Join(fk.Columns, ", ") + "]")

	if len(fk.RefColumns) > 0 {
		line.WriteString(", references: [" + strings.Join(fk.RefColumns, ", ") + "]")
	}

	line.WriteString(")")

	w.writeLine(line.String())
}

func (w *writer) writeEnum(e raw.Enum) {
	w.b.WriteString("enum " + e.Name + " {\n")

	for _, v := range e.Values {
		w.writeLine(v)
	}

	w.b.WriteString("}\n")
}

// ModelName converts a raw table name into a model identifier by upper-casing
// the first rune. Table names are otherwise kept verbatim.
func ModelName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}

func fieldName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}

	return string(unicode.ToLower(r)) + name[size:]
}

var (
	nowDefault  = regexp.MustCompile(`(?i)^(now\(\)|current_timestamp(\(\))?|current_date|getdate\(\)|localtimestamp)$`)
	autoDefault = regexp.MustCompile(`(?i)^(autoincrement\(\)|auto_increment|nextval\(.*\))$`)
	uuidDefault = regexp.MustCompile(`(?i)^(uuid\(\)|gen_random_uuid\(\)|uuid_generate_v4\(\)|newid\(\))$`)
	bareLiteral = regexp.MustCompile(`^(true|false|-?[0-9]+(\.[0-9]+)?)$`)
)

// defaultToken normalizes a raw default expression into a DSL default value.
// Unrecognized expressions are kept as opaque string literals.
func defaultToken(def string) string {
	def = strings.TrimSpace(def)

	switch {
	case nowDefault.MatchString(def):
		return "now()"
	case autoDefault.MatchString(def):
		return "autoincrement()"
	case uuidDefault.MatchString(def):
		return "uuid()"
	case bareLiteral.MatchString(strings.ToLower(def)):
		return strings.ToLower(def)
	}

	// Re-quote single-quoted SQL literals as DSL strings.
	if len(def) >= 2 && def[0] == '\'' && def[len(def)-1] == '\'' {
		inner := strings.ReplaceAll(def[1:len(def)-1], "''", "'")

		return strconv.Quote(inner)
	}

	if len(def) >= 2 && def[0] == '"' && def[len(def)-1] == '"' {
		return def
	}

	return strconv.Quote(def)
}
