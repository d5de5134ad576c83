// Package sqlddl extracts table descriptors from SQL DDL. It targets the
// common CREATE TABLE subset shared by the major dialects rather than full
// grammar coverage; statements it does not recognize contribute nothing.
package sqlddl

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/erdkit/erdkit/raw"
)

// ErrUnbalanced is returned when a CREATE TABLE body never closes.
var ErrUnbalanced = errors.New("sqlddl: unterminated CREATE TABLE statement")

var (
	createTableRe = regexp.MustCompile(`(?i)\bCREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?([^\s(]+)\s*\(`)

	constraintPrefixRe = regexp.MustCompile(`(?i)^CONSTRAINT\s+\S+\s+`)
	foreignKeyRe       = regexp.MustCompile(`(?i)^FOREIGN\s+KEY\s*\(([^)]*)\)\s*REFERENCES\s+([^\s(]+)\s*(?:\(([^)]*)\))?`)
	tablePrimaryKeyRe  = regexp.MustCompile(`(?i)^PRIMARY\s+KEY\s*\(([^)]*)\)`)
	tableConstraintRe  = regexp.MustCompile(`(?i)^(UNIQUE|CHECK|INDEX|KEY|FULLTEXT|SPATIAL|EXCLUDE)\b`)

	columnNameRe = regexp.MustCompile("^(\"[^\"]+\"|`[^`]+`|\\[[^\\]]+\\]|[A-Za-z_][\\w$]*)\\s*(.*)$")
	columnTypeRe = regexp.MustCompile(`(?i)^([A-Za-z_]\w*(?:\s+(?:PRECISION|VARYING))?(?:\s*\([^)]*\))?)`)

	// Column constraint sub-patterns. Their presence is not mutually
	// exclusive; every one is checked against the constraint text.
	notNullRe       = regexp.MustCompile(`(?i)\bNOT\s+NULL\b`)
	primaryKeyRe    = regexp.MustCompile(`(?i)\bPRIMARY\s+KEY\b`)
	uniqueRe        = regexp.MustCompile(`(?i)\bUNIQUE\b`)
	defaultRe       = regexp.MustCompile(`(?i)\bDEFAULT\s+('(?:[^']|'')*'|\w+\s*\([^)]*\)|[^,\s]+)`)
	referencesRe    = regexp.MustCompile(`(?i)\bREFERENCES\s+([^\s(]+)\s*(?:\(([^)]*)\))?`)
	autoIncrementRe = regexp.MustCompile(`(?i)\b(AUTO_INCREMENT|AUTOINCREMENT|GENERATED\s+(?:ALWAYS|BY\s+DEFAULT)\s+AS\s+IDENTITY)\b`)
	serialTypeRe    = regexp.MustCompile(`(?i)^(SMALL|BIG)?SERIAL\b`)
)

// Parse extracts CREATE TABLE statements from SQL source. Text containing no
// recognizable statement yields an empty list, not an error; emptiness is the
// validator's concern, not the parser's.
func Parse(source string) ([]raw.Table, error) {
	clean := stripComments(source)

	var tables []raw.Table

	for _, m := range createTableRe.FindAllStringSubmatchIndex(clean, -1) {
		name := cleanIdentifier(clean[m[2]:m[3]])

		body, err := balancedBody(clean, m[1])
		if err != nil {
			return nil, fmt.Errorf("%w: table %q", err, name)
		}

		t := raw.Table{Name: name}

		for _, fragment := range splitTopLevel(body) {
			classifyFragment(fragment, &t)
		}

		tables = append(tables, t)
	}

	return tables, nil
}

// stripComments removes -- line comments and /* */ block comments while
// leaving single-quoted string literals untouched. Comments are replaced by
// a space so token boundaries survive.
func stripComments(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); {
		switch {
		case s[i] == '\'':
			// String literal: copy through the closing quote, honoring
			// doubled-quote escapes.
			j := i + 1
			for j < len(s) {
				if s[j] == '\'' {
					if j+1 < len(s) && s[j+1] == '\'' {
						j += 2

						continue
					}

					j++

					break
				}

				j++
			}

			b.WriteString(s[i:j])
			i = j

		case s[i] == '-' && i+1 < len(s) && s[i+1] == '-':
			for i < len(s) && s[i] != '\n' {
				i++
			}

			b.WriteByte(' ')

		case s[i] == '/' && i+1 < len(s) && s[i+1] == '*':
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}

			if i+1 < len(s) {
				i += 2
			} else {
				i = len(s)
			}

			b.WriteByte(' ')

		default:
			b.WriteByte(s[i])
			i++
		}
	}

	return b.String()
}

// balancedBody returns the parenthesized body whose opening paren sits just
// before index open, exclusive of the outer parens.
func balancedBody(s string, open int) (string, error) {
	depth := 1

	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\'':
			for i++; i < len(s) && s[i] != '\''; i++ {
			}
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[open:i], nil
			}
		}
	}

	return "", ErrUnbalanced
}

// splitTopLevel splits a CREATE TABLE body on commas at parenthesis depth
// zero, so type parameters such as DECIMAL(10,2) are not mis-split.
func splitTopLevel(body string) []string {
	var (
		parts []string
		depth int
		start int
	)

	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\'':
			for i++; i < len(body) && body[i] != '\''; i++ {
			}
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, body[start:i])
				start = i + 1
			}
		}
	}

	parts = append(parts, body[start:])

	out := parts[:0]

	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

// classifyFragment sorts one body fragment into a foreign key, a table-level
// constraint, or a column, in that priority order.
func classifyFragment(fragment string, t *raw.Table) {
	fragment = constraintPrefixRe.ReplaceAllString(fragment, "")

	if m := foreignKeyRe.FindStringSubmatch(fragment); m != nil {
		t.ForeignKeys = append(t.ForeignKeys, raw.ForeignKey{
			Columns:    splitIdentifiers(m[1]),
			RefTable:   cleanIdentifier(m[2]),
			RefColumns: splitIdentifiers(m[3]),
		})

		return
	}

	if m := tablePrimaryKeyRe.FindStringSubmatch(fragment); m != nil {
		t.PrimaryKey = append(t.PrimaryKey, splitIdentifiers(m[1])...)

		return
	}

	// Remaining table-level constraints contribute no field.
	if tableConstraintRe.MatchString(fragment) {
		return
	}

	if col, ok := parseColumn(fragment); ok {
		t.Columns = append(t.Columns, col)
	}
}

func parseColumn(fragment string) (raw.Column, bool) {
	m := columnNameRe.FindStringSubmatch(fragment)
	if m == nil {
		return raw.Column{}, false
	}

	name := cleanIdentifier(m[1])
	rest := strings.TrimSpace(m[2])

	tm := columnTypeRe.FindStringSubmatch(rest)
	if tm == nil {
		return raw.Column{}, false
	}

	col := raw.Column{Name: name, Type: strings.TrimSpace(tm[1])}
	constraints := rest[len(tm[0]):]

	col.NotNull = notNullRe.MatchString(constraints)
	col.Unique = uniqueRe.MatchString(constraints)

	if primaryKeyRe.MatchString(constraints) {
		col.PrimaryKey = true
		col.NotNull = true
	}

	if dm := defaultRe.FindStringSubmatch(constraints); dm != nil {
		def := dm[1]
		col.Default = &def
	}

	if rm := referencesRe.FindStringSubmatch(constraints); rm != nil {
		ref := &raw.ColumnRef{Table: cleanIdentifier(rm[1])}
		if cols := splitIdentifiers(rm[2]); len(cols) > 0 {
			ref.Column = cols[0]
		}

		col.Ref = ref
	}

	if serialTypeRe.MatchString(col.Type) || autoIncrementRe.MatchString(constraints) {
		auto := "autoincrement()"
		col.Default = &auto
		col.NotNull = true
	}

	return col, true
}

// cleanIdentifier strips quoting and a schema qualifier from an identifier.
func cleanIdentifier(id string) string {
	id = strings.TrimSpace(id)

	if i := strings.LastIndexByte(id, '.'); i >= 0 {
		id = id[i+1:]
	}

	return strings.Trim(id, "\"`[]")
}

func splitIdentifiers(list string) []string {
	var out []string

	for _, part := range strings.Split(list, ",") {
		if id := cleanIdentifier(part); id != "" {
			out = append(out, id)
		}
	}

	return out
}
