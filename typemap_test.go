package erdkit_test

import (
	"testing"

	"github.com/erdkit/erdkit"
)

func TestMapScalar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format erdkit.Format
		token  string
		want   erdkit.ScalarKind
	}{
		{erdkit.FormatDSL, "String", erdkit.KindText},
		{erdkit.FormatDSL, "Int", erdkit.KindInteger},
		{erdkit.FormatDSL, "BigInt", erdkit.KindBigInteger},
		{erdkit.FormatDSL, "DateTime", erdkit.KindDateTime},
		{erdkit.FormatDSL, "Json", erdkit.KindJson},

		{erdkit.FormatSQL, "VARCHAR(255)", erdkit.KindText},
		{erdkit.FormatSQL, "varchar", erdkit.KindText},
		{erdkit.FormatSQL, "SERIAL", erdkit.KindInteger},
		{erdkit.FormatSQL, "BIGSERIAL", erdkit.KindBigInteger},
		{erdkit.FormatSQL, "DECIMAL(10,2)", erdkit.KindDecimal},
		{erdkit.FormatSQL, "TIMESTAMP", erdkit.KindDateTime},
		{erdkit.FormatSQL, "BOOLEAN", erdkit.KindBoolean},
		{erdkit.FormatSQL, "BYTEA", erdkit.KindBytes},

		{erdkit.FormatJSON, "string", erdkit.KindText},
		{erdkit.FormatJSON, "integer", erdkit.KindInteger},
		{erdkit.FormatJSON, "int64", erdkit.KindBigInteger},
		{erdkit.FormatJSON, "date-time", erdkit.KindDateTime},
		{erdkit.FormatJSON, "object", erdkit.KindJson},

		// Unknown tokens collapse to Text rather than failing.
		{erdkit.FormatSQL, "GEOGRAPHY", erdkit.KindText},
		{erdkit.FormatJSON, "money", erdkit.KindText},
	}

	for _, tt := range tests {
		if got := erdkit.MapScalar(tt.format, tt.token); got != tt.want {
			t.Errorf("MapScalar(%v, %q) = %v, want %v", tt.format, tt.token, got, tt.want)
		}
	}
}

func TestLookupScalar(t *testing.T) {
	t.Parallel()

	if _, ok := erdkit.LookupScalar(erdkit.FormatDSL, "User"); ok {
		t.Error("LookupScalar should not recognize a model name as a scalar")
	}

	kind, ok := erdkit.LookupScalar(erdkit.FormatDSL, "int")
	if !ok || kind != erdkit.KindInteger {
		t.Errorf("LookupScalar(dsl, int) = %v, %v; lookup should be case-insensitive", kind, ok)
	}
}
