package erdkit

import "strings"

// dslScalars maps DSL primitive tokens to canonical kinds. The DSL already
// models canonical kinds, so this is a pass-through table; any other token is
// a model or enum reference, not a scalar.
var dslScalars = map[string]ScalarKind{
	"string":   KindText,
	"int":      KindInteger,
	"bigint":   KindBigInteger,
	"float":    KindFloat,
	"decimal":  KindDecimal,
	"boolean":  KindBoolean,
	"datetime": KindDateTime,
	"json":     KindJson,
	"bytes":    KindBytes,
}

// sqlScalars collapses common vendor type spellings into canonical kinds.
// Precision loss for exotic types is accepted, not signaled.
var sqlScalars = map[string]ScalarKind{
	"char": KindText, "varchar": KindText, "nvarchar": KindText,
	"character": KindText, "text": KindText, "tinytext": KindText,
	"mediumtext": KindText, "longtext": KindText, "citext": KindText,
	"uuid": KindText, "enum": KindText, "xml": KindText, "inet": KindText,

	"int": KindInteger, "integer": KindInteger, "smallint": KindInteger,
	"tinyint": KindInteger, "mediumint": KindInteger, "int2": KindInteger,
	"int4": KindInteger, "serial": KindInteger, "smallserial": KindInteger,

	"bigint": KindBigInteger, "int8": KindBigInteger, "bigserial": KindBigInteger,

	"real": KindFloat, "float": KindFloat, "float4": KindFloat,
	"float8": KindFloat, "double": KindFloat, "double precision": KindFloat,

	"decimal": KindDecimal, "numeric": KindDecimal, "money": KindDecimal,

	"bool": KindBoolean, "boolean": KindBoolean, "bit": KindBoolean,

	"date": KindDateTime, "time": KindDateTime, "datetime": KindDateTime,
	"datetime2": KindDateTime, "timestamp": KindDateTime,
	"timestamptz": KindDateTime, "timetz": KindDateTime,
	"smalldatetime": KindDateTime, "interval": KindDateTime,

	"json": KindJson, "jsonb": KindJson,

	"bytea": KindBytes, "blob": KindBytes, "tinyblob": KindBytes,
	"mediumblob": KindBytes, "longblob": KindBytes, "binary": KindBytes,
	"varbinary": KindBytes, "image": KindBytes,
}

// jsonScalars maps JSON schema type and format tokens to canonical kinds.
var jsonScalars = map[string]ScalarKind{
	"string": KindText, "str": KindText, "text": KindText, "char": KindText,
	"varchar": KindText, "uuid": KindText, "email": KindText, "uri": KindText,

	"int": KindInteger, "integer": KindInteger, "int32": KindInteger,
	"serial": KindInteger,
	"number": KindFloat, "float": KindFloat, "double": KindFloat,

	"int64": KindBigInteger, "long": KindBigInteger, "bigint": KindBigInteger,
	"bigserial": KindBigInteger,

	"decimal": KindDecimal, "numeric": KindDecimal,

	"bool": KindBoolean, "boolean": KindBoolean,

	"date": KindDateTime, "datetime": KindDateTime, "date-time": KindDateTime,
	"time": KindDateTime, "timestamp": KindDateTime,

	"json": KindJson, "object": KindJson, "map": KindJson,

	"bytes": KindBytes, "binary": KindBytes, "byte": KindBytes,
}

// MapScalar maps a source-format type token to a canonical scalar kind.
// Lookup is case-insensitive and type parameters such as VARCHAR(255) are
// ignored. Unknown tokens map to Text rather than erroring, so conversion
// always succeeds.
func MapScalar(format Format, token string) ScalarKind {
	k, ok := LookupScalar(format, token)
	if !ok {
		return KindText
	}

	return k
}

// LookupScalar is MapScalar without the Text fallback; ok reports whether
// the token is a recognized scalar of the format.
func LookupScalar(format Format, token string) (ScalarKind, bool) {
	token = normalizeToken(token)

	var table map[string]ScalarKind

	switch format {
	case FormatDSL:
		table = dslScalars
	case FormatSQL:
		table = sqlScalars
	case FormatJSON:
		table = jsonScalars
	default:
		return "", false
	}

	k, ok := table[token]

	return k, ok
}

// normalizeToken lower-cases a type token and strips a trailing parameter
// list, so VARCHAR(255) and DECIMAL(10,2) hit their family entries.
func normalizeToken(token string) string {
	token = strings.ToLower(strings.TrimSpace(token))

	if i := strings.IndexByte(token, '('); i >= 0 {
		token = strings.TrimSpace(token[:i])
	}

	return token
}

// dslToken renders a canonical scalar kind as its DSL type token. Used by
// the normalization bridge when rewriting SQL/JSON descriptors as DSL text.
func dslToken(k ScalarKind) string {
	switch k {
	case KindText:
		return "String"
	case KindInteger:
		return "Int"
	case KindBigInteger:
		return "BigInt"
	case KindFloat:
		return "Float"
	case KindDecimal:
		return "Decimal"
	case KindBoolean:
		return "Boolean"
	case KindDateTime:
		return "DateTime"
	case KindJson:
		return "Json"
	case KindBytes:
		return "Bytes"
	default:
		return "String"
	}
}
