package erdkit

import (
	"strings"

	"github.com/erdkit/erdkit/dsl"
	"github.com/erdkit/erdkit/jsonschema"
	"github.com/erdkit/erdkit/raw"
	"github.com/erdkit/erdkit/sqlddl"
)

// Convert normalizes a schema document into the canonical model. The file
// name's extension selects the source format. On failure the returned error
// is a *ConversionError; no partial schema is ever returned alongside one.
func Convert(source, fileName string) (*Schema, error) {
	format, ok := FormatForFile(fileName)
	if !ok {
		return nil, convErr(UnsupportedFormat, "unsupported file type %q (supported: %s)",
			fileName, strings.Join(SupportedExtensions(), ", "))
	}

	return ConvertWithFormat(source, format)
}

// ConvertWithFormat is Convert for callers that already know the format.
func ConvertWithFormat(source string, format Format) (*Schema, error) {
	if strings.TrimSpace(source) == "" {
		return nil, convErr(EmptyInput, "source content is empty")
	}

	file, err := parseToDSL(source, format)
	if err != nil {
		return nil, err
	}

	models, enums, err := buildSchema(file)
	if err != nil {
		return nil, err
	}

	if len(models) == 0 && len(enums) == 0 {
		return nil, convErr(NoDefinitionsFound, "no models or enums found in source")
	}

	return &Schema{
		Models:        models,
		Enums:         enums,
		Relationships: inferRelationships(models),
	}, nil
}

// parseToDSL runs the structural parser for the format and returns a DSL AST.
// For the DSL format, parsing is the validation path; SQL and JSON are first
// rewritten as DSL text and re-parsed, so every format converges through the
// same classification pipeline.
func parseToDSL(source string, format Format) (*dsl.File, error) {
	switch format {
	case FormatDSL:
		file, err := dsl.Parse(source)
		if err != nil {
			return nil, wrapErr(MalformedSource, err, "invalid schema syntax")
		}

		return file, nil

	case FormatSQL:
		tables, err := sqlddl.Parse(source)
		if err != nil {
			return nil, wrapErr(MalformedSource, err, "invalid SQL")
		}

		return bridge(tables, nil, sqlTokenMapper())

	case FormatJSON:
		tables, enums, err := jsonschema.Parse(source)
		if err != nil {
			return nil, wrapErr(MalformedSource, err, "invalid JSON schema")
		}

		return bridge(tables, enums, jsonTokenMapper(tables, enums))

	default:
		return nil, convErr(UnsupportedFormat, "unsupported format %q", format)
	}
}

// bridge rewrites raw descriptors as DSL text and re-parses them. A failure
// here means the bridging step produced text the DSL parser rejects, which is
// an internal fault rather than a problem with the user's input.
func bridge(tables []raw.Table, enums []raw.Enum, mapToken func(string) string) (*dsl.File, error) {
	text := dsl.Write(tables, enums, mapToken)

	file, err := dsl.Parse(text)
	if err != nil {
		return nil, wrapErr(ConversionInternal, err, "normalization produced invalid schema text")
	}

	return file, nil
}

// sqlTokenMapper collapses every SQL type into a DSL scalar token. Unknown
// vendor types fall back to String.
func sqlTokenMapper() func(string) string {
	return func(token string) string {
		return dslToken(MapScalar(FormatSQL, token))
	}
}

// jsonTokenMapper maps recognized JSON type tokens to DSL scalars, keeps
// tokens naming another declaration in the document verbatim (model and enum
// references in export-shaped input), and falls back to String for the rest.
func jsonTokenMapper(tables []raw.Table, enums []raw.Enum) func(string) string {
	declared := make(map[string]bool, len(tables)+len(enums))

	for _, t := range tables {
		declared[dsl.ModelName(t.Name)] = true
	}

	for _, e := range enums {
		declared[e.Name] = true
	}

	return func(token string) string {
		if kind, ok := LookupScalar(FormatJSON, token); ok {
			return dslToken(kind)
		}

		if declared[token] || declared[dsl.ModelName(token)] {
			if declared[token] {
				return token
			}

			return dsl.ModelName(token)
		}

		return dslToken(KindText)
	}
}
