package erdkit

import (
	"path/filepath"
	"sort"
	"strings"
)

// Format identifies a source schema format.
type Format string

// Source format names.
const (
	FormatDSL  Format = "dsl"
	FormatSQL  Format = "sql"
	FormatJSON Format = "json"
)

// ExtensionFormats maps file-name extensions to their source format.
var ExtensionFormats = map[string]Format{
	".prisma": FormatDSL,
	".dsl":    FormatDSL,
	".sql":    FormatSQL,
	".ddl":    FormatSQL,
	".json":   FormatJSON,
}

// FormatForFile derives the source format from a file name's extension.
func FormatForFile(fileName string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(fileName))
	f, ok := ExtensionFormats[ext]

	return f, ok
}

// KnownFormat reports whether name is a recognized format identifier.
func KnownFormat(name string) bool {
	switch Format(name) {
	case FormatDSL, FormatSQL, FormatJSON:
		return true
	default:
		return false
	}
}

// SupportedExtensions returns the recognized extensions, sorted, without dots.
func SupportedExtensions() []string {
	out := make([]string, 0, len(ExtensionFormats))
	for ext := range ExtensionFormats {
		out = append(out, strings.TrimPrefix(ext, "."))
	}

	sort.Strings(out)

	return out
}
