package registry

import "binding-generator/internal/common"

// escapePrefix is prepended to identifiers that collide with a reserved word.
const escapePrefix = "_"

// reservedWords are the Go keywords plus the identifiers generated code
// imports. Read only.
var reservedWords = common.NewSet(
	"break", "case", "chan", "const", "continue",
	"default", "defer", "else", "fallthrough", "for",
	"func", "go", "goto", "if", "import",
	"interface", "map", "package", "range", "return",
	"select", "struct", "switch", "type", "var",
	"unsafe", "purego",
)

// IsReserved reports whether name collides with a reserved word.
func IsReserved(name string) bool {
	return reservedWords.Has(name)
}

// EscapeIdentifier returns name, prefixed if it is reserved.
func EscapeIdentifier(name string) string {
	if IsReserved(name) {
		return escapePrefix + name
	}

	return name
}
