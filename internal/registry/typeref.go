package registry

import (
	"slices"
	"strings"

	"binding-generator/internal/diagnostic"
)

// opaqueStructs renames struct tags that only ever appear behind a pointer.
var opaqueStructs = map[string]string{
	"struct _cl_context": "cl_context",
	"struct _cl_event":   "cl_event",
}

// untypedPointers covers every parameter form written without a type
// sub-element. Keys are in compact form (see untypedKey).
var untypedPointers = map[string]Type{
	"const void*":       {Name: "void", Pointer: 1, Const: true},
	"const void**":      {Name: "void", Pointer: 2, Const: true},
	"const void*const*": {Name: "void", Pointer: 2, Const: true},
	"void*":             {Name: "void", Pointer: 1},
	"void**":            {Name: "void", Pointer: 2},
}

// deriveType reads the type of a proto or param element.
func deriveType(el *element, isReturn bool) (Type, error) {
	ptype := el.child("ptype")
	if ptype == nil {
		return untypedType(el, isReturn)
	}

	t := Type{Name: joinFields(ptype.text, " ")}
	if renamed, ok := opaqueStructs[t.Name]; ok {
		t.Name = renamed
		t.Opaque = true
	}

	leadingConst := slices.Contains(strings.Fields(el.textBefore(ptype)), "const")

	switch trailing := joinFields(ptype.tail, ""); trailing {
	case "":
	case "*":
		t.Pointer = 1
		t.Const = leadingConst
	case "**":
		t.Pointer = 2
		t.Const = leadingConst
	case "*const*":
		t.Pointer = 2
		t.Const = true
	default:
		return Type{}, diagnostic.Structural(diagnostic.CodeUnknownType, el.path(),
			"unrecognized pointer form %q after type %q", trailing, t.Name)
	}

	return t, nil
}

// untypedType resolves a type written as raw text before the name element.
// A parameter must match the untyped pointer table. A prototype that matches
// it returns that pointer; any other untyped prototype returns no value.
func untypedType(el *element, isReturn bool) (Type, error) {
	raw := el.text
	if name := el.child("name"); name != nil {
		raw = el.textBefore(name)
	}

	if t, ok := untypedPointers[untypedKey(raw)]; ok {
		return t, nil
	}

	if isReturn {
		return Type{}, nil
	}

	return Type{}, diagnostic.Structural(diagnostic.CodeUnknownType, el.path(),
		"unrecognized untyped form %q", joinFields(raw, " "))
}

// untypedKey collapses whitespace runs to one space and drops whitespace
// around '*', so "void*", "void *" and "void  * " share the key "void*".
func untypedKey(raw string) string {
	key := joinFields(raw, " ")
	key = strings.ReplaceAll(key, " *", "*")

	return strings.ReplaceAll(key, "* ", "*")
}

// joinFields collapses whitespace runs in s to sep and trims the ends.
func joinFields(s, sep string) string {
	return strings.Join(strings.Fields(s), sep)
}
