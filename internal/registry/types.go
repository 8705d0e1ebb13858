package registry

import (
	"fmt"
	"slices"
	"strings"

	"binding-generator/internal/common"
)

// Api identifies a target API.
type Api int

const (
	// ApiAny is the zero value. As a delta filter it matches every api.
	ApiAny Api = iota
	ApiGL
	ApiGLES1
	ApiGLES2
	ApiGLSC2
)

var apiTags = map[Api]string{
	ApiGL:    "gl",
	ApiGLES1: "gles1",
	ApiGLES2: "gles2",
	ApiGLSC2: "glsc2",
}

// String returns the canonical lowercase tag.
func (a Api) String() string {
	if a == ApiAny {
		return "any"
	}

	if tag, ok := apiTags[a]; ok {
		return tag
	}

	return common.UnknownStr
}

// MarshalText encodes the api as its tag.
func (a Api) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ParseApi resolves a canonical tag such as "gles2".
func ParseApi(s string) (Api, error) {
	for api, tag := range apiTags {
		if tag == s {
			return api, nil
		}
	}

	return ApiAny, fmt.Errorf("unknown api %q", s)
}

// Profile identifies an API profile.
type Profile int

const (
	// ProfileAny is the zero value. As a delta filter it matches every profile.
	ProfileAny Profile = iota
	ProfileCore
	ProfileCompatibility
	ProfileCommon
)

var profileTags = map[Profile]string{
	ProfileCore:          "core",
	ProfileCompatibility: "compatibility",
	ProfileCommon:        "common",
}

// String returns the canonical lowercase tag.
func (p Profile) String() string {
	if p == ProfileAny {
		return "any"
	}

	if tag, ok := profileTags[p]; ok {
		return tag
	}

	return common.UnknownStr
}

// MarshalText encodes the profile as its tag.
func (p Profile) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// ParseProfile resolves a canonical tag such as "core".
func ParseProfile(s string) (Profile, error) {
	for profile, tag := range profileTags {
		if tag == s {
			return profile, nil
		}
	}

	return ProfileAny, fmt.Errorf("unknown profile %q", s)
}

// Constant is a single enumerated value.
type Constant struct {
	Name string `json:"name"`
	// Value is the literal from the document (hex or decimal), not evaluated.
	Value string `json:"value"`
	// Bitmask is inherited from the containing group.
	Bitmask bool `json:"bitmask,omitempty"`
	// Group is an informational semantic tag.
	Group string `json:"group,omitempty"`
	// Api restricts the value to one api when the document declares
	// per-api duplicates. ApiAny otherwise.
	Api Api `json:"api,omitempty"`
	// Suffix is the literal type suffix ("u", "ull"), if any.
	Suffix string `json:"suffix,omitempty"`
}

// Type describes a parameter or return type.
type Type struct {
	// Name is the base type. Empty means no value.
	Name string `json:"name,omitempty"`
	// Pointer is the pointer depth.
	Pointer int `json:"pointer,omitempty"`
	// Const marks the pointee as const qualified.
	Const bool `json:"const,omitempty"`
	// Opaque marks a base type renamed from an opaque struct tag.
	Opaque bool `json:"opaque,omitempty"`
}

// IsVoid reports whether the type denotes no value.
func (t Type) IsVoid() bool {
	return t.Name == ""
}

// String renders the descriptor, e.g. "GLint", "*GLint", "*const GLint",
// "**const GLchar".
func (t Type) String() string {
	if t.IsVoid() {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(strings.Repeat("*", t.Pointer))

	if t.Const && t.Pointer > 0 {
		sb.WriteString("const ")
	}

	sb.WriteString(t.Name)

	return sb.String()
}

// ReturnDescriptor renders the type as a return descriptor: "-> T", or the
// empty string when there is no value.
func (t Type) ReturnDescriptor() string {
	if t.IsVoid() {
		return ""
	}

	return "-> " + t.String()
}

// Parameter is a single function parameter.
type Parameter struct {
	// Name is the identifier, escaped if it collides with a reserved word.
	Name string `json:"name"`
	Type Type   `json:"type"`
}

// Function is a command record.
type Function struct {
	Name   string      `json:"name"`
	Params []Parameter `json:"params"`
	Return Type        `json:"return"`
}

// Signature renders the function as "name(p T, ...) -> R".
func (f Function) Signature() string {
	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, p.Name+" "+p.Type.String())
	}

	sig := f.Name + "(" + strings.Join(params, ", ") + ")"
	if ret := f.Return.ReturnDescriptor(); ret != "" {
		sig += " " + ret
	}

	return sig
}

// Delta is a require or remove block.
type Delta struct {
	// Profile filter. ProfileAny matches every profile.
	Profile Profile `json:"profile,omitempty"`
	// Api filter. ApiAny matches every api.
	Api       Api      `json:"api,omitempty"`
	Constants []string `json:"constants,omitempty"`
	Functions []string `json:"functions,omitempty"`
}

// Matches reports whether the delta applies to the given api and profile.
func (d Delta) Matches(api Api, profile Profile) bool {
	if d.Profile != ProfileAny && d.Profile != profile {
		return false
	}

	return d.Api == ApiAny || d.Api == api
}

// Feature is one API version level.
type Feature struct {
	Name     string  `json:"name,omitempty"`
	Api      Api     `json:"api"`
	Version  float64 `json:"version"`
	Requires []Delta `json:"requires,omitempty"`
	Removes  []Delta `json:"removes,omitempty"`
}

// Extension is a named set of deltas layered on top of the features.
type Extension struct {
	Name string `json:"name"`
	// Supported lists the raw tags from the supported attribute, e.g.
	// ["gl", "glcore", "gles2"].
	Supported []string `json:"supported,omitempty"`
	Requires  []Delta  `json:"requires,omitempty"`
	Removes   []Delta  `json:"removes,omitempty"`
}

// coreTag is the supported tag restricting an extension to the gl core profile.
const coreTag = "glcore"

// Supports reports whether the extension is available for api and profile.
func (e Extension) Supports(api Api, profile Profile) bool {
	if slices.Contains(e.Supported, api.String()) {
		return true
	}

	return api == ApiGL && profile == ProfileCore && slices.Contains(e.Supported, coreTag)
}

// Registry is the parsed document.
type Registry struct {
	Constants  []Constant  `json:"constants"`
	Functions  []Function  `json:"functions"`
	Features   []Feature   `json:"features"`
	Extensions []Extension `json:"extensions,omitempty"`
}
