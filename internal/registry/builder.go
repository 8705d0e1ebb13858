package registry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"binding-generator/internal/diagnostic"
)

// malformedGroup encodes negative values outside the normal scheme and is
// skipped entirely.
const malformedGroup = "TransformFeedbackTokenNV"

// Parse builds the full registry model from markup.
func Parse(data []byte) (*Registry, error) {
	root, err := parseDocument(data)
	if err != nil {
		if errors.Is(err, errNoRoot) {
			return nil, diagnostic.Structural(diagnostic.CodeNoRoot, "", "document has no root element")
		}

		return nil, diagnostic.Structural(diagnostic.CodeXMLParse, "", "malformed markup").Wrap(err)
	}

	reg := &Registry{}

	for _, child := range root.children {
		switch rootTags.classify(child.name) {
		case tagEnums:
			err = reg.readEnums(child)
		case tagCommands:
			err = reg.readCommands(child)
		case tagFeature:
			err = reg.readFeature(child)
		case tagExtensions:
			err = reg.readExtensions(child)
		default:
		}

		if err != nil {
			return nil, err
		}
	}

	return reg, nil
}

func (r *Registry) readEnums(el *element) error {
	group, _ := el.attr("group")
	if group == malformedGroup {
		return nil
	}

	bitmask := el.attrs["type"] == "bitmask"

	for _, child := range el.children {
		if enumsTags.classify(child.name) != tagEnum {
			continue
		}

		c, err := readConstant(child, group, bitmask)
		if err != nil {
			return err
		}

		r.Constants = append(r.Constants, c)
	}

	return nil
}

func readConstant(el *element, group string, bitmask bool) (Constant, error) {
	name, err := requiredAttr(el, "name")
	if err != nil {
		return Constant{}, err
	}

	value, err := requiredAttr(el, "value")
	if err != nil {
		return Constant{}, err
	}

	c := Constant{
		Name:    name,
		Value:   value,
		Bitmask: bitmask,
		Group:   group,
		Suffix:  el.attrs["type"],
	}

	if own, ok := el.attr("group"); ok && own != "" {
		c.Group = own
	}

	if tag, ok := el.attr("api"); ok {
		if c.Api, err = parseApiAttr(el, tag); err != nil {
			return Constant{}, err
		}
	}

	return c, nil
}

func (r *Registry) readCommands(el *element) error {
	for _, child := range el.children {
		if commandsTags.classify(child.name) != tagCommand {
			continue
		}

		fn, err := readCommand(child)
		if err != nil {
			return err
		}

		r.Functions = append(r.Functions, fn)
	}

	return nil
}

func readCommand(el *element) (Function, error) {
	var proto *element
	var params []*element

	for _, child := range el.children {
		switch commandTags.classify(child.name) {
		case tagProto:
			if proto != nil {
				return Function{}, diagnostic.Structural(diagnostic.CodeDuplicateElement, el.path(),
					"command has more than one <proto>")
			}

			proto = child
		case tagParam:
			params = append(params, child)
		default:
		}
	}

	if proto == nil {
		return Function{}, diagnostic.Structural(diagnostic.CodeMissingElement, el.path(),
			"command has no <proto>")
	}

	name, err := requiredName(proto)
	if err != nil {
		return Function{}, err
	}

	ret, err := deriveType(proto, true)
	if err != nil {
		return Function{}, fmt.Errorf("command %s: %w", name, err)
	}

	fn := Function{
		Name:   name,
		Params: make([]Parameter, 0, len(params)),
		Return: ret,
	}

	for _, p := range params {
		param, err := readParam(p)
		if err != nil {
			return Function{}, fmt.Errorf("command %s: %w", name, err)
		}

		fn.Params = append(fn.Params, param)
	}

	return fn, nil
}

func readParam(el *element) (Parameter, error) {
	name, err := requiredName(el)
	if err != nil {
		return Parameter{}, err
	}

	t, err := deriveType(el, false)
	if err != nil {
		return Parameter{}, err
	}

	return Parameter{Name: EscapeIdentifier(name), Type: t}, nil
}

func (r *Registry) readFeature(el *element) error {
	tag, err := requiredAttr(el, "api")
	if err != nil {
		return err
	}

	api, err := parseApiAttr(el, tag)
	if err != nil {
		return err
	}

	number, err := requiredAttr(el, "number")
	if err != nil {
		return err
	}

	version, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return diagnostic.Value(diagnostic.CodeInvalidNumber, el.path(),
			"invalid version number %q", number).Wrap(err)
	}

	f := Feature{
		Name:    el.attrs["name"],
		Api:     api,
		Version: version,
	}

	if f.Requires, f.Removes, err = readDeltas(el); err != nil {
		return err
	}

	r.Features = append(r.Features, f)

	return nil
}

func (r *Registry) readExtensions(el *element) error {
	for _, child := range el.children {
		if extensionsTags.classify(child.name) != tagExtension {
			continue
		}

		name, err := requiredAttr(child, "name")
		if err != nil {
			return err
		}

		ext := Extension{Name: name}
		if supported := child.attrs["supported"]; supported != "" {
			ext.Supported = strings.Split(supported, "|")
		}

		if ext.Requires, ext.Removes, err = readDeltas(child); err != nil {
			return fmt.Errorf("extension %s: %w", name, err)
		}

		r.Extensions = append(r.Extensions, ext)
	}

	return nil
}

// readDeltas splits the children of a feature or extension into require and
// remove deltas, preserving document order within each list.
func readDeltas(el *element) (requires, removes []Delta, err error) {
	for _, child := range el.children {
		kind := featureTags.classify(child.name)
		if kind == tagUnknown {
			return nil, nil, unexpectedTag(child)
		}

		d, err := readDelta(child)
		if err != nil {
			return nil, nil, err
		}

		if kind == tagRequire {
			requires = append(requires, d)
		} else {
			removes = append(removes, d)
		}
	}

	return requires, removes, nil
}

func readDelta(el *element) (Delta, error) {
	var d Delta
	var err error

	if tag, ok := el.attr("profile"); ok {
		if d.Profile, err = ParseProfile(tag); err != nil {
			return Delta{}, diagnostic.Value(diagnostic.CodeUnknownProfile, el.path(), "%s", err)
		}
	}

	if tag, ok := el.attr("api"); ok {
		if d.Api, err = parseApiAttr(el, tag); err != nil {
			return Delta{}, err
		}
	}

	for _, child := range el.children {
		switch deltaTags.classify(child.name) {
		case tagEnum:
			name, err := requiredAttr(child, "name")
			if err != nil {
				return Delta{}, err
			}

			d.Constants = append(d.Constants, name)
		case tagCommand:
			name, err := requiredAttr(child, "name")
			if err != nil {
				return Delta{}, err
			}

			d.Functions = append(d.Functions, name)
		case tagIgnored:
		default:
			return Delta{}, unexpectedTag(child)
		}
	}

	return d, nil
}

func requiredAttr(el *element, name string) (string, error) {
	v, ok := el.attr(name)
	if !ok {
		return "", diagnostic.Structural(diagnostic.CodeMissingAttribute, el.path(),
			"missing required attribute %q", name)
	}

	return v, nil
}

// requiredName returns the trimmed text of the <name> child.
func requiredName(el *element) (string, error) {
	name := el.child("name")
	if name == nil {
		return "", diagnostic.Structural(diagnostic.CodeMissingElement, el.path(),
			"missing <name> child")
	}

	return strings.TrimSpace(name.text), nil
}

func parseApiAttr(el *element, tag string) (Api, error) {
	api, err := ParseApi(tag)
	if err != nil {
		return ApiAny, diagnostic.Value(diagnostic.CodeUnknownApi, el.path(), "%s", err)
	}

	return api, nil
}

func unexpectedTag(el *element) error {
	return diagnostic.Structural(diagnostic.CodeUnexpectedTag, el.path(),
		"unexpected <%s>", el.name)
}
