package registry

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"
)

// element is a node of the minimal document tree. Character data is kept
// the way mixed content needs it: text holds the data before the first
// child, tail holds the data between this element's end tag and the next
// sibling.
type element struct {
	name     string
	attrs    map[string]string
	text     string
	tail     string
	parent   *element
	children []*element
}

var (
	errNoRoot        = errors.New("document has no root element")
	errTrailingElem  = errors.New("element after document end")
	errTextOutsideEl = errors.New("character data outside root element")
)

// parseDocument builds the element tree from markup.
func parseDocument(data []byte) (*element, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var stack []*element
	var root *element
	rootClosed := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, errTrailingElem
			}

			el := &element{
				name:  t.Name.Local,
				attrs: make(map[string]string, len(t.Attr)),
			}
			for _, a := range t.Attr {
				el.attrs[a.Name.Local] = a.Value
			}

			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				el.parent = parent
				parent.children = append(parent.children, el)
			} else {
				root = el
			}

			stack = append(stack, el)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					rootClosed = true
				}
			}

		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, errTextOutsideEl
				}

				continue
			}

			current := stack[len(stack)-1]
			if n := len(current.children); n > 0 {
				current.children[n-1].tail += string(t)
			} else {
				current.text += string(t)
			}
		}
	}

	if root == nil {
		return nil, errNoRoot
	}

	return root, nil
}

// attr returns an attribute value and whether it was present.
func (e *element) attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// child returns the first direct child with the given name, or nil.
func (e *element) child(name string) *element {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}

	return nil
}

// textBefore returns the character data immediately preceding a direct child.
func (e *element) textBefore(child *element) string {
	for i, c := range e.children {
		if c != child {
			continue
		}

		if i == 0 {
			return e.text
		}

		return e.children[i-1].tail
	}

	return ""
}

// path returns the slash separated element names from the root. An element
// with same-named siblings carries its 1-based position, e.g.
// "registry/feature[2]/require".
func (e *element) path() string {
	var names []string
	for el := e; el != nil; el = el.parent {
		names = append(names, el.step())
	}

	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}

	return strings.Join(names, "/")
}

// step renders one path segment.
func (e *element) step() string {
	if e.parent == nil {
		return e.name
	}

	pos, count := 0, 0
	for _, sibling := range e.parent.children {
		if sibling.name != e.name {
			continue
		}

		count++
		if sibling == e {
			pos = count
		}
	}

	if count < 2 {
		return e.name
	}

	return e.name + "[" + strconv.Itoa(pos) + "]"
}
