// Package diagnostic defines the fail-fast errors raised while reading a
// registry document.
//
// Two kinds exist:
//   - Structural: the markup does not match the expected schema
//     (missing attribute, missing child, unrecognized tag where the
//     schema is closed, unknown untyped parameter form)
//   - Value: an attribute holds a string outside a closed enumeration
//
// Both carry the element path where the problem was found.
package diagnostic
