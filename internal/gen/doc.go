// Package gen renders a reduced registry as a Go bindings package.
//
// Generation uses text/template, then golang.org/x/tools/imports for
// gofmt-style formatting and import grouping.
//
// Output files:
//   - doc.go: package documentation naming the target
//   - constants.go: one untyped constant per enumerant
//   - functions.go: a purego-registered function variable and an exported
//     wrapper per command, plus Init to resolve them
package gen
