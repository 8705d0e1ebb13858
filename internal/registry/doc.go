// Package registry parses an API registry document (the Khronos XML
// registry format) into an in-memory model.
//
// The model holds:
//   - Constant: an enumerated value, stored verbatim
//   - Function: a command with typed parameters and a return type
//   - Feature: a versioned API level with ordered require/remove deltas
//   - Extension: a named set of require/remove deltas
//
// Parsing is fail-fast: any deviation from the expected schema is returned
// as a *diagnostic.Error and no partial model is produced.
package registry
