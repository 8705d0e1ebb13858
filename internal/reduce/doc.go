// Package reduce prunes a parsed registry down to what one target needs.
//
// Features are walked in document order. Within each feature every
// matching require delta is applied before any matching remove delta, so a
// later feature can undo an earlier one and the reverse. Versions are not
// re-sorted.
package reduce
