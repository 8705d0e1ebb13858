// Package source loads the raw registry document from a local path or an
// http(s) URL.
package source
