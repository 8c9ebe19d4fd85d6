// Package app runs shapecheck: it compiles the requested validator
// expression against a registry and applies it to each input document.
package app
