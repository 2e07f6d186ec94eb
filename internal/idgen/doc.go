// Package idgen produces run identifiers. Callers treat them as opaque
// strings; tests may replace NewFunc.
package idgen
