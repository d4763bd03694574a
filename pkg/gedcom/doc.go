// Package gedcom parses GEDCOM 5.5.1 and 7.0 exports into a typed document
// of individuals and families.
//
// The package is a pure computation layer: it holds no store dependencies and
// no mutable package state, so independent uploads can be parsed concurrently.
// Parsing is tolerant: malformed field content (an unparseable
// date, a bad line) is collected as a line-scoped warning on the resulting
// Document, and parsing continues. Only an unsupported or missing version
// declaration aborts the parse.
package gedcom
