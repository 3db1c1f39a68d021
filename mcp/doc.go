// Package mcp defines the wire-format types exchanged by the serialization
// layer: feature definitions, content blocks and the result shapes of the
// supported protocol methods.
//
// Every optional field carries an omitempty/omitzero tag so the canonical
// wire form never contains explicit nulls.
package mcp
