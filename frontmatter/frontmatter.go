// Package frontmatter implements a lossless codec for skill documents:
// Markdown files that begin with a YAML frontmatter header delimited by
// "---" lines, followed by free-form body content.
//
// The codec is built around two guarantees that make safe partial editing
// possible:
//
//   - Header field order is preserved across a parse/encode cycle, and
//     fields the caller does not recognize round-trip untouched. Editing
//     one field never rewrites or drops the others.
//   - Encoding is deterministic: encoding the same Document twice
//     produces identical bytes, so repeated saves create no spurious
//     diffs.
//
// Header values are restricted to a small closed set of shapes (string,
// boolean, list of strings). Scalars that YAML types as numbers or null
// are canonicalized to strings; nested mappings and nested lists are
// rejected as malformed. This keeps encoding deterministic and typed
// rather than an open dynamic object.
package frontmatter

import (
	"fmt"
	"strconv"
)

// Kind identifies the shape of a header field value.
type Kind int

const (
	// KindString is a scalar string value.
	KindString Kind = iota

	// KindBool is a boolean value.
	KindBool

	// KindList is a list of string values.
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is one header field value: a string, a boolean, or a list of
// strings. The zero value is the empty string.
type Value struct {
	kind  Kind
	text  string
	truth bool
	items []string
}

// String returns a string Value.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Bool returns a boolean Value.
func Bool(v bool) Value {
	return Value{kind: KindBool, truth: v}
}

// List returns a list Value containing the given items.
func List(items ...string) Value {
	copied := make([]string, len(items))
	copy(copied, items)
	return Value{kind: KindList, items: copied}
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind { return v.kind }

// Text returns the string content. It is empty for non-string values.
func (v Value) Text() string { return v.text }

// Truth returns the boolean content. It is false for non-bool values.
func (v Value) Truth() bool { return v.truth }

// Items returns a copy of the list content. It is nil for non-list values.
func (v Value) Items() []string {
	if v.items == nil {
		return nil
	}
	copied := make([]string, len(v.items))
	copy(copied, v.items)
	return copied
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.truth == o.truth
	case KindList:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if v.items[i] != o.items[i] {
				return false
			}
		}
		return true
	default:
		return v.text == o.text
	}
}

// GoString helps debugging output stay readable in test failures.
func (v Value) GoString() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("frontmatter.Bool(%t)", v.truth)
	case KindList:
		return fmt.Sprintf("frontmatter.List(%q...)", v.items)
	default:
		return fmt.Sprintf("frontmatter.String(%s)", strconv.Quote(v.text))
	}
}

// yamlValue returns the representation handed to the YAML encoder.
func (v Value) yamlValue() any {
	switch v.kind {
	case KindBool:
		return v.truth
	case KindList:
		if v.items == nil {
			return []string{}
		}
		return v.items
	default:
		return v.text
	}
}

// Field is one key-value entry in a document header.
type Field struct {
	Name  string
	Value Value
}

// Document is the parsed form of a skill document: the ordered header
// fields and the body text. Field order matches the source document and
// is preserved by Encode.
type Document struct {
	Fields []Field
	Body   string
}

// Get returns the value of the named field.
func (d *Document) Get(name string) (Value, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Set updates the named field in place, preserving its position in the
// header. A field not already present is appended.
func (d *Document) Set(name string, value Value) {
	for i, f := range d.Fields {
		if f.Name == name {
			d.Fields[i].Value = value
			return
		}
	}
	d.Fields = append(d.Fields, Field{Name: name, Value: value})
}

// Delete removes the named field. It reports whether the field existed.
func (d *Document) Delete(name string) bool {
	for i, f := range d.Fields {
		if f.Name == name {
			d.Fields = append(d.Fields[:i], d.Fields[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the document. Mutating the copy leaves
// the original untouched.
func (d *Document) Clone() *Document {
	fields := make([]Field, len(d.Fields))
	copy(fields, d.Fields)
	for i, f := range fields {
		if f.Value.kind == KindList {
			fields[i].Value = List(f.Value.items...)
		}
	}
	return &Document{Fields: fields, Body: d.Body}
}

// MalformedError indicates a document whose marker or header structure
// could not be parsed. Path is empty when parsing from memory.
type MalformedError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, msg)
	}
	return msg
}

func (e *MalformedError) Unwrap() error { return e.Err }
