// Package skill manages a collection of skill documents: Markdown files
// with a YAML frontmatter header and free-form instructions, in the
// SKILL.md layout agent tooling uses.
//
// # Document Format
//
// Skill documents carry five known header fields plus any number of
// extra fields, which are preserved verbatim through edits:
//
//	---
//	name: code-reviewer
//	description: Review code for best practices and potential issues.
//	license: Apache-2.0
//	compatibility: ">=1.2"
//	user-invocable: true
//	allowed-tools:
//	  - Read
//	  - Grep
//	---
//
//	# Code Reviewer
//	...
//
// # Components
//
// Registry discovers documents under a root directory and exposes a
// read-only, name-keyed index of validated summaries. One broken
// document never prevents the others from being listed; parse and
// validation failures are collected as scan errors instead.
//
// EditSession is a single-document editing transaction: it loads the
// file fresh from disk, stages changes to the known fields, validates on
// save, merges the validated fields back into the originally parsed
// header (extra fields and body untouched), and writes atomically via a
// temp-file rename. Discarding a session without saving has no effect.
//
// Watcher optionally keeps a Registry current by rescanning when the
// underlying files change.
//
// # Usage
//
//	registry := skill.New(skill.Options{})
//	if err := registry.Scan("./skills"); err != nil {
//	    return err
//	}
//	for _, info := range registry.List() {
//	    fmt.Printf("%s: %s\n", info.Name, info.Description)
//	}
//
//	session, err := skill.OpenEdit(info.Path, skill.EditOptions{Registry: registry})
//	if err != nil {
//	    return err
//	}
//	session.SetField(skill.FieldLicense, frontmatter.String("MIT"))
//	info, err = session.Save()
package skill

import (
	"time"

	"github.com/deepnoodle-ai/skillset/frontmatter"
)

// Known header field names. These five fields are validated and
// editable; all other header fields round-trip untouched.
const (
	FieldName          = "name"
	FieldDescription   = "description"
	FieldLicense       = "license"
	FieldCompatibility = "compatibility"
	FieldUserInvocable = "user-invocable"
)

// knownFields lists the editable fields in canonical order. Merges
// append newly introduced fields in this order.
var knownFields = []string{
	FieldName,
	FieldDescription,
	FieldLicense,
	FieldCompatibility,
	FieldUserInvocable,
}

func isKnownField(name string) bool {
	for _, known := range knownFields {
		if name == known {
			return true
		}
	}
	return false
}

// optionalFields may be absent; staging an empty value removes them.
func isOptionalField(name string) bool {
	return name == FieldLicense || name == FieldCompatibility
}

// Metadata is the validated view over a document's header fields.
type Metadata struct {
	// Name uniquely identifies the skill within a registry.
	Name string

	// Description explains what the skill does and when to use it.
	Description string

	// License is an optional license identifier. Empty means absent.
	License string

	// Compatibility is an optional free-form compatibility note.
	Compatibility string

	// UserInvocable reports whether the skill may be invoked directly
	// by the user. Absent defaults to false.
	UserInvocable bool

	// Extra holds the header fields outside the known set, in document
	// order. They are preserved verbatim and re-emitted on save.
	Extra []frontmatter.Field
}

// Info is a registry entry: the validated summary of one skill document.
// Infos are value copies and safe to hand out to callers.
type Info struct {
	Name          string
	Description   string
	License       string
	Compatibility string
	UserInvocable bool

	// Path is the document's location on disk.
	Path string

	// ParsedAt records when the document was last parsed successfully.
	ParsedAt time.Time
}
