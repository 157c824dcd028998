package frontmatter

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantFields  []Field
		wantBody    string
		wantErr     bool
		errContains string
	}{
		{
			name: "all known fields plus extras",
			content: `---
name: code-reviewer
description: Review code for best practices.
license: Apache-2.0
compatibility: ">=1.2"
user-invocable: true
allowed-tools:
  - Read
  - Grep
---

# Code Reviewer

Instructions here.`,
			wantFields: []Field{
				{Name: "name", Value: String("code-reviewer")},
				{Name: "description", Value: String("Review code for best practices.")},
				{Name: "license", Value: String("Apache-2.0")},
				{Name: "compatibility", Value: String(">=1.2")},
				{Name: "user-invocable", Value: Bool(true)},
				{Name: "allowed-tools", Value: List("Read", "Grep")},
			},
			wantBody: "# Code Reviewer\n\nInstructions here.",
		},
		{
			name: "inline list",
			content: `---
name: helper
tools: [Read, Write]
---

Body.`,
			wantFields: []Field{
				{Name: "name", Value: String("helper")},
				{Name: "tools", Value: List("Read", "Write")},
			},
			wantBody: "Body.",
		},
		{
			name: "numeric and null scalars canonicalize to strings",
			content: `---
name: versioned
version: 2
weight: 1.5
license:
---

Body.`,
			wantFields: []Field{
				{Name: "name", Value: String("versioned")},
				{Name: "version", Value: String("2")},
				{Name: "weight", Value: String("1.5")},
				{Name: "license", Value: String("")},
			},
			wantBody: "Body.",
		},
		{
			name: "empty header",
			content: `---
---

Just a body.`,
			wantFields: nil,
			wantBody:   "Just a body.",
		},
		{
			name: "no body",
			content: `---
name: minimal
---`,
			wantFields: []Field{{Name: "name", Value: String("minimal")}},
			wantBody:   "",
		},
		{
			name: "delimiter lines inside body are kept",
			content: `---
name: dashes
---

Before
---
After`,
			wantFields: []Field{{Name: "name", Value: String("dashes")}},
			wantBody:   "Before\n---\nAfter",
		},
		{
			name:       "windows line endings",
			content:    "---\r\nname: windows\r\n---\r\n\r\nBody with CRLF.",
			wantFields: []Field{{Name: "name", Value: String("windows")}},
			wantBody:   "Body with CRLF.",
		},
		{
			name: "leading whitespace before opening delimiter",
			content: `
---
name: padded
---

Body.`,
			wantFields: []Field{{Name: "name", Value: String("padded")}},
			wantBody:   "Body.",
		},
		{
			name:        "missing opening delimiter",
			content:     "# Just markdown\n\nNo header here.",
			wantErr:     true,
			errContains: "must start with YAML frontmatter",
		},
		{
			name:        "empty content",
			content:     "",
			wantErr:     true,
			errContains: "must start with YAML frontmatter",
		},
		{
			name: "missing closing delimiter",
			content: `---
name: incomplete`,
			wantErr:     true,
			errContains: "missing closing frontmatter delimiter",
		},
		{
			name:        "just dashes",
			content:     "---",
			wantErr:     true,
			errContains: "missing closing frontmatter delimiter",
		},
		{
			name: "header is not a mapping",
			content: `---
- a
- b
---

Body.`,
			wantErr:     true,
			errContains: "parsing frontmatter",
		},
		{
			name: "nested mapping rejected",
			content: `---
name: nested
metadata:
  author: someone
---

Body.`,
			wantErr:     true,
			errContains: "nested mappings are not supported",
		},
		{
			name: "nested list rejected",
			content: `---
name: nested-list
matrix:
  - [a, b]
---

Body.`,
			wantErr:     true,
			errContains: "unsupported list element",
		},
		{
			name: "duplicate field rejected",
			content: `---
name: first
name: second
---

Body.`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.content))

			if tt.wantErr {
				require.Error(t, err)
				var malformed *MalformedError
				assert.ErrorAs(t, err, &malformed)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, doc)
			assert.Equal(t, tt.wantFields, doc.Fields)
			assert.Equal(t, tt.wantBody, doc.Body)
		})
	}
}

func TestParseFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "SKILL.md")
	require.NoError(t, os.WriteFile(path, []byte("---\nname: file-test\n---\n\nBody."), 0644))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	value, ok := doc.Get("name")
	require.True(t, ok)
	assert.Equal(t, "file-test", value.Text())

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(tmpDir, "missing.md"))
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("malformed file carries path", func(t *testing.T) {
		bad := filepath.Join(tmpDir, "bad.md")
		require.NoError(t, os.WriteFile(bad, []byte("no header"), 0644))
		_, err := ParseFile(bad)
		var malformed *MalformedError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, bad, malformed.Path)
		assert.Contains(t, err.Error(), bad)
	})
}

func TestDocumentFieldHelpers(t *testing.T) {
	doc := &Document{
		Fields: []Field{
			{Name: "name", Value: String("helper")},
			{Name: "custom", Value: String("kept")},
		},
		Body: "Body.",
	}

	// Set updates in place, preserving position.
	doc.Set("name", String("renamed"))
	require.Len(t, doc.Fields, 2)
	assert.Equal(t, "name", doc.Fields[0].Name)
	assert.Equal(t, "renamed", doc.Fields[0].Value.Text())

	// Set appends unknown fields.
	doc.Set("license", String("MIT"))
	require.Len(t, doc.Fields, 3)
	assert.Equal(t, "license", doc.Fields[2].Name)

	// Delete removes and reports existence.
	assert.True(t, doc.Delete("custom"))
	assert.False(t, doc.Delete("custom"))
	_, ok := doc.Get("custom")
	assert.False(t, ok)
}

func TestDocumentClone(t *testing.T) {
	doc := &Document{
		Fields: []Field{
			{Name: "name", Value: String("original")},
			{Name: "tools", Value: List("Read")},
		},
		Body: "Body.",
	}

	clone := doc.Clone()
	clone.Set("name", String("changed"))
	clone.Set("tools", List("Read", "Write"))
	clone.Body = "Changed."

	value, _ := doc.Get("name")
	assert.Equal(t, "original", value.Text())
	value, _ = doc.Get("tools")
	assert.Equal(t, []string{"Read"}, value.Items())
	assert.Equal(t, "Body.", doc.Body)
}

func TestValueEqual(t *testing.T) {
	assert.True(t, String("a").Equal(String("a")))
	assert.False(t, String("a").Equal(String("b")))
	assert.False(t, String("true").Equal(Bool(true)))
	assert.True(t, Bool(false).Equal(Bool(false)))
	assert.True(t, List("a", "b").Equal(List("a", "b")))
	assert.False(t, List("a").Equal(List("a", "b")))
	assert.False(t, List("a", "b").Equal(List("b", "a")))
}
