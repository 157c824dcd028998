package skill

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deepnoodle-ai/skillset/frontmatter"
	"github.com/deepnoodle-ai/skillset/log"
	"github.com/pmezard/go-difflib/difflib"
)

// EditOptions configures an EditSession.
type EditOptions struct {
	// Registry, when set, is checked for name conflicts on rename and
	// invalidated after a successful save.
	Registry *Registry

	// Logger receives save events. Defaults to a no-op logger.
	Logger log.Logger
}

// EditSession is a single-document editing transaction bounded by
// OpenEdit and Save or Discard. It holds the originally parsed document;
// saves merge the staged known-field changes into that original
// structure, so extra fields, field order, and the body survive the
// edit untouched.
//
// A session that never completes a Save has no observable effect.
// EditSession is not safe for concurrent use.
type EditSession struct {
	path         string
	doc          *frontmatter.Document
	original     []byte
	originalName string
	staged       map[string]frontmatter.Value
	registry     *Registry
	logger       log.Logger
}

// OpenEdit loads the document at path fresh from disk and starts an edit
// session. It deliberately bypasses any registry cache so a concurrent
// external edit is picked up rather than clobbered. Documents whose
// metadata would fail validation can still be opened; validation runs at
// Save.
func OpenEdit(path string, opts EditOptions) (*EditSession, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNullLogger()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	doc, err := frontmatter.Parse(raw)
	if err != nil {
		var malformed *frontmatter.MalformedError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}
		return nil, err
	}

	originalName := ""
	if v, ok := doc.Get(FieldName); ok && v.Kind() == frontmatter.KindString {
		originalName = strings.TrimSpace(v.Text())
	}

	return &EditSession{
		path:         path,
		doc:          doc,
		original:     raw,
		originalName: originalName,
		staged:       map[string]frontmatter.Value{},
		registry:     opts.Registry,
		logger:       logger,
	}, nil
}

// Path returns the location of the document being edited.
func (e *EditSession) Path() string { return e.path }

// SetField stages a change to one of the five known fields. The value is
// not validated here; validation is deferred to Save so the caller can
// echo interim state freely. Field names outside the known set are
// rejected: extra fields are preserved, not edited.
func (e *EditSession) SetField(name string, value frontmatter.Value) error {
	if !isKnownField(name) {
		return fmt.Errorf("field %q is not editable", name)
	}
	e.staged[name] = value
	return nil
}

// Field returns the staged value for name, falling back to the value in
// the original document.
func (e *EditSession) Field(name string) (frontmatter.Value, bool) {
	if value, ok := e.staged[name]; ok {
		return value, true
	}
	return e.doc.Get(name)
}

// Dirty reports whether any changes are staged.
func (e *EditSession) Dirty() bool { return len(e.staged) > 0 }

// Discard drops all staged changes. The file on disk was never touched.
func (e *EditSession) Discard() {
	e.staged = map[string]frontmatter.Value{}
}

// Preview returns the document as Save would write it, without touching
// disk.
func (e *EditSession) Preview() ([]byte, error) {
	return frontmatter.Encode(e.merged())
}

// Diff returns a unified diff between the file as it was opened and the
// pending document, for a confirmation prompt. No disk access.
func (e *EditSession) Diff() (string, error) {
	pending, err := e.Preview()
	if err != nil {
		return "", err
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(e.original)),
		B:        difflib.SplitLines(string(pending)),
		FromFile: e.path,
		ToFile:   e.path + " (pending)",
		Context:  3,
	})
}

// merged clones the originally parsed document and applies the staged
// changes: fields already present are updated in place, preserving
// header order; newly introduced fields are appended in canonical order;
// optional fields staged empty are removed. Unstaged fields keep their
// original representation, and the body is carried over verbatim.
func (e *EditSession) merged() *frontmatter.Document {
	doc := e.doc.Clone()
	for _, name := range knownFields {
		value, ok := e.staged[name]
		if !ok {
			continue
		}
		if isOptionalField(name) && value.Kind() == frontmatter.KindString &&
			strings.TrimSpace(value.Text()) == "" {
			doc.Delete(name)
			continue
		}
		doc.Set(name, value)
	}
	return doc
}

// Save validates the merged document, persists it atomically, and
// refreshes the registry entry. On any failure the file on disk is left
// byte-identical to before the call.
//
// A name change is treated as a rename: the registry entry moves to the
// new name. If the new name is already registered for a different path,
// Save fails with *NameConflictError before writing anything.
func (e *EditSession) Save() (*Info, error) {
	merged := e.merged()
	meta, err := ValidateFields(merged.Fields)
	if err != nil {
		return nil, err
	}

	// A missing or invalid original name still counts as a rename: the
	// save introduces a name the registry may already hold.
	oldName := e.originalName
	renamed := meta.Name != oldName
	if e.registry != nil && renamed {
		if existing, ok := e.registry.Get(meta.Name); ok && existing.Path != e.path {
			return nil, &NameConflictError{
				Name:         meta.Name,
				Path:         e.path,
				ExistingPath: existing.Path,
			}
		}
	}

	encoded, err := frontmatter.Encode(merged)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(e.path, encoded); err != nil {
		return nil, err
	}

	e.doc = merged
	e.original = encoded
	e.originalName = meta.Name
	e.staged = map[string]frontmatter.Value{}

	info := &Info{
		Name:          meta.Name,
		Description:   meta.Description,
		License:       meta.License,
		Compatibility: meta.Compatibility,
		UserInvocable: meta.UserInvocable,
		Path:          e.path,
		ParsedAt:      time.Now(),
	}
	if e.registry != nil {
		e.registry.Invalidate(oldName)
		if renamed {
			e.registry.Invalidate(meta.Name)
		}
		if refreshed, ok := e.registry.Get(meta.Name); ok {
			info = &refreshed
		}
	}

	e.logger.Info("skill saved", "name", meta.Name, "path", e.path)
	return info, nil
}

// writeFileAtomic writes data to a temporary file in the same directory
// and renames it over path, so no partial document is ever observable,
// even on a crash mid-write. The temp name is dot-prefixed with a .tmp
// suffix so a stray file from an interrupted save is ignored by scans.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".skill-*.tmp")
	if err != nil {
		return &IOError{Op: "create temp file", Path: filepath.Dir(path), Err: err}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &IOError{Op: "close", Path: tmpPath, Err: err}
	}

	// Carry over the original file mode; CreateTemp defaults to 0600.
	if stat, err := os.Stat(path); err == nil {
		if err := os.Chmod(tmpPath, stat.Mode().Perm()); err != nil {
			os.Remove(tmpPath)
			return &IOError{Op: "chmod", Path: tmpPath, Err: err}
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
