package skill

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/deepnoodle-ai/skillset/frontmatter"
	"github.com/deepnoodle-ai/skillset/log"
	"github.com/gobwas/glob"
)

// defaultPatterns cover the two common skill layouts: one document per
// subdirectory (my-skill/SKILL.md) and standalone files (my-skill.md).
var defaultPatterns = []string{"*/SKILL.md", "*.md"}

// Options configures a Registry.
type Options struct {
	// Patterns are doublestar globs, relative to the scan root, that
	// select candidate document paths. Defaults to defaultPatterns.
	Patterns []string

	// Logger receives debug and warning messages during scans.
	// Defaults to a no-op logger.
	Logger log.Logger
}

// Registry is the in-memory, read-optimized index of discovered skill
// documents. It owns an immutable snapshot that is replaced wholesale on
// Scan and Invalidate, so reads from other goroutines observe either the
// pre- or post-update state, never a partial one.
type Registry struct {
	patterns []string
	logger   log.Logger

	mu   sync.RWMutex
	root string
	snap *regSnapshot
}

// regSnapshot is one immutable view of the registry contents. Never
// mutate a published snapshot; build a new one and swap it in.
type regSnapshot struct {
	infos  map[string]Info
	names  []string
	errors []ScanError
}

func emptySnapshot() *regSnapshot {
	return &regSnapshot{infos: map[string]Info{}}
}

func (s *regSnapshot) clone() *regSnapshot {
	next := &regSnapshot{
		infos:  make(map[string]Info, len(s.infos)),
		errors: append([]ScanError(nil), s.errors...),
	}
	for name, info := range s.infos {
		next.infos[name] = info
	}
	return next
}

// New creates an empty Registry. Call Scan to populate it.
func New(opts Options) *Registry {
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = defaultPatterns
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Registry{
		patterns: patterns,
		logger:   logger,
		snap:     emptySnapshot(),
	}
}

// Scan discovers skill documents under rootDir and replaces the entire
// cached set. Candidates that fail to parse or validate are recorded as
// scan errors, never fatal: one broken skill must not prevent the others
// from being listed. When two documents validate to the same name, the
// first in path-sorted order wins and the second is recorded as a
// collision error.
//
// Scan returns an error only when the root itself cannot be enumerated.
func (r *Registry) Scan(rootDir string) error {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return &IOError{Op: "resolve", Path: rootDir, Err: err}
	}
	stat, err := os.Stat(root)
	if err != nil {
		return &IOError{Op: "scan", Path: rootDir, Err: err}
	}
	if !stat.IsDir() {
		return &IOError{Op: "scan", Path: rootDir, Err: errors.New("not a directory")}
	}

	candidates, err := r.candidatePaths(root)
	if err != nil {
		return err
	}

	next := emptySnapshot()
	for _, rel := range candidates {
		r.loadInto(next, filepath.Join(root, filepath.FromSlash(rel)))
	}
	next.names = sortedNames(next.infos)

	r.mu.Lock()
	r.root = root
	r.snap = next
	r.mu.Unlock()

	r.logger.Debug("scan complete",
		"root", root,
		"skills", len(next.infos),
		"errors", len(next.errors))
	return nil
}

// Rescan repeats the last Scan. It fails if Scan has never been called.
func (r *Registry) Rescan() error {
	root := r.Root()
	if root == "" {
		return errors.New("registry has not been scanned yet")
	}
	return r.Scan(root)
}

// Root returns the absolute path of the last scanned root directory,
// or "" before the first Scan.
func (r *Registry) Root() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.root
}

// candidatePaths matches the configured patterns under root and returns
// the deduplicated, sorted relative paths. The sort fixes the collision
// detection order regardless of pattern order.
func (r *Registry) candidatePaths(root string) ([]string, error) {
	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range r.patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, &IOError{Op: "scan", Path: root, Err: fmt.Errorf("invalid pattern %q: %w", pattern, err)}
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				paths = append(paths, match)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (r *Registry) loadInto(snap *regSnapshot, path string) {
	info, err := loadInfo(path)
	if err != nil {
		snap.errors = append(snap.errors, ScanError{Path: path, Err: err})
		r.logger.Warn("skipping skill document", "path", path, "error", err)
		return
	}
	if existing, ok := snap.infos[info.Name]; ok {
		snap.errors = append(snap.errors, ScanError{
			Path: path,
			Err:  fmt.Errorf("duplicate skill name %q, already defined by %s", info.Name, existing.Path),
		})
		r.logger.Warn("duplicate skill name", "name", info.Name, "path", path, "existing", existing.Path)
		return
	}
	snap.infos[info.Name] = *info
	r.logger.Debug("loaded skill", "name", info.Name, "path", path)
}

// loadInfo parses and validates one document.
func loadInfo(path string) (*Info, error) {
	doc, err := frontmatter.ParseFile(path)
	if err != nil {
		return nil, err
	}
	meta, err := ValidateFields(doc.Fields)
	if err != nil {
		return nil, err
	}
	return &Info{
		Name:          meta.Name,
		Description:   meta.Description,
		License:       meta.License,
		Compatibility: meta.Compatibility,
		UserInvocable: meta.UserInvocable,
		Path:          path,
		ParsedAt:      time.Now(),
	}, nil
}

// List returns all registered skills sorted by name. It is a pure read
// with no I/O; the returned slice is the caller's to keep.
func (r *Registry) List() []Info {
	snap := r.snapshot()
	infos := make([]Info, 0, len(snap.names))
	for _, name := range snap.names {
		infos = append(infos, snap.infos[name])
	}
	return infos
}

// ListMatching returns the skills whose names match the given glob
// pattern (e.g. "review-*"), sorted by name.
func (r *Registry) ListMatching(pattern string) ([]Info, error) {
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid name pattern %q: %w", pattern, err)
	}
	var infos []Info
	for _, info := range r.List() {
		if matcher.Match(info.Name) {
			infos = append(infos, info)
		}
	}
	return infos, nil
}

// Get returns the skill registered under name. Pure read, no I/O.
func (r *Registry) Get(name string) (Info, bool) {
	snap := r.snapshot()
	info, ok := snap.infos[name]
	return info, ok
}

// Len returns the number of registered skills.
func (r *Registry) Len() int {
	return len(r.snapshot().infos)
}

// Errors returns the per-document errors collected by the last scan and
// any subsequent invalidations, for the caller to surface.
func (r *Registry) Errors() []ScanError {
	snap := r.snapshot()
	return append([]ScanError(nil), snap.errors...)
}

// Invalidate re-parses only the file backing the named entry and updates
// the cache: the entry is refreshed in place, moved when the document
// was renamed on disk, or removed when the file is gone or no longer
// valid. Used after a save; unknown names are a no-op.
func (r *Registry) Invalidate(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.snap.infos[name]
	if !ok {
		return
	}

	next := r.snap.clone()
	delete(next.infos, name)
	next.errors = withoutPathErrors(next.errors, old.Path)

	info, err := loadInfo(old.Path)
	switch {
	case err == nil:
		if existing, ok := next.infos[info.Name]; ok && existing.Path != old.Path {
			next.errors = append(next.errors, ScanError{
				Path: old.Path,
				Err:  fmt.Errorf("duplicate skill name %q, already defined by %s", info.Name, existing.Path),
			})
			r.logger.Warn("duplicate skill name after invalidation",
				"name", info.Name, "path", old.Path, "existing", existing.Path)
		} else {
			next.infos[info.Name] = *info
		}
	case errors.Is(err, fs.ErrNotExist):
		r.logger.Debug("skill document removed", "name", name, "path", old.Path)
	default:
		next.errors = append(next.errors, ScanError{Path: old.Path, Err: err})
		r.logger.Warn("skill document no longer loads", "path", old.Path, "error", err)
	}

	next.names = sortedNames(next.infos)
	r.snap = next
}

func (r *Registry) snapshot() *regSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

func sortedNames(infos map[string]Info) []string {
	names := make([]string, 0, len(infos))
	for name := range infos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func withoutPathErrors(errs []ScanError, path string) []ScanError {
	kept := errs[:0]
	for _, e := range errs {
		if e.Path != path {
			kept = append(kept, e)
		}
	}
	return kept
}
