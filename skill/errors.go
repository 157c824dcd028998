package skill

import "fmt"

// ValidationError indicates a known header field violating its rule.
// Field names the offending field so the caller can point at it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// NameConflictError indicates a save that would rename a skill onto a
// name already used by a different document.
type NameConflictError struct {
	Name         string
	Path         string
	ExistingPath string
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf("skill name %q is already used by %s", e.Name, e.ExistingPath)
}

// IOError wraps a filesystem failure with the operation and path it
// occurred on.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ScanError records one document that failed to load during a scan.
// Scans collect these instead of aborting.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }
