package schema

import (
	"fmt"
	"io/fs"
)

// LookupError reports a name that is absent from one of the fixed lookup
// tables (type tags, native type names, class list).
type LookupError struct {
	Table string
	Key   string
	Where string
}

func (e *LookupError) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("%s: no entry for %q", e.Table, e.Key)
	}
	return fmt.Sprintf("%s: no entry for %q (referenced by %s)", e.Table, e.Key, e.Where)
}

// InputNotFoundError reports a missing input document.
type InputNotFoundError struct {
	Path string
	Err  error
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input not found: %s", e.Path)
}

func (e *InputNotFoundError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, fs.ErrNotExist) match.
func (e *InputNotFoundError) Is(target error) bool { return target == fs.ErrNotExist }

// ValidationError reports an API document that does not match the input
// document schema.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid API document %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
