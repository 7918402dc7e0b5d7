package core

import "fmt"

// CompilationError is returned when a protease rule cannot be compiled.
type CompilationError struct {
	Pattern string
	Err     error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("invalid cleavage pattern %q: %v", e.Pattern, e.Err)
}

func (e *CompilationError) Unwrap() error { return e.Err }

// StateError is returned when a library operation runs before the stage it
// depends on has completed.
type StateError struct {
	Op    string
	Stage string // current stage
	Want  string // required stage
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: library is %s, want %s", e.Op, e.Stage, e.Want)
}
