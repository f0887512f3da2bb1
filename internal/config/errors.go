package config

import "fmt"

// Error reports a module property whose value cannot be used.
type Error struct {
	Module   string
	Property string
	Value    string
	Err      error
}

func (e *Error) Error() string {
	if e.Property == "" {
		return fmt.Sprintf("module %s: %v", e.Module, e.Err)
	}
	return fmt.Sprintf("module %s: property %s=%q: %v", e.Module, e.Property, e.Value, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
