package sheet

import "fmt"

// InvalidPositionError is raised whenever a caller supplies a position
// that fails Position.IsValid — the spec's InvalidPositionException.
type InvalidPositionError struct {
	Text string
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("sheet: invalid position %q", e.Text)
}

// CircularDependencyError is raised when installing a formula would close
// a cycle in the dependency graph — the spec's CircularDependencyException.
// The formula is rejected outright; the cell's prior contents are left
// untouched.
type CircularDependencyError struct {
	Text string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("sheet: formula %q would create a circular dependency", e.Text)
}
