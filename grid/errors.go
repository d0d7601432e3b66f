package grid

import "errors"

var (
	// ErrInvalidGeometry indicates dimensions or endpoint placement that break
	// the structural preconditions of a grid.
	ErrInvalidGeometry = errors.New("grid: invalid geometry")
)
