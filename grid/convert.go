package grid

import "fmt"

// ToFlat lays a [row][col] cell matrix out in row-major order.
func ToFlat(m [][]Cell) []Cell {
	n := 0
	for _, row := range m {
		n += len(row)
	}

	flat := make([]Cell, 0, n)
	for _, row := range m {
		flat = append(flat, row...)
	}
	return flat
}

// To2D splits a row-major cell sequence into rows of cols cells each. The
// result does not share storage with flat.
func To2D(flat []Cell, rows, cols int) ([][]Cell, error) {
	if rows < 1 || cols < 1 || len(flat) != rows*cols {
		return nil, fmt.Errorf("%w: %d cells cannot form %dx%d", ErrInvalidGeometry, len(flat), rows, cols)
	}

	m := make([][]Cell, rows)
	for r := range m {
		m[r] = make([]Cell, cols)
		copy(m[r], flat[r*cols:(r+1)*cols])
	}
	return m, nil
}
