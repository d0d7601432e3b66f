package grid

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countRoles(g *Grid) (starts, finishes, wallOnEndpoint int) {
	for _, c := range g.Flat() {
		if c.IsStart {
			starts++
		}
		if c.IsFinish {
			finishes++
		}
		if c.IsWall && c.IsEndpoint() {
			wallOnEndpoint++
		}
	}
	return
}

func TestNew(t *testing.T) {
	t.Run("Valid grid", func(t *testing.T) {
		g, err := New(3, 4, Position{0, 0}, Position{2, 3})
		require.NoError(t, err)

		assert.Equal(t, 3, g.Rows())
		assert.Equal(t, 4, g.Cols())
		assert.Equal(t, 12, g.Len())
		assert.Equal(t, Position{0, 0}, g.Start())
		assert.Equal(t, Position{2, 3}, g.Finish())

		for i, c := range g.Flat() {
			assert.Equal(t, g.PositionOf(i), c.Position())
			assert.False(t, c.IsWall)
			assert.False(t, c.IsVisited)
			assert.Equal(t, Infinity, c.Distance)
			assert.Equal(t, NoPrevious, c.Previous)
		}
		assert.True(t, g.At(0, 0).IsStart)
		assert.True(t, g.At(2, 3).IsFinish)
	})

	tests := []struct {
		name          string
		rows, cols    int
		start, finish Position
	}{
		{"Zero rows", 0, 3, Position{0, 0}, Position{0, 1}},
		{"Negative cols", 3, -1, Position{0, 0}, Position{0, 1}},
		{"Start out of bounds", 3, 3, Position{3, 0}, Position{0, 1}},
		{"Finish out of bounds", 3, 3, Position{0, 0}, Position{0, -1}},
		{"Coincident endpoints", 3, 3, Position{1, 1}, Position{1, 1}},
		{"Single cell", 1, 1, Position{0, 0}, Position{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.rows, tt.cols, tt.start, tt.finish)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, ErrInvalidGeometry))
		})
	}
}

func TestDefault(t *testing.T) {
	g, err := Default(37, 37)
	require.NoError(t, err)
	assert.Equal(t, Position{1, 1}, g.Start())
	assert.Equal(t, Position{35, 35}, g.Finish())

	small, err := Default(2, 2)
	require.NoError(t, err)
	assert.Equal(t, Position{0, 0}, small.Start())
	assert.Equal(t, Position{1, 1}, small.Finish())

	_, err = Default(1, 1)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestRoundTrip(t *testing.T) {
	g, err := New(4, 5, Position{0, 1}, Position{3, 2})
	require.NoError(t, err)
	g.ToggleWall(1, 1)
	g.ToggleWall(2, 4)

	m := g.Matrix()
	require.Len(t, m, 4)
	for r, row := range m {
		require.Len(t, row, 5)
		for c, cell := range row {
			assert.Equal(t, Position{r, c}, cell.Position())
		}
	}

	back, err := To2D(ToFlat(m), 4, 5)
	require.NoError(t, err)
	assert.Equal(t, m, back)
	assert.Equal(t, g.Flat(), ToFlat(back))

	back[0][0].IsWall = true
	assert.False(t, m[0][0].IsWall, "To2D must not share storage")
}

func TestTo2D_LengthMismatch(t *testing.T) {
	_, err := To2D(make([]Cell, 5), 2, 3)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestToggleWall(t *testing.T) {
	g, err := New(3, 3, Position{0, 0}, Position{2, 2})
	require.NoError(t, err)

	t.Run("Flips an open cell", func(t *testing.T) {
		assert.True(t, g.ToggleWall(1, 1))
		assert.True(t, g.At(1, 1).IsWall)
		assert.True(t, g.ToggleWall(1, 1))
		assert.False(t, g.At(1, 1).IsWall)
	})

	t.Run("Rejects start and finish", func(t *testing.T) {
		before := g.Flat()
		assert.False(t, g.ToggleWall(0, 0))
		assert.False(t, g.ToggleWall(2, 2))
		assert.False(t, g.At(0, 0).IsWall)
		assert.Equal(t, before, g.Flat())
	})

	t.Run("Rejects out of bounds", func(t *testing.T) {
		assert.False(t, g.ToggleWall(3, 0))
		assert.False(t, g.ToggleWall(0, -1))
	})
}

func TestMoveEndpoint(t *testing.T) {
	newGrid := func(t *testing.T) *Grid {
		g, err := New(3, 3, Position{0, 0}, Position{2, 2})
		require.NoError(t, err)
		return g
	}

	t.Run("Moves start", func(t *testing.T) {
		g := newGrid(t)
		assert.True(t, g.MoveEndpoint(RoleStart, 1, 2))
		assert.Equal(t, Position{1, 2}, g.Start())
		assert.False(t, g.At(0, 0).IsStart)
		assert.True(t, g.At(1, 2).IsStart)
	})

	t.Run("Moves finish", func(t *testing.T) {
		g := newGrid(t)
		assert.True(t, g.MoveEndpoint(RoleFinish, 0, 2))
		assert.Equal(t, Position{0, 2}, g.Finish())
		assert.False(t, g.At(2, 2).IsFinish)
	})

	t.Run("Rejects wall target", func(t *testing.T) {
		g := newGrid(t)
		require.True(t, g.ToggleWall(1, 1))
		before := g.Flat()
		assert.False(t, g.MoveEndpoint(RoleStart, 1, 1))
		assert.False(t, g.MoveEndpoint(RoleFinish, 1, 1))
		assert.Equal(t, before, g.Flat())
	})

	t.Run("Rejects the other role's cell", func(t *testing.T) {
		g := newGrid(t)
		assert.False(t, g.MoveEndpoint(RoleStart, 2, 2))
		assert.False(t, g.MoveEndpoint(RoleFinish, 0, 0))
		assert.Equal(t, Position{0, 0}, g.Start())
		assert.Equal(t, Position{2, 2}, g.Finish())
	})

	t.Run("Same cell is a no-op success", func(t *testing.T) {
		g := newGrid(t)
		assert.True(t, g.MoveEndpoint(RoleStart, 0, 0))
		assert.Equal(t, Position{0, 0}, g.Start())
	})

	t.Run("Rejects unknown role and out of bounds", func(t *testing.T) {
		g := newGrid(t)
		assert.False(t, g.MoveEndpoint(Role(42), 1, 1))
		assert.False(t, g.MoveEndpoint(RoleStart, -1, 0))
	})
}

func TestSingleRoleInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g, err := New(6, 7, Position{0, 0}, Position{5, 6})
	require.NoError(t, err)

	for i := 0; i < 2000; i++ {
		r, c := rng.Intn(g.Rows()+1)-1, rng.Intn(g.Cols()+1)-1
		switch rng.Intn(3) {
		case 0:
			g.ToggleWall(r, c)
		case 1:
			g.MoveEndpoint(RoleStart, r, c)
		case 2:
			g.MoveEndpoint(RoleFinish, r, c)
		}

		starts, finishes, bad := countRoles(g)
		require.Equal(t, 1, starts)
		require.Equal(t, 1, finishes)
		require.Zero(t, bad)
		require.True(t, g.At(g.Start().Row, g.Start().Col).IsStart)
		require.True(t, g.At(g.Finish().Row, g.Finish().Col).IsFinish)
	}
}

func TestRestore(t *testing.T) {
	walls := []Position{{0, 1}, {1, 1}}
	g, err := Restore(3, 3, Position{0, 0}, Position{2, 2}, walls)
	require.NoError(t, err)
	assert.Equal(t, walls, g.Walls())
	assert.Equal(t, 2, g.WallCount())

	_, err = Restore(3, 3, Position{0, 0}, Position{2, 2}, []Position{{2, 2}})
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = Restore(3, 3, Position{0, 0}, Position{2, 2}, []Position{{5, 5}})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestCloneAndClearWalls(t *testing.T) {
	g, err := New(2, 3, Position{0, 0}, Position{1, 2})
	require.NoError(t, err)
	g.ToggleWall(0, 1)

	clone := g.Clone()
	clone.ToggleWall(1, 1)
	assert.Equal(t, 1, g.WallCount())
	assert.Equal(t, 2, clone.WallCount())

	clone.ClearWalls()
	assert.Zero(t, clone.WallCount())
	assert.Equal(t, g.Start(), clone.Start())
}

func TestNeighbors(t *testing.T) {
	g, err := New(3, 3, Position{0, 0}, Position{2, 2})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 7, 3, 5}, g.Neighbors(nil, 4))
	assert.Equal(t, []int{3, 1}, g.Neighbors(nil, 0))
	assert.Equal(t, []int{5, 7}, g.Neighbors(nil, 8))
}
