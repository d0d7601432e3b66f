package pathfinding

import (
	"math/rand"
	"testing"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positions(cells []grid.Cell) []grid.Position {
	ps := make([]grid.Position, len(cells))
	for i, c := range cells {
		ps[i] = c.Position()
	}
	return ps
}

// bfsMoves is a brute-force oracle over open cells; -1 means unreachable.
func bfsMoves(g *grid.Grid, from, to grid.Position) int {
	if g.At(to.Row, to.Col).IsWall {
		return -1
	}
	dist := make([]int, g.Len())
	for i := range dist {
		dist[i] = -1
	}
	src := g.Index(from.Row, from.Col)
	dist[src] = 0
	queue := []int{src}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		for _, v := range g.Neighbors(nil, u) {
			if dist[v] != -1 || g.CellAt(v).IsWall {
				continue
			}
			dist[v] = dist[u] + 1
			queue = append(queue, v)
		}
	}
	return dist[g.Index(to.Row, to.Col)]
}

func assertAdjacentOpenPath(t *testing.T, path []grid.Cell) {
	t.Helper()
	for i, c := range path {
		assert.False(t, c.IsWall, "path crosses wall at (%d,%d)", c.Row, c.Col)
		if i == 0 {
			continue
		}
		p := path[i-1]
		dr, dc := c.Row-p.Row, c.Col-p.Col
		assert.Equal(t, 1, dr*dr+dc*dc, "non-adjacent step (%d,%d)->(%d,%d)", p.Row, p.Col, c.Row, c.Col)
	}
}

func TestSearch_OpenGrid(t *testing.T) {
	g, err := grid.New(3, 3, grid.Position{Row: 0, Col: 0}, grid.Position{Row: 2, Col: 2})
	require.NoError(t, err)

	trace, err := Solve(g)
	require.NoError(t, err)

	assert.True(t, trace.Found())
	assert.Len(t, trace.Path, 5)
	assert.Equal(t, 4, trace.Moves())
	assert.Equal(t, []grid.Position{
		{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2},
	}, positions(trace.Path))
	assertAdjacentOpenPath(t, trace.Path)

	assert.Equal(t, []grid.Position{
		{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 1},
		{Row: 2, Col: 0}, {Row: 1, Col: 1}, {Row: 0, Col: 2},
		{Row: 2, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 2},
	}, positions(trace.Visited))

	for i, c := range trace.Path {
		assert.Equal(t, i, c.Distance)
	}
}

func TestSearch_WalledMiddleRow(t *testing.T) {
	g, err := grid.New(3, 3, grid.Position{Row: 0, Col: 0}, grid.Position{Row: 2, Col: 2})
	require.NoError(t, err)
	for col := 0; col < 3; col++ {
		require.True(t, g.ToggleWall(1, col))
	}

	trace, err := Solve(g)
	require.NoError(t, err)
	assert.False(t, trace.Found())
	assert.Empty(t, trace.Path)
	assert.Equal(t, -1, trace.Moves())
	assert.Equal(t, []grid.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, positions(trace.Visited))
}

func TestSearch_EdgeCases(t *testing.T) {
	t.Run("Walled-in start", func(t *testing.T) {
		g, err := grid.New(3, 3, grid.Position{Row: 1, Col: 1}, grid.Position{Row: 2, Col: 2})
		require.NoError(t, err)
		for _, p := range []grid.Position{{Row: 0, Col: 1}, {Row: 2, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2}} {
			require.True(t, g.ToggleWall(p.Row, p.Col))
		}

		trace, err := Solve(g)
		require.NoError(t, err)
		assert.Equal(t, []grid.Position{{Row: 1, Col: 1}}, positions(trace.Visited))
		assert.Empty(t, trace.Path)
	})

	t.Run("Start equals finish", func(t *testing.T) {
		g, err := grid.New(2, 2, grid.Position{Row: 0, Col: 0}, grid.Position{Row: 1, Col: 1})
		require.NoError(t, err)

		trace, err := Search(g, grid.Position{Row: 0, Col: 1}, grid.Position{Row: 0, Col: 1})
		require.NoError(t, err)
		assert.Equal(t, []grid.Position{{Row: 0, Col: 1}}, positions(trace.Path))
		assert.Equal(t, []grid.Position{{Row: 0, Col: 1}}, positions(trace.Visited))
		assert.Zero(t, trace.Moves())
	})

	t.Run("Wall finish exhausts the grid", func(t *testing.T) {
		g, err := grid.New(2, 3, grid.Position{Row: 0, Col: 0}, grid.Position{Row: 1, Col: 2})
		require.NoError(t, err)
		require.True(t, g.ToggleWall(0, 2))

		trace, err := Search(g, g.Start(), grid.Position{Row: 0, Col: 2})
		require.NoError(t, err)
		assert.Empty(t, trace.Path)
		assert.Len(t, trace.Visited, 5)
		for _, c := range trace.Visited {
			assert.False(t, c.IsWall)
		}
	})

	t.Run("Out of bounds", func(t *testing.T) {
		g, err := grid.New(2, 2, grid.Position{Row: 0, Col: 0}, grid.Position{Row: 1, Col: 1})
		require.NoError(t, err)

		_, err = Search(g, grid.Position{Row: 2, Col: 0}, g.Finish())
		assert.ErrorIs(t, err, ErrOutOfBounds)
		_, err = Search(g, g.Start(), grid.Position{Row: 0, Col: -1})
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})

	t.Run("Nil grid", func(t *testing.T) {
		_, err := Solve(nil)
		assert.ErrorIs(t, err, ErrNilGrid)
	})
}

func TestSearch_Determinism(t *testing.T) {
	g, err := grid.New(8, 9, grid.Position{Row: 0, Col: 0}, grid.Position{Row: 7, Col: 8})
	require.NoError(t, err)
	for _, p := range []grid.Position{{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 3, Col: 4}, {Row: 5, Col: 5}, {Row: 6, Col: 7}} {
		g.ToggleWall(p.Row, p.Col)
	}

	first, err := Solve(g)
	require.NoError(t, err)
	second, err := Solve(g)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSearch_ResetsBookkeeping(t *testing.T) {
	g, err := grid.New(4, 4, grid.Position{Row: 0, Col: 0}, grid.Position{Row: 0, Col: 1})
	require.NoError(t, err)

	_, err = Search(g, g.Start(), grid.Position{Row: 3, Col: 3})
	require.NoError(t, err)
	trace, err := Solve(g)
	require.NoError(t, err)

	assert.Len(t, trace.Visited, 3)
	assert.Equal(t, grid.Infinity, g.At(3, 3).Distance)
	assert.False(t, g.At(3, 3).IsVisited)
}

func TestSearch_MatchesBFS(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		rows, cols := 2+rng.Intn(7), 2+rng.Intn(7)
		start := grid.Position{Row: rng.Intn(rows), Col: rng.Intn(cols)}
		finish := grid.Position{Row: rng.Intn(rows), Col: rng.Intn(cols)}
		if start == finish {
			continue
		}
		g, err := grid.New(rows, cols, start, finish)
		require.NoError(t, err)
		for i := 0; i < rows*cols/3; i++ {
			g.ToggleWall(rng.Intn(rows), rng.Intn(cols))
		}

		trace, err := Solve(g)
		require.NoError(t, err)

		want := bfsMoves(g, start, finish)
		require.Equal(t, want, trace.Moves(), "round %d", round)
		if want >= 0 {
			assert.Equal(t, start, trace.Path[0].Position())
			assert.Equal(t, finish, trace.Path[len(trace.Path)-1].Position())
			assertAdjacentOpenPath(t, trace.Path)
			assert.Equal(t, finish, trace.Visited[len(trace.Visited)-1].Position())
		}

		for i := 1; i < len(trace.Visited); i++ {
			assert.LessOrEqual(t, trace.Visited[i-1].Distance, trace.Visited[i].Distance)
		}
	}
}
