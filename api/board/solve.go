package boardapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
	"github.com/gin-gonic/gin"
)

// solve searches a layout sent in the request body. Nothing is stored.
func (c *Controller) solve(ctx *gin.Context) {
	var request LayoutRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !c.checkDimensions(ctx, request.Rows, request.Cols) {
		return
	}

	g, err := grid.Restore(request.Rows, request.Cols, *request.Start, *request.Finish, request.Walls)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	began := time.Now()
	trace, err := pathfinding.Solve(g)
	elapsed := time.Since(began)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toSearchResponse(trace, elapsed))
}

// generate returns a maze layout for the requested dimensions. Nothing is
// stored.
func (c *Controller) generate(ctx *gin.Context) {
	var request StatelessMazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, cols := request.Rows, request.Cols
	if rows == 0 {
		rows = c.rows
	}
	if cols == 0 {
		cols = c.cols
	}
	if !c.checkDimensions(ctx, rows, cols) {
		return
	}

	g, err := grid.Default(rows, cols)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	if request.Start != nil || request.Finish != nil {
		start, finish := g.Start(), g.Finish()
		if request.Start != nil {
			start = *request.Start
		}
		if request.Finish != nil {
			finish = *request.Finish
		}
		if g, err = grid.New(rows, cols, start, finish); err != nil {
			abortWithError(ctx, err)
			return
		}
	}

	opts, ok := request.MazeRequest.options(ctx)
	if !ok {
		return
	}

	info, err := maze.Generate(g, opts...)
	if err != nil {
		c.logger.Warning(fmt.Sprintf("stateless maze %dx%d failed: %s", rows, cols, err))
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, MazeResponse{Layout: toLayout(g), Maze: info})
}

func (c *Controller) checkDimensions(ctx *gin.Context, rows, cols int) bool {
	if rows > c.maxDimension || cols > c.maxDimension {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("grid %dx%d exceeds %d", rows, cols, c.maxDimension)})
		return false
	}
	return true
}
