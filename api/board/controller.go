package boardapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/api/identity"
	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultRows         = 37
	defaultCols         = 37
	defaultMaxDimension = 101
)

// Config holds the dependencies of a Controller.
type Config struct {
	Boards       i.BoardManager
	Logger       i.Logger
	Rows         int // Rows of a stateless maze without explicit dimensions
	Cols         int // Columns of a stateless maze without explicit dimensions
	MaxDimension int // Upper bound on rows and columns of stateless requests
}

// Controller serves board sessions to signed-in users and stateless solve and
// maze requests to everyone.
type Controller struct {
	boards       i.BoardManager
	logger       i.Logger
	rows         int
	cols         int
	maxDimension int
}

// NewController creates a Controller.
func NewController(cfg Config) (*Controller, error) {
	if cfg.Boards == nil || cfg.Logger == nil {
		return nil, errors.New("board controller: missing dependency")
	}
	if cfg.MaxDimension <= 0 {
		cfg.MaxDimension = defaultMaxDimension
	}
	if cfg.Rows <= 0 {
		cfg.Rows = min(defaultRows, cfg.MaxDimension)
	}
	if cfg.Cols <= 0 {
		cfg.Cols = min(defaultCols, cfg.MaxDimension)
	}
	return &Controller{
		boards:       cfg.Boards,
		logger:       cfg.Logger,
		rows:         cfg.Rows,
		cols:         cfg.Cols,
		maxDimension: cfg.MaxDimension,
	}, nil
}

// RegisterPublic registers the stateless routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/solve", c.solve)
	route.POST("/maze", c.generate)
}

// RegisterProtected registers the board session routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {
	boards := route.Group("/boards")
	{
		boards.POST("", c.create)
		boards.GET("/:id", c.board)
		boards.DELETE("/:id", c.delete)
		boards.POST("/:id/walls", c.toggleWall)
		boards.PUT("/:id/endpoints/:role", c.moveEndpoint)
		boards.POST("/:id/maze", c.generateMaze)
		boards.POST("/:id/clear", c.clearWalls)
		boards.POST("/:id/search", c.search)
	}
}

// create handles board creation.
func (c *Controller) create(ctx *gin.Context) {
	owner, ok := c.owner(ctx)
	if !ok {
		return
	}

	var request CreateBoardRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := c.boards.Create(ctx, owner, i.BoardSpec{
		Rows:   request.Rows,
		Cols:   request.Cols,
		Start:  request.Start,
		Finish: request.Finish,
	})
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toBoardResponse(board))
}

// board returns a stored board.
func (c *Controller) board(ctx *gin.Context) {
	owner, id, ok := c.target(ctx)
	if !ok {
		return
	}

	board, err := c.boards.Board(ctx, owner, id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toBoardResponse(board))
}

// delete removes a stored board.
func (c *Controller) delete(ctx *gin.Context) {
	owner, id, ok := c.target(ctx)
	if !ok {
		return
	}

	if err := c.boards.Delete(ctx, owner, id); err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// toggleWall flips one wall. A rejected toggle answers 409 with the
// unchanged board.
func (c *Controller) toggleWall(ctx *gin.Context) {
	owner, id, ok := c.target(ctx)
	if !ok {
		return
	}

	var request PositionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, applied, err := c.boards.ToggleWall(ctx, owner, id, request.position())
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	c.respondEdit(ctx, board, applied)
}

// moveEndpoint moves the start or finish marker.
func (c *Controller) moveEndpoint(ctx *gin.Context) {
	owner, id, ok := c.target(ctx)
	if !ok {
		return
	}

	role, ok := grid.ParseRole(ctx.Param("role"))
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown endpoint %q", ctx.Param("role"))})
		return
	}

	var request PositionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, applied, err := c.boards.MoveEndpoint(ctx, owner, id, role, request.position())
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	c.respondEdit(ctx, board, applied)
}

func (c *Controller) respondEdit(ctx *gin.Context, board *dmn.Board, applied bool) {
	status := http.StatusOK
	if !applied {
		status = http.StatusConflict
	}
	ctx.JSON(status, EditResponse{Applied: applied, Board: toBoardResponse(board)})
}

// generateMaze replaces the board's walls with a maze.
func (c *Controller) generateMaze(ctx *gin.Context) {
	owner, id, ok := c.target(ctx)
	if !ok {
		return
	}

	opts, ok := mazeOptions(ctx)
	if !ok {
		return
	}

	board, err := c.boards.GenerateMaze(ctx, owner, id, opts...)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toBoardResponse(board))
}

// clearWalls removes every wall.
func (c *Controller) clearWalls(ctx *gin.Context) {
	owner, id, ok := c.target(ctx)
	if !ok {
		return
	}

	board, err := c.boards.ClearWalls(ctx, owner, id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toBoardResponse(board))
}

// search runs the shortest-path engine on the board.
func (c *Controller) search(ctx *gin.Context) {
	owner, id, ok := c.target(ctx)
	if !ok {
		return
	}

	began := time.Now()
	_, trace, err := c.boards.Search(ctx, owner, id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toSearchResponse(trace, time.Since(began)))
}

// owner resolves the signed-in user or answers 401.
func (c *Controller) owner(ctx *gin.Context) (uuid.UUID, bool) {
	owner, err := identity.UserID(ctx)
	if err != nil {
		c.logger.Warning(fmt.Sprintf("protected route without user: %s", err))
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return owner, true
}

// target resolves the signed-in user and the board ID in the path.
func (c *Controller) target(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	owner, ok := c.owner(ctx)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid board id"})
		return uuid.Nil, uuid.Nil, false
	}
	return owner, id, true
}

// mazeOptions reads an optional MazeRequest body.
func mazeOptions(ctx *gin.Context) ([]maze.Option, bool) {
	var request MazeRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, false
		}
	}
	return request.options(ctx)
}

func (r MazeRequest) options(ctx *gin.Context) ([]maze.Option, bool) {
	algorithm, err := maze.ParseAlgorithm(r.Algorithm)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	opts := []maze.Option{maze.WithAlgorithm(algorithm)}
	if r.Seed != nil {
		opts = append(opts, maze.WithSeed(*r.Seed))
	}
	return opts, true
}
