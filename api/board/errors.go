package boardapi

import (
	"errors"
	"net/http"

	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
	"github.com/beka-birhanu/vinom-pathfinder/service"
	"github.com/gin-gonic/gin"
)

// statusOf maps service and engine errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, dmn.ErrBoardNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrBoardBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, grid.ErrInvalidGeometry),
		errors.Is(err, service.ErrDimensionTooLarge),
		errors.Is(err, maze.ErrUnknownAlgorithm),
		errors.Is(err, pathfinding.ErrOutOfBounds):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(ctx *gin.Context, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	ctx.JSON(status, gin.H{"error": msg})
}
