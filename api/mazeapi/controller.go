package mazeapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-carver/api/identity"
	dmn "github.com/beka-birhanu/vinom-carver/domain"
	"github.com/beka-birhanu/vinom-carver/service"
	"github.com/beka-birhanu/vinom-carver/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MazeController serves carving, lookup and replay of mazes.
type MazeController struct {
	carver i.MazeCarver
}

// NewMazeController creates a MazeController backed by the given carver.
func NewMazeController(c i.MazeCarver) (*MazeController, error) {
	if c == nil {
		return nil, errors.New("maze controller needs a carver")
	}
	return &MazeController{carver: c}, nil
}

// RegisterPublic registers the read-only maze routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("", mc.recent)
		mazes.GET("/:ID", mc.byID)
		mazes.GET("/:ID/trace", mc.trace)
	}
}

// RegisterProtected registers the routes that need an authenticated user.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/mazes", mc.carve)
}

func (mc *MazeController) carve(ctx *gin.Context) {
	claims, ok := identity.ClaimsFrom(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request CarveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, grid, err := mc.carver.Generate(ctx.Request.Context(), claims.UserID, request.toDomain())
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	response, err := newMazeResponse(record, grid)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response)
}

func (mc *MazeController) byID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	record, grid, err := mc.carver.ByID(ctx.Request.Context(), id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	response, err := newMazeResponse(record, grid)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

func (mc *MazeController) recent(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	records, err := mc.carver.Recent(ctx.Request.Context(), limit)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	summaries := make([]MazeSummary, len(records))
	for k, r := range records {
		summaries[k] = newSummary(r)
	}
	ctx.JSON(http.StatusOK, gin.H{"mazes": summaries})
}

func (mc *MazeController) trace(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	events, err := mc.carver.Trace(ctx.Request.Context(), id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	views := make([]EventView, len(events))
	for k, e := range events {
		views[k] = newEventView(e)
	}
	ctx.JSON(http.StatusOK, TraceResponse{ID: id.String(), Events: views})
}

func abortWithError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, dmn.ErrMazeNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
