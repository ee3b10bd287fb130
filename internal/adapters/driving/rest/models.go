package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/zicoder/internal/core/ports/driving"
)

// QueryRequest is the body of a model query.
type QueryRequest struct {
	Input string `json:"input" binding:"required" example:"Summarise the release notes"`
}

// QueryResponse carries the model output.
type QueryResponse struct {
	Output string `json:"output"`
}

type modelRoutes struct {
	market driving.ModelMarketplace
}

func registerModelRoutes(g *gin.RouterGroup, market driving.ModelMarketplace) {
	r := &modelRoutes{market: market}
	g.POST("/query", r.query)
}

// query godoc
// @Summary Query the active model
// @Tags Models
// @Accept json
// @Produce json
// @Param request body QueryRequest true "Model input"
// @Success 200 {object} QueryResponse
// @Failure 400 {object} ErrorResponse
// @Router /models/query [post]
// @Security Bearer
func (r *modelRoutes) query(c *gin.Context) {
	var req QueryRequest
	if !bind(c, &req) {
		return
	}

	output, err := r.market.Query(c.Request.Context(), req.Input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, QueryResponse{Output: output})
}
