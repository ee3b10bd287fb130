package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/zicoder/internal/core/ports/driving"
)

// EnqueueRequest names a task and its arguments.
type EnqueueRequest struct {
	TaskName string         `json:"task_name" binding:"required" example:"echo"`
	Args     []any          `json:"args"`
	Kwargs   map[string]any `json:"kwargs"`
}

// EnqueueResponse carries the id of the queued task.
type EnqueueResponse struct {
	TaskID string `json:"task_id"`
}

// TaskResultResponse carries the result of a finished task.
type TaskResultResponse struct {
	TaskID string `json:"task_id"`
	Result any    `json:"result"`
}

type queueRoutes struct {
	market driving.QueueMarketplace
}

func registerQueueRoutes(g *gin.RouterGroup, market driving.QueueMarketplace) {
	r := &queueRoutes{market: market}
	g.POST("/enqueue", r.enqueue)
	g.GET("/status/:task_id", r.status)
	g.GET("/result/:task_id", r.result)
}

// enqueue godoc
// @Summary Enqueue a task
// @Tags Queue
// @Accept json
// @Produce json
// @Param request body EnqueueRequest true "Task to run"
// @Success 200 {object} EnqueueResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /queue/enqueue [post]
// @Security Bearer
func (r *queueRoutes) enqueue(c *gin.Context) {
	var req EnqueueRequest
	if !bind(c, &req) {
		return
	}

	id, err := r.market.EnqueueTask(c.Request.Context(), req.TaskName, req.Args, req.Kwargs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, EnqueueResponse{TaskID: id})
}

// status godoc
// @Summary Get task status
// @Tags Queue
// @Produce json
// @Param task_id path string true "Task id"
// @Success 200 {object} domain.TaskStatus
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /queue/status/{task_id} [get]
// @Security Bearer
func (r *queueRoutes) status(c *gin.Context) {
	status, err := r.market.GetTaskStatus(c.Request.Context(), c.Param("task_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// result godoc
// @Summary Get task result
// @Description Returns 409 while the task is pending or running and 400 if it failed.
// @Tags Queue
// @Produce json
// @Param task_id path string true "Task id"
// @Success 200 {object} TaskResultResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /queue/result/{task_id} [get]
// @Security Bearer
func (r *queueRoutes) result(c *gin.Context) {
	id := c.Param("task_id")
	result, err := r.market.GetTaskResult(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, TaskResultResponse{TaskID: id, Result: result})
}
