package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barberia-app/barberia-api/internal/jobs"
)

type JobHandler struct {
	worker *jobs.Worker
}

func NewJobHandler(worker *jobs.Worker) *JobHandler {
	return &JobHandler{worker: worker}
}

// @Summary Worker Stats
// @Description Background worker queue statistics (Admin)
// @Tags Jobs
// @Produce json
// @Success 200 {object} jobs.WorkerStats
// @Security BearerAuth
// @Router /jobs/stats [get]
func (h *JobHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.worker.GetStats())
}
