package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"treko/internal/dao"
	"treko/internal/model"
	"treko/internal/tracking"
	"treko/pkg/str"
)

// handleTaskActivity sums recent interval time spent on one task
// @Summary Aggregate recent activity booked against a task
// @Tags stats
// @Accept json
// @Produce json
// @Param task_id path string true "task id"
// @Param days query int false "lookback window in days" default(7)
// @Success 200 {object} dao.TaskActivityResponse "task activity"
// @Failure 500 {object} ErrorResponse "internal server error"
// @Router /api/v1/task/{task_id}/activity [get]
func (s *Server) handleTaskActivity(c *gin.Context) {
	taskId := c.Param("task_id")
	days := int(str.MustParseInt(c.DefaultQuery("days", "7")))
	if days <= 0 {
		days = 7
	}

	task, err := model.GetTaskById(taskId)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}

	since := time.Now().AddDate(0, 0, -days)
	intervals, err := model.ListIntervalsWithTask(taskId, since)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}

	resp := dao.TaskActivityResponse{
		TaskId: taskId,
		Days:   days,
	}
	if task != nil {
		resp.TaskName = task.Name
	}

	var levelSum int
	for i := range intervals {
		entry, ok := intervals[i].TasksTime[taskId]
		if !ok {
			continue
		}
		resp.TotalTime += entry.Time
		resp.ActiveTime += tracking.ActiveShare(entry.Time, intervals[i].ActivityLevel)
		levelSum += intervals[i].ActivityLevel
	}
	if len(intervals) > 0 {
		resp.AvgActivity = float64(levelSum) / float64(len(intervals))
	}
	c.JSON(http.StatusOK, resp)
}
